// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/bigfloat"
	log "github.com/golang/glog"
)

// constants
var (
	one   = bigfloat.Exactly(bigfloat.NewInt(1))
	two   = bigfloat.Exactly(bigfloat.NewInt(2))
	three = bigfloat.Exactly(bigfloat.NewInt(3))
	four  = bigfloat.Exactly(bigfloat.NewInt(4))
	// failed is the value returned by chain operations after an error.
	failed = bigfloat.Exactly(bigfloat.NaN())
)

func exact(n int64) bigfloat.Result { return bigfloat.Exactly(bigfloat.NewInt(n)) }

// chain performs a sequence of operations at a fixed working precision with
// ToNearestEven rounding. The first error sticks: once set, all operations
// return a NaN and the caller checks ch.err when done.
type chain struct {
	c   bigfloat.Context
	err error
}

func newChain(prec, maxPrec uint) *chain {
	return &chain{c: bigfloat.Context{Prec: prec, Mode: bigfloat.ToNearestEven, MaxPrec: maxPrec}}
}

func (ch *chain) prec() uint { return ch.c.Prec }

func (ch *chain) check(r bigfloat.Result, err error) bigfloat.Result {
	if err != nil {
		ch.err = err
		return failed
	}
	return r
}

func (ch *chain) add(x, y bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Add(x, y))
}

func (ch *chain) sub(x, y bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Sub(x, y))
}

func (ch *chain) mul(x, y bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Mul(x, y))
}

func (ch *chain) quo(x, y bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Quo(x, y))
}

func (ch *chain) sqrt(x bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Sqrt(x))
}

func (ch *chain) round(x bigfloat.Result) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Round(x))
}

func (ch *chain) scale(x bigfloat.Result, n int) bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	return ch.check(ch.c.Scale(x, n))
}

func (ch *chain) neg(x bigfloat.Result) bigfloat.Result {
	return ch.c.Neg(x)
}

// pow returns x**n computed by repeated squaring. pow(x, 1<<m) squares x m
// times.
func (ch *chain) pow(x bigfloat.Result, n uint64) bigfloat.Result {
	if n == 0 {
		return one
	}
	z, y := x, one
	for n > 1 {
		if n%2 != 0 {
			y = ch.mul(y, z)
		}
		z = ch.mul(z, z)
		if !z.Val.IsFinite() || z.Val.IsZero() {
			return z
		}
		n /= 2
	}
	if ch.err != nil {
		return failed
	}
	if y.Val.Cmp(one.Val) == 0 && y.Err.IsExact() {
		return z
	}
	return ch.mul(z, y)
}

func upow(x, n uint64) uint64 {
	if n == 0 {
		return 1
	}
	z := x
	y := uint64(1)
	for n > 1 {
		if n%2 != 0 {
			y *= z
		}
		z *= z
		n /= 2
	}
	return z * y
}

// evalFunc computes f(x) for an exact, finite and non-zero x with the
// working precision of ch.
type evalFunc func(ch *chain, x bigfloat.Result) bigfloat.Result

// condFunc returns the bound of the relative error of f(x) introduced by the
// error of x, r being the computed value of f(x).
type condFunc func(x, r bigfloat.Result) bigfloat.Bound

// eval computes f(x) to c.Prec bits.
//
// f is evaluated on the value of x, taken as exact, with a working precision
// of c.Prec + GuardBits(op). If the error of the internal result is not
// below 2**-(c.Prec+1), the precision is raised by the missing bits and the
// evaluation restarts. As long as the working precision stays below
// roundingLimit, the evaluation also restarts with more bits when the
// internal error interval straddles a rounding boundary, so that the final
// rounding to c.Prec is that of the exact value. The error due to x is then
// composed into the final bound.
func eval(c bigfloat.Context, op bigfloat.Op, x bigfloat.Result, extra uint, f evalFunc, cond condFunc) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	var (
		w    = c.Prec + bigfloat.GuardBits(op, c.Prec, 0, 0) + extra
		need = -int64(c.Prec) - 1
		lim  = roundingLimit(c.Prec, w)
		r    bigfloat.Result
	)
	for {
		if err := c.CheckWidth(w); err != nil {
			return bigfloat.Result{}, err
		}
		ch := newChain(w, c.MaxPrec)
		r = f(ch, bigfloat.Exactly(x.Val))
		if ch.err != nil {
			return bigfloat.Result{}, ch.err
		}
		if r.Flags.Any(bigfloat.Overflow|bigfloat.Underflow) || !r.Val.IsFinite() {
			break
		}
		e := r.Err.Exp()
		if e > need {
			next := 2 * w
			if !r.Err.IsUnbounded() {
				next = w + uint(e-need) + 8
			}
			if log.V(2) {
				log.Infof("bigfloat/math: %s error 2**%d at %d bits, restarting with %d bits", op, e, w, next)
			}
			w = next
			continue
		}
		if w >= lim || c.CheckWidth(w+w/2) != nil || roundsAlike(c, r) {
			break
		}
		if log.V(3) {
			log.Infof("bigfloat/math: %s undecided rounding at %d bits, restarting with %d bits", op, w, w+w/2)
		}
		w += w / 2
	}
	z, err := c.Round(r)
	if err != nil {
		return bigfloat.Result{}, err
	}
	if cond != nil && !x.Err.IsExact() {
		z.Err = bigfloat.Compose(z.Err, cond(x, r))
	}
	z.Flags |= x.Flags
	return z, nil
}

// roundingLimit returns the working precision above which eval stops trying
// to round correctly.
func roundingLimit(prec, w uint) uint {
	return w + 2*prec + 64
}

// roundsAlike reports whether all values within the error interval of r
// round to the same value at c.Prec bits in c.Mode.
func roundsAlike(c bigfloat.Context, r bigfloat.Result) bool {
	if r.Err.IsExact() || r.Val.IsZero() {
		return true
	}
	// |r - f| <= |f|×Err <= |r|×Inflate(Err) < 2**(exp(r)+exp(Inflate(Err)))
	d, cond := bigfloat.NewFromBits(false, []bigfloat.Word{1}, r.Val.Exp()+int(bigfloat.Inflate(r.Err).Exp()))
	if cond != 0 {
		return cond&bigfloat.Underflow != 0
	}
	lo, err1 := c.Sub(bigfloat.Exactly(r.Val), bigfloat.Exactly(d))
	hi, err2 := c.Add(bigfloat.Exactly(r.Val), bigfloat.Exactly(d))
	if err1 != nil || err2 != nil {
		return true
	}
	return lo.Val.Cmp(hi.Val) == 0
}

// conditioned returns the relative error of f(x) due to the error of x, for
// a function whose derivative is below 2**dexp in absolute value near x.
// |f(x)| is bounded from below with the computed value r.
func conditioned(x, r bigfloat.Result, dexp int64) bigfloat.Bound {
	if x.Err.IsExact() {
		return bigfloat.Bound{}
	}
	if !r.Val.IsFinite() || r.Val.IsZero() || x.Err.IsUnbounded() {
		return bigfloat.Unbounded()
	}
	// |x̃ - x| <= |x̃|×a and |f(x̃)| >= 2**(er-2)
	a := bigfloat.Inflate(x.Err)
	if a.Cmp(bigfloat.Pow2Bound(-1)) > 0 {
		return bigfloat.Unbounded()
	}
	q := a.Shift(int64(x.Val.Exp()) + dexp + 2 - int64(r.Val.Exp()))
	return bigfloat.Inflate(q)
}

// special returns a result that does not need any computation.
func special(x bigfloat.Result, v *bigfloat.Float, err bigfloat.Bound, flags bigfloat.Condition) bigfloat.Result {
	return bigfloat.Result{Val: v, Err: err, Flags: x.Flags | flags}
}

// zeroBound returns the bound of f(x) = 0 for a zero x: exact if x is exact,
// and lost otherwise since x may stand for a non-zero value.
func zeroBound(x bigfloat.Result) bigfloat.Bound {
	if x.Err.IsExact() {
		return bigfloat.Bound{}
	}
	return bigfloat.Pow2Bound(0)
}

// exactOr returns b if x is inexact, an exact bound otherwise.
func exactOr(x bigfloat.Result, b bigfloat.Bound) bigfloat.Bound {
	if x.Err.IsExact() {
		return bigfloat.Bound{}
	}
	return b
}
