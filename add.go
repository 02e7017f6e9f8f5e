// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	log "github.com/golang/glog"
)

// Add returns x+y rounded to c.Prec bits. The error of the result accounts
// for the errors of x and y.
func (c Context) Add(x, y Result) (Result, error) {
	return c.addSub(x, y, false)
}

// Sub returns x-y rounded to c.Prec bits. When the subtraction cancels
// leading bits, the working precision is raised so that the reported error
// stays within the budget of the cancellation, see SubBudget.
func (c Context) Sub(x, y Result) (Result, error) {
	return c.addSub(x, y, true)
}

func (c Context) addSub(x, y Result, sub bool) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	flags := x.Flags | y.Flags
	a, b := x.Val, y.Val
	if sub {
		b = b.Neg()
	}
	if a.form == nan || b.form == nan {
		return nanResult(flags), nil
	}

	if a.form == inf || b.form == inf {
		switch {
		case a.form == inf && b.form == inf && a.neg != b.neg:
			return nanResult(flags | InvalidOperation), nil
		case a.form == inf:
			return Result{Val: a, Err: infErr(x.Err, y.Err), Flags: flags}, nil
		}
		return Result{Val: b, Err: infErr(x.Err, y.Err), Flags: flags}, nil
	}

	if a.form == zero && b.form == zero {
		neg := a.neg && b.neg
		if a.neg != b.neg {
			neg = c.Mode == ToNegativeInf
		}
		return Result{Val: Zero(neg), Err: zeroErr(x.Err, y.Err), Flags: flags}, nil
	}
	if b.form == zero {
		a, b = b, a
		x, y = y, x
	}
	if a.form == zero {
		// An inexact zero operand may stand for a value of any magnitude.
		r, err := c.Round(Result{Val: b, Err: y.Err, Flags: flags})
		if err == nil && !x.Err.IsExact() {
			r.Err = unbounded
		}
		return r, err
	}

	op := OpAdd
	if a.neg != b.neg {
		op = OpSub
	}
	w := c.Prec + GuardBits(op, c.Prec, x.Err.Order(c.Prec), y.Err.Order(c.Prec))
	if err := c.CheckWidth(w); err != nil {
		return Result{}, err
	}
	if a.ucmp(b) < 0 {
		a, b = b, a
		x, y = y, x
	}
	if op == OpAdd {
		return c.uadd(a, b, x.Err, y.Err, w, flags), nil
	}
	return c.usub(a, b, x.Err, y.Err, w, flags)
}

// align returns ⌊|x|/2**unit⌋ for finite x and whether non-zero bits were
// dropped.
func align(x *Float, unit int64) (nat, bool) {
	s := int64(x.exp) - int64(len(x.mant))*_W - unit
	if s >= 0 {
		return nat(nil).shl(x.mant, uint(s)), false
	}
	if -s >= int64(len(x.mant))*_W {
		return nil, true
	}
	return nat(nil).shr(x.mant, uint(-s)), x.mant.sticky(uint(-s)) != 0
}

// magBound returns an upper bound of |x| for finite x.
func magBound(x *Float) Bound {
	t, s := topBits(x.mant, boundMantBits)
	return boundOf(t+1, int64(s)+int64(x.exp)-int64(len(x.mant))*_W)
}

// uadd returns |x|+|y| with the sign of x, for finite |x| >= |y| > 0.
func (c Context) uadd(x, y *Float, ex, ey Bound, w uint, flags Condition) Result {
	unit := int64(x.exp) - int64(w)
	mx, tx := align(x, unit)
	my, ty := align(y, unit)
	n := mx.add(mx, my)

	// Same signs: the propagated error is a weighted mean of ex and ey.
	terms := []Bound{maxBound(ex, ey)}
	if tx || ty {
		// The truncated sum lies in [n, n+2)×2**unit.
		terms = append(terms, boundOf(2, 0).Mul(recipBound(n)))
	}
	return c.finish(n, unit, x.neg, tx || ty, flags, terms...)
}

// usub returns |x|-|y| with the sign of x, for finite |x| >= |y| > 0.
//
// The difference is first computed on a grid of w bits relative to x. If too
// few bits survive the cancellation for the truncation error to stay below
// 2**(-prec-3), it is computed once more with the width raised by the number
// of cancelled bits. When nothing survives, the width is at least doubled
// until the leading bits of the difference show up. Once the width reaches
// the grid of the least significant bit of both operands, the difference is
// computed exactly.
func (c Context) usub(x, y *Float, ex, ey Bound, w uint, flags Condition) (Result, error) {
	if x.ucmp(y) == 0 {
		return Result{Val: Zero(c.Mode == ToNegativeInf), Err: zeroErr(ex, ey), Flags: flags}, nil
	}

	lsb := min(int64(x.exp)-int64(len(x.mant))*_W, int64(y.exp)-int64(len(y.mant))*_W)
	we := int64(x.exp) - lsb
	n, unit, slack, ok := c.subAt(x, y, w)
	for !ok {
		lc := n.bitLen()
		next := int64(w) + int64(c.Prec) + 10 - int64(lc)
		if lc < 2 {
			next = max(next, 2*int64(w))
		}
		if next >= we || c.CheckWidth(uint(next)) != nil {
			break
		}
		if log.V(2) {
			log.Infof("bigfloat: sub cancelled %d of %d bits, retrying with %d bits", int(w)-lc, w, next)
		}
		w = uint(next)
		n, unit, slack, ok = c.subAt(x, y, w)
	}
	if !ok {
		if we > int64(c.Limit()) {
			return Result{}, c.CheckWidth(uint(min(we, int64(MaxPrec))))
		}
		if log.V(3) {
			log.Infof("bigfloat: sub computed exactly with %d bits", we)
		}
		n, unit, slack, _ = c.subAt(x, y, uint(we))
	}

	inh := c.subErr(x, y, ex, ey, n, unit)
	if slack == 0 {
		return c.finish(n, unit, x.neg, false, flags, inh), nil
	}
	tau := boundOf(uint64(slack), 0).Mul(recipBound(n))
	return c.finish(n, unit, x.neg, true, flags, inh, tau), nil
}

// subAt computes the difference |x|-|y| on the grid 2**(x.exp-w). The exact
// difference lies in (n, n+slack)×2**unit, or is n×2**unit if slack is 0. ok
// reports whether the truncation error slack/n is small enough.
func (c Context) subAt(x, y *Float, w uint) (n nat, unit int64, slack int, ok bool) {
	unit = int64(x.exp) - int64(w)
	mx, tx := align(x, unit)
	my, ty := align(y, unit)
	// |x| > |y| implies mx >= my
	n = mx.sub(mx, my)
	switch {
	case ty:
		if len(n) == 0 {
			return n, unit, 2, false
		}
		// the dropped bits of y lower the difference
		n = n.sub(n, natOne)
		slack = 2
	case tx:
		slack = 1
	default:
		return n, unit, 0, true
	}
	return n, unit, slack, n.bitLen() >= int(c.Prec)+5
}

// subErr returns the propagated error (ex|x| + ey|y|)/|x-y| of the
// difference n×2**unit, inflated to be relative to the exact difference.
func (c Context) subErr(x, y *Float, ex, ey Bound, n nat, unit int64) Bound {
	if ex.IsExact() && ey.IsExact() {
		return Bound{}
	}
	m := maxBound(ex, ey)
	if m.Cmp(half) > 0 {
		return unbounded
	}
	rn := recipBound(n).Shift(-unit)
	eta := ex.Mul(magBound(x).Mul(rn)).Add(ey.Mul(magBound(y).Mul(rn)))
	return Inflate(eta.Mul(onePlus(m.Shift(1))))
}
