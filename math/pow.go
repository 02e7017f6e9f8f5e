// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/bits"

	"github.com/db47h/bigfloat"
)

// Powi returns x**n rounded to c.Prec bits, computed by repeated squaring.
// Negative powers are computed as 1/x**-n.
//
// Special cases are:
//
//	Powi(x, 0) = 1 for any x
//	Powi(NaN, n) = NaN
//	Powi(±0, n) = ±0 for odd n > 0, +0 for even n > 0
//	Powi(±0, n) = ±Inf for odd n < 0, +Inf for even n < 0 (DivisionByZero)
//	Powi(±Inf, n) = ±Inf for odd n > 0, +Inf for even n > 0
//	Powi(±Inf, n) = ±0 for odd n < 0, +0 for even n < 0
func Powi(c bigfloat.Context, x bigfloat.Result, n int64) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	neg := v.Signbit() && n%2 != 0
	switch {
	case n == 0:
		return special(x, one.Val, bigfloat.Bound{}, 0), nil
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case n == 1:
		return c.Round(x)
	case v.IsZero() && n > 0:
		return special(x, bigfloat.Zero(neg), zeroBound(x), 0), nil
	case v.IsZero():
		return special(x, bigfloat.Inf(neg), exactOr(x, bigfloat.Unbounded()), bigfloat.DivisionByZero), nil
	case v.IsInf() && n > 0:
		return special(x, bigfloat.Inf(neg), x.Err, 0), nil
	case v.IsInf():
		return special(x, bigfloat.Zero(neg), zeroBound(x), 0), nil
	}
	k := uint64(n)
	if n < 0 {
		k = -k
	}
	r, err := eval(c, bigfloat.OpPow, bigfloat.Exactly(v.Abs()), uint(bits.Len64(k))+2,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.powi(x, k, n < 0) },
		nil)
	if err != nil {
		return bigfloat.Result{}, err
	}
	if !x.Err.IsExact() {
		r.Err = bigfloat.Compose(r.Err, powiCond(x, k))
	}
	r.Flags |= x.Flags
	if neg {
		r = c.Neg(r)
	}
	return r, nil
}

// powi returns x**k, or x**-k if inv is set, for finite x > 0.
func (ch *chain) powi(x bigfloat.Result, k uint64, inv bool) bigfloat.Result {
	r := ch.pow(x, k)
	if !inv || ch.err != nil {
		return r
	}
	switch {
	case r.Val.IsInf():
		return bigfloat.Result{Val: bigfloat.Zero(false), Err: bigfloat.Pow2Bound(0), Flags: bigfloat.Underflow | bigfloat.Inexact}
	case r.Val.IsZero():
		return bigfloat.Result{Val: bigfloat.Inf(false), Err: bigfloat.Unbounded(), Flags: bigfloat.Overflow | bigfloat.Inexact}
	}
	return ch.quo(one, r)
}

// powiCond bounds the error of x**n due to the error a of x: |n log(1+ε)| is
// below d = |n|×Inflate(a), and e**d - 1 <= 2d for d <= 1.
func powiCond(x bigfloat.Result, k uint64) bigfloat.Bound {
	if x.Err.Cmp(bigfloat.Pow2Bound(-1)) > 0 {
		return bigfloat.Unbounded()
	}
	d := bigfloat.Inflate(x.Err).Shift(int64(bits.Len64(k)))
	if d.Exp() > 0 {
		return bigfloat.Unbounded()
	}
	return d.Shift(1)
}

// Pow returns x**y rounded to c.Prec bits.
//
// Integer powers that fit in an int64 are computed by Powi when y is exact.
// Other powers are computed as e**(y ln |x|), negated for negative x and odd
// integer y.
//
// Special cases are:
//
//	Pow(x, ±0) = 1 for any x
//	Pow(1, y) = 1 for any y
//	Pow(x, 1) = x for any x
//	Pow(NaN, y) = NaN
//	Pow(x, NaN) = NaN
//	Pow(±0, y) = ±Inf for y an odd integer < 0 (DivisionByZero)
//	Pow(±0, y) = +Inf for finite y < 0 and not an odd integer (DivisionByZero)
//	Pow(±0, y) = ±0 for y an odd integer > 0
//	Pow(±0, y) = +0 for finite y > 0 and not an odd integer
//	Pow(-1, ±Inf) = 1
//	Pow(x, +Inf) = +Inf for |x| > 1
//	Pow(x, -Inf) = +0 for |x| > 1
//	Pow(x, +Inf) = +0 for |x| < 1
//	Pow(x, -Inf) = +Inf for |x| < 1
//	Pow(+Inf, y) = +Inf for y > 0
//	Pow(+Inf, y) = +0 for y < 0
//	Pow(-Inf, y) = Pow(-0, -y)
//	Pow(x, y) = NaN (DomainError) for finite x < 0 and finite non-integer y
func Pow(c bigfloat.Context, x, y bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v, p := x.Val, y.Val
	flags := x.Flags | y.Flags
	res := func(z *bigfloat.Float, err bigfloat.Bound, cond bigfloat.Condition) (bigfloat.Result, error) {
		return bigfloat.Result{Val: z, Err: err, Flags: flags | cond}, nil
	}
	exact := func(z *bigfloat.Float) (bigfloat.Result, error) {
		return res(z, bigfloat.Bound{}, 0)
	}
	switch {
	case p.IsZero():
		return res(one.Val, exactOr(y, bigfloat.Unbounded()), 0)
	case !v.IsNaN() && v.Cmp(one.Val) == 0:
		return res(one.Val, exactOr(x, bigfloat.Unbounded()), 0)
	case v.IsNaN() || p.IsNaN():
		return res(bigfloat.NaN(), bigfloat.Unbounded(), 0)
	case p.IsInt() && p.Exp() < 64 && y.Err.IsExact():
		i, _ := p.Int()
		r, err := Powi(c, x, i.Int64())
		r.Flags |= y.Flags
		return r, err
	case p.IsInf():
		switch v.CmpAbs(one.Val) {
		case 0:
			return res(one.Val, exactOr(x, bigfloat.Unbounded()), 0)
		case 1:
			if p.Signbit() {
				return exact(bigfloat.Zero(false))
			}
			return exact(bigfloat.Inf(false))
		}
		if p.Signbit() {
			return exact(bigfloat.Inf(false))
		}
		return exact(bigfloat.Zero(false))
	}

	odd := isOddInt(p)
	neg := v.Signbit() && odd
	switch {
	case v.IsZero() || v.IsInf():
		// 0**y and Inf**-y
		if p.Signbit() != v.IsInf() {
			cond := bigfloat.Condition(0)
			if v.IsZero() {
				cond = bigfloat.DivisionByZero
			}
			return res(bigfloat.Inf(neg), exactOr(x, bigfloat.Unbounded()), cond)
		}
		return res(bigfloat.Zero(neg), zeroBound(x), 0)
	case v.Signbit() && !p.IsInt():
		return res(bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError)
	}

	ax := bigfloat.Exactly(v.Abs())
	ey := bigfloat.Exactly(p)
	ex := v.Exp()
	if ex < 0 {
		ex = -ex
	}
	extra := min(max(p.Exp(), 0)+bits.Len(uint(ex)+1)+2, maxExpArg+4)
	r, err := eval(c, bigfloat.OpPow, ax, uint(extra),
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.powPos(x, ey) },
		nil)
	if err != nil {
		return bigfloat.Result{}, err
	}
	if !x.Err.IsExact() || !y.Err.IsExact() {
		r.Err = bigfloat.Compose(r.Err, powCond(x, y))
	}
	r.Flags |= flags
	if neg {
		r = c.Neg(r)
	}
	return r, nil
}

// isOddInt reports whether x is an odd integer: its least significant bit is
// its units bit.
func isOddInt(x *bigfloat.Float) bool {
	return x.IsFinite() && !x.IsZero() && x.Exp() == int(x.MinPrec())
}

// powPos returns x**y = e**(y ln x) for finite x > 0, x != 1 and finite y.
func (ch *chain) powPos(x, y bigfloat.Result) bigfloat.Result {
	t := ch.mul(y, ch.log(x))
	if ch.err != nil {
		return failed
	}
	v := t.Val
	switch {
	case v.IsZero():
		// y ln x underflowed
		return bigfloat.Result{Val: one.Val, Err: bigfloat.Pow2Bound(bigfloat.MinExp), Flags: bigfloat.Inexact}
	case v.Exp() > maxExpArg && v.Signbit():
		return bigfloat.Result{Val: bigfloat.Zero(false), Err: bigfloat.Pow2Bound(0), Flags: bigfloat.Underflow | bigfloat.Inexact}
	case v.Exp() > maxExpArg:
		return bigfloat.Result{Val: bigfloat.Inf(false), Err: bigfloat.Unbounded(), Flags: bigfloat.Overflow | bigfloat.Inexact}
	}
	r := ch.exp(t, max(v.Exp()+1, 0))
	if r.Val.IsFinite() && !r.Val.IsZero() {
		r.Err = bigfloat.Compose(r.Err, expCond(t, r))
	}
	return r
}

// powCond bounds the error of x**y due to the errors ax of x and ay of y.
// With t = y ln x, |t̃ - t| is below 2|ỹ|(Inflate(ax) + |ln x̃|×ay) and
// |ln x̃| <= |e|+1 for x̃ in [2**(e-1), 2**e). The relative error of e**t is
// then at most 2|t̃ - t| as long as |t̃ - t| <= 1.
func powCond(x, y bigfloat.Result) bigfloat.Bound {
	h := bigfloat.Pow2Bound(-1)
	if x.Err.Cmp(h) > 0 || y.Err.Cmp(h) > 0 {
		return bigfloat.Unbounded()
	}
	e := x.Val.Exp()
	if e < 0 {
		e = -e
	}
	d := bigfloat.Inflate(x.Err).Add(y.Err.Shift(int64(bits.Len(uint(e) + 1))))
	d = d.Shift(int64(y.Val.Exp()) + 1)
	if d.Exp() > 0 {
		return bigfloat.Unbounded()
	}
	return d.Shift(1)
}
