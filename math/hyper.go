// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/bits"

	"github.com/db47h/bigfloat"
)

// maxExpArg is the largest exponent of an argument of Sinh or Exp that does
// not overflow.
const maxExpArg = 32

// Sinh returns the hyperbolic sine of x rounded to c.Prec bits.
//
// Arguments with |x| >= 1/2 are divided by 3**m so that the series converges
// quickly, and the result is recovered with m applications of
// sinh 3x = sinh x (3 + 4 sinh² x).
//
// Special cases are:
//
//	Sinh(±0) = ±0
//	Sinh(±Inf) = ±Inf
//	Sinh(NaN) = NaN
func Sinh(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsInf():
		return special(x, v, x.Err, 0), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	case v.Exp() > maxExpArg:
		return special(x, bigfloat.Inf(v.Signbit()), bigfloat.Unbounded(), bigfloat.Overflow|bigfloat.Inexact), nil
	}
	m := triplings(v.Exp())
	return eval(c, bigfloat.OpSinh, x, 2*uint(m),
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.sinh(x, m) },
		sinhCond)
}

// triplings returns the smallest m such that 3**m >= 2**(e+1).
func triplings(e int) int {
	if e < 0 {
		return 0
	}
	m := 0
	for p := uint64(1); p < 1<<uint(e+1); p *= 3 {
		m++
	}
	return m
}

func (ch *chain) sinh(x bigfloat.Result, m int) bigfloat.Result {
	if m > 0 {
		x = ch.quo(x, bigfloat.Exactly(bigfloat.NewUint64(upow(3, uint64(m)))))
	}
	s := ch.taylor(x, 1, false)
	for i := 0; i < m; i++ {
		s = ch.mul(s, ch.add(three, ch.mul(four, ch.mul(s, s))))
	}
	return s
}

// sinhCond bounds the error of sinh(x) due to the error of x. With
// |x̃ - x| <= A <= 1/2, the relative error is below
// A cosh(|x|+A)/|sinh x| <= a(|x|+1)e**A×2 where a = A/|x̃|.
func sinhCond(x, _ bigfloat.Result) bigfloat.Bound {
	if x.Err.IsUnbounded() {
		return bigfloat.Unbounded()
	}
	a := bigfloat.Inflate(x.Err)
	ex := int64(x.Val.Exp())
	if ex+a.Exp() > -1 {
		return bigfloat.Unbounded()
	}
	return bigfloat.Inflate(a.Shift(max(ex, 0) + 3))
}

// Cosh returns the hyperbolic cosine of x rounded to c.Prec bits, computed
// as √(1 + sinh² x).
//
// Special cases are:
//
//	Cosh(±0) = 1
//	Cosh(±Inf) = +Inf
//	Cosh(NaN) = NaN
func Cosh(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsInf():
		return special(x, v.Abs(), x.Err, 0), nil
	case v.IsZero():
		return special(x, one.Val, exactOr(x, bigfloat.Unbounded()), 0), nil
	case v.Exp() > maxExpArg:
		return special(x, bigfloat.Inf(false), bigfloat.Unbounded(), bigfloat.Overflow|bigfloat.Inexact), nil
	}
	m := triplings(v.Exp())
	return eval(c, bigfloat.OpSinh, x, 2*uint(m),
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.cosh(x, m) },
		expCond)
}

func (ch *chain) cosh(x bigfloat.Result, m int) bigfloat.Result {
	s := ch.sinh(x, m)
	if !s.Val.IsFinite() {
		return s
	}
	// With |s| >= 2**(e-1), √(1+s²) = |s|(1+δ) with δ <= 1/(2s²) <= 2**(1-2e).
	// This also keeps s² in range.
	if e := s.Val.Exp(); e > int(ch.prec())/2+2 || e > 1<<29 {
		s.Val = s.Val.Abs()
		s.Err = bigfloat.Compose(s.Err, bigfloat.Pow2Bound(1-2*int64(e)))
		return s
	}
	return ch.sqrt(ch.add(one, ch.mul(s, s)))
}

// Tanh returns the hyperbolic tangent of x rounded to c.Prec bits, computed
// as s/√(1+s²) with s = sinh x. Beyond the precision, tanh x rounds to ±1.
//
// Special cases are:
//
//	Tanh(±0) = ±0
//	Tanh(±Inf) = ±1
//	Tanh(NaN) = NaN
func Tanh(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	case v.IsInf():
		return special(x, signed(one.Val, v.Signbit()), bigfloat.Bound{}, 0), nil
	case v.Exp() > min(bits.Len(c.Prec)+2, maxExpArg-3):
		return tanhSaturated(c, x)
	}
	m := triplings(v.Exp())
	return eval(c, bigfloat.OpSinh, x, 2*uint(m),
		func(ch *chain, x bigfloat.Result) bigfloat.Result {
			s := ch.sinh(x, m)
			return ch.quo(s, ch.sqrt(ch.add(one, ch.mul(s, s))))
		},
		func(x, r bigfloat.Result) bigfloat.Bound { return conditioned(x, r, 0) })
}

// tanhSaturated returns tanh x for |x| >= 2**(e-1), e being the exponent of
// x. The distance δ = 2/(e**2|x| + 1) of tanh x
// to ±1 is below 2**(2 - 2**e), or 2**(2 - 2**(e-1)) if |x| may be as low as
// |x̃|/2. For the exponents where Tanh saturates, δ is far below 2**-(p+2) and
// tanh x rounds as 1 - 2**-(p+2) does.
func tanhSaturated(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	neg := x.Val.Signbit()
	e := min(x.Val.Exp(), 62)
	if !x.Err.IsExact() {
		if x.Err.Cmp(bigfloat.Pow2Bound(-1)) > 0 {
			return special(x, signed(one.Val, neg), bigfloat.Unbounded(), bigfloat.Inexact), nil
		}
		e--
	}
	d, _ := bigfloat.NewFromBits(neg, []bigfloat.Word{1}, -int(c.Prec)-2)
	r, err := c.Sub(bigfloat.Exactly(signed(one.Val, neg)), bigfloat.Exactly(d))
	if err != nil {
		return bigfloat.Result{}, err
	}
	if r.Val.CmpAbs(one.Val) == 0 {
		r.Err = bigfloat.Pow2Bound(2 - int64(1)<<uint(e))
	} else {
		// 1 - 2**-p
		r.Err = bigfloat.Inflate(bigfloat.Pow2Bound(-int64(c.Prec)))
	}
	r.Flags |= x.Flags
	return r, nil
}

func signed(x *bigfloat.Float, neg bool) *bigfloat.Float {
	if neg {
		return x.Neg()
	}
	return x
}

// Atanh returns the inverse hyperbolic tangent of x rounded to c.Prec bits.
//
// The argument is halved with atanh x = 2 atanh(x/(1+√((1-x)(1+x)))) until
// |x| < 1/8.
//
// Special cases are:
//
//	Atanh(±0) = ±0
//	Atanh(±1) = ±Inf (DivisionByZero)
//	Atanh(x) = NaN (DomainError) if |x| > 1 or x is ±Inf
//	Atanh(NaN) = NaN
func Atanh(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	case v.IsInf():
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	}
	switch v.CmpAbs(one.Val) {
	case 1:
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	case 0:
		return special(x, bigfloat.Inf(v.Signbit()), exactOr(x, bigfloat.Unbounded()), bigfloat.DivisionByZero), nil
	}
	return eval(c, bigfloat.OpAtanh, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.atanh(x) },
		poleCond)
}

// maxHalvings bounds the number of argument halvings of atanh. atanh(x)
// is below 2**31 for any |x| < 1 with a 32 bits exponent, so that 40
// halvings always bring x below 1/8.
const maxHalvings = 40

// atanh returns atanh(x) for |x| < 1.
//
// The halving step x' = x/(1+d) with d = √((1-x)(1+x)) is computed with
// y = 1-x carried along as y' = (y+d)/(1+d), so that 1-x is never computed
// from a rounded x close to 1.
func (ch *chain) atanh(x bigfloat.Result) bigfloat.Result {
	if x.Val.IsZero() {
		return x
	}
	neg := x.Val.Signbit()
	if neg {
		x = ch.neg(x)
	}
	y := ch.sub(one, x)
	m := 0
	for ; x.Val.Exp() > -3; m++ {
		if ch.err != nil {
			return failed
		}
		if m == maxHalvings || y.Val.Sign() <= 0 {
			return bigfloat.Result{Val: x.Val, Err: bigfloat.Unbounded()}
		}
		d := ch.sqrt(ch.mul(y, ch.add(one, x)))
		d1 := ch.add(one, d)
		x = ch.quo(x, d1)
		y = ch.quo(ch.add(y, d), d1)
	}
	r := ch.scale(ch.atanSeries(x, false), m)
	if neg {
		r = ch.neg(r)
	}
	return r
}

// poleCond bounds the error due to the error of x of a function whose
// derivative is below 1/(1-x²) near x, like atanh, asin and acos.
func poleCond(x, r bigfloat.Result) bigfloat.Bound {
	if x.Err.IsUnbounded() || x.Val.IsZero() {
		return bigfloat.Unbounded()
	}
	d, err := bigfloat.Sub(one, bigfloat.Exactly(x.Val.Abs()), 16, bigfloat.ToNearestEven)
	if err != nil || d.Val.Sign() <= 0 {
		return bigfloat.Unbounded()
	}
	// d >= 2**(ed-2); requiring |x̃ - x| <= d/2 gives |f'| <= 2/d
	ed := int64(d.Val.Exp())
	if int64(x.Val.Exp())+bigfloat.Inflate(x.Err).Exp() > ed-3 {
		return bigfloat.Unbounded()
	}
	return conditioned(x, r, 3-ed)
}
