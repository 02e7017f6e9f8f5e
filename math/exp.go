// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/bigfloat"
)

// Exp returns e**x rounded to c.Prec bits.
//
// With y = |x|/2**m < 1/2 and s = sinh y, e**y = s + √(1+s²) is squared m
// times. Negative arguments use the reciprocal.
//
// Special cases are:
//
//	Exp(±0) = 1
//	Exp(+Inf) = +Inf
//	Exp(-Inf) = +0
//	Exp(NaN) = NaN
//
// Very large arguments overflow to +Inf or underflow to +0.
func Exp(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, one.Val, exactOr(x, bigfloat.Unbounded()), 0), nil
	case v.IsInf() && v.Signbit():
		return special(x, bigfloat.Zero(false), zeroBound(x), 0), nil
	case v.IsInf():
		return special(x, v, x.Err, 0), nil
	case v.Exp() > maxExpArg && v.Signbit():
		return special(x, bigfloat.Zero(false), bigfloat.Pow2Bound(0), bigfloat.Underflow|bigfloat.Inexact), nil
	case v.Exp() > maxExpArg:
		return special(x, bigfloat.Inf(false), bigfloat.Unbounded(), bigfloat.Overflow|bigfloat.Inexact), nil
	}
	m := max(v.Exp()+1, 0)
	return eval(c, bigfloat.OpSinh, x, uint(m)+4,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.exp(x, m) },
		expCond)
}

func (ch *chain) exp(x bigfloat.Result, m int) bigfloat.Result {
	neg := x.Val.Signbit()
	y := ch.scale(bigfloat.Exactly(x.Val.Abs()), -m)
	s := ch.taylor(y, 1, false)
	e := ch.add(s, ch.sqrt(ch.add(one, ch.mul(s, s))))
	e = ch.pow(e, 1<<uint(m))
	if !neg || ch.err != nil {
		return e
	}
	if e.Val.IsInf() {
		return bigfloat.Result{Val: bigfloat.Zero(false), Err: bigfloat.Pow2Bound(0), Flags: bigfloat.Underflow | bigfloat.Inexact}
	}
	return ch.quo(one, e)
}

// expCond bounds the error of e**x due to the error of x: with |x̃ - x| <= A
// <= 1, the relative error is e**A - 1 <= 2A.
func expCond(x, _ bigfloat.Result) bigfloat.Bound {
	if x.Err.IsUnbounded() {
		return bigfloat.Unbounded()
	}
	a := bigfloat.Inflate(x.Err).Shift(int64(x.Val.Exp()))
	if a.Exp() > 0 {
		return bigfloat.Unbounded()
	}
	return a.Shift(1)
}
