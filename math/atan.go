// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/bigfloat"
)

// Atan returns the arctangent of x rounded to c.Prec bits.
//
// For |x| > 1, atan x = ±π/2 - atan(1/x). The argument is then halved with
// atan x = 2 atan(x/(1+√(1+x²))) until |x| < 1/8.
//
// Special cases are:
//
//	Atan(±0) = ±0
//	Atan(±Inf) = ±π/2
//	Atan(NaN) = NaN
func Atan(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	}
	return eval(c, bigfloat.OpAtan, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.atan(x) },
		func(x, r bigfloat.Result) bigfloat.Bound {
			if x.Val.IsInf() {
				return bigfloat.Unbounded()
			}
			return conditioned(x, r, 0)
		})
}

// atan returns atan(x) for a non-zero x.
func (ch *chain) atan(x bigfloat.Result) bigfloat.Result {
	if x.Val.IsZero() {
		return x
	}
	if x.Val.IsInf() || x.Val.CmpAbs(one.Val) > 0 {
		hp := ch.scale(ch.pi(), -1)
		if x.Val.Signbit() {
			hp = ch.neg(hp)
		}
		if x.Val.IsInf() {
			return hp
		}
		return ch.sub(hp, ch.atan(ch.quo(one, x)))
	}
	m := 0
	for ; x.Val.Exp() > -3; m++ {
		d := ch.sqrt(ch.add(one, ch.mul(x, x)))
		x = ch.quo(x, ch.add(one, d))
		if ch.err != nil {
			return failed
		}
	}
	return ch.scale(ch.atanSeries(x, true), m)
}

// Asin returns the arcsine of x rounded to c.Prec bits, computed as
// atan(x/√((1-x)(1+x))).
//
// Special cases are:
//
//	Asin(±0) = ±0
//	Asin(±1) = ±π/2
//	Asin(x) = NaN (DomainError) if |x| > 1 or x is ±Inf
//	Asin(NaN) = NaN
func Asin(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	case v.IsInf() || v.CmpAbs(one.Val) > 0:
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	}
	return eval(c, bigfloat.OpAtan, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result {
			if x.Val.CmpAbs(one.Val) == 0 {
				return ch.atan(bigfloat.Exactly(bigfloat.Inf(x.Val.Signbit())))
			}
			d := ch.sqrt(ch.mul(ch.sub(one, x), ch.add(one, x)))
			return ch.atan(ch.quo(x, d))
		},
		poleCond)
}

// Acos returns the arccosine of x rounded to c.Prec bits, computed as
// 2 atan(√((1-x)/(1+x))).
//
// Special cases are:
//
//	Acos(1) = +0
//	Acos(-1) = π
//	Acos(x) = NaN (DomainError) if |x| > 1 or x is ±Inf
//	Acos(NaN) = NaN
func Acos(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsInf() || v.CmpAbs(one.Val) > 0:
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	case v.Cmp(one.Val) == 0:
		return special(x, bigfloat.Zero(false), zeroBound(x), 0), nil
	}
	return eval(c, bigfloat.OpAtan, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result {
			if x.Val.Cmp(one.Val) < 0 && x.Val.CmpAbs(one.Val) == 0 {
				return ch.pi()
			}
			t := ch.sqrt(ch.quo(ch.sub(one, x), ch.add(one, x)))
			return ch.scale(ch.atan(t), 1)
		},
		poleCond)
}
