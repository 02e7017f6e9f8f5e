// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/bigfloat"
)

var threeQuarters = bigfloat.Exactly(bigfloat.NewFloat(0.75))

// Log returns the natural logarithm of x rounded to c.Prec bits.
//
// x is split into f×2**e with f in [0.75, 1.5) and
// ln x = e ln 2 + 2 atanh((f-1)/(f+1)), with ln 2 = 2 atanh(1/3).
//
// Special cases are:
//
//	Log(±0) = -Inf (DivisionByZero)
//	Log(1) = +0
//	Log(+Inf) = +Inf
//	Log(x < 0) = NaN (DomainError)
//	Log(NaN) = NaN
func Log(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	v := x.Val
	switch {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsZero():
		return special(x, bigfloat.Inf(true), exactOr(x, bigfloat.Unbounded()), bigfloat.DivisionByZero), nil
	case v.Signbit():
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	case v.IsInf():
		return special(x, v, x.Err, 0), nil
	case v.Cmp(one.Val) == 0:
		return special(x, bigfloat.Zero(false), zeroBound(x), 0), nil
	}
	return eval(c, bigfloat.OpAtanh, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.log(x) },
		func(x, r bigfloat.Result) bigfloat.Bound {
			// |d/dξ ln ξ| <= 1/(|x̃|(1-a)) <= 2**(2-ex)
			return conditioned(x, r, 2-int64(x.Val.Exp()))
		})
}

// log returns ln x for finite x > 0.
func (ch *chain) log(x bigfloat.Result) bigfloat.Result {
	e := x.Val.Exp()
	f := ch.scale(x, -e)
	if f.Val.Cmp(threeQuarters.Val) < 0 {
		f = ch.scale(f, 1)
		e--
	}
	lf := ch.scale(ch.atanh(ch.quo(ch.sub(f, one), ch.add(f, one))), 1)
	if e == 0 {
		return lf
	}
	return ch.add(ch.mul(exact(int64(e)), ch.ln2()), lf)
}

// ln2 returns ln 2 = 2 atanh(1/3).
func (ch *chain) ln2() bigfloat.Result {
	return ch.scale(ch.atanh(ch.quo(one, three)), 1)
}
