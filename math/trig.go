// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"math/big"

	"github.com/db47h/bigfloat"
)

// Sin returns the sine of x rounded to c.Prec bits.
//
// Arguments with |x| >= 1 are reduced modulo π/2, π being computed with
// enough additional bits to absorb the magnitude of x.
//
// Special cases are:
//
//	Sin(±0) = ±0
//	Sin(±Inf) = NaN (DomainError)
//	Sin(NaN) = NaN
func Sin(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	switch v := x.Val; {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsInf():
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	case v.IsZero():
		return special(x, v, zeroBound(x), 0), nil
	}
	return eval(c, bigfloat.OpSin, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.sinCos(x, false) },
		func(x, r bigfloat.Result) bigfloat.Bound { return conditioned(x, r, 0) })
}

// Cos returns the cosine of x rounded to c.Prec bits.
//
// Special cases are:
//
//	Cos(±0) = 1
//	Cos(±Inf) = NaN (DomainError)
//	Cos(NaN) = NaN
func Cos(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	switch v := x.Val; {
	case v.IsNaN():
		return special(x, v, bigfloat.Unbounded(), 0), nil
	case v.IsInf():
		return special(x, bigfloat.NaN(), bigfloat.Unbounded(), bigfloat.DomainError), nil
	case v.IsZero():
		// a zero standing for an unknown value says nothing about its cosine
		return special(x, one.Val, exactOr(x, bigfloat.Unbounded()), 0), nil
	}
	return eval(c, bigfloat.OpCos, x, 0,
		func(ch *chain, x bigfloat.Result) bigfloat.Result { return ch.sinCos(x, true) },
		func(x, r bigfloat.Result) bigfloat.Bound { return conditioned(x, r, 0) })
}

// sinCos returns sin(x), or cos(x) if cos is set.
func (ch *chain) sinCos(x bigfloat.Result, cos bool) bigfloat.Result {
	q := 0
	if x.Val.Exp() >= 1 {
		x, q = ch.reduce(x)
		if ch.err != nil {
			return failed
		}
		if x.Val.IsZero() {
			// x is too close to a multiple of π/2 for the current precision
			return bigfloat.Result{Val: one.Val, Err: bigfloat.Unbounded()}
		}
	}
	var neg bool
	if cos {
		// cos(r + qπ/2) = cos r, -sin r, -cos r, sin r
		cos = q&1 == 0
		neg = (q+1)&2 != 0
	} else {
		// sin(r + qπ/2) = sin r, cos r, -sin r, -cos r
		cos = q&1 != 0
		neg = q&2 != 0
	}
	var r bigfloat.Result
	if cos {
		r = ch.taylor(x, 0, true)
	} else {
		r = ch.taylor(x, 1, true)
	}
	if neg {
		r = ch.neg(r)
	}
	return r
}

// reduce returns r = x - nπ/2 with |r| <= π/4 (approximately), and n mod 4.
// The reduction is performed with the working precision of ch increased by
// the exponent of x, then rounded back.
func (ch *chain) reduce(x bigfloat.Result) (bigfloat.Result, int) {
	rc := newChain(ch.prec()+uint(x.Val.Exp())+8, ch.c.MaxPrec)
	hp := rc.scale(rc.pi(), -1)
	n := rc.quo(x, hp)
	if rc.err != nil {
		ch.err = rc.err
		return failed, 0
	}
	k := n.Val.RoundInt()
	r := rc.sub(x, rc.mul(bigfloat.Exactly(bigfloat.NewBigInt(k)), hp))
	if rc.err != nil {
		ch.err = rc.err
		return failed, 0
	}
	q := new(big.Int).And(k, big.NewInt(3))
	return ch.round(r), int(q.Int64())
}
