// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/db47h/bigfloat"
)

// tiny returns x's approximation f(x) = y for |x| so small that the first
// neglected term of the series is below 2**-(w+2) relative to y. The error
// of the approximation is below x**2.
func tiny(x, y bigfloat.Result, w uint) (bigfloat.Result, bool) {
	ex := x.Val.Exp()
	if 2*ex >= -int(w)-2 {
		return y, false
	}
	y.Err = bigfloat.Compose(y.Err, x.Err, bigfloat.Pow2Bound(2*int64(ex)))
	return y, true
}

// remainder composes into sum.Err the bound of the series remainder, which
// is at most twice the last computed term t.
func remainder(sum, t bigfloat.Result) bigfloat.Result {
	if t.Val.IsZero() || !sum.Val.IsFinite() {
		return sum
	}
	// |t| < 2**(et+1) with its own error and |sum| >= 2**(es-2)
	sum.Err = bigfloat.Compose(sum.Err, bigfloat.Pow2Bound(int64(t.Val.Exp())-int64(sum.Val.Exp())+4))
	return sum
}

// converged reports whether the term t is negligible with respect to sum at
// the working precision of ch.
func (ch *chain) converged(sum, t bigfloat.Result) bool {
	return t.Val.IsZero() || t.Val.Exp() < sum.Val.Exp()-int(ch.prec())-1
}

// taylor returns the sum of the series Σ s**k x**(2k+start)/(2k+start)! for
// start 0 or 1, with s = -1 if alt is set and 1 otherwise: cos, sin, cosh or
// sinh. |x| must be below 1.
//
// Summation stops once a term falls below the current sum scaled by
// 2**-(w+1). If this does not happen within 2n+8 terms, n being the number of
// terms needed at this precision, the result is reported as unbounded so that
// the caller restarts with a larger precision.
func (ch *chain) taylor(x bigfloat.Result, start int, alt bool) bigfloat.Result {
	t := x
	if start == 0 {
		t = one
	}
	if r, ok := tiny(x, t, ch.prec()); ok {
		return r
	}
	var (
		x2  = ch.mul(x, x)
		sum = t
		n   = bigfloat.SeriesTerms(ch.prec(), x.Val.Exp())
		k   = start
	)
	for i := 0; ; i++ {
		if ch.err != nil {
			return failed
		}
		if i > 2*n+8 {
			sum.Err = bigfloat.Unbounded()
			return sum
		}
		t = ch.quo(ch.mul(t, x2), exact(int64((k+1)*(k+2))))
		k += 2
		if alt {
			t = ch.neg(t)
		}
		sum = ch.add(sum, t)
		if ch.converged(sum, t) {
			break
		}
	}
	return remainder(sum, t)
}

// atanSeries returns the sum of the series Σ s**k x**(2k+1)/(2k+1) with
// s = -1 if alt is set (arctan) and 1 otherwise (arctanh). |x| must be below
// 1/2.
//
// Terms are computed as x**(2k+1) divided by the exact integer 2k+1.
func (ch *chain) atanSeries(x bigfloat.Result, alt bool) bigfloat.Result {
	if r, ok := tiny(x, x, ch.prec()); ok {
		return r
	}
	var (
		ex    = x.Val.Exp()
		x2    = ch.mul(x, x)
		p     = x
		sum   = x
		t     bigfloat.Result
		limit = (int(ch.prec())+8)/(-2*ex) + 8
	)
	for k := 1; ; k++ {
		if ch.err != nil {
			return failed
		}
		if k > limit {
			sum.Err = bigfloat.Unbounded()
			return sum
		}
		p = ch.mul(p, x2)
		if alt {
			p = ch.neg(p)
		}
		t = ch.quo(p, exact(int64(2*k+1)))
		sum = ch.add(sum, t)
		if ch.converged(sum, t) {
			break
		}
	}
	return remainder(sum, t)
}
