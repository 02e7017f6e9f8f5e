// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Sqrt returns the square root of x rounded to c.Prec bits.
//
// The radicand is scaled to an even exponent with at least 2w+3 bits so that
// its integer square root has w+2 bits, w being the working precision. The
// remainder of the integer square root feeds the sticky bit.
//
// Special cases are:
//
//	Sqrt(±0) = ±0
//	Sqrt(+Inf) = +Inf
//	Sqrt(x < 0) = NaN (DomainError)
//	Sqrt(NaN) = NaN
func (c Context) Sqrt(x Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	a := x.Val
	switch {
	case a.form == nan:
		return nanResult(x.Flags), nil
	case a.form == zero:
		return Result{Val: a, Err: x.Err, Flags: x.Flags}, nil
	case a.neg:
		return nanResult(x.Flags | DomainError), nil
	case a.form == inf:
		return Result{Val: a, Err: infErr(x.Err, Bound{}), Flags: x.Flags}, nil
	}

	w := c.Prec + GuardBits(OpSqrt, c.Prec, x.Err.Order(c.Prec), 0)
	if err := c.CheckWidth(w); err != nil {
		return Result{}, err
	}
	m, u, t := truncate(a, w)
	s := max(2*int64(w)+4-int64(m.bitLen()), 0)
	if (u-s)&1 != 0 {
		s++
	}
	r := nat(nil).shl(m, uint(s))
	z := nat(nil).sqrt(r)
	exact := nat(nil).mul(z, z).cmp(r) == 0

	// √(1+ε) - 1 is within ε/2 for ε > 0 and within ε/(2-ε) for ε < 0.
	terms := make([]Bound, 0, 4)
	terms = append(terms, Inflate(x.Err.Shift(-1)))
	if t {
		terms = append(terms, Pow2Bound(-int64(w)))
		if exact {
			terms = append(terms, recipBound(z))
		}
	}
	return c.finish(z, (u-s)/2, false, t || !exact, x.Flags, terms...), nil
}
