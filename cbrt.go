// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Cbrt returns the cube root of x rounded to c.Prec bits.
//
// As for Sqrt, the radicand is scaled to an exponent that is a multiple of 3
// with at least 3w+6 bits so that its integer cube root has w+2 bits. The
// remainder of the integer cube root feeds the sticky bit.
//
// Special cases are:
//
//	Cbrt(±0) = ±0
//	Cbrt(±Inf) = ±Inf
//	Cbrt(NaN) = NaN
func (c Context) Cbrt(x Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	a := x.Val
	switch a.form {
	case nan:
		return nanResult(x.Flags), nil
	case zero:
		return Result{Val: a, Err: x.Err, Flags: x.Flags}, nil
	case inf:
		return Result{Val: a, Err: infErr(x.Err, Bound{}), Flags: x.Flags}, nil
	}

	w := c.Prec + GuardBits(OpSqrt, c.Prec, x.Err.Order(c.Prec), 0)
	if err := c.CheckWidth(w); err != nil {
		return Result{}, err
	}
	m, u, t := truncate(a, w)
	s := max(3*int64(w)+6-int64(m.bitLen()), 0)
	s += ((u-s)%3 + 3) % 3
	r := nat(nil).shl(m, uint(s))
	z := nat(nil).cbrt(r)
	exact := nat(nil).mul(z, nat(nil).mul(z, z)).cmp(r) == 0

	// ∛(1+ε) - 1 is within ε/3 for ε > 0 and within ε/(3-3ε) for ε < 0.
	terms := make([]Bound, 0, 4)
	terms = append(terms, Inflate(x.Err.Shift(-1)))
	if t {
		terms = append(terms, Pow2Bound(-int64(w)))
		if exact {
			terms = append(terms, recipBound(z))
		}
	}
	return c.finish(z, (u-s)/3, a.neg, t || !exact, x.Flags, terms...), nil
}

// Cbrt returns the cube root of x rounded to prec bits in the given rounding
// mode.
func Cbrt(x Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Cbrt(x)
}
