// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// FMA returns x×y+u computed with only one rounding to c.Prec bits. That is,
// FMA performs the fused multiply-add of x, y and u.
//
// The product is computed exactly, so that its only error is the propagated
// error of x and y, and the sum is computed as by Add or Sub, including the
// handling of cancellations. The reported error is therefore that of a single
// addition of x×y and u.
//
// Products outside of the exponent range are rounded to ±Inf or ±0 before
// the addition, with the Overflow or Underflow condition.
func (c Context) FMA(x, y, u Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	p, err := c.exactMul(x, y)
	if err != nil {
		return Result{}, err
	}
	return c.addSub(p, u, false)
}

// FMA returns x×y+u computed with only one rounding to prec bits in the given
// rounding mode.
func FMA(x, y, u Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.FMA(x, y, u)
}

// exactMul returns the exact product x×y. Products of special values and out
// of range products are those of Mul.
func (c Context) exactMul(x, y Result) (Result, error) {
	a, b := x.Val, y.Val
	if a.form != finite || b.form != finite {
		return c.Mul(x, y)
	}
	n := nat(nil).mul(a.mant, b.mant)
	unit := int64(a.exp) - int64(len(a.mant))*_W + int64(b.exp) - int64(len(b.mant))*_W
	z, cond := newFromNat(a.neg != b.neg, n, unit)
	if cond != 0 {
		return c.Mul(x, y)
	}
	return Result{Val: z, Err: Compose(x.Err, y.Err), Flags: x.Flags | y.Flags}, nil
}
