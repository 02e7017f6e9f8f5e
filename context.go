// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"github.com/cockroachdb/errors"
)

// A Context holds the parameters of the operations performed with it: the
// target precision, the rounding mode, and the largest working precision an
// operation may use.
//
// Contexts are small values; the methods of a Context are safe for
// concurrent use.
type Context struct {
	// Prec is the precision, in bits, of the results. It must be > 0.
	Prec uint
	// Mode is the rounding mode of the final rounding step.
	Mode RoundingMode
	// MaxPrec is the largest working precision an operation may use,
	// including guard bits. DefaultMaxPrec is used if 0.
	MaxPrec uint
}

// WithPrec returns a copy of c with its precision set to prec.
func (c Context) WithPrec(prec uint) Context {
	c.Prec = prec
	return c
}

// Limit returns the effective working precision limit of c.
func (c Context) Limit() uint {
	if c.MaxPrec == 0 {
		return DefaultMaxPrec
	}
	return c.MaxPrec
}

// Validate returns an error if c.Prec is 0 or above c.Limit().
func (c Context) Validate() error {
	if c.Prec == 0 {
		return errors.WithStack(ErrInvalidPrecision)
	}
	return c.CheckWidth(c.Prec)
}

// CheckWidth returns an ErrPrecisionExceeded error if the working precision
// w is above c.Limit().
func (c Context) CheckWidth(w uint) error {
	if lim := c.Limit(); w > lim {
		return errors.Wrapf(ErrPrecisionExceeded, "working precision %d above limit %d", w, lim)
	}
	return nil
}

// Rounding returns the bound of a single rounding step to c.Prec bits.
func (c Context) Rounding() Bound {
	return roundingBound(c.Prec, c.Mode)
}

// finish rounds the magnitude n×2**unit to c.Prec bits and composes the
// relative error of the result from terms and the rounding error. The
// meaning of sticky is the same as for round.
func (c Context) finish(n nat, unit int64, neg, sticky bool, flags Condition, terms ...Bound) Result {
	z, acc, cond := round(n, unit, neg, sticky, c.Prec, c.Mode)
	r := Result{Val: z, Acc: acc, Flags: flags | cond}
	switch {
	case cond&Overflow != 0:
		r.Err = unbounded
	case cond&Underflow != 0:
		r.Err = lost
	default:
		if acc != Exact {
			terms = append(terms, c.Rounding())
		}
		r.Err = Compose(terms...)
	}
	return r
}

// nanResult returns a NaN result with the given conditions.
func nanResult(flags Condition) Result {
	return Result{Val: nanVal, Err: unbounded, Flags: flags}
}

// zeroErr returns the bound of a zero computed from operands with bounds a
// and b: exact if both are, lost otherwise.
func zeroErr(a, b Bound) Bound {
	if a.IsExact() && b.IsExact() {
		return Bound{}
	}
	return lost
}

// infErr returns the bound of an infinite result computed from operands with
// bounds a and b.
func infErr(a, b Bound) Bound {
	if a.inf || b.inf {
		return unbounded
	}
	return Bound{}
}

// Round rounds x to c.Prec bits.
func (c Context) Round(x Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	z, acc, cond := roundFloat(x.Val, c.Prec, c.Mode)
	r := Result{Val: z, Err: x.Err, Acc: acc, Flags: x.Flags | cond}
	switch {
	case cond&Overflow != 0:
		r.Err = unbounded
	case acc != Exact:
		r.Err = Compose(x.Err, c.Rounding())
	}
	return r, nil
}

// Scale returns x×2**n. The result is exact unless it overflows or
// underflows.
func (c Context) Scale(x Result, n int) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	z, cond := x.Val.scale(int64(n))
	r := Result{Val: z, Err: x.Err, Acc: x.Acc, Flags: x.Flags | cond}
	switch {
	case cond&Overflow != 0:
		r.Err = unbounded
	case cond&Underflow != 0:
		r.Err = lost
	}
	return r, nil
}

// Neg returns -x. The result is exact.
func (c Context) Neg(x Result) Result {
	x.Val = x.Val.Neg()
	x.Acc = -x.Acc
	return x
}

// Add returns x+y rounded to prec bits in the given mode.
func Add(x, y Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Add(x, y)
}

// Sub returns x-y rounded to prec bits in the given mode.
func Sub(x, y Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Sub(x, y)
}

// Mul returns x×y rounded to prec bits in the given mode.
func Mul(x, y Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Mul(x, y)
}

// Quo returns x/y rounded to prec bits in the given mode.
func Quo(x, y Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Quo(x, y)
}

// Sqrt returns √x rounded to prec bits in the given mode.
func Sqrt(x Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Sqrt(x)
}

// Round returns x rounded to prec bits in the given mode.
func Round(x Result, prec uint, mode RoundingMode) (Result, error) {
	return Context{Prec: prec, Mode: mode}.Round(x)
}
