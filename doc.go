// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bigfloat implements arbitrary-precision binary floating-point
arithmetic with provable error bounds.

The implementation is heavily based on big.Float, but unlike big.Float, every
operation returns a Result: the rounded value, a Bound on its relative error
with respect to the exact mathematical result, and the Conditions raised
while computing it. Bounds compose: the error of each operand is carried into
the result of the operations that use it, so that the bound of a long
computation holds for its final value.

Floats are immutable. A Float carries neither a precision nor a rounding
mode; both are given to each operation by a Context:

	c := bigfloat.Context{Prec: 100, Mode: bigfloat.ToNearestEven}
	x := bigfloat.Exactly(bigfloat.NewInt(1))
	y := bigfloat.Exactly(bigfloat.NewInt(3))
	z, err := c.Quo(x, y) // z.Val ≈ 1/3, z.Err < 2**-100

Operations compute with a working precision of Prec plus guard bits. The
number of guard bits is given by GuardBits and the error bound they achieve
by Budget; for the basic operations the reported bound never exceeds the
budget. The working precision is limited by Context.MaxPrec (DefaultMaxPrec
when 0); operations that would exceed it fail with ErrPrecisionExceeded.

Special values follow IEEE-754: NaN propagates, Inf-Inf, 0×Inf, 0/0 and
Inf/Inf yield NaN with InvalidOperation, the division of a finite non-zero
value by zero yields ±Inf with DivisionByZero. These are not errors: they are
reported in Result.Flags. The errors returned by operations are limited to
invalid contexts and exceeded precision limits.

Zero, NaN and Inf values are handled exactly as values: their error bound is
either exact, when the operands were exact, or unbounded.

Notational convention: incoming operands are named x, y, a, b, and so on.
Operations are methods of Context, or functions taking a precision and
rounding mode:

	func (c Context) Add(x, y Result) (Result, error)
	func Add(x, y Result, prec uint, mode RoundingMode) (Result, error)

The math subpackage provides elementary functions with the same guarantees.
The context subpackage provides a sticky-error Context that turns trapped
conditions into errors.

Finally, *Float satisfies the fmt package's Formatter interface for formatted
printing and implements the gob and text marshaling interfaces.
*/
package bigfloat
