// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements conversions from and to decimal text.

package bigfloat

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// maxExactPow10 is the largest power of 10 computed exactly when parsing
// decimal text. Larger powers are computed with error tracking.
const maxExactPow10 = 1 << 10

// maxExactDigits bounds the exponent, in bits, of the values that Text
// expands exactly in decimal. Other values are formatted by math/big.
const maxExactDigits = 1 << 12

// Parse parses s as a decimal floating-point number and returns it rounded
// to prec bits in the given rounding mode. The syntax is the one of the
// General Decimal Arithmetic specification: an optional sign, digits with
// an optional decimal point, an optional exponent, or one of "Inf",
// "Infinity" and "NaN".
//
// The returned Result carries the error bound of the conversion: the value
// C×10**E is computed from the exact coefficient C and either an exact power
// of 10 or one computed with guard bits.
func Parse(s string, prec uint, mode RoundingMode) (Result, error) {
	c := Context{Prec: prec, Mode: mode}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Result{}, errors.Wrapf(err, "bigfloat: cannot parse %q", s)
	}
	switch d.Form {
	case apd.Infinite:
		return Exactly(Inf(d.Negative)), nil
	case apd.NaN, apd.NaNSignaling:
		return Exactly(NaN()), nil
	}
	n := d.Coeff.MathBigInt()
	if n.Sign() == 0 {
		return Exactly(Zero(d.Negative)), nil
	}
	v := Exactly(NewBigInt(n))
	if d.Negative {
		v = c.Neg(v)
	}
	e := int64(d.Exponent)
	if e == 0 {
		return c.Round(v)
	}
	ae := e
	if ae < 0 {
		ae = -ae
	}
	p, err := c.pow10(uint64(ae))
	if err != nil {
		return Result{}, err
	}
	if e > 0 {
		return c.Mul(v, p)
	}
	return c.Quo(v, p)
}

// MustParse is like Parse but panics on error. It simplifies the
// initialization of constants.
func MustParse(s string, prec uint, mode RoundingMode) Result {
	r, err := Parse(s, prec, mode)
	if err != nil {
		panic(err)
	}
	return r
}

// pow10 returns 10**n, exactly for small n and with c.Prec plus guard bits
// otherwise.
func (c Context) pow10(n uint64) (Result, error) {
	if n <= maxExactPow10 {
		return Exactly(NewBigInt(new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(n), nil))), nil
	}
	w := c.WithPrec(c.Prec + 2*uint(bits.Len64(n)) + minGuard)
	w.Mode = ToNearestEven
	z, y := Exactly(NewInt(10)), Exactly(NewInt(1))
	var err error
	for n > 1 {
		if n&1 != 0 {
			if y, err = w.Mul(y, z); err != nil {
				return Result{}, err
			}
		}
		if z, err = w.Mul(z, z); err != nil {
			return Result{}, err
		}
		if z.Val.IsInf() {
			return z, nil
		}
		n >>= 1
	}
	return w.Mul(z, y)
}

// Text converts x to a string according to the given format and number of
// digits, like big.Float.Text. The decimal formats 'e', 'E', 'f', 'g' and 'G'
// are computed exactly: a negative digits value selects the exact decimal
// expansion of x; for 'f' digits is the number of digits after the decimal
// point, otherwise it is the number of significant digits. Rounding is half
// to even. The other formats of big.Float ('b', 'p', 'x' and 'X') are
// delegated to it.
func (x *Float) Text(format byte, digits int) string {
	switch x.form {
	case nan:
		return "NaN"
	case inf:
		if x.neg {
			return "-Inf"
		}
		return "+Inf"
	}
	if format != 'e' && format != 'E' && format != 'f' && format != 'g' && format != 'G' {
		// binary and hexadecimal formats
		return x.BigFloat().Text(format, digits)
	}
	d, ok := x.decimal()
	if !ok {
		return x.BigFloat().Text(format, digits)
	}
	if digits >= 0 {
		ctx := apd.BaseContext.WithPrecision(uint32(digits))
		ctx.Rounding = apd.RoundHalfEven
		ctx.Traps = 0
		if format == 'f' {
			// room for the integer digits and the requested fraction
			ip := d.NumDigits() + int64(d.Exponent)
			if ip < 1 {
				ip = 1
			}
			ctx.Precision = uint32(ip) + uint32(digits) + 1
			_, _ = ctx.Quantize(d, d, -int32(digits))
		} else {
			if digits == 0 {
				ctx.Precision = 1
			}
			_, _ = ctx.Round(d, d)
		}
	}
	if format == 'e' || format == 'E' {
		return sciText(d, format)
	}
	return d.Text(format)
}

// sciText formats d with one digit before the decimal point, keeping the
// trailing zeros of the coefficient.
func sciText(d *apd.Decimal, format byte) string {
	s := d.Coeff.String()
	exp := int64(d.Exponent) + int64(len(s)) - 1
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte(s[0])
	if len(s) > 1 {
		b.WriteByte('.')
		b.WriteString(s[1:])
	}
	b.WriteByte(format)
	if exp < 0 {
		b.WriteByte('-')
		exp = -exp
	} else {
		b.WriteByte('+')
	}
	if exp < 10 {
		b.WriteByte('0')
	}
	fmt.Fprint(&b, exp)
	return b.String()
}

// decimal returns the exact decimal value of the finite or zero x. ok is
// false if the expansion would be too large.
func (x *Float) decimal() (d *apd.Decimal, ok bool) {
	d = new(apd.Decimal)
	d.Negative = x.neg
	if x.form == zero {
		return d, true
	}
	k := int64(x.exp) - int64(len(x.mant))*_W
	if k > maxExactDigits || -k > maxExactDigits {
		return nil, false
	}
	n := x.mant.big()
	if k >= 0 {
		n.Lsh(n, uint(k))
	} else {
		// m×2**k = m×5**-k×10**k
		n.Mul(n, new(big.Int).Exp(big.NewInt(5), big.NewInt(-k), nil))
		d.Exponent = int32(k)
	}
	d.Coeff.SetMathBigInt(n)
	d.Reduce(d)
	if d.Exponent > 0 {
		// keep integers in positional notation
		n = d.Coeff.MathBigInt()
		n.Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil))
		d.Coeff.SetMathBigInt(n)
		d.Exponent = 0
	}
	return d, true
}

// String formats x like x.Text('g', 10).
func (x *Float) String() string {
	return x.Text('g', 10)
}

// Format implements fmt.Formatter. It accepts the formats of Text, 'v',
// which is the same as 'g', and 's' which prints the exact decimal value.
// The precision is the digits argument of Text; the flags '+' and ' ' and
// the width are honored.
func (x *Float) Format(s fmt.State, verb rune) {
	digits, hasPrec := s.Precision()
	if !hasPrec {
		digits = -1
	}
	switch verb {
	case 'e', 'E', 'f', 'g', 'G', 'b', 'p', 'x', 'X':
		// ok
	case 'v':
		verb = 'g'
	case 's':
		verb, digits = 'g', -1
	default:
		fmt.Fprintf(s, "%%!%c(*bigfloat.Float=%s)", verb, x.String())
		return
	}
	var text string
	if x == nil {
		text = "<nil>"
	} else {
		text = x.Text(byte(verb), digits)
	}
	if text[0] != '-' && text[0] != '+' && x != nil && !x.IsNaN() {
		switch {
		case s.Flag('+'):
			text = "+" + text
		case s.Flag(' '):
			text = " " + text
		}
	} else if text[0] == '+' && !s.Flag('+') {
		text = text[1:]
	}
	if w, ok := s.Width(); ok && w > len(text) {
		pad := strings.Repeat(" ", w-len(text))
		if s.Flag('-') {
			text += pad
		} else {
			text = pad + text
		}
	}
	fmt.Fprint(s, text)
}
