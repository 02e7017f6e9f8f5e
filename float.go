// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"math"
	"math/big"
)

// A nonzero finite Float represents a multi-precision floating point number
//
//	sign × mantissa × 2**exponent
//
// with 0.5 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp. A Float may
// also be zero (+0, -0), infinite (+Inf, -Inf) or NaN.
//
// Unlike big.Float, a Float is an immutable value: it carries neither a
// precision nor a rounding mode nor an accuracy. Precision and rounding mode
// are arguments of every operation and the accuracy of a computed value is
// reported in the Result that holds it. Since Floats are never modified once
// created, they may share mantissa storage and may be used concurrently.
//
// The zero value of a Float is +0.
type Float struct {
	mant nat
	exp  int32
	form form
	neg  bool
}

var (
	posZero = &Float{}
	negZero = &Float{neg: true}
	posInf  = &Float{form: inf}
	negInf  = &Float{form: inf, neg: true}
	nanVal  = &Float{form: nan}
)

// Zero returns -0 if signbit is set, +0 otherwise.
func Zero(signbit bool) *Float {
	if signbit {
		return negZero
	}
	return posZero
}

// Inf returns -Inf if signbit is set, +Inf otherwise.
func Inf(signbit bool) *Float {
	if signbit {
		return negInf
	}
	return posInf
}

// NaN returns a NaN Float. NaNs carry no sign.
func NaN() *Float {
	return nanVal
}

// NewFloat returns the exact value of x. NaN values of x yield a NaN Float.
func NewFloat(x float64) *Float {
	switch {
	case math.IsNaN(x):
		return nanVal
	case math.IsInf(x, 0):
		return Inf(x < 0)
	case x == 0:
		return Zero(math.Signbit(x))
	}
	fmant, exp := math.Frexp(x) // get normalized mantissa
	z := &Float{form: finite, neg: x < 0, exp: int32(exp)}
	z.mant = z.mant.setUint64(1<<63 | math.Float64bits(fmant)<<11).trim()
	return z
}

// NewInt returns the exact value of x.
func NewInt(x int64) *Float {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	z, _ := newFromNat(x < 0, nat(nil).setUint64(u), 0)
	return z
}

// NewUint64 returns the exact value of x.
func NewUint64(x uint64) *Float {
	z, _ := newFromNat(false, nat(nil).setUint64(x), 0)
	return z
}

// NewBigInt returns the exact value of x. Integers longer than MaxExp bits
// overflow to ±Inf.
func NewBigInt(x *big.Int) *Float {
	z, _ := newFromNat(x.Sign() < 0, nat(nil).setBig(x), 0)
	return z
}

// NewBigFloat returns the exact value of x.
func NewBigFloat(x *big.Float) *Float {
	switch {
	case x.IsInf():
		return Inf(x.Signbit())
	case x.Sign() == 0:
		return Zero(x.Signbit())
	}
	m := new(big.Float)
	exp := x.MantExp(m)
	prec := int(m.MinPrec())
	m.SetMantExp(m, prec)
	i, _ := m.Int(nil)
	z, _ := newFromNat(x.Signbit(), nat(nil).setBig(i), int64(exp)-int64(prec))
	return z
}

// NewFromBits returns the exact value (-1)**neg × mant × 2**exp where mant
// holds the little-endian words of an unsigned integer. The returned
// Condition reports Overflow or Underflow if the value is outside of the
// exponent range, in which case the result is ±Inf or ±0.
func NewFromBits(neg bool, mant []Word, exp int) (*Float, Condition) {
	return newFromNat(neg, nat(nil).set(mant), int64(exp))
}

// newFromNat returns the exact value ±n×2**unit. It takes ownership of n.
func newFromNat(neg bool, n nat, unit int64) (*Float, Condition) {
	n = n.norm()
	if len(n) == 0 {
		return Zero(neg), 0
	}
	exp := unit + int64(n.bitLen())
	fnorm(n)
	return makeFinite(neg, n.trim(), exp)
}

// makeFinite wraps an already normalized mantissa, handling exponent
// overflow and underflow.
func makeFinite(neg bool, m nat, exp int64) (*Float, Condition) {
	switch {
	case exp > MaxExp:
		return Inf(neg), Overflow | Inexact
	case exp < MinExp:
		return Zero(neg), Underflow | Inexact
	}
	z := &Float{mant: m, exp: int32(exp), form: finite, neg: neg}
	if debugFloat {
		z.validate()
	}
	return z, 0
}

// Bits returns a copy of the mantissa words of x, least significant word
// first. The mantissa is normalized (its most significant bit is set) and
// interpreted as a fraction in [0.5, 1). The result is nil if x is not
// finite.
func (x *Float) Bits() []Word {
	if x.form != finite {
		return nil
	}
	return append([]Word(nil), x.mant...)
}

// Exp returns the exponent of x such that x = mant × 2**exp with
// 0.5 <= |mant| < 1. The result is 0 if x is not finite.
func (x *Float) Exp() int {
	if x.form != finite {
		return 0
	}
	return int(x.exp)
}

// MinPrec returns the minimum precision required to represent x exactly. The
// result is 0 for ±0, ±Inf and NaN.
func (x *Float) MinPrec() uint {
	if x.form != finite {
		return 0
	}
	return uint(len(x.mant))*_W - x.mant.trailingZeroBits()
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0 or NaN
//	+1 if x >   0
func (x *Float) Sign() int {
	if debugFloat {
		x.validate()
	}
	if x.form == zero || x.form == nan {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero.
func (x *Float) Signbit() bool {
	return x.neg
}

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool {
	return x.form == zero
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool {
	return x.form == inf
}

// IsNaN reports whether x is a NaN.
func (x *Float) IsNaN() bool {
	return x.form == nan
}

// IsFinite reports whether x is neither infinite nor NaN.
func (x *Float) IsFinite() bool {
	return x.form == zero || x.form == finite
}

// IsInt reports whether x is an integer. ±Inf and NaN are not integers.
func (x *Float) IsInt() bool {
	if x.form != finite {
		return x.form == zero
	}
	if x.exp <= 0 {
		return false
	}
	return uint(x.exp) >= x.MinPrec()
}

// Neg returns -x. The result shares x's mantissa.
func (x *Float) Neg() *Float {
	if x.form == nan {
		return x
	}
	z := *x
	z.neg = !z.neg
	return &z
}

// Abs returns |x|. The result shares x's mantissa.
func (x *Float) Abs() *Float {
	if !x.neg {
		return x
	}
	return x.Neg()
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
//
// Cmp panics with ErrNaN if x or y is a NaN.
func (x *Float) Cmp(y *Float) int {
	if debugFloat {
		x.validate()
		y.validate()
	}
	if x.form == nan || y.form == nan {
		panic(ErrNaN{"bigfloat: comparison with NaN"})
	}

	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return y.ucmp(x)
	case +1:
		return x.ucmp(y)
	}

	return 0
}

// CmpAbs compares the absolute values of x and y.
func (x *Float) CmpAbs(y *Float) int {
	return x.Abs().Cmp(y.Abs())
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
func (x *Float) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		m = -m
	}
	return m
}

// ucmp returns -1, 0, or +1, depending on whether
// |x| < |y|, |x| == |y|, or |x| > |y|.
// x and y must have a non-empty mantissa and valid exponent.
func (x *Float) ucmp(y *Float) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp

	// compare mantissas
	i := len(x.mant)
	j := len(y.mant)
	for i > 0 || j > 0 {
		var xm, ym Word
		if i > 0 {
			i--
			xm = x.mant[i]
		}
		if j > 0 {
			j--
			ym = y.mant[j]
		}
		switch {
		case xm < ym:
			return -1
		case xm > ym:
			return +1
		}
	}

	return 0
}

// scale returns x × 2**n exactly, or the saturated value with the
// corresponding condition.
func (x *Float) scale(n int64) (*Float, Condition) {
	if x.form != finite || n == 0 {
		return x, 0
	}
	return makeFinite(x.neg, x.mant, int64(x.exp)+n)
}

// Float64 returns the float64 value nearest to x and the accuracy of the
// conversion. A NaN x returns a float64 NaN and Exact.
func (x *Float) Float64() (float64, Accuracy) {
	switch x.form {
	case nan:
		return math.NaN(), Exact
	case inf:
		return math.Inf(1 - 2*b2i(x.neg)), Exact
	case zero:
		if x.neg {
			return math.Copysign(0, -1), Exact
		}
		return 0, Exact
	}
	f, acc := x.BigFloat().Float64()
	return f, Accuracy(acc)
}

// BigFloat returns the exact value of x as a *big.Float. Values whose lowest
// mantissa bit is outside of big.Float's exponent range are rounded by
// big.Float. BigFloat panics with ErrNaN if x is a NaN.
func (x *Float) BigFloat() *big.Float {
	switch x.form {
	case nan:
		panic(ErrNaN{"bigfloat: NaN has no big.Float value"})
	case inf:
		return new(big.Float).SetInf(x.neg)
	case zero:
		z := new(big.Float)
		if x.neg {
			z.Neg(z)
		}
		return z
	}
	i := x.mant.big()
	z := new(big.Float).SetInt(i)
	z.SetMantExp(z, int(x.exp)-len(x.mant)*_W)
	if x.neg {
		z.Neg(z)
	}
	return z
}

// Int returns the result of truncating x towards zero and the accuracy of
// the conversion. Int panics with ErrNaN if x is a NaN and returns nil for
// ±Inf.
func (x *Float) Int() (*big.Int, Accuracy) {
	if x.form == inf {
		return nil, makeAcc(x.neg)
	}
	i, acc := x.BigFloat().Int(nil)
	return i, Accuracy(acc)
}

// RoundInt returns x rounded to the nearest integer, ties away from zero.
// RoundInt panics with ErrNaN if x is not finite.
func (x *Float) RoundInt() *big.Int {
	switch x.form {
	case zero:
		return new(big.Int)
	case inf, nan:
		panic(ErrNaN{"bigfloat: RoundInt of non-finite value"})
	}
	if x.exp < 0 {
		return new(big.Int)
	}
	// keep exactly one fractional bit, add one half and drop it
	var n nat
	if s := int64(len(x.mant))*_W - int64(x.exp) - 1; s >= 0 {
		n = n.shr(x.mant, uint(s))
	} else {
		n = n.shl(x.mant, uint(-s))
	}
	n = n.add(n, natOne)
	n = n.shr(n, 1)
	i := n.big()
	if x.neg {
		i.Neg(i)
	}
	return i
}

func (x *Float) validate() {
	if !debugFloat {
		// avoid performance bugs
		panic("validate called but debugFloat is not set")
	}
	if x.form != finite {
		return
	}
	m := len(x.mant)
	if m == 0 {
		panic("nonzero finite number with empty mantissa")
	}
	const msb = 1 << (_W - 1)
	if x.mant[m-1]&msb == 0 {
		panic(fmt.Sprintf("msb not set in last word %#x of %v", x.mant[m-1], x.mant))
	}
	if x.mant[0] == 0 {
		panic(fmt.Sprintf("least significant word of %v is zero", x.mant))
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
