// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// roundMant rounds the normalized mantissa m to prec bits according to mode
// and returns the rounded mantissa, the exponent carry (0 or 1) and the
// accuracy of the rounded value with respect to the exact one.
//
// sticky reports that the exact value has non-zero bits below the last word
// of m. In that case m must have at least prec+1 significant bits so that
// the rounding bit is known.
//
// m must be owned by the caller: it is modified in place and the result
// aliases it.
//
// CAUTION: The rounding modes ToNegativeInf, ToPositiveInf are affected by
// the sign. For correct rounding, neg must be the sign of the rounded value.
func roundMant(m nat, prec uint, mode RoundingMode, neg, sticky bool) (z nat, carry int64, acc Accuracy) {
	if debugFloat && (len(m) == 0 || m[len(m)-1]&(1<<(_W-1)) == 0) {
		panic("roundMant: mantissa not normalized")
	}

	bits := uint(len(m)) * _W // present mantissa length in bits
	if bits <= prec {
		if debugFloat && sticky {
			panic("roundMant: sticky bit with unknown rounding bit")
		}
		// mantissa fits => nothing to do
		return m.trim(), 0, Exact
	}
	// bits > prec

	// Rounding is based on two bits: the rounding bit (rbit) and the
	// sticky bit (sbit). The rbit is the bit immediately before the
	// prec leading mantissa bits (the "0.5"). The sbit is set if any
	// of the bits before the rbit are set (the "0.25", "0.125", etc.):
	//
	//   rbit  sbit  => "fractional part"
	//
	//   0     0        == 0
	//   0     1        >  0  , < 0.5
	//   1     0        == 0.5
	//   1     1        >  0.5, < 1.0

	// bits > prec: mantissa too large => round
	r := bits - prec - 1 // rounding bit position; r >= 0
	if debugFloat && sticky && m.bitLen() < int(prec)+1 {
		panic("roundMant: sticky bit with unknown rounding bit")
	}
	rbit := m.bit(r) & 1 // rounding bit; be safe and ensure it's a single bit
	sbit := uint(0)
	if sticky || m.sticky(r) != 0 {
		sbit = 1
	}

	// cut off extra words
	n := (prec + (_W - 1)) / _W // mantissa length in words for desired precision
	if uint(len(m)) > n {
		m = m[uint(len(m))-n:] // move n last words to front
	}

	// determine number of trailing zero bits (ntz) and compute lsb mask of mantissa's least-significant word
	ntz := n*_W - prec // 0 <= ntz < _W
	lsb := Word(1) << ntz

	acc = Exact
	if rbit|sbit != 0 {
		// Make rounding decision: The result mantissa is truncated ("rounded down")
		// by default. Decide if we need to increment, or "round up", the (unsigned)
		// mantissa.
		inc := false
		switch mode {
		case ToNegativeInf:
			inc = neg
		case ToZero:
			// nothing to do
		case ToNearestEven:
			inc = rbit != 0 && (sbit != 0 || m[0]&lsb != 0)
		case ToNearestAway:
			inc = rbit != 0
		case AwayFromZero:
			inc = true
		case ToPositiveInf:
			inc = !neg
		default:
			panic("unreachable")
		}

		// A positive result (!neg) is Above the exact result if we increment,
		// and it's Below if we truncate (Exact results require no rounding).
		// For a negative result (neg) it's exactly the opposite.
		acc = makeAcc(inc != neg)

		if inc {
			// add 1 to mantissa
			if addVW(m, m, lsb) != 0 {
				// mantissa overflow => adjust exponent
				m[n-1] = 1 << (_W - 1)
				carry = 1
			}
		}
	}

	// zero out trailing bits in least-significant word
	m[0] &^= lsb - 1

	return m.trim(), carry, acc
}

// round rounds the unsigned integer n×2**unit to prec bits. If sticky is set,
// the exact magnitude lies strictly between n×2**unit and (n+1)×2**unit; n
// must then have at least prec+1 bits. n is consumed.
//
// The result is range checked: out of range exponents produce ±Inf or ±0
// with the Overflow or Underflow condition. The returned condition includes
// Inexact whenever acc != Exact.
func round(n nat, unit int64, neg, sticky bool, prec uint, mode RoundingMode) (*Float, Accuracy, Condition) {
	n = n.norm()
	if len(n) == 0 {
		if debugFloat && sticky {
			panic("round: sticky bit on zero magnitude")
		}
		return Zero(neg), Exact, 0
	}
	exp := unit + int64(n.bitLen())
	fnorm(n)
	m, carry, acc := roundMant(n, prec, mode, neg, sticky)
	exp += carry

	var cond Condition
	if acc != Exact {
		cond = Inexact
	}
	z, c := makeFinite(neg, m, exp)
	if c != 0 {
		if c&Overflow != 0 {
			acc = makeAcc(!neg)
		} else {
			acc = makeAcc(neg)
		}
	}
	return z, acc, cond | c
}

// roundFloat rounds the finite, non-zero x to prec bits. x is not modified.
func roundFloat(x *Float, prec uint, mode RoundingMode) (*Float, Accuracy, Condition) {
	if x.form != finite || uint(len(x.mant))*_W <= prec {
		return x, Exact, 0
	}
	m := nat(nil).set(x.mant)
	m, carry, acc := roundMant(m, prec, mode, x.neg, false)
	if acc == Exact {
		return x, Exact, 0
	}
	z, c := makeFinite(x.neg, m, int64(x.exp)+carry)
	if c != 0 {
		acc = makeAcc(!x.neg)
	}
	return z, acc, c | Inexact
}
