// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"math"
	"math/bits"
	"strconv"
)

// An Op identifies an operation kind for the purpose of error budgeting.
type Op uint8

// Operation kinds.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpQuo
	OpSqrt
	OpRound
	OpSin
	OpCos
	OpSinh
	OpAtan
	OpAtanh
	OpPow
)

var opNames = [...]string{
	OpAdd:   "add",
	OpSub:   "sub",
	OpMul:   "mul",
	OpQuo:   "quo",
	OpSqrt:  "sqrt",
	OpRound: "round",
	OpSin:   "sin",
	OpCos:   "cos",
	OpSinh:  "sinh",
	OpAtan:  "atan",
	OpAtanh: "atanh",
	OpPow:   "pow",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

func (op Op) series() bool {
	return op >= OpSin && int(op) < len(opNames)
}

// minGuard is the number of guard bits added on top of the error order of
// the operands for basic arithmetic.
const minGuard = 4

// minSeriesTerms is the smallest n such that Σ_{k>n} (2e/k)**k < 1, the
// number of terms below which the factorial decay of a Taylor series cannot
// be relied upon.
var minSeriesTerms = seriesTail()

func seriesTail() int {
	for n := 1; ; n++ {
		var s float64
		for k := n + 1; k <= n+64; k++ {
			s += math.Pow(2*math.E/float64(k), float64(k))
		}
		if s < 1 {
			return n
		}
	}
}

// SeriesTerms returns the number of terms n >= minSeriesTerms of a Taylor
// series with factorial decay such that the first neglected term is below
// 2**-prec for an argument |x| < 2**xexp. Positive exponents are clamped to
// 0 since series arguments are always reduced below 1.
func SeriesTerms(prec uint, xexp int) int {
	if xexp > 0 {
		xexp = 0
	}
	lf := 1.0 // log2((n+1)!) for n = 1
	for n := 1; ; n++ {
		if n > 1 {
			lf += math.Log2(float64(n + 1))
		}
		if n >= minSeriesTerms && float64((n+1)*xexp)-lf < -float64(prec) {
			return n
		}
	}
}

// errOrder clamps the error order k of an operand to [0, prec].
func errOrder(prec uint, k int64) uint {
	switch {
	case k <= 0:
		return 0
	case k > int64(prec):
		return prec
	}
	return uint(k)
}

// GuardBits returns the number of bits to add to prec for the working
// precision of op, given the error orders k1 and k2 of its operands (0 for
// exact operands).
func GuardBits(op Op, prec uint, k1, k2 int64) uint {
	k := max(errOrder(prec, k1), errOrder(prec, k2))
	switch op {
	case OpRound:
		return 0
	case OpAdd, OpSub, OpMul, OpQuo:
		return k + minGuard
	case OpSqrt:
		return k + umax((prec+1)/2, minGuard)
	}
	n := SeriesTerms(prec, 0)
	return k + uint(bits.Len(uint(n))) + 6
}

// roundingBound returns the relative error of a single rounding to prec bits
// in the given mode: half an ulp for nearest modes, a full ulp for directed
// ones.
func roundingBound(prec uint, mode RoundingMode) Bound {
	if mode.directed() {
		return Pow2Bound(1 - int64(prec))
	}
	return Pow2Bound(-int64(prec))
}

// orderBound returns the bound of an operand with error order k.
func orderBound(prec uint, k int64) Bound {
	if k <= 0 {
		return Bound{}
	}
	if k >= unboundedExp {
		return unbounded
	}
	return Pow2Bound(k - int64(prec))
}

// Budget returns an a priori bound of the relative error of op at
// precision prec in the given rounding mode, for operands of error orders
// k1 and k2 (0 for exact operands). Results returned by the operations of
// this package never report a larger bound. For OpSub, the bound assumes
// that no cancellation occurs, see SubBudget.
//
// The budget of the series operations only holds for exact arguments: the
// propagation of an argument error depends on the argument and is reported
// by each function. Budget returns an unbounded bound for series operations
// on inexact arguments.
func Budget(op Op, prec uint, mode RoundingMode, k1, k2 int64) Bound {
	w := int64(prec + GuardBits(op, prec, k1, k2))
	a, b := orderBound(prec, k1), orderBound(prec, k2)
	rho := roundingBound(prec, mode)
	switch op {
	case OpAdd:
		return Compose(maxBound(a, b), Pow2Bound(2-w), rho)
	case OpSub:
		return SubBudget(prec, mode, k1, k2, 0)
	case OpMul:
		d := Pow2Bound(1 - w)
		return Compose(a, b, d, d, Pow2Bound(2-w), rho)
	case OpQuo:
		d := Pow2Bound(1 - w)
		return Compose(a, Inflate(b), d, Inflate(d), Pow2Bound(-w), rho)
	case OpSqrt:
		return Compose(Inflate(a.Shift(-1)), Pow2Bound(-w), Pow2Bound(-w), rho)
	case OpRound:
		return Compose(a, rho)
	}
	if !a.IsExact() || !b.IsExact() {
		return unbounded
	}
	return Compose(Pow2Bound(-int64(prec)-1), rho)
}

// SubBudget returns the a priori bound of a subtraction that cancels c bits,
// that is when |x - y| >= max(|x|, |y|)/2**(c+1).
func SubBudget(prec uint, mode RoundingMode, k1, k2 int64, c uint) Bound {
	a, b := orderBound(prec, k1), orderBound(prec, k2)
	var eta Bound
	if c < boundMantBits {
		eta = a.Shift(int64(c) + 1).Add(b.Mul(boundOf(1<<(c+1)-1, 0)))
	} else {
		eta = a.Add(b).Shift(int64(c) + 1)
	}
	return Compose(Inflate(eta.Mul(onePlus(maxBound(a, b).Shift(1)))), Pow2Bound(-int64(prec)-3), roundingBound(prec, mode))
}

// onePlus returns 1 + b.
func onePlus(b Bound) Bound {
	return lost.Add(b)
}
