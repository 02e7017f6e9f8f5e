// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
)

// A Bound is an upper bound m×2**e on the relative error of a computed value
// with respect to the exact result of the computation that produced it. The
// zero value is the bound of an exact result.
//
// Bounds are always rounded up: the mantissa of a non-zero bound is kept in
// [2**31, 2**32) and every operation on bounds returns a value that is not
// less than the exact one.
type Bound struct {
	mant uint64
	exp  int64
	inf  bool // relative error not bounded
}

var (
	// unbounded is the bound of a value whose magnitude is unknown, like
	// an overflowed result.
	unbounded = Bound{inf: true}
	// lost is the bound of a zero that stands for a value that may not be
	// zero, like an underflowed result or a cancellation of inexact
	// operands: |0 - x| / |x| = 1.
	lost = Pow2Bound(0)
	half = Pow2Bound(-1)
)

const (
	boundMantBits = 32
	// Exp values of exact and unbounded bounds.
	exactExp     = math.MinInt64 / 2
	unboundedExp = math.MaxInt64 / 2
)

// Pow2Bound returns the bound 2**e.
func Pow2Bound(e int64) Bound {
	return Bound{mant: 1, exp: e}.norm()
}

// Unbounded returns the bound of a result with unknown relative error.
func Unbounded() Bound {
	return unbounded
}

func (b Bound) norm() Bound {
	if b.inf || b.mant == 0 {
		return b
	}
	for b.mant >= 1<<boundMantBits {
		b.mant = b.mant>>1 + b.mant&1
		b.exp++
	}
	if s := bits.LeadingZeros64(b.mant) - (64 - boundMantBits); s > 0 {
		b.mant <<= uint(s)
		b.exp -= int64(s)
	}
	return b
}

// IsExact reports whether b is the bound of an exact value.
func (b Bound) IsExact() bool {
	return !b.inf && b.mant == 0
}

// IsUnbounded reports whether b carries no information.
func (b Bound) IsUnbounded() bool {
	return b.inf
}

// Exp returns the smallest e such that b < 2**e. Exact bounds return a large
// negative value and unbounded ones a large positive value.
func (b Bound) Exp() int64 {
	switch {
	case b.inf:
		return unboundedExp
	case b.mant == 0:
		return exactExp
	}
	return int64(bits.Len64(b.mant)) + b.exp
}

// Order returns the error order k of b with respect to precision prec, that
// is the smallest k >= 1 such that b < 2**(-prec+k). The order of an exact
// bound is 0.
func (b Bound) Order(prec uint) int64 {
	if b.IsExact() {
		return 0
	}
	if b.inf {
		return unboundedExp
	}
	k := b.Exp() + int64(prec)
	if k < 1 {
		k = 1
	}
	return k
}

// Add returns an upper bound of a+b.
func (b Bound) Add(c Bound) Bound {
	switch {
	case b.inf || c.inf:
		return unbounded
	case b.mant == 0:
		return c
	case c.mant == 0:
		return b
	}
	if b.exp < c.exp {
		b, c = c, b
	}
	d := b.exp - c.exp
	if d >= boundMantBits {
		// c is less than one unit of b
		return Bound{mant: b.mant + 1, exp: b.exp}.norm()
	}
	return Bound{mant: b.mant<<d + c.mant, exp: c.exp}.norm()
}

// Mul returns an upper bound of a×b. The product of an exact bound with any
// other bound is exact.
func (b Bound) Mul(c Bound) Bound {
	switch {
	case b.mant == 0 && !b.inf, c.mant == 0 && !c.inf:
		return Bound{}
	case b.inf || c.inf:
		return unbounded
	}
	return Bound{mant: b.mant * c.mant, exp: b.exp + c.exp}.norm()
}

// Shift returns b×2**n.
func (b Bound) Shift(n int64) Bound {
	if b.inf || b.mant == 0 {
		return b
	}
	b.exp += n
	return b
}

// Cmp compares a and b and returns -1, 0 or +1.
func (b Bound) Cmp(c Bound) int {
	switch {
	case b.inf && c.inf:
		return 0
	case b.inf:
		return 1
	case c.inf:
		return -1
	}
	be, ce := b.Exp(), c.Exp()
	switch {
	case be < ce:
		return -1
	case be > ce:
		return 1
	case b.mant == 0: // both exact
		return 0
	}
	// same binade: align mantissas
	bm, cm := b.mant, c.mant
	if b.exp > c.exp {
		bm <<= uint(b.exp - c.exp)
	} else {
		cm <<= uint(c.exp - b.exp)
	}
	switch {
	case bm < cm:
		return -1
	case bm > cm:
		return 1
	}
	return 0
}

// Inflate returns b + 2b², a bound of b/(1-b) for b <= 1/2. It turns the
// relative error of a denominator into the relative error of the quotient.
func Inflate(b Bound) Bound {
	if b.IsExact() {
		return b
	}
	if b.Cmp(half) > 0 {
		return unbounded
	}
	return b.Add(b.Mul(b).Shift(1))
}

// maxBound returns the larger of a and b.
func maxBound(a, b Bound) Bound {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// boundOf returns the bound n×2**e.
func boundOf(n uint64, e int64) Bound {
	return Bound{mant: n, exp: e}.norm()
}

// recipBound returns an upper bound of 1/n for n > 0.
func recipBound(n nat) Bound {
	t, s := topBits(n, boundMantBits)
	// 1/n <= 1/(t×2**s) <= ⌈2**63/t⌉×2**(-63-s)
	q := (uint64(1)<<63 + t - 1) / t
	return boundOf(q, -63-int64(s))
}

// topBits returns t, s such that t = ⌊n/2**s⌋ has at most k <= 64 bits and s
// is minimal.
func topBits(n nat, k int) (t uint64, s int) {
	l := n.bitLen()
	if l > k {
		s = l - k
	}
	m := nat(nil).shr(n, uint(s))
	for i := len(m) - 1; i >= 0; i-- {
		t = t<<(_W-1)<<1 | uint64(m[i])
	}
	return t, s
}

// Compose returns a bound of |Π(1+εi) - 1| for |εi| <= bs[i], that is the
// relative error of a value obtained by a chain of perturbations with the
// given relative errors. For S = Σ bs[i] <= 1 the bound is S + S². Larger
// sums are unbounded.
func Compose(bs ...Bound) Bound {
	var s Bound
	for _, b := range bs {
		s = s.Add(b)
	}
	if s.IsExact() || s.inf {
		return s
	}
	if s.Cmp(lost) > 0 {
		return unbounded
	}
	return s.Add(s.Mul(s))
}

// Float64 returns b as a float64, rounded up. Unbounded bounds return +Inf.
func (b Bound) Float64() float64 {
	if b.inf {
		return math.Inf(1)
	}
	f := math.Ldexp(float64(b.mant), int(max(b.exp, -1100)))
	if f == 0 && b.mant != 0 {
		return math.SmallestNonzeroFloat64
	}
	return f
}

func (b Bound) String() string {
	switch {
	case b.inf:
		return "unbounded"
	case b.mant == 0:
		return "exact"
	}
	return fmt.Sprintf("%d×2**%d", b.mant, b.exp)
}

// A Condition is a set of flags describing exceptional conditions raised by
// an operation or by any operation of the chain that produced its operands.
type Condition uint32

// Condition flags.
const (
	// Inexact is set when a result was rounded.
	Inexact Condition = 1 << iota
	// Overflow is set when a result saturated to ±Inf.
	Overflow
	// Underflow is set when a result saturated to ±0.
	Underflow
	// DivisionByZero is set when a finite non-zero value was divided by an
	// exact zero, or for the poles of functions like Atanh or Log.
	DivisionByZero
	// InvalidOperation is set for Inf-Inf, 0×Inf, 0/0 and Inf/Inf.
	InvalidOperation
	// DomainError is set when a function argument is outside of its
	// domain, like the square root of a negative number.
	DomainError
)

var condNames = [...]string{
	"inexact",
	"overflow",
	"underflow",
	"division by zero",
	"invalid operation",
	"domain error",
}

// Any reports whether any of the flags in f is set in c.
func (c Condition) Any(f Condition) bool {
	return c&f != 0
}

func (c Condition) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for i, name := range condNames {
		if c&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if rest := c &^ (1<<len(condNames) - 1); rest != 0 {
		names = append(names, fmt.Sprintf("unknown(%#x)", uint32(rest)))
	}
	return strings.Join(names, ", ")
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts a list of
// condition names separated by commas or '|', like "overflow|domain error".
func (c *Condition) UnmarshalText(text []byte) error {
	var r Condition
	fields := strings.FieldsFunc(string(text), func(ch rune) bool { return ch == ',' || ch == '|' })
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.EqualFold(f, "none") {
			continue
		}
		found := false
		for i, name := range condNames {
			if strings.EqualFold(f, name) || strings.EqualFold(f, strings.ReplaceAll(name, " ", "")) {
				r |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return errors.Newf("bigfloat: unknown condition %q", f)
		}
	}
	*c = r
	return nil
}

// ErrCondition marks the errors returned by Condition.GoError.
var ErrCondition = errors.New("bigfloat: trapped condition")

// GoError converts the flags of c that are set in traps into an error. The
// returned error matches ErrCondition with errors.Is.
func (c Condition) GoError(traps Condition) (Condition, error) {
	if t := c & traps; t != 0 {
		return c, errors.Mark(errors.Newf("bigfloat: %s", t), ErrCondition)
	}
	return c, nil
}

// A Result is the value of a computation together with a bound of its
// relative error with respect to the exact mathematical result and the
// conditions raised while computing it.
type Result struct {
	Val   *Float
	Err   Bound
	Flags Condition
	// Acc is the direction of the last rounding step, relative to the value
	// that was rounded.
	Acc Accuracy
}

// Exactly wraps a value known to be exact.
func Exactly(x *Float) Result {
	return Result{Val: x}
}

// AbsErrExp returns e such that the absolute error of r is below 2**e. For
// zeros, infinities and unbounded errors, the result is unboundedExp.
func (r Result) AbsErrExp() int64 {
	if r.Val.form != finite || r.Err.inf {
		if r.Val.form == zero && r.Err.IsExact() {
			return exactExp
		}
		return unboundedExp
	}
	if r.Err.IsExact() {
		return exactExp
	}
	return int64(r.Val.exp) + r.Err.Exp()
}

func (r Result) String() string {
	return fmt.Sprintf("%s (err %s, flags %s)", r.Val, r.Err, r.Flags)
}
