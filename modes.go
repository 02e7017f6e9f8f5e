// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file mirrors types and constants from math/big.

package bigfloat

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Exponent and precision limits.
const (
	MaxExp  = math.MaxInt32  // largest supported exponent
	MinExp  = math.MinInt32  // smallest supported exponent
	MaxPrec = math.MaxUint32 // largest (theoretically) supported precision; likely memory-limited

	// DefaultMaxPrec is the working precision limit used when a Context does
	// not set one. Operations whose guard bits would push the working
	// precision above it fail with ErrPrecisionExceeded.
	DefaultMaxPrec = 1 << 26
)

// Internal representation: The mantissa bits x.mant of a nonzero finite
// Float x are stored in a nat slice long enough to hold up to the precision
// x was rounded to. The mantissa is normalized such that the msb of x.mant
// == 1 and its low zero words are dropped. Thus, if the precision is not a
// multiple of the Word size _W, x.mant[0] has trailing zero bits.
//
// A zero, infinite or NaN Float x ignores x.mant and x.exp.
//
// x                 form      neg      mant         exp
// ----------------------------------------------------------
// ±0                zero      sign     -            -
// 0 < |x| < +Inf    finite    sign     mantissa     exponent
// ±Inf              inf       sign     -            -
// NaN               nan       -        -            -

// A form value describes the internal representation.
type form byte

// The form value order is relevant - do not change!
const (
	zero form = iota
	finite
	inf
	nan
)

// RoundingMode determines how a Float value is rounded to the
// desired precision. Rounding may change the Float value; the
// rounding error is described by the Accuracy of the Result.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	ToNearestEven RoundingMode = iota // == IEEE 754-2008 roundTiesToEven
	ToNearestAway                     // == IEEE 754-2008 roundTiesToAway
	ToZero                            // == IEEE 754-2008 roundTowardZero
	AwayFromZero                      // no IEEE 754-2008 equivalent
	ToNegativeInf                     // == IEEE 754-2008 roundTowardNegative
	ToPositiveInf                     // == IEEE 754-2008 roundTowardPositive
)

var modeNames = [...]string{
	ToNearestEven: "ToNearestEven",
	ToNearestAway: "ToNearestAway",
	ToZero:        "ToZero",
	AwayFromZero:  "AwayFromZero",
	ToNegativeInf: "ToNegativeInf",
	ToPositiveInf: "ToPositiveInf",
}

func (i RoundingMode) String() string {
	if int(i) < len(modeNames) {
		return modeNames[i]
	}
	return "RoundingMode(" + strconv.Itoa(int(i)) + ")"
}

// UnmarshalText implements encoding.TextUnmarshaler. Mode names are matched
// case-insensitively.
func (i *RoundingMode) UnmarshalText(text []byte) error {
	s := string(text)
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			*i = RoundingMode(m)
			return nil
		}
	}
	return errors.Newf("bigfloat: unknown rounding mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (i RoundingMode) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// directed reports whether rounding in mode i may move the result by up to
// one full ulp.
func (i RoundingMode) directed() bool {
	return i != ToNearestEven && i != ToNearestAway
}

// Accuracy describes the rounding error produced by the most recent
// operation that generated a Float value, relative to the exact value.
type Accuracy int8

// Constants describing the Accuracy of a Float.
const (
	Below Accuracy = -1
	Exact Accuracy = 0
	Above Accuracy = +1
)

func (i Accuracy) String() string {
	switch i {
	case Below:
		return "Below"
	case Exact:
		return "Exact"
	case Above:
		return "Above"
	}
	return "Accuracy(" + strconv.Itoa(int(i)) + ")"
}

func makeAcc(above bool) Accuracy {
	if above {
		return Above
	}
	return Below
}

// An ErrNaN panic is raised by a Float comparison or conversion involving a
// NaN. Arithmetic never panics: it returns NaN results and reports the
// reason in the Result flags.
type ErrNaN struct {
	msg string
}

func (err ErrNaN) Error() string {
	return err.msg
}

// Errors returned by operations.
var (
	// ErrPrecisionExceeded is returned when the working precision an
	// operation needs exceeds the configured maximum.
	ErrPrecisionExceeded = errors.New("bigfloat: precision exceeded")
	// ErrInvalidPrecision is returned for a zero requested precision.
	ErrInvalidPrecision = errors.New("bigfloat: invalid precision")
)

func umax(x, y uint) uint {
	if x > y {
		return x
	}
	return y
}
