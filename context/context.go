// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides IEEE-754 style contexts for bigfloat operations.
//
// A Context wraps a bigfloat.Context and accumulates the Conditions raised by
// the operations performed with it. Operators like:
//
//	func (c *Context) UnaryOp(x bigfloat.Result) bigfloat.Result
//	func (c *Context) BinaryOp(x, y bigfloat.Result) bigfloat.Result
//
// return the result of the corresponding bigfloat or bigfloat/math function
// computed with c's precision, rounding mode and precision limit.
//
// A Context catches errors: if an operation fails, or raises a Condition that
// is trapped, the operation records the error and returns an exact NaN.
// Further operations with the context are no-ops that return the same NaN
// until (*Context).Err is called to check for errors. This allows writing
// long computations without checking errors after each step.
package context

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/math"
	log "github.com/golang/glog"
)

// DefaultTraps are the conditions trapped by a new Context.
const DefaultTraps = bigfloat.InvalidOperation | bigfloat.DomainError | bigfloat.DivisionByZero

var failed = bigfloat.Exactly(bigfloat.NaN())

// A Context is a wrapper around bigfloat operations that facilitates
// management of rounding modes, precision and error handling.
//
// A Context is not safe for concurrent use.
type Context struct {
	c     bigfloat.Context
	traps bigfloat.Condition
	stats *Stats
	flags bigfloat.Condition
	err   error
}

// New creates a new context with the given precision and rounding mode, and
// DefaultTraps. If prec is 0, it is set to 64.
func New(prec uint, mode bigfloat.RoundingMode) *Context {
	return (&Context{traps: DefaultTraps}).SetMode(mode).SetPrec(prec)
}

// Mode returns the rounding mode of c.
func (c *Context) Mode() bigfloat.RoundingMode {
	return c.c.Mode
}

// Prec returns the precision of c in bits.
func (c *Context) Prec() uint {
	return c.c.Prec
}

// Traps returns the conditions trapped by c.
func (c *Context) Traps() bigfloat.Condition {
	return c.traps
}

// SetMode sets c's rounding mode to mode and returns c.
func (c *Context) SetMode(mode bigfloat.RoundingMode) *Context {
	c.c.Mode = mode
	return c
}

// SetPrec sets c's precision to prec and returns c. If prec == 0, it is set
// to 64.
func (c *Context) SetPrec(prec uint) *Context {
	if prec == 0 {
		prec = 64
	}
	c.c.Prec = prec
	return c
}

// SetMaxPrec sets the working precision limit of c and returns c. If max ==
// 0, bigfloat.DefaultMaxPrec is used.
func (c *Context) SetMaxPrec(max uint) *Context {
	c.c.MaxPrec = max
	return c
}

// SetTraps sets the conditions trapped by c and returns c.
func (c *Context) SetTraps(traps bigfloat.Condition) *Context {
	c.traps = traps
	return c
}

// SetStats sets the stats collector updated by c and returns c. A nil s
// disables stats.
func (c *Context) SetStats(s *Stats) *Context {
	c.stats = s
	return c
}

// Context returns the bigfloat.Context used by c.
func (c *Context) Context() bigfloat.Context {
	return c.c
}

// Err returns the first error encountered since the last call to Err and clears
// the error state.
func (c *Context) Err() (err error) {
	err = c.err
	c.err = nil
	return
}

// Flags returns the conditions raised by all operations performed with c.
func (c *Context) Flags() bigfloat.Condition {
	return c.flags
}

// ClearFlags clears the conditions accumulated by c.
func (c *Context) ClearFlags() {
	c.flags = 0
}

// apply records the outcome of the operation op.
func (c *Context) apply(op string, r bigfloat.Result, err error) bigfloat.Result {
	c.stats.observe(op, r.Flags, err)
	if err != nil {
		c.err = errors.Wrapf(err, "%s", op)
		if log.V(1) {
			log.Infof("bigfloat/context: %s failed: %v", op, err)
		}
		return failed
	}
	c.flags |= r.Flags
	if _, err := r.Flags.GoError(c.traps); err != nil {
		c.err = errors.Wrapf(err, "%s", op)
		if log.V(1) {
			log.Infof("bigfloat/context: %s trapped: %s", op, r.Flags&c.traps)
		}
		return failed
	}
	return r
}

// NewInt64 returns x rounded to c's precision.
func (c *Context) NewInt64(x int64) bigfloat.Result {
	return c.Round(bigfloat.Exactly(bigfloat.NewInt(x)))
}

// NewFloat64 returns x rounded to c's precision.
func (c *Context) NewFloat64(x float64) bigfloat.Result {
	return c.Round(bigfloat.Exactly(bigfloat.NewFloat(x)))
}

// NewBigInt returns x rounded to c's precision.
func (c *Context) NewBigInt(x *big.Int) bigfloat.Result {
	return c.Round(bigfloat.Exactly(bigfloat.NewBigInt(x)))
}

// NewString returns the value of the decimal string s rounded to c's
// precision. See bigfloat.Parse for the accepted syntax.
func (c *Context) NewString(s string) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := bigfloat.Parse(s, c.c.Prec, c.c.Mode)
	return c.apply("parse", r, err)
}

// Round returns x rounded to c's precision.
func (c *Context) Round(x bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Round(x)
	return c.apply("round", r, err)
}

// Add returns the rounded sum x+y.
func (c *Context) Add(x, y bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Add(x, y)
	return c.apply("add", r, err)
}

// Sub returns the rounded difference x-y.
func (c *Context) Sub(x, y bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Sub(x, y)
	return c.apply("sub", r, err)
}

// Mul returns the rounded product x×y.
func (c *Context) Mul(x, y bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Mul(x, y)
	return c.apply("mul", r, err)
}

// Quo returns the rounded quotient x/y.
func (c *Context) Quo(x, y bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Quo(x, y)
	return c.apply("quo", r, err)
}

// Sqrt returns the rounded square root of x.
func (c *Context) Sqrt(x bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Sqrt(x)
	return c.apply("sqrt", r, err)
}

// FMA returns x×y+u computed with only one rounding.
func (c *Context) FMA(x, y, u bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := math.FMA(c.c, x, y, u)
	return c.apply("fma", r, err)
}

// Neg returns x with its sign negated. It is exact.
func (c *Context) Neg(x bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	return c.apply("neg", c.c.Neg(x), nil)
}

// Scale returns x×2**n.
func (c *Context) Scale(x bigfloat.Result, n int) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := c.c.Scale(x, n)
	return c.apply("scale", r, err)
}

// unary evaluates the bigfloat/math function f.
func (c *Context) unary(op string, f func(bigfloat.Context, bigfloat.Result) (bigfloat.Result, error), x bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := f(c.c, x)
	return c.apply(op, r, err)
}

// Sin returns the sine of x.
func (c *Context) Sin(x bigfloat.Result) bigfloat.Result { return c.unary("sin", math.Sin, x) }

// Cos returns the cosine of x.
func (c *Context) Cos(x bigfloat.Result) bigfloat.Result { return c.unary("cos", math.Cos, x) }

// Tan returns the tangent of x.
func (c *Context) Tan(x bigfloat.Result) bigfloat.Result { return c.unary("tan", math.Tan, x) }

// Sinh returns the hyperbolic sine of x.
func (c *Context) Sinh(x bigfloat.Result) bigfloat.Result { return c.unary("sinh", math.Sinh, x) }

// Cosh returns the hyperbolic cosine of x.
func (c *Context) Cosh(x bigfloat.Result) bigfloat.Result { return c.unary("cosh", math.Cosh, x) }

// Tanh returns the hyperbolic tangent of x.
func (c *Context) Tanh(x bigfloat.Result) bigfloat.Result { return c.unary("tanh", math.Tanh, x) }

// Cbrt returns the cube root of x.
func (c *Context) Cbrt(x bigfloat.Result) bigfloat.Result { return c.unary("cbrt", math.Cbrt, x) }

// Atan returns the arctangent of x.
func (c *Context) Atan(x bigfloat.Result) bigfloat.Result { return c.unary("atan", math.Atan, x) }

// Atanh returns the inverse hyperbolic tangent of x.
func (c *Context) Atanh(x bigfloat.Result) bigfloat.Result { return c.unary("atanh", math.Atanh, x) }

// Asin returns the arcsine of x.
func (c *Context) Asin(x bigfloat.Result) bigfloat.Result { return c.unary("asin", math.Asin, x) }

// Acos returns the arccosine of x.
func (c *Context) Acos(x bigfloat.Result) bigfloat.Result { return c.unary("acos", math.Acos, x) }

// Exp returns e**x.
func (c *Context) Exp(x bigfloat.Result) bigfloat.Result { return c.unary("exp", math.Exp, x) }

// Log returns the natural logarithm of x.
func (c *Context) Log(x bigfloat.Result) bigfloat.Result { return c.unary("log", math.Log, x) }

// Pow returns x**y.
func (c *Context) Pow(x, y bigfloat.Result) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := math.Pow(c.c, x, y)
	return c.apply("pow", r, err)
}

// Powi returns x**n.
func (c *Context) Powi(x bigfloat.Result, n int64) bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := math.Powi(c.c, x, n)
	return c.apply("powi", r, err)
}

// Pi returns π.
func (c *Context) Pi() bigfloat.Result {
	if c.err != nil {
		return failed
	}
	r, err := math.Pi(c.c)
	return c.apply("pi", r, err)
}
