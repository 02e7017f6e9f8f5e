// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math_test

import (
	"fmt"
	stdmath "math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const (
	piDigits  = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214808651"
	eDigits   = "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759457138217852516642742746"
	ln2Digits = "0.6931471805599453094172321214581765680755001343602552541206800094933936219696947156058633269964186875"
)

type function func(bigfloat.Context, bigfloat.Result) (bigfloat.Result, error)

var functions = []struct {
	name string
	f    function
	std  func(float64) float64
	args []float64
}{
	{"Sin", math.Sin, stdmath.Sin, []float64{0.5, -1.25, 3, 10, -100.5, 1e-10, 1e6}},
	{"Cos", math.Cos, stdmath.Cos, []float64{0.5, -1.25, 3, 10, -100.5, 1e-10, 1e6}},
	{"Tan", math.Tan, stdmath.Tan, []float64{0.5, -1.25, 1.5, 3, 10}},
	{"Atan", math.Atan, stdmath.Atan, []float64{0.1, -0.9, 1, 2, 1e5, -1e-5}},
	{"Asin", math.Asin, stdmath.Asin, []float64{0.5, -0.99, 0.01, 1e-8, 0.75}},
	{"Acos", math.Acos, stdmath.Acos, []float64{0.5, -0.99, 0.01, 1e-8, -1, 0.75}},
	{"Sinh", math.Sinh, stdmath.Sinh, []float64{0.1, -2, 20, 1e-6, 0.5}},
	{"Cosh", math.Cosh, stdmath.Cosh, []float64{0.1, -2, 20, 1e-6, 0.5}},
	{"Tanh", math.Tanh, stdmath.Tanh, []float64{0.1, -2, 20, 1e-6, 0.5, 300}},
	{"Atanh", math.Atanh, stdmath.Atanh, []float64{0.5, -0.999, 1e-4, 0.125}},
	{"Exp", math.Exp, stdmath.Exp, []float64{1, -1, 0.001, 30, -30, 700, -700.5}},
	{"Log", math.Log, stdmath.Log, []float64{2, 0.5, 10, 1e-300, 1e300, 1.0000001, 0.75}},
	{"Sqrt", math.Sqrt, stdmath.Sqrt, []float64{2, 0.5, 1e-300, 12345}},
	{"Cbrt", math.Cbrt, stdmath.Cbrt, []float64{2, -27, 0.001, 1e300}},
}

func nearest(prec uint) bigfloat.Context {
	return bigfloat.Context{Prec: prec, Mode: bigfloat.ToNearestEven}
}

// relErr returns |x - want|/|want|.
func relErr(x, want *bigfloat.Float) float64 {
	w := want.BigFloat()
	d := new(big.Float).SetPrec(4096).Sub(x.BigFloat(), w)
	d.Quo(d, w)
	f, _ := d.Abs(d).Float64()
	return f
}

// TestFunctions checks the error bounds of each function against a result
// computed with 128 more bits and the results at 53 bits against the
// standard library.
func TestFunctions(t *testing.T) {
	for _, fn := range functions {
		t.Run(fn.name, func(t *testing.T) {
			for _, a := range fn.args {
				x := bigfloat.Exactly(bigfloat.NewFloat(a))
				for _, prec := range []uint{8, 24, 53, 113, 300} {
					r, err := fn.f(nearest(prec), x)
					require.NoError(t, err, "%s(%g) at %d bits", fn.name, a, prec)
					ref, err := fn.f(nearest(prec+128), x)
					require.NoError(t, err)

					e, b := relErr(r.Val, ref.Val), r.Err.Float64()+2*ref.Err.Float64()
					if e > b {
						t.Fatalf("%s(%g) at %d bits = %v: relative error %g above bound %s",
							fn.name, a, prec, r.Val, e, r.Err)
					}
					assert.LessOrEqual(t, r.Err.Exp(), 1-int64(prec), "%s(%g) at %d bits", fn.name, a, prec)
					assert.LessOrEqual(t, r.Val.MinPrec(), prec)
				}

				r, err := fn.f(nearest(53), x)
				require.NoError(t, err)
				f, _ := r.Val.Float64()
				want := fn.std(a)
				assert.InEpsilon(t, want, f, stdmath.Ldexp(1, -50), "%s(%g)", fn.name, a)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	const prec = 300
	parse := func(s string) *bigfloat.Float {
		return bigfloat.MustParse(s, 400, bigfloat.ToNearestEven).Val
	}
	check := func(name string, r bigfloat.Result, err error, want *bigfloat.Float) {
		t.Helper()
		require.NoError(t, err, name)
		if e := relErr(r.Val, want); e > r.Err.Float64()+stdmath.Ldexp(1, -320) {
			t.Errorf("%s = %s: relative error %g above bound %s", name, r.Val.Text('g', 100), e, r.Err)
		}
	}
	scale := func(x *bigfloat.Float, n int) *bigfloat.Float {
		r, err := bigfloat.Context{Prec: 400}.Scale(bigfloat.Exactly(x), n)
		require.NoError(t, err)
		return r.Val
	}
	c := nearest(prec)
	one := bigfloat.Exactly(bigfloat.NewInt(1))
	pi := parse(piDigits)

	r, err := math.Pi(c)
	check("π", r, err, pi)
	r, err = math.Exp(c, one)
	check("e", r, err, parse(eDigits))
	r, err = math.Log(c, bigfloat.Exactly(bigfloat.NewInt(2)))
	check("ln 2", r, err, parse(ln2Digits))
	r, err = math.Atan(c, one)
	check("atan(1)", r, err, scale(pi, -2))
	r, err = math.Acos(c, bigfloat.Exactly(bigfloat.NewInt(-1)))
	check("acos(-1)", r, err, pi)
	r, err = math.Asin(c, one)
	check("asin(1)", r, err, scale(pi, -1))

	// 48 decimals
	r, err = math.Pi(nearest(200))
	require.NoError(t, err)
	assert.Equal(t, piDigits[:50], r.Val.Text('f', 48))
}

func TestSpecialCases(t *testing.T) {
	c := nearest(53)
	var (
		zero    = bigfloat.Zero(false)
		negZero = bigfloat.Zero(true)
		one     = bigfloat.NewInt(1)
		negOne  = bigfloat.NewInt(-1)
		inf     = bigfloat.Inf(false)
		negInf  = bigfloat.Inf(true)
		nan     = bigfloat.NaN()
		two     = bigfloat.NewInt(2)
	)
	for _, test := range []struct {
		name  string
		f     function
		x     *bigfloat.Float
		want  *bigfloat.Float
		flags bigfloat.Condition
	}{
		{"Sin", math.Sin, negZero, negZero, 0},
		{"Sin", math.Sin, inf, nan, bigfloat.DomainError},
		{"Sin", math.Sin, nan, nan, 0},
		{"Cos", math.Cos, negZero, one, 0},
		{"Cos", math.Cos, negInf, nan, bigfloat.DomainError},
		{"Tan", math.Tan, zero, zero, 0},
		{"Atan", math.Atan, negZero, negZero, 0},
		{"Asin", math.Asin, two, nan, bigfloat.DomainError},
		{"Asin", math.Asin, negInf, nan, bigfloat.DomainError},
		{"Acos", math.Acos, one, zero, 0},
		{"Acos", math.Acos, bigfloat.NewFloat(-1.5), nan, bigfloat.DomainError},
		{"Sinh", math.Sinh, negInf, negInf, 0},
		{"Sinh", math.Sinh, bigfloat.NewFloat(-1e20), negInf, bigfloat.Overflow | bigfloat.Inexact},
		{"Cosh", math.Cosh, negZero, one, 0},
		{"Cosh", math.Cosh, negInf, inf, 0},
		{"Cosh", math.Cosh, bigfloat.NewFloat(-1e20), inf, bigfloat.Overflow | bigfloat.Inexact},
		{"Tanh", math.Tanh, negZero, negZero, 0},
		{"Tanh", math.Tanh, negInf, negOne, 0},
		{"Tanh", math.Tanh, inf, one, 0},
		{"Tanh", math.Tanh, nan, nan, 0},
		{"Atanh", math.Atanh, one, inf, bigfloat.DivisionByZero},
		{"Atanh", math.Atanh, negOne, negInf, bigfloat.DivisionByZero},
		{"Atanh", math.Atanh, two, nan, bigfloat.DomainError},
		{"Atanh", math.Atanh, inf, nan, bigfloat.DomainError},
		{"Exp", math.Exp, zero, one, 0},
		{"Exp", math.Exp, negInf, zero, 0},
		{"Exp", math.Exp, inf, inf, 0},
		{"Exp", math.Exp, bigfloat.NewFloat(1e20), inf, bigfloat.Overflow | bigfloat.Inexact},
		{"Exp", math.Exp, bigfloat.NewFloat(-1e20), zero, bigfloat.Underflow | bigfloat.Inexact},
		{"Log", math.Log, zero, negInf, bigfloat.DivisionByZero},
		{"Log", math.Log, negZero, negInf, bigfloat.DivisionByZero},
		{"Log", math.Log, one, zero, 0},
		{"Log", math.Log, inf, inf, 0},
		{"Log", math.Log, negOne, nan, bigfloat.DomainError},
		{"Log", math.Log, nan, nan, 0},
		{"Cbrt", math.Cbrt, negZero, negZero, 0},
		{"Cbrt", math.Cbrt, negInf, negInf, 0},
		{"Cbrt", math.Cbrt, bigfloat.NewInt(-64), bigfloat.NewInt(-4), 0},
	} {
		r, err := test.f(c, bigfloat.Exactly(test.x))
		require.NoError(t, err)
		assert.True(t, alike(r.Val, test.want), "%s(%v) = %v, want %v", test.name, test.x, r.Val, test.want)
		assert.Equal(t, test.flags, r.Flags, "%s(%v)", test.name, test.x)
	}

	// Acos(-1) = π
	r, err := math.Acos(c, bigfloat.Exactly(bigfloat.NewInt(-1)))
	require.NoError(t, err)
	f, _ := r.Val.Float64()
	assert.Equal(t, stdmath.Pi, f)
}

func alike(x, y *bigfloat.Float) bool {
	switch {
	case x.IsNaN() || y.IsNaN():
		return x.IsNaN() && y.IsNaN()
	case x.Signbit() != y.Signbit():
		return false
	}
	return x.Cmp(y) == 0
}

// TestInexactArguments checks that the error of the argument is accounted
// for in the error of the result.
func TestInexactArguments(t *testing.T) {
	const prec = 53
	// 0.1 and -0.7 at 40 bits, and at 400 bits for the reference
	for _, s := range []string{"0.1", "-0.7"} {
		x, err := bigfloat.Parse(s, 40, bigfloat.ToNearestEven)
		require.NoError(t, err)
		require.False(t, x.Err.IsExact())
		xx, err := bigfloat.Parse(s, 400, bigfloat.ToNearestEven)
		require.NoError(t, err)
		for _, fn := range functions {
			if s[0] == '-' && (fn.name == "Log" || fn.name == "Sqrt") {
				continue
			}
			r, err := fn.f(nearest(prec), x)
			require.NoError(t, err, fn.name)
			ref, err := fn.f(nearest(350), xx)
			require.NoError(t, err, fn.name)
			if r.Err.IsUnbounded() {
				t.Errorf("%s(%s): unbounded error", fn.name, s)
				continue
			}
			// the result is dominated by the 40-bit argument
			assert.Greater(t, r.Err.Exp(), -int64(prec), "%s(%s)", fn.name, s)
			if e := relErr(r.Val, ref.Val); e > r.Err.Float64()+stdmath.Ldexp(1, -300) {
				t.Errorf("%s(%s) = %v: relative error %g above bound %s", fn.name, s, r.Val, e, r.Err)
			}
		}
	}
}

func TestFlagsAndErrors(t *testing.T) {
	x := bigfloat.Exactly(bigfloat.NewFloat(0.5))
	x.Flags = bigfloat.Inexact
	r, err := math.Sin(nearest(53), x)
	require.NoError(t, err)
	assert.True(t, r.Flags.Any(bigfloat.Inexact))

	_, err = math.Exp(bigfloat.Context{}, x)
	assert.True(t, errors.Is(err, bigfloat.ErrInvalidPrecision), "%v", err)

	_, err = math.Atan(bigfloat.Context{Prec: 100, MaxPrec: 101}, x)
	assert.True(t, errors.Is(err, bigfloat.ErrPrecisionExceeded), "%v", err)
	_, err = math.Pi(bigfloat.Context{Prec: 100, MaxPrec: 101})
	assert.True(t, errors.Is(err, bigfloat.ErrPrecisionExceeded), "%v", err)
}

func TestPiConcurrent(t *testing.T) {
	want := bigfloat.MustParse(piDigits, 400, bigfloat.ToNearestEven).Val
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		prec := uint(20 + 20*i)
		g.Go(func() error {
			r, err := math.Pi(nearest(prec))
			if err != nil {
				return err
			}
			if e := relErr(r.Val, want); e > r.Err.Float64() {
				return errors.Newf("π at %d bits: relative error %g above bound %s", prec, e, r.Err)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkExp(b *testing.B) {
	x := bigfloat.Exactly(bigfloat.NewFloat(3.73))
	for _, prec := range []uint{53, 113, 333, 1000} {
		b.Run(fmt.Sprint(prec), func(b *testing.B) {
			c := nearest(prec)
			for i := 0; i < b.N; i++ {
				_, _ = math.Exp(c, x)
			}
		})
	}
}

// sinTaylor returns sin x to at least prec bits.
func sinTaylor(x float64, prec uint) *big.Float {
	xx := new(big.Float).SetPrec(prec + 32).SetFloat64(x)
	x2 := new(big.Float).SetPrec(prec+32).Mul(xx, xx)
	sum := new(big.Float).SetPrec(prec + 32).Set(xx)
	term := new(big.Float).SetPrec(prec + 32).Set(xx)
	for k := int64(1); term.Sign() != 0 && term.MantExp(nil) > sum.MantExp(nil)-int(prec)-16; k++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Float).SetInt64(-2*k*(2*k+1)))
		sum.Add(sum, term)
	}
	return sum
}

// TestSinSmallArguments checks that sin x at 53 bits for |x| < 1 is the
// correctly rounded sine, within 2**-53 of the exact value. The standard
// library's math.Sin is not correctly rounded and can be one ulp away.
func TestSinSmallArguments(t *testing.T) {
	r := rand.New(rand.NewSource(30))
	args := []float64{0.5, -0.25, 0.1, 1e-10, -0x1p-30, 0.9999999999999999, -0.7853981633974483}
	for i := 0; i < 500; i++ {
		args = append(args, 2*r.Float64()-1)
	}
	for _, a := range args {
		res, err := math.Sin(nearest(53), bigfloat.Exactly(bigfloat.NewFloat(a)))
		require.NoError(t, err)
		exact := sinTaylor(a, 400)
		want := new(big.Float).SetPrec(53).SetMode(big.ToNearestEven).Set(exact)
		assert.Zero(t, res.Val.BigFloat().Cmp(want), "Sin(%g) = %v, want %v", a, res.Val, want)

		e := relErr(res.Val, bigfloat.NewBigFloat(exact))
		assert.LessOrEqual(t, e, stdmath.Ldexp(1, -53), "Sin(%g)", a)
		assert.LessOrEqual(t, e, res.Err.Float64(), "Sin(%g)", a)
		assert.Less(t, res.Err.Float64(), stdmath.Ldexp(1, -52), "Sin(%g)", a)

		f, _ := res.Val.Float64()
		assert.InEpsilon(t, stdmath.Sin(a), f, stdmath.Ldexp(1, -52), "Sin(%g)", a)
	}
}

// TestAtanhNearOne checks atanh(±(1 - 2**-k)) = ±ln(2**(k+1) - 1)/2.
func TestAtanhNearOne(t *testing.T) {
	ctx := bigfloat.Context{Prec: 1100}
	one := bigfloat.Exactly(bigfloat.NewInt(1))
	for _, k := range []int{140, 1000} {
		tiny, _ := bigfloat.NewFromBits(false, []bigfloat.Word{1}, -k)
		x, err := ctx.Sub(one, bigfloat.Exactly(tiny))
		require.NoError(t, err)
		require.True(t, x.Err.IsExact())

		p, _ := bigfloat.NewFromBits(false, []bigfloat.Word{1}, k+1)
		n, err := ctx.Sub(bigfloat.Exactly(p), one)
		require.NoError(t, err)
		ref, err := math.Log(nearest(300), n)
		require.NoError(t, err)
		ref, err = bigfloat.Context{Prec: 300}.Scale(ref, -1)
		require.NoError(t, err)

		for _, neg := range []bool{false, true} {
			arg, want := x, ref
			if neg {
				arg, want = ctx.Neg(x), ctx.Neg(ref)
			}
			r, err := math.Atanh(nearest(53), arg)
			require.NoError(t, err, "k = %d", k)
			require.False(t, r.Err.IsUnbounded(), "k = %d", k)
			assert.LessOrEqual(t, r.Err.Exp(), int64(-52), "k = %d", k)
			assert.Equal(t, neg, r.Val.Signbit())
			if e := relErr(r.Val, want.Val); e > r.Err.Float64()+stdmath.Ldexp(1, -280) {
				t.Errorf("Atanh(1 - 2**-%d) = %v: relative error %g above bound %s", k, r.Val, e, r.Err)
			}
		}
	}
}

func TestTanhDirectedRounding(t *testing.T) {
	below := bigfloat.NewFloat(1 - 0x1p-53)
	for _, test := range []struct {
		mode bigfloat.RoundingMode
		x    float64
		want *bigfloat.Float
		acc  bigfloat.Accuracy
	}{
		{bigfloat.ToNearestEven, 1000, bigfloat.NewInt(1), bigfloat.Above},
		{bigfloat.ToZero, 1000, below, bigfloat.Below},
		{bigfloat.ToNegativeInf, 1000, below, bigfloat.Below},
		{bigfloat.ToPositiveInf, 1000, bigfloat.NewInt(1), bigfloat.Above},
		{bigfloat.ToZero, -1000, below.Neg(), bigfloat.Above},
		{bigfloat.ToNegativeInf, -1000, bigfloat.NewInt(-1), bigfloat.Below},
		{bigfloat.AwayFromZero, -1e30, bigfloat.NewInt(-1), bigfloat.Below},
	} {
		c := bigfloat.Context{Prec: 53, Mode: test.mode}
		r, err := math.Tanh(c, bigfloat.Exactly(bigfloat.NewFloat(test.x)))
		require.NoError(t, err)
		assert.True(t, alike(r.Val, test.want), "Tanh(%g) in %s = %v, want %v", test.x, test.mode, r.Val, test.want)
		assert.Equal(t, test.acc, r.Acc, "Tanh(%g) in %s", test.x, test.mode)
		assert.Equal(t, bigfloat.Inexact, r.Flags)
		assert.LessOrEqual(t, r.Err.Exp(), int64(-52))
	}
}

func TestPowi(t *testing.T) {
	c := nearest(53)
	for _, test := range []struct {
		x    float64
		n    int64
		want float64
	}{
		{3, 13, 1594323},
		{2, -3, 0.125},
		{-2, 3, -8},
		{-0.5, -3, -8},
		{-3, 4, 81},
		{1.5, 0, 1},
		{stdmath.NaN(), 0, 1},
	} {
		r, err := math.Powi(c, bigfloat.Exactly(bigfloat.NewFloat(test.x)), test.n)
		require.NoError(t, err)
		f, _ := r.Val.Float64()
		assert.Equal(t, test.want, f, "Powi(%g, %d)", test.x, test.n)
		assert.True(t, r.Err.IsExact(), "Powi(%g, %d)", test.x, test.n)
		assert.Zero(t, r.Flags, "Powi(%g, %d)", test.x, test.n)
	}

	// 1.1**100 computed exactly
	x := bigfloat.Exactly(bigfloat.NewFloat(1.1))
	exact := new(big.Float).SetPrec(6000).SetInt64(1)
	for i := 0; i < 100; i++ {
		exact.Mul(exact, x.Val.BigFloat())
	}
	r, err := math.Powi(c, x, 100)
	require.NoError(t, err)
	want := new(big.Float).SetPrec(53).Set(exact)
	assert.Zero(t, r.Val.BigFloat().Cmp(want), "1.1**100 = %v, want %v", r.Val, want)
	assert.LessOrEqual(t, relErr(r.Val, bigfloat.NewBigFloat(exact)), r.Err.Float64())
	inv, err := math.Powi(c, x, -100)
	require.NoError(t, err)
	assert.LessOrEqual(t, relErr(inv.Val, bigfloat.NewBigFloat(new(big.Float).Quo(big.NewFloat(1).SetPrec(6000), exact))), inv.Err.Float64())

	// an inexact base
	xi, err := bigfloat.Parse("1.1", 40, bigfloat.ToNearestEven)
	require.NoError(t, err)
	xx, err := bigfloat.Parse("1.1", 400, bigfloat.ToNearestEven)
	require.NoError(t, err)
	r, err = math.Powi(c, xi, 100)
	require.NoError(t, err)
	ref, err := math.Powi(nearest(350), xx, 100)
	require.NoError(t, err)
	require.False(t, r.Err.IsUnbounded())
	if e := relErr(r.Val, ref.Val); e > r.Err.Float64()+stdmath.Ldexp(1, -300) {
		t.Errorf("1.1**100 = %v: relative error %g above bound %s", r.Val, e, r.Err)
	}

	// overflow keeps the sign
	huge, _ := bigfloat.NewFromBits(true, []bigfloat.Word{1}, bigfloat.MaxExp/2)
	r, err = math.Powi(c, bigfloat.Exactly(huge), 3)
	require.NoError(t, err)
	assert.True(t, r.Val.IsInf() && r.Val.Signbit(), "%v", r.Val)
	assert.True(t, r.Flags.Any(bigfloat.Overflow))
	r, err = math.Powi(c, bigfloat.Exactly(huge), -3)
	require.NoError(t, err)
	assert.True(t, r.Val.IsZero() && r.Val.Signbit(), "%v", r.Val)
	assert.True(t, r.Flags.Any(bigfloat.Underflow))
}

func TestPow(t *testing.T) {
	c := nearest(53)
	f := func(x float64) bigfloat.Result { return bigfloat.Exactly(bigfloat.NewFloat(x)) }
	inf := stdmath.Inf(1)
	for _, test := range []struct {
		x, y  float64
		want  float64
		flags bigfloat.Condition
	}{
		{2, 10, 1024, 0},
		{-2, 3, -8, 0},
		{0, -1, inf, bigfloat.DivisionByZero},
		{stdmath.Copysign(0, -1), -3, -inf, bigfloat.DivisionByZero},
		{stdmath.Copysign(0, -1), -0.5, inf, bigfloat.DivisionByZero},
		{stdmath.Copysign(0, -1), 3, stdmath.Copysign(0, -1), 0},
		{0, 2.5, 0, 0},
		{2, inf, inf, 0},
		{2, -inf, 0, 0},
		{0.5, inf, 0, 0},
		{0.5, -inf, inf, 0},
		{-1, inf, 1, 0},
		{1, stdmath.NaN(), 1, 0},
		{stdmath.NaN(), 0, 1, 0},
		{inf, -2.5, 0, 0},
		{inf, 2.5, inf, 0},
		{-inf, 3, -inf, 0},
		{-inf, -3, stdmath.Copysign(0, -1), 0},
		{-8, 1.0 / 3, stdmath.NaN(), bigfloat.DomainError},
		{2, stdmath.NaN(), stdmath.NaN(), 0},
	} {
		r, err := math.Pow(c, f(test.x), f(test.y))
		require.NoError(t, err)
		assert.True(t, alike(r.Val, bigfloat.NewFloat(test.want)), "Pow(%g, %g) = %v, want %g", test.x, test.y, r.Val, test.want)
		assert.Equal(t, test.flags, r.Flags, "Pow(%g, %g)", test.x, test.y)
	}

	// agrees with Sqrt
	r, err := math.Pow(c, f(2), f(0.5))
	require.NoError(t, err)
	s, err := math.Sqrt(c, f(2))
	require.NoError(t, err)
	assert.True(t, alike(r.Val, s.Val), "%v != %v", r.Val, s.Val)

	r, err = math.Pow(c, f(10), f(-0.3))
	require.NoError(t, err)
	v, _ := r.Val.Float64()
	assert.InEpsilon(t, stdmath.Pow(10, -0.3), v, stdmath.Ldexp(1, -50))

	r, err = math.Pow(c, f(2), f(1e10+0.5))
	require.NoError(t, err)
	assert.True(t, r.Val.IsInf())
	assert.True(t, r.Flags.Any(bigfloat.Overflow))
	r, err = math.Pow(c, f(2), f(-1e10-0.5))
	require.NoError(t, err)
	assert.True(t, r.Val.IsZero())
	assert.True(t, r.Flags.Any(bigfloat.Underflow))

	rnd := rand.New(rand.NewSource(31))
	for i := 0; i < 100; i++ {
		x := stdmath.Exp(9*rnd.Float64() - 4.5)
		y := 40*rnd.Float64() - 20
		for _, prec := range []uint{24, 53, 113} {
			r, err := math.Pow(nearest(prec), f(x), f(y))
			require.NoError(t, err)
			ref, err := math.Pow(nearest(prec+128), f(x), f(y))
			require.NoError(t, err)
			if e := relErr(r.Val, ref.Val); e > r.Err.Float64()+2*ref.Err.Float64() {
				t.Fatalf("Pow(%g, %g) at %d bits = %v: relative error %g above bound %s", x, y, prec, r.Val, e, r.Err)
			}
			assert.LessOrEqual(t, r.Err.Exp(), 1-int64(prec), "Pow(%g, %g) at %d bits", x, y, prec)
		}
		r, err := math.Pow(c, f(x), f(y))
		require.NoError(t, err)
		v, _ := r.Val.Float64()
		assert.InEpsilon(t, stdmath.Pow(x, y), v, stdmath.Ldexp(1, -50), "Pow(%g, %g)", x, y)
	}

	// inexact operands
	parse := func(s string, prec uint) bigfloat.Result {
		r, err := bigfloat.Parse(s, prec, bigfloat.ToNearestEven)
		require.NoError(t, err)
		return r
	}
	r, err = math.Pow(c, parse("7.1", 40), parse("0.3", 40))
	require.NoError(t, err)
	ref, err := math.Pow(nearest(350), parse("7.1", 400), parse("0.3", 400))
	require.NoError(t, err)
	require.False(t, r.Err.IsUnbounded())
	assert.Greater(t, r.Err.Exp(), int64(-53))
	if e := relErr(r.Val, ref.Val); e > r.Err.Float64()+stdmath.Ldexp(1, -300) {
		t.Errorf("7.1**0.3 = %v: relative error %g above bound %s", r.Val, e, r.Err)
	}
}

func TestFMA(t *testing.T) {
	c := nearest(53)
	d, _ := bigfloat.NewFromBits(false, []bigfloat.Word{1}, -30)
	one := bigfloat.Exactly(bigfloat.NewInt(1))
	x, err := c.Add(one, bigfloat.Exactly(d))
	require.NoError(t, err)
	y, err := c.Sub(one, bigfloat.Exactly(d))
	require.NoError(t, err)
	r, err := math.FMA(c, x, y, c.Neg(one))
	require.NoError(t, err)
	want, _ := bigfloat.NewFromBits(true, []bigfloat.Word{1}, -60)
	assert.True(t, alike(r.Val, want), "%v", r.Val)
	assert.True(t, r.Err.IsExact())
}
