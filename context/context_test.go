// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/db47h/bigfloat"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextDefaults(t *testing.T) {
	c := New(0, bigfloat.ToZero)
	assert.Equal(t, uint(64), c.Prec())
	assert.Equal(t, bigfloat.ToZero, c.Mode())
	assert.Equal(t, DefaultTraps, c.Traps())
	assert.Equal(t, bigfloat.Context{Prec: 64, Mode: bigfloat.ToZero}, c.Context())

	c.SetPrec(200).SetMode(bigfloat.ToPositiveInf).SetMaxPrec(1000)
	assert.Equal(t, bigfloat.Context{Prec: 200, Mode: bigfloat.ToPositiveInf, MaxPrec: 1000}, c.Context())
}

func TestContextStickyError(t *testing.T) {
	c := New(53, bigfloat.ToNearestEven)
	one := c.NewInt64(1)
	z := c.Quo(one, c.NewInt64(0))
	assert.True(t, z.Val.IsNaN())
	// no-ops
	assert.True(t, c.Add(one, one).Val.IsNaN())
	assert.True(t, c.Sqrt(one).Val.IsNaN())
	assert.True(t, c.Pi().Val.IsNaN())

	err := c.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, bigfloat.ErrCondition))
	assert.Contains(t, err.Error(), "quo")
	assert.Contains(t, err.Error(), "division by zero")
	assert.NoError(t, c.Err())

	// the context works again once the error is cleared
	two := c.Add(one, one)
	require.NoError(t, c.Err())
	assert.Equal(t, 0, two.Val.Cmp(bigfloat.NewInt(2)))
}

func TestContextTraps(t *testing.T) {
	c := New(53, bigfloat.ToNearestEven).SetTraps(0)
	one := c.NewInt64(1)
	z := c.Quo(one, c.NewInt64(0))
	require.NoError(t, c.Err())
	assert.True(t, z.Val.IsInf())
	assert.Equal(t, bigfloat.DivisionByZero, c.Flags())

	c.Quo(one, c.NewInt64(3))
	assert.Equal(t, bigfloat.DivisionByZero|bigfloat.Inexact, c.Flags())
	c.Log(c.NewInt64(-1))
	assert.True(t, c.Flags().Any(bigfloat.DomainError))
	require.NoError(t, c.Err())
	c.ClearFlags()
	assert.Equal(t, bigfloat.Condition(0), c.Flags())

	// trap inexact results
	c.SetTraps(bigfloat.Inexact)
	assert.False(t, c.Mul(c.NewInt64(3), c.NewInt64(5)).Val.IsNaN())
	require.NoError(t, c.Err())
	assert.True(t, c.NewString("0.1").Val.IsNaN())
	err := c.Err()
	assert.True(t, errors.Is(err, bigfloat.ErrCondition), "%v", err)
	assert.Contains(t, err.Error(), "parse")
}

func TestContextErrors(t *testing.T) {
	c := New(100, bigfloat.ToNearestEven).SetMaxPrec(101)
	r := c.Sin(c.NewInt64(1))
	assert.True(t, r.Val.IsNaN())
	err := c.Err()
	assert.True(t, errors.Is(err, bigfloat.ErrPrecisionExceeded), "%v", err)
	assert.Contains(t, err.Error(), "sin")

	c = New(53, bigfloat.ToNearestEven)
	c.NewString("not a number")
	assert.Error(t, c.Err())
}

func TestContextMath(t *testing.T) {
	c := New(113, bigfloat.ToNearestEven)
	// sin² + cos² = 1
	x := c.NewFloat64(0.7)
	s, co := c.Sin(x), c.Cos(x)
	one := c.Add(c.Mul(s, s), c.Mul(co, co))
	require.NoError(t, c.Err())
	d := c.Sub(one, c.NewInt64(1))
	require.NoError(t, c.Err())
	assert.True(t, d.Val.IsZero() || d.Val.Exp() <= -100, "%v", d.Val)

	// log(exp(x)) = x
	y := c.Log(c.Exp(x))
	require.NoError(t, c.Err())
	f, _ := y.Val.Float64()
	assert.InDelta(t, 0.7, f, 1e-15)

	// 4 atan 1 = π
	pi := c.Pi()
	q := c.Scale(c.Atan(c.NewInt64(1)), 2)
	require.NoError(t, c.Err())
	f1, _ := pi.Val.Float64()
	f2, _ := q.Val.Float64()
	assert.Equal(t, f1, f2)
	assert.Equal(t, pi.Val.Neg().Text('g', 30), c.Neg(pi).Val.Text('g', 30))
}

func TestContextPowers(t *testing.T) {
	s := NewStats("powers")
	c := New(113, bigfloat.ToNearestEven).SetStats(s)
	x := c.NewFloat64(0.7)

	// cosh² - sinh² = 1
	ch, sh := c.Cosh(x), c.Sinh(x)
	d := c.Sub(c.Sub(c.Mul(ch, ch), c.Mul(sh, sh)), c.NewInt64(1))
	require.NoError(t, c.Err())
	assert.True(t, d.Val.IsZero() || d.Val.Exp() <= -100, "%v", d.Val)

	// tanh = sinh/cosh
	th, q := c.Tanh(x), c.Quo(sh, ch)
	require.NoError(t, c.Err())
	f1, _ := th.Val.Float64()
	f2, _ := q.Val.Float64()
	assert.Equal(t, f1, f2)

	r := c.Cbrt(c.NewInt64(-27))
	require.NoError(t, c.Err())
	assert.Equal(t, "-3", r.Val.Text('g', 10))
	assert.True(t, r.Err.IsExact())

	r = c.Powi(c.NewInt64(3), 13)
	require.NoError(t, c.Err())
	assert.Equal(t, "1594323", r.Val.Text('g', 10))

	two := c.NewInt64(2)
	assert.Equal(t, c.Sqrt(two).Val.Text('g', 34), c.Pow(two, c.NewFloat64(0.5)).Val.Text('g', 34))
	require.NoError(t, c.Err())

	// (1+2**-60)(1-2**-60) - 1 = -2**-120
	e := c.Scale(c.NewInt64(1), -60)
	a, b := c.Add(c.NewInt64(1), e), c.Sub(c.NewInt64(1), e)
	r = c.FMA(a, b, c.NewInt64(-1))
	require.NoError(t, c.Err())
	assert.Equal(t, c.Neg(c.Mul(e, e)).Val.Text('g', 20), r.Val.Text('g', 20))
	assert.True(t, r.Err.IsExact())

	for _, op := range []string{"cosh", "tanh", "cbrt", "powi", "pow", "fma"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues(op)), op)
	}

	c.Pow(c.NewInt64(-8), c.NewFloat64(1.0/3))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.conds.WithLabelValues("pow", "domain error")))
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(map[string]any{
		"prec":     "128",
		"mode":     "ToZero",
		"max_prec": 4096,
		"traps":    "invalid operation|division by zero",
	})
	require.NoError(t, err)
	want := Config{
		Prec:    128,
		Mode:    bigfloat.ToZero,
		MaxPrec: 4096,
		Traps:   bigfloat.InvalidOperation | bigfloat.DivisionByZero,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DecodeConfig mismatch (-want +got):\n%s", diff)
	}

	cfg, err = DecodeConfig(nil)
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	c := NewFromConfig(want)
	assert.Equal(t, bigfloat.Context{Prec: 128, Mode: bigfloat.ToZero, MaxPrec: 4096}, c.Context())
	assert.Equal(t, want.Traps, c.Traps())

	for _, m := range []map[string]any{
		{"prec": 0},
		{"precision": 10},
		{"mode": "sideways"},
		{"traps": "overflow|bogus"},
	} {
		_, err := DecodeConfig(m)
		assert.Error(t, err, "%v", m)
	}
	_, err = DecodeConfig(map[string]any{"prec": 0})
	assert.True(t, errors.Is(err, bigfloat.ErrInvalidPrecision))
}

func TestStats(t *testing.T) {
	s := NewStats("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(s))

	c := New(53, bigfloat.ToNearestEven).SetStats(s)
	one := c.NewInt64(1)
	c.Add(one, one)
	c.Add(one, c.Quo(one, c.NewInt64(3)))
	c.Quo(one, c.NewInt64(0))
	require.Error(t, c.Err())
	c.SetMaxPrec(54).Sin(one)
	require.Error(t, c.Err())

	assert.Equal(t, 2.0, testutil.ToFloat64(s.ops.WithLabelValues("add")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.ops.WithLabelValues("quo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.conds.WithLabelValues("quo", "inexact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.conds.WithLabelValues("quo", "division by zero")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.errors.WithLabelValues("sin")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.errors.WithLabelValues("add")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_bigfloat_operations_total",
		"test_bigfloat_conditions_total",
		"test_bigfloat_errors_total",
	}, names)

	// nil stats
	var ns *Stats
	assert.NotPanics(t, func() { ns.observe("add", bigfloat.Inexact, nil) })
}
