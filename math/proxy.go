// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import "github.com/db47h/bigfloat"

// FMA returns x×y+u computed with only one rounding to c.Prec bits. That is,
// FMA performs the fused multiply-add of x, y and u.
//
// This function is a proxy for c.FMA(x, y, u).
func FMA(c bigfloat.Context, x, y, u bigfloat.Result) (bigfloat.Result, error) {
	return c.FMA(x, y, u)
}

// Cbrt returns the cube root of x rounded to c.Prec bits.
//
// This function is a proxy for c.Cbrt(x).
func Cbrt(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	return c.Cbrt(x)
}

// Sqrt returns the square root of x rounded to c.Prec bits.
//
// This function is a proxy for c.Sqrt(x).
func Sqrt(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	return c.Sqrt(x)
}

// Tan returns the tangent of x rounded to c.Prec bits, computed as the
// quotient of Sin(x) and Cos(x) with c.Prec + 4 bits. The error of the
// result grows near the poles of tan as the relative error of Cos(x) does.
func Tan(c bigfloat.Context, x bigfloat.Result) (bigfloat.Result, error) {
	if err := c.Validate(); err != nil {
		return bigfloat.Result{}, err
	}
	w := c.WithPrec(c.Prec + 4)
	w.Mode = bigfloat.ToNearestEven
	s, err := Sin(w, x)
	if err != nil {
		return bigfloat.Result{}, err
	}
	co, err := Cos(w, x)
	if err != nil {
		return bigfloat.Result{}, err
	}
	r, err := w.Quo(s, co)
	if err != nil {
		return bigfloat.Result{}, err
	}
	return c.Round(r)
}
