// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import "math/rand"

// Rand returns a random finite Float with at most prec significant bits, a
// random sign and an exponent in [minExp, maxExp]. The top bit of the
// mantissa is always set, the other bits are uniformly distributed.
//
// Rand panics if prec is 0 or minExp > maxExp.
func Rand(r *rand.Rand, prec uint, minExp, maxExp int) *Float {
	if prec == 0 || minExp > maxExp {
		panic("bigfloat: invalid arguments to Rand")
	}
	n := int(prec+_W-1) / _W
	m := nat(nil).make(n)
	for i := range m {
		m[i] = Word(r.Uint64())
	}
	// keep prec bits at the top of m
	if s := uint(n*_W) - prec; s > 0 {
		m[0] &^= 1<<s - 1
	}
	m[n-1] |= 1 << (_W - 1)
	exp := minExp + r.Intn(maxExp-minExp+1)
	z, _ := makeFinite(r.Intn(2) == 1, m.trim(), int64(exp))
	return z
}
