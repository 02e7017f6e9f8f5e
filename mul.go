// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// truncate returns m, unit and t such that |x| = (m + f)×2**unit with
// 0 <= f < 1 and m the leading min(w, len) bits of the mantissa of x. t
// reports whether f != 0. The returned m may alias x's mantissa.
func truncate(x *Float, w uint) (m nat, unit int64, t bool) {
	l := uint(len(x.mant)) * _W
	unit = int64(x.exp) - int64(l)
	if l <= w {
		return x.mant, unit, false
	}
	s := l - w
	return nat(nil).shr(x.mant, s), unit + int64(s), x.mant.sticky(s) != 0
}

// Mul returns x×y rounded to c.Prec bits. Operands longer than the working
// precision are truncated before the exact product is computed.
func (c Context) Mul(x, y Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	flags := x.Flags | y.Flags
	a, b := x.Val, y.Val
	neg := a.neg != b.neg
	switch {
	case a.form == nan || b.form == nan:
		return nanResult(flags), nil
	case a.form == inf && b.form == zero, a.form == zero && b.form == inf:
		return nanResult(flags | InvalidOperation), nil
	case a.form == inf || b.form == inf:
		return Result{Val: Inf(neg), Err: infErr(x.Err, y.Err), Flags: flags}, nil
	case a.form == zero && b.form == zero:
		return Result{Val: Zero(neg), Err: zeroErr(x.Err, y.Err), Flags: flags}, nil
	case a.form == zero:
		return Result{Val: Zero(neg), Err: zeroErr(x.Err, Bound{}), Flags: flags}, nil
	case b.form == zero:
		return Result{Val: Zero(neg), Err: zeroErr(y.Err, Bound{}), Flags: flags}, nil
	}

	w := c.Prec + GuardBits(OpMul, c.Prec, x.Err.Order(c.Prec), y.Err.Order(c.Prec))
	if err := c.CheckWidth(w); err != nil {
		return Result{}, err
	}
	mx, ux, tx := truncate(a, w)
	my, uy, ty := truncate(b, w)
	n := nat(nil).mul(mx, my)

	terms := make([]Bound, 0, 6)
	terms = append(terms, x.Err, y.Err)
	d := Pow2Bound(1 - int64(w))
	if tx {
		terms = append(terms, d)
	}
	if ty {
		terms = append(terms, d)
	}
	sticky := tx || ty
	if sticky {
		terms = append(terms, recipBound(n))
	}
	return c.finish(n, ux+uy, neg, sticky, flags, terms...), nil
}

// Quo returns x/y rounded to c.Prec bits. The quotient is computed with at
// least two more bits than the working precision; its remainder feeds the
// sticky bit of the final rounding.
func (c Context) Quo(x, y Result) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	flags := x.Flags | y.Flags
	a, b := x.Val, y.Val
	neg := a.neg != b.neg
	switch {
	case a.form == nan || b.form == nan:
		return nanResult(flags), nil
	case a.form == inf && b.form == inf, a.form == zero && b.form == zero:
		return nanResult(flags | InvalidOperation), nil
	case a.form == inf:
		return Result{Val: Inf(neg), Err: infErr(x.Err, y.Err), Flags: flags}, nil
	case b.form == inf:
		return Result{Val: Zero(neg), Err: zeroErr(y.Err, Bound{}), Flags: flags}, nil
	case b.form == zero:
		r := Result{Val: Inf(neg), Flags: flags | DivisionByZero}
		if !y.Err.IsExact() {
			r.Err = unbounded
		}
		return r, nil
	case a.form == zero:
		return Result{Val: Zero(neg), Err: zeroErr(x.Err, Bound{}), Flags: flags}, nil
	}

	w := c.Prec + GuardBits(OpQuo, c.Prec, x.Err.Order(c.Prec), y.Err.Order(c.Prec))
	if err := c.CheckWidth(w); err != nil {
		return Result{}, err
	}
	mx, ux, tx := truncate(a, w)
	my, uy, ty := truncate(b, w)
	// q >= 2**(w+1)
	s := max(my.bitLen()+int(w)+2-mx.bitLen(), 0)
	u := nat(nil).shl(mx, uint(s))
	q, r := nat(nil).div(nil, u, my)

	terms := make([]Bound, 0, 6)
	terms = append(terms, x.Err, Inflate(y.Err))
	d := Pow2Bound(1 - int64(w))
	if tx {
		terms = append(terms, d)
	}
	if ty {
		terms = append(terms, Inflate(d))
	}
	sticky := len(r) != 0 || tx || ty
	if sticky && len(r) == 0 {
		terms = append(terms, recipBound(q))
	}
	return c.finish(q, ux-uy-int64(s), neg, sticky, flags, terms...), nil
}
