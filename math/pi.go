// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"sync"

	"github.com/db47h/bigfloat"
	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// _pi caches the most precise value of π computed so far.
var _pi struct {
	sync.Mutex
	prec uint
	r    bigfloat.Result
}

// Pi returns π rounded to c.Prec bits.
func Pi(c bigfloat.Context) (bigfloat.Result, error) {
	return eval(c, bigfloat.OpAtan, one, 0,
		func(ch *chain, _ bigfloat.Result) bigfloat.Result { return ch.pi() },
		nil)
}

// pi returns π with the working precision of ch. The cached value is used
// when it is precise enough, otherwise π is recomputed with 8 additional
// bits and cached.
func (ch *chain) pi() bigfloat.Result {
	if ch.err != nil {
		return failed
	}
	_pi.Lock()
	defer _pi.Unlock()
	if _pi.prec < ch.prec() {
		prec := ch.prec() + 8
		r, err := machin(prec, ch.c.MaxPrec)
		if err != nil {
			ch.err = err
			return failed
		}
		if log.V(2) {
			log.Infof("bigfloat/math: computed π with %d bits, error %s", prec, r.Err)
		}
		_pi.prec, _pi.r = prec, r
	}
	return ch.round(_pi.r)
}

// machin returns π = 16 atan(1/5) - 4 atan(1/239). Both series are summed
// concurrently.
func machin(prec, maxPrec uint) (bigfloat.Result, error) {
	var (
		g    errgroup.Group
		a, b bigfloat.Result
	)
	g.Go(func() error {
		ch := newChain(prec, maxPrec)
		a = ch.atanSeries(ch.quo(one, exact(5)), true)
		return ch.err
	})
	g.Go(func() error {
		ch := newChain(prec, maxPrec)
		b = ch.atanSeries(ch.quo(one, exact(239)), true)
		return ch.err
	})
	if err := g.Wait(); err != nil {
		return bigfloat.Result{}, err
	}
	ch := newChain(prec, maxPrec)
	r := ch.sub(ch.scale(a, 4), ch.scale(b, 2))
	return r, ch.err
}
