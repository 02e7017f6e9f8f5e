// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"github.com/cockroachdb/errors"
	"github.com/db47h/bigfloat"
	"github.com/go-viper/mapstructure/v2"
)

// Config holds the settings of a Context. It can be decoded from a generic
// map with DecodeConfig, where the rounding mode and traps are given by name:
//
//	prec: 128
//	mode: ToZero
//	traps: invalid operation|division by zero
type Config struct {
	Prec    uint                  `mapstructure:"prec"`
	Mode    bigfloat.RoundingMode `mapstructure:"mode"`
	MaxPrec uint                  `mapstructure:"max_prec"`
	Traps   bigfloat.Condition    `mapstructure:"traps"`
}

// DefaultConfig returns the configuration of a Context created by New(0,
// bigfloat.ToNearestEven).
func DefaultConfig() Config {
	return Config{
		Prec:    64,
		Mode:    bigfloat.ToNearestEven,
		MaxPrec: bigfloat.DefaultMaxPrec,
		Traps:   DefaultTraps,
	}
}

// DecodeConfig decodes m over DefaultConfig. Unknown keys are an error.
func DecodeConfig(m map[string]any) (Config, error) {
	cfg := DefaultConfig()
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	if err := d.Decode(m); err != nil {
		return Config{}, errors.Wrap(err, "bigfloat/context: invalid configuration")
	}
	if cfg.Prec == 0 {
		return Config{}, errors.Wrap(bigfloat.ErrInvalidPrecision, "bigfloat/context: invalid configuration")
	}
	return cfg, nil
}

// NewFromConfig returns a new Context with the settings of cfg.
func NewFromConfig(cfg Config) *Context {
	return New(cfg.Prec, cfg.Mode).SetMaxPrec(cfg.MaxPrec).SetTraps(cfg.Traps)
}
