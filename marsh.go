// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements encoding/decoding of Floats.

package bigfloat

import (
	"encoding/binary"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
)

// Gob codec version. Permits backward-compatible changes to the encoding.
const floatGobVersion byte = 1

// GobEncode implements the gob.GobEncoder interface. The value of x is
// encoded exactly.
func (x *Float) GobEncode() ([]byte, error) {
	if x == nil {
		return nil, nil
	}

	sz := 1 + 1 // version + form|neg
	if x.form == finite {
		sz += 4 + len(x.mant)*_S // exp + mant
	}
	buf := make([]byte, sz)

	buf[0] = floatGobVersion
	b := byte(x.form&3) << 1
	if x.neg {
		b |= 1
	}
	buf[1] = b

	if x.form == finite {
		binary.BigEndian.PutUint32(buf[2:], uint32(x.exp))
		x.mant.bytes(buf[6:])
	}

	return buf, nil
}

// GobDecode implements the gob.GobDecoder interface. Floats are immutable
// once shared: GobDecode must only be called on a newly allocated Float.
func (z *Float) GobDecode(buf []byte) error {
	if len(buf) == 0 {
		// Other side sent a nil or default value.
		*z = Float{}
		return nil
	}

	if buf[0] != floatGobVersion {
		return errors.Newf("Float.GobDecode: encoding version %d not supported", buf[0])
	}
	if len(buf) < 2 {
		return errors.New("Float.GobDecode: buffer too small")
	}

	b := buf[1]
	f := Float{form: form((b >> 1) & 3), neg: b&1 != 0}
	if f.form == nan {
		f.neg = false
	}

	if f.form == finite {
		if len(buf) < 7 {
			return errors.New("Float.GobDecode: buffer too small")
		}
		f.exp = int32(binary.BigEndian.Uint32(buf[2:]))
		m := nat(nil).setBytes(buf[6:])
		if len(m) == 0 {
			return errors.New("Float.GobDecode: zero mantissa for finite value")
		}
		// the encoder may have used a different word size
		fnorm(m)
		f.mant = m.trim()
	}

	*z = f
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface. The value is
// marshaled exactly, in the hexadecimal 'p' format of big.Float
// (like "-0x.c8p+7").
func (x *Float) MarshalText() (text []byte, err error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	if x.form == nan {
		return []byte("NaN"), nil
	}
	return x.BigFloat().Append(nil, 'p', 0), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It
// accepts the output of MarshalText, which is decoded exactly, as well as
// decimal text as accepted by Parse, which is rounded to nearest even with a
// precision of about four bits per character. Like GobDecode, UnmarshalText
// must only be called on a newly allocated Float.
func (z *Float) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	prec := uint(len(s))*4 + 64
	if strings.EqualFold(s, "NaN") {
		*z = *NaN()
		return nil
	}
	if i := strings.IndexAny(s, "xX"); i >= 0 && i <= 2 {
		f, _, err := new(big.Float).SetPrec(prec).Parse(s, 0)
		if err != nil {
			return errors.Wrapf(err, "bigfloat: cannot unmarshal %q into a *bigfloat.Float", text)
		}
		*z = *NewBigFloat(f)
		return nil
	}
	r, err := Parse(s, prec, ToNearestEven)
	if err != nil {
		return errors.Wrapf(err, "bigfloat: cannot unmarshal %q into a *bigfloat.Float", text)
	}
	*z = *r.Val
	return nil
}
