// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"fmt"
	"reflect"

	"github.com/blinklabs-io/typehash"
)

// Storer is implemented by values that kept the CBOR they were decoded from
type Storer interface {
	Cbor() []byte
}

// DecodeStoreCbor is embedded in types that need their original CBOR bytes
// preserved for hashing
type DecodeStoreCbor struct {
	cborData []byte
}

// Cbor returns the original CBOR for the object
func (d *DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// SetCbor stores a copy of the original CBOR for the object
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if cborData == nil {
		d.cborData = nil
		return
	}
	d.cborData = make([]byte, len(cborData))
	copy(d.cborData, cborData)
}

// Canonical returns a rule that hashes the core deterministic CBOR encoding
// of a value. The type is checked once up front: kinds the encoder cannot
// handle (channels, functions, complex numbers) and dynamically typed fields
// are rejected here rather than when a value is hashed. Zero floats are
// encoded as +0.0 so that values which compare equal hash equal.
func Canonical[T any]() (typehash.Encoder[T], error) {
	em, err := getEncMode()
	if err != nil {
		return typehash.Encoder[T]{}, err
	}
	t := reflect.TypeFor[T]()
	if err := checkEncodable(t, map[reflect.Type]bool{}); err != nil {
		return typehash.Encoder[T]{}, fmt.Errorf(
			"type %s has no canonical CBOR encoding: %w",
			t,
			err,
		)
	}
	var zero T
	if _, err := em.Marshal(zero); err != nil {
		return typehash.Encoder[T]{}, fmt.Errorf(
			"type %s has no canonical CBOR encoding: %w",
			t,
			err,
		)
	}
	floats := newFloatIndex(t)
	return typehash.EncoderFunc(func(h typehash.Appender, v T) {
		rv := floats.normalize(reflect.ValueOf(&v).Elem())
		data, err := em.Marshal(rv.Interface())
		if err != nil {
			panic(
				fmt.Sprintf(
					"unexpected error encoding %T as CBOR: %s",
					v,
					err,
				),
			)
		}
		h.Append(data)
	}), nil
}

// MustCanonical is like Canonical but panics if T cannot be encoded
func MustCanonical[T any]() typehash.Encoder[T] {
	enc, err := Canonical[T]()
	if err != nil {
		panic(err.Error())
	}
	return enc
}

// Original returns a rule that hashes the CBOR a value was decoded from,
// byte for byte. Values with no stored CBOR contribute nothing.
func Original[T any, P interface {
	*T
	Storer
}]() typehash.Encoder[T] {
	return typehash.EncoderFunc(func(h typehash.Appender, v T) {
		data := P(&v).Cbor()
		if len(data) == 0 {
			return
		}
		h.Append(data)
	})
}
