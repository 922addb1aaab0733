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

package cbor_test

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/blinklabs-io/typehash"
	"github.com/blinklabs-io/typehash/cbor"
	"github.com/blinklabs-io/typehash/debug"
	"github.com/blinklabs-io/typehash/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	cbor.DecodeStoreCbor
	Name string
	Size uint64
}

func (r *record) UnmarshalCBOR(data []byte) error {
	type tRecord record
	var tmp tRecord
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	*r = record(tmp)
	r.SetCbor(data)
	return nil
}

// {"Name": "abc", "Size": 1} in canonical key order
const canonicalRecordHex = "a2644e616d65636162636453697a6501"

// The same map with the keys swapped
const reorderedRecordHex = "a26453697a6501644e616d6563616263"

func record2Hex[T any](enc typehash.Encoder[T], v T) string {
	return typehash.Sum[debug.Bytes](debug.New, enc, v).Hex()
}

func TestEncodeDeterministic(t *testing.T) {
	data, err := cbor.Encode(map[string]uint64{"Size": 1, "Name": 2})
	require.NoError(t, err)
	assert.Equal(t, "a2644e616d65026453697a6501", hex.EncodeToString(data))

	data, err = cbor.Encode([]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "83010203", hex.EncodeToString(data))
}

func TestDecode(t *testing.T) {
	var r record
	n, err := cbor.Decode(test.DecodeHexString(reorderedRecordHex), &r)
	require.NoError(t, err)
	assert.Equal(t, len(reorderedRecordHex)/2, n)
	assert.Equal(t, "abc", r.Name)
	assert.Equal(t, uint64(1), r.Size)
	assert.Equal(t, reorderedRecordHex, hex.EncodeToString(r.Cbor()))
}

func TestCanonical(t *testing.T) {
	enc, err := cbor.Canonical[record]()
	require.NoError(t, err)
	assert.Equal(
		t,
		canonicalRecordHex,
		record2Hex(enc, record{Name: "abc", Size: 1}),
	)
}

func TestCanonicalMapOrder(t *testing.T) {
	enc := cbor.MustCanonical[map[string]int]()
	a := map[string]int{}
	b := map[string]int{}
	keys := []string{"one", "two", "three", "four", "five"}
	for i, k := range keys {
		a[k] = i
	}
	for i := len(keys) - 1; i >= 0; i-- {
		b[keys[i]] = i
	}
	assert.Equal(t, record2Hex(enc, a), record2Hex(enc, b))
}

func TestCanonicalUnsupported(t *testing.T) {
	_, err := cbor.Canonical[chan int]()
	require.Error(t, err)
	assert.Panics(t, func() { cbor.MustCanonical[func()]() })
}

type reading struct {
	V float64
}

type readings struct {
	Single  float32
	List    []float64
	ByName  map[string]float64
	Ptr     *float64
	Nested  [2]reading
	Skipped float64 `cbor:"-"`
}

func TestCanonicalFloatZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	enc := cbor.MustCanonical[reading]()
	require.Equal(t, reading{V: 0}, reading{V: negZero})
	assert.Equal(t, "a16156f90000", record2Hex(enc, reading{V: negZero}))
	assert.Equal(t, record2Hex(enc, reading{V: 0}), record2Hex(enc, reading{V: negZero}))

	plusZero := 0.0
	minusZero := negZero
	positive := readings{
		List:   []float64{0, 1},
		ByName: map[string]float64{"a": 0},
		Ptr:    &plusZero,
	}
	negative := readings{
		Single:  float32(negZero),
		List:    []float64{negZero, 1},
		ByName:  map[string]float64{"a": negZero},
		Ptr:     &minusZero,
		Nested:  [2]reading{{V: negZero}, {V: negZero}},
		Skipped: negZero,
	}
	encAll := cbor.MustCanonical[readings]()
	assert.Equal(t, record2Hex(encAll, positive), record2Hex(encAll, negative))

	// The hashed value itself is left alone
	assert.True(t, math.Signbit(negative.List[0]))
	assert.True(t, math.Signbit(negative.ByName["a"]))
	assert.True(t, math.Signbit(*negative.Ptr))
	assert.True(t, math.Signbit(negative.Nested[0].V))
}

func TestCanonicalFloatNonZero(t *testing.T) {
	enc := cbor.MustCanonical[reading]()
	assert.NotEqual(t, record2Hex(enc, reading{V: 1}), record2Hex(enc, reading{V: -1}))
}

func TestCanonicalRejectsDynamicFields(t *testing.T) {
	_, err := cbor.Canonical[struct{ Payload any }]()
	require.ErrorIs(t, err, cbor.ErrUnsupportedType)

	_, err = cbor.Canonical[map[string]any]()
	require.ErrorIs(t, err, cbor.ErrUnsupportedType)

	_, err = cbor.Canonical[[]struct{ Done chan int }]()
	require.ErrorIs(t, err, cbor.ErrUnsupportedType)

	_, err = cbor.Canonical[struct{ Z complex128 }]()
	require.ErrorIs(t, err, cbor.ErrUnsupportedType)

	// Fields the encoder never writes do not matter
	_, err = cbor.Canonical[struct {
		Name    string
		done    chan int
		Handler func() `cbor:"-"`
	}]()
	require.NoError(t, err)
}

func TestOriginalVersusCanonical(t *testing.T) {
	var canonical, reordered record
	_, err := cbor.Decode(test.DecodeHexString(canonicalRecordHex), &canonical)
	require.NoError(t, err)
	_, err = cbor.Decode(test.DecodeHexString(reorderedRecordHex), &reordered)
	require.NoError(t, err)

	// Original hashes the bytes as received
	original := cbor.Original[record]()
	assert.Equal(t, canonicalRecordHex, record2Hex(original, canonical))
	assert.Equal(t, reorderedRecordHex, record2Hex(original, reordered))

	// Canonical hashes the decoded value
	enc := cbor.MustCanonical[record]()
	assert.Equal(t, record2Hex(enc, canonical), record2Hex(enc, reordered))
}

func TestOriginalWithoutStoredCbor(t *testing.T) {
	assert.Empty(t, record2Hex(cbor.Original[record](), record{Name: "x"}))
}

func TestSetCborCopies(t *testing.T) {
	data := []byte{0x01}
	var d cbor.DecodeStoreCbor
	d.SetCbor(data)
	data[0] = 0x02
	assert.Equal(t, []byte{0x01}, d.Cbor())
	d.SetCbor(nil)
	assert.Nil(t, d.Cbor())
}

func TestCanonicalInComposite(t *testing.T) {
	// A dynamically shaped field alongside statically typed ones
	type event struct {
		ID      uint32
		Payload map[string]string
	}
	enc := typehash.Struct(
		typehash.Field(func(e *event) uint32 { return e.ID }, typehash.Raw[uint32]()),
		typehash.Field(
			func(e *event) map[string]string { return e.Payload },
			cbor.MustCanonical[map[string]string](),
		),
	)
	value := event{ID: 7, Payload: map[string]string{"k": "v"}}
	assert.Equal(
		t,
		test.NativeHex(uint32(7))+"a1616b6176",
		record2Hex(enc, value),
	)
}
