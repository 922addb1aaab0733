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

package digest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"

	"github.com/blinklabs-io/typehash/cbor"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
	Blake2b160Size = 20
)

func newBlake2b(size int) hash.Hash {
	tmpHash, err := blake2b.New(size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	return tmpHash
}

func newBlake2bStream[R any](size int, result func(sum []byte) R) *Stream[R] {
	newHash := func() hash.Hash { return newBlake2b(size) }
	return newStream(newHash(), marshalClone(newHash), result)
}

// NewBlake2b256 returns an accumulator producing Blake2b-256 digests
func NewBlake2b256() *Stream[Blake2b256] {
	return newBlake2bStream(
		Blake2b256Size,
		func(sum []byte) Blake2b256 { return Blake2b256(sum) },
	)
}

// NewBlake2b224 returns an accumulator producing Blake2b-224 digests
func NewBlake2b224() *Stream[Blake2b224] {
	return newBlake2bStream(
		Blake2b224Size,
		func(sum []byte) Blake2b224 { return Blake2b224(sum) },
	)
}

// NewBlake2b160 returns an accumulator producing Blake2b-160 digests
func NewBlake2b160() *Stream[Blake2b160] {
	return newBlake2bStream(
		Blake2b160Size,
		func(sum []byte) Blake2b160 { return Blake2b160(sum) },
	)
}

type Blake2b256 [Blake2b256Size]byte

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b[:])
}

func (b Blake2b256) Bech32(prefix string) string {
	return mustEncodeBech32(prefix, b[:])
}

// ParseBlake2b256 parses the hex form produced by String
func ParseBlake2b256(hexString string) (Blake2b256, error) {
	var ret Blake2b256
	if err := parseHex(hexString, ret[:]); err != nil {
		return ret, err
	}
	return ret, nil
}

type Blake2b224 [Blake2b224Size]byte

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b224) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b[:])
}

func (b Blake2b224) Bech32(prefix string) string {
	return mustEncodeBech32(prefix, b[:])
}

// ParseBlake2b224 parses the hex form produced by String
func ParseBlake2b224(hexString string) (Blake2b224, error) {
	var ret Blake2b224
	if err := parseHex(hexString, ret[:]); err != nil {
		return ret, err
	}
	return ret, nil
}

type Blake2b160 [Blake2b160Size]byte

func (b Blake2b160) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b160) Bytes() []byte {
	return b[:]
}

func (b Blake2b160) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b Blake2b160) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(b[:])
}

func (b Blake2b160) Bech32(prefix string) string {
	return mustEncodeBech32(prefix, b[:])
}

// EncodeBech32 encodes data as bech32 with the given human readable prefix
func EncodeBech32(prefix string, data []byte) (string, error) {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("converting data to base32: %w", err)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		return "", fmt.Errorf("encoding data as bech32: %w", err)
	}
	return encoded, nil
}

func mustEncodeBech32(prefix string, data []byte) string {
	encoded, err := EncodeBech32(prefix, data)
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %s", err))
	}
	return encoded
}

func parseHex(hexString string, dest []byte) error {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(dest) {
		return fmt.Errorf(
			"%w: digest is %d bytes, want %d",
			ErrInvalidLength,
			len(decoded),
			len(dest),
		)
	}
	copy(dest, decoded)
	return nil
}
