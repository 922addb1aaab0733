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
	"errors"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

const (
	Blake3Size    = 32
	Blake3KeySize = 32
)

var (
	ErrInvalidKey         = errors.New("invalid key")
	ErrInvalidLength      = errors.New("invalid length")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrInvalidContext     = errors.New("invalid context")
)

type Blake3 [Blake3Size]byte

func (b Blake3) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake3) Bytes() []byte {
	return b[:]
}

// ParseBlake3 parses the hex form produced by String
func ParseBlake3(hexString string) (Blake3, error) {
	var ret Blake3
	if err := parseHex(hexString, ret[:]); err != nil {
		return ret, err
	}
	return ret, nil
}

type blake3Config struct {
	key        []byte
	keySet     bool
	context    string
	contextSet bool
}

// OptionFunc is a type that represents functions that modify the BLAKE3 config
type OptionFunc func(*blake3Config)

// WithKey selects keyed hashing with a 32-byte key
func WithKey(key []byte) OptionFunc {
	return func(c *blake3Config) {
		c.key = key
		c.keySet = true
	}
}

// WithContext selects key derivation mode with the given context string.
// Distinct contexts separate otherwise identical inputs into unrelated
// digests.
func WithContext(context string) OptionFunc {
	return func(c *blake3Config) {
		c.context = context
		c.contextSet = true
	}
}

// NewBlake3 returns an unkeyed BLAKE3 accumulator
func NewBlake3() *Stream[Blake3] {
	return newBlake3Stream(blake3.New())
}

// NewBlake3Factory validates the options once and returns a constructor for
// accumulators configured with them
func NewBlake3Factory(opts ...OptionFunc) (func() *Stream[Blake3], error) {
	var cfg blake3Config
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case cfg.keySet && cfg.contextSet:
		return nil, fmt.Errorf(
			"%w: key and context cannot both be set",
			ErrConflictingOptions,
		)
	case cfg.keySet:
		if len(cfg.key) != Blake3KeySize {
			return nil, fmt.Errorf(
				"%w: key is %d bytes, want %d",
				ErrInvalidKey,
				len(cfg.key),
				Blake3KeySize,
			)
		}
		key := make([]byte, Blake3KeySize)
		copy(key, cfg.key)
		return func() *Stream[Blake3] {
			h, err := blake3.NewKeyed(key)
			if err != nil {
				panic(
					fmt.Sprintf(
						"unexpected error creating keyed blake3 hash: %s",
						err,
					),
				)
			}
			return newBlake3Stream(h)
		}, nil
	case cfg.contextSet:
		if cfg.context == "" {
			return nil, fmt.Errorf("%w: context is empty", ErrInvalidContext)
		}
		context := cfg.context
		return func() *Stream[Blake3] {
			return newBlake3Stream(blake3.NewDeriveKey(context))
		}, nil
	default:
		return NewBlake3, nil
	}
}

func newBlake3Stream(h *blake3.Hasher) *Stream[Blake3] {
	return newStream(
		h,
		cloneBlake3,
		func(sum []byte) Blake3 { return Blake3(sum) },
	)
}

func cloneBlake3(h hash.Hash) hash.Hash {
	b3, ok := h.(*blake3.Hasher)
	if !ok {
		panic(fmt.Sprintf("unexpected hash type: %T", h))
	}
	return b3.Clone()
}
