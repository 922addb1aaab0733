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

// Package digest adapts real hash algorithms to the typehash accumulator
// contract. It implements none of them; the work is done by
// golang.org/x/crypto/blake2b, github.com/zeebo/blake3, crypto/sha256 and
// github.com/cespare/xxhash/v2.
//
// Every constructor returns a *Stream whose result type names the algorithm,
// so a Hasher's result type documents what produced it:
//
//	h := typehash.New[digest.Blake2b256](digest.NewBlake2b256, enc)
package digest

import (
	"encoding"
	"fmt"
	"hash"

	"github.com/blinklabs-io/typehash"
)

// Stream feeds absorbed bytes into a hash.Hash and converts the final sum
// into the result type R
type Stream[R any] struct {
	hash   hash.Hash
	clone  func(hash.Hash) hash.Hash
	result func(sum []byte) R
}

var _ typehash.Algorithm[Blake2b256, *Stream[Blake2b256]] = (*Stream[Blake2b256])(nil)

func newStream[R any](
	h hash.Hash,
	clone func(hash.Hash) hash.Hash,
	result func(sum []byte) R,
) *Stream[R] {
	return &Stream[R]{
		hash:   h,
		clone:  clone,
		result: result,
	}
}

// Append writes p to the underlying hash
func (s *Stream[R]) Append(p []byte) {
	// hash.Hash.Write never returns an error
	_, _ = s.hash.Write(p)
}

// Value returns the result for everything appended so far. It does not change
// the state, so more bytes may be appended afterwards.
func (s *Stream[R]) Value() R {
	return s.result(s.hash.Sum(nil))
}

// Clone returns a Stream with an independent copy of the hash state
func (s *Stream[R]) Clone() *Stream[R] {
	return newStream(s.clone(s.hash), s.clone, s.result)
}

// Reset returns the Stream to its initial state
func (s *Stream[R]) Reset() {
	s.hash.Reset()
}

// marshalClone copies state through encoding.BinaryMarshaler, which the
// stdlib and x/crypto hashes implement for exactly this purpose
func marshalClone(newHash func() hash.Hash) func(hash.Hash) hash.Hash {
	return func(h hash.Hash) hash.Hash {
		marshaler, ok := h.(encoding.BinaryMarshaler)
		if !ok {
			panic(fmt.Sprintf("unexpected hash without state export: %T", h))
		}
		state, err := marshaler.MarshalBinary()
		if err != nil {
			panic(
				fmt.Sprintf("unexpected error exporting hash state: %s", err),
			)
		}
		ret := newHash()
		unmarshaler, ok := ret.(encoding.BinaryUnmarshaler)
		if !ok {
			panic(fmt.Sprintf("unexpected hash without state import: %T", ret))
		}
		if err := unmarshaler.UnmarshalBinary(state); err != nil {
			panic(
				fmt.Sprintf("unexpected error importing hash state: %s", err),
			)
		}
		return ret
	}
}
