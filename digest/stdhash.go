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
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/cespare/xxhash/v2"
)

type SHA256 [sha256.Size]byte

func (s SHA256) String() string {
	return hex.EncodeToString(s[:])
}

func (s SHA256) Bytes() []byte {
	return s[:]
}

// NewSHA256 returns an accumulator producing SHA-256 digests
func NewSHA256() *Stream[SHA256] {
	return newStream(
		sha256.New(),
		marshalClone(sha256.New),
		func(sum []byte) SHA256 { return SHA256(sum) },
	)
}

// NewXXH64 returns an accumulator producing 64-bit xxHash values. It is not
// collision resistant and is meant for hash tables and caches.
func NewXXH64() *Stream[uint64] {
	newHash := func() hash.Hash { return xxhash.New() }
	return newStream(
		newHash(),
		marshalClone(newHash),
		// Digest.Sum appends the big-endian form of Sum64
		binary.BigEndian.Uint64,
	)
}
