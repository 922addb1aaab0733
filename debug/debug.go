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

// Package debug provides the reference accumulator. It records the literal
// byte stream produced by encoding rules so tests can assert exact canonical
// encodings. It is not a hash function and must not be used as one.
package debug

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/typehash"
	"github.com/jinzhu/copier"
)

// Number of bytes per line in the String dump
const bytesPerLine = 16

// Bytes is the result of a debug Hasher: every byte absorbed, in order
type Bytes []byte

// String renders the bytes as lowercase hex pairs, each followed by a space,
// with a line break after every 16 bytes and a final line break
func (b Bytes) String() string {
	var sb strings.Builder
	for idx, c := range b {
		fmt.Fprintf(&sb, "%02x ", c)
		if (idx+1)%bytesPerLine == 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Hex returns the bytes as a single hex string
func (b Bytes) Hex() string {
	return hex.EncodeToString(b)
}

// Hasher records everything appended to it
type Hasher struct {
	// Data holds the absorbed bytes. It is exported so that copies can be
	// made field by field.
	Data []byte
	// Offsets holds the position in Data where each Append call started
	Offsets []int
}

var _ typehash.Algorithm[Bytes, *Hasher] = (*Hasher)(nil)

// New returns an empty Hasher
func New() *Hasher {
	return &Hasher{}
}

func (h *Hasher) Append(p []byte) {
	h.Offsets = append(h.Offsets, len(h.Data))
	h.Data = append(h.Data, p...)
}

// Calls returns the bytes absorbed by each Append call, in order. Rules that
// take a contiguous fast path show up here as a single call.
func (h *Hasher) Calls() []Bytes {
	ret := make([]Bytes, len(h.Offsets))
	for idx, start := range h.Offsets {
		end := len(h.Data)
		if idx+1 < len(h.Offsets) {
			end = h.Offsets[idx+1]
		}
		ret[idx] = Bytes(bytes.Clone(h.Data[start:end]))
	}
	return ret
}

// Value returns a copy of the recorded bytes
func (h *Hasher) Value() Bytes {
	return Bytes(bytes.Clone(h.Data))
}

// Clone returns a Hasher with its own copy of the recorded bytes and call
// boundaries
func (h *Hasher) Clone() *Hasher {
	ret := &Hasher{}
	if err := copier.CopyWithOption(ret, h, copier.Option{DeepCopy: true}); err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error copying debug hasher: %s",
				err,
			),
		)
	}
	return ret
}

// Reset discards the recorded bytes
func (h *Hasher) Reset() {
	h.Data = nil
	h.Offsets = nil
}
