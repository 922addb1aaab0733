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

// Package typehash converts values of arbitrary types into a canonical byte
// stream for any hash algorithm, without coupling the algorithm to the set of
// hashable types or the types to a particular algorithm.
//
// # Key Types
//
//   - Appender: anything that absorbs byte spans
//   - Algorithm: an Appender that can be finalized and cloned (the accumulator contract)
//   - Encoder: a canonical encoding rule for one Go type
//   - Hasher: binds an algorithm factory to an encoder and produces results
//
// # Building Rules
//
// Rules are ordinary values composed from the constructors in this package.
// Picking the rule happens when the Encoder is built, so a type with no rule
// for it is a compile error at the call site rather than a runtime failure:
//
//	type Point struct {
//	    X, Y float64
//	    Tags []string
//	}
//
//	var pointEncoder = typehash.Struct(
//	    typehash.Field(func(p *Point) float64 { return p.X }, typehash.Float[float64]()),
//	    typehash.Field(func(p *Point) float64 { return p.Y }, typehash.Float[float64]()),
//	    typehash.Field(func(p *Point) []string { return p.Tags }, typehash.Slice(typehash.String[string]())),
//	)
//
//	h := typehash.New[digest.Blake2b256](digest.NewBlake2b256, pointEncoder)
//	sum := h.Sum(Point{X: 1, Y: 2})
//
// # Canonical Form
//
//   - Uniquely represented scalars contribute their raw native-endian bytes
//   - Floating point zero is always hashed as +0.0
//   - Sequences, arrays and aggregates are the concatenation of their parts, in order
//   - No length prefix is written unless LengthPrefixed is used
package typehash
