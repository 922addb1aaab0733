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

package typehash

// Appender absorbs byte spans in the order they are presented.
type Appender interface {
	Append(p []byte)
}

// Algorithm is the contract a hash algorithm must satisfy to be driven by an
// Encoder. The result returned by Value must be a pure function of the exact
// bytes absorbed. Clone returns an independent copy of the current state;
// appending to the copy must not affect the original.
type Algorithm[R any, A any] interface {
	Appender
	Value() R
	Clone() A
}

// AppenderFunc adapts a plain function to the Appender interface
type AppenderFunc func(p []byte)

func (f AppenderFunc) Append(p []byte) {
	f(p)
}
