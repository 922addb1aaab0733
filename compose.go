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

// Field projects a value of an aggregate T onto one of its parts and encodes
// that part with enc. The getter must not modify the aggregate.
func Field[T any, F any](get func(v *T) F, enc Encoder[F]) Encoder[T] {
	return Encoder[T]{
		append: func(h Appender, v *T) {
			f := get(v)
			enc.append(h, &f)
		},
	}
}

// Struct composes the rules for an aggregate. Parts are encoded strictly in
// the order given, which is part of the canonical form.
func Struct[T any](parts ...Encoder[T]) Encoder[T] {
	// Detach from the caller's slice
	parts = append([]Encoder[T](nil), parts...)
	return Encoder[T]{
		append: func(h Appender, v *T) {
			for _, part := range parts {
				part.append(h, v)
			}
		},
	}
}

// Pair holds two values of possibly different types
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple holds three values of possibly different types
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple2 encodes First then Second
func Tuple2[A, B any](ea Encoder[A], eb Encoder[B]) Encoder[Pair[A, B]] {
	return Encoder[Pair[A, B]]{
		append: func(h Appender, v *Pair[A, B]) {
			ea.append(h, &v.First)
			eb.append(h, &v.Second)
		},
	}
}

// Tuple3 encodes First, Second and Third in that order
func Tuple3[A, B, C any](
	ea Encoder[A],
	eb Encoder[B],
	ec Encoder[C],
) Encoder[Triple[A, B, C]] {
	return Encoder[Triple[A, B, C]]{
		append: func(h Appender, v *Triple[A, B, C]) {
			ea.append(h, &v.First)
			eb.append(h, &v.Second)
			ec.append(h, &v.Third)
		},
	}
}
