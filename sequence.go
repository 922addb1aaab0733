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

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// Slice is the sequence rule for slices: each element in index order, with no
// length prefix. When elem absorbs raw memory the whole backing span is
// absorbed in a single call instead, which produces the same bytes.
func Slice[E any](elem Encoder[E]) Encoder[[]E] {
	if elem.unique {
		return Encoder[[]E]{append: appendContiguous[E]}
	}
	return Elements(elem)
}

// Elements is the general sequence rule. It never takes the contiguous fast
// path, even for uniquely represented elements.
func Elements[E any](elem Encoder[E]) Encoder[[]E] {
	return Encoder[[]E]{
		append: func(h Appender, v *[]E) {
			s := *v
			for i := range s {
				elem.append(h, &s[i])
			}
		},
	}
}

func appendContiguous[E any](h Appender, v *[]E) {
	s := *v
	if len(s) == 0 {
		return
	}
	var zero E
	h.Append(
		unsafe.Slice(
			(*byte)(unsafe.Pointer(unsafe.SliceData(s))),
			len(s)*int(unsafe.Sizeof(zero)),
		),
	)
}

// Seq is the sequence rule for an arbitrary traversal. Elements are encoded
// strictly in the order the iterator yields them.
func Seq[E any](elem Encoder[E]) Encoder[iter.Seq[E]] {
	return Encoder[iter.Seq[E]]{
		append: func(h Appender, v *iter.Seq[E]) {
			for e := range *v {
				elem.append(h, &e)
			}
		},
	}
}

// Array is the rule for fixed size arrays A with element type E. Arrays of
// uniquely represented elements are absorbed as one span; anything else is
// encoded element by element in index order. Go generics cannot constrain A
// to [N]E, so the shape is checked when the encoder is built: Array panics
// there, before any value is hashed, if A is not an array of E.
func Array[A any, E any](elem Encoder[E]) Encoder[A] {
	t := reflect.TypeFor[A]()
	elemType := reflect.TypeFor[E]()
	if t.Kind() != reflect.Array || t.Elem() != elemType {
		panic(
			fmt.Sprintf("typehash: %s is not an array of %s", t, elemType),
		)
	}
	if elem.unique {
		return Encoder[A]{
			append: appendMemory[A],
			unique: true,
		}
	}
	n := t.Len()
	return Encoder[A]{
		append: func(h Appender, v *A) {
			s := unsafe.Slice((*E)(unsafe.Pointer(v)), n)
			for i := range s {
				elem.append(h, &s[i])
			}
		},
	}
}

// String hashes the bytes of a string, with no length or terminator
func String[S ~string]() Encoder[S] {
	return Encoder[S]{
		append: func(h Appender, v *S) {
			if len(*v) == 0 {
				return
			}
			h.Append(unsafe.Slice(unsafe.StringData(string(*v)), len(*v)))
		},
	}
}

// Bytes hashes a byte slice as-is
func Bytes[B ~[]byte]() Encoder[B] {
	return Encoder[B]{
		append: func(h Appender, v *B) {
			if len(*v) == 0 {
				return
			}
			h.Append([]byte(*v))
		},
	}
}

// Framed writes length(v) as a uint64 through the scalar rule before the
// bytes of enc. Use it wherever two values of different lengths must not be
// able to produce the same stream.
func Framed[T any](enc Encoder[T], length func(v T) int) Encoder[T] {
	count := Raw[uint64]()
	return Encoder[T]{
		append: func(h Appender, v *T) {
			n := uint64(length(*v))
			count.append(h, &n)
			enc.append(h, v)
		},
	}
}

// LengthPrefixed frames a slice rule with the number of elements
func LengthPrefixed[S ~[]E, E any](seq Encoder[S]) Encoder[S] {
	return Framed(seq, func(v S) int { return len(v) })
}
