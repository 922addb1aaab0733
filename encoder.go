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
	"reflect"
	"unsafe"
)

// Encoder is the canonical encoding rule for values of type T. It decides
// exactly which bytes, in which order, a value contributes to an Appender.
//
// Encoders are built once from the constructors in this package and may be
// shared freely between goroutines. The zero Encoder is not usable.
type Encoder[T any] struct {
	append func(h Appender, v *T)
	// unique marks rules whose output is the raw memory of the value, which
	// lets sequence and array rules absorb whole spans at once
	unique bool
}

// Append drives v through the rule into h
func (e Encoder[T]) Append(h Appender, v T) {
	e.append(h, &v)
}

// Unique reports whether the rule absorbs the raw memory of the value
func (e Encoder[T]) Unique() bool {
	return e.unique
}

// Append drives v through the encoding rule enc into h
func Append[T any](h Appender, enc Encoder[T], v T) {
	enc.append(h, &v)
}

// EncoderFunc builds a rule from a function. The function must be pure: equal
// values must produce identical byte spans.
func EncoderFunc[T any](fn func(h Appender, v T)) Encoder[T] {
	return Encoder[T]{
		append: func(h Appender, v *T) {
			fn(h, *v)
		},
	}
}

// memory returns the bytes backing *v
func memory[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

func appendMemory[T any](h Appender, v *T) {
	h.Append(memory(v))
}

// Raw is the rule for uniquely represented scalars: exactly sizeof(T) bytes
// read straight from the value, in native byte order.
func Raw[T Scalar]() Encoder[T] {
	return Encoder[T]{
		append: appendMemory[T],
		unique: true,
	}
}

// Pointer hashes the address held by a pointer, not the value it points to
func Pointer[T any]() Encoder[*T] {
	return Encoder[*T]{
		append: appendMemory[*T],
		unique: true,
	}
}

// Float is the floating point rule. Any value equal to zero is rewritten to
// +0.0 before its bytes are absorbed. NaN payloads are left untouched, so
// differing NaNs may hash differently.
func Float[T ~float32 | ~float64]() Encoder[T] {
	return Encoder[T]{
		append: appendFloat[T],
	}
}

func appendFloat[T ~float32 | ~float64](h Appender, v *T) {
	f := *v
	if f == 0 {
		f = 0
	}
	h.Append(memory(&f))
}

// Complex hashes the real part followed by the imaginary part, each through
// the floating point rule
func Complex[T ~complex64 | ~complex128]() Encoder[T] {
	var zero T
	if unsafe.Sizeof(zero) == unsafe.Sizeof(complex64(0)) {
		return Encoder[T]{append: appendComplex[T, float32]}
	}
	return Encoder[T]{append: appendComplex[T, float64]}
}

func appendComplex[T ~complex64 | ~complex128, F float32 | float64](
	h Appender,
	v *T,
) {
	parts := *(*[2]F)(unsafe.Pointer(v))
	appendFloat(h, &parts[0])
	appendFloat(h, &parts[1])
}

// Opaque hashes the raw memory of a type that has declared itself uniquely
// represented. The layout is checked when the rule is built and Opaque panics
// if the type has padding or holds a field without a unique representation
// (floats, strings, slices, maps, interfaces).
func Opaque[T Unique]() Encoder[T] {
	t := reflect.TypeFor[T]()
	if err := checkLayout(t); err != nil {
		panic(
			fmt.Sprintf(
				"typehash: %s declares a unique representation: %s",
				t,
				err,
			),
		)
	}
	return Encoder[T]{
		append: appendMemory[T],
		unique: true,
	}
}

// Appendable is implemented by types that contribute their own bytes
type Appendable interface {
	AppendHash(h Appender)
}

// Method is the rule for types implementing Appendable
func Method[T Appendable]() Encoder[T] {
	return Encoder[T]{
		append: func(h Appender, v *T) {
			(*v).AppendHash(h)
		},
	}
}
