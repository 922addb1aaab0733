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
	"errors"
	"fmt"
	"reflect"
)

// Scalar is satisfied by the built-in kinds whose memory representation is a
// bijection with their value. Floating point kinds are deliberately absent:
// +0.0 and -0.0 compare equal but have different bits.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Unique is implemented by aggregate types that declare their memory layout to
// be a canonical encoding of their value: no padding, and no two distinct
// representations of equal values. The method is a marker and is never called.
type Unique interface {
	UniquelyRepresented()
}

var uniqueType = reflect.TypeFor[Unique]()

// UniquelyRepresented reports whether values of T are uniquely represented by
// their memory. Only the type is inspected.
//
// Aggregates are never inferred to be uniquely represented; they must opt in
// by implementing Unique.
func UniquelyRepresented[T any]() bool {
	return isUnique(reflect.TypeFor[T]())
}

func isUnique(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return true
	case reflect.Array:
		return isUnique(t.Elem())
	case reflect.Struct:
		return t.Implements(uniqueType)
	default:
		return false
	}
}

var errPadding = errors.New("contains padding")

// checkLayout verifies that the memory of a type can stand in for its value.
// Struct fields are checked structurally; the outer opt-in covers them.
func checkLayout(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return nil
	case reflect.Array:
		if err := checkLayout(t.Elem()); err != nil {
			return fmt.Errorf("element of %s: %w", t, err)
		}
		return nil
	case reflect.Struct:
		var offset uintptr
		for i := range t.NumField() {
			field := t.Field(i)
			if field.Offset != offset {
				return fmt.Errorf(
					"%s before field %s: %w",
					t,
					field.Name,
					errPadding,
				)
			}
			if err := checkLayout(field.Type); err != nil {
				return fmt.Errorf("field %s.%s: %w", t, field.Name, err)
			}
			offset += field.Type.Size()
		}
		if offset != t.Size() {
			return fmt.Errorf("%s at end: %w", t, errPadding)
		}
		return nil
	default:
		return fmt.Errorf("%s (%s) has no unique representation", t, t.Kind())
	}
}
