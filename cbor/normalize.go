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

package cbor

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	_cbor "github.com/fxamacker/cbor/v2"
)

// ErrUnsupportedType is returned when a type contains a value shape that
// has no canonical CBOR encoding for every possible value
var ErrUnsupportedType = errors.New("unsupported type")

var (
	marshalerType       = reflect.TypeFor[_cbor.Marshaler]()
	binaryMarshalerType = reflect.TypeFor[encoding.BinaryMarshaler]()
)

// encodesItself reports whether the encoder hands values of t to their own
// marshaling method instead of walking them
func encodesItself(t reflect.Type) bool {
	for _, m := range []reflect.Type{marshalerType, binaryMarshalerType} {
		if t.Implements(m) || reflect.PointerTo(t).Implements(m) {
			return true
		}
	}
	return false
}

// encodedFields returns the struct fields the encoder writes out. Embedded
// structs are returned whole, since their exported fields are promoted.
func encodedFields(t reflect.Type) []reflect.StructField {
	var ret []reflect.StructField
	for i := range t.NumField() {
		f := t.Field(i)
		if tag, ok := f.Tag.Lookup("cbor"); ok {
			if strings.Split(tag, ",")[0] == "-" {
				continue
			}
		} else if strings.Split(f.Tag.Get("json"), ",")[0] == "-" {
			continue
		}
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				ret = append(ret, f)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		ret = append(ret, f)
	}
	return ret
}

// checkEncodable rejects types that can hold values the encoder cannot
// handle. Dynamically typed fields are rejected outright because their
// contents are only known once a value is hashed.
func checkEncodable(t reflect.Type, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true
	if encodesItself(t) {
		return nil
	}
	switch t.Kind() {
	case reflect.Chan,
		reflect.Func,
		reflect.UnsafePointer,
		reflect.Complex64,
		reflect.Complex128,
		reflect.Interface:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return checkEncodable(t.Elem(), seen)
	case reflect.Map:
		if err := checkEncodable(t.Key(), seen); err != nil {
			return err
		}
		return checkEncodable(t.Elem(), seen)
	case reflect.Struct:
		for _, f := range encodedFields(t) {
			if err := checkEncodable(f.Type, seen); err != nil {
				return fmt.Errorf("field %s of %s: %w", f.Name, t, err)
			}
		}
	}
	return nil
}

// floatIndex records which types reachable from a root can carry a float
// that the encoder writes out
type floatIndex map[reflect.Type]bool

func newFloatIndex(root reflect.Type) floatIndex {
	idx := floatIndex{}
	// Recursive types need more than one pass before every type that
	// reaches a float through a cycle is marked
	for {
		changed := false
		idx.visit(root, map[reflect.Type]bool{}, &changed)
		if !changed {
			return idx
		}
	}
}

func (idx floatIndex) visit(
	t reflect.Type,
	seen map[reflect.Type]bool,
	changed *bool,
) bool {
	if seen[t] {
		return idx[t]
	}
	seen[t] = true
	ret := false
	if !encodesItself(t) {
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			ret = true
		case reflect.Pointer, reflect.Slice, reflect.Array:
			ret = idx.visit(t.Elem(), seen, changed)
		case reflect.Map:
			k := idx.visit(t.Key(), seen, changed)
			e := idx.visit(t.Elem(), seen, changed)
			ret = k || e
		case reflect.Struct:
			for _, f := range encodedFields(t) {
				if idx.visit(f.Type, seen, changed) {
					ret = true
				}
			}
		}
	}
	if ret && !idx[t] {
		idx[t] = true
		*changed = true
	}
	return idx[t]
}

// normalize returns v with every zero float replaced by +0.0. Containers on
// the way to a float are copied so the caller's value is never modified.
func (idx floatIndex) normalize(v reflect.Value) reflect.Value {
	t := v.Type()
	if !idx[t] {
		return v
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		if v.Float() == 0 {
			return reflect.Zero(t)
		}
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(idx.normalize(v.Elem()))
		return p
	case reflect.Array:
		c := reflect.New(t).Elem()
		c.Set(v)
		for i := range c.Len() {
			c.Index(i).Set(idx.normalize(c.Index(i)))
		}
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := range v.Len() {
			c.Index(i).Set(idx.normalize(v.Index(i)))
		}
		return c
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(t, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(idx.normalize(iter.Key()), idx.normalize(iter.Value()))
		}
		return c
	case reflect.Struct:
		c := reflect.New(t).Elem()
		c.Set(v)
		for _, f := range encodedFields(t) {
			if !idx[f.Type] {
				continue
			}
			// Embedded structs may be unexported, so go through the
			// field's address to get a settable value
			fv := reflect.NewAt(
				f.Type,
				unsafe.Pointer(c.FieldByIndex(f.Index).UnsafeAddr()),
			).Elem()
			fv.Set(idx.normalize(fv))
		}
		return c
	}
	return v
}
