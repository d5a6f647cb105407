// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package jsonmodel wraps a string-keyed, string-valued MapStore into a
// typed one, serializing values as JSON text and validating both keys and
// values through pluggable models that can reject malformed data.
package jsonmodel

import (
	"encoding/json"
	"fmt"

	"github.com/chaptervault/chaptervault/pkg/result"
)

// Model validates and (de)serializes a value type. Decode returns a
// cast failure when the raw text is not valid JSON for T or when the
// decoded value fails validation.
type Model[T any] interface {
	// Decode validates and constructs a value from raw JSON text.
	Decode(raw string) result.Result[T]

	// Encode serializes a value to the text stored in the inner store.
	Encode(v T) string
}

// KeyModel validates and (de)serializes a key type crossing into a
// string-keyed backend.
type KeyModel[K comparable] interface {
	// DecodeKey validates and constructs a key from its string form.
	DecodeKey(raw string) result.Result[K]

	// EncodeKey serializes a key to its string form.
	EncodeKey(k K) string
}

// jsonModel is the default Model: JSON (de)serialization with an optional
// validation hook.
type jsonModel[T any] struct {
	validate func(T) error
}

// New returns a Model backed by encoding/json. The optional validate hook
// runs after decoding; a non-nil error rejects the value with a cast
// failure. Pass nil to accept every structurally valid value.
func New[T any](validate func(T) error) Model[T] {
	return jsonModel[T]{validate: validate}
}

// Decode unmarshals raw and runs the validation hook. Both a JSON parse
// error and a validation rejection are cast failures.
func (m jsonModel[T]) Decode(raw string) result.Result[T] {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return result.Fail[T](result.Cast(fmt.Sprintf("invalid JSON: %v", err)))
	}
	if m.validate != nil {
		if err := m.validate(v); err != nil {
			return result.Fail[T](result.Cast(err.Error()))
		}
	}
	return result.Succeed(v)
}

// Encode serializes v as three-space-indented JSON. If marshaling yields
// nothing it falls back to the empty string.
func (m jsonModel[T]) Encode(v T) string {
	data, err := json.MarshalIndent(v, "", "   ")
	if err != nil || len(data) == 0 {
		return ""
	}
	return string(data)
}

// stringKeys is the identity key model for plain string keys.
type stringKeys struct {
	validate func(string) error
}

// StringKeys returns the identity KeyModel. The optional validate hook can
// reject malformed keys during listing; pass nil to accept every string.
func StringKeys(validate func(string) error) KeyModel[string] {
	return stringKeys{validate: validate}
}

func (m stringKeys) DecodeKey(raw string) result.Result[string] {
	if m.validate != nil {
		if err := m.validate(raw); err != nil {
			return result.Fail[string](result.Cast(err.Error()))
		}
	}
	return result.Succeed(raw)
}

func (m stringKeys) EncodeKey(k string) string {
	return k
}
