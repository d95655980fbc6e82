// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package vartype provides values that remember whether a provider ever reported them.
package vartype

import (
	"fmt"
)

type (
	// VarFloat64 tracks a reported coordinate.
	VarFloat64 = Variable[float64]

	// VarString tracks a reported text field.
	VarString = Variable[string]
)

// Variable holds a value and whether it was assigned. The zero Variable is unset, so a
// reported zero value can be told apart from a missing one.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable returns a Variable that is set to value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{value: value, isset: true}
}

// Set stores val and marks the Variable as set.
func (v *Variable[T]) Set(val T) {
	v.value, v.isset = val, true
}

// Value returns the stored value, the zero value of T if unset.
func (v *Variable[T]) Value() T {
	return v.value
}

// ValueOr returns the stored value, or fallback if the Variable was never set.
func (v *Variable[T]) ValueOr(fallback T) T {
	if !v.isset {
		return fallback
	}
	return v.value
}

func (v *Variable[T]) IsSet() bool {
	return v.isset
}

func (v Variable[T]) String() string {
	if !v.isset {
		return "not reported"
	}
	return fmt.Sprint(v.value)
}
