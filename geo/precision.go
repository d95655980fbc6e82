// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"
	"strings"
)

// Precision describes how accurately a provider was able to place a location. Higher values
// are more precise. The zero value is PrecisionUnknown.
type Precision int

const (
	PrecisionUnknown Precision = iota
	PrecisionCountry
	PrecisionState
	PrecisionCity
	PrecisionZip
	PrecisionZip4
	PrecisionStreet
	PrecisionAddress
)

var precisionNames = [...]string{
	PrecisionUnknown: "unknown",
	PrecisionCountry: "country",
	PrecisionState:   "state",
	PrecisionCity:    "city",
	PrecisionZip:     "zip",
	PrecisionZip4:    "zip+4",
	PrecisionStreet:  "street",
	PrecisionAddress: "address",
}

// ParsePrecision returns the Precision for its name.
func ParsePrecision(value string) (Precision, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range precisionNames {
		if name == value {
			return Precision(i), nil
		}
	}
	return PrecisionUnknown, fmt.Errorf("unknown precision: %q", value)
}

// String returns the name of the precision level.
func (p Precision) String() string {
	if p < 0 || int(p) >= len(precisionNames) {
		return precisionNames[PrecisionUnknown]
	}
	return precisionNames[p]
}

// MoreThan reports whether p is more precise than other.
func (p Precision) MoreThan(other Precision) bool {
	return p > other
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
