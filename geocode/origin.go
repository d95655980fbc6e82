// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"net/netip"
	"strings"

	"github.com/wneessen/geokit/geo"
)

// OriginKind tells which variant an Origin holds.
type OriginKind int

const (
	OriginNone OriginKind = iota
	OriginPoint
	OriginAddress
	OriginIP
)

func (k OriginKind) String() string {
	switch k {
	case OriginPoint:
		return "point"
	case OriginAddress:
		return "address"
	case OriginIP:
		return "ip"
	default:
		return "none"
	}
}

// Origin is the starting point of a distance query. It holds exactly one of a
// coordinate pair, a street address or an IP address.
type Origin struct {
	kind  OriginKind
	point geo.Point
	value string
}

// FromPoint returns an Origin holding the given point.
func FromPoint(point geo.Point) Origin {
	return Origin{kind: OriginPoint, point: point}
}

// FromLocatable returns an Origin holding the point of l.
func FromLocatable(l geo.Locatable) Origin {
	return FromPoint(l.GeoPoint())
}

// FromAddress returns an Origin holding a street address.
func FromAddress(address string) Origin {
	return Origin{kind: OriginAddress, value: strings.TrimSpace(address)}
}

// FromIP returns an Origin holding an IP address.
func FromIP(ip string) Origin {
	return Origin{kind: OriginIP, value: strings.TrimSpace(ip)}
}

// FromString classifies value: a "lat,lng" pair becomes a point, an IPv4 dotted quad
// an IP address and everything else a street address.
func FromString(value string) Origin {
	value = strings.TrimSpace(value)
	if point, err := geo.ParsePoint(value); err == nil {
		return FromPoint(point)
	}
	if addr, err := netip.ParseAddr(value); err == nil && addr.Is4() {
		return FromIP(value)
	}
	return FromAddress(value)
}

// Kind returns the variant held by o.
func (o Origin) Kind() OriginKind {
	return o.kind
}

// Point returns the point of a point Origin.
func (o Origin) Point() (geo.Point, bool) {
	return o.point, o.kind == OriginPoint
}

// Query returns the address or IP of a non-point Origin.
func (o Origin) Query() string {
	return o.value
}

func (o Origin) String() string {
	if o.kind == OriginPoint {
		return o.point.String()
	}
	return o.value
}
