// Package openlr defines the reference-side data model the decoder
// consumes: the already-parsed representation of an OpenLR line
// location. Wire-format (binary string) parsing into these types is out
// of scope for this module (spec.md §1) and is assumed to have happened
// upstream.
package openlr

import "github.com/openlr-go/dereferencer/pkg/geo"

// FRC is the Functional Road Class, 0 (most important) to 7.
type FRC int

const (
	FRC0 FRC = iota
	FRC1
	FRC2
	FRC3
	FRC4
	FRC5
	FRC6
	FRC7
)

func (f FRC) Valid() bool {
	return f >= FRC0 && f <= FRC7
}

// FOW is the Form Of Way enumeration.
type FOW int

const (
	FOWUndefined FOW = iota
	FOWMotorway
	FOWMultipleCarriageway
	FOWSingleCarriageway
	FOWRoundabout
	FOWTrafficSquare
	FOWSliproad
	FOWOther
)

func (f FOW) Valid() bool {
	return f >= FOWUndefined && f <= FOWOther
}

// Coordinate is re-exported from geo so callers assembling a reference
// don't need to import the geo package directly for this common case.
type Coordinate = geo.Coordinate

// LocationReferencePoint is one LRP of an OpenLR line location.
//
// The last LRP of a sequence carries Bear as the bearing of the
// *incoming* line (reversed direction) and has no meaningful DNP/LFRCNP
// (HasDNP is false).
type LocationReferencePoint struct {
	Coord Coordinate
	FRC   FRC
	FOW   FOW
	// Bear is the bearing, in degrees, of the first ~20m of the next
	// line (or, for the last LRP, of the last ~20m of the incoming
	// line, measured against the direction of travel).
	Bear float64
	// LFRCNP is the lowest FRC permitted along the path to the next
	// LRP. Meaningless when HasDNP is false.
	LFRCNP FRC
	// DNP is the distance in meters to the next LRP. Meaningless when
	// HasDNP is false.
	DNP    float64
	HasDNP bool
}
