package decoding

import "github.com/openlr-go/dereferencer/pkg/openlr"

// Config is the immutable set of options influencing decode behaviour.
// Per spec.md §9's redesign note, this replaces the reference
// implementation's module-level mutable configuration: every decode call
// takes its own Config value and there is no process-wide state.
type Config struct {
	// SearchRadius is the radius, in meters, around each LRP in which
	// candidate lines are looked up.
	SearchRadius float64
	// GeoWeight, FRCWeight, FOWWeight and BearWeight are the weights of
	// the four sub-scores; they should sum to 1.0.
	GeoWeight, FRCWeight, FOWWeight, BearWeight float64
	// MinScore discards candidates scoring below this floor.
	MinScore float64
	// MaxDNPDeviationRel and MaxDNPDeviationAbs bound the DNP tolerance:
	// a route's length must fall within
	// max(MaxDNPDeviationAbs, MaxDNPDeviationRel * dnp) meters of DNP.
	MaxDNPDeviationRel float64
	MaxDNPDeviationAbs float64
	// BearDist is the distance, in meters, over which a line's start
	// (or, for the last LRP, end) bearing is measured.
	BearDist float64
	// TolerateLFRC adds per-FRC slack to the LFRCNP ceiling used by
	// the router: for an LRP with LFRCNP f, lines with
	// FRC <= TolerateLFRC[f] are permitted between the LRP and its
	// successor.
	TolerateLFRC map[openlr.FRC]openlr.FRC
	// CandidateThreshold is the meter threshold below which a
	// projection near a line endpoint snaps to (or is rejected in favor
	// of) that endpoint, rather than being kept as a mid-line candidate.
	// Named separately from SearchRadius per SPEC_FULL.md §4.
	CandidateThreshold float64
	// MaxBearDeviation pre-filters candidates whose bearing differs
	// from the LRP's wanted bearing by more than this many degrees,
	// independent of MinScore. Per SPEC_FULL.md §4.
	MaxBearDeviation float64
	// FOWStandinScore is the fixed FOW compatibility matrix,
	// FOWStandinScore[lrpFOW][candidateFOW]. See SPEC_FULL.md §6.
	FOWStandinScore [8][8]float64
}

// DefaultFOWStandinScore is the FOW compatibility matrix reproduced
// verbatim from _examples/original_source/openlr_dereferencer/decoding/
// configuration.py's DEFAULT_FOW_STAND_IN_SCORE (itself adopted from the
// OpenLR Java reference implementation). Do not re-derive these values.
var DefaultFOWStandinScore = [8][8]float64{
	{0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50}, // Undefined
	{0.50, 1.00, 0.75, 0.00, 0.00, 0.00, 0.00, 0.00}, // Motorway
	{0.50, 0.75, 1.00, 0.75, 0.50, 0.00, 0.00, 0.00}, // Multiple carriageway
	{0.50, 0.00, 0.75, 1.00, 0.50, 0.50, 0.00, 0.00}, // Single carriageway
	{0.50, 0.00, 0.50, 0.50, 1.00, 0.50, 0.00, 0.00}, // Roundabout
	{0.50, 0.00, 0.00, 0.50, 0.50, 1.00, 0.00, 0.00}, // Traffic square
	{0.50, 0.00, 0.00, 0.00, 0.00, 0.00, 1.00, 0.00}, // Sliproad
	{0.50, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 1.00}, // Other
}

// DefaultConfig returns the default configuration, matching the values
// listed in spec.md §6.
func DefaultConfig() Config {
	identity := make(map[openlr.FRC]openlr.FRC, 8)
	for f := openlr.FRC0; f <= openlr.FRC7; f++ {
		identity[f] = f
	}
	return Config{
		SearchRadius:        100.0,
		GeoWeight:           0.25,
		FRCWeight:           0.25,
		FOWWeight:           0.25,
		BearWeight:          0.25,
		MinScore:            0.01,
		MaxDNPDeviationRel:  0.1,
		MaxDNPDeviationAbs:  20.0,
		BearDist:            20.0,
		TolerateLFRC:        identity,
		CandidateThreshold:  20.0,
		MaxBearDeviation:    45.0,
		FOWStandinScore:     DefaultFOWStandinScore,
	}
}

// lfrcCeiling returns the FRC ceiling applicable between an LRP with the
// given LFRCNP and its successor.
func (c Config) lfrcCeiling(lfrcnp openlr.FRC) openlr.FRC {
	if ceiling, ok := c.TolerateLFRC[lfrcnp]; ok {
		return ceiling
	}
	return lfrcnp
}

// dnpTolerance returns the absolute tolerance, in meters, for a given DNP.
func (c Config) dnpTolerance(dnp float64) float64 {
	rel := c.MaxDNPDeviationRel * dnp
	if rel > c.MaxDNPDeviationAbs {
		return rel
	}
	return c.MaxDNPDeviationAbs
}
