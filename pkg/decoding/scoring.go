package decoding

import (
	"math"

	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/openlr"
	"github.com/openlr-go/dereferencer/pkg/util"
)

// subscores holds the four weighted components combined into a
// candidate's total score, kept separate so OnCandidatesFound and tests
// can inspect them individually. Grounded on
// _examples/original_source/openlr_dereferencer/decoding/scoring.py's
// score_* functions, fixed to spec.md §4.4's exact formulas.
type subscores struct {
	geo, frc, fow, bear float64
}

func (s subscores) total(c Config) float64 {
	return c.GeoWeight*s.geo + c.FRCWeight*s.frc + c.FOWWeight*s.fow + c.BearWeight*s.bear
}

// scoreGeo is 1 - min(d, R)/R: perfect at zero perpendicular distance,
// zero once d reaches the search radius.
func scoreGeo(perpendicularDistance, searchRadius float64) float64 {
	if searchRadius <= 0 {
		return 0
	}
	return 1 - util.MinFloat(perpendicularDistance, searchRadius)/searchRadius
}

// scoreFRC is max(0, 1 - |frc_lrp - frc_line| / 8), per spec.md §4.4 (the
// Python reference divides by 7; spec.md's /8 is authoritative here, see
// SPEC_FULL.md §7).
func scoreFRC(wanted, actual openlr.FRC) float64 {
	diff := math.Abs(float64(wanted - actual))
	return util.MaxFloat(0, 1-diff/8)
}

// scoreFOW looks up the fixed compatibility table.
func scoreFOW(table [8][8]float64, wanted, actual openlr.FOW) float64 {
	return table[wanted][actual]
}

// scoreBear is 1 - angle_difference(wanted, actual) / 180.
func scoreBear(wanted, actual float64) float64 {
	return 1 - geo.AngleDifference(wanted, actual)/180
}

// scoreCandidate computes the four sub-scores for a projection onto
// line at offsetMeters, against an LRP's wanted attributes, and their
// weighted total. isLastLRP selects whether the bearing is measured
// forward from the candidate point (for a non-last LRP, over the
// outgoing geometry) or backward against the line's own direction (for
// the last LRP, over the incoming geometry, reversed) — see
// geo.BearingFromOffset.
func scoreCandidate(
	cfg Config,
	lrp openlr.LocationReferencePoint,
	lineFRC openlr.FRC,
	lineFOW openlr.FOW,
	lineVertices []geo.Coordinate,
	offsetMeters float64,
	perpendicularDistance float64,
	isLastLRP bool,
) (subscores, bool) {
	actualBear, ok := geo.BearingFromOffset(lineVertices, offsetMeters, cfg.BearDist, isLastLRP)
	if !ok {
		actualBear = 0
	}

	s := subscores{
		geo:  scoreGeo(perpendicularDistance, cfg.SearchRadius),
		frc:  scoreFRC(lrp.FRC, lineFRC),
		fow:  scoreFOW(cfg.FOWStandinScore, lrp.FOW, lineFOW),
		bear: scoreBear(lrp.Bear, actualBear),
	}

	if geo.AngleDifference(lrp.Bear, actualBear) > cfg.MaxBearDeviation {
		return s, false
	}
	return s, true
}
