package decoding

import (
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// Candidate is the projection of an LRP onto a line: the line itself,
// the offset along it in meters, the projected coordinate, and the
// score assigned against the wanted LRP attributes.
//
// Shape grounded on the teacher's online.Candidate
// (pkg/engine/mapmatcher/online/data.go), which pairs a map-matching
// candidate with its edge, offset and score; fields here are renamed and
// retyped for line-location decoding instead of point map-matching.
type Candidate struct {
	line          mapreader.Line
	offsetMeters  float64
	projectedAt   openlr.Coordinate
	score         float64
}

func NewCandidate(line mapreader.Line, offsetMeters float64, projectedAt openlr.Coordinate, score float64) Candidate {
	return Candidate{
		line:         line,
		offsetMeters: offsetMeters,
		projectedAt:  projectedAt,
		score:        score,
	}
}

func (c Candidate) Line() mapreader.Line          { return c.line }
func (c Candidate) OffsetMeters() float64         { return c.offsetMeters }
func (c Candidate) ProjectedAt() openlr.Coordinate { return c.projectedAt }
func (c Candidate) Score() float64                { return c.score }

// AtStart reports whether the candidate sits at the very start of its line.
func (c Candidate) AtStart() bool {
	return c.offsetMeters <= 0
}

// AtEnd reports whether the candidate sits at the very end of its line.
func (c Candidate) AtEnd() bool {
	return c.offsetMeters >= c.line.Length()
}

// byScoreThenLineID sorts candidates by descending score, breaking ties
// by line ID for determinism (spec.md §5).
func byScoreThenLineID(candidates []Candidate) {
	sortCandidates(candidates)
}

func sortCandidates(candidates []Candidate) {
	// Insertion sort: candidate counts per LRP are small (spec.md §9:
	// "typically < 20 within 100m"), so an O(n^2) stable sort keeps this
	// file dependency-free and trivially deterministic.
	for i := 1; i < len(candidates); i++ {
		j := i
		for j > 0 && lessCandidate(candidates[j], candidates[j-1]) {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
			j--
		}
	}
}

func lessCandidate(a, b Candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.line.ID().Less(b.line.ID())
}
