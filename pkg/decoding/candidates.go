package decoding

import (
	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// candidateSite is a (line, offset) pair awaiting scoring: either a
// direct projection onto a line found by FindLinesCloseTo, or a
// synthetic offset-0 site on a line promoted from another line's
// terminal node.
type candidateSite struct {
	line         mapreader.Line
	offsetMeters float64
	perpDistM    float64
}

// generateCandidates produces the ranked, filtered candidate list for a
// single LRP, per spec.md §4.3: a projection landing at (or near) a
// line's terminal node is promoted onto that node's outgoing lines
// instead of being kept as a zero-length fragment, except for the last
// LRP, which is exempt from promotion since its own line legitimately
// ends there. Promotion only fires at a real junction
// (mapreader.IsRealJunction) — at a shape point that merely continues
// the same road, the outgoing line is the same road and is already
// found on its own account by FindLinesCloseTo, so promoting there
// would just re-derive it as a redundant offset-0 duplicate; this
// refinement is carried over from is_invalid_node in
// _examples/original_source/openlr_dereferencer/decoding/candidate_functions.py,
// which spec.md's "terminal node" wording doesn't itself distinguish.
// A projection within CandidateThreshold of a line's start (or, for the
// last LRP, of its end) is snapped onto that endpoint when the endpoint
// is a real junction.
func generateCandidates(
	reader mapreader.MapReader,
	cfg Config,
	lrp openlr.LocationReferencePoint,
	isLastLRP bool,
) ([]Candidate, error) {
	lines, err := reader.FindLinesCloseTo(lrp.Coord, cfg.SearchRadius)
	if err != nil {
		return nil, mapReaderErr(err, "find lines close to %v", lrp.Coord)
	}

	seen := make(map[mapreader.ID]bool, len(lines))
	var candidates []Candidate
	for _, line := range lines {
		for _, site := range candidateSitesForLine(cfg, lrp, line, isLastLRP) {
			if seen[site.line.ID()] {
				continue
			}
			c, ok := scoreSite(cfg, lrp, site, isLastLRP)
			if !ok {
				continue
			}
			seen[site.line.ID()] = true
			candidates = append(candidates, c)
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

func candidateSitesForLine(
	cfg Config,
	lrp openlr.LocationReferencePoint,
	line mapreader.Line,
	isLastLRP bool,
) []candidateSite {
	vertices := line.Coordinates()
	length := line.Length()
	if length <= 0 || len(vertices) < 2 {
		return nil
	}

	proj := geo.ProjectOntoPolyline(vertices, lrp.Coord)
	if proj.PerpendicularDistM > cfg.SearchRadius {
		return nil
	}

	if isLastLRP {
		// Snap onto the line's end when the projection lies within
		// CandidateThreshold of a real junction there.
		if end := line.EndNode(); length-proj.OffsetMeters <= cfg.CandidateThreshold && mapreader.IsRealJunction(end) {
			return []candidateSite{{line: line, offsetMeters: length, perpDistM: geo.Distance(lrp.Coord, end.Coordinates())}}
		}
		return []candidateSite{{line: line, offsetMeters: proj.OffsetMeters, perpDistM: proj.PerpendicularDistM}}
	}

	if length-proj.OffsetMeters > cfg.CandidateThreshold {
		// Snap onto the line's start when the projection lies within
		// CandidateThreshold of a real junction there.
		if start := line.StartNode(); proj.OffsetMeters <= cfg.CandidateThreshold && mapreader.IsRealJunction(start) {
			return []candidateSite{{line: line, offsetMeters: 0, perpDistM: geo.Distance(lrp.Coord, start.Coordinates())}}
		}
		return []candidateSite{{line: line, offsetMeters: proj.OffsetMeters, perpDistM: proj.PerpendicularDistM}}
	}

	node := line.EndNode()
	if !mapreader.IsRealJunction(node) {
		return nil
	}
	// The promoted candidate sits at offset 0 of an outgoing line, i.e.
	// at node itself, not at the projection onto the original line: its
	// geometry score must be the distance to that node, per spec.md
	// §4.4's treatment of at-start-of-line candidates.
	nodeDist := geo.Distance(lrp.Coord, node.Coordinates())
	out := node.OutgoingLines()
	sites := make([]candidateSite, 0, len(out))
	for _, next := range out {
		sites = append(sites, candidateSite{line: next, offsetMeters: 0, perpDistM: nodeDist})
	}
	return sites
}

func scoreSite(cfg Config, lrp openlr.LocationReferencePoint, site candidateSite, isLastLRP bool) (Candidate, bool) {
	vertices := site.line.Coordinates()
	projectedAt := geo.InterpolateAlong(vertices, site.offsetMeters)

	sub, ok := scoreCandidate(cfg, lrp, site.line.FRC(), site.line.FOW(), vertices, site.offsetMeters, site.perpDistM, isLastLRP)
	if !ok {
		return Candidate{}, false
	}

	total := sub.total(cfg)
	if total < cfg.MinScore {
		return Candidate{}, false
	}

	return NewCandidate(site.line, site.offsetMeters, projectedAt, total), true
}
