package decoding

import (
	"math"
	"testing"

	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader/memory"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// chainedMap builds A-B-C as two lines sharing node B, so B is a
// pass-through shape point (not a real junction) while A and C are
// dangling endpoints (real junctions, per mapreader.IsRealJunction).
func chainedMap(t *testing.T) (reader *memory.Reader, a, b, c geo.Coordinate) {
	t.Helper()
	a = geo.NewCoordinate(13.0, 52.0)
	b = geo.NewCoordinate(13.01, 52.005)
	c = geo.NewCoordinate(13.02, 52.0)

	var err error
	reader, err = memory.Build([]memory.LineSpec{
		{ID: "AB", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{a, b}},
		{ID: "BC", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{b, c}},
	}, nil)
	if err != nil {
		t.Fatalf("building map: %v", err)
	}
	return
}

func TestGenerateCandidatesSnapsToDanglingEndpoint(t *testing.T) {
	reader, a, b, _ := chainedMap(t)
	cfg := DefaultConfig()

	lrp := openlr.LocationReferencePoint{
		Coord: a,
		FRC:   openlr.FRC3,
		FOW:   openlr.FOWSingleCarriageway,
		Bear:  geo.InitialBearing(a, b),
	}

	candidates, err := generateCandidates(reader, cfg, lrp, false)
	if err != nil {
		t.Fatalf("generateCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly one candidate (line AB), got %d", len(candidates))
	}
	if candidates[0].OffsetMeters() != 0 {
		t.Errorf("offset = %v, want 0 (snapped to the dangling start node A)", candidates[0].OffsetMeters())
	}
}

func TestGenerateCandidatesDiscardsAndDoesNotPromoteAtPassThroughNode(t *testing.T) {
	reader, _, b, _ := chainedMap(t)
	cfg := DefaultConfig()

	// An LRP sitting almost exactly at B, describing travel as if AB were
	// its own line, should not keep a candidate at AB's end: B is not a
	// real junction (exactly one line in, one out), so promotion onto
	// its outgoing lines does not fire either. BC still surfaces as its
	// own candidate at offset 0, found directly.
	lrp := openlr.LocationReferencePoint{
		Coord: b,
		FRC:   openlr.FRC3,
		FOW:   openlr.FOWSingleCarriageway,
		Bear:  geo.InitialBearing(b, geo.NewCoordinate(13.02, 52.0)),
	}

	candidates, err := generateCandidates(reader, cfg, lrp, false)
	if err != nil {
		t.Fatalf("generateCandidates: %v", err)
	}
	for _, c := range candidates {
		if c.Line().ID() == memory.ID("AB") {
			t.Errorf("AB should never yield a candidate for a projection landing at its non-junction end")
		}
	}
}

// forkMap builds X-D plus two lines fanning out of D (D-E, D-F), so D is
// a genuine junction (one line in, two lines out) that a near-end
// projection on XD should promote onto.
func forkMap(t *testing.T) (reader *memory.Reader, x, d, e, f geo.Coordinate) {
	t.Helper()
	x = geo.NewCoordinate(13.0, 52.0)
	d = geo.NewCoordinate(13.01, 52.0)
	e = geo.NewCoordinate(13.02, 52.0)
	f = geo.NewCoordinate(13.01, 52.01)

	var err error
	reader, err = memory.Build([]memory.LineSpec{
		{ID: "XD", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{x, d}},
		{ID: "DE", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{d, e}},
		{ID: "DF", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{d, f}},
	}, nil)
	if err != nil {
		t.Fatalf("building map: %v", err)
	}
	return
}

func TestCandidateSitesForLinePromotesAtRealJunction(t *testing.T) {
	reader, _, _, _, _ := forkMap(t)
	cfg := DefaultConfig()

	xd, err := reader.GetLine(memory.ID("XD"))
	if err != nil {
		t.Fatalf("GetLine(XD): %v", err)
	}

	nearEnd := geo.InterpolateAlong(xd.Coordinates(), xd.Length()-5)
	lrp := openlr.LocationReferencePoint{Coord: nearEnd}

	sites := candidateSitesForLine(cfg, lrp, xd, false)
	if len(sites) != 2 {
		t.Fatalf("expected promotion onto both of D's outgoing lines, got %d sites", len(sites))
	}

	d := xd.EndNode().Coordinates()
	wantPerpDist := geo.Distance(nearEnd, d)
	byID := map[string]bool{}
	for _, s := range sites {
		if s.offsetMeters != 0 {
			t.Errorf("promoted site on %v has offset %v, want 0", s.line.ID(), s.offsetMeters)
		}
		// The promoted site sits at node D, not at the projection onto
		// XD: its geometry score must use the distance to D, which here
		// is roughly the 5m the LRP sits short of D along XD, not the
		// ~0m perpendicular distance onto XD itself.
		if math.Abs(s.perpDistM-wantPerpDist) > 1e-6 {
			t.Errorf("promoted site on %v has perpDistM %v, want %v (distance to D)", s.line.ID(), s.perpDistM, wantPerpDist)
		}
		byID[string(s.line.ID().(memory.ID))] = true
	}
	if !byID["DE"] || !byID["DF"] {
		t.Errorf("expected promoted sites on DE and DF, got %v", byID)
	}
}

func TestCandidateSitesForLineNoPromotionForLastLRP(t *testing.T) {
	reader, _, _, _, _ := forkMap(t)
	cfg := DefaultConfig()

	xd, err := reader.GetLine(memory.ID("XD"))
	if err != nil {
		t.Fatalf("GetLine(XD): %v", err)
	}

	nearEnd := geo.InterpolateAlong(xd.Coordinates(), xd.Length()-5)
	lrp := openlr.LocationReferencePoint{Coord: nearEnd}

	sites := candidateSitesForLine(cfg, lrp, xd, true)
	if len(sites) != 1 || sites[0].line.ID() != xd.ID() {
		t.Fatalf("last LRP should keep the direct near-end site on XD itself, got %v sites", sites)
	}
}

func TestGenerateCandidatesNeverKeepsTerminalNodeSite(t *testing.T) {
	reader, _, _, _, _ := forkMap(t)
	cfg := DefaultConfig()

	xd, err := reader.GetLine(memory.ID("XD"))
	if err != nil {
		t.Fatalf("GetLine(XD): %v", err)
	}
	nearEnd := geo.InterpolateAlong(xd.Coordinates(), xd.Length()-5)
	lrp := openlr.LocationReferencePoint{
		Coord: nearEnd,
		FRC:   openlr.FRC3,
		FOW:   openlr.FOWSingleCarriageway,
		Bear:  geo.InitialBearing(nearEnd, xd.Coordinates()[len(xd.Coordinates())-1]),
	}

	candidates, err := generateCandidates(reader, cfg, lrp, false)
	if err != nil {
		t.Fatalf("generateCandidates: %v", err)
	}
	for _, c := range candidates {
		if c.Line().ID() == xd.ID() {
			t.Errorf("XD should never itself yield a candidate when its far end is promoted away")
		}
	}
}

func TestGenerateCandidatesEmptyBeyondSearchRadius(t *testing.T) {
	reader, _, _, _ := chainedMap(t)
	cfg := DefaultConfig()
	cfg.SearchRadius = 10

	lrp := openlr.LocationReferencePoint{
		Coord: geo.NewCoordinate(14.0, 53.0), // far outside any line's radius
		FRC:   openlr.FRC3,
		FOW:   openlr.FOWSingleCarriageway,
	}

	candidates, err := generateCandidates(reader, cfg, lrp, false)
	if err != nil {
		t.Fatalf("generateCandidates: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %d", len(candidates))
	}
}

func TestGenerateCandidatesSortedByDescendingScore(t *testing.T) {
	reader, a, b, _ := chainedMap(t)
	cfg := DefaultConfig()

	lrp := openlr.LocationReferencePoint{
		Coord: a,
		FRC:   openlr.FRC3,
		FOW:   openlr.FOWSingleCarriageway,
		Bear:  geo.InitialBearing(a, b),
	}

	candidates, err := generateCandidates(reader, cfg, lrp, false)
	if err != nil {
		t.Fatalf("generateCandidates: %v", err)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score() > candidates[i-1].Score() {
			t.Errorf("candidates not sorted by descending score at index %d", i)
		}
	}
}
