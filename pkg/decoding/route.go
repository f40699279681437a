package decoding

import "github.com/openlr-go/dereferencer/pkg/mapreader"

// Route is a part of a decoded line location, possibly starting and
// ending with a partial line. Grounded on
// _examples/original_source/openlr_dereferencer/decoding/routes.py's
// Route NamedTuple.
type Route struct {
	Start  Candidate
	Middle []mapreader.Line
	End    Candidate
}

// Lines returns every line participating in the route, collapsing an
// exact line repeat at the start/middle or middle/end join.
func (r Route) Lines() []mapreader.Line {
	result := []mapreader.Line{r.Start.Line()}
	for _, line := range r.Middle {
		if line.ID() != result[len(result)-1].ID() {
			result = append(result, line)
		}
	}
	if r.End.Line().ID() == result[len(result)-1].ID() {
		result = result[:len(result)-1]
	}
	result = append(result, r.End.Line())
	return result
}

// LengthMeters is the geodesic length of the route, in meters, after
// trimming the partial start and end lines to their candidate offsets.
func (r Route) LengthMeters() float64 {
	lines := r.Lines()
	total := 0.0
	for _, l := range lines {
		total += l.Length()
	}
	total -= r.Start.OffsetMeters()
	total -= r.End.Line().Length() - r.End.OffsetMeters()
	return total
}
