package decoding

import (
	"github.com/twpayne/go-polyline"

	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// LineLocation is a decoded line location: the concatenated path of
// lines the sequence decoder resolved, with StartOffsetMeters/
// EndOffsetMeters marking where within the first/last line the path
// actually begins/ends (as opposed to the line's own endpoints).
//
// Grounded on
// _examples/original_source/openlr_dereferencer/decoding/line_location.py's
// LineLocation and routes.py's Route.absolute_start_offset/
// absolute_end_offset.
type LineLocation struct {
	Lines             []mapreader.Line
	StartOffsetMeters float64
	EndOffsetMeters   float64
}

// LengthMeters is the geodesic length of the decoded path, after
// trimming to StartOffsetMeters/EndOffsetMeters.
func (loc LineLocation) LengthMeters() float64 {
	total := 0.0
	for _, l := range loc.Lines {
		total += l.Length()
	}
	total -= loc.StartOffsetMeters
	total -= loc.Lines[len(loc.Lines)-1].Length() - loc.EndOffsetMeters
	return total
}

// Coordinates returns the exact polyline of the decoded, trimmed path.
// Grounded on tools.py's add_offsets.
func (loc LineLocation) Coordinates() []geo.Coordinate {
	var out []geo.Coordinate
	for i, l := range loc.Lines {
		start, end := 0.0, l.Length()
		if i == 0 {
			start = loc.StartOffsetMeters
		}
		if i == len(loc.Lines)-1 {
			end = loc.EndOffsetMeters
		}
		out = append(out, trimPolyline(l.Coordinates(), start, end, len(out) > 0)...)
	}
	return out
}

// EncodePolyline renders the decoded path as a Google-encoded polyline
// string, suitable for handing to a map preview tool.
func (loc LineLocation) EncodePolyline() string {
	coords := loc.Coordinates()
	latLon := make([][]float64, len(coords))
	for i, c := range coords {
		latLon[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(latLon))
}

// PointAlongLine is the projection of a fractional position onto a
// decoded line location's path.
type PointAlongLine struct {
	Line         mapreader.Line
	OffsetMeters float64
	Coordinate   openlr.Coordinate
}

// PoiWithAccessPoint pairs a point-along-line access point with the
// POI's own, independently supplied coordinates.
type PoiWithAccessPoint struct {
	PointAlongLine
	POICoordinate openlr.Coordinate
}

// concatenateRoutes flattens the per-pair routes returned by the
// sequence decoder into one continuous line path, collapsing an exact
// line repeat wherever consecutive routes join on the same line.
// Grounded on routes.py's Route.lines property, generalized across
// route boundaries.
func concatenateRoutes(routes []Route) []mapreader.Line {
	var result []mapreader.Line
	for _, r := range routes {
		for _, l := range r.Lines() {
			if len(result) > 0 && result[len(result)-1].ID() == l.ID() {
				continue
			}
			result = append(result, l)
		}
	}
	return result
}

// decodedPath is the untrimmed (candidate-offset only) path underlying
// both a line location and the point-along-line/POI derivations.
func decodedPath(routes []Route) LineLocation {
	return LineLocation{
		Lines:             concatenateRoutes(routes),
		StartOffsetMeters: routes[0].Start.OffsetMeters(),
		EndOffsetMeters:   routes[len(routes)-1].End.OffsetMeters(),
	}
}

// assembleLineLocation applies the reference's positive/negative
// offsets (given as fractions of the first/second-to-last LRP's DNP,
// per spec.md §4.7) on top of the decoded path's own candidate offsets.
// Grounded on tools.py's remove_offsets, generalized from a single
// Route to the full concatenated path.
func assembleLineLocation(routes []Route, ref openlr.LineLocationReference) (LineLocation, error) {
	path := decodedPath(routes)
	total := path.LengthMeters()

	poffMeters := ref.POffs * ref.Points[0].DNP
	noffMeters := ref.NOffs * ref.Points[len(ref.Points)-2].DNP

	if poffMeters+noffMeters >= total {
		return LineLocation{}, ErrInvalidOffsets
	}

	lines := path.Lines
	remainingP := poffMeters + path.StartOffsetMeters
	for len(lines) > 1 && remainingP >= lines[0].Length() {
		remainingP -= lines[0].Length()
		lines = lines[1:]
	}

	remainingN := noffMeters + (lines[len(lines)-1].Length() - path.EndOffsetMeters)
	for len(lines) > 1 && remainingN >= lines[len(lines)-1].Length() {
		remainingN -= lines[len(lines)-1].Length()
		lines = lines[:len(lines)-1]
	}

	return LineLocation{
		Lines:             lines,
		StartOffsetMeters: remainingP,
		EndOffsetMeters:   lines[len(lines)-1].Length() - remainingN,
	}, nil
}

// pointAtFraction walks path accumulating length from
// StartOffsetMeters, returning the line and in-line offset holding the
// point at fraction (clamped to [0, 1]) of the path's own length. Per
// spec.md §4.7, this ignores the reference's own poffs/noffs.
func pointAtFraction(path LineLocation, fraction float64) PointAlongLine {
	total := path.LengthMeters()
	absolute := clamp01(fraction) * total

	walked := 0.0
	for i, l := range path.Lines {
		start, end := 0.0, l.Length()
		if i == 0 {
			start = path.StartOffsetMeters
		}
		if i == len(path.Lines)-1 {
			end = path.EndOffsetMeters
		}
		segLen := end - start
		if i == len(path.Lines)-1 || walked+segLen >= absolute {
			offsetInLine := clamp(start+(absolute-walked), start, end)
			return PointAlongLine{
				Line:         l,
				OffsetMeters: offsetInLine,
				Coordinate:   geo.InterpolateAlong(l.Coordinates(), offsetInLine),
			}
		}
		walked += segLen
	}

	last := path.Lines[len(path.Lines)-1]
	return PointAlongLine{
		Line:         last,
		OffsetMeters: path.EndOffsetMeters,
		Coordinate:   geo.InterpolateAlong(last.Coordinates(), path.EndOffsetMeters),
	}
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// trimPolyline returns the coordinates of vertices between startM and
// endM meters along it, interpolating exact endpoints. skipFirst omits
// the leading point, used when the caller is appending onto an
// already-nonempty result to avoid a duplicated join coordinate.
func trimPolyline(vertices []geo.Coordinate, startM, endM float64, skipFirst bool) []geo.Coordinate {
	if len(vertices) == 0 {
		return nil
	}
	out := []geo.Coordinate{geo.InterpolateAlong(vertices, startM)}
	cumulative := 0.0
	for i := 0; i+1 < len(vertices); i++ {
		segLen := geo.Distance(vertices[i], vertices[i+1])
		next := cumulative + segLen
		if next > startM && next < endM {
			out = append(out, vertices[i+1])
		}
		cumulative = next
	}
	out = append(out, geo.InterpolateAlong(vertices, endM))
	if skipFirst && len(out) > 0 {
		out = out[1:]
	}
	return out
}
