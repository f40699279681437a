package geo

import (
	"github.com/openlr-go/dereferencer/pkg/util"

	"github.com/golang/geo/s2"
)

// ProjectPointToLineCoord projects snap onto the segment (pointA, pointB)
// and returns the projected coordinate.
func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointA = MakeSixDigitsAfterComa2(pointA, 6)
	pointB = MakeSixDigitsAfterComa2(pointB, 6)
	snap = MakeSixDigitsAfterComa2(snap, 6)

	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lng.Degrees(), projectLatLng.Lat.Degrees())
}

// PointLinePerpendicularDistance returns the perpendicular distance, in
// meters, from snap to the segment (pointA, pointB).
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)
	return Distance(snap, projectionPoint)
}

func MakeSixDigitsAfterComa2(n Coordinate, precision int) Coordinate {
	if util.CountDecimalPlacesF64(n.Lat) != precision {
		n.Lat = util.RoundFloat(n.Lat+0.000001, 6)
	}
	if util.CountDecimalPlacesF64(n.Lon) != precision {
		n.Lon = util.RoundFloat(n.Lon+0.000001, 6)
	}
	return n
}

// ProjectionResult is the outcome of projecting a coordinate onto a
// polyline: the offset in meters from the polyline's start, the
// projected coordinate itself, and the perpendicular distance from the
// original point to that projection.
type ProjectionResult struct {
	OffsetMeters       float64
	Projected          Coordinate
	PerpendicularDistM float64
}

// ProjectOntoPolyline projects point onto the polyline described by
// vertices (which must have at least two elements), trying every
// segment and keeping the closest one. The offset is measured along the
// polyline from its first vertex.
func ProjectOntoPolyline(vertices []Coordinate, point Coordinate) ProjectionResult {
	best := ProjectionResult{PerpendicularDistM: -1}
	cumulative := 0.0

	for i := 0; i+1 < len(vertices); i++ {
		a, b := vertices[i], vertices[i+1]
		segLen := Distance(a, b)

		var projected Coordinate
		var alongSeg float64
		if segLen == 0 {
			projected = a
			alongSeg = 0
		} else {
			projected = ProjectPointToLineCoord(a, b, point)
			alongSeg = clampToSegment(a, b, projected, segLen)
		}
		perpDist := Distance(point, projected)

		if best.PerpendicularDistM < 0 || perpDist < best.PerpendicularDistM {
			best = ProjectionResult{
				OffsetMeters:       cumulative + alongSeg,
				Projected:          projected,
				PerpendicularDistM: perpDist,
			}
		}
		cumulative += segLen
	}

	return best
}

// clampToSegment returns how far, in meters from a, the projected point
// lies along the segment (a, b), clamped to [0, segLen] since s2.Project
// already clamps to the segment but floating point can land a hair
// outside.
func clampToSegment(a, b, projected Coordinate, segLen float64) float64 {
	d := Distance(a, projected)
	if d > segLen {
		return segLen
	}
	return d
}

// InterpolateAlong returns the coordinate reached after walking
// offsetMeters along the polyline from its first vertex. offsetMeters is
// clamped to [0, total length of vertices].
func InterpolateAlong(vertices []Coordinate, offsetMeters float64) Coordinate {
	if len(vertices) == 0 {
		return Coordinate{}
	}
	if len(vertices) == 1 || offsetMeters <= 0 {
		return vertices[0]
	}

	remaining := offsetMeters
	for i := 0; i+1 < len(vertices); i++ {
		a, b := vertices[i], vertices[i+1]
		segLen := Distance(a, b)
		if remaining <= segLen || i+2 == len(vertices) {
			if segLen == 0 {
				return a
			}
			frac := util.ClampFloat(remaining/segLen, 0, 1)
			return DestinationPoint(a, InitialBearing(a, b), frac*segLen)
		}
		remaining -= segLen
	}
	return vertices[len(vertices)-1]
}

// BearingFromOffset returns the bearing measured from the point at
// offsetMeters along vertices, over up to distMeters, in the forward
// direction of the polyline (reversed=false) or backward against it
// (reversed=true). ok is false when there is no polyline left in the
// requested direction from that offset (offset at the very end for a
// forward query, or at the very start for a reversed one), matching
// the line1/line2-is-None early return of
// _examples/original_source/openlr_dereferencer/decoding/path_math.py's
// compute_bearing.
func BearingFromOffset(vertices []Coordinate, offsetMeters, distMeters float64, reversed bool) (bearing float64, ok bool) {
	if len(vertices) < 2 {
		return 0, false
	}
	total := PolylineLength(vertices)
	from := InterpolateAlong(vertices, util.ClampFloat(offsetMeters, 0, total))

	if !reversed {
		if offsetMeters >= total {
			return 0, false
		}
		to := InterpolateAlong(vertices, util.ClampFloat(offsetMeters+distMeters, 0, total))
		return InitialBearing(from, to), true
	}

	if offsetMeters <= 0 {
		return 0, false
	}
	to := InterpolateAlong(vertices, util.ClampFloat(offsetMeters-distMeters, 0, total))
	return InitialBearing(from, to), true
}

// PolylineLength sums the geodesic length of consecutive vertices.
func PolylineLength(vertices []Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(vertices); i++ {
		total += Distance(vertices[i], vertices[i+1])
	}
	return total
}
