package geo

import (
	"math"

	"github.com/openlr-go/dereferencer/pkg/util"
)

// BearingTo computes the initial bearing for the segment (p1, p2), in
// degrees clockwise from north, [0, 360).
// https://www.movable-type.co.uk/scripts/latlong.html
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}

// InitialBearing is BearingTo over two Coordinate values.
func InitialBearing(a, b Coordinate) float64 {
	return BearingTo(a.Lat, a.Lon, b.Lat, b.Lon)
}

// AngleDifference returns the absolute difference between two bearings,
// in degrees, in [0, 180].
func AngleDifference(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b)+180, 360) - 180
	return math.Abs(d)
}
