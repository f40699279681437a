package openlr

// LineLocationReference is a parsed OpenLR line location: an ordered
// sequence of at least two LRPs plus fractional offsets.
type LineLocationReference struct {
	Points []LocationReferencePoint
	// POffs is the positive offset, as a fraction of the first LRP's
	// DNP, measured from the start of the path.
	POffs float64
	// NOffs is the negative offset, as a fraction of the second-to-last
	// LRP's DNP, measured from the end of the path.
	NOffs float64
}

// PointAlongLineReference is a parsed OpenLR point-along-line location:
// an underlying line location (whose own offsets are ignored) plus a
// fractional position along the decoded path.
type PointAlongLineReference struct {
	Line LineLocationReference
	// POffsFraction is the position of the point as a fraction of the
	// decoded path's total length, in [0, 1].
	POffsFraction float64
}

// PoiWithAccessPointReference is a parsed OpenLR POI-with-access-point
// location: identical to a point-along-line reference for the purpose of
// finding the access point, with the POI's own coordinates carried
// through unchanged.
type PoiWithAccessPointReference struct {
	Line          LineLocationReference
	POffsFraction float64
	POICoord      Coordinate
}
