package memory

import (
	"fmt"
	"math"

	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// LineSpec is the build-time description of one directed line: its
// identity, its endpoint node identities (nodes are deduplicated by
// coordinate if StartNodeID/EndNodeID are left empty and a coordinate-keyed
// node is reused instead, mirroring how most map formats expose nodes
// only implicitly via shared way endpoints), FRC/FOW attributes and
// geometry.
type LineSpec struct {
	ID          string
	StartNodeID string
	EndNodeID   string
	FRC         openlr.FRC
	FOW         openlr.FOW
	Vertices    []geo.Coordinate
}

// Reader is an in-memory mapreader.MapReader, backed by a
// tidwall/rtree spatial index over line bounding boxes. Safe for
// concurrent reads once Build has returned: every map is fully
// populated up front and never mutated afterward.
//
// Grounded on the teacher's pkg/spatialindex/rtree.go (Rtree.Build /
// SearchWithinRadius), adapted from CRP graph edges to OpenLR lines and
// generalized to return every match within the query radius instead of
// capping at 20.
type Reader struct {
	lines map[ID]*Line
	nodes map[ID]*Node
	index *rtree.RTreeG[ID]
}

// Build constructs a Reader from specs. log receives progress
// messages the way the teacher's Rtree.Build does.
func Build(specs []LineSpec, log *zap.Logger) (*Reader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("building in-memory map reader", zap.Int("lines", len(specs)))

	var tr rtree.RTreeG[ID]
	r := &Reader{
		lines: make(map[ID]*Line, len(specs)),
		nodes: make(map[ID]*Node),
		index: &tr,
	}

	for _, spec := range specs {
		if len(spec.Vertices) < 2 {
			return nil, fmt.Errorf("memory: line %q has fewer than two vertices", spec.ID)
		}
		startID := r.ensureNode(ID(spec.StartNodeID), spec.Vertices[0])
		endID := r.ensureNode(ID(spec.EndNodeID), spec.Vertices[len(spec.Vertices)-1])

		line := &Line{
			id:          ID(spec.ID),
			startNodeID: startID,
			endNodeID:   endID,
			frc:         spec.FRC,
			fow:         spec.FOW,
			vertices:    spec.Vertices,
			length:      geo.PolylineLength(spec.Vertices),
			reader:      r,
		}
		r.lines[line.id] = line
		r.nodes[startID].outgoing = append(r.nodes[startID].outgoing, line.id)
		r.nodes[endID].incoming = append(r.nodes[endID].incoming, line.id)
		r.index.Insert(bboxMin(spec.Vertices), bboxMax(spec.Vertices), line.id)
	}

	log.Info("in-memory map reader built", zap.Int("nodes", len(r.nodes)))
	return r, nil
}

func (r *Reader) ensureNode(id ID, coord geo.Coordinate) ID {
	if id == "" {
		id = ID(fmt.Sprintf("%.6f,%.6f", coord.Lon, coord.Lat))
	}
	if _, ok := r.nodes[id]; !ok {
		r.nodes[id] = &Node{id: id, coord: coord, reader: r}
	}
	return id
}

func (r *Reader) resolveLines(ids []ID) []mapreader.Line {
	out := make([]mapreader.Line, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.lines[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// FindLinesCloseTo returns every line with any point within
// radiusMeters of coord, by expanding coord into a bounding box of that
// radius and filtering the rtree's candidates by exact perpendicular
// distance.
func (r *Reader) FindLinesCloseTo(coord openlr.Coordinate, radiusMeters float64) ([]mapreader.Line, error) {
	// Diagonal corners at radius*sqrt(2) put each side of the box a full
	// radius away from coord.
	lower := geo.DestinationPoint(coord, 225, radiusMeters*math.Sqrt2)
	upper := geo.DestinationPoint(coord, 45, radiusMeters*math.Sqrt2)

	var out []mapreader.Line
	r.index.Search(
		[2]float64{lower.Lon, lower.Lat},
		[2]float64{upper.Lon, upper.Lat},
		func(_, _ [2]float64, id ID) bool {
			line := r.lines[id]
			proj := geo.ProjectOntoPolyline(line.vertices, coord)
			if proj.PerpendicularDistM <= radiusMeters {
				out = append(out, line)
			}
			return true
		},
	)
	return out, nil
}

func (r *Reader) GetLine(id mapreader.ID) (mapreader.Line, error) {
	concrete, ok := id.(ID)
	if !ok {
		return nil, fmt.Errorf("memory: id %v not recognized by this reader", id)
	}
	line, ok := r.lines[concrete]
	if !ok {
		return nil, fmt.Errorf("memory: no line with id %q", concrete)
	}
	return line, nil
}

func (r *Reader) GetNode(id mapreader.ID) (mapreader.Node, error) {
	concrete, ok := id.(ID)
	if !ok {
		return nil, fmt.Errorf("memory: id %v not recognized by this reader", id)
	}
	node, ok := r.nodes[concrete]
	if !ok {
		return nil, fmt.Errorf("memory: no node with id %q", concrete)
	}
	return node, nil
}

func bboxMin(vertices []geo.Coordinate) [2]float64 {
	min := vertices[0]
	for _, v := range vertices[1:] {
		if v.Lon < min.Lon {
			min.Lon = v.Lon
		}
		if v.Lat < min.Lat {
			min.Lat = v.Lat
		}
	}
	return [2]float64{min.Lon, min.Lat}
}

func bboxMax(vertices []geo.Coordinate) [2]float64 {
	max := vertices[0]
	for _, v := range vertices[1:] {
		if v.Lon > max.Lon {
			max.Lon = v.Lon
		}
		if v.Lat > max.Lat {
			max.Lat = v.Lat
		}
	}
	return [2]float64{max.Lon, max.Lat}
}
