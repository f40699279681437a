package decoding

import (
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// Router finds shortest routes between candidate pairs through a
// MapReader's road graph, constrained by an FRC ceiling. Grounded on the
// teacher's single-source Dijkstra (pkg/engine/routing/dijkstra.go) and
// its d-ary heap (pkg/datastructure/d_ary_heap.go, adapted here as
// heap.go), but simplified to a plain node-to-node search: the teacher's
// version operates over a turn-aware multilevel CRP overlay graph, which
// this decoder's line graph does not have.
type Router struct {
	reader mapreader.MapReader
}

func NewRouter(reader mapreader.MapReader) *Router {
	return &Router{reader: reader}
}

// FindRoute returns the shortest Route between start and end, where only
// lines with FRC <= maxFRC may be used as interior edges (the candidates'
// own lines are always allowed). Returns (Route{}, false) if unreachable.
//
// Special case: if start and end share a line and end's offset is not
// before start's offset, the route is that single line (spec.md §4.5);
// if end's offset is before start's, there is no route.
func (r *Router) FindRoute(start, end Candidate, maxFRC openlr.FRC) (Route, bool) {
	if start.Line().ID() == end.Line().ID() {
		if end.OffsetMeters() >= start.OffsetMeters() {
			return Route{Start: start, Middle: nil, End: end}, true
		}
		return Route{}, false
	}

	source := start.Line().EndNode()
	sink := end.Line().StartNode()

	if source.ID() == sink.ID() {
		return Route{Start: start, Middle: nil, End: end}, true
	}

	dist := map[mapreader.ID]float64{source.ID(): 0}
	prevLine := map[mapreader.ID]mapreader.Line{}
	heapNodes := map[mapreader.ID]*datastructurePQNode{}
	visited := map[mapreader.ID]bool{}

	pq := newDijkstraHeap()
	startNode := pq.push(source.ID(), 0)
	heapNodes[source.ID()] = startNode

	for !pq.isEmpty() {
		cur := pq.popMin()
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true

		if cur.id == sink.ID() {
			break
		}

		node, err := r.reader.GetNode(cur.id)
		if err != nil {
			continue
		}

		out := append([]mapreader.Line(nil), node.OutgoingLines()...)
		sortLinesByID(out)

		for _, line := range out {
			// Interior edges are capped by maxFRC; the candidates' own
			// lines never appear as interior edges of this search since
			// the search starts at start.Line().EndNode().
			if line.FRC() > maxFRC {
				continue
			}
			newDist := dist[cur.id] + line.Length()
			headID := line.EndNode().ID()
			existing, seen := dist[headID]
			if seen && newDist >= existing {
				continue
			}
			dist[headID] = newDist
			prevLine[headID] = line
			if hn, ok := heapNodes[headID]; ok {
				pq.decreaseKey(hn, newDist)
			} else {
				heapNodes[headID] = pq.push(headID, newDist)
			}
		}
	}

	if _, ok := dist[sink.ID()]; !ok {
		return Route{}, false
	}

	var middle []mapreader.Line
	for cursor := sink.ID(); cursor != source.ID(); {
		line, ok := prevLine[cursor]
		if !ok {
			return Route{}, false
		}
		middle = append([]mapreader.Line{line}, middle...)
		cursor = line.StartNode().ID()
	}

	return Route{Start: start, Middle: middle, End: end}, true
}

// sortLinesByID gives outgoing-edge relaxation a deterministic visiting
// order, so that equal-length ties resolve by line ID (spec.md §5).
func sortLinesByID(lines []mapreader.Line) {
	for i := 1; i < len(lines); i++ {
		j := i
		for j > 0 && lines[j].ID().Less(lines[j-1].ID()) {
			lines[j], lines[j-1] = lines[j-1], lines[j]
			j--
		}
	}
}
