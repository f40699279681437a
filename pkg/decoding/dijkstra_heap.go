package decoding

import "github.com/openlr-go/dereferencer/pkg/mapreader"

// datastructurePQNode is the heap node type the router tracks per visited
// map node, so it can decrease-key when a shorter path is found.
type datastructurePQNode = PriorityQueueNode[mapreader.ID]

// dijkstraHeap is a thin, router-specific wrapper over the generic
// MinHeap (heap.go), keyed by mapreader.ID.
type dijkstraHeap struct {
	h *MinHeap[mapreader.ID]
}

func newDijkstraHeap() *dijkstraHeap {
	return &dijkstraHeap{h: NewBinaryHeap[mapreader.ID]()}
}

func (d *dijkstraHeap) isEmpty() bool {
	return d.h.IsEmpty()
}

func (d *dijkstraHeap) push(id mapreader.ID, rank float64) *datastructurePQNode {
	node := NewPriorityQueueNode(rank, id)
	d.h.Insert(node)
	return node
}

func (d *dijkstraHeap) decreaseKey(node *datastructurePQNode, rank float64) {
	_ = d.h.DecreaseKey(node, rank)
}

// popMin extracts the minimum-rank node and returns it wrapped with its
// node ID exposed as the field router.go reads.
func (d *dijkstraHeap) popMin() dijkstraItem {
	node, _ := d.h.ExtractMin()
	if node == nil {
		return dijkstraItem{}
	}
	return dijkstraItem{id: node.GetItem()}
}

type dijkstraItem struct {
	id mapreader.ID
}
