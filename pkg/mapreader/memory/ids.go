// Package memory is a reference MapReader backed by an in-memory
// tidwall/rtree spatial index, suitable for tests and small fixtures.
// Grounded on the teacher's pkg/spatialindex/rtree.go, which builds an
// rtree.RTreeG over graph edges the same way this package builds one
// over lines.
package memory

import "github.com/openlr-go/dereferencer/pkg/mapreader"

// ID is the concrete mapreader.ID used by this package: a plain string,
// ordered lexicographically.
type ID string

func (id ID) Less(other mapreader.ID) bool {
	o, ok := other.(ID)
	if !ok {
		return false
	}
	return id < o
}
