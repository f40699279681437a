package decoding

import (
	"errors"
	"fmt"

	"github.com/openlr-go/dereferencer/pkg/util"
)

// Sentinel error kinds, per spec.md §7. Use errors.Is against these to
// classify a returned error; an error classified as ErrMapReader
// additionally wraps the reader's underlying cause, reachable with
// errors.Is/errors.Unwrap.
var (
	ErrNoCandidates     = errors.New("openlr: no candidates found for an LRP")
	ErrNoMatch          = errors.New("openlr: backtracking exhausted, no candidate combination satisfied the DNP")
	ErrInvalidOffsets   = errors.New("openlr: offsets sum to at least the decoded path length")
	ErrInvalidReference = errors.New("openlr: malformed reference")
	ErrMapReader        = errors.New("openlr: map reader error")
)

// NoCandidatesError reports that candidate generation yielded nothing for
// the LRP at LRPIndex, after filtering.
type NoCandidatesError struct {
	LRPIndex int
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("openlr: no candidates for LRP %d", e.LRPIndex)
}

func (e *NoCandidatesError) Unwrap() error { return ErrNoCandidates }

// LengthMismatchError is a diagnostic describing why a route between a
// pair of candidates was rejected for length; it is surfaced through the
// Observer, not returned from the public entry points.
type LengthMismatchError struct {
	PairIndex      int
	ExpectedMeters float64
	ActualMeters   float64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("openlr: pair %d length mismatch: expected %.1fm, got %.1fm",
		e.PairIndex, e.ExpectedMeters, e.ActualMeters)
}

// RouteNotFoundError is a diagnostic describing a pair for which no
// route could be found at all; it is surfaced through the Observer.
type RouteNotFoundError struct {
	PairIndex int
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("openlr: no route found for pair %d", e.PairIndex)
}

// mapReaderErr wraps a reader-originated error for propagation without
// retry, using the teacher's WrapErrorf idiom (pkg/util.WrapErrorf).
func mapReaderErr(cause error, format string, args ...interface{}) error {
	return util.WrapErrorf(cause, ErrMapReader, format, args...)
}
