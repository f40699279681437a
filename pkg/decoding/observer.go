package decoding

import "github.com/openlr-go/dereferencer/pkg/openlr"

// Observer receives non-blocking, purely observational notifications
// during a decode call. Implementations must not mutate decoder state;
// the six events below cover spec.md §6's observer contract.
type Observer interface {
	// OnCandidatesFound is called once per LRP, after candidate
	// generation and filtering, with the LRP's index in the reference
	// and its ranked candidates.
	OnCandidatesFound(lrpIndex int, lrp openlr.LocationReferencePoint, candidates []Candidate)
	// OnCandidateChosen is called when a candidate pair for a given
	// LRP pair index is accepted into the decoded path.
	OnCandidateChosen(pairIndex int, from, to Candidate)
	// OnRouteFound is called whenever the router returns a route for a
	// candidate pair, before the DNP length check.
	OnRouteFound(pairIndex int, route Route)
	// OnRouteRejected is called when a candidate pair's route either
	// could not be found, or failed the DNP length check.
	OnRouteRejected(pairIndex int, reason error)
	// OnBacktrack is called whenever the decoder abandons the current
	// candidate choice for fromPairIndex and rewinds.
	OnBacktrack(fromPairIndex int)
	// OnDecodeFinished is called once, at the end of a decode call,
	// with the final error (nil on success).
	OnDecodeFinished(err error)
}

// NopObserver implements Observer with no-op methods; embed it to avoid
// implementing every method when only a few events are of interest.
type NopObserver struct{}

func (NopObserver) OnCandidatesFound(int, openlr.LocationReferencePoint, []Candidate) {}
func (NopObserver) OnCandidateChosen(int, Candidate, Candidate)                       {}
func (NopObserver) OnRouteFound(int, Route)                                           {}
func (NopObserver) OnRouteRejected(int, error)                                        {}
func (NopObserver) OnBacktrack(int)                                                   {}
func (NopObserver) OnDecodeFinished(error)                                            {}
