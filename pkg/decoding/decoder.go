package decoding

import (
	"math"

	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// DecodeLine decodes an OpenLR line location reference against reader,
// per spec.md §4.6-4.7. obs may be nil.
func DecodeLine(
	ref openlr.LineLocationReference,
	reader mapreader.MapReader,
	cfg Config,
	obs Observer,
) (LineLocation, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	routes, err := decodeSequence(ref.Points, reader, cfg, obs)
	if err != nil {
		obs.OnDecodeFinished(err)
		return LineLocation{}, err
	}

	loc, err := assembleLineLocation(routes, ref)
	obs.OnDecodeFinished(err)
	return loc, err
}

// DecodePointAlongLine decodes the underlying line location (ignoring
// its own offsets) and projects ref.POffsFraction onto the resulting
// path, per spec.md §4.7.
func DecodePointAlongLine(
	ref openlr.PointAlongLineReference,
	reader mapreader.MapReader,
	cfg Config,
	obs Observer,
) (PointAlongLine, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	routes, err := decodeSequence(ref.Line.Points, reader, cfg, obs)
	if err != nil {
		obs.OnDecodeFinished(err)
		return PointAlongLine{}, err
	}

	result := pointAtFraction(decodedPath(routes), ref.POffsFraction)
	obs.OnDecodeFinished(nil)
	return result, nil
}

// DecodePoiWithAccessPoint is DecodePointAlongLine plus the POI's own
// coordinates, passed through unchanged.
func DecodePoiWithAccessPoint(
	ref openlr.PoiWithAccessPointReference,
	reader mapreader.MapReader,
	cfg Config,
	obs Observer,
) (PoiWithAccessPoint, error) {
	point, err := DecodePointAlongLine(
		openlr.PointAlongLineReference{Line: ref.Line, POffsFraction: ref.POffsFraction},
		reader, cfg, obs,
	)
	if err != nil {
		return PoiWithAccessPoint{}, err
	}
	return PoiWithAccessPoint{PointAlongLine: point, POICoordinate: ref.POICoord}, nil
}

// decodeSequence is the sequence decoder / backtracker of spec.md §4.6:
// an explicit iterative state machine over pair index i and per-LRP
// candidate cursors, replacing the reference implementation's recursive
// match_tail/handleCandidatePair (candidate_functions.py), per spec.md
// §9's redesign note against unbounded recursion on long sequences.
func decodeSequence(
	lrps []openlr.LocationReferencePoint,
	reader mapreader.MapReader,
	cfg Config,
	obs Observer,
) ([]Route, error) {
	if len(lrps) < 2 {
		return nil, ErrInvalidReference
	}
	n := len(lrps)

	candidates := make([][]Candidate, n)
	for k, lrp := range lrps {
		cs, err := generateCandidates(reader, cfg, lrp, k == n-1)
		if err != nil {
			return nil, err
		}
		obs.OnCandidatesFound(k, lrp, cs)
		if len(cs) == 0 {
			return nil, &NoCandidatesError{LRPIndex: k}
		}
		candidates[k] = cs
	}

	router := NewRouter(reader)
	routes := make([]Route, n-1)
	cursor := make([]int, n)

	i := 0
	for i < n-1 {
		a := candidates[i][cursor[i]]
		b := candidates[i+1][cursor[i+1]]

		maxFRC := cfg.lfrcCeiling(lrps[i].LFRCNP)
		route, found := router.FindRoute(a, b, maxFRC)

		accepted := false
		if !found {
			obs.OnRouteRejected(i, &RouteNotFoundError{PairIndex: i})
		} else {
			obs.OnRouteFound(i, route)
			length := route.LengthMeters()
			if math.Abs(length-lrps[i].DNP) <= cfg.dnpTolerance(lrps[i].DNP) {
				accepted = true
			} else {
				obs.OnRouteRejected(i, &LengthMismatchError{
					PairIndex:      i,
					ExpectedMeters: lrps[i].DNP,
					ActualMeters:   length,
				})
			}
		}

		if accepted {
			routes[i] = route
			obs.OnCandidateChosen(i, a, b)
			i++
			continue
		}

		for {
			cursor[i+1]++
			if cursor[i+1] < len(candidates[i+1]) {
				break
			}
			cursor[i+1] = 0
			obs.OnBacktrack(i)
			i--
			if i < 0 {
				return nil, ErrNoMatch
			}
		}
	}

	return routes, nil
}
