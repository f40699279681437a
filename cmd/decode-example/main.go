// Command decode-example wires an in-memory map reader to the decoder
// core against a single hand-built line, so the library's entry point
// can be exercised end to end. It is a demonstration, not a product
// binary: OpenLR wire-format parsing and any real map ingestion are out
// of scope (see SPEC_FULL.md).
package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openlr-go/dereferencer/pkg/decoding"
	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader/memory"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	reader, err := memory.Build([]memory.LineSpec{
		{
			ID:  "berlin-1",
			FRC: openlr.FRC3,
			FOW: openlr.FOWSingleCarriageway,
			Vertices: geo.NewCoordinates(
				[]float64{13.41, 13.412, 13.414, 13.416},
				[]float64{52.523, 52.5237, 52.5244, 52.525},
			),
		},
	}, log)
	if err != nil {
		log.Fatal("building map reader", zap.Error(err))
	}

	ref := openlr.LineLocationReference{
		Points: []openlr.LocationReferencePoint{
			{
				Coord:  geo.NewCoordinate(13.41, 52.523),
				FRC:    openlr.FRC3,
				FOW:    openlr.FOWSingleCarriageway,
				Bear:   45,
				LFRCNP: openlr.FRC3,
				DNP:    464,
				HasDNP: true,
			},
			{
				Coord: geo.NewCoordinate(13.416, 52.525),
				FRC:   openlr.FRC3,
				FOW:   openlr.FOWSingleCarriageway,
				Bear:  225,
			},
		},
	}

	loc, err := decoding.DecodeLine(ref, reader, decoding.DefaultConfig(), nil)
	if err != nil {
		log.Fatal("decode failed", zap.Error(err))
	}

	fmt.Printf("decoded %d line(s), length %.1fm\n", len(loc.Lines), loc.LengthMeters())
	fmt.Printf("polyline: %s\n", loc.EncodePolyline())
}
