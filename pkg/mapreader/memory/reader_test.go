package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

func straightLineSpecs() []LineSpec {
	a := geo.NewCoordinate(13.0, 52.0)
	b := geo.NewCoordinate(13.01, 52.005)
	c := geo.NewCoordinate(13.02, 52.0)
	return []LineSpec{
		{ID: "AB", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{a, b}},
		{ID: "BC", FRC: openlr.FRC4, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{b, c}},
	}
}

func TestBuildSharesNodesByCoordinate(t *testing.T) {
	reader, err := Build(straightLineSpecs(), nil)
	require.NoError(t, err)
	assert.Len(t, reader.nodes, 3, "A, B, C should be deduplicated into 3 nodes")

	ab, err := reader.GetLine(ID("AB"))
	require.NoError(t, err)
	bc, err := reader.GetLine(ID("BC"))
	require.NoError(t, err)
	assert.Equal(t, ab.EndNode().ID(), bc.StartNode().ID(), "AB.EndNode and BC.StartNode should be the same shared node")
}

func TestBuildRejectsDegenerateLine(t *testing.T) {
	_, err := Build([]LineSpec{
		{ID: "bad", Vertices: []geo.Coordinate{geo.NewCoordinate(13.0, 52.0)}},
	}, nil)
	assert.Error(t, err, "a line with fewer than two vertices should be rejected")
}

func TestFindLinesCloseToRadius(t *testing.T) {
	reader, err := Build(straightLineSpecs(), nil)
	require.NoError(t, err)

	a := geo.NewCoordinate(13.0, 52.0)
	lines, err := reader.FindLinesCloseTo(a, 10)
	require.NoError(t, err)
	require.Len(t, lines, 1, "expected only AB within 10m of A")
	assert.Equal(t, mapreader.ID(ID("AB")), lines[0].ID())

	far := geo.NewCoordinate(13.0, 52.5)
	none, err := reader.FindLinesCloseTo(far, 10)
	require.NoError(t, err)
	assert.Empty(t, none, "expected no lines near a far-away point")
}

func TestNodeOutgoingIncomingLines(t *testing.T) {
	reader, err := Build(straightLineSpecs(), nil)
	require.NoError(t, err)

	ab, err := reader.GetLine(ID("AB"))
	require.NoError(t, err)
	b := ab.EndNode()

	out := b.OutgoingLines()
	require.Len(t, out, 1, "B should have exactly one outgoing line, BC")
	assert.Equal(t, mapreader.ID(ID("BC")), out[0].ID())

	in := b.IncomingLines()
	require.Len(t, in, 1, "B should have exactly one incoming line, AB")
	assert.Equal(t, mapreader.ID(ID("AB")), in[0].ID())
}

func TestLineLengthMatchesGeodesicDistance(t *testing.T) {
	a := geo.NewCoordinate(13.41, 52.523)
	b := geo.NewCoordinate(13.416, 52.525)
	reader, err := Build([]LineSpec{
		{ID: "AB", FRC: openlr.FRC3, FOW: openlr.FOWSingleCarriageway, Vertices: []geo.Coordinate{a, b}},
	}, nil)
	require.NoError(t, err)

	line, err := reader.GetLine(ID("AB"))
	require.NoError(t, err)
	assert.InDelta(t, geo.Distance(a, b), line.Length(), 1e-9)
}

func TestGetLineAndNodeUnknownID(t *testing.T) {
	reader, err := Build(straightLineSpecs(), nil)
	require.NoError(t, err)

	_, err = reader.GetLine(ID("nope"))
	assert.Error(t, err, "expected an error for an unknown line ID")

	_, err = reader.GetNode(ID("nope"))
	assert.Error(t, err, "expected an error for an unknown node ID")
}
