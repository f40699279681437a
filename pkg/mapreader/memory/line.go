package memory

import (
	"github.com/openlr-go/dereferencer/pkg/geo"
	"github.com/openlr-go/dereferencer/pkg/mapreader"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// Line is the concrete mapreader.Line of this package.
type Line struct {
	id          ID
	startNodeID ID
	endNodeID   ID
	frc         openlr.FRC
	fow         openlr.FOW
	vertices    []geo.Coordinate
	length      float64
	reader      *Reader
}

func (l *Line) ID() mapreader.ID                 { return l.id }
func (l *Line) StartNode() mapreader.Node        { n, _ := l.reader.GetNode(l.startNodeID); return n }
func (l *Line) EndNode() mapreader.Node          { n, _ := l.reader.GetNode(l.endNodeID); return n }
func (l *Line) FRC() openlr.FRC                  { return l.frc }
func (l *Line) FOW() openlr.FOW                  { return l.fow }
func (l *Line) Coordinates() []openlr.Coordinate { return l.vertices }
func (l *Line) Length() float64                  { return l.length }

// Node is the concrete mapreader.Node of this package.
type Node struct {
	id       ID
	coord    geo.Coordinate
	outgoing []ID
	incoming []ID
	reader   *Reader
}

func (n *Node) ID() mapreader.ID               { return n.id }
func (n *Node) Coordinates() openlr.Coordinate { return n.coord }

func (n *Node) OutgoingLines() []mapreader.Line {
	return n.reader.resolveLines(n.outgoing)
}

func (n *Node) IncomingLines() []mapreader.Line {
	return n.reader.resolveLines(n.incoming)
}
