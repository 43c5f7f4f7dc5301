package universe

import (
	"errors"
	"fmt"
)

//Universe is the capability set shared by every engine
//all the engines are synchronous: Progress computes the whole next generation from the current one
//before anything can observe it
type Universe interface {
	Generation() int
	Progress() int
	Cell(row int, col int) CellState
	SetCell(row int, col int, live bool)
	CountLiveCells() int
	LiveCells() ([]Coordinate, error)
	AddCells(s Seed)
	String() string
}

var (
	//ErrNotSupported is returned when an engine can't provide the requested capability
	ErrNotSupported = errors.New("not supported by this engine")
	//ErrUnknownEngine is returned by New for unregistered engine names
	ErrUnknownEngine = errors.New("unknown engine")
)

//CellState is the result of a cell lookup
type CellState int

const (
	Dead CellState = iota
	Live
	OutOfRange
)

func (s CellState) String() string {
	switch s {
	case Dead:
		return "dead"
	case Live:
		return "live"
	case OutOfRange:
		return "out of range"
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

//stateOf converts the liveness to the CellState
func stateOf(live bool) CellState {
	if live {
		return Live
	}
	return Dead
}

//glyphs used by the String implementations
const (
	liveGlyph    = "■ "
	deadGlyph    = "□ "
	unknownGlyph = "  "
)

//Bounds is the rectangle covering every cell a sparse universe has touched
type Bounds struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
}

//extend grows the bounds to cover the coordinate
//the first call on empty bounds initialises them to the coordinate itself
func (b *Bounds) extend(c Coordinate, first bool) {
	if first {
		*b = Bounds{c.Row, c.Row, c.Col, c.Col}
		return
	}
	if c.Row < b.MinRow {
		b.MinRow = c.Row
	}
	if c.Row > b.MaxRow {
		b.MaxRow = c.Row
	}
	if c.Col < b.MinCol {
		b.MinCol = c.Col
	}
	if c.Col > b.MaxCol {
		b.MaxCol = c.Col
	}
}

//nextState applies birth on 3, survival on 2
func nextState(live bool, liveNeighbours int) bool {
	return liveNeighbours == 3 || (live && liveNeighbours == 2)
}
