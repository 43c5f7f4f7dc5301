package universe

import (
	"strconv"
	"strings"
)

/*
	SetUniverse is the sparse unbounded engine that stores live cells only.
	Progress visits the live cells and their dead neighbours, each dead neighbour is evaluated once.
	The bounds cover every cell that has ever been live and never shrink.
*/
type SetUniverse struct {
	cells      map[Coordinate]struct{}
	bounds     Bounds
	tracked    bool
	generation int
}

//NewSetUniverse creates an empty SetUniverse
func NewSetUniverse() *SetUniverse {
	return &SetUniverse{cells: map[Coordinate]struct{}{}}
}

func (u *SetUniverse) Generation() int {
	return u.generation
}

//Bounds returns the rectangle covering every cell that has been live
func (u *SetUniverse) Bounds() Bounds {
	return u.bounds
}

//Cell never reports OutOfRange, cells outside the set are dead
func (u *SetUniverse) Cell(row int, col int) CellState {
	_, live := u.cells[Coordinate{row, col}]
	return stateOf(live)
}

func (u *SetUniverse) SetCell(row int, col int, live bool) {
	c := Coordinate{row, col}
	if !live {
		delete(u.cells, c)
		return
	}
	u.add(c)
}

func (u *SetUniverse) AddCells(s Seed) {
	addCells(s, u.SetCell)
}

func (u *SetUniverse) CountLiveCells() int {
	return len(u.cells)
}

//LiveCells lists the live cells in row-major order
func (u *SetUniverse) LiveCells() ([]Coordinate, error) {
	cs := make([]Coordinate, 0, len(u.cells))
	for c := range u.cells {
		cs = append(cs, c)
	}
	SortCoordinates(cs)
	return cs, nil
}

//Progress calculates the next generation against a snapshot of the current one
func (u *SetUniverse) Progress() int {
	old := u.cells
	u.cells = make(map[Coordinate]struct{}, len(old))
	checked := make(map[Coordinate]struct{}, len(old)*2)
	for c := range old {
		n := 0
		for _, nc := range c.neighbours() {
			if _, live := old[nc]; live {
				n++
				continue
			}
			if _, done := checked[nc]; done {
				continue
			}
			checked[nc] = struct{}{}
			if liveNeighbours(old, nc) == 3 {
				u.add(nc)
			}
		}
		if nextState(true, n) {
			u.add(c)
		}
	}
	u.generation++
	return len(u.cells)
}

func (u *SetUniverse) String() string {
	var b strings.Builder
	b.WriteString("Generation: " + strconv.Itoa(u.generation))
	if !u.tracked {
		return b.String()
	}
	for row := u.bounds.MinRow; row <= u.bounds.MaxRow; row++ {
		b.WriteByte('\n')
		for col := u.bounds.MinCol; col <= u.bounds.MaxCol; col++ {
			if _, live := u.cells[Coordinate{row, col}]; live {
				b.WriteString(liveGlyph)
			} else {
				b.WriteString(unknownGlyph)
			}
		}
	}
	return b.String()
}

func (u *SetUniverse) add(c Coordinate) {
	u.cells[c] = struct{}{}
	u.bounds.extend(c, !u.tracked)
	u.tracked = true
}

//liveNeighbours counts the neighbours of c present in the set
func liveNeighbours(cells map[Coordinate]struct{}, c Coordinate) int {
	n := 0
	for _, nc := range c.neighbours() {
		if _, live := cells[nc]; live {
			n++
		}
	}
	return n
}
