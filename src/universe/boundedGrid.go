package universe

import (
	"fmt"
	"strconv"
	"strings"
)

//gridArea is the fixed size field of a BoundedGrid
type gridArea struct {
	Rows     int
	Cols     int
	Entities [][]bool
}

//BoundedGrid is a fixed size toroidal universe: the top edge touches the bottom one, the left edge touches the right one
//Cell doesn't wrap, addresses outside the area are OutOfRange
//SetCell panics for addresses outside the area, AddCells wraps them onto the area instead
type BoundedGrid struct {
	area       gridArea
	generation int
}

//NewBoundedGrid creates an empty rows x cols grid
func NewBoundedGrid(rows int, cols int) *BoundedGrid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("universe: bounded grid needs positive dimensions, got %dx%d", rows, cols))
	}
	return &BoundedGrid{area: createArea(rows, cols)}
}

//Generation returns the number of Progress calls
func (g *BoundedGrid) Generation() int {
	return g.generation
}

//Cell returns the state of the cell or OutOfRange when row, col is outside the area
func (g *BoundedGrid) Cell(row int, col int) CellState {
	if !g.inside(row, col) {
		return OutOfRange
	}
	return stateOf(g.area.Entities[row][col])
}

//SetCell sets the cell state, row and col must be inside the area
func (g *BoundedGrid) SetCell(row int, col int, live bool) {
	if !g.inside(row, col) {
		panic(fmt.Sprintf("universe: cell %d,%d is outside the %dx%d grid", row, col, g.area.Rows, g.area.Cols))
	}
	g.area.Entities[row][col] = live
}

//AddCells settles the seed, coordinates outside the area are wrapped around
func (g *BoundedGrid) AddCells(s Seed) {
	addCells(s, func(row int, col int, live bool) {
		g.area.Entities[wrap(row, g.area.Rows)][wrap(col, g.area.Cols)] = live
	})
}

//CountLiveCells scans the whole area
func (g *BoundedGrid) CountLiveCells() int {
	liveCells := 0
	g.walkArea(func(row int, col int, live bool) {
		if live {
			liveCells++
		}
	})
	return liveCells
}

//LiveCells lists the live cells in row-major order
func (g *BoundedGrid) LiveCells() ([]Coordinate, error) {
	cs := make([]Coordinate, 0)
	g.walkArea(func(row int, col int, live bool) {
		if live {
			cs = append(cs, Coordinate{row, col})
		}
	})
	return cs, nil
}

//Progress calculates the next generation into a new area and swaps it in
//returns the number of live cells in the new generation
func (g *BoundedGrid) Progress() int {
	a := createArea(g.area.Rows, g.area.Cols)
	liveCells := 0
	g.walkArea(func(row int, col int, live bool) {
		if nextState(live, g.liveNeighbours(row, col)) {
			a.Entities[row][col] = true
			liveCells++
		}
	})
	g.area = a
	g.generation++
	return liveCells
}

func (g *BoundedGrid) String() string {
	var b strings.Builder
	b.WriteString("Generation: " + strconv.Itoa(g.generation))
	for _, l := range g.area.Entities {
		b.WriteByte('\n')
		for _, live := range l {
			if live {
				b.WriteString(liveGlyph)
			} else {
				b.WriteString(deadGlyph)
			}
		}
	}
	return b.String()
}

func (g *BoundedGrid) inside(row int, col int) bool {
	return row >= 0 && col >= 0 && row < g.area.Rows && col < g.area.Cols
}

//walkArea walk the entire area and calls the cb function for each cell
func (g *BoundedGrid) walkArea(cb func(row int, col int, live bool)) {
	for row := range g.area.Entities {
		for col := range g.area.Entities[row] {
			cb(row, col, g.area.Entities[row][col])
		}
	}
}

//liveNeighbours counts the live cells among the 8 neighbours, wrapping at the edges
func (g *BoundedGrid) liveNeighbours(row int, col int) int {
	e := g.area.Entities
	top := row - 1
	if row == 0 {
		top = g.area.Rows - 1
	}
	bottom := row + 1
	if bottom == g.area.Rows {
		bottom = 0
	}
	left := col - 1
	if col == 0 {
		left = g.area.Cols - 1
	}
	right := col + 1
	if right == g.area.Cols {
		right = 0
	}

	n := 0
	for _, live := range [8]bool{
		e[top][left], e[top][col], e[top][right],
		e[row][right],
		e[bottom][right], e[bottom][col], e[bottom][left],
		e[row][left],
	} {
		if live {
			n++
		}
	}
	return n
}

//wrap maps v onto 0..size-1
func wrap(v int, size int) int {
	return (v%size + size) % size
}

//createArea allocate the new area backed by a single slice
func createArea(rows int, cols int) gridArea {
	area := gridArea{Rows: rows, Cols: cols, Entities: make([][]bool, rows)}
	b := make([]bool, rows*cols)
	for i := range area.Entities {
		start := cols * i
		area.Entities[i] = b[start : start+cols : start+cols]
	}
	return area
}
