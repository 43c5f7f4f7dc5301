package universe

import "sort"

//Coordinate is a (row, col) position, usable as a map key
type Coordinate struct {
	Row int
	Col int
}

//Less orders coordinates row-major
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

//neighbours returns the 8 surrounding coordinates, clockwise from the top left
func (c Coordinate) neighbours() [8]Coordinate {
	top, bottom := c.Row-1, c.Row+1
	left, right := c.Col-1, c.Col+1
	return [8]Coordinate{
		{top, left}, {top, c.Col}, {top, right},
		{c.Row, right},
		{bottom, right}, {bottom, c.Col}, {bottom, left},
		{c.Row, left},
	}
}

//SortCoordinates sorts the slice in row-major order in place
func SortCoordinates(cs []Coordinate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}

//Seed is a bulk source of live cells for AddCells
type Seed interface {
	Coordinates() []Coordinate
}

//Coordinates is a list of live cells
type Coordinates []Coordinate

func (cs Coordinates) Coordinates() []Coordinate {
	return cs
}

//Grid is a dense row-major matrix of cells, true is live
type Grid [][]bool

//Coordinates lists the live cells of the grid in row-major order
func (g Grid) Coordinates() []Coordinate {
	var cs []Coordinate
	for row := range g {
		for col, live := range g[row] {
			if live {
				cs = append(cs, Coordinate{row, col})
			}
		}
	}
	return cs
}

//addCells sets every seed coordinate live using the setter
func addCells(s Seed, set func(row int, col int, live bool)) {
	if s == nil {
		return
	}
	for _, c := range s.Coordinates() {
		set(c.Row, c.Col, true)
	}
}
