package universe

import (
	"strconv"
	"strings"
)

//cellStore is the key/value storage behind a mapUniverse
type cellStore interface {
	get(c Coordinate) (live bool, ok bool)
	put(c Coordinate, live bool)
	//each visits every entry until cb returns false
	each(cb func(c Coordinate, live bool) bool)
	len() int
}

/*
	mapUniverse is the sparse unbounded engine that keeps dead cells as explicit entries.
	Setting a cell live also inserts every absent neighbour as a dead "shadow" entry,
	so scanning the entries on Progress visits every cell that can be born.
	Entries are never removed, setting a cell dead overwrites it.
*/
type mapUniverse struct {
	cells      cellStore
	newStore   func() cellStore
	bounds     Bounds
	generation int
}

func newMapUniverse(newStore func() cellStore) *mapUniverse {
	return &mapUniverse{cells: newStore(), newStore: newStore}
}

func (u *mapUniverse) Generation() int {
	return u.generation
}

//Bounds returns the rectangle covering every tracked entry, live or dead
func (u *mapUniverse) Bounds() Bounds {
	return u.bounds
}

//Cell never reports OutOfRange, untracked cells are dead
func (u *mapUniverse) Cell(row int, col int) CellState {
	live, _ := u.cells.get(Coordinate{row, col})
	return stateOf(live)
}

func (u *mapUniverse) SetCell(row int, col int, live bool) {
	c := Coordinate{row, col}
	u.put(c, live)
	if !live {
		return
	}
	for _, n := range c.neighbours() {
		if _, ok := u.cells.get(n); !ok {
			u.put(n, false)
		}
	}
}

func (u *mapUniverse) AddCells(s Seed) {
	addCells(s, u.SetCell)
}

func (u *mapUniverse) CountLiveCells() int {
	liveCells := 0
	u.cells.each(func(_ Coordinate, live bool) bool {
		if live {
			liveCells++
		}
		return true
	})
	return liveCells
}

//Progress rebuilds the store from the cells alive in the next generation
//cells that die are not carried over unless a live neighbour shadows them again
func (u *mapUniverse) Progress() int {
	old := u.cells
	u.cells = u.newStore()
	u.bounds = Bounds{}
	liveCells := 0
	old.each(func(c Coordinate, live bool) bool {
		n := 0
		for _, nc := range c.neighbours() {
			if l, _ := old.get(nc); l {
				n++
			}
		}
		if nextState(live, n) {
			u.SetCell(c.Row, c.Col, true)
			liveCells++
		}
		return true
	})
	u.generation++
	return liveCells
}

func (u *mapUniverse) String() string {
	var b strings.Builder
	b.WriteString("Generation: " + strconv.Itoa(u.generation))
	for row := u.bounds.MinRow; row <= u.bounds.MaxRow; row++ {
		b.WriteByte('\n')
		for col := u.bounds.MinCol; col <= u.bounds.MaxCol; col++ {
			live, ok := u.cells.get(Coordinate{row, col})
			switch {
			case !ok:
				b.WriteString(unknownGlyph)
			case live:
				b.WriteString(liveGlyph)
			default:
				b.WriteString(deadGlyph)
			}
		}
	}
	return b.String()
}

//put stores the entry and extends the bounds
func (u *mapUniverse) put(c Coordinate, live bool) {
	u.bounds.extend(c, u.cells.len() == 0)
	u.cells.put(c, live)
}

//HashMapUniverse is the mapUniverse on a Go map, entries iterate in no particular order
type HashMapUniverse struct {
	*mapUniverse
}

//NewHashMapUniverse creates an empty HashMapUniverse
func NewHashMapUniverse() *HashMapUniverse {
	return &HashMapUniverse{newMapUniverse(newHashStore)}
}

//LiveCells isn't offered by the hash map engine, it always returns ErrNotSupported
func (u *HashMapUniverse) LiveCells() ([]Coordinate, error) {
	return nil, ErrNotSupported
}

type hashStore map[Coordinate]bool

func newHashStore() cellStore {
	return hashStore{}
}

func (s hashStore) get(c Coordinate) (bool, bool) {
	live, ok := s[c]
	return live, ok
}

func (s hashStore) put(c Coordinate, live bool) {
	s[c] = live
}

func (s hashStore) each(cb func(c Coordinate, live bool) bool) {
	for c, live := range s {
		if !cb(c, live) {
			return
		}
	}
}

func (s hashStore) len() int {
	return len(s)
}
