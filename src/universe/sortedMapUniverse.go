package universe

import "github.com/google/btree"

//btreeDegree is the degree of the b-tree behind SortedMapUniverse
const btreeDegree = 32

//SortedMapUniverse is the mapUniverse on a b-tree, entries iterate row-major
type SortedMapUniverse struct {
	*mapUniverse
}

//NewSortedMapUniverse creates an empty SortedMapUniverse
func NewSortedMapUniverse() *SortedMapUniverse {
	return &SortedMapUniverse{newMapUniverse(newTreeStore)}
}

//LiveCells lists the live cells in row-major order
func (u *SortedMapUniverse) LiveCells() ([]Coordinate, error) {
	cs := make([]Coordinate, 0)
	u.cells.each(func(c Coordinate, live bool) bool {
		if live {
			cs = append(cs, c)
		}
		return true
	})
	return cs, nil
}

type treeEntry struct {
	Coordinate
	live bool
}

func lessEntry(a, b treeEntry) bool {
	return a.Coordinate.Less(b.Coordinate)
}

type treeStore struct {
	t *btree.BTreeG[treeEntry]
}

func newTreeStore() cellStore {
	return treeStore{btree.NewG[treeEntry](btreeDegree, lessEntry)}
}

func (s treeStore) get(c Coordinate) (bool, bool) {
	e, ok := s.t.Get(treeEntry{Coordinate: c})
	return e.live, ok
}

func (s treeStore) put(c Coordinate, live bool) {
	s.t.ReplaceOrInsert(treeEntry{c, live})
}

func (s treeStore) each(cb func(c Coordinate, live bool) bool) {
	s.t.Ascend(func(e treeEntry) bool {
		return cb(e.Coordinate, e.live)
	})
}

func (s treeStore) len() int {
	return s.t.Len()
}
