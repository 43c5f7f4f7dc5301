package universe

import (
	"fmt"
	"sort"
)

//Factory creates an empty universe, rows and cols are used by bounded engines only
type Factory func(rows int, cols int) Universe

//engine names
const (
	EngineGrid      = "grid"
	EngineHashMap   = "hashmap"
	EngineSortedMap = "sortedmap"
	EngineSet       = "set"
)

var engines = map[string]Factory{
	EngineGrid: func(rows int, cols int) Universe {
		return NewBoundedGrid(rows, cols)
	},
	EngineHashMap: func(int, int) Universe {
		return NewHashMapUniverse()
	},
	EngineSortedMap: func(int, int) Universe {
		return NewSortedMapUniverse()
	},
	EngineSet: func(int, int) Universe {
		return NewSetUniverse()
	},
}

//Engines returns the sorted names of the registered engines
func Engines() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//IsBounded reports whether the engine has a fixed size
func IsBounded(engine string) bool {
	return engine == EngineGrid
}

//New creates an empty universe using the named engine
func New(engine string, rows int, cols int) (Universe, error) {
	f, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, engine)
	}
	if IsBounded(engine) && (rows <= 0 || cols <= 0) {
		return nil, fmt.Errorf("engine %q needs positive dimensions, got %dx%d", engine, rows, cols)
	}
	return f(rows, cols), nil
}
