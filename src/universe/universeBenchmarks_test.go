package universe

import (
	"testing"
)

var (
	testTemplate = Coordinates{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}
	//r-pentomino keeps growing for over a thousand generations
	rPentomino = Coordinates{{100, 101}, {100, 102}, {101, 100}, {101, 101}, {102, 101}}
)

const (
	width  = 200
	height = 200
)

func newBenchUniverse(b *testing.B, engine string, seed Seed) Universe {
	u, err := New(engine, height, width)
	if err != nil {
		b.Fatal(err)
	}
	u.AddCells(seed)
	return u
}

func Benchmark_Step(b *testing.B) {
	for _, e := range Engines() {
		b.Run(e, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				u := newBenchUniverse(b, e, testTemplate)
				b.StartTimer()
				u.Progress()
			}
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range Engines() {
		b.Run(e, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				u := newBenchUniverse(b, e, rPentomino)
				b.StartTimer()
				for g := 0; g < 200; g++ {
					u.Progress()
				}
			}
		})
	}
}
