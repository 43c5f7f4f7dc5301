package pattern

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gameoflife/src/universe"
)

var gliderCells = []universe.Coordinate{{Row: 0, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}

func TestDecodeRLEGlider(t *testing.T) {
	p, err := Load("testdata/glider.rle")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Cells, gliderCells) {
		t.Fatalf("cells %v, expected %v", p.Cells, gliderCells)
	}
	comments := []Comment{
		{"N", "Glider"},
		{"O", "Richard K. Guy"},
		{"C", "The smallest, most common, and first discovered spaceship. Diagonal, has period 4 and speed c/4."},
		{"C", "www.conwaylife.com/wiki/index.php?title=Glider"},
	}
	if !reflect.DeepEqual(p.Comments, comments) {
		t.Fatalf("comments %q", p.Comments)
	}
	if p.Width != 3 || p.Height != 3 || p.Rule != "B3/S23" || p.Format != RLE {
		t.Fatalf("header: %dx%d rule %q format %s", p.Width, p.Height, p.Rule, p.Format)
	}
}

func TestDecodeRLEInline(t *testing.T) {
	p, err := DecodeRLE(strings.NewReader("x = 3, y = 3, rule = B3/S23\nbob$2bo$3o!"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Cells, gliderCells) {
		t.Fatalf("cells %v", p.Cells)
	}
	if len(p.Comments) != 0 {
		t.Fatalf("comments %v", p.Comments)
	}
}

func TestDecodeRLEComments(t *testing.T) {
	src := "#N next row has trailing space\n#O \n#C\n#\n#r B3/S23\nx = 1, y = 1\no!"
	p, err := DecodeRLE(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	expects := []Comment{
		{"N", "next row has trailing space"},
		{"O", ""},
		{"C", ""},
		{"", ""},
		{"r", "B3/S23"},
	}
	if !reflect.DeepEqual(p.Comments, expects) {
		t.Fatalf("comments %q, expected %q", p.Comments, expects)
	}
	if p.Rule != "" {
		t.Fatalf("rule %q without a rule in the header", p.Rule)
	}
}

func TestDecodeRLEGosper(t *testing.T) {
	p, err := Load("testdata/gosper.rle")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(p.Cells); n != 36 {
		t.Fatalf("%d cells, expected 36", n)
	}
	g := p.Grid()
	if len(g) != 9 || len(g[0]) != 36 {
		t.Fatalf("grid is %dx%d", len(g), len(g[0]))
	}
	//the row split over two lines
	row5 := "OO........O...O.OO....O.O"
	for col, ch := range row5 {
		if g[5][col] != (ch == 'O') {
			t.Fatalf("row 5 col %d is %v", col, g[5][col])
		}
	}
	if !g[0][24] || !g[8][12] || !g[8][13] || g[8][14] {
		t.Fatal("unexpected first or last row")
	}
}

func TestDecodeRLEBlankRows(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		expects []universe.Coordinate
	}{
		{"counted blank rows", "o3$o!", []universe.Coordinate{{Row: 0, Col: 0}, {Row: 3, Col: 0}}},
		{"single row break", "o$o!", []universe.Coordinate{{Row: 0, Col: 0}, {Row: 1, Col: 0}}},
		{"trailing dead cells", "2o3b$bo!", []universe.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}},
		{"multi state letters", "oAbo!", []universe.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 3}}},
		{"multi line", "o\n\n2b\no\n!", []universe.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 3}}},
		{"text after terminator", "o!this is ignored $$$", []universe.Coordinate{{Row: 0, Col: 0}}},
		{"empty", "!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeRLE(strings.NewReader("x = 0, y = 0\n" + tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(p.Cells, tt.expects) {
				t.Fatalf("cells %v, expected %v", p.Cells, tt.expects)
			}
		})
	}
}

func TestDecodeRLEErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		construct string
		line      int
		is        error
	}{
		{"no header", "#N nothing else\n", "header", 1, ErrMissingHeader},
		{"bad header", "x = 3 y = 3\nbo!", "header", 1, nil},
		{"non numeric size", "x = three, y = 3\nbo!", "header", 1, nil},
		{"no y", "x = 3\nbo!", "header", 1, nil},
		{"empty rule", "x = 3, y = 3, rule =\nbo!", "header", 1, nil},
		{"unterminated", "x = 3, y = 3\nbob$2bo$3o\n", "terminator", 2, ErrUnterminated},
		{"count before terminator", "x = 1, y = 1\no3!", "terminator", 2, nil},
		{"bad character", "#C ok\nx = 1, y = 1\no%o!", "cell", 3, nil},
		{"split count", "x = 1, y = 1\n1 2o!", "count", 2, nil},
		{"huge count", "x = 1, y = 1\n99999999999o!", "count", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeRLE(strings.NewReader(tt.src))
			if p != nil {
				t.Fatal("partial pattern returned with an error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, expected a ParseError", err)
			}
			if pe.Construct != tt.construct || pe.Line != tt.line || pe.Format != RLE {
				t.Fatalf("ParseError %+v, expected %s at line %d", pe, tt.construct, tt.line)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, expected %v", err, tt.is)
			}
		})
	}
}

func TestDecodeRLEHeaders(t *testing.T) {
	tests := []struct {
		header string
		width  int
		height int
		rule   string
	}{
		{"x = 3, y = 3", 3, 3, ""},
		{"x=3,y=3,rule=B3/S23", 3, 3, "B3/S23"},
		{"X = 3, Y = 3, RULE = b3/s23", 3, 3, "b3/s23"},
		{"x = 3, y = 3, rule = B3/S23:T20,20", 3, 3, "B3/S23:T20,20"},
		{"x = 3, y = 3, rule = B3/S23:P20, 30 ", 3, 3, "B3/S23:P20, 30"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			p, err := DecodeRLE(strings.NewReader(tt.header + "\nbob$2bo$3o!"))
			if err != nil {
				t.Fatal(err)
			}
			if p.Width != tt.width || p.Height != tt.height || p.Rule != tt.rule {
				t.Fatalf("header: %dx%d rule %q", p.Width, p.Height, p.Rule)
			}
			if !reflect.DeepEqual(p.Cells, gliderCells) {
				t.Fatalf("cells %v, expected %v", p.Cells, gliderCells)
			}
		})
	}
}

func TestDecodePlainText(t *testing.T) {
	p, err := Load("testdata/glider.cells")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Cells, gliderCells) {
		t.Fatalf("cells %v", p.Cells)
	}
	metadata := []string{
		"Name: Glider",
		"Author: Richard K. Guy",
		"The smallest, most common, and first discovered spaceship.",
		"www.conwaylife.com/wiki/index.php?title=Glider",
	}
	if m := p.Metadata(); !reflect.DeepEqual(m, metadata) {
		t.Fatalf("metadata %q", m)
	}
	if p.Width != 3 || p.Height != 3 {
		t.Fatalf("size %dx%d", p.Width, p.Height)
	}
}

func TestDecodePlainTextBlankRows(t *testing.T) {
	p, err := DecodePlainText(strings.NewReader("!c\r\nO\r\n\r\n..O \r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if expects := []universe.Coordinate{{Row: 0, Col: 0}, {Row: 2, Col: 2}}; !reflect.DeepEqual(p.Cells, expects) {
		t.Fatalf("cells %v", p.Cells)
	}
	if p.Height != 3 || p.Width != 3 {
		t.Fatalf("size %dx%d", p.Width, p.Height)
	}
}

func TestDecodePlainTextError(t *testing.T) {
	p, err := DecodePlainText(strings.NewReader("!ok\n.O\n.X\n"))
	var pe *ParseError
	if p != nil || !errors.As(err, &pe) {
		t.Fatalf("p = %v, err = %v", p, err)
	}
	if pe.Line != 3 || pe.Construct != "cell" || pe.Format != PlainText {
		t.Fatalf("ParseError %+v", pe)
	}
}

func TestEncodePlainText(t *testing.T) {
	var b bytes.Buffer
	cells := []universe.Coordinate{{Row: 3, Col: 5}, {Row: 3, Col: 7}, {Row: 6, Col: 4}}
	if err := EncodePlainText(&b, []string{"Name: test"}, cells); err != nil {
		t.Fatal(err)
	}
	if expects := "!Name: test\n.O.O\n\n\nO\n"; b.String() != expects {
		t.Fatalf("encoded %q, expected %q", b.String(), expects)
	}
}

func TestEncodePlainTextUnsorted(t *testing.T) {
	var b bytes.Buffer
	cells := []universe.Coordinate{{Row: 2, Col: 0}, {Row: 0, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 0, Col: 1}}
	if err := EncodePlainText(&b, nil, cells); err != nil {
		t.Fatal(err)
	}
	if expects := ".O\n..O\nOOO\n"; b.String() != expects {
		t.Fatalf("encoded %q, expected %q", b.String(), expects)
	}
	if cells[0] != (universe.Coordinate{Row: 2, Col: 0}) {
		t.Fatal("input slice was reordered")
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		cells []universe.Coordinate
	}{
		{"empty", nil},
		{"glider", gliderCells},
		{"single", []universe.Coordinate{{Row: 0, Col: 0}}},
		{"sparse", []universe.Coordinate{{Row: 0, Col: 9}, {Row: 4, Col: 0}, {Row: 4, Col: 12}, {Row: 30, Col: 3}}},
	}
	metadata := []string{"This is a comment.", "And another!", "!", ""}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			if err := EncodePlainText(&b, metadata, tt.cells); err != nil {
				t.Fatal(err)
			}
			p, err := DecodePlainText(&b)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(p.Cells, tt.cells) {
				t.Fatalf("cells %v, expected %v", p.Cells, tt.cells)
			}
			if !reflect.DeepEqual(p.Metadata(), metadata) {
				t.Fatalf("metadata %q", p.Metadata())
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	metadata := []string{"This is a comment.", "And another!", "!", ""}

	empty := filepath.Join(dir, "empty.cells")
	if err := Save(empty, metadata, nil); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(empty); err != nil || fi.Size() != 39 {
		t.Fatalf("empty file: %v, %v", fi, err)
	}
	if p, err := Load(empty); err != nil || len(p.Cells) != 0 {
		t.Fatalf("reloading the empty file: %v, %v", p, err)
	}

	src, err := Load("testdata/glider.rle")
	if err != nil {
		t.Fatal(err)
	}
	u := universe.NewSetUniverse()
	u.AddCells(src)
	cells, err := u.LiveCells()
	if err != nil {
		t.Fatal(err)
	}
	glider := filepath.Join(dir, "glider.cells")
	if err := Save(glider, metadata, cells); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(glider); err != nil || fi.Size() != 50 {
		t.Fatalf("glider file: %v, %v", fi, err)
	}
	p, err := Load(glider)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Cells, cells) {
		t.Fatalf("reloaded %v, saved %v", p.Cells, cells)
	}
}

func TestFormatDispatch(t *testing.T) {
	if f, err := FormatOf("a/b/Glider.RLE"); err != nil || f != RLE {
		t.Fatalf("FormatOf rle: %v %v", f, err)
	}
	if f, err := FormatOf("glider.cells"); err != nil || f != PlainText {
		t.Fatalf("FormatOf cells: %v %v", f, err)
	}
	if _, err := Load("glider.lif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load .lif: %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "x.rle"), nil, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save .rle: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.rle")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load missing: %v", err)
	}
}

func TestPatternString(t *testing.T) {
	p, err := DecodeRLE(strings.NewReader("#N Glider\nx = 3, y = 3, rule = B3/S23\nbob$2bo$3o!"))
	if err != nil {
		t.Fatal(err)
	}
	expects := "format: rle\ncomment: N Glider\ncols: 3, rows: 3, rule: B3/S23\n. ■ .\n. . ■\n■ ■ ■"
	if s := p.String(); s != expects {
		t.Fatalf("String() = %q", s)
	}
}
