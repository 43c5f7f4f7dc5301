package pattern

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"gameoflife/src/universe"
)

//DecodePlainText parses a Plain Text pattern: '!' comments, then one row per line of '.' (dead) and 'O' (live)
//spaces and tabs between cells are ignored, width is the longest row
func DecodePlainText(r io.Reader) (*Pattern, error) {
	p := &Pattern{Format: PlainText}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimRight(s.Text(), "\r")
		if strings.HasPrefix(text, "!") {
			p.Comments = append(p.Comments, Comment{Text: strings.TrimSpace(text[1:])})
			continue
		}
		col := 0
		for _, ch := range text {
			switch ch {
			case '.':
			case 'O':
				p.Cells = append(p.Cells, universe.Coordinate{Row: p.Height, Col: col})
			case ' ', '\t':
				continue
			default:
				return nil, &ParseError{Format: PlainText, Line: line, Construct: "cell",
					Err: fmt.Errorf("unexpected character %q", ch)}
			}
			col++
		}
		if col > p.Width {
			p.Width = col
		}
		p.Height++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

//EncodePlainText writes metadata as '!' comments followed by the live cells
//rows start at the topmost cell, columns at the leftmost one, each row stops at its last live cell
func EncodePlainText(w io.Writer, metadata []string, cells []universe.Coordinate) error {
	bw := bufio.NewWriter(w)
	for _, m := range metadata {
		bw.WriteString("!" + m + "\n")
	}
	if len(cells) > 0 {
		if !sort.SliceIsSorted(cells, func(i, j int) bool { return cells[i].Less(cells[j]) }) {
			cells = append([]universe.Coordinate(nil), cells...)
			universe.SortCoordinates(cells)
		}
		minCol := cells[0].Col
		for _, c := range cells {
			if c.Col < minCol {
				minCol = c.Col
			}
		}
		row, col := cells[0].Row, minCol
		for _, c := range cells {
			if c.Row > row {
				bw.WriteString(strings.Repeat("\n", c.Row-row))
				row, col = c.Row, minCol
			}
			if c.Col < col {
				//duplicate
				continue
			}
			bw.WriteString(strings.Repeat(".", c.Col-col))
			bw.WriteByte('O')
			col = c.Col + 1
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
