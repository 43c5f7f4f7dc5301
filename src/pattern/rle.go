package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gameoflife/src/universe"
)

//maxRunCount bounds a single run so a corrupt count can't exhaust memory
const maxRunCount = 1 << 24

//DecodeRLE parses a Run Length Encoded pattern: '#' comments, the "x = , y = , rule = " header, then
//runs of cells ending at '!', only the 'o' state is live, anything after '!' is ignored
func DecodeRLE(r io.Reader) (*Pattern, error) {
	p := &Pattern{Format: RLE}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0

	header := false
	for !header && s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		switch {
		case text == "":
		case text[0] == '#':
			p.Comments = append(p.Comments, parseRLEComment(text))
		default:
			if err := parseRLEHeader(text, p); err != nil {
				return nil, &ParseError{Format: RLE, Line: line, Construct: "header", Err: err}
			}
			header = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !header {
		return nil, &ParseError{Format: RLE, Line: line, Construct: "header", Err: ErrMissingHeader}
	}

	var body rleBody
	for !body.done && s.Scan() {
		line++
		if err := body.feed(s.Text()); err != nil {
			return nil, &ParseError{Format: RLE, Line: line, Construct: body.construct, Err: err}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !body.done {
		return nil, &ParseError{Format: RLE, Line: line, Construct: "terminator", Err: ErrUnterminated}
	}
	p.Cells = body.cells
	return p, nil
}

//parseRLEComment splits "#C text" into tag and text, a bare "#" has neither
func parseRLEComment(text string) Comment {
	rest := text[1:]
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return Comment{Text: strings.TrimSpace(rest)}
	}
	return Comment{Tag: rest[:1], Text: strings.TrimSpace(rest[1:])}
}

//parseRLEHeader reads "x = W, y = H[, rule = R]" into p
//the rule runs to the end of the line, it may contain commas (B3/S23:T20,20)
func parseRLEHeader(text string, p *Pattern) error {
	var hasX, hasY bool
	rest := text
	for rest != "" {
		part := rest
		rest = ""
		if i := strings.IndexByte(part, ','); i >= 0 {
			part, rest = part[:i], part[i+1:]
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("expected key = value, got %q", strings.TrimSpace(part))
		}
		key, value := strings.ToLower(strings.TrimSpace(kv[0])), strings.TrimSpace(kv[1])
		switch key {
		case "x", "y":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
			}
			if key == "x" {
				p.Width, hasX = n, true
			} else {
				p.Height, hasY = n, true
			}
		case "rule":
			if rest != "" {
				value = strings.TrimSpace(kv[1] + "," + rest)
				rest = ""
			}
			if value == "" {
				return errors.New("empty rule")
			}
			p.Rule = value
		}
	}
	if !hasX || !hasY {
		return fmt.Errorf("x and y are required, got %q", text)
	}
	return nil
}

//rleBody is the state of the cell data decoder, fed one line at a time
type rleBody struct {
	row, col  int
	count     int
	hasCount  bool
	cells     []universe.Coordinate
	done      bool
	construct string //what was being decoded when feed failed
}

func (b *rleBody) feed(line string) error {
	for _, ch := range line {
		switch {
		case b.done:
			return nil
		case ch >= '0' && ch <= '9':
			b.construct = "count"
			b.count = b.count*10 + int(ch-'0')
			b.hasCount = true
			if b.count > maxRunCount {
				return fmt.Errorf("run count exceeds %d", maxRunCount)
			}
		case unicode.IsSpace(ch):
			if b.hasCount {
				b.construct = "count"
				return errors.New("whitespace inside a run count")
			}
		case ch == '$':
			b.row += b.run()
			b.col = 0
		case ch == '!':
			if b.hasCount {
				b.construct = "terminator"
				return fmt.Errorf("run count %d before '!'", b.count)
			}
			b.done = true
		case ch <= unicode.MaxASCII && unicode.IsLetter(ch):
			n := b.run()
			if b.col > math.MaxInt32-n {
				b.construct = "cell"
				return errors.New("row is too long")
			}
			if ch == 'o' {
				for i := 0; i < n; i++ {
					b.cells = append(b.cells, universe.Coordinate{Row: b.row, Col: b.col + i})
				}
			}
			b.col += n
		default:
			b.construct = "cell"
			return fmt.Errorf("unexpected character %q", ch)
		}
	}
	return nil
}

//run consumes the pending count, a missing count means 1
func (b *rleBody) run() int {
	n := 1
	if b.hasCount {
		n = b.count
	}
	b.count, b.hasCount = 0, false
	return n
}
