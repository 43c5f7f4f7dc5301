package pattern

import (
	"errors"
	"fmt"
	"strings"

	"gameoflife/src/universe"
)

//Format identifies a pattern file format
type Format string

const (
	//RLE is the Run Length Encoded format
	RLE Format = "rle"
	//PlainText is the Plain Text format
	PlainText Format = "cells"
)

var (
	//ErrUnsupportedFormat is returned for file names whose extension is not a known format,
	//and by Save for formats that can only be read
	ErrUnsupportedFormat = errors.New("unsupported pattern format")
	//ErrUnterminated is returned when RLE data ends without the '!' terminator
	ErrUnterminated = errors.New("missing '!' terminator")
	//ErrMissingHeader is returned when an RLE file has no "x = , y =" header line
	ErrMissingHeader = errors.New("missing header line")
)

//ParseError describes input that violates a format's grammar
type ParseError struct {
	Format    Format
	Line      int    //1-based line number of the offending construct
	Construct string //header, count, cell, terminator...
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: bad %s: %v", e.Format, e.Line, e.Construct, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

//Comment is one metadata line, Tag is the RLE letter after '#' and is empty for plain text
type Comment struct {
	Tag  string
	Text string
}

func (c Comment) String() string {
	if c.Tag == "" {
		return c.Text
	}
	if c.Text == "" {
		return c.Tag
	}
	return c.Tag + " " + c.Text
}

//Pattern is a decoded pattern file
type Pattern struct {
	Format   Format
	Comments []Comment
	//Width and Height are declared by the RLE header, or measured for plain text
	//For RLE they are advisory and not checked against the decoded cells
	Width  int
	Height int
	Rule   string
	Cells  []universe.Coordinate
}

//Coordinates returns the live cells, making a Pattern a universe.Seed
func (p *Pattern) Coordinates() []universe.Coordinate {
	return p.Cells
}

//Metadata returns the comments as plain strings, ready for the plain text encoder
func (p *Pattern) Metadata() []string {
	m := make([]string, 0, len(p.Comments))
	for _, c := range p.Comments {
		m = append(m, c.String())
	}
	return m
}

//Grid returns the pattern as a dense matrix covering both the declared size and every live cell
func (p *Pattern) Grid() universe.Grid {
	rows, cols := p.Height, p.Width
	for _, c := range p.Cells {
		if c.Row >= rows {
			rows = c.Row + 1
		}
		if c.Col >= cols {
			cols = c.Col + 1
		}
	}
	g := make(universe.Grid, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	for _, c := range p.Cells {
		g[c.Row][c.Col] = true
	}
	return g
}

func (p *Pattern) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "format: %s\n", p.Format)
	for _, c := range p.Comments {
		fmt.Fprintf(&b, "comment: %s\n", c)
	}
	rule := p.Rule
	if rule == "" {
		rule = "none"
	}
	fmt.Fprintf(&b, "cols: %d, rows: %d, rule: %s", p.Width, p.Height, rule)
	for _, row := range p.Grid() {
		b.WriteByte('\n')
		for i, live := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			if live {
				b.WriteString("■")
			} else {
				b.WriteString(".")
			}
		}
	}
	return b.String()
}
