package universe

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	AliveSymbol = 'O'
	DeadSymbol  = '-'
)

//Render returns the text form of the grid: one line per row, top to bottom,
//AliveSymbol for Alive cells and DeadSymbol for Dead ones, every row ends with '\n'
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(len(u.cells) + int(u.height))
	w := int(u.width)
	for start := 0; start < len(u.cells); start += w {
		for _, c := range u.cells[start : start+w] {
			if c.IsAlive() {
				b.WriteByte(AliveSymbol)
			} else {
				b.WriteByte(DeadSymbol)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (u *Universe) String() string {
	return u.Render()
}

//Parse builds a universe from the Render text form
//'#', '*' and '1' are accepted for Alive, '.' and '0' for Dead; blank lines are skipped
//all rows must have the same length, otherwise ErrDimensionMismatch is returned
func Parse(text string) (*Universe, error) {
	var (
		cells []Cell
		width = -1
		y     = 0
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if line == "" {
			continue
		}
		if width == -1 {
			width = len(line)
		} else if len(line) != width {
			return nil, errors.Wrapf(ErrDimensionMismatch, "row %v has %v cells, expected %v", y, len(line), width)
		}
		for x := 0; x < len(line); x++ {
			c, ok := parseSymbol(line[x])
			if !ok {
				return nil, errors.Wrapf(ErrInvalidSymbol, "%q at %v,%v", line[x], x, y)
			}
			cells = append(cells, c)
		}
		y++
	}
	if width == -1 {
		width = 0
	}
	return NewFromCells(uint32(width), uint32(y), cells)
}

func parseSymbol(s byte) (Cell, bool) {
	switch s {
	case AliveSymbol, '#', '*', '1':
		return Alive, true
	case DeadSymbol, '.', '0':
		return Dead, true
	}
	return Dead, false
}
