package universe

import "github.com/pkg/errors"

//default dimensions and population of a freshly created universe
const (
	DefWidth   = 64
	DefHeight  = 64
	DefDensity = 0.5
)

//Universe is a toroidal Game of Life grid
//cells are stored in a single row-major buffer, the cell (x, y) lives at x + y*width
//Universe is not safe for concurrent use, it has exactly one owner
type Universe struct {
	width  uint32
	height uint32
	cells  []Cell
	//scratch buffer for Tick, swapped with cells after each generation
	next []Cell
	src  Source
}

//New creates the DefWidth x DefHeight universe with every cell Alive with probability DefDensity
//src may be nil, DefaultSource is used then
func New(src Source) *Universe {
	u := NewSized(DefWidth, DefHeight, src)
	u.FillRandom(DefDensity)
	return u
}

//NewSized creates an all Dead universe of the given size
func NewSized(width uint32, height uint32, src Source) *Universe {
	if src == nil {
		src = DefaultSource
	}
	n := int(width) * int(height)
	return &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, n),
		next:   make([]Cell, n),
		src:    src,
	}
}

//NewFromCells creates a universe over a copy of cells
//ErrDimensionMismatch is returned if len(cells) != width*height
func NewFromCells(width uint32, height uint32, cells []Cell) (*Universe, error) {
	if len(cells) != int(width)*int(height) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%v cells for a %vx%v universe", len(cells), width, height)
	}
	u := NewSized(width, height, nil)
	copy(u.cells, cells)
	return u, nil
}

//FillRandom re-randomizes every cell in place, a cell becomes Alive with probability pAlive
//pAlive is not validated: values <= 0 give an all Dead grid, values >= 1 an all Alive one
func (u *Universe) FillRandom(pAlive float64) {
	for i := range u.cells {
		if u.src.Float64() < pAlive {
			u.cells[i] = Alive
		} else {
			u.cells[i] = Dead
		}
	}
}

//SetSize changes the dimensions and reallocates the buffer to width*height cells
//the overlapping top-left region keeps its state, new cells are Dead
func (u *Universe) SetSize(width uint32, height uint32) {
	n := int(width) * int(height)
	cells := make([]Cell, n)
	w := int(min(width, u.width))
	h := int(min(height, u.height))
	for y := 0; y < h; y++ {
		dst := y * int(width)
		src := y * int(u.width)
		copy(cells[dst:dst+w], u.cells[src:src+w])
	}
	u.width = width
	u.height = height
	u.cells = cells
	u.next = make([]Cell, n)
}

//Width returns the number of columns
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() uint32 {
	return u.height
}

//Cells returns the internal row-major buffer without copying
//the slice is only valid until the next mutation (Tick, FillRandom, SetSize, Set, Toggle, Clear...)
//and must not be written to; use CellsCopy to keep the state
func (u *Universe) Cells() []Cell {
	return u.cells
}

//CellsCopy returns a copy of the buffer owned by the caller
func (u *Universe) CellsCopy() []Cell {
	c := make([]Cell, len(u.cells))
	copy(c, u.cells)
	return c
}

//Get returns the cell at x, y, coordinates outside the grid are Dead
func (u *Universe) Get(x int, y int) Cell {
	if !u.contains(x, y) {
		return Dead
	}
	return u.cells[u.index(uint32(x), uint32(y))]
}

//Set sets the cell at x, y, coordinates outside the grid are ignored
func (u *Universe) Set(x int, y int, c Cell) {
	if !u.contains(x, y) {
		return
	}
	u.cells[u.index(uint32(x), uint32(y))] = c
}

//Toggle inverts the cell at x, y
func (u *Universe) Toggle(x int, y int) {
	if !u.contains(x, y) {
		return
	}
	i := u.index(uint32(x), uint32(y))
	if u.cells[i].IsAlive() {
		u.cells[i] = Dead
	} else {
		u.cells[i] = Alive
	}
}

//SetCells makes every [x, y] pair Alive
//pairs of a wrong length or outside the grid are skipped
func (u *Universe) SetCells(vc [][]int) {
	for _, v := range vc {
		if len(v) != 2 {
			continue
		}
		u.Set(v[0], v[1], Alive)
	}
}

//Clear kills all cells
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

//LiveCells returns the count of Alive cells
func (u *Universe) LiveCells() int {
	n := 0
	for _, c := range u.cells {
		n += int(c.Count())
	}
	return n
}

func (u *Universe) contains(x int, y int) bool {
	return x >= 0 && y >= 0 && x < int(u.width) && y < int(u.height)
}

//index maps x, y to the buffer position
func (u *Universe) index(x uint32, y uint32) int {
	return int(x) + int(y)*int(u.width)
}
