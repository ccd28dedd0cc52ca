package runner

import "toruslife/src/universe"

//Frame is a copy of the universe cells taken on the control goroutine
//it never aliases the universe buffer, so viewers may keep it as long as they need
type Frame struct {
	Width  uint32
	Height uint32
	Cells  []universe.Cell
}

func newFrame(u *universe.Universe) Frame {
	return Frame{
		Width:  u.Width(),
		Height: u.Height(),
		Cells:  u.CellsCopy(),
	}
}

//Get returns the cell at x, y, coordinates outside the frame are Dead
func (f Frame) Get(x int, y int) universe.Cell {
	if x < 0 || y < 0 || x >= int(f.Width) || y >= int(f.Height) {
		return universe.Dead
	}
	return f.Cells[x+y*int(f.Width)]
}

//Row returns the cells of the row y
func (f Frame) Row(y int) []universe.Cell {
	if y < 0 || y >= int(f.Height) {
		return nil
	}
	start := y * int(f.Width)
	return f.Cells[start : start+int(f.Width)]
}

//Render returns the text form of the frame, see universe.Render
//a frame whose cells do not match its dimensions gives universe.ErrDimensionMismatch
func (f Frame) Render() (string, error) {
	u, err := universe.NewFromCells(f.Width, f.Height, f.Cells)
	if err != nil {
		return "", err
	}
	return u.Render(), nil
}
