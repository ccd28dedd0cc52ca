package universe

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func constSource(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

func mustParse(t *testing.T, text string) *Universe {
	t.Helper()
	u, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return u
}

func checkInvariant(t *testing.T, u *Universe) {
	t.Helper()
	if got, want := len(u.Cells()), int(u.Width())*int(u.Height()); got != want {
		t.Fatalf("len(cells) = %v, want %v", got, want)
	}
}

func TestNew(t *testing.T) {
	u := New(constSource(0.25))
	if u.Width() != DefWidth || u.Height() != DefHeight {
		t.Fatalf("size = %vx%v, want %vx%v", u.Width(), u.Height(), DefWidth, DefHeight)
	}
	checkInvariant(t, u)
	if u.LiveCells() != DefWidth*DefHeight {
		t.Errorf("values below 0.5 must make every cell Alive, got %v live", u.LiveCells())
	}

	u = New(constSource(0.5))
	if u.LiveCells() != 0 {
		t.Errorf("values at 0.5 must make every cell Dead, got %v live", u.LiveCells())
	}

	u = New(nil)
	checkInvariant(t, u)
}

func TestFillRandom(t *testing.T) {
	tests := []struct {
		name   string
		pAlive float64
		want   int
	}{
		{"zero", 0, 0},
		{"one", 1, 100},
		{"negative", -0.5, 0},
		{"above one", 1.5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewSized(10, 10, NewSeededSource(42))
			u.FillRandom(tt.pAlive)
			checkInvariant(t, u)
			if got := u.LiveCells(); got != tt.want {
				t.Errorf("LiveCells() = %v, want %v", got, tt.want)
			}
		})
	}

	u := NewSized(10, 10, NewSeededSource(42))
	u.FillRandom(0.5)
	if n := u.LiveCells(); n == 0 || n == 100 {
		t.Errorf("p=0.5 produced a degenerate grid with %v live cells", n)
	}
}

func TestSetSize(t *testing.T) {
	u := mustParse(t, `
O-O
-O-
`)
	u.SetSize(4, 3)
	checkInvariant(t, u)
	if got, want := u.Render(), "O-O-\n-O--\n----\n"; got != want {
		t.Errorf("grown:\n%v\nwant:\n%v", got, want)
	}

	u.SetSize(2, 1)
	checkInvariant(t, u)
	if got, want := u.Render(), "O-\n"; got != want {
		t.Errorf("shrunk:\n%v\nwant:\n%v", got, want)
	}

	u.SetSize(0, 7)
	checkInvariant(t, u)
	u.Tick()
	checkInvariant(t, u)

	u.SetSize(3, 3)
	u.FillRandom(1)
	u.Tick()
	checkInvariant(t, u)
}

func TestWraparound(t *testing.T) {
	u := NewSized(5, 4, nil)
	u.Set(4, 3, Alive)
	if n := u.liveNeighborCount(0, 0); n != 1 {
		t.Errorf("(0,0) sees %v live neighbors, want 1", n)
	}
	u.Clear()
	u.Set(0, 0, Alive)
	if n := u.liveNeighborCount(4, 3); n != 1 {
		t.Errorf("(4,3) sees %v live neighbors, want 1", n)
	}
	if n := u.liveNeighborCount(2, 2); n != 0 {
		t.Errorf("(2,2) sees %v live neighbors, want 0", n)
	}
}

func TestTick(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{
			"block is stable",
			"------\n-OO---\n-OO---\n------\n------\n",
			"------\n-OO---\n-OO---\n------\n------\n",
		},
		{
			"isolated cell dies",
			"-----\n-----\n--O--\n-----\n-----\n",
			"-----\n-----\n-----\n-----\n-----\n",
		},
		{
			"dead cell with three neighbors is born",
			"-----\n-O-O-\n-----\n-O---\n-----\n",
			"-----\n-----\n--O--\n-----\n-----\n",
		},
		{
			"dead cell with two neighbors stays dead",
			"-----\n-O---\n-----\n---O-\n-----\n",
			"-----\n-----\n-----\n-----\n-----\n",
		},
		{
			"dead cell with four neighbors stays dead",
			"-----\n-O-O-\n-----\n-O-O-\n-----\n",
			"-----\n-----\n-----\n-----\n-----\n",
		},
		{
			"overpopulated cell dies",
			"-----\n-OOO-\n-OO--\n-----\n-----\n",
			"--O--\n-O-O-\n-O-O-\n-----\n-----\n",
		},
		{
			"blinker flips to vertical",
			"-----\n-----\n-OOO-\n-----\n-----\n",
			"-----\n--O--\n--O--\n--O--\n-----\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustParse(t, tt.start)
			u.Tick()
			checkInvariant(t, u)
			if got := u.Render(); got != tt.want {
				t.Errorf("got:\n%v\nwant:\n%v", got, tt.want)
			}
		})
	}
}

func TestBlinkerPeriod(t *testing.T) {
	start := "-----\n-----\n-OOO-\n-----\n-----\n"
	u := mustParse(t, start)
	u.Tick()
	if u.Render() == start {
		t.Fatal("blinker did not change after one generation")
	}
	u.Tick()
	if got := u.Render(); got != start {
		t.Errorf("blinker after two generations:\n%v\nwant:\n%v", got, start)
	}
}

func TestGlider(t *testing.T) {
	u := NewSized(8, 8, nil)
	g, ok := BuiltinTemplate("glider")
	if !ok {
		t.Fatal("glider template is missing")
	}
	u.Settle(g, 2, 2)
	want := NewSized(8, 8, nil)
	want.Settle(g, 3, 3)
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	if u.Render() != want.Render() {
		t.Errorf("glider after 4 generations:\n%v\nwant:\n%v", u.Render(), want.Render())
	}

	//crossing the edge
	u.Clear()
	u.Settle(g, 6, 6)
	want.Clear()
	want.Settle(g, 7, 7)
	for i := 0; i < 4; i++ {
		u.Tick()
	}
	if u.Render() != want.Render() {
		t.Errorf("wrapped glider after 4 generations:\n%v\nwant:\n%v", u.Render(), want.Render())
	}
}

func TestTickChanged(t *testing.T) {
	u := mustParse(t, "----\n-OO-\n-OO-\n----\n")
	alive, changed := u.TickChanged()
	if !alive || changed {
		t.Errorf("block: alive=%v changed=%v, want true false", alive, changed)
	}

	u = mustParse(t, "---\n-O-\n---\n")
	alive, changed = u.TickChanged()
	if alive || !changed {
		t.Errorf("single cell: alive=%v changed=%v, want false true", alive, changed)
	}
}

func TestTickEmpty(t *testing.T) {
	for _, size := range [][2]uint32{{0, 0}, {0, 5}, {5, 0}} {
		u := NewSized(size[0], size[1], nil)
		u.Tick()
		checkInvariant(t, u)
		if u.Render() != "" {
			t.Errorf("%vx%v rendered %q", size[0], size[1], u.Render())
		}
	}
}

func TestRender(t *testing.T) {
	u := New(NewSeededSource(7))
	first := u.Render()
	if first != u.Render() {
		t.Error("Render is not idempotent")
	}
	lines := strings.Split(strings.TrimSuffix(first, "\n"), "\n")
	if len(lines) != DefHeight {
		t.Fatalf("%v rows, want %v", len(lines), DefHeight)
	}
	for i, l := range lines {
		if len(l) != DefWidth {
			t.Fatalf("row %v has %v symbols, want %v", i, len(l), DefWidth)
		}
	}

	parsed := mustParse(t, first)
	if parsed.Render() != first {
		t.Error("Parse(Render()) does not reproduce the grid")
	}
	if u.String() != first {
		t.Error("String differs from Render")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"ragged rows", "OO-\nO-\n", ErrDimensionMismatch},
		{"unknown symbol", "O-\nOx\n", ErrInvalidSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}

	u := mustParse(t, "#.*\n.1.\n")
	if got, want := u.Render(), "O-O\n-O-\n"; got != want {
		t.Errorf("aliases parsed as:\n%v\nwant:\n%v", got, want)
	}
}

func TestNewFromCells(t *testing.T) {
	_, err := NewFromCells(3, 3, make([]Cell, 8))
	if errors.Cause(err) != ErrDimensionMismatch {
		t.Errorf("err = %v, want %v", err, ErrDimensionMismatch)
	}

	cells := []Cell{Alive, Dead, Dead, Alive}
	u, err := NewFromCells(2, 2, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[1] = Alive
	if u.Get(1, 0) != Dead {
		t.Error("universe aliases the source slice")
	}
}

func TestCellAccess(t *testing.T) {
	u := NewSized(3, 2, nil)
	u.Set(2, 1, Alive)
	if u.Cells()[2+1*3] != Alive {
		t.Error("Set does not use row-major indexing")
	}
	u.Toggle(2, 1)
	u.Toggle(0, 0)
	u.Toggle(5, 5)
	u.Set(-1, 0, Alive)
	if got, want := u.Render(), "O--\n---\n"; got != want {
		t.Errorf("got:\n%v\nwant:\n%v", got, want)
	}
	if u.Get(-1, 0) != Dead || u.Get(3, 0) != Dead {
		t.Error("out of range cells must read as Dead")
	}

	cp := u.CellsCopy()
	cp[0] = Dead
	if !u.Get(0, 0).IsAlive() {
		t.Error("CellsCopy aliases the buffer")
	}

	u.SetCells([][]int{{1, 1}, {9, 9}, {1}})
	if u.LiveCells() != 2 {
		t.Errorf("LiveCells() = %v, want 2", u.LiveCells())
	}
}

func TestCellCount(t *testing.T) {
	if Alive.Count() != 1 || Dead.Count() != 0 {
		t.Error("Alive must count 1, Dead 0")
	}
	if uint8(Dead) != 0 || uint8(Alive) != 1 {
		t.Error("cell encoding changed")
	}
}
