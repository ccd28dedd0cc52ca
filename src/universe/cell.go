package universe

//Cell is the state of one grid position
//the numeric values are stable: Dead is 0, Alive is 1
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//IsAlive reports whether the cell is Alive
func (c Cell) IsAlive() bool {
	return c == Alive
}

//Count maps the cell to its contribution to a neighbor sum
func (c Cell) Count() uint8 {
	if c.IsAlive() {
		return 1
	}
	return 0
}

func (c Cell) String() string {
	if c.IsAlive() {
		return "Alive"
	}
	return "Dead"
}
