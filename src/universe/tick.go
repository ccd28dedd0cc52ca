package universe

//Tick advances the universe by one generation
//every next state is computed against the current generation into the scratch buffer,
//then the buffers are swapped, so no partial update is visible while counting neighbors
func (u *Universe) Tick() {
	u.TickChanged()
}

//TickChanged does the same as Tick and reports whether any cell is alive
//after the step and whether any cell changed its state
func (u *Universe) TickChanged() (hasLiveCells bool, changed bool) {
	for y := uint32(0); y < u.height; y++ {
		for x := uint32(0); x < u.width; x++ {
			idx := u.index(x, y)
			cell := u.cells[idx]
			next := nextState(cell, u.liveNeighborCount(x, y))
			u.next[idx] = next
			hasLiveCells = hasLiveCells || next.IsAlive()
			changed = changed || next != cell
		}
	}
	u.cells, u.next = u.next, u.cells
	return
}

//nextState applies the Conway rule to one cell
func nextState(cell Cell, liveNeighbors uint8) Cell {
	switch {
	case cell.IsAlive() && liveNeighbors <= 1:
		//underpopulation
		return Dead
	case cell.IsAlive() && liveNeighbors <= 3:
		return Alive
	case cell.IsAlive():
		//overpopulation
		return Dead
	case liveNeighbors == 3:
		//reproduction
		return Alive
	}
	return cell
}

//liveNeighborCount counts Alive cells among the 8 neighbors of x, y
//the grid wraps: width-1 and height-1 deltas step back one column or row modulo the size
func (u *Universe) liveNeighborCount(x uint32, y uint32) uint8 {
	var count uint8
	for _, dy := range [3]uint32{u.height - 1, 0, 1} {
		for _, dx := range [3]uint32{u.width - 1, 0, 1} {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx) % u.width
			ny := (y + dy) % u.height
			count += u.cells[u.index(nx, ny)].Count()
		}
	}
	return count
}
