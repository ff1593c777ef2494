package mines

// Cells are stored in a flat row-major slice; the cell at (row, col)
// lives at index row*width+col.

func newCells(width, height int) []Cell {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Adjacent = adjacentUnknown
	}
	return cells
}

func (g *Game) index(row, col int) int {
	return row*g.Width + col
}

func (g *Game) CellAt(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, OutOfBoundsError{row, col, g.Width, g.Height}
	}
	return g.Cells[g.index(row, col)], nil
}
