package mines

// buildNeighbors memoizes the valid neighbor indices of every cell.
// Neighbors never change once the board dimensions are fixed, so the
// cache is built once per game and discarded wholesale on reset.
func buildNeighbors(width, height int) [][]int {
	neighbors := make([][]int, width*height)
	for row := range height {
		for col := range width {
			i := row*width + col
			n := make([]int, 0, 8)
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r, c := row+dr, col+dc
					if r < 0 || r >= height || c < 0 || c >= width {
						continue
					}
					n = append(n, r*width+c)
				}
			}
			neighbors[i] = n
		}
	}
	return neighbors
}

// adjacentMines returns the number of mined neighbors of cell i,
// computing and caching it on first use.
func (g *Game) adjacentMines(i int) int8 {
	if g.Cells[i].Adjacent == adjacentUnknown {
		var n int8
		for _, j := range g.neighbors[i] {
			if g.Cells[j].Mine {
				n++
			}
		}
		g.Cells[i].Adjacent = n
	}
	return g.Cells[i].Adjacent
}
