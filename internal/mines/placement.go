package mines

// placeMines scatters MineCount mines over the board by rejection
// sampling, leaving the excluded cell safe. Placement is deferred
// until the first reveal, which is what makes the first click safe
// regardless of board randomness. MineCount < Width*Height is
// guaranteed by parameter validation, so sampling terminates.
func (g *Game) placeMines(exclude int) {
	if g.rnd == nil {
		g.rnd = newRand()
	}
	placed := 0
	for placed < g.MineCount {
		i := g.rnd.IntN(len(g.Cells))
		if i == exclude || g.Cells[i].Mine {
			continue
		}
		g.Cells[i].Mine = true
		placed++
	}
	g.MinesPlaced = true
}
