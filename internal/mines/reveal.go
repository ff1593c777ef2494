package mines

import "github.com/gammazero/deque"

// revealFrom opens cell start and, when it has no mined neighbors,
// expands the reveal over the connected zero-adjacency region plus
// its numbered border. Expansion runs on an explicit queue, never
// recursion: a full-size board holds MaxBoardSize² cells. Neighbors
// already revealed, marked or mined are skipped without enqueuing,
// so flood expansion can never open a mine.
func (g *Game) revealFrom(start int) []CellChange {
	var (
		changed []CellChange
		queue   deque.Deque[int]
	)
	changed = append(changed, g.revealCell(start))
	if g.Cells[start].Adjacent == 0 {
		queue.PushBack(start)
	}
	for queue.Len() > 0 {
		i := queue.PopFront()
		for _, j := range g.neighbors[i] {
			c := g.Cells[j]
			if c.Revealed || c.Mark != MarkNone || c.Mine {
				continue
			}
			changed = append(changed, g.revealCell(j))
			if g.Cells[j].Adjacent == 0 {
				queue.PushBack(j)
			}
		}
	}
	return changed
}

func (g *Game) revealCell(i int) CellChange {
	g.Cells[i].Revealed = true
	g.RevealedCount++
	g.adjacentMines(i)
	return g.change(i)
}

// ChordReveal opens every unmarked neighbor of a revealed numbered
// cell, provided exactly as many of its neighbors are flagged as it
// counts mines. Each opened neighbor may flood or hit a mine; the
// first terminal outcome stops the sweep. On a flag mismatch nothing
// changes and the move is ignored: any highlighting is the
// presentation layer's business.
func (g *Game) ChordReveal(row, col int) (MoveResult, error) {
	if !g.InBounds(row, col) {
		return MoveResult{}, OutOfBoundsError{row, col, g.Width, g.Height}
	}
	if g.Phase != PhasePlaying {
		return MoveResult{Outcome: Ignored}, nil
	}
	i := g.index(row, col)
	cell := g.Cells[i]
	if !cell.Revealed || cell.Adjacent < 1 {
		return MoveResult{Outcome: Ignored}, nil
	}
	flags := 0
	for _, j := range g.neighbors[i] {
		if g.Cells[j].Mark == MarkFlag {
			flags++
		}
	}
	if flags != int(cell.Adjacent) {
		return MoveResult{Outcome: Ignored}, nil
	}
	var changed []CellChange
	for _, j := range g.neighbors[i] {
		c := g.Cells[j]
		if c.Revealed || c.Mark != MarkNone {
			continue
		}
		if c.Mine {
			g.Cells[j].Revealed = true
			g.RevealedCount++
			g.Phase = PhaseLost
			changed = append(changed, g.change(j))
			return MoveResult{Outcome: Lost, Changed: changed}, nil
		}
		changed = append(changed, g.revealFrom(j)...)
		if g.won() {
			g.Phase = PhaseWon
			return MoveResult{Outcome: Won, Changed: changed}, nil
		}
	}
	if len(changed) == 0 {
		return MoveResult{Outcome: Ignored}, nil
	}
	return MoveResult{Outcome: Continued, Changed: changed}, nil
}
