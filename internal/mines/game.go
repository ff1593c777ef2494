package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Outcome reports how a move resolved. Ignored is a normal outcome,
// not an error: terminal games and inert cells swallow requests.
type Outcome uint8

const (
	Ignored Outcome = iota
	Continued
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "ignored"
}

type CellChange struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Mine     bool `json:"mine"`
	Adjacent int8 `json:"adjacent"`
}

type MoveResult struct {
	Outcome Outcome
	Changed []CellChange
}

// Game holds one board and its lifecycle state. A Game is not safe
// for concurrent use; callers that share one serialize access.
type Game struct {
	GameParams
	Phase         Phase
	Cells         []Cell
	RevealedCount int
	MinesPlaced   bool
	Forfeited     bool

	neighbors [][]int
	rnd       *rand.Rand
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewGame creates a board with no mines placed yet. Mines appear on
// the first reveal. A nil rnd falls back to a hash-seeded source.
func NewGame(params GameParams, rnd *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = newRand()
	}
	g := &Game{
		GameParams: params,
		Phase:      PhaseNotStarted,
		Cells:      newCells(params.Width, params.Height),
		neighbors:  buildNeighbors(params.Width, params.Height),
		rnd:        rnd,
	}
	return g, nil
}

// NewGameWithMines creates a board with mines at the given indices,
// bypassing random placement. The first reveal is not kept safe.
func NewGameWithMines(params GameParams, mineIdxs []int) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(mineIdxs) != params.MineCount {
		return nil, InvalidConfigurationError{
			params, "mine positions do not match mine count",
		}
	}
	g, err := NewGame(params, nil)
	if err != nil {
		return nil, err
	}
	for _, i := range mineIdxs {
		if i < 0 || i >= len(g.Cells) {
			return nil, OutOfBoundsError{
				i / params.Width, i % params.Width, params.Width, params.Height,
			}
		}
		if g.Cells[i].Mine {
			return nil, InvalidConfigurationError{params, "duplicate mine position"}
		}
		g.Cells[i].Mine = true
	}
	g.MinesPlaced = true
	return g, nil
}

// Reveal opens the cell at (row, col). The first successful reveal
// places the mines, excluding the clicked cell, and starts the game.
// Revealed and marked cells are inert. Opening a mine loses the game;
// opening a cell with no mined neighbors floods the surrounding
// zero-adjacency region.
func (g *Game) Reveal(row, col int) (MoveResult, error) {
	if !g.InBounds(row, col) {
		return MoveResult{}, OutOfBoundsError{row, col, g.Width, g.Height}
	}
	if g.Phase.Terminal() {
		return MoveResult{Outcome: Ignored}, nil
	}
	i := g.index(row, col)
	if g.Cells[i].Revealed || g.Cells[i].Mark != MarkNone {
		return MoveResult{Outcome: Ignored}, nil
	}
	if !g.MinesPlaced {
		g.placeMines(i)
	}
	g.Phase = PhasePlaying
	if g.Cells[i].Mine {
		g.Cells[i].Revealed = true
		g.RevealedCount++
		g.Phase = PhaseLost
		return MoveResult{Outcome: Lost, Changed: []CellChange{g.change(i)}}, nil
	}
	changed := g.revealFrom(i)
	if g.won() {
		g.Phase = PhaseWon
		return MoveResult{Outcome: Won, Changed: changed}, nil
	}
	return MoveResult{Outcome: Continued, Changed: changed}, nil
}

// ToggleMark cycles the mark on an unrevealed cell through
// none, flag, question and back to none. It reports the resulting
// mark and whether the request was accepted.
func (g *Game) ToggleMark(row, col int) (Mark, bool, error) {
	if !g.InBounds(row, col) {
		return MarkNone, false, OutOfBoundsError{row, col, g.Width, g.Height}
	}
	i := g.index(row, col)
	if g.Phase.Terminal() || g.Cells[i].Revealed {
		return g.Cells[i].Mark, false, nil
	}
	g.Cells[i].Mark = g.Cells[i].Mark.next()
	return g.Cells[i].Mark, true, nil
}

// Resign forfeits a running game.
func (g *Game) Resign() Outcome {
	if g.Phase != PhasePlaying {
		return Ignored
	}
	g.Phase = PhaseLost
	g.Forfeited = true
	return Lost
}

// Reset returns the board to its pre-first-click state with the same
// parameters, discarding mines, marks, counters and caches.
func (g *Game) Reset() {
	g.Cells = newCells(g.Width, g.Height)
	g.neighbors = buildNeighbors(g.Width, g.Height)
	g.Phase = PhaseNotStarted
	g.RevealedCount = 0
	g.MinesPlaced = false
	g.Forfeited = false
}

func (g *Game) won() bool {
	return g.RevealedCount == g.Width*g.Height-g.MineCount
}

func (g *Game) change(i int) CellChange {
	c := g.Cells[i]
	return CellChange{
		Row:      i / g.Width,
		Col:      i % g.Width,
		Mine:     c.Mine,
		Adjacent: c.Adjacent,
	}
}

func (g *Game) FlagCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Mark == MarkFlag {
			n++
		}
	}
	return n
}
