package mines_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/zun-zs/minesweeper/internal/mines"
)

func mustNewGame(t *testing.T, params mines.GameParams, rnd *rand.Rand) *mines.Game {
	t.Helper()
	g, err := mines.NewGame(params, rnd)
	if err != nil {
		t.Fatalf("could not create game: %v", err)
	}
	return g
}

// cornerMineFixture is a 5x5 board with a single mine in the top left
// corner, so every cell outside the mine's neighborhood has no mined
// neighbors.
func cornerMineFixture(t *testing.T) *mines.Game {
	t.Helper()
	params := mines.GameParams{Width: 5, Height: 5, MineCount: 1}
	g, err := mines.NewGameWithMines(params, []int{0})
	if err != nil {
		t.Fatalf("could not create fixture: %v", err)
	}
	return g
}

func revealedCells(g *mines.Game) int {
	n := 0
	for _, c := range g.Cells {
		if c.Revealed {
			n++
		}
	}
	return n
}

func TestFirstRevealNeverMine(t *testing.T) {
	t.Parallel()

	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	for row := range params.Height {
		for col := range params.Width {
			g := mustNewGame(t, params, rand.New(rand.NewPCG(uint64(row), uint64(col))))
			res, err := g.Reveal(row, col)
			if err != nil {
				t.Fatalf("reveal %d:%d: %v", row, col, err)
			}
			if res.Outcome == mines.Lost {
				t.Errorf("first reveal at %d:%d hit a mine", row, col)
			}
			mineCells := 0
			for _, c := range g.Cells {
				if c.Mine {
					mineCells++
				}
			}
			if mineCells != params.MineCount {
				t.Errorf("placed %d mines, want %d", mineCells, params.MineCount)
			}
			if cell, _ := g.CellAt(row, col); cell.Mine {
				t.Errorf("mine placed at first reveal %d:%d", row, col)
			}
		}
	}
}

func TestRevealedCountMatchesGrid(t *testing.T) {
	t.Parallel()

	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	for seed := range uint64(5) {
		rnd := rand.New(rand.NewPCG(seed, 42))
		g := mustNewGame(t, params, rnd)
		for range 200 {
			row, col := rnd.IntN(params.Height), rnd.IntN(params.Width)
			if rnd.IntN(4) == 0 {
				if _, _, err := g.ToggleMark(row, col); err != nil {
					t.Fatalf("toggle %d:%d: %v", row, col, err)
				}
			} else if _, err := g.Reveal(row, col); err != nil {
				t.Fatalf("reveal %d:%d: %v", row, col, err)
			}
			if have, want := g.RevealedCount, revealedCells(g); have != want {
				t.Fatalf("revealed count %d, grid has %d revealed cells", have, want)
			}
			if g.Phase.Terminal() {
				break
			}
		}
	}
}

func TestFloodRevealsWholeSafeRegion(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	res, err := g.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Won {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Won)
	}
	if len(res.Changed) != 24 {
		t.Errorf("flood changed %d cells, want 24", len(res.Changed))
	}
	if g.RevealedCount != 24 {
		t.Errorf("revealed %d cells, want 24", g.RevealedCount)
	}
	if cell, _ := g.CellAt(0, 0); cell.Revealed {
		t.Error("flood revealed the mine")
	}
}

func TestFloodStopsAtFlags(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, _, err := g.ToggleMark(2, 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	res, err := g.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Continued {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Continued)
	}
	if g.RevealedCount != 23 {
		t.Errorf("revealed %d cells, want 23", g.RevealedCount)
	}
	if cell, _ := g.CellAt(2, 2); cell.Revealed {
		t.Error("flood crossed a flagged cell")
	}

	// unflag it (flag -> question -> none), then open it for the win
	for range 2 {
		if _, _, err := g.ToggleMark(2, 2); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	res, err = g.Reveal(2, 2)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Won {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Won)
	}
}

func TestWinDeclaredExactlyAtLastSafeCell(t *testing.T) {
	t.Parallel()

	// mines across the middle row, so rows 1 and 3 are all numbered
	params := mines.GameParams{Width: 5, Height: 5, MineCount: 5}
	g, err := mines.NewGameWithMines(params, []int{10, 11, 12, 13, 14})
	if err != nil {
		t.Fatalf("could not create fixture: %v", err)
	}

	safe := params.Width*params.Height - params.MineCount
	reveals := [][2]int{
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4},
		{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4},
		{0, 0}, // floods row 0
		{4, 0}, // floods row 4, board complete
	}
	for _, rc := range reveals {
		res, err := g.Reveal(rc[0], rc[1])
		if err != nil {
			t.Fatalf("reveal %d:%d: %v", rc[0], rc[1], err)
		}
		if g.RevealedCount < safe && (res.Outcome == mines.Won || g.Phase == mines.PhaseWon) {
			t.Fatalf("won with %d of %d safe cells revealed", g.RevealedCount, safe)
		}
	}
	if g.Phase != mines.PhaseWon {
		t.Errorf("have phase %s, want %s", g.Phase, mines.PhaseWon)
	}
	if g.RevealedCount != safe {
		t.Errorf("revealed %d cells, want %d", g.RevealedCount, safe)
	}
}

func TestRevealMarkedCellIgnored(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, _, err := g.ToggleMark(4, 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	res, err := g.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Ignored {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Ignored)
	}
	if len(res.Changed) != 0 {
		t.Errorf("ignored reveal changed %d cells", len(res.Changed))
	}
	if g.RevealedCount != 0 {
		t.Errorf("ignored reveal bumped counter to %d", g.RevealedCount)
	}
}

func TestFirstRevealOnMarkedCellDoesNotStart(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(1, 2)))
	if _, _, err := g.ToggleMark(4, 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	res, err := g.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Ignored {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Ignored)
	}
	if g.Phase != mines.PhaseNotStarted {
		t.Errorf("have phase %s, want %s", g.Phase, mines.PhaseNotStarted)
	}
	if g.MinesPlaced {
		t.Error("mines placed by an ignored reveal")
	}
}

func TestMarkCycleReturnsToNone(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(1, 2)))
	want := []mines.Mark{mines.MarkFlag, mines.MarkQuestion, mines.MarkNone}
	for i, w := range want {
		mark, accepted, err := g.ToggleMark(3, 3)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if !accepted {
			t.Fatalf("toggle %d not accepted", i)
		}
		if mark != w {
			t.Errorf("toggle %d: have %s, want %s", i, mark, w)
		}
	}
	res, err := g.Reveal(3, 3)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome == mines.Ignored {
		t.Error("reveal after a full mark cycle was ignored")
	}
}

func TestKnownMineLosesAndShowsMines(t *testing.T) {
	t.Parallel()

	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	g := mustNewGame(t, params, rand.New(rand.NewPCG(1, 2)))
	if _, err := g.Reveal(4, 4); err != nil {
		t.Fatalf("first reveal: %v", err)
	}

	mineIdx := -1
	for i, c := range g.Cells {
		if c.Mine && !c.Revealed {
			mineIdx = i
			break
		}
	}
	if mineIdx < 0 {
		t.Fatal("no unrevealed mine left after first reveal")
	}

	res, err := g.Reveal(mineIdx/params.Width, mineIdx%params.Width)
	if err != nil {
		t.Fatalf("reveal mine: %v", err)
	}
	if res.Outcome != mines.Lost {
		t.Fatalf("have outcome %s, want %s", res.Outcome, mines.Lost)
	}
	if g.Phase != mines.PhaseLost {
		t.Fatalf("have phase %s, want %s", g.Phase, mines.PhaseLost)
	}

	visible := 0
	for _, v := range g.PlayerView() {
		switch v {
		case mines.ViewExploded, mines.ViewUnflaggedMine, mines.ViewCorrectFlag:
			visible++
		}
	}
	if visible != params.MineCount {
		t.Errorf("%d mines visible after loss, want %d", visible, params.MineCount)
	}
}

func TestTerminalPhaseFreezesBoard(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, err := g.Reveal(1, 1); err != nil { // numbered cell, game running
		t.Fatalf("reveal: %v", err)
	}
	if res, _ := g.Reveal(0, 0); res.Outcome != mines.Lost {
		t.Fatalf("expected a loss, have %s", res.Outcome)
	}

	res, err := g.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal after loss: %v", err)
	}
	if res.Outcome != mines.Ignored {
		t.Errorf("reveal after loss: have %s, want %s", res.Outcome, mines.Ignored)
	}
	if _, accepted, _ := g.ToggleMark(4, 4); accepted {
		t.Error("mark accepted after loss")
	}
	if res, _ := g.ChordReveal(1, 1); res.Outcome != mines.Ignored {
		t.Errorf("chord after loss: have %s, want %s", res.Outcome, mines.Ignored)
	}
	if g.RevealedCount != 2 {
		t.Errorf("frozen board counter moved to %d", g.RevealedCount)
	}
}

func TestChordRevealOpensNeighbors(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, err := g.Reveal(1, 1); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, _, err := g.ToggleMark(0, 0); err != nil {
		t.Fatalf("flag mine: %v", err)
	}
	res, err := g.ChordReveal(1, 1)
	if err != nil {
		t.Fatalf("chord: %v", err)
	}
	if res.Outcome != mines.Won {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Won)
	}
	if g.RevealedCount != 24 {
		t.Errorf("revealed %d cells, want 24", g.RevealedCount)
	}
}

func TestChordMismatchIsHighlightOnly(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, err := g.Reveal(1, 1); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	res, err := g.ChordReveal(1, 1) // no flags placed
	if err != nil {
		t.Fatalf("chord: %v", err)
	}
	if res.Outcome != mines.Ignored {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Ignored)
	}
	if len(res.Changed) != 0 {
		t.Errorf("mismatched chord changed %d cells", len(res.Changed))
	}
	if g.RevealedCount != 1 {
		t.Errorf("mismatched chord bumped counter to %d", g.RevealedCount)
	}
}

func TestChordOnMisplacedFlagHitsMine(t *testing.T) {
	t.Parallel()

	g := cornerMineFixture(t)
	if _, err := g.Reveal(1, 1); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, _, err := g.ToggleMark(0, 1); err != nil { // wrong cell flagged
		t.Fatalf("flag: %v", err)
	}
	res, err := g.ChordReveal(1, 1)
	if err != nil {
		t.Fatalf("chord: %v", err)
	}
	if res.Outcome != mines.Lost {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Lost)
	}
	if cell, _ := g.CellAt(0, 0); !cell.Revealed {
		t.Error("losing chord did not reveal the mine it hit")
	}
}

func TestResign(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(3, 4)))
	if g.Resign() != mines.Ignored {
		t.Error("resign accepted before the first reveal")
	}
	if _, err := g.Reveal(4, 4); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if outcome := g.Resign(); outcome != mines.Lost {
		t.Errorf("have outcome %s, want %s", outcome, mines.Lost)
	}
	if !g.Forfeited {
		t.Error("forfeit not recorded")
	}
	if res, _ := g.Reveal(0, 0); res.Outcome != mines.Ignored {
		t.Error("board accepted a reveal after resigning")
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(5, 6)))
	if _, err := g.Reveal(4, 4); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, _, err := g.ToggleMark(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	g.Reset()

	if g.Phase != mines.PhaseNotStarted {
		t.Errorf("have phase %s, want %s", g.Phase, mines.PhaseNotStarted)
	}
	if g.RevealedCount != 0 || g.MinesPlaced {
		t.Errorf("reset kept counters: revealed=%d placed=%v", g.RevealedCount, g.MinesPlaced)
	}
	for i, c := range g.Cells {
		if c.Mine || c.Revealed || c.Mark != mines.MarkNone {
			t.Fatalf("cell %d not in default state after reset: %+v", i, c)
		}
	}
}

func TestOutOfBoundsRejected(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(7, 8)))
	coords := [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}, {-1, -1}, {9, 9}}
	for _, rc := range coords {
		var oob mines.OutOfBoundsError
		if _, err := g.Reveal(rc[0], rc[1]); !errors.As(err, &oob) {
			t.Errorf("reveal %d:%d: have %v, want OutOfBoundsError", rc[0], rc[1], err)
		}
		if _, _, err := g.ToggleMark(rc[0], rc[1]); !errors.As(err, &oob) {
			t.Errorf("toggle %d:%d: have %v, want OutOfBoundsError", rc[0], rc[1], err)
		}
		if _, err := g.ChordReveal(rc[0], rc[1]); !errors.As(err, &oob) {
			t.Errorf("chord %d:%d: have %v, want OutOfBoundsError", rc[0], rc[1], err)
		}
	}
	if _, err := g.CellAt(9, 9); err == nil {
		t.Error("CellAt accepted out-of-bounds coordinates")
	}
}

func TestMaxDensityFirstRevealWins(t *testing.T) {
	t.Parallel()

	params := mines.GameParams{Width: 5, Height: 5, MineCount: 24}
	g := mustNewGame(t, params, rand.New(rand.NewPCG(9, 10)))
	res, err := g.Reveal(2, 2)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome != mines.Won {
		t.Errorf("have outcome %s, want %s", res.Outcome, mines.Won)
	}
	if cell, _ := g.CellAt(2, 2); cell.Adjacent != 8 {
		t.Errorf("only safe cell counts %d mined neighbors, want 8", cell.Adjacent)
	}
}
