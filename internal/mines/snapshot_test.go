package mines_test

import (
	"math/rand/v2"
	"testing"

	"github.com/zun-zs/minesweeper/internal/mines"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	g := mustNewGame(t, params, rand.New(rand.NewPCG(21, 22)))
	if _, err := g.Reveal(4, 4); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, _, err := g.ToggleMark(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	data, err := g.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored, err := mines.DecodeGame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if restored.Phase != g.Phase {
		t.Errorf("have phase %s, want %s", restored.Phase, g.Phase)
	}
	if restored.RevealedCount != g.RevealedCount {
		t.Errorf("have %d revealed, want %d", restored.RevealedCount, g.RevealedCount)
	}
	if restored.GameParams != g.GameParams {
		t.Errorf("have params %+v, want %+v", restored.GameParams, g.GameParams)
	}
	for i := range g.Cells {
		if restored.Cells[i] != g.Cells[i] {
			t.Fatalf("cell %d differs: %+v vs %+v", i, restored.Cells[i], g.Cells[i])
		}
	}
}

func TestSnapshotRestoredGameBehavesIdentically(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Medium, rand.New(rand.NewPCG(23, 24)))
	if _, err := g.Reveal(8, 8); err != nil {
		t.Fatalf("reveal: %v", err)
	}

	data, err := g.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored, err := mines.DecodeGame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// drive both copies with the same safe moves
	for i, c := range g.Cells {
		if c.Mine || c.Revealed {
			continue
		}
		row, col := i/g.Width, i%g.Width
		a, err := g.Reveal(row, col)
		if err != nil {
			t.Fatalf("reveal original %d:%d: %v", row, col, err)
		}
		b, err := restored.Reveal(row, col)
		if err != nil {
			t.Fatalf("reveal restored %d:%d: %v", row, col, err)
		}
		if a.Outcome != b.Outcome {
			t.Fatalf("outcomes diverge at %d:%d: %s vs %s", row, col, a.Outcome, b.Outcome)
		}
		if len(a.Changed) != len(b.Changed) {
			t.Fatalf("deltas diverge at %d:%d: %d vs %d cells",
				row, col, len(a.Changed), len(b.Changed))
		}
		if g.RevealedCount != restored.RevealedCount {
			t.Fatalf("counters diverge at %d:%d: %d vs %d",
				row, col, g.RevealedCount, restored.RevealedCount)
		}
		if g.Phase.Terminal() {
			break
		}
	}

	va, vb := g.PlayerView(), restored.PlayerView()
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("views diverge at cell %d: %d vs %d", i, va[i], vb[i])
		}
	}
}

func TestSnapshotBeforeFirstReveal(t *testing.T) {
	t.Parallel()

	g := mustNewGame(t, mines.Easy, rand.New(rand.NewPCG(25, 26)))
	data, err := g.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored, err := mines.DecodeGame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restored.Phase != mines.PhaseNotStarted || restored.MinesPlaced {
		t.Fatal("fresh snapshot did not restore to a fresh game")
	}

	// no randomness source travels with the snapshot; the first
	// reveal must still place mines and stay safe
	res, err := restored.Reveal(4, 4)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if res.Outcome == mines.Lost {
		t.Error("first reveal after restore hit a mine")
	}
	if !restored.MinesPlaced {
		t.Error("first reveal after restore placed no mines")
	}
}

func TestDecodeGameRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := mines.DecodeGame([]byte("not a snapshot")); err == nil {
		t.Error("garbage accepted")
	}
	if _, err := mines.DecodeGame(nil); err == nil {
		t.Error("empty snapshot accepted")
	}
}
