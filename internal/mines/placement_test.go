package mines_test

import (
	"math/rand/v2"
	"testing"

	"github.com/zun-zs/minesweeper/internal/mines"
)

func mineIndexes(g *mines.Game) []int {
	var idxs []int
	for i, c := range g.Cells {
		if c.Mine {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func TestPlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params mines.GameParams
	}{
		{name: "easy", params: mines.Easy},
		{name: "medium", params: mines.Medium},
		{name: "hard", params: mines.Hard},
		{name: "5x5(24)", params: mines.GameParams{Width: 5, Height: 5, MineCount: 24}},
		{name: "50x50(600)", params: mines.GameParams{Width: 50, Height: 50, MineCount: 600}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			params := test.params
			g := mustNewGame(t, params, rand.New(rand.NewPCG(1, 2)))
			row, col := params.Height/2, params.Width/2
			if _, err := g.Reveal(row, col); err != nil {
				t.Fatalf("reveal %d:%d: %v", row, col, err)
			}

			idxs := mineIndexes(g)
			if len(idxs) != params.MineCount {
				t.Errorf("have %d mines, want %d", len(idxs), params.MineCount)
			}
			exclude := row*params.Width + col
			for _, i := range idxs {
				if i == exclude {
					t.Errorf("mine at the first-revealed cell %d", i)
				}
				if i < 0 || i >= params.Width*params.Height {
					t.Errorf("mine index %d outside the board", i)
				}
			}
		})
	}
}

func TestPlacementDeterministic(t *testing.T) {
	t.Parallel()

	layout := func(hi, lo uint64) []int {
		g := mustNewGame(t, mines.Medium, rand.New(rand.NewPCG(hi, lo)))
		if _, err := g.Reveal(8, 8); err != nil {
			t.Fatalf("reveal: %v", err)
		}
		return mineIndexes(g)
	}

	a, b := layout(11, 12), layout(11, 12)
	if len(a) != len(b) {
		t.Fatalf("layouts differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("layouts diverge at %d: %d vs %d", i, a[i], b[i])
		}
	}

	c := layout(13, 14)
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i] != c[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced an identical layout")
	}
}
