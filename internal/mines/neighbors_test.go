package mines

import "testing"

func TestNeighborCounts(t *testing.T) {
	t.Parallel()

	const width, height = 5, 4
	neighbors := buildNeighbors(width, height)

	tests := []struct {
		name     string
		row, col int
		want     int
	}{
		{name: "top left corner", row: 0, col: 0, want: 3},
		{name: "top right corner", row: 0, col: 4, want: 3},
		{name: "bottom left corner", row: 3, col: 0, want: 3},
		{name: "bottom right corner", row: 3, col: 4, want: 3},
		{name: "top edge", row: 0, col: 2, want: 5},
		{name: "left edge", row: 1, col: 0, want: 5},
		{name: "interior", row: 1, col: 2, want: 8},
		{name: "interior deep", row: 2, col: 3, want: 8},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := test.row*width + test.col
			if have := len(neighbors[i]); have != test.want {
				t.Errorf("cell %d:%d has %d neighbors, want %d",
					test.row, test.col, have, test.want)
			}
		})
	}
}

func TestNeighborsSymmetric(t *testing.T) {
	t.Parallel()

	const width, height = 7, 6
	neighbors := buildNeighbors(width, height)

	contains := func(s []int, v int) bool {
		for _, x := range s {
			if x == v {
				return true
			}
		}
		return false
	}

	for i := range neighbors {
		for _, j := range neighbors[i] {
			if j < 0 || j >= width*height {
				t.Fatalf("cell %d lists out-of-board neighbor %d", i, j)
			}
			if j == i {
				t.Fatalf("cell %d lists itself as a neighbor", i)
			}
			if !contains(neighbors[j], i) {
				t.Fatalf("neighborhood not symmetric: %d -> %d", i, j)
			}
		}
	}
}

func TestAdjacentMinesCachedOnce(t *testing.T) {
	t.Parallel()

	g, err := NewGameWithMines(
		GameParams{Width: 5, Height: 5, MineCount: 2}, []int{0, 6},
	)
	if err != nil {
		t.Fatalf("could not create fixture: %v", err)
	}

	if g.Cells[1].Adjacent != adjacentUnknown {
		t.Fatal("count computed before first use")
	}
	if have := g.adjacentMines(1); have != 2 {
		t.Errorf("cell 1 counts %d mined neighbors, want 2", have)
	}
	if g.Cells[1].Adjacent != 2 {
		t.Error("count not cached after first use")
	}
	if have := g.adjacentMines(24); have != 0 {
		t.Errorf("far corner counts %d mined neighbors, want 0", have)
	}
}
