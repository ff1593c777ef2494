package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the player-visible state of one cell.
type CellView int8

const (
	ViewQuestion CellView = -3
	ViewUnknown  CellView = -2
	ViewFlagged  CellView = -1
	// 0 to 8 mean the cell is open with that many mined neighbors.
	ViewCorrectFlag   CellView = 64
	ViewExploded      CellView = 65
	ViewWrongFlag     CellView = 66
	ViewUnflaggedMine CellView = 67
)

func (v CellView) String() string {
	switch {
	case v == ViewQuestion:
		return "?"
	case v == ViewUnknown:
		return "-"
	case v == ViewFlagged:
		return "F"
	case v == 0:
		return "."
	case 1 <= v && v <= 8:
		return strconv.Itoa(int(v))
	case v == ViewCorrectFlag:
		return "F"
	case v == ViewExploded:
		return "X"
	case v == ViewWrongFlag:
		return "x"
	case v == ViewUnflaggedMine:
		return "*"
	}
	return "!"
}

type GridView []CellView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for row := range len(g) / width {
		for col := range width {
			i := row*width + col
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// PlayerView renders the board as the player may see it. While the
// game runs only revealed counts and marks show; once it ends every
// mine and misplaced flag becomes visible. Revealed bits and the
// revealed counter are left untouched.
func (g *Game) PlayerView() GridView {
	view := make(GridView, len(g.Cells))
	terminal := g.Phase.Terminal()
	for i, c := range g.Cells {
		switch {
		case c.Revealed && c.Mine:
			view[i] = ViewExploded
		case c.Revealed:
			view[i] = CellView(c.Adjacent)
		case terminal && c.Mine && c.Mark == MarkFlag:
			view[i] = ViewCorrectFlag
		case terminal && c.Mine:
			view[i] = ViewUnflaggedMine
		case terminal && c.Mark == MarkFlag:
			view[i] = ViewWrongFlag
		case c.Mark == MarkFlag:
			view[i] = ViewFlagged
		case c.Mark == MarkQuestion:
			view[i] = ViewQuestion
		default:
			view[i] = ViewUnknown
		}
	}
	return view
}

func (g *Game) String() string {
	return fmt.Sprintf("%s %s", g.Seed(), g.Phase)
}
