package solver

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/zun-zs/minesweeper/internal/mines"
)

var Log = logrus.New()

type Action uint8

const (
	ActionOpen Action = iota
	ActionFlag
)

func (a Action) String() string {
	if a == ActionFlag {
		return "flag"
	}
	return "open"
}

func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

type Hint struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Action Action `json:"action"`
}

// Solver derives safe moves from the player-visible grid alone. It
// never touches the game; callers apply (or ignore) the hints.
type Solver struct {
	view          mines.GridView
	width, height int
	inspectQueue  deque.Deque[int]
}

func New(view mines.GridView, params mines.GameParams) *Solver {
	return &Solver{
		view:   append(mines.GridView(nil), view...),
		width:  params.Width,
		height: params.Height,
	}
}

func (s *Solver) neighbors(i int) []int {
	row, col := i/s.width, i%s.width
	n := make([]int, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= s.height || c < 0 || c >= s.width {
				continue
			}
			n = append(n, r*s.width+c)
		}
	}
	return n
}

func (s *Solver) unknown(i int) bool {
	return s.view[i] == mines.ViewUnknown || s.view[i] == mines.ViewQuestion
}

// Hints runs single-point deductions to a fixed point. A number with
// all its mines flagged opens its remaining unknowns; a number whose
// unknowns exactly fill its remaining count flags them. Flag
// deductions are applied to a scratch copy of the view and the
// affected numbers are queued for another look, so chains of forced
// flags resolve in one call.
func (s *Solver) Hints() []Hint {
	var hints []Hint
	hinted := make(map[int]Action)

	for i, v := range s.view {
		if 0 <= v && v <= 8 {
			s.inspectQueue.PushBack(i)
		}
	}

	for s.inspectQueue.Len() > 0 {
		i := s.inspectQueue.PopFront()
		v := s.view[i]
		if v < 0 || v > 8 {
			continue
		}

		var unknowns []int
		flags := 0
		for _, j := range s.neighbors(i) {
			switch {
			case s.unknown(j):
				unknowns = append(unknowns, j)
			case s.view[j] == mines.ViewFlagged:
				flags++
			}
		}
		if len(unknowns) == 0 {
			continue
		}

		remaining := int(v) - flags
		switch {
		case remaining == 0:
			for _, j := range unknowns {
				if _, ok := hinted[j]; ok {
					continue
				}
				hinted[j] = ActionOpen
				hints = append(hints, Hint{j / s.width, j % s.width, ActionOpen})
			}
		case remaining == len(unknowns):
			for _, j := range unknowns {
				if _, ok := hinted[j]; ok {
					continue
				}
				hinted[j] = ActionFlag
				hints = append(hints, Hint{j / s.width, j % s.width, ActionFlag})
				s.view[j] = mines.ViewFlagged
				for _, k := range s.neighbors(j) {
					if 0 <= s.view[k] && s.view[k] <= 8 {
						s.inspectQueue.PushBack(k)
					}
				}
			}
		}
	}

	Log.WithFields(logrus.Fields{
		"inspected": s.width * s.height,
		"hints":     len(hints),
	}).Debug("solver pass complete")

	return hints
}
