package mines

type Mark uint8

const (
	MarkNone Mark = iota
	MarkFlag
	MarkQuestion
)

func (m Mark) String() string {
	switch m {
	case MarkFlag:
		return "flag"
	case MarkQuestion:
		return "question"
	default:
		return "none"
	}
}

func (m Mark) next() Mark {
	switch m {
	case MarkNone:
		return MarkFlag
	case MarkFlag:
		return MarkQuestion
	default:
		return MarkNone
	}
}

// adjacentUnknown marks a mined-neighbor count that has not been
// computed yet. Counts are cached on first reveal.
const adjacentUnknown int8 = -1

type Cell struct {
	Mine     bool
	Revealed bool
	Mark     Mark
	Adjacent int8
}
