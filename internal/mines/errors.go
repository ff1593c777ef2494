package mines

import "fmt"

type OutOfBoundsError struct {
	Row, Col      int
	Width, Height int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell %d:%d outside of %dx%d board", e.Row, e.Col, e.Width, e.Height,
	)
}

type InvalidConfigurationError struct {
	GameParams
	Reason string
}

func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid game parameters %s: %s", e.Seed(), e.Reason)
}
