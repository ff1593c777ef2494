package mines

import (
	"fmt"
	"strings"
)

const (
	MinBoardSize = 5
	MaxBoardSize = 50
)

type GameParams struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

var (
	Easy   = GameParams{Width: 9, Height: 9, MineCount: 10}
	Medium = GameParams{Width: 16, Height: 16, MineCount: 40}
	Hard   = GameParams{Width: 30, Height: 16, MineCount: 99}
)

func PresetParams(name string) (GameParams, bool) {
	switch strings.ToLower(name) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return GameParams{}, false
}

func (p GameParams) Validate() error {
	if p.Width < MinBoardSize || p.Width > MaxBoardSize {
		return InvalidConfigurationError{p, "width out of range"}
	}
	if p.Height < MinBoardSize || p.Height > MaxBoardSize {
		return InvalidConfigurationError{p, "height out of range"}
	}
	if p.MineCount < 1 || p.MineCount > p.Width*p.Height-1 {
		return InvalidConfigurationError{p, "mine count out of range"}
	}
	return nil
}

// Clamp forces parameters into the valid range. UI boundaries clamp
// user input; the engine itself rejects invalid values.
func (p GameParams) Clamp() GameParams {
	p.Width = min(max(p.Width, MinBoardSize), MaxBoardSize)
	p.Height = min(max(p.Height, MinBoardSize), MaxBoardSize)
	p.MineCount = min(max(p.MineCount, 1), p.Width*p.Height-1)
	return p
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%dx%d/%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (p GameParams, err error) {
	if _, err = fmt.Sscanf(
		seed, "%dx%d/%d", &p.Width, &p.Height, &p.MineCount,
	); err != nil {
		return p, fmt.Errorf("unable to parse seed %q: %w", seed, err)
	}
	return p, p.Validate()
}

func (p GameParams) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}
