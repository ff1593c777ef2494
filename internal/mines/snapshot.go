package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

// Bytes serializes the full game state: mine positions, per-cell
// revealed/mark/count, phase and counters. The neighbor cache and
// the randomness source are not part of the snapshot.
func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, fmt.Errorf("unable to encode game state: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeGame restores a game from Bytes output. The restored game
// behaves identically to the one serialized; the neighbor cache is
// rebuilt and a randomness source is attached lazily (or via
// SetRand) should the snapshot predate mine placement.
func DecodeGame(data []byte) (*Game, error) {
	var g Game
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return nil, fmt.Errorf("unable to decode game state: %w", err)
	}
	if err := g.GameParams.Validate(); err != nil {
		return nil, err
	}
	if len(g.Cells) != g.Width*g.Height {
		return nil, fmt.Errorf(
			"corrupt game state: %d cells on a %s board", len(g.Cells), g.Seed(),
		)
	}
	g.neighbors = buildNeighbors(g.Width, g.Height)
	return &g, nil
}

func (g *Game) SetRand(rnd *rand.Rand) {
	g.rnd = rnd
}
