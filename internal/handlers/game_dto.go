package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/zun-zs/minesweeper/internal/mines"
	"github.com/zun-zs/minesweeper/internal/repository"
)

type GameMove int

const (
	Open GameMove = iota
	Flag
	Chord
)

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

type CreateNewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

// ParseGameParams resolves board parameters from a query. A preset
// name wins over explicit dimensions; explicit values are clamped
// into the supported range.
func ParseGameParams(src map[string][]string) (mines.GameParams, error) {
	if preset, ok := src["preset"]; ok && len(preset) > 0 {
		params, ok := mines.PresetParams(preset[0])
		if !ok {
			return mines.GameParams{}, fmt.Errorf("unknown preset %q", preset[0])
		}
		return params, nil
	}
	var dto CreateNewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	return mines.GameParams(dto).Clamp(), nil
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&pos, src)
	return pos, err
}

type HighscoreQueryDTO struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
}

// ParseHighscoreFilter builds a highscore filter. Board parameters
// only apply when all three are present.
func ParseHighscoreFilter(src map[string][]string) (repository.HighscoreFilter, error) {
	var dto HighscoreQueryDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return repository.HighscoreFilter{}, err
	}

	filter := repository.HighscoreFilter{Username: dto.Username}
	if dto.Width != nil && dto.Height != nil && dto.MineCount != nil {
		filter.GameParams = &mines.GameParams{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}
	}
	return filter, nil
}

type GameSessionDTO struct {
	GameSessionId string             `json:"game_session_id"`
	Grid          mines.GridView     `json:"grid"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	MineCount     int                `json:"mine_count"`
	Phase         string             `json:"phase"`
	Forfeited     bool               `json:"forfeited"`
	Flags         int                `json:"flags"`
	StartedAt     *int64             `json:"started_at,omitempty"`
	EndedAt       *int64             `json:"ended_at,omitempty"`
	Outcome       string             `json:"outcome,omitempty"`
	Changed       []mines.CellChange `json:"changed,omitempty"`
	Mark          string             `json:"mark,omitempty"`
}

func NewGameSessionDTO(session *repository.GameSession, game *mines.Game) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Grid:          game.PlayerView(),
		Width:         game.Width,
		Height:        game.Height,
		MineCount:     game.MineCount,
		Phase:         game.Phase.String(),
		Forfeited:     game.Forfeited,
		Flags:         game.FlagCount(),
	}
	if session.StartedAt.Valid {
		ms := session.StartedAt.Time.UnixMilli()
		dto.StartedAt = &ms
	}
	if session.EndedAt.Valid {
		ms := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto
}

// SessionSummaryDTO lists a session without its grid, cheap enough
// to build straight from the row.
type SessionSummaryDTO struct {
	GameSessionId string `json:"game_session_id"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	MineCount     int    `json:"mine_count"`
	Phase         string `json:"phase"`
	Forfeited     bool   `json:"forfeited"`
	StartedAt     *int64 `json:"started_at,omitempty"`
	EndedAt       *int64 `json:"ended_at,omitempty"`
}

func NewSessionSummaryDTO(session repository.GameSession) SessionSummaryDTO {
	dto := SessionSummaryDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Width:         session.Width,
		Height:        session.Height,
		MineCount:     session.MineCount,
		Phase:         session.Phase,
		Forfeited:     session.Forfeited,
	}
	if session.StartedAt.Valid {
		ms := session.StartedAt.Time.UnixMilli()
		dto.StartedAt = &ms
	}
	if session.EndedAt.Valid {
		ms := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto
}
