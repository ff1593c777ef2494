package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/zun-zs/minesweeper/internal/mines"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	Width         int
	Height        int
	MineCount     int
	Phase         string
	Forfeited     bool
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	State         []byte
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// Game decodes the stored board state.
func (s *GameSession) Game() (*mines.Game, error) {
	return mines.DecodeGame(s.State)
}

type CreateGameSessionParams struct {
	PlayerId *int64
}

func (p CreateGameSessionParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	return args
}

func (q *Queries) CreateGameSession(
	ctx context.Context, game *mines.Game, params CreateGameSessionParams,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      game.Width,
		"height":     game.Height,
		"mine_count": game.MineCount,
		"phase":      game.Phase.String(),
		"forfeited":  game.Forfeited,
		"state":      state,
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, phase, forfeited, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @phase, @forfeited, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) FetchGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// FetchPlayerGameSessions lists a player's sessions, newest first.
func (q *Queries) FetchPlayerGameSessions(ctx context.Context, playerId int64) ([]GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE player_id = $1 ORDER BY created_at DESC",
		playerId,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Phase     *string
	Forfeited *bool
	StartedAt *time.Time
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Phase != nil {
		parts = append(parts, "phase = @phase")
		args["phase"] = *p.Phase
	}
	if p.Forfeited != nil {
		parts = append(parts, "forfeited = @forfeited")
		args["forfeited"] = *p.Forfeited
	}
	if p.StartedAt != nil {
		parts = append(parts, "started_at = @started_at")
		args["started_at"] = *p.StartedAt
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	if setClause == "" {
		return q.FetchGameSession(ctx, gameSessionId)
	}
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// ResetGameSession stores a cleared board and blanks both timestamps.
func (q *Queries) ResetGameSession(
	ctx context.Context, gameSessionId int64, game *mines.Game,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session
		SET phase = @phase, forfeited = false,
			started_at = NULL, ended_at = NULL, state = @state
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		pgx.NamedArgs{
			"phase":           game.Phase.String(),
			"state":           state,
			"game_session_id": gameSessionId,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// SaveGame writes back a moved game, stamping started_at on the first
// move and ended_at when the game reaches a terminal phase.
func (q *Queries) SaveGame(
	ctx context.Context, gameSessionId int64, game *mines.Game, startedAt, endedAt *time.Time,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	phase := game.Phase.String()
	params := UpdateGameSessionParams{
		Phase:     &phase,
		Forfeited: &game.Forfeited,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		State:     &state,
	}
	return q.UpdateGameSession(ctx, gameSessionId, params)
}
