package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/ReneKroon/ttlcache"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zun-zs/minesweeper/internal/config"
	"github.com/zun-zs/minesweeper/internal/middleware"
	"github.com/zun-zs/minesweeper/internal/mines"
	"github.com/zun-zs/minesweeper/internal/repository"
	"github.com/zun-zs/minesweeper/internal/solver"
)

const gameCacheTTL = 5 * time.Minute

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	games   *ttlcache.Cache
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	games := ttlcache.NewCache()
	games.SetTTL(gameCacheTTL)

	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		games:   games,
		rnd:     rnd,
	}
}

func (g *GameHandler) sessionId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// cachedGame returns a decoded board for read-only use. Boards in the
// cache are never mutated in place; writers decode their own copy and
// swap the cache entry after saving.
func (g *GameHandler) cachedGame(session *repository.GameSession) (*mines.Game, error) {
	key := strconv.FormatInt(session.GameSessionId, 10)
	if cached, ok := g.games.Get(key); ok {
		if game, ok := cached.(*mines.Game); ok {
			return game, nil
		}
	}
	game, err := session.Game()
	if err != nil {
		return nil, err
	}
	g.games.SetWithTTL(key, game, gameCacheTTL)
	return game, nil
}

func (g *GameHandler) cacheGame(gameSessionId int64, game *mines.Game) {
	g.games.SetWithTTL(strconv.FormatInt(gameSessionId, 10), game, gameCacheTTL)
}

// NewGame creates a session with an untouched board. Mines are placed
// by the engine on the first open move, never here.
func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game, err := mines.NewGame(params, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	createParams := repository.CreateGameSessionParams{}
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		g.logger.Debug("creating player session", slog.Int64("playerId", claims.PlayerId))
		createParams.PlayerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateGameSession(r.Context(), game, createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", slog.Any("error", err))
		return
	}

	g.cacheGame(session.GameSessionId, game)
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionId, err := g.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", slog.Any("error", err))
		return
	}

	game, err := g.cachedGame(session)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

// MySessions lists the authenticated player's games.
func (g *GameHandler) MySessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	sessions, err := g.repo.FetchPlayerGameSessions(r.Context(), claims.PlayerId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to list sessions", slog.Any("error", err))
		return
	}

	dtos := make([]SessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		dtos = append(dtos, NewSessionSummaryDTO(session))
	}
	sendJSONOrLog(w, g.logger, dtos)
}

// Move applies one move to a session. Ignored moves still reply with
// the session so clients repaint from an authoritative state.
func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	sessionId, err := g.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", slog.Any("error", err))
		return
	}

	// Writers decode fresh instead of touching the shared cache.
	game, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", slog.Any("error", err))
		return
	}

	if !game.InBounds(pos.Row, pos.Col) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(
			mines.OutOfBoundsError{Row: pos.Row, Col: pos.Col, Width: game.Width, Height: game.Height},
		))
		return
	}

	phaseBefore := game.Phase

	var (
		result mines.MoveResult
		mark   mines.Mark
	)
	switch move {
	case Open:
		result, err = game.Reveal(pos.Row, pos.Col)
	case Flag:
		var accepted bool
		mark, accepted, err = game.ToggleMark(pos.Row, pos.Col)
		if accepted {
			result.Outcome = mines.Continued
		}
	case Chord:
		result, err = game.ChordReveal(pos.Row, pos.Col)
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	var startedAt, endedAt *time.Time
	if phaseBefore == mines.PhaseNotStarted && game.Phase != mines.PhaseNotStarted {
		now := time.Now().UTC()
		startedAt = &now
	}
	if game.Phase.Terminal() && !session.EndedAt.Valid {
		now := time.Now().UTC()
		endedAt = &now
	}

	session, err = g.repo.SaveGame(r.Context(), sessionId, game, startedAt, endedAt)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", slog.Any("error", err))
		return
	}
	g.cacheGame(sessionId, game)

	dto := NewGameSessionDTO(session, game)
	dto.Outcome = result.Outcome.String()
	dto.Changed = result.Changed
	if move == Flag {
		dto.Mark = mark.String()
	}
	sendJSONOrLog(w, g.logger, dto)
}

// Forfeit resigns a running game.
func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	sessionId, err := g.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", slog.Any("error", err))
		return
	}

	game, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", slog.Any("error", err))
		return
	}

	outcome := game.Resign()

	var endedAt *time.Time
	if outcome == mines.Lost && !session.EndedAt.Valid {
		now := time.Now().UTC()
		endedAt = &now
	}

	session, err = g.repo.SaveGame(r.Context(), sessionId, game, nil, endedAt)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", slog.Any("error", err))
		return
	}
	g.cacheGame(sessionId, game)

	dto := NewGameSessionDTO(session, game)
	dto.Outcome = outcome.String()
	sendJSONOrLog(w, g.logger, dto)
}

// Reset returns a session to its pre-first-move state.
func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionId, err := g.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", slog.Any("error", err))
		return
	}

	game, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", slog.Any("error", err))
		return
	}

	game.Reset()

	session, err = g.repo.ResetGameSession(r.Context(), sessionId, game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to reset session in db", slog.Any("error", err))
		return
	}
	g.cacheGame(sessionId, game)

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

// Hint derives forced moves from the player-visible grid.
func (g *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	sessionId, err := g.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", slog.Any("error", err))
		return
	}

	game, err := g.cachedGame(session)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", slog.Any("error", err))
		return
	}

	hints := []solver.Hint{}
	if !game.Phase.Terminal() {
		hints = solver.New(game.PlayerView(), game.GameParams).Hints()
	}
	sendJSONOrLog(w, g.logger, map[string][]solver.Hint{"hints": hints})
}

// Highscores lists won games ordered by playtime, optionally filtered
// by username and board parameters.
func (g *GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseHighscoreFilter(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, g.logger, highscores)
}
