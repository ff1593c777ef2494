package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/zun-zs/minesweeper/internal/mines"
	"github.com/zun-zs/minesweeper/internal/solver"
)

// Maps known commands to number of arguments.
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
	"h": 0,
	"q": 0,
}

type wsCommand struct {
	op       string
	row, col int
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parseWsCommand(line string) (wsCommand, error) {
	parts := strings.Split(line, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return wsCommand{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return wsCommand{}, errors.New("invalid number of arguments")
	}
	cmd := wsCommand{op: parts[0]}
	if nargs == 2 {
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return wsCommand{}, err
		}
		cmd.row, cmd.col = row, col
	}
	return cmd, nil
}

// ConnectWS drives one session over a websocket. Text frames carry
// newline-separated commands: "o ROW COL" opens, "f ROW COL" cycles a
// mark, "c ROW COL" chords, "r" resets, "g" requests the session,
// "h" requests hints and "q" closes. Mutating commands persist once
// per frame; every frame ends with a session reply, with a hints
// message before it when the frame contained "h".
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
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

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				g.logger.Warn("websocket read", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var (
			outcome            mines.Outcome
			startedAt, endedAt *time.Time
			moved              bool
			quit               bool
		)
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			cmd, err := parseWsCommand(line)
			if err != nil {
				g.logger.Error("websocket command", slog.Any("error", err))
				conn.WriteJSON(wrapError(err))
				return
			}

			phaseBefore := game.Phase
			switch cmd.op {
			case "o":
				var result mines.MoveResult
				result, err = game.Reveal(cmd.row, cmd.col)
				outcome = result.Outcome
				moved = true
			case "f":
				var accepted bool
				_, accepted, err = game.ToggleMark(cmd.row, cmd.col)
				outcome = mines.Ignored
				if accepted {
					outcome = mines.Continued
				}
				moved = true
			case "c":
				var result mines.MoveResult
				result, err = game.ChordReveal(cmd.row, cmd.col)
				outcome = result.Outcome
				moved = true
			case "r":
				game.Reset()
				session, err = g.repo.ResetGameSession(r.Context(), sessionId, game)
				startedAt, endedAt = nil, nil
				outcome = mines.Continued
				moved = false
			case "g":
			case "h":
				hints := []solver.Hint{}
				if !game.Phase.Terminal() {
					hints = solver.New(game.PlayerView(), game.GameParams).Hints()
				}
				err = conn.WriteJSON(map[string][]solver.Hint{"hints": hints})
			case "q":
				quit = true
			}
			if err != nil {
				g.logger.Error("websocket command", slog.Any("error", err))
				conn.WriteJSON(wrapError(err))
				return
			}

			if phaseBefore == mines.PhaseNotStarted && game.Phase != mines.PhaseNotStarted {
				now := time.Now().UTC()
				startedAt = &now
			}
			if game.Phase.Terminal() && !session.EndedAt.Valid && endedAt == nil {
				now := time.Now().UTC()
				endedAt = &now
			}
			if quit {
				break
			}
		}

		if moved {
			session, err = g.repo.SaveGame(r.Context(), sessionId, game, startedAt, endedAt)
			if err != nil {
				g.logger.Error("unable to update session in db", slog.Any("error", err))
				conn.WriteJSON(wrapError(errors.New("unable to save game")))
				return
			}
		}
		// The loop keeps mutating game, so cache a fresh decode
		// instead of sharing the live board with readers.
		if fresh, err := session.Game(); err == nil {
			g.cacheGame(sessionId, fresh)
		}

		dto := NewGameSessionDTO(session, game)
		dto.Outcome = outcome.String()
		if err := conn.WriteJSON(dto); err != nil {
			g.logger.Error("websocket write", slog.Any("error", err))
			return
		}

		if quit {
			conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			return
		}
	}
}
