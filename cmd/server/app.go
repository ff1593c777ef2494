package main

import (
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zun-zs/minesweeper/internal/config"
	"github.com/zun-zs/minesweeper/internal/handlers"
	"github.com/zun-zs/minesweeper/internal/middleware"
)

type application struct {
	logger  *slog.Logger
	db      *pgxpool.Pool
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (app *application) Router() *mux.Router {
	game := handlers.NewGameHandler(
		app.logger, app.db, app.cookies, app.ws, app.rnd,
	)
	auth := handlers.NewAuth(app.logger, app.db, app.cookies)

	authenticate := middleware.Auth(app.logger, app.cookies)

	root := mux.NewRouter()
	router := root
	if base := config.BasePath(); base != "" {
		router = root.PathPrefix(base).Subrouter()
	}

	gameRouter := router.PathPrefix("/game").Subrouter()
	gameRouter.Use(mux.MiddlewareFunc(authenticate))
	gameRouter.Methods("GET").Path("/highscores").HandlerFunc(game.Highscores)
	gameRouter.Methods("GET").Path("/mine").HandlerFunc(game.MySessions)
	gameRouter.Methods("GET").Path("/{id}/connect").HandlerFunc(game.ConnectWS)
	gameRouter.Methods("POST").Path("/{id}/move").HandlerFunc(game.Move)
	gameRouter.Methods("POST").Path("/{id}/forfeit").HandlerFunc(game.Forfeit)
	gameRouter.Methods("POST").Path("/{id}/reset").HandlerFunc(game.Reset)
	gameRouter.Methods("GET").Path("/{id}/hint").HandlerFunc(game.Hint)
	gameRouter.Methods("GET").Path("/{id}").HandlerFunc(game.Fetch)
	gameRouter.Methods("POST").Path("").HandlerFunc(game.NewGame)

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Path("/me").Handler(middleware.Wrap(
		http.HandlerFunc(auth.Status), authenticate,
	))
	router.HandleFunc("/login", auth.Login)
	router.HandleFunc("/register", auth.Register)
	router.HandleFunc("/logout", auth.Logout)

	return root
}
