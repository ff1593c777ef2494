package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/zun-zs/minesweeper/internal/config"
	"github.com/zun-zs/minesweeper/internal/database"
	"github.com/zun-zs/minesweeper/internal/middleware"
)

func main() {
	dotenvErr := godotenv.Load()

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	if dotenvErr != nil {
		logger.Debug("no .env file loaded", slog.Any("error", dotenvErr))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, _, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		logger.Error("failed to connect and migrate db", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		logger.Error("failed to read jwt config", slog.Any("error", err))
		os.Exit(1)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		logger.Error("failed to read cookies config", slog.Any("error", err))
		os.Exit(1)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("failed to read ws config", slog.Any("error", err))
		os.Exit(1)
	}

	app := &application{
		logger:  logger,
		db:      db,
		cookies: cookies,
		ws:      ws,
		rnd:     createRand(),
	}

	addr := config.Addr()
	server := &http.Server{
		Addr:         addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			app.Router(),
			middleware.Cors(),
			middleware.Logging(logger),
			middleware.RequestId,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
		close(errCh)
	}()

	logger.Info(fmt.Sprintf("minesweeper server listening at http://localhost%s", addr))

	select {
	case <-ctx.Done():
		break
	case err := <-errCh:
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	server.Shutdown(sCtx)
}
