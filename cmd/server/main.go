package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/cmaxwell/sweeper/internal/config"
	"github.com/cmaxwell/sweeper/internal/database"
	"github.com/cmaxwell/sweeper/internal/middleware"
	"github.com/cmaxwell/sweeper/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, migrator, err := database.ConnectAndMigrate(ctx, migrations)
	if err != nil {
		logger.Error("failed to connect and migrate db", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	defer migrator.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		logger.Error("failed to load jwt config", "error", err)
		os.Exit(1)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		logger.Error("failed to load cookies config", "error", err)
		os.Exit(1)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("failed to load ws config", "error", err)
		os.Exit(1)
	}

	basePath := config.BasePath()
	port := config.Port()

	app := &application{
		logger:  logger,
		repo:    repository.New(db),
		ws:      ws,
		jwt:     jwt,
		cookies: cookies,
		rnd:     createRand(),
	}
	server := &http.Server{
		Addr: port,
		Handler: middleware.Wrap(
			app.ServeMux(),
			middleware.Auth(logger, cookies),
			middleware.Cors(),
			middleware.Logging(logger),
		),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		sCtx, sCancel := context.WithTimeout(context.Background(), time.Second*15)
		defer sCancel()
		return server.Shutdown(sCtx)
	})

	logger.Info(
		"server online",
		slog.String("port", port),
		slog.String("base path", basePath),
	)

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
