package main

import (
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/cmaxwell/sweeper/internal/config"
	"github.com/cmaxwell/sweeper/internal/handlers"
	"github.com/cmaxwell/sweeper/internal/middleware"
	"github.com/cmaxwell/sweeper/internal/repository"
)

type application struct {
	logger  *slog.Logger
	repo    *repository.Queries
	ws      *config.WebSocket
	jwt     *config.JWT
	cookies *config.Cookies
	rnd     *rand.Rand
}

func (app *application) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /puzzle", app.handleNewPuzzle)
	mux.HandleFunc("GET /puzzle/{id}", app.handleFetchPuzzle)
	mux.HandleFunc("POST /puzzle/{id}/solve", app.handleSolvePuzzle)
	mux.HandleFunc("GET /puzzle/{id}/live", app.handleLiveSolve)
	mux.HandleFunc("GET /records", app.handleRecords)
	mux.HandleFunc("POST /register", app.handleRegister)
	mux.HandleFunc("POST /login", app.handleLogin)
	mux.HandleFunc("POST /logout", app.handleLogout)
	return mux
}

func (app *application) authenticatedPlayerId(r *http.Request) *int64 {
	claims, ok := middleware.PlayerClaims(r)
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

func (app *application) badRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("your request is invalid"))
}

func (app *application) unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("you are not allowed to execute this operation"))
}

func (app *application) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("not found :("))
}

func (app *application) internalError(w http.ResponseWriter, msg string, args ...any) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("internal error"))
	app.logger.Error(msg, args...)
}

func (app *application) replyWith(w http.ResponseWriter, v any) {
	handlers.SendJSONOrLog(w, app.logger, v)
}
