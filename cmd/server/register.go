package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmaxwell/sweeper/internal/config"
	"github.com/cmaxwell/sweeper/internal/repository"
)

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		app.badRequest(w)
		return
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 { // bcrypt input limit
		app.badRequest(w)
		return
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		app.internalError(w, "unable to hash password", "error", err)
		return
	}

	player, err := app.repo.CreatePlayer(
		r.Context(), repository.CreatePlayerParams{Username: username, PasswordHash: hash},
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			w.WriteHeader(http.StatusConflict)
			app.replyWith(w, map[string]string{"error": "username taken"})
			return
		}
		app.internalError(w, "unable to insert player", "error", err)
		return
	}

	token, err := app.jwt.Sign(
		config.NewPlayerClaims(player.PlayerId, player.Username),
	)
	if err != nil {
		app.internalError(w, "unable to create a jwt token", "error", err)
		return
	}

	if err := app.cookies.Refresh(w, token); err != nil {
		app.internalError(w, "failed to set auth cookies", "error", err)
		return
	}

	app.replyWith(w, map[string]string{"message": "ok"})
}
