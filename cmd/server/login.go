package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmaxwell/sweeper/internal/config"
)

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
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

	player, err := app.repo.FetchPlayer(r.Context(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			app.unauthorized(w)
		} else {
			app.internalError(w, "could not fetch player from db", "error", err)
		}
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			app.logger.Error("bcrypt compare error", "error", err)
		}
		app.unauthorized(w)
		return
	}

	token, err := app.jwt.Sign(
		config.NewPlayerClaims(player.PlayerId, player.Username),
	)
	if err != nil {
		app.internalError(w, "failed to sign player claims", "error", err)
		return
	}

	if err := app.cookies.Refresh(w, token); err != nil {
		app.internalError(w, "failed to set auth cookies", "error", err)
		return
	}

	app.replyWith(w, map[string]string{"message": "ok"})
}
