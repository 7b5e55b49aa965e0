package main

import (
	"log/slog"
	"net/http"

	"github.com/cmaxwell/sweeper/internal/repository"
)

func (app *application) handleRecords(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w)
		return
	}

	dto, err := ParseRecordsDTO(r.Form)
	if err != nil {
		app.badRequest(w)
		return
	}

	records, err := app.repo.GetSolveRecords(r.Context(), repository.SolveRecordFilter{
		Username:  dto.Username,
		RowCount:  dto.Rows,
		ColCount:  dto.Cols,
		MineCount: dto.MineCount,
	})
	if err != nil {
		app.internalError(w, "could not fetch records from db", slog.Any("error", err))
		return
	}

	app.replyWith(w, records)
}
