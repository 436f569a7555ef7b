package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

type tableUseCase interface {
	State(ctx context.Context) entity.View
	Place(ctx context.Context, cell int) entity.View
	NewRound(ctx context.Context) entity.View
	ResetScores(ctx context.Context) entity.View
}

type handlers struct {
	logger *slog.Logger
	table  tableUseCase
}

func (that *handlers) getTable(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, that.table.State(r.Context()))
}

// placeMark - out of range cells are legal no-ops, only non-numbers are rejected.
func (that *handlers) placeMark(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		http.Error(w, "cell must be an integer", http.StatusBadRequest)
		return
	}

	that.writeView(w, that.table.Place(r.Context(), cell))
}

func (that *handlers) newRound(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, that.table.NewRound(r.Context()))
}

func (that *handlers) resetScores(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, that.table.ResetScores(r.Context()))
}

func (that *handlers) writeView(w http.ResponseWriter, view entity.View) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(view); err != nil {
		that.logger.Error("failed to encode view", "error", err)
	}
}
