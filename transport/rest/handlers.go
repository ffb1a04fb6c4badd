package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/history"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/usecase"
)

var errBadCell = errors.New("row and col are required")

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session := that.uGame.State(r.Context())
	that.writeJSON(w, http.StatusOK, ResponsePayload{Game: &session})
}

func (that *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	outcome := that.uGame.StartGame(r.Context(), req.Hints)
	that.writeOutcome(w, outcome, nil)
}

func (that *Server) handleResetGame(w http.ResponseWriter, r *http.Request) {
	outcome := that.uGame.ResetGame(r.Context())
	that.writeOutcome(w, outcome, nil)
}

func (that *Server) handleSelectOrMove(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, errBadCell)
		return
	}

	outcome, err := that.uGame.SelectOrMove(r.Context(), entity.Coordinate{Row: *req.Row, Col: *req.Col})
	that.writeOutcome(w, outcome, err)
}

func (that *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, history.Summarize(that.uGame.PastGames(r.Context())))
}

func (that *Server) handleViewPastGame(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	game, err := that.uGame.ViewPastGame(r.Context(), index)
	if err != nil {
		that.writeError(w, statusCode(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, pastGameDetails{PastGame: game, Transcript: game.Transcript()})
}

func (that *Server) writeOutcome(w http.ResponseWriter, outcome *usecase.Outcome, err error) {
	payload := ResponsePayload{Game: &outcome.Game, HistoryError: outcome.HistoryError}

	if outcome.Result != nil {
		payload.Events = outcome.Result.Events
		payload.Status = &outcome.Result.Status
	}

	code := http.StatusOK
	if err != nil {
		code = statusCode(err)
		payload.Error = err.Error()
	}

	that.writeJSON(w, code, payload)
}

func (that *Server) writeError(w http.ResponseWriter, code int, err error) {
	that.writeJSON(w, code, ResponsePayload{Error: err.Error()})
}

func (that *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameIsNotStarted), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrPastGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrCellNotOccupied),
		errors.Is(err, apperror.ErrNoSelection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
