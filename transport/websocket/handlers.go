package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/history"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/usecase"
)

var (
	errCellRequired  = errors.New("row and col are required")
	errIndexRequired = errors.New("index is required")
)

func (that *Server) handleGameState(ctx context.Context, c *client, msg *Message) error {
	session := that.uGame.State(ctx)
	return c.send(msg.Action, Payload{Game: &session})
}

func (that *Server) handleGameStart(ctx context.Context, c *client, msg *Message) error {
	var req startRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return that.sendErrorResponse(c, msg.Action, fmt.Errorf("failed to unmarshal payload: %w", err))
		}
	}

	outcome := that.uGame.StartGame(ctx, req.Hints)
	that.broadcast(msg.Action, outcomePayload(outcome))

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, _ *client, msg *Message) error {
	outcome := that.uGame.ResetGame(ctx)
	that.broadcast(msg.Action, outcomePayload(outcome))

	return nil
}

// handleCellClick broadcasts accepted clicks; a refused click is answered to its sender only.
func (that *Server) handleCellClick(ctx context.Context, c *client, msg *Message) error {
	var req cellRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return that.sendErrorResponse(c, msg.Action, fmt.Errorf("failed to unmarshal payload: %w", err))
	}

	if req.Row == nil || req.Col == nil {
		return that.sendErrorResponse(c, msg.Action, errCellRequired)
	}

	outcome, err := that.uGame.SelectOrMove(ctx, entity.Coordinate{Row: *req.Row, Col: *req.Col})
	if err != nil {
		payload := outcomePayload(outcome)
		payload.Error = err.Error()

		return c.send(msg.Action, payload)
	}

	that.broadcast(msg.Action, outcomePayload(outcome))

	return nil
}

func (that *Server) handleHistoryList(ctx context.Context, c *client, msg *Message) error {
	return c.send(msg.Action, Payload{History: history.Summarize(that.uGame.PastGames(ctx))})
}

func (that *Server) handleHistoryView(ctx context.Context, c *client, msg *Message) error {
	var req viewRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return that.sendErrorResponse(c, msg.Action, fmt.Errorf("failed to unmarshal payload: %w", err))
	}

	if req.Index == nil {
		return that.sendErrorResponse(c, msg.Action, errIndexRequired)
	}

	game, err := that.uGame.ViewPastGame(ctx, *req.Index)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	return c.send(msg.Action, Payload{PastGame: &pastGameDetails{PastGame: game, Transcript: game.Transcript()}})
}

func (that *Server) sendErrorResponse(c *client, action string, cause error) error {
	if err := c.send(action, Payload{Error: cause.Error()}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func outcomePayload(outcome *usecase.Outcome) Payload {
	payload := Payload{Game: &outcome.Game, HistoryError: outcome.HistoryError}

	if outcome.Result != nil {
		payload.Events = outcome.Result.Events
		payload.Status = &outcome.Result.Status
	}

	return payload
}
