package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-table/internal/apperror"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect", "clientID", c.ID)

	if err := c.sendView(msg.Action, that.table.State(ctx)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("client connected")

	return nil
}

func (that *Server) handleCellClick(ctx context.Context, msg *Message, c *client) error {
	var payload CellPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Cell == nil {
		if sendErr := c.sendError(msg.Action, "cell is required"); sendErr != nil {
			return fmt.Errorf("failed to send error: %w", sendErr)
		}
		return fmt.Errorf("%w: %s", apperror.ErrInvalidPayload, msg.Payload)
	}

	if err := c.sendView(msg.Action, that.table.Place(ctx, *payload.Cell)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleNewRound(ctx context.Context, msg *Message, c *client) error {
	if err := c.sendView(msg.Action, that.table.NewRound(ctx)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleResetScores(ctx context.Context, msg *Message, c *client) error {
	if err := c.sendView(msg.Action, that.table.ResetScores(ctx)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
