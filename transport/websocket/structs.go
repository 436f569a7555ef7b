package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

const (
	actionConnect     = "connect"
	actionCellClick   = "cell:click"
	actionNewRound    = "round:new"
	actionResetScores = "scores:reset"
	actionTableUpdate = "table:update"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Client *entity.Client `json:"client,omitempty"`
	Table  *entity.View   `json:"table,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type CellPayload struct {
	Cell *int `json:"cell"`
}
