package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

const writeWait = 10 * time.Second

// client - one connection. gorilla allows a single concurrent writer,
// so every write goes through send.
type client struct {
	entity.Client

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendView(action string, view entity.View) error {
	return that.send(action, Payload{Client: &that.Client, Table: &view})
}

func (that *client) sendError(action, reason string) error {
	return that.send(actionError, Payload{Error: fmt.Sprintf("%s: %s", action, reason)})
}
