package entity

// Client - a connected websocket peer driving the table.
type Client struct {
	ID      string `json:"id"`
	Session string `json:"session,omitempty"`
}
