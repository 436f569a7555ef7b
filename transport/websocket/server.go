package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-table/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

const (
	sessionCookie   = "user_session"
	shutdownTimeout = 5 * time.Second
)

type tableUseCase interface {
	State(ctx context.Context) entity.View
	Place(ctx context.Context, cell int) entity.View
	NewRound(ctx context.Context) entity.View
	ResetScores(ctx context.Context) entity.View
}

type Server struct {
	logger   *slog.Logger
	table    tableUseCase
	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, message *Message, c *client) error

	connectionsMutex sync.RWMutex
	connections      map[string]*client
}

func New(logger *slog.Logger, table tableUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		table:  table,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers:    make(map[string]func(context.Context, *Message, *client) error),
		connections: make(map[string]*client),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionNewRound] = server.handleNewRound
	server.handlers[actionResetScores] = server.handleResetScores

	return server
}

// Handler - routes /ws to the upgrade handler.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}

		that.closeConnections()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Notify - broadcasts the new view to every connected client.
func (that *Server) Notify(_ context.Context, view entity.View) error {
	log := that.logger.With("method", "Notify")

	that.connectionsMutex.RLock()
	clients := make([]*client, 0, len(that.connections))
	for _, c := range that.connections {
		clients = append(clients, c)
	}
	that.connectionsMutex.RUnlock()

	var errs []error
	for _, c := range clients {
		if err := c.sendView(actionTableUpdate, view); err != nil {
			log.Warn("failed to send table update", "clientID", c.ID, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	header := http.Header{}
	session := that.setSessionCookie(header, req, log)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		Client: entity.Client{ID: uuid.NewString(), Session: session},
		conn:   conn,
	}

	that.connectionsMutex.Lock()
	that.connections[c.ID] = c
	that.connectionsMutex.Unlock()

	defer func() {
		that.connectionsMutex.Lock()
		delete(that.connections, c.ID)
		that.connectionsMutex.Unlock()

		conn.Close()
	}()

	log.Info("WebSocket connection established", "clientID", c.ID)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "clientID", c.ID, "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "clientID", c.ID)

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if isDecodeError(err) {
				log.Error("failed to unmarshal message", "error", err)
				if sendErr := c.sendError("", "malformed message"); sendErr != nil {
					return fmt.Errorf("failed to send error: %w", sendErr)
				}
				continue
			}

			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := c.sendError(message.Action, apperror.ErrUnknownAction.Error()); err != nil {
				return fmt.Errorf("failed to send error: %w", err)
			}
			continue
		}

		if err := handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// setSessionCookie - reuses the user session or adds a new one to the handshake response.
func (that *Server) setSessionCookie(header http.Header, req *http.Request, log *slog.Logger) string {
	cookie, err := req.Cookie(sessionCookie)
	if err == nil {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:    sessionCookie,
		Value:   uuid.NewString(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}
	header.Add("Set-Cookie", cookie.String())
	log.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (that *Server) closeConnections() {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	for _, c := range that.connections {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
	}
}
