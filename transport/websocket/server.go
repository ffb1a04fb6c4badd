package websocket

import (
	"bufio"
	"context"
	"crypto/sha1" //nolint: gosec // required by the websocket handshake
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/solitaire"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/usecase"
)

const (
	handshakeGUID       = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"
	defaultWriteTimeout = 10 * time.Second
)

type uGame interface {
	StartGame(ctx context.Context, withHints bool) *usecase.Outcome
	ResetGame(ctx context.Context) *usecase.Outcome
	SelectOrMove(ctx context.Context, coord entity.Coordinate) (*usecase.Outcome, error)
	State(ctx context.Context) solitaire.Session

	PastGames(ctx context.Context) []entity.PastGame
	ViewPastGame(ctx context.Context, index int) (entity.PastGame, error)
}

type handler func(ctx context.Context, c *client, message *Message) error

// Server pushes game events to every connected client; all clients watch the same game.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	handlers map[string]handler

	clientsMutex sync.Mutex
	clients      map[*client]struct{}
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		handlers: make(map[string]handler),
		clients:  make(map[*client]struct{}),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameStart] = server.handleGameStart
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionHistoryList] = server.handleHistoryList
	server.handlers[actionHistoryView] = server.handleHistoryView

	return server
}

// ServeHTTP upgrades the connection to WebSocket and serves it until the peer goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "request_id", chimw.GetReqID(req.Context()))

	key := req.Header.Get("Sec-WebSocket-Key")
	if !strings.EqualFold(req.Header.Get("Upgrade"), "websocket") || key == "" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	// the http.Server timeouts must not apply to a long-lived connection
	_ = conn.SetDeadline(time.Time{})

	handshake := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + acceptKey(key) + "\r\n\r\n"

	if _, err = bufrw.WriteString(handshake); err == nil {
		err = bufrw.Flush()
	}

	if err != nil {
		log.Error("failed to complete handshake", "error", err)
		return
	}

	c := newClient(conn, bufrw)
	that.register(c)
	defer that.unregister(c)

	log.Info("WebSocket connection established")

	err = that.handleMessages(req.Context(), c)

	switch {
	case errors.Is(err, ErrConnectionClosed), errors.Is(err, net.ErrClosed), errors.Is(err, io.EOF):
		log.Info("WebSocket connection closed")
	case errors.Is(err, ErrProtocol):
		log.Warn("WebSocket connection failed", "error", err)
	case err != nil:
		log.Error("error handling messages", "error", err)
	}
}

// Shutdown closes every open connection.
func (that *Server) Shutdown() {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	for c := range that.clients {
		_ = c.conn.Close()
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		data, err := c.readMessage()
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = c.send(actionError, Payload{Error: "message must be a JSON object with an action"}); err != nil {
				return err
			}

			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = c.send(message.Action, Payload{Error: fmt.Sprintf("unknown action %q", message.Action)}); err != nil {
				return err
			}

			continue
		}

		if err = handle(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[c] = struct{}{}
}

func (that *Server) unregister(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	delete(that.clients, c)
}

// broadcast sends to every client. A failing or stalled client is only logged once its write
// deadline passes; its reader loop will drop it.
func (that *Server) broadcast(action string, payload Payload) {
	that.clientsMutex.Lock()
	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}
	that.clientsMutex.Unlock()

	for _, c := range clients {
		if err := c.send(action, payload); err != nil {
			that.logger.Warn("failed to broadcast", "action", action, "error", err)
		}
	}
}

func acceptKey(key string) string {
	hash := sha1.Sum([]byte(key + handshakeGUID)) //nolint: gosec // required by the websocket handshake
	return base64.StdEncoding.EncodeToString(hash[:])
}

type client struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMutex   sync.Mutex
	writer       *bufio.Writer
	writeTimeout time.Duration
}

func newClient(conn net.Conn, bufrw *bufio.ReadWriter) *client {
	return &client{
		conn:         conn,
		reader:       bufrw.Reader,
		writer:       bufrw.Writer,
		writeTimeout: defaultWriteTimeout,
	}
}

func (that *client) write(f frame) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(that.writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	return writeFrame(that.writer, f)
}

// fail closes the connection with a protocol error status and returns cause.
func (that *client) fail(cause error) error {
	_ = that.write(frame{fin: true, opCode: opClose, payload: closePayload(closeProtocolError)})
	return cause
}

func (that *client) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return that.write(frame{fin: true, opCode: opText, payload: response})
}

// readMessage returns the next complete data message, answering control frames on the way.
// Client frames must be masked and fragments must arrive in order, anything else fails the connection.
func (that *client) readMessage() ([]byte, error) {
	var (
		message    []byte
		fragmented bool
	)

	for {
		f, err := readFrame(that.reader)
		if err != nil {
			return nil, err
		}

		if f.mask == nil {
			return nil, that.fail(fmt.Errorf("%w: client frame is not masked", ErrProtocol))
		}

		switch f.opCode {
		case opClose, opPing, opPong:
			if !f.fin || len(f.payload) > maxControlPayload {
				return nil, that.fail(fmt.Errorf("%w: malformed control frame %#x", ErrProtocol, f.opCode))
			}
		}

		switch f.opCode {
		case opClose:
			if len(f.payload) > 2 {
				f.payload = f.payload[:2]
			}

			_ = that.write(frame{fin: true, opCode: opClose, payload: f.payload})

			return nil, ErrConnectionClosed

		case opPing:
			if err = that.write(frame{fin: true, opCode: opPong, payload: f.payload}); err != nil {
				return nil, err
			}

			continue

		case opPong:
			continue

		case opText, opBinary:
			if fragmented {
				return nil, that.fail(fmt.Errorf("%w: new message inside a fragmented one", ErrProtocol))
			}

		case opContinuation:
			if !fragmented {
				return nil, that.fail(fmt.Errorf("%w: continuation without a message to continue", ErrProtocol))
			}

		default:
			return nil, that.fail(fmt.Errorf("%w: unsupported opcode %#x", ErrProtocol, f.opCode))
		}

		message = append(message, f.payload...)
		if len(message) > maxMessageSize {
			return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(message))
		}

		if f.fin {
			return message, nil
		}

		fragmented = true
	}
}
