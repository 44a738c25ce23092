package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-rules/internal/service"
	"github.com/benbeisheim/chess-rules/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes; the session broadcasts from other
// goroutines while this one reports errors.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedConn) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.Close()
}

func (l *lockedConn) refuse(reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	l.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	sessionID, _ := c.Locals("wsSessionID").(string)
	clientID, _ := c.Locals("wsClientID").(string)
	logger := log.WithFields(log.Fields{"session": sessionID, "client": clientID})
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(sessionID, clientID, conn); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		conn.refuse(err.Error())
		return
	}
	defer wsc.gameService.UnregisterConnection(sessionID, clientID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read loop ended")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Warn("malformed message")
			wsc.sendError(conn, "malformed message")
			continue
		}

		done, err := wsc.handleMessage(sessionID, msg)
		if err != nil {
			logger.WithError(err).WithField("type", string(msg.Type)).Warn("message rejected")
			wsc.sendError(conn, err.Error())
			if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionClosed) {
				return
			}
			continue
		}
		if done {
			return
		}
	}
}

// handleMessage dispatches one inbound message. It reports done once the
// session has been exited. Accepted input reaches the client through the
// session broadcast.
func (wsc *WebSocketController) handleMessage(sessionID string, msg ws.Message) (bool, error) {
	switch msg.Type {
	case ws.MessageTypeClick:
		var click ws.Click
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return false, fmt.Errorf("%w: click payload: %v", service.ErrInvalidInput, err)
		}
		_, err := wsc.gameService.Click(sessionID, click.Column, click.Row, click.Button)
		return false, err

	case ws.MessageTypePromote:
		var promote ws.Promote
		if err := json.Unmarshal(msg.Payload, &promote); err != nil {
			return false, fmt.Errorf("%w: promote payload: %v", service.ErrInvalidInput, err)
		}
		_, err := wsc.gameService.Promote(sessionID, promote.Column, promote.Row, promote.Piece)
		return false, err

	case ws.MessageTypeReplay:
		_, err := wsc.gameService.Replay(sessionID)
		return false, err

	case ws.MessageTypeExit:
		_, err := wsc.gameService.Exit(sessionID)
		return err == nil, err

	default:
		return false, fmt.Errorf("%w: unknown message type %q", service.ErrInvalidInput, msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(conn service.Conn, errorMsg string) {
	if err := conn.WriteJSON(ws.ErrorMessage(errorMsg)); err != nil {
		log.WithError(err).Debug("failed to send error message")
	}
}
