package controller

import (
	"encoding/json"
	"errors"

	"github.com/benbeisheim/chess-rules/internal/model"
	"github.com/benbeisheim/chess-rules/internal/service"
	"github.com/benbeisheim/chess-rules/internal/ws"
	. "gopkg.in/check.v1"
)

type recordingConn struct {
	sent   []ws.Message
	closed bool
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	r.sent = append(r.sent, v.(ws.Message))
	return nil
}

func (r *recordingConn) Close() error {
	r.closed = true
	return nil
}

func (r *recordingConn) last() ws.Message {
	return r.sent[len(r.sent)-1]
}

func message(c *C, t ws.MessageType, payload interface{}) ws.Message {
	if payload == nil {
		return ws.Message{Type: t}
	}
	msg, err := ws.NewMessage(t, payload)
	c.Assert(err, IsNil)
	return msg
}

func (s *ControllerSuite) observe(c *C) (*WebSocketController, string, *recordingConn) {
	id := s.games.CreateSession(clientID)
	conn := &recordingConn{}
	c.Assert(s.games.RegisterConnection(id, clientID, conn), IsNil)
	c.Assert(conn.sent, HasLen, 1)
	return NewWebSocketController(s.games), id, conn
}

func (s *ControllerSuite) TestSocketClickMovesPiece(c *C) {
	wsc, id, conn := s.observe(c)

	for _, click := range []ws.Click{{Column: 4, Row: 6, Button: "left"}, {Column: 4, Row: 4, Button: "left"}} {
		done, err := wsc.handleMessage(id, message(c, ws.MessageTypeClick, click))
		c.Assert(err, IsNil)
		c.Assert(done, Equals, false)
	}

	c.Assert(conn.last().Type, Equals, ws.MessageTypeState)
	var view model.View
	c.Assert(json.Unmarshal(conn.last().Payload, &view), IsNil)
	c.Assert(view.Turn, Equals, model.Black)
	c.Assert(view.Board[4][4], NotNil)
	c.Assert(view.Board[4][4].Type, Equals, model.Pawn)
	c.Assert(view.Board[6][4], IsNil)
}

func (s *ControllerSuite) TestSocketRejectsBadInput(c *C) {
	wsc, id, _ := s.observe(c)

	tests := []ws.Message{
		{Type: ws.MessageTypeClick, Payload: json.RawMessage(`"e2"`)},
		{Type: ws.MessageTypePromote, Payload: json.RawMessage(`[]`)},
		message(c, ws.MessageTypeClick, ws.Click{Column: 4, Row: 6, Button: "middle"}),
		message(c, ws.MessageTypePromote, ws.Promote{Column: 0, Row: 0, Piece: "archbishop"}),
		{Type: "resign"},
	}
	for _, msg := range tests {
		done, err := wsc.handleMessage(id, msg)
		c.Check(errors.Is(err, service.ErrInvalidInput), Equals, true, Commentf("message %s: %v", msg.Type, err))
		c.Check(done, Equals, false)
	}
}

func (s *ControllerSuite) TestSocketPromoteWithoutPendingIsIgnored(c *C) {
	wsc, id, conn := s.observe(c)

	done, err := wsc.handleMessage(id, message(c, ws.MessageTypePromote, ws.Promote{Column: 0, Row: 0, Piece: "queen"}))
	c.Assert(err, IsNil)
	c.Assert(done, Equals, false)
	c.Assert(conn.last().Type, Equals, ws.MessageTypeState)
}

func (s *ControllerSuite) TestSocketReplay(c *C) {
	wsc, id, conn := s.observe(c)

	done, err := wsc.handleMessage(id, message(c, ws.MessageTypeReplay, nil))
	c.Assert(err, IsNil)
	c.Assert(done, Equals, false)

	var types []ws.MessageType
	for _, msg := range conn.sent[1:] {
		types = append(types, msg.Type)
	}
	c.Assert(types, DeepEquals, []ws.MessageType{ws.MessageTypeEvent, ws.MessageTypeState})
}

func (s *ControllerSuite) TestSocketExitEndsSession(c *C) {
	wsc, id, conn := s.observe(c)

	done, err := wsc.handleMessage(id, message(c, ws.MessageTypeExit, nil))
	c.Assert(err, IsNil)
	c.Assert(done, Equals, true)
	c.Assert(conn.closed, Equals, true)
	c.Assert(s.sessions.Len(), Equals, 0)

	_, err = wsc.handleMessage(id, message(c, ws.MessageTypeClick, ws.Click{Column: 4, Row: 6, Button: "left"}))
	c.Assert(errors.Is(err, service.ErrSessionNotFound), Equals, true)
}

func (s *ControllerSuite) TestSendError(c *C) {
	wsc := NewWebSocketController(s.games)
	conn := &recordingConn{}

	wsc.sendError(conn, "malformed message")

	c.Assert(conn.sent, HasLen, 1)
	c.Assert(conn.last().Type, Equals, ws.MessageTypeError)
	var body ws.Error
	c.Assert(json.Unmarshal(conn.last().Payload, &body), IsNil)
	c.Assert(body.Message, Equals, "malformed message")
}
