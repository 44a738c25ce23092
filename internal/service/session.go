package service

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-rules/internal/model"
	"github.com/benbeisheim/chess-rules/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Outcome is the answer to one inbound event.
type Outcome struct {
	View   model.View    `json:"view"`
	Events []model.Event `json:"events"`
}

// Session hosts one match for a local client and pushes every change to
// the websocket observers registered on it.
type Session struct {
	id     string
	client string

	mu     sync.Mutex
	game   *model.Game
	conns  map[string]Conn // clientID -> connection
	closed bool
	logger log.Interface
}

func newSession(id, client string) *Session {
	return &Session{
		id:     id,
		client: client,
		game:   model.NewGame(),
		conns:  make(map[string]Conn),
		logger: log.WithFields(log.Fields{"session": id, "client": client}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) View() (model.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.View{}, ErrSessionClosed
	}
	return s.game.View(), nil
}

func (s *Session) Click(pos model.Position, button model.Button) (Outcome, error) {
	return s.apply(func(g *model.Game) []model.Event {
		return g.Click(pos, button)
	})
}

func (s *Session) Promote(at model.Position, piece model.PieceType) (Outcome, error) {
	return s.apply(func(g *model.Game) []model.Event {
		return g.ChoosePromotion(at, piece)
	})
}

func (s *Session) Replay() (Outcome, error) {
	return s.apply(func(g *model.Game) []model.Event {
		return g.Replay()
	})
}

// Exit ends the match and detaches every observer.
func (s *Session) Exit() ([]model.Event, error) {
	out, err := s.apply(func(g *model.Game) []model.Event {
		return g.Exit()
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for clientID, conn := range s.conns {
		conn.Close()
		delete(s.conns, clientID)
	}
	return out.Events, nil
}

// apply runs one inbound event against the game, reacts to the host
// requests it raises and broadcasts the result.
func (s *Session) apply(input func(*model.Game) []model.Event) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Outcome{}, ErrSessionClosed
	}

	events := input(s.game)
	if events == nil {
		events = []model.Event{}
	}
	for _, ev := range events {
		switch ev.Kind {
		case model.EventReplayRequested:
			s.logger.Info("starting a new match")
			s.game = model.NewGame()
		case model.EventExitRequested:
			s.logger.Info("match exited")
			s.closed = true
		case model.EventGameEnded:
			s.logger.WithField("result", ev.Result.String()).Info("match ended")
		case model.EventPromotionRequired:
			s.logger.WithField("square", ev.Square.String()).Debug("promotion pending")
		}
	}

	out := Outcome{View: s.game.View(), Events: events}
	s.broadcast(out)
	return out, nil
}

// Register attaches a websocket observer and sends it the current state.
// A client keeps its first connection; later ones are refused.
func (s *Session) Register(clientID string, conn Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if _, exists := s.conns[clientID]; exists {
		return fmt.Errorf("%w: client %s", ErrConnectionExists, clientID)
	}

	msg, err := ws.StateMessage(s.game.View())
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	s.conns[clientID] = conn
	s.logger.WithField("observer", clientID).Info("connection registered")
	return nil
}

// Unregister detaches conn, unless clientID has since been bound to a
// different connection.
func (s *Session) Unregister(clientID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.conns[clientID]; ok && current == conn {
		delete(s.conns, clientID)
		s.logger.WithField("observer", clientID).Info("connection unregistered")
	}
}

func (s *Session) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// broadcast must be called with s.mu held. Connections that fail a write
// are dropped.
func (s *Session) broadcast(out Outcome) {
	if len(s.conns) == 0 {
		return
	}
	msgs := make([]ws.Message, 0, len(out.Events)+1)
	for _, ev := range out.Events {
		msg, err := ws.EventMessage(ev)
		if err != nil {
			s.logger.WithError(err).Error("failed to encode event")
			continue
		}
		msgs = append(msgs, msg)
	}
	state, err := ws.StateMessage(out.View)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode state")
	} else {
		msgs = append(msgs, state)
	}

	for clientID, conn := range s.conns {
		for _, msg := range msgs {
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.WithError(err).WithField("observer", clientID).Warn("failed to send, dropping connection")
				conn.Close()
				delete(s.conns, clientID)
				break
			}
		}
	}
}
