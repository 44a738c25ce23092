package service

import (
	"fmt"

	"github.com/benbeisheim/chess-rules/internal/model"
)

// GameService is what the controllers call. It resolves sessions and turns
// wire values into model values.
type GameService struct {
	sessions *SessionManager
}

func NewGameService(sessions *SessionManager) *GameService {
	return &GameService{sessions: sessions}
}

func (gs *GameService) CreateSession(clientID string) string {
	return gs.sessions.Create(clientID).ID()
}

func (gs *GameService) View(sessionID string) (model.View, error) {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return model.View{}, err
	}
	return s.View()
}

func (gs *GameService) Click(sessionID string, column, row int, button string) (Outcome, error) {
	b, err := model.ParseButton(button)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return Outcome{}, err
	}
	return s.Click(model.NewPosition(column, row), b)
}

func (gs *GameService) Promote(sessionID string, column, row int, piece string) (Outcome, error) {
	t, err := model.ParsePieceType(piece)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return Outcome{}, err
	}
	return s.Promote(model.NewPosition(column, row), t)
}

func (gs *GameService) Replay(sessionID string) (Outcome, error) {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return Outcome{}, err
	}
	return s.Replay()
}

// Exit ends the match and forgets the session.
func (gs *GameService) Exit(sessionID string) ([]model.Event, error) {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	events, err := s.Exit()
	if err != nil {
		return nil, err
	}
	gs.sessions.Remove(sessionID)
	return events, nil
}

func (gs *GameService) RegisterConnection(sessionID, clientID string, conn Conn) error {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return s.Register(clientID, conn)
}

func (gs *GameService) UnregisterConnection(sessionID, clientID string, conn Conn) {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return
	}
	s.Unregister(clientID, conn)
}
