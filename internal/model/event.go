package model

import (
	"fmt"
	"strings"
)

type Button string

const (
	LeftButton  Button = "left"
	RightButton Button = "right"
)

func ParseButton(s string) (Button, error) {
	switch b := Button(strings.ToLower(strings.TrimSpace(s))); b {
	case LeftButton, RightButton:
		return b, nil
	case "":
		return LeftButton, nil
	}
	return "", fmt.Errorf("unknown pointer button %q", s)
}

type ResultKind string

const (
	ResultCheckmate            ResultKind = "checkmate"
	ResultStalemate            ResultKind = "stalemate"
	ResultInsufficientMaterial ResultKind = "insufficient-material"
	ResultRepetition           ResultKind = "repetition"
	ResultFiftyMoveRule        ResultKind = "fifty-move-rule"
)

// Result is how a match ended. Winner is only set for checkmate.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner Color      `json:"winner,omitempty"`
}

func (r Result) String() string {
	if r.Kind == ResultCheckmate {
		return fmt.Sprintf("%s, %s wins", r.Kind, r.Winner)
	}
	return string(r.Kind)
}

type EventKind string

const (
	EventPromotionRequired EventKind = "promotion-required"
	EventGameEnded         EventKind = "game-ended"
	EventReplayRequested   EventKind = "replay-requested"
	EventExitRequested     EventKind = "exit-requested"
)

// Event is emitted by Game for the presentation layer to act on.
type Event struct {
	Kind   EventKind `json:"kind"`
	Square *Position `json:"square,omitempty"`
	Result *Result   `json:"result,omitempty"`
}

type pendingKind uint8

const (
	pendingCheckGameEnd pendingKind = iota
	pendingChoosePiece
	pendingReplay
	pendingExit
)

// pendingEvent is queued inside Game and handled after the input that
// raised it.
type pendingEvent struct {
	kind   pendingKind
	piece  PieceType
	square Position
}
