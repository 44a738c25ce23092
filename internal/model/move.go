package model

import "fmt"

type MoveKind uint8

const (
	NormalMove MoveKind = iota
	DoublePawnMove
	EnPassantMove
	CastleMove
	PromotionMove
)

func (k MoveKind) String() string {
	switch k {
	case NormalMove:
		return "normal"
	case DoublePawnMove:
		return "double-pawn"
	case EnPassantMove:
		return "en-passant"
	case CastleMove:
		return "castle"
	case PromotionMove:
		return "promotion"
	}
	return fmt.Sprintf("move-kind(%d)", uint8(k))
}

// Move is a closed set of variants sharing origin and destination. Moves
// are only ever built by the move generators; Execute trusts them.
type Move struct {
	Kind MoveKind
	From Position
	To   Position
}

func NewMove(kind MoveKind, from, to Position) Move {
	return Move{Kind: kind, From: from, To: to}
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s (%s)", m.From, m.To, m.Kind)
}

func (m Move) IsPromotion() bool {
	return m.Kind == PromotionMove
}

// IsCapture reports whether executing m on b removes an enemy piece.
func (m Move) IsCapture(b *Board) bool {
	return m.Kind == EnPassantMove || !b.IsEmpty(m.To)
}

// Execute applies m to b in place, including every side effect of its kind.
// A promotion leaves the pawn on the back rank; the caller swaps it for the
// chosen piece.
func (m Move) Execute(b *Board) {
	piece, ok := b.At(m.From)
	if !ok {
		panic(fmt.Sprintf("execute %s: no piece on %s", m, m.From))
	}
	piece.HasMoved = true

	b.clearEnPassant()
	switch m.Kind {
	case NormalMove, PromotionMove:
	case DoublePawnMove:
		b.setEnPassant(m.From.Add(forward(piece.Color)))
	case EnPassantMove:
		b.Clear(m.To.Add(forward(piece.Color).Times(-1)))
	case CastleMove:
		rookFrom, rookTo := NewPosition(0, m.To.Row), NewPosition(3, m.To.Row)
		if m.To.Column == 6 {
			rookFrom, rookTo = NewPosition(7, m.To.Row), NewPosition(5, m.To.Row)
		}
		rook, ok := b.At(rookFrom)
		if !ok {
			panic(fmt.Sprintf("execute %s: no rook on %s", m, rookFrom))
		}
		rook.HasMoved = true
		b.Clear(rookFrom)
		b.Set(rookTo, rook)
	default:
		panic(fmt.Sprintf("execute: unknown move kind %s", m.Kind))
	}

	b.Clear(m.From)
	b.Set(m.To, piece)
}
