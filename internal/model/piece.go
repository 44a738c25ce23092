package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPieceType = errors.New("unknown piece type")

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// homeRow is the back rank of c.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// ParsePieceType accepts the lower-case type names used on the wire.
func ParsePieceType(s string) (PieceType, error) {
	switch t := PieceType(strings.ToLower(strings.TrimSpace(s))); t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPieceType, s)
}

// IsPromotionChoice reports whether a pawn may be promoted to t.
func (t PieceType) IsPromotionChoice() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

func (t PieceType) letter() byte {
	switch t {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	panic(fmt.Sprintf("piece type %q has no letter", string(t)))
}

// Piece is plain data; a board cell owns its copy. HasMoved only ever
// flips from false to true.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsZero() bool {
	return p.Type == ""
}

// Letter is upper case for White and lower case for Black.
func (p Piece) Letter() byte {
	l := p.Type.letter()
	if p.Color == White {
		return l - 'a' + 'A'
	}
	return l
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// Moves returns the pseudo-legal moves of p standing on from. Moves that
// leave the mover's own king attacked are not removed here.
func (p Piece) Moves(from Position, b *Board) []Move {
	return p.moves(from, b, true)
}

func (p Piece) moves(from Position, b *Board, withCastling bool) []Move {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(from, b)
	case Knight:
		return p.stepMoves(from, b, knightJumps)
	case Bishop:
		return p.slideMoves(from, b, diagonals)
	case Rook:
		return p.slideMoves(from, b, orthogonals)
	case Queen:
		return append(p.slideMoves(from, b, diagonals), p.slideMoves(from, b, orthogonals)...)
	case King:
		moves := p.stepMoves(from, b, compass)
		if withCastling {
			moves = append(moves, p.castleMoves(from, b)...)
		}
		return moves
	}
	panic(fmt.Sprintf("no move generator for piece type %q", string(p.Type)))
}

// canLandOn reports whether p may finish a step on pos: the square is on the
// board and either empty or held by the other side.
func (p Piece) canLandOn(pos Position, b *Board) bool {
	if !IsInside(pos) {
		return false
	}
	target, ok := b.At(pos)
	return !ok || target.Color != p.Color
}

func (p Piece) stepMoves(from Position, b *Board, dirs []Direction) []Move {
	moves := make([]Move, 0, len(dirs))
	for _, dir := range dirs {
		to := from.Add(dir)
		if p.canLandOn(to, b) {
			moves = append(moves, NewMove(NormalMove, from, to))
		}
	}
	return moves
}

func (p Piece) slideMoves(from Position, b *Board, dirs []Direction) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		to := from.Add(dir)
		for IsInside(to) {
			target, occupied := b.At(to)
			if !occupied {
				moves = append(moves, NewMove(NormalMove, from, to))
				to = to.Add(dir)
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, NewMove(NormalMove, from, to))
			}
			break
		}
	}
	return moves
}

func (p Piece) castleMoves(from Position, b *Board) []Move {
	row := p.Color.homeRow()
	if p.HasMoved || from != NewPosition(4, row) {
		return nil
	}
	if b.InCheck(p.Color) {
		return nil
	}

	moves := []Move{}
	for _, side := range []struct {
		rookColumn int
		dir        Direction
	}{
		{rookColumn: 0, dir: West},
		{rookColumn: 7, dir: East},
	} {
		rook, ok := b.At(NewPosition(side.rookColumn, row))
		if !ok || rook.Type != Rook || rook.Color != p.Color || rook.HasMoved {
			continue
		}

		empty := true
		for pos := from.Add(side.dir); pos.Column != side.rookColumn; pos = pos.Add(side.dir) {
			if !b.IsEmpty(pos) {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}

		// The square the king crosses must not be attacked. The landing
		// square is left to the legal-move filter.
		step := b.Clone()
		NewMove(NormalMove, from, from.Add(side.dir)).Execute(step)
		if step.InCheck(p.Color) {
			continue
		}

		moves = append(moves, NewMove(CastleMove, from, from.Add(side.dir.Times(2))))
	}
	return moves
}

func (p Piece) pawnMoves(from Position, b *Board) []Move {
	dir := forward(p.Color)
	moves := []Move{}

	one := from.Add(dir)
	if IsInside(one) && b.IsEmpty(one) {
		moves = append(moves, NewMove(NormalMove, from, one))

		two := one.Add(dir)
		if !p.HasMoved && IsInside(two) && b.IsEmpty(two) {
			moves = append(moves, NewMove(DoublePawnMove, from, two))
		}
	}

	for _, side := range []Direction{West, East} {
		to := from.Add(dir.Add(side))
		if !IsInside(to) {
			continue
		}
		if target, ok := b.At(to); ok {
			if target.Color != p.Color {
				moves = append(moves, NewMove(NormalMove, from, to))
			}
			continue
		}
		if ep, ok := b.EnPassant(); ok && ep == to {
			victim, ok := b.At(to.Add(dir.Times(-1)))
			if ok && victim.Type == Pawn && victim.Color != p.Color {
				moves = append(moves, NewMove(EnPassantMove, from, to))
			}
		}
	}

	for i, m := range moves {
		if m.To.Row == 0 || m.To.Row == 7 {
			moves[i] = NewMove(PromotionMove, m.From, m.To)
		}
	}
	return moves
}
