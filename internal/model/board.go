package model

import "strings"

// Board is an 8x8 grid of optional pieces plus the en-passant target.
// It is a plain value: copying it yields an independent board.
type Board struct {
	cells        [64]Piece
	enPassant    Position
	hasEnPassant bool
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting layout.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for column, t := range backRank {
		b.Set(NewPosition(column, 0), NewPiece(t, Black))
		b.Set(NewPosition(column, 7), NewPiece(t, White))
		b.Set(NewPosition(column, 1), NewPiece(Pawn, Black))
		b.Set(NewPosition(column, 6), NewPiece(Pawn, White))
	}
	return b
}

// NewEmptyBoard returns a board with no pieces, for alternate layouts.
func NewEmptyBoard() *Board {
	return &Board{}
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// IsInside reports whether p lies on the board.
func IsInside(p Position) bool {
	return p.Column >= 0 && p.Column < 8 && p.Row >= 0 && p.Row < 8
}

// IsEmpty reports whether no piece stands on p. p must be inside the board.
func (b *Board) IsEmpty(p Position) bool {
	return b.cells[p.index()].IsZero()
}

func (b *Board) At(p Position) (Piece, bool) {
	piece := b.cells[p.index()]
	return piece, !piece.IsZero()
}

func (b *Board) Set(p Position, piece Piece) {
	b.cells[p.index()] = piece
}

func (b *Board) Clear(p Position) {
	b.cells[p.index()] = Piece{}
}

func (b *Board) EnPassant() (Position, bool) {
	return b.enPassant, b.hasEnPassant
}

func (b *Board) setEnPassant(p Position) {
	b.enPassant = p
	b.hasEnPassant = true
}

func (b *Board) clearEnPassant() {
	b.enPassant = Position{}
	b.hasEnPassant = false
}

// Each calls fn for every occupied square in row-major order.
func (b *Board) Each(fn func(Position, Piece)) {
	for i, piece := range b.cells {
		if !piece.IsZero() {
			fn(positionFromIndex(i), piece)
		}
	}
}

// InCheck reports whether any piece of the other side has a pseudo-legal
// move onto c's king. A board without a king of colour c is never in check.
func (b *Board) InCheck(c Color) bool {
	for i, attacker := range b.cells {
		if attacker.IsZero() || attacker.Color == c {
			continue
		}
		// Castling never captures, so it is not generated for attacks.
		for _, m := range attacker.moves(positionFromIndex(i), b, false) {
			if target, ok := b.At(m.To); ok && target.Type == King && target.Color == c {
				return true
			}
		}
	}
	return false
}

// FindPiece returns the first square in row-major order holding a piece of
// type t and colour c.
func (b *Board) FindPiece(c Color, t PieceType) (Position, bool) {
	for i, piece := range b.cells {
		if piece.Type == t && piece.Color == c {
			return positionFromIndex(i), true
		}
	}
	return Position{}, false
}

const (
	emptySquareMarker = '.'
	noCastlingMarker  = '-'
)

// Snapshot fingerprints the layout: one letter per square in row-major
// order followed by the White kingside, White queenside, Black kingside and
// Black queenside castling markers.
func (b *Board) Snapshot() string {
	var sb strings.Builder
	sb.Grow(68)
	for _, piece := range b.cells {
		if piece.IsZero() {
			sb.WriteByte(emptySquareMarker)
			continue
		}
		sb.WriteByte(piece.Letter())
	}

	for _, right := range []struct {
		color      Color
		rookColumn int
		marker     byte
	}{
		{White, 7, 'K'},
		{White, 0, 'Q'},
		{Black, 7, 'k'},
		{Black, 0, 'q'},
	} {
		if b.canStillCastle(right.color, right.rookColumn) {
			sb.WriteByte(right.marker)
		} else {
			sb.WriteByte(noCastlingMarker)
		}
	}
	return sb.String()
}

// canStillCastle reports whether the king and the rook on rookColumn both
// stand unmoved on their home squares.
func (b *Board) canStillCastle(c Color, rookColumn int) bool {
	row := c.homeRow()
	king, ok := b.At(NewPosition(4, row))
	if !ok || king.Type != King || king.Color != c || king.HasMoved {
		return false
	}
	rook, ok := b.At(NewPosition(rookColumn, row))
	return ok && rook.Type == Rook && rook.Color == c && !rook.HasMoved
}
