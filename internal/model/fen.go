package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var fenPieces = map[rune]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN reads the placement, side to move, castling and en-passant
// fields of a FEN record; move counters are ignored. Moved flags are
// inferred: pawns off their start rank have moved, and kings and rooks have
// moved unless a castling right keeps them unmoved.
func ParseFEN(fen string) (*Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, "", fmt.Errorf("%w: want at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := NewEmptyBoard()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, "", fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for row, rank := range ranks {
		column := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				column += int(r - '0')
				continue
			}
			lower := r | 0x20
			t, ok := fenPieces[lower]
			if !ok || column > 7 {
				return nil, "", fmt.Errorf("%w: bad rank %q", ErrInvalidFEN, rank)
			}
			color := Black
			if r != lower {
				color = White
			}
			p := NewPiece(t, color)
			switch t {
			case Pawn:
				p.HasMoved = row != color.homeRow()+forward(color).Row
			case King, Rook:
				p.HasMoved = true
			}
			b.Set(NewPosition(column, row), p)
			column++
		}
		if column != 8 {
			return nil, "", fmt.Errorf("%w: rank %q does not span 8 columns", ErrInvalidFEN, rank)
		}
	}

	var turn Color
	switch fields[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, "", fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, right := range fields[2] {
			color := White
			if right == 'k' || right == 'q' {
				color = Black
			}
			row := color.homeRow()
			switch right | 0x20 {
			case 'k':
				unmove(b, NewPosition(4, row), color, King)
				unmove(b, NewPosition(7, row), color, Rook)
			case 'q':
				unmove(b, NewPosition(4, row), color, King)
				unmove(b, NewPosition(0, row), color, Rook)
			default:
				return nil, "", fmt.Errorf("%w: castling field %q", ErrInvalidFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		ep, ok := parseSquare(fields[3])
		if !ok {
			return nil, "", fmt.Errorf("%w: en-passant square %q", ErrInvalidFEN, fields[3])
		}
		b.setEnPassant(ep)
	}
	return b, turn, nil
}

func unmove(b *Board, pos Position, c Color, t PieceType) {
	if p, ok := b.At(pos); ok && p.Color == c && p.Type == t {
		p.HasMoved = false
		b.Set(pos, p)
	}
}

// ParseSquare reads an algebraic square name such as "e4".
func ParseSquare(name string) (Position, error) {
	pos, ok := parseSquare(name)
	if !ok {
		return Position{}, fmt.Errorf("bad square %q", name)
	}
	return pos, nil
}

func parseSquare(name string) (Position, bool) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return Position{}, false
	}
	return NewPosition(int(name[0]-'a'), 8-int(name[1]-'0')), true
}
