package model

import "fmt"

// Position is a board coordinate. Column 0 is the a-file and row 0 is
// Black's back rank, so White pawns advance towards lower rows.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func NewPosition(column, row int) Position {
	return Position{Column: column, Row: row}
}

func (p Position) Add(d Direction) Position {
	return Position{Column: p.Column + d.Column, Row: p.Row + d.Row}
}

// SquareColor reports the colour of the square itself, not of any occupant.
func (p Position) SquareColor() Color {
	if (p.Column+p.Row)%2 == 0 {
		return White
	}
	return Black
}

func (p Position) String() string {
	if !IsInside(p) {
		return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
	}
	return fmt.Sprintf("%c%d", p.Column+'a', 8-p.Row)
}

func (p Position) index() int {
	return p.Row*8 + p.Column
}

func positionFromIndex(i int) Position {
	return Position{Column: i % 8, Row: i / 8}
}
