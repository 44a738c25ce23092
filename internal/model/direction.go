package model

// Direction is a coordinate delta used to walk the board.
type Direction struct {
	Column int
	Row    int
}

var (
	North = Direction{Column: 0, Row: -1}
	South = Direction{Column: 0, Row: 1}
	East  = Direction{Column: 1, Row: 0}
	West  = Direction{Column: -1, Row: 0}

	NorthEast = North.Add(East)
	NorthWest = North.Add(West)
	SouthEast = South.Add(East)
	SouthWest = South.Add(West)
)

var (
	orthogonals = []Direction{North, South, East, West}
	diagonals   = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	compass     = []Direction{North, NorthWest, West, SouthWest, South, SouthEast, East, NorthEast}

	knightJumps = []Direction{
		{Column: 1, Row: -2}, {Column: 2, Row: -1}, {Column: 2, Row: 1}, {Column: 1, Row: 2},
		{Column: -1, Row: 2}, {Column: -2, Row: 1}, {Column: -2, Row: -1}, {Column: -1, Row: -2},
	}
)

func (d Direction) Add(o Direction) Direction {
	return Direction{Column: d.Column + o.Column, Row: d.Row + o.Row}
}

func (d Direction) Times(n int) Direction {
	return Direction{Column: d.Column * n, Row: d.Row * n}
}

// forward is the pawn advance direction for c.
func forward(c Color) Direction {
	if c == White {
		return North
	}
	return South
}
