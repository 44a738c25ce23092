package model

// Target is a destination of the selected piece.
type Target struct {
	Square  Position `json:"square"`
	Capture bool     `json:"capture"`
}

// View is what the presentation layer needs to draw a game. Board is
// indexed [row][column].
type View struct {
	Board            [8][8]*Piece `json:"board"`
	Turn             Color        `json:"turn"`
	Selected         *Position    `json:"selected"`
	Targets          []Target     `json:"targets"`
	InCheck          bool         `json:"inCheck"`
	CheckedKing      *Position    `json:"checkedKing"`
	PendingPromotion *Position    `json:"pendingPromotion"`
	Result           *Result      `json:"result"`
	Plies            int          `json:"plies"`
	HalfMoveClock    int          `json:"halfMoveClock"`
}

func (g *Game) View() View {
	v := View{
		Turn:          g.turn,
		Targets:       []Target{},
		InCheck:       g.inCheck,
		Plies:         g.plies,
		HalfMoveClock: g.halfMoveClock,
	}

	g.board.Each(func(pos Position, p Piece) {
		piece := p
		v.Board[pos.Row][pos.Column] = &piece
	})

	if g.selection != nil {
		from := g.selection.from
		v.Selected = &from
		for _, m := range g.selection.moves {
			v.Targets = append(v.Targets, Target{Square: m.To, Capture: m.IsCapture(g.board)})
		}
	}

	if g.inCheck {
		if king, ok := g.board.FindPiece(g.turn, King); ok {
			v.CheckedKing = &king
		}
	}
	if square, ok := g.PendingPromotion(); ok {
		v.PendingPromotion = &square
	}
	if g.result != nil {
		r := *g.result
		v.Result = &r
	}
	return v
}
