package model

import "testing"

func boardFromFEN(t *testing.T, fen string) (*Board, Color) {
	t.Helper()
	b, turn, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b, turn
}

func mustSquare(t *testing.T, name string) Position {
	t.Helper()
	pos, err := ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

func destinations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To.String())
	}
	return out
}

// play clicks from and then to for the side to move and fails if the move
// was not accepted.
func play(t *testing.T, g *Game, from, to string) []Event {
	t.Helper()
	before := g.Plies()
	g.Click(mustSquare(t, from), LeftButton)
	events := g.Click(mustSquare(t, to), LeftButton)
	if g.Plies() != before+1 {
		t.Fatalf("move %s-%s was not accepted", from, to)
	}
	return events
}
