package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func gameFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	b, turn := boardFromFEN(t, fen)
	return NewGameFromBoard(b, turn)
}

func TestClickSelection(t *testing.T) {
	g := NewGame()

	g.Click(mustSquare(t, "e4"), LeftButton)
	if _, _, ok := g.Selected(); ok {
		t.Fatal("empty square was selected")
	}

	g.Click(mustSquare(t, "e7"), LeftButton)
	if _, _, ok := g.Selected(); ok {
		t.Fatal("opponent piece was selected")
	}

	g.Click(mustSquare(t, "e2"), LeftButton)
	from, moves, ok := g.Selected()
	if !ok || from != mustSquare(t, "e2") {
		t.Fatalf("Selected() = %v, %v", from, ok)
	}
	if diff := cmp.Diff([]string{"e3", "e4"}, destinations(moves), sortStrings); diff != "" {
		t.Errorf("cached moves mismatch (-want +got):\n%s", diff)
	}

	// A square that is not a destination keeps the selection.
	g.Click(mustSquare(t, "d2"), LeftButton)
	if from, _, ok := g.Selected(); !ok || from != mustSquare(t, "e2") {
		t.Errorf("selection after non-destination click = %v, %v; want e2", from, ok)
	}
	if g.Plies() != 0 {
		t.Errorf("Plies() = %d; want 0", g.Plies())
	}

	g.Click(NewPosition(9, 9), RightButton)
	if _, _, ok := g.Selected(); ok {
		t.Error("right click did not clear the selection")
	}

	g.Click(NewPosition(-1, 3), LeftButton)
	if _, _, ok := g.Selected(); ok {
		t.Error("out of bounds click selected something")
	}
}

func TestPieceWithoutMovesCanBeSelected(t *testing.T) {
	g := NewGame()
	g.Click(mustSquare(t, "a1"), LeftButton)
	from, moves, ok := g.Selected()
	if !ok || from != mustSquare(t, "a1") {
		t.Fatalf("Selected() = %v, %v; want a1", from, ok)
	}
	if len(moves) != 0 {
		t.Errorf("rook has %d moves; want 0", len(moves))
	}
}

func TestCommitAlternatesTurn(t *testing.T) {
	g := NewGame()
	if events := play(t, g, "e2", "e4"); len(events) != 0 {
		t.Errorf("events = %v; want none", events)
	}
	if g.Turn() != Black {
		t.Errorf("Turn() = %s; want black", g.Turn())
	}
	if _, _, ok := g.Selected(); ok {
		t.Error("selection survived the move")
	}
	if p, ok := g.Board().At(mustSquare(t, "e4")); !ok || p.Type != Pawn || !p.HasMoved {
		t.Errorf("e4 = %+v, %v", p, ok)
	}

	g.Click(mustSquare(t, "d2"), LeftButton)
	if _, _, ok := g.Selected(); ok {
		t.Error("white piece selected on black's turn")
	}
}

func TestHalfMoveClock(t *testing.T) {
	g := NewGame()
	play(t, g, "g1", "f3")
	play(t, g, "b8", "c6")
	if got := g.HalfMoveClock(); got != 2 {
		t.Fatalf("HalfMoveClock() = %d; want 2", got)
	}
	play(t, g, "e2", "e4")
	if got := g.HalfMoveClock(); got != 0 {
		t.Fatalf("HalfMoveClock() after pawn move = %d; want 0", got)
	}
	play(t, g, "c6", "d4")
	play(t, g, "f1", "c4")
	if got := g.HalfMoveClock(); got != 2 {
		t.Fatalf("HalfMoveClock() = %d; want 2", got)
	}
	play(t, g, "d4", "f3")
	if got := g.HalfMoveClock(); got != 0 {
		t.Errorf("HalfMoveClock() after capture = %d; want 0", got)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := gameFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	g.halfMoveClock = 98
	if events := play(t, g, "a1", "a2"); len(events) != 0 {
		t.Fatalf("events at 99 half-moves = %v; want none", events)
	}

	events := play(t, g, "e8", "d7")
	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultFiftyMoveRule}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestInsufficientMaterialBeatsFiftyMoveRule(t *testing.T) {
	g := gameFromFEN(t, "4k3/8/8/8/8/8/8/4KN2 w - - 0 1")
	g.halfMoveClock = 99
	events := play(t, g, "f1", "g3")
	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultInsufficientMaterial}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureIntoInsufficientMaterial(t *testing.T) {
	g := gameFromFEN(t, "4k3/8/8/8/8/8/4r3/4KB2 w - - 0 1")
	events := play(t, g, "e1", "e2")
	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultInsufficientMaterial}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	shuffle := [][2]string{{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"}}

	for _, m := range shuffle {
		if events := play(t, g, m[0], m[1]); len(events) != 0 {
			t.Fatalf("early events %v", events)
		}
	}
	if got := g.Occurrences(); got != 2 {
		t.Fatalf("Occurrences() = %d; want 2", got)
	}

	var events []Event
	for _, m := range shuffle {
		events = play(t, g, m[0], m[1])
	}
	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultRepetition}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if got := g.Occurrences(); got != 3 {
		t.Errorf("Occurrences() = %d; want 3", got)
	}
}

func TestRepetitionIgnoresUnusableEnPassant(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")
	key := g.repetitionKey()
	if key[len(key)-1] != '-' {
		t.Errorf("repetition key %q records an en-passant square nobody can use", key)
	}
}

func TestCheckmate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2", "f3")
	play(t, g, "e7", "e5")
	play(t, g, "g2", "g4")
	events := play(t, g, "d8", "h4")

	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultCheckmate, Winner: Black}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if !g.InCheck() {
		t.Error("InCheck() = false after mate")
	}

	// The game-over modal swallows input.
	if events := g.Click(mustSquare(t, "e2"), LeftButton); events != nil {
		t.Errorf("click after mate = %v", events)
	}
	if _, _, ok := g.Selected(); ok {
		t.Error("selection made after game over")
	}
}

func TestStalemate(t *testing.T) {
	g := gameFromFEN(t, "k7/8/8/2Q5/8/8/8/7K w - - 0 1")
	events := play(t, g, "c5", "b6")
	want := []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultStalemate}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if g.InCheck() {
		t.Error("InCheck() = true in stalemate")
	}
}

func TestCheckIsTracked(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")
	play(t, g, "f7", "f6")
	play(t, g, "d1", "h5")
	if !g.InCheck() {
		t.Fatal("InCheck() = false after Qh5+")
	}
	v := g.View()
	if v.CheckedKing == nil || *v.CheckedKing != mustSquare(t, "e8") {
		t.Errorf("CheckedKing = %v; want e8", v.CheckedKing)
	}

	g.Click(mustSquare(t, "a7"), LeftButton)
	if _, moves, _ := g.Selected(); len(moves) != 0 {
		t.Errorf("pawn move ignoring check offered: %v", destinations(moves))
	}
}

func TestPromotionFlow(t *testing.T) {
	tests := []struct {
		name   string
		choice PieceType
		want   []Event
	}{
		{
			name:   "queen mates",
			choice: Queen,
			want:   []Event{{Kind: EventGameEnded, Result: &Result{Kind: ResultCheckmate, Winner: White}}},
		},
		{
			name:   "bishop does not",
			choice: Bishop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromFEN(t, "k7/2P4p/1K6/8/8/8/8/8 w - - 0 1")
			events := play(t, g, "c7", "c8")

			c8 := mustSquare(t, "c8")
			want := []Event{{Kind: EventPromotionRequired, Square: &c8}}
			if diff := cmp.Diff(want, events); diff != "" {
				t.Fatalf("events mismatch (-want +got):\n%s", diff)
			}
			if at, ok := g.PendingPromotion(); !ok || at != c8 {
				t.Fatalf("PendingPromotion() = %v, %v", at, ok)
			}
			if _, ok := g.Result(); ok {
				t.Fatal("game judged before the promotion choice")
			}

			// Everything but a valid choice on the pending square is ignored.
			if ev := g.Click(mustSquare(t, "a8"), LeftButton); ev != nil {
				t.Errorf("click during promotion = %v", ev)
			}
			if ev := g.ChoosePromotion(mustSquare(t, "d8"), Queen); ev != nil {
				t.Errorf("choice on wrong square = %v", ev)
			}
			if ev := g.ChoosePromotion(c8, King); ev != nil {
				t.Errorf("king choice = %v", ev)
			}
			if _, ok := g.PendingPromotion(); !ok {
				t.Fatal("promotion resolved by an invalid choice")
			}

			events = g.ChoosePromotion(c8, tt.choice)
			if diff := cmp.Diff(tt.want, events); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			p, ok := g.Board().At(c8)
			if !ok || p.Type != tt.choice || p.Color != White {
				t.Errorf("c8 = %+v, %v; want white %s", p, ok, tt.choice)
			}
			if _, ok := g.PendingPromotion(); ok {
				t.Error("promotion still pending")
			}
		})
	}
}

func TestCheckClearedWhilePromotionPending(t *testing.T) {
	g := gameFromFEN(t, "1r2k3/P7/8/8/8/8/8/1K6 w - - 0 1")
	if !g.InCheck() {
		t.Fatal("InCheck() = false with the rook on the b-file")
	}

	play(t, g, "a7", "b8")
	if _, ok := g.PendingPromotion(); !ok {
		t.Fatal("capture on b8 did not ask for a promotion")
	}
	if g.InCheck() {
		t.Error("InCheck() = true while black is not attacked")
	}
	if v := g.View(); v.InCheck || v.CheckedKing != nil {
		t.Errorf("view reports check: InCheck=%v CheckedKing=%v", v.InCheck, v.CheckedKing)
	}

	if events := g.ChoosePromotion(mustSquare(t, "b8"), Queen); len(events) != 0 {
		t.Errorf("events = %v; want none", events)
	}
	v := g.View()
	if !v.InCheck || v.CheckedKing == nil || *v.CheckedKing != mustSquare(t, "e8") {
		t.Errorf("after queening: InCheck=%v CheckedKing=%v; want e8", v.InCheck, v.CheckedKing)
	}
}

func TestReplayAndExit(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")

	if diff := cmp.Diff([]Event{{Kind: EventReplayRequested}}, g.Replay()); diff != "" {
		t.Errorf("Replay() mismatch (-want +got):\n%s", diff)
	}
	if g.Plies() != 1 {
		t.Errorf("Replay() touched the board: Plies() = %d", g.Plies())
	}

	if diff := cmp.Diff([]Event{{Kind: EventExitRequested}}, g.Exit()); diff != "" {
		t.Errorf("Exit() mismatch (-want +got):\n%s", diff)
	}
	if !g.Closed() {
		t.Fatal("Closed() = false after Exit")
	}
	if ev := g.Exit(); ev != nil {
		t.Errorf("second Exit() = %v", ev)
	}
	if ev := g.Replay(); ev != nil {
		t.Errorf("Replay() after Exit = %v", ev)
	}
	g.Click(mustSquare(t, "e7"), LeftButton)
	if _, _, ok := g.Selected(); ok {
		t.Error("closed game accepted a selection")
	}
}

func TestView(t *testing.T) {
	g := NewGame()
	g.Click(mustSquare(t, "g1"), LeftButton)
	v := g.View()

	if v.Turn != White || v.Plies != 0 {
		t.Errorf("Turn, Plies = %s, %d", v.Turn, v.Plies)
	}
	if p := v.Board[7][6]; p == nil || p.Type != Knight || p.Color != White {
		t.Errorf("Board[7][6] = %+v; want white knight", p)
	}
	if v.Board[4][4] != nil {
		t.Errorf("Board[4][4] = %+v; want empty", v.Board[4][4])
	}
	if v.Selected == nil || *v.Selected != mustSquare(t, "g1") {
		t.Errorf("Selected = %v; want g1", v.Selected)
	}
	want := []Target{
		{Square: mustSquare(t, "f3")},
		{Square: mustSquare(t, "h3")},
	}
	less := func(a, b Target) bool { return a.Square.Column < b.Square.Column }
	if diff := cmp.Diff(want, v.Targets, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	if v.CheckedKing != nil || v.PendingPromotion != nil || v.Result != nil {
		t.Errorf("unexpected view state %+v", v)
	}
}
