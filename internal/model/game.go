package model

// fiftyMoveLimit is counted in half-moves.
const fiftyMoveLimit = 100

type modal uint8

const (
	modalNone modal = iota
	modalPromotion
	modalGameOver
)

type selection struct {
	from  Position
	moves []Move
}

// Game runs one match. It is not safe for concurrent use; callers
// serialize access.
type Game struct {
	board         *Board
	turn          Color
	selection     *selection
	halfMoveClock int
	plies         int
	snapshots     map[string]int
	inCheck       bool
	pending       []pendingEvent

	modal           modal
	promotionSquare Position
	result          *Result
	closed          bool
}

func NewGame() *Game {
	return NewGameFromBoard(NewBoard(), White)
}

// NewGameFromBoard starts a match from an arbitrary layout with turn to
// move. The layout counts as the first occurrence of its position.
func NewGameFromBoard(b *Board, turn Color) *Game {
	g := &Game{
		board:     b,
		turn:      turn,
		snapshots: make(map[string]int),
	}
	g.snapshots[g.repetitionKey()]++
	g.inCheck = b.InCheck(turn)
	return g
}

func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) InCheck() bool {
	return g.inCheck
}

func (g *Game) HalfMoveClock() int {
	return g.halfMoveClock
}

func (g *Game) Plies() int {
	return g.plies
}

func (g *Game) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

func (g *Game) PendingPromotion() (Position, bool) {
	return g.promotionSquare, g.modal == modalPromotion
}

func (g *Game) Closed() bool {
	return g.closed
}

// Selected returns the selected square and its cached legal moves.
func (g *Game) Selected() (Position, []Move, bool) {
	if g.selection == nil {
		return Position{}, nil, false
	}
	return g.selection.from, g.selection.moves, true
}

// Occurrences returns how often the current position has been reached.
func (g *Game) Occurrences() int {
	return g.snapshots[g.repetitionKey()]
}

// Click handles a pointer press on pos. Presses that match no transition
// are ignored.
func (g *Game) Click(pos Position, button Button) []Event {
	if g.closed || g.modal != modalNone {
		return nil
	}
	if button == RightButton {
		g.selection = nil
		return nil
	}
	if !IsInside(pos) {
		return nil
	}

	if g.selection != nil {
		for _, m := range g.selection.moves {
			if m.To == pos {
				return g.commit(m)
			}
		}
		return nil
	}

	piece, ok := g.board.At(pos)
	if !ok || piece.Color != g.turn {
		return nil
	}
	g.selection = &selection{from: pos, moves: LegalMovesFrom(g.board, pos)}
	return nil
}

// ChoosePromotion resolves the pending promotion on at. Anything other
// than the pending square and a queen, rook, bishop or knight is ignored.
func (g *Game) ChoosePromotion(at Position, t PieceType) []Event {
	if g.closed || g.modal != modalPromotion || at != g.promotionSquare || !t.IsPromotionChoice() {
		return nil
	}
	g.modal = modalNone
	g.pending = append(g.pending, pendingEvent{kind: pendingChoosePiece, piece: t, square: at})
	return g.process()
}

// Replay asks the host for a new match.
func (g *Game) Replay() []Event {
	if g.closed {
		return nil
	}
	g.pending = append(g.pending, pendingEvent{kind: pendingReplay})
	return g.process()
}

// Exit leaves the match; the game accepts no further input.
func (g *Game) Exit() []Event {
	if g.closed {
		return nil
	}
	g.pending = append(g.pending, pendingEvent{kind: pendingExit})
	return g.process()
}

func (g *Game) commit(m Move) []Event {
	piece, _ := g.board.At(m.From)
	g.halfMoveClock++
	if !g.board.IsEmpty(m.To) || piece.Type == Pawn {
		g.halfMoveClock = 0
	}

	m.Execute(g.board)
	g.plies++
	g.selection = nil
	g.turn = g.turn.Opponent()

	if m.IsPromotion() {
		// Game end is judged once the new piece is on the board.
		g.modal = modalPromotion
		g.promotionSquare = m.To
		g.inCheck = g.board.InCheck(g.turn)
		square := m.To
		return []Event{{Kind: EventPromotionRequired, Square: &square}}
	}

	g.pending = append(g.pending, pendingEvent{kind: pendingCheckGameEnd})
	return g.process()
}

func (g *Game) process() []Event {
	var out []Event
	for len(g.pending) > 0 {
		ev := g.pending[0]
		g.pending = g.pending[1:]

		switch ev.kind {
		case pendingCheckGameEnd:
			if r, over := g.evaluate(); over {
				g.result = &r
				g.modal = modalGameOver
				out = append(out, Event{Kind: EventGameEnded, Result: &r})
			}
		case pendingChoosePiece:
			promote(g.board, ev.square, ev.piece)
			g.pending = append(g.pending, pendingEvent{kind: pendingCheckGameEnd})
		case pendingReplay:
			out = append(out, Event{Kind: EventReplayRequested})
		case pendingExit:
			g.closed = true
			g.selection = nil
			g.pending = nil
			out = append(out, Event{Kind: EventExitRequested})
		}
	}
	return out
}

// evaluate records the current position and classifies it. When several
// endings apply at once, checkmate and stalemate win over repetition,
// repetition over insufficient material, and that over the fifty-move rule.
func (g *Game) evaluate() (Result, bool) {
	key := g.repetitionKey()
	g.snapshots[key]++
	repeated := g.snapshots[key] >= 3

	g.inCheck = g.board.InCheck(g.turn)
	stuck := !HasLegalMove(g.board, g.turn)

	switch {
	case stuck && g.inCheck:
		return Result{Kind: ResultCheckmate, Winner: g.turn.Opponent()}, true
	case stuck:
		return Result{Kind: ResultStalemate}, true
	case repeated:
		return Result{Kind: ResultRepetition}, true
	case IsInsufficientMaterial(g.board):
		return Result{Kind: ResultInsufficientMaterial}, true
	case g.halfMoveClock >= fiftyMoveLimit:
		return Result{Kind: ResultFiftyMoveRule}, true
	}
	return Result{}, false
}

// repetitionKey extends the board snapshot with the side to move and, when
// a pawn of that side could take it, the en-passant square.
func (g *Game) repetitionKey() string {
	key := g.board.Snapshot()
	if g.turn == White {
		key += "w"
	} else {
		key += "b"
	}

	if ep, ok := g.board.EnPassant(); ok && g.canTakeEnPassant(ep) {
		return key + ep.String()
	}
	return key + "-"
}

func (g *Game) canTakeEnPassant(ep Position) bool {
	behind := ep.Add(forward(g.turn).Times(-1))
	for _, side := range []Direction{West, East} {
		from := behind.Add(side)
		if !IsInside(from) {
			continue
		}
		if p, ok := g.board.At(from); ok && p.Type == Pawn && p.Color == g.turn {
			return true
		}
	}
	return false
}
