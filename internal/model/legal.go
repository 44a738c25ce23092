package model

// LegalMovesFrom returns the moves of the piece on from that do not leave
// its own king attacked. Each candidate is tried on a scratch copy of b.
func LegalMovesFrom(b *Board, from Position) []Move {
	piece, ok := b.At(from)
	if !ok {
		return nil
	}
	legal := []Move{}
	for _, m := range piece.Moves(from, b) {
		scratch := b.Clone()
		m.Execute(scratch)
		if !scratch.InCheck(piece.Color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMoves returns every legal move of colour c.
func LegalMoves(b *Board, c Color) []Move {
	moves := []Move{}
	b.Each(func(pos Position, p Piece) {
		if p.Color == c {
			moves = append(moves, LegalMovesFrom(b, pos)...)
		}
	})
	return moves
}

// HasLegalMove stops at the first legal move found.
func HasLegalMove(b *Board, c Color) bool {
	for i := range b.cells {
		pos := positionFromIndex(i)
		if p, ok := b.At(pos); ok && p.Color == c && len(LegalMovesFrom(b, pos)) > 0 {
			return true
		}
	}
	return false
}
