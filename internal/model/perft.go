package model

import "fmt"

var promotionChoices = []PieceType{Queen, Rook, Bishop, Knight}

// promote replaces the pawn on at with a fresh piece of type t.
func promote(b *Board, at Position, t PieceType) {
	pawn, ok := b.At(at)
	if !ok || pawn.Type != Pawn {
		panic(fmt.Sprintf("promote %s: no pawn to promote", at))
	}
	if !t.IsPromotionChoice() {
		panic(fmt.Sprintf("promote %s: %q is not a promotion choice", at, string(t)))
	}
	b.Set(at, NewPiece(t, pawn.Color))
}

// PerftEntry is the subtree size below one root move.
type PerftEntry struct {
	Move      Move
	Promotion PieceType
	Nodes     uint64
}

func (e PerftEntry) String() string {
	s := e.Move.From.String() + e.Move.To.String()
	if e.Promotion != "" {
		s += string(e.Promotion.letter())
	}
	return s
}

// Perft counts the leaves of the legal move tree depth plies deep with c
// to move. A promotion counts once per piece it can become.
func Perft(b *Board, c Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, e := range PerftDivide(b, c, depth) {
		nodes += e.Nodes
	}
	return nodes
}

// PerftDivide splits the Perft count by root move.
func PerftDivide(b *Board, c Color, depth int) []PerftEntry {
	if depth <= 0 {
		return nil
	}
	entries := []PerftEntry{}
	for _, m := range LegalMoves(b, c) {
		if !m.IsPromotion() {
			next := b.Clone()
			m.Execute(next)
			entries = append(entries, PerftEntry{Move: m, Nodes: perftNodes(next, c.Opponent(), depth-1)})
			continue
		}
		for _, t := range promotionChoices {
			next := b.Clone()
			m.Execute(next)
			promote(next, m.To, t)
			entries = append(entries, PerftEntry{Move: m, Promotion: t, Nodes: perftNodes(next, c.Opponent(), depth-1)})
		}
	}
	return entries
}

func perftNodes(b *Board, c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range LegalMoves(b, c) {
		choices := 1
		if m.IsPromotion() {
			choices = len(promotionChoices)
		}
		if depth == 1 {
			nodes += uint64(choices)
			continue
		}
		if !m.IsPromotion() {
			next := b.Clone()
			m.Execute(next)
			nodes += perftNodes(next, c.Opponent(), depth-1)
			continue
		}
		for _, t := range promotionChoices {
			next := b.Clone()
			m.Execute(next)
			promote(next, m.To, t)
			nodes += perftNodes(next, c.Opponent(), depth-1)
		}
	}
	return nodes
}
