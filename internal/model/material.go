package model

// Material counts the pieces on a board by colour and type.
type Material struct {
	Total int
	White map[PieceType]int
	Black map[PieceType]int
}

func CountMaterial(b *Board) Material {
	m := Material{
		White: make(map[PieceType]int),
		Black: make(map[PieceType]int),
	}
	b.Each(func(_ Position, p Piece) {
		m.Total++
		if p.Color == White {
			m.White[p.Type]++
		} else {
			m.Black[p.Type]++
		}
	})
	return m
}

func (m Material) has(t PieceType) bool {
	return m.White[t] > 0 || m.Black[t] > 0
}

// IsInsufficientMaterial reports a dead position: king against king, king and
// knight against king, king and bishop against king, or king and bishop
// against king and bishop with both bishops on the same square colour.
func IsInsufficientMaterial(b *Board) bool {
	m := CountMaterial(b)
	switch {
	case m.Total == 2:
		return true
	case m.Total == 3:
		return m.has(Knight) || m.has(Bishop)
	case m.Total == 4 && m.White[Bishop] == 1 && m.Black[Bishop] == 1:
		white, _ := b.FindPiece(White, Bishop)
		black, _ := b.FindPiece(Black, Bishop)
		return white.SquareColor() == black.SquareColor()
	}
	return false
}
