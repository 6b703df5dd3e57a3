package model

// InCheck reports whether side's king is attacked where it stands.
// A side without a king is never in check.
func (b *Board) InCheck(side Side) bool {
	king := b.King(side)
	if king == nil {
		return false
	}
	return b.wouldBeInCheck(king, king.Square, king.Square)
}

// wouldBeInCheck moves king from `from` to `at` on a scratch board and asks every
// opposing piece whether it could capture there. Opposing kings are tested by
// adjacency so king move generation never recurses.
func (b *Board) wouldBeInCheck(king *Piece, from, at Square) bool {
	scratch := b.Copy()
	scratch.clear(from)
	scratch.set(at, king.ID)

	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			sq := Square{Row: row, Col: col}
			attacker := scratch.PieceAt(sq)
			if attacker == nil || attacker.Side == king.Side {
				continue
			}
			if attacker.Kind == King {
				if Adjacent(sq, at) {
					return true
				}
				continue
			}
			for _, m := range scratch.movesFrom(attacker, sq) {
				if m.To == at && m.Label.Occupancy == Opponent {
					return true
				}
			}
		}
	}
	return false
}
