package model

var (
	rookDirs   = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Square{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
)

// ValidMoves lists the destinations p can reach on b. It never mutates b and
// must be called again after every committed move.
func (p *Piece) ValidMoves(b *Board) []MoveDescriptor {
	return b.movesFrom(p, p.Square)
}

func (b *Board) movesFrom(p *Piece, from Square) []MoveDescriptor {
	switch p.Kind {
	case King:
		return b.kingMoves(p, from)
	case Queen:
		return b.slidingMoves(p, from, queenDirs)
	case Bishop:
		return b.slidingMoves(p, from, bishopDirs)
	case Rook:
		return b.slidingMoves(p, from, rookDirs)
	case Knight:
		return b.knightMoves(p, from)
	case Pawn:
		return b.pawnMoves(p, from)
	}
	return nil
}

// target classifies sq for a piece of the given side. ok is false when the
// square is off the board or holds a friendly piece.
func (b *Board) target(side Side, sq Square) (occ Occupancy, ok bool) {
	if !sq.InBounds() {
		return "", false
	}
	other := b.PieceAt(sq)
	switch {
	case other == nil:
		return Empty, true
	case other.Side != side:
		return Opponent, true
	}
	return "", false
}

func (b *Board) slidingMoves(p *Piece, from Square, dirs []Square) []MoveDescriptor {
	moves := []MoveDescriptor{}
	for _, dir := range dirs {
		targetPos := from.Offset(dir.Row, dir.Col)
		for {
			occ, ok := b.target(p.Side, targetPos)
			if !ok {
				break
			}
			moves = append(moves, MoveDescriptor{To: targetPos, Label: Label{Occupancy: occ, Class: Standard}})
			if occ == Opponent {
				break
			}
			targetPos = targetPos.Offset(dir.Row, dir.Col)
		}
	}
	return moves
}

func (b *Board) knightMoves(p *Piece, from Square) []MoveDescriptor {
	moves := []MoveDescriptor{}
	for _, dir := range knightDirs {
		targetPos := from.Offset(dir.Row, dir.Col)
		if occ, ok := b.target(p.Side, targetPos); ok {
			moves = append(moves, MoveDescriptor{To: targetPos, Label: Label{Occupancy: occ, Class: Standard}})
		}
	}
	return moves
}

func (b *Board) pawnMoves(p *Piece, from Square) []MoveDescriptor {
	moves := []MoveDescriptor{}
	dir := p.Side.forward()

	one := from.Offset(dir, 0)
	if one.InBounds() && b.isEmpty(one) {
		moves = append(moves, MoveDescriptor{To: one, Label: Label{Occupancy: Empty, Class: Standard}})
		two := from.Offset(2*dir, 0)
		if !p.HasMoved() && two.InBounds() && b.isEmpty(two) {
			moves = append(moves, MoveDescriptor{To: two, Label: Label{Occupancy: Empty, Class: Standard}})
		}
	}

	for _, side := range []struct {
		dCol  int
		class MoveClass
	}{{-1, LeftPassant}, {1, RightPassant}} {
		diag := from.Offset(dir, side.dCol)
		if !diag.InBounds() {
			continue
		}
		if enemy := b.PieceAt(diag); enemy != nil {
			if enemy.Side != p.Side {
				moves = append(moves, MoveDescriptor{To: diag, Label: Label{Occupancy: Opponent, Class: Standard}})
			}
			continue
		}
		// A neighbouring pawn that has moved exactly once can be taken in passing.
		// The window does not close after one turn.
		beside := b.PieceAt(from.Offset(0, side.dCol))
		if beside != nil && beside.Kind == Pawn && beside.Side != p.Side && len(beside.History) == 2 {
			moves = append(moves, MoveDescriptor{To: diag, Label: Label{Occupancy: Empty, Class: side.class}})
		}
	}
	return moves
}

func (b *Board) kingMoves(p *Piece, from Square) []MoveDescriptor {
	moves := []MoveDescriptor{}
	for _, dir := range kingDirs {
		targetPos := from.Offset(dir.Row, dir.Col)
		occ, ok := b.target(p.Side, targetPos)
		if !ok || b.wouldBeInCheck(p, from, targetPos) {
			continue
		}
		moves = append(moves, MoveDescriptor{To: targetPos, Label: Label{Occupancy: occ, Class: Standard}})
	}

	if p.HasMoved() || b.wouldBeInCheck(p, from, from) {
		return moves
	}
	if m, ok := b.castlingMove(p, from, 0, -1, QueensideCastling); ok {
		moves = append(moves, m)
	}
	if m, ok := b.castlingMove(p, from, boardSize-1, 1, KingsideCastling); ok {
		moves = append(moves, m)
	}
	return moves
}

func (b *Board) castlingMove(king *Piece, from Square, rookCol, step int, class MoveClass) (MoveDescriptor, bool) {
	rook := b.PieceAt(Square{Row: from.Row, Col: rookCol})
	if rook == nil || rook.Kind != Rook || rook.Side != king.Side || rook.HasMoved() {
		return MoveDescriptor{}, false
	}
	for col := from.Col + step; col != rookCol; col += step {
		if !b.isEmpty(Square{Row: from.Row, Col: col}) {
			return MoveDescriptor{}, false
		}
	}
	through := from.Offset(0, step)
	dest := from.Offset(0, 2*step)
	if !dest.InBounds() || b.wouldBeInCheck(king, from, through) || b.wouldBeInCheck(king, from, dest) {
		return MoveDescriptor{}, false
	}
	return MoveDescriptor{To: dest, Label: Label{Occupancy: Empty, Class: class}}, true
}
