package model

import "fmt"

// Special names the extra work a committed move performed.
type Special string

const (
	NoSpecial       Special = ""
	Promotion       Special = "promotion"
	EnPassant       Special = "en_passant"
	CastleKingside  Special = "kingside_castling"
	CastleQueenside Special = "queenside_castling"
)

// MoveResult describes a committed move.
type MoveResult struct {
	Piece    *Piece
	From     Square
	To       Square
	Label    Label
	Special  Special
	Captured *Piece
	Promoted *Piece
	Notation string
}

// MovePiece commits the move start→end. valid must be the mover's own ValidMoves
// on this board; it is not recomputed here. Rejections leave the board untouched.
// Errors wrapping ErrInvariant mean the board was inconsistent and the game must end.
func (b *Board) MovePiece(start, end Square, valid []MoveDescriptor) (*MoveResult, error) {
	mover := b.PieceAt(start)
	if mover == nil {
		return nil, fmt.Errorf("move from %s: %w", start, ErrNoPiece)
	}
	move, ok := FindMove(valid, end)
	if !ok {
		return nil, fmt.Errorf("move %s %s to %s: %w", mover.Tag(), start, end, ErrIllegalDestination)
	}
	label := move.Label
	if !label.validate() {
		return nil, &InvariantError{Op: "move", Square: end, Reason: fmt.Sprintf("malformed label %q", label.String())}
	}
	if err := b.checkSpecial(mover, start, end, label); err != nil {
		return nil, err
	}

	result := &MoveResult{Piece: mover, From: start, To: end, Label: label}

	if label.Occupancy == Opponent {
		captured, err := b.capture(mover, end)
		if err != nil {
			return nil, err
		}
		result.Captured = captured
	}

	switch {
	case mover.Kind == Pawn && end.Row == mover.Side.lastRow():
		result.Promoted = b.promote(mover, end)
		result.Special = Promotion
	case mover.Kind == Pawn && label.Class.passant():
		captured, err := b.capture(mover, passantSquare(start, label.Class))
		if err != nil {
			return nil, err
		}
		result.Captured = captured
		result.Special = EnPassant
	case mover.Kind == King && label.Class.castling():
		special, err := b.castle(start, label.Class)
		if err != nil {
			return nil, err
		}
		result.Special = special
	}

	b.relocate(mover, start, end, result.Promoted == nil)
	result.Notation = formatSAN(result)
	return result, nil
}

// checkSpecial verifies the squares a special move touches before anything is
// mutated, so a fatal error never leaves a half-applied move behind.
func (b *Board) checkSpecial(mover *Piece, start, end Square, label Label) error {
	if label.Occupancy == Opponent && b.PieceAt(end) == nil {
		return &InvariantError{Op: "capture", Square: end, Reason: "label claims a capture but the square is empty"}
	}
	switch {
	case mover.Kind == Pawn && end.Row == mover.Side.lastRow():
	case mover.Kind == Pawn && label.Class.passant():
		sq := passantSquare(start, label.Class)
		if b.PieceAt(sq) == nil {
			return &InvariantError{Op: "en passant", Square: sq, Reason: "no pawn to capture"}
		}
	case mover.Kind == King && label.Class.castling():
		home, _ := rookColumns(label.Class)
		sq := Square{Row: start.Row, Col: home}
		rook := b.PieceAt(sq)
		if rook == nil || rook.Kind != Rook || rook.Side != mover.Side {
			return &InvariantError{Op: "castling", Square: sq, Reason: "no matching rook"}
		}
	}
	return nil
}

// capture removes the piece on sq and credits it to mover.
func (b *Board) capture(mover *Piece, sq Square) (*Piece, error) {
	victim := b.PieceAt(sq)
	if victim == nil {
		return nil, &InvariantError{Op: "capture", Square: sq, Reason: "square is empty"}
	}
	b.clear(sq)
	mover.Captured = append(mover.Captured, victim.ID)
	return victim, nil
}

// promote puts a fresh queen on sq. The pawn record stays in the arena but leaves the grid.
func (b *Board) promote(pawn *Piece, sq Square) *Piece {
	queen := b.arena.spawn(pawn.Side, Queen, sq)
	b.set(sq, queen.ID)
	return queen
}

func passantSquare(start Square, class MoveClass) Square {
	if class == LeftPassant {
		return start.Offset(0, -1)
	}
	return start.Offset(0, 1)
}

func rookColumns(class MoveClass) (home, target int) {
	if class == QueensideCastling {
		return 0, 3
	}
	return boardSize - 1, 5
}

func (b *Board) castle(kingStart Square, class MoveClass) (Special, error) {
	home, target := rookColumns(class)
	from := Square{Row: kingStart.Row, Col: home}
	rook := b.PieceAt(from)
	if rook == nil || rook.Kind != Rook {
		return NoSpecial, &InvariantError{Op: "castling", Square: from, Reason: "no matching rook"}
	}
	b.relocate(rook, from, Square{Row: kingStart.Row, Col: target}, true)
	if class == QueensideCastling {
		return CastleQueenside, nil
	}
	return CastleKingside, nil
}

// relocate is the standard move write. occupy is false when promotion already
// filled the destination.
func (b *Board) relocate(p *Piece, from, to Square, occupy bool) {
	p.Square = to
	p.History = append(p.History, to)
	b.clear(from)
	if occupy {
		b.set(to, p.ID)
	}
}
