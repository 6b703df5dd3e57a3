package model

import (
	"testing"
)

func TestInitialPositionMoveCount(t *testing.T) {
	b := NewBoard()
	if got := len(allMoves(b, White)); got != 20 {
		t.Fatalf("white has %d moves, want 20", got)
	}
	if got := len(allMoves(b, Black)); got != 20 {
		t.Fatalf("black has %d moves, want 20", got)
	}
}

// checkInvariants asserts the generator properties that hold on every board.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	for _, side := range []Side{White, Black} {
		for _, p := range b.Pieces(side) {
			for _, m := range p.ValidMoves(b) {
				if !m.To.InBounds() {
					t.Fatalf("%s at %s offers out of bounds %+v", p.Tag(), p.Square, m.To)
				}
				if other := b.PieceAt(m.To); other != nil && other.Side == p.Side {
					t.Fatalf("%s at %s offers own piece at %s", p.Tag(), p.Square, m.To)
				}
				if other := b.PieceAt(m.To); (other != nil) != (m.Label.Occupancy == Opponent) {
					t.Fatalf("%s at %s: label %s does not match occupancy of %s", p.Tag(), p.Square, m.Label, m.To)
				}
				switch p.Kind {
				case Queen, Rook, Bishop:
					assertClearPath(t, b, p.Square, m.To)
				case King:
					if m.Label.Class == Standard && b.wouldBeInCheck(p, p.Square, m.To) {
						t.Fatalf("king at %s offers attacked square %s", p.Square, m.To)
					}
				}
			}
		}
	}
}

func assertClearPath(t *testing.T, b *Board, from, to Square) {
	t.Helper()
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for s := from.Offset(dr, dc); s != to; s = s.Offset(dr, dc) {
		if !s.InBounds() {
			t.Fatalf("slide %s-%s is not a straight line", from, to)
		}
		if !b.isEmpty(s) {
			t.Fatalf("slide %s-%s jumps over %s", from, to, s)
		}
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func TestGeneratorInvariantsAlongAGame(t *testing.T) {
	g := NewGameState(NewBoard(), "", "")
	if err := g.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for ply := 0; ply < 60; ply++ {
		checkInvariants(t, g.Board())

		type candidate struct {
			piece *Piece
			moves []MoveDescriptor
			to    Square
		}
		var candidates []candidate
		for _, p := range g.Board().Pieces(g.CurrentPlayer().Color) {
			moves := p.ValidMoves(g.Board())
			for _, m := range moves {
				candidates = append(candidates, candidate{piece: p, moves: moves, to: m.To})
			}
		}
		if len(candidates) == 0 {
			return
		}
		c := candidates[(ply*7+3)%len(candidates)]
		if _, err := g.Turn(c.piece.Square, c.to, c.moves); err != nil {
			t.Fatalf("ply %d %s %s-%s: %v", ply, c.piece.Tag(), c.piece.Square, c.to, err)
		}
	}
}

func TestSlidingPiecesStopAtFirstPiece(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "a1")
	place(t, b, Black, King, "h8")
	rook := place(t, b, White, Rook, "e4")
	place(t, b, White, Pawn, "g4")
	place(t, b, Black, Knight, "e6")

	moves := rook.ValidMoves(b)
	if l, ok := labelAt(moves, sq(t, "f4")); !ok || l.String() != "empty-standard" {
		t.Errorf("f4: got %v %v", l, ok)
	}
	for _, blocked := range []string{"g4", "h4", "e7", "e8"} {
		if _, ok := labelAt(moves, sq(t, blocked)); ok {
			t.Errorf("rook should not reach %s", blocked)
		}
	}
	if l, ok := labelAt(moves, sq(t, "e6")); !ok || l.String() != "opponent-standard" {
		t.Errorf("e6: got %v %v", l, ok)
	}
	if got := len(moves); got != 10 {
		t.Errorf("rook has %d moves, want 10", got)
	}
}

func TestBishopAndQueenRays(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "h1")
	place(t, b, Black, King, "h8")
	bishop := place(t, b, White, Bishop, "c1")
	queen := place(t, b, Black, Queen, "d4")
	place(t, b, Black, Pawn, "f4")

	bm := bishop.ValidMoves(b)
	if got := len(bm); got != 5 {
		t.Errorf("bishop has %d moves, want 5", got)
	}
	if l, ok := labelAt(bm, sq(t, "f4")); !ok || l.Occupancy != Opponent {
		t.Errorf("bishop should capture on f4, got %v %v", l, ok)
	}
	qm := queen.ValidMoves(b)
	if _, ok := labelAt(qm, sq(t, "f4")); ok {
		t.Error("queen cannot take its own pawn")
	}
	if _, ok := labelAt(qm, sq(t, "g4")); ok {
		t.Error("queen cannot jump its own pawn")
	}
	if l, ok := labelAt(qm, sq(t, "h8")); ok {
		t.Errorf("h8 holds the queen's own king, got %v", l)
	}
	if _, ok := labelAt(qm, sq(t, "a7")); !ok {
		t.Error("queen should reach a7")
	}
}

func TestKnightJumpsOverPieces(t *testing.T) {
	b := NewBoard()
	knight := b.PieceAt(sq(t, "b1"))
	moves := knight.ValidMoves(b)
	if len(moves) != 2 {
		t.Fatalf("knight has %d moves, want 2: %v", len(moves), Destinations(moves))
	}
	for _, name := range []string{"a3", "c3"} {
		if l, ok := labelAt(moves, sq(t, name)); !ok || l.Class != Standard || l.Occupancy != Empty {
			t.Errorf("%s: got %v %v", name, l, ok)
		}
	}
}

func TestKnightCapturesButNotOwnPieces(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "a1")
	place(t, b, Black, King, "a8")
	knight := place(t, b, White, Knight, "d4")
	place(t, b, White, Pawn, "e6")
	place(t, b, Black, Rook, "c6")

	moves := knight.ValidMoves(b)
	if _, ok := labelAt(moves, sq(t, "e6")); ok {
		t.Error("knight landed on its own pawn")
	}
	if l, ok := labelAt(moves, sq(t, "c6")); !ok || l.Occupancy != Opponent {
		t.Errorf("c6: got %v %v", l, ok)
	}
	if len(moves) != 7 {
		t.Errorf("knight has %d moves, want 7", len(moves))
	}
}

func TestPawnAdvances(t *testing.T) {
	b := NewBoard()
	white := b.PieceAt(sq(t, "e2"))
	moves := white.ValidMoves(b)
	if len(moves) != 2 {
		t.Fatalf("e2 pawn has %d moves, want 2", len(moves))
	}
	commit(t, b, "e2", "e3")
	if moves := white.ValidMoves(b); len(moves) != 1 || moves[0].To != sq(t, "e4") {
		t.Fatalf("moved pawn should only step once, got %v", Destinations(moves))
	}

	black := b.PieceAt(sq(t, "d7"))
	if _, ok := labelAt(black.ValidMoves(b), sq(t, "d5")); !ok {
		t.Fatal("black pawns advance toward row 7")
	}
}

func TestPawnBlocked(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "a1")
	place(t, b, Black, King, "a8")
	pawn := place(t, b, White, Pawn, "e2")
	place(t, b, Black, Knight, "e4")
	if moves := pawn.ValidMoves(b); len(moves) != 1 {
		t.Fatalf("double step onto a piece: %v", Destinations(moves))
	}
	place(t, b, Black, Bishop, "e3")
	if moves := pawn.ValidMoves(b); len(moves) != 0 {
		t.Fatalf("blocked pawn moves: %v", Destinations(moves))
	}
}

func TestPawnDiagonalCaptures(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "a1")
	place(t, b, Black, King, "a8")
	pawn := place(t, b, White, Pawn, "d4")
	place(t, b, Black, Knight, "c5")
	place(t, b, White, Knight, "e5")

	moves := pawn.ValidMoves(b)
	if l, ok := labelAt(moves, sq(t, "c5")); !ok || l.String() != "opponent-standard" {
		t.Errorf("c5: %v %v", l, ok)
	}
	if _, ok := labelAt(moves, sq(t, "e5")); ok {
		t.Error("pawn captured its own knight")
	}
}

func TestKingAvoidsAttackedSquares(t *testing.T) {
	b := NewEmptyBoard()
	king := place(t, b, White, King, "e1")
	place(t, b, Black, King, "h8")
	place(t, b, Black, Rook, "d8")

	moves := king.ValidMoves(b)
	for _, attacked := range []string{"d1", "d2"} {
		if _, ok := labelAt(moves, sq(t, attacked)); ok {
			t.Errorf("king may step onto %s attacked by the rook", attacked)
		}
	}
	for _, free := range []string{"e2", "f2", "f1"} {
		if _, ok := labelAt(moves, sq(t, free)); !ok {
			t.Errorf("king should reach %s", free)
		}
	}
}

func TestKingCannotTakeDefendedPiece(t *testing.T) {
	b := NewEmptyBoard()
	king := place(t, b, White, King, "e1")
	place(t, b, Black, King, "h8")
	place(t, b, Black, Pawn, "e2")
	place(t, b, Black, Bishop, "c4")
	place(t, b, Black, Pawn, "f2")

	moves := king.ValidMoves(b)
	if _, ok := labelAt(moves, sq(t, "e2")); ok {
		t.Error("e2 pawn is defended by the bishop")
	}
	if l, ok := labelAt(moves, sq(t, "f2")); !ok || l.Occupancy != Opponent {
		t.Errorf("f2 pawn is undefended: %v %v", l, ok)
	}
}

func TestKingsKeepTheirDistance(t *testing.T) {
	b := NewEmptyBoard()
	white := place(t, b, White, King, "e4")
	place(t, b, Black, King, "e6")
	moves := white.ValidMoves(b)
	for _, name := range []string{"d5", "e5", "f5"} {
		if _, ok := labelAt(moves, sq(t, name)); ok {
			t.Errorf("king may step next to the other king on %s", name)
		}
	}
}

func castlingBoard(t *testing.T) (*Board, *Piece) {
	t.Helper()
	b := NewEmptyBoard()
	king := place(t, b, White, King, "e1")
	place(t, b, White, Rook, "a1")
	place(t, b, White, Rook, "h1")
	place(t, b, Black, King, "e8")
	return b, king
}

func TestCastlingOffered(t *testing.T) {
	b, king := castlingBoard(t)
	moves := king.ValidMoves(b)
	if l, ok := labelAt(moves, sq(t, "g1")); !ok || l.String() != "empty-kingside_castling" {
		t.Errorf("g1: %v %v", l, ok)
	}
	if l, ok := labelAt(moves, sq(t, "c1")); !ok || l.String() != "empty-queenside_castling" {
		t.Errorf("c1: %v %v", l, ok)
	}
}

func TestCastlingAbsentAfterRookMoved(t *testing.T) {
	b, king := castlingBoard(t)
	commit(t, b, "h1", "h2")
	commit(t, b, "e8", "d8")
	commit(t, b, "h2", "h1")
	if got := len(b.PieceAt(sq(t, "h1")).History); got != 3 {
		t.Fatalf("rook history %d, want 3", got)
	}
	moves := king.ValidMoves(b)
	if _, ok := labelAt(moves, sq(t, "g1")); ok {
		t.Error("kingside castling offered after the rook moved")
	}
	if _, ok := labelAt(moves, sq(t, "c1")); !ok {
		t.Error("queenside castling should remain")
	}
}

func TestCastlingAbsentAfterKingMoved(t *testing.T) {
	b, king := castlingBoard(t)
	commit(t, b, "e1", "e2")
	commit(t, b, "e2", "e1")
	for _, m := range king.ValidMoves(b) {
		if m.Label.Class.castling() {
			t.Fatalf("castling to %s offered after king moved", m.To)
		}
	}
}

func TestCastlingBlockedOrAttacked(t *testing.T) {
	tests := []struct {
		name      string
		side      Side
		kind      Kind
		at        string
		kingside  bool
		queenside bool
	}{
		{name: "KnightBetween", side: White, kind: Knight, at: "b1", kingside: true, queenside: false},
		{name: "BishopBetween", side: Black, kind: Bishop, at: "f1", kingside: false, queenside: true},
		{name: "DestinationAttacked", side: Black, kind: Rook, at: "g8", kingside: false, queenside: true},
		{name: "PassThroughAttacked", side: Black, kind: Rook, at: "d8", kingside: true, queenside: false},
		{name: "InCheck", side: Black, kind: Rook, at: "e7", kingside: false, queenside: false},
		{name: "RookOnlyAttacked", side: Black, kind: Rook, at: "h7", kingside: true, queenside: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, king := castlingBoard(t)
			place(t, b, tt.side, tt.kind, tt.at)
			moves := king.ValidMoves(b)
			if _, ok := labelAt(moves, sq(t, "g1")); ok != tt.kingside {
				t.Errorf("kingside offered = %v, want %v", ok, tt.kingside)
			}
			if _, ok := labelAt(moves, sq(t, "c1")); ok != tt.queenside {
				t.Errorf("queenside offered = %v, want %v", ok, tt.queenside)
			}
		})
	}
}

func TestEnPassantOffered(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "e1")
	place(t, b, Black, King, "e8")
	white := place(t, b, White, Pawn, "e2")
	place(t, b, Black, Pawn, "d7")
	place(t, b, Black, Pawn, "f7")

	commit(t, b, "e2", "e4")
	commit(t, b, "e8", "d8")
	commit(t, b, "e4", "e5")
	commit(t, b, "d7", "d5")

	moves := white.ValidMoves(b)
	if l, ok := labelAt(moves, sq(t, "d6")); !ok || l.String() != "empty-left_passant" {
		t.Fatalf("d6: %v %v", l, ok)
	}
	if _, ok := labelAt(moves, sq(t, "f6")); ok {
		t.Fatal("f7 pawn has not moved, no en passant on f6")
	}

	r := commit(t, b, "e5", "d6")
	if r.Captured == nil || r.Captured.Square != sq(t, "d5") {
		t.Fatalf("captured %+v, want the pawn on d5", r.Captured)
	}
	if b.PieceAt(sq(t, "d5")) != nil {
		t.Fatal("d5 should be empty after en passant")
	}
	if b.PieceAt(sq(t, "d6")) != white {
		t.Fatal("white pawn should stand on d6")
	}
	if r.Special != EnPassant {
		t.Fatalf("special = %q", r.Special)
	}
}

// The eligibility test only counts the neighbour's moves, so the capture stays
// available after unrelated turns. Standard chess closes the window after one turn.
func TestEnPassantWindowDoesNotExpire(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, White, King, "e1")
	place(t, b, Black, King, "e8")
	white := place(t, b, White, Pawn, "e5")
	place(t, b, Black, Pawn, "f7")
	white.History = append(white.History, white.Square)

	commit(t, b, "f7", "f5")
	commit(t, b, "e1", "e2")
	commit(t, b, "e8", "d8")

	if l, ok := labelAt(white.ValidMoves(b), sq(t, "f6")); !ok || l.Class != RightPassant {
		t.Fatalf("f6: %v %v", l, ok)
	}
}
