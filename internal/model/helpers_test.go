package model

import (
	"strings"
	"testing"
)

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("parse %q: %v", name, err)
	}
	return s
}

func place(t *testing.T, b *Board, side Side, kind Kind, name string) *Piece {
	t.Helper()
	p, err := b.Place(side, kind, sq(t, name))
	if err != nil {
		t.Fatalf("place %s %s at %s: %v", side, kind, name, err)
	}
	return p
}

// commit plays from→to with freshly generated moves.
func commit(t *testing.T, b *Board, from, to string) *MoveResult {
	t.Helper()
	p := b.PieceAt(sq(t, from))
	if p == nil {
		t.Fatalf("no piece at %s", from)
	}
	r, err := b.MovePiece(sq(t, from), sq(t, to), p.ValidMoves(b))
	if err != nil {
		t.Fatalf("move %s-%s: %v", from, to, err)
	}
	return r
}

func labelAt(moves []MoveDescriptor, s Square) (Label, bool) {
	m, ok := FindMove(moves, s)
	return m.Label, ok
}

// boardFromPlacement builds a board from the first FEN field. Every piece is unmoved.
func boardFromPlacement(t *testing.T, placement string) *Board {
	t.Helper()
	kinds := map[byte]Kind{'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn}
	b := NewEmptyBoard()
	for row, rank := range strings.Split(placement, "/") {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			side := White
			lower := strings.ToLower(string(c))[0]
			if lower == c {
				side = Black
			}
			if _, err := b.Place(side, kinds[lower], Square{Row: row, Col: col}); err != nil {
				t.Fatalf("placement %q: %v", placement, err)
			}
			col++
		}
	}
	return b
}

func uci(from, to Square) string {
	return from.getSquareNotation() + to.getSquareNotation()
}

// allMoves lists every generated move of side as UCI strings.
func allMoves(b *Board, side Side) map[string]bool {
	out := map[string]bool{}
	for _, p := range b.Pieces(side) {
		for _, m := range p.ValidMoves(b) {
			out[uci(p.Square, m.To)] = true
		}
	}
	return out
}
