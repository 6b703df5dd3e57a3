package model

import (
	"fmt"
	"strings"
)

// Board maps squares to pieces. Piece records live in an arena shared with every
// copy of the board; the grid holds arena IDs.
type Board struct {
	arena *arena
	grid  [boardSize][boardSize]PieceID
}

var backRank = [boardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewEmptyBoard() *Board {
	return &Board{arena: newArena()}
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col := 0; col < boardSize; col++ {
		b.mustPlace(Black, backRank[col], Square{Row: 0, Col: col})
		b.mustPlace(Black, Pawn, Square{Row: 1, Col: col})
		b.mustPlace(White, Pawn, Square{Row: 6, Col: col})
		b.mustPlace(White, backRank[col], Square{Row: 7, Col: col})
	}
	return b
}

func (b *Board) mustPlace(side Side, kind Kind, sq Square) {
	if _, err := b.Place(side, kind, sq); err != nil {
		panic(err)
	}
}

// Place spawns a new piece on an empty square.
func (b *Board) Place(side Side, kind Kind, sq Square) (*Piece, error) {
	if !sq.InBounds() {
		return nil, fmt.Errorf("place %s %s: %w", side, kind, ErrOutOfBounds)
	}
	if !kind.valid() || (side != White && side != Black) {
		return nil, fmt.Errorf("place %s %s: unknown piece", side, kind)
	}
	if b.grid[sq.Row][sq.Col] != NoPiece {
		return nil, fmt.Errorf("place %s %s at %s: %w", side, kind, sq, ErrSquareOccupied)
	}
	if kind == King && b.King(side) != nil {
		return nil, fmt.Errorf("place %s king at %s: %w", side, sq, ErrDuplicateKing)
	}
	p := b.arena.spawn(side, kind, sq)
	b.grid[sq.Row][sq.Col] = p.ID
	return p, nil
}

// PieceAt returns nil for empty or out-of-range squares.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.arena.get(b.grid[sq.Row][sq.Col])
}

// Piece looks up any piece ever created on this board, captured ones included.
func (b *Board) Piece(id PieceID) *Piece {
	return b.arena.get(id)
}

// Copy returns a board with its own grid and the same piece records.
func (b *Board) Copy() *Board {
	return &Board{arena: b.arena, grid: b.grid}
}

// Pieces lists the side's pieces on the board in row-major order.
func (b *Board) Pieces(side Side) []*Piece {
	var pieces []*Piece
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if p := b.arena.get(b.grid[row][col]); p != nil && p.Side == side {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *Board) King(side Side) *Piece {
	for _, p := range b.Pieces(side) {
		if p.Kind == King {
			return p
		}
	}
	return nil
}

func (b *Board) isEmpty(sq Square) bool {
	return b.grid[sq.Row][sq.Col] == NoPiece
}

func (b *Board) set(sq Square, id PieceID) {
	b.grid[sq.Row][sq.Col] = id
}

func (b *Board) clear(sq Square) {
	b.grid[sq.Row][sq.Col] = NoPiece
}

// Placement renders the piece placement field of a FEN string.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < boardSize; row++ {
		empty := 0
		for col := 0; col < boardSize; col++ {
			p := b.arena.get(b.grid[row][col])
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(p.fenLetter())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row < boardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (p *Piece) fenLetter() string {
	letter := p.Kind.getPieceNotation()
	if p.Kind == Pawn {
		letter = "P"
	}
	if p.Side == Black {
		return strings.ToLower(letter)
	}
	return letter
}
