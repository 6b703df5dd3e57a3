package model

import "fmt"

type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (s Side) forward() int {
	if s == White {
		return -1
	}
	return 1
}

func (s Side) homeRow() int {
	if s == White {
		return 7
	}
	return 0
}

func (s Side) lastRow() int {
	return 7 - s.homeRow()
}

type Kind string

const (
	King   Kind = "king"
	Queen  Kind = "queen"
	Rook   Kind = "rook"
	Bishop Kind = "bishop"
	Knight Kind = "knight"
	Pawn   Kind = "pawn"
)

func (k Kind) getPieceNotation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func (k Kind) valid() bool {
	switch k {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// PieceID indexes the board's piece arena. The zero value means "no piece".
type PieceID int

const NoPiece PieceID = 0

type Piece struct {
	ID       PieceID   `json:"id"`
	Side     Side      `json:"side"`
	Kind     Kind      `json:"kind"`
	Square   Square    `json:"square"`
	History  []Square  `json:"history"`
	Captured []PieceID `json:"captured"`
}

// HasMoved is false until the piece leaves its spawn square.
func (p *Piece) HasMoved() bool {
	return len(p.History) > 1
}

// Tag names the piece as "<side>_<kind>", e.g. "white_knight".
func (p *Piece) Tag() string {
	return fmt.Sprintf("%s_%s", p.Side, p.Kind)
}

// arena owns every piece record created for one game. IDs are never reused.
type arena struct {
	pieces []*Piece
}

func newArena() *arena {
	return &arena{pieces: []*Piece{nil}}
}

func (a *arena) spawn(side Side, kind Kind, sq Square) *Piece {
	p := &Piece{
		ID:       PieceID(len(a.pieces)),
		Side:     side,
		Kind:     kind,
		Square:   sq,
		History:  []Square{sq},
		Captured: []PieceID{},
	}
	a.pieces = append(a.pieces, p)
	return p
}

func (a *arena) get(id PieceID) *Piece {
	if id <= NoPiece || int(id) >= len(a.pieces) {
		return nil
	}
	return a.pieces[id]
}
