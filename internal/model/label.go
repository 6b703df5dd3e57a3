package model

import (
	"encoding/json"
	"strings"

	"golang.org/x/exp/slices"
)

type Occupancy string

const (
	Empty    Occupancy = "empty"
	Opponent Occupancy = "opponent"
)

type MoveClass string

const (
	Standard          MoveClass = "standard"
	QueensideCastling MoveClass = "queenside_castling"
	KingsideCastling  MoveClass = "kingside_castling"
	LeftPassant       MoveClass = "left_passant"
	RightPassant      MoveClass = "right_passant"
)

func (c MoveClass) castling() bool {
	return c == QueensideCastling || c == KingsideCastling
}

func (c MoveClass) passant() bool {
	return c == LeftPassant || c == RightPassant
}

// Label tags a destination with what stands there and what kind of move reaches it.
type Label struct {
	Occupancy Occupancy
	Class     MoveClass
}

func (l Label) String() string {
	return string(l.Occupancy) + "-" + string(l.Class)
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = ParseLabel(s)
	return nil
}

// ParseLabel splits a composed tag. Unknown parts survive and are rejected at execution.
func ParseLabel(s string) Label {
	occupancy, class, _ := strings.Cut(s, "-")
	return Label{Occupancy: Occupancy(occupancy), Class: MoveClass(class)}
}

// validate rejects labels that no generator can produce.
func (l Label) validate() bool {
	switch l.Class {
	case Standard:
		return l.Occupancy == Empty || l.Occupancy == Opponent
	case QueensideCastling, KingsideCastling, LeftPassant, RightPassant:
		return l.Occupancy == Empty
	}
	return false
}

// MoveDescriptor is one destination offered by move generation.
type MoveDescriptor struct {
	To    Square `json:"to"`
	Label Label  `json:"label"`
}

// FindMove returns the descriptor targeting sq.
func FindMove(moves []MoveDescriptor, sq Square) (MoveDescriptor, bool) {
	i := slices.IndexFunc(moves, func(m MoveDescriptor) bool { return m.To == sq })
	if i < 0 {
		return MoveDescriptor{}, false
	}
	return moves[i], true
}

// Destinations returns the target squares in generation order.
func Destinations(moves []MoveDescriptor) []Square {
	out := make([]Square, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To)
	}
	return out
}
