package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

// Square is a (row, column) coordinate. Row 0 is black's back rank.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < boardSize && s.Col >= 0 && s.Col < boardSize
}

func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String returns the algebraic name of the square, e.g. "E4".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+s.Col, boardSize-s.Row)
}

func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, boardSize-s.Row)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", 'a'+s.Col)
}

// ParseSquare accepts names like "e4" or "E4".
func ParseSquare(name string) (Square, error) {
	name = strings.TrimSpace(name)
	if len(name) != 2 {
		return Square{}, fmt.Errorf("parse square %q: %w", name, ErrOutOfBounds)
	}
	file := strings.ToLower(name[:1])[0]
	rank := name[1]
	sq := Square{Row: boardSize - int(rank-'0'), Col: int(file) - 'a'}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' || !sq.InBounds() {
		return Square{}, fmt.Errorf("parse square %q: %w", name, ErrOutOfBounds)
	}
	return sq, nil
}

// Adjacent reports whether two distinct squares touch, diagonals included.
func Adjacent(a, b Square) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return a != b && dr <= 1 && dc <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
