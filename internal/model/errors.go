package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoPiece            = errors.New("no piece at start square")
	ErrIllegalDestination = errors.New("destination is not a legal move")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrGameNotRunning     = errors.New("game is not running")
	ErrInvalidTransition  = errors.New("invalid game state transition")
	ErrOutOfBounds        = errors.New("square out of bounds")
	ErrSquareOccupied     = errors.New("square already occupied")
	ErrDuplicateKing      = errors.New("side already has a king")

	// ErrInvariant marks board corruption. The game that produced it cannot continue.
	ErrInvariant = errors.New("board invariant violated")
)

// InvariantError describes an internal inconsistency found while executing a move.
type InvariantError struct {
	Op     string
	Square Square
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Op, e.Square, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// IsFatal reports whether err must end the game session.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvariant)
}

// TurnError is returned when a player touches the opponent's piece.
type TurnError struct {
	Piece   *Piece
	ToMove  string
	Request Square
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("can't move %s at %s, it is %s's turn", e.Piece.Tag(), e.Request, e.ToMove)
}

func (e *TurnError) Unwrap() error {
	return ErrNotYourTurn
}
