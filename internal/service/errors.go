package service

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrGameFull      = errors.New("game is full")
	ErrUnknownAction = errors.New("unknown game action")
	ErrNotAuthorized = errors.New("not authorized to join this game")

	ErrDuplicateConnection = errors.New("player already connected")
)
