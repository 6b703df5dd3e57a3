package service

import (
	"fmt"

	"github.com/benbeisheim/chesssage-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Side, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetLog(gameID string) ([]model.TurnRecord, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Log(), nil
}

// ValidMoves lists the destinations of the piece on the named square.
func (gs *GameService) ValidMoves(gameID string, square string) ([]model.MoveDescriptor, error) {
	sq, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	moves := game.ValidMoves(sq)
	if moves == nil {
		moves = []model.MoveDescriptor{}
	}
	return moves, nil
}

// HandleMove plays a move given as algebraic square names.
func (gs *GameService) HandleMove(gameID string, playerID string, from, to string) (model.TurnRecord, error) {
	start, err := model.ParseSquare(from)
	if err != nil {
		return model.TurnRecord{}, err
	}
	end, err := model.ParseSquare(to)
	if err != nil {
		return model.TurnRecord{}, err
	}
	return gs.gameManager.MakeMove(gameID, playerID, start, end)
}

func (gs *GameService) Control(gameID string, action string) (model.State, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.Control(action)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
