// service/game_manager.go
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chesssage-backend/internal/model"
	"go.uber.org/zap"
)

type GameManager struct {
	games  map[string]*Session
	mu     sync.RWMutex
	logger *zap.Logger
	done   chan struct{}
	once   sync.Once
}

// NewGameManager starts the clock loop that feeds elapsed time to running games.
// A non-positive tickInterval disables it.
func NewGameManager(logger *zap.Logger, tickInterval time.Duration) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	gm := &GameManager{
		games:  make(map[string]*Session),
		logger: logger,
		done:   make(chan struct{}),
	}

	if tickInterval > 0 {
		go gm.processTicks(tickInterval)
	}

	return gm
}

// Close stops the clock loop and every session writer.
func (gm *GameManager) Close() {
	gm.once.Do(func() {
		close(gm.done)
		gm.mu.RLock()
		defer gm.mu.RUnlock()
		for _, s := range gm.games {
			s.Close()
		}
	})
}

func (gm *GameManager) processTicks(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-gm.done:
			return
		case now := <-ticker.C:
			gm.tickAll(now.Sub(last))
			last = now
		}
	}
}

func (gm *GameManager) tickAll(d time.Duration) {
	gm.mu.RLock()
	sessions := make([]*Session, 0, len(gm.games))
	for _, s := range gm.games {
		sessions = append(sessions, s)
	}
	gm.mu.RUnlock()

	for _, s := range sessions {
		s.Tick(d)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}

	gm.games[gameID] = NewSession(gameID, gm.logger)
	gm.logger.Info("game created", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Side, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.Snapshot, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, from, to model.Square) (model.TurnRecord, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.TurnRecord{}, err
	}
	return game.MakeMove(playerID, from, to)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
