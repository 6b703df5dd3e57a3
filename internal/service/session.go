package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chesssage-backend/internal/model"
	"github.com/benbeisheim/chesssage-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session serialises access to one game and fans its events out to connections.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.GameState
	seats       map[model.Side]string
	connections *GameConnections
	logger      *zap.Logger

	// outbox is drained by a single writer so clients see messages in commit order.
	outbox chan ws.Message
	closed bool
}

func NewSession(id string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:          id,
		game:        model.NewGameState(model.NewBoard(), "", ""),
		seats:       make(map[model.Side]string),
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
		outbox:      make(chan ws.Message, outboxSize),
	}
	s.game.Subscribe(&turnLogger{logger: s.logger})
	s.game.Subscribe(model.TurnObserverFunc(s.broadcastTurn))
	go s.writeLoop()
	return s
}

const outboxSize = 64

// Close stops the writer. Messages already queued are still delivered.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.outbox)
	}
}

func (s *Session) writeLoop() {
	for msg := range s.outbox {
		s.broadcast(msg)
	}
}

// AddPlayer seats playerID on the first free side. A seated player gets their side back.
func (s *Session) AddPlayer(playerID string) (model.Side, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if side, ok := s.sideOf(playerID); ok {
		return side, nil
	}
	for _, side := range []model.Side{model.White, model.Black} {
		if _, taken := s.seats[side]; !taken {
			s.seats[side] = playerID
			s.game.SetPlayerName(side, playerID)
			s.logger.Info("player seated", zap.String("player_id", playerID), zap.String("color", string(side)))
			return side, nil
		}
	}
	return "", ErrGameFull
}

func (s *Session) sideOf(playerID string) (model.Side, bool) {
	for side, id := range s.seats {
		if id == playerID {
			return side, true
		}
	}
	return "", false
}

func (s *Session) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sideOf(playerID)
	return ok
}

func (s *Session) canSpectate() bool {
	return len(s.seats) < 2
}

// Control applies a state machine action: start, pause, resume or stop.
func (s *Session) Control(action string) (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch action {
	case "start":
		err = s.game.Start()
	case "pause":
		err = s.game.Pause()
	case "resume":
		err = s.game.Resume()
	case "stop":
		err = s.game.Stop()
	default:
		err = fmt.Errorf("%q: %w", action, ErrUnknownAction)
	}
	if err != nil {
		return s.game.State(), err
	}
	s.logger.Info("game state changed", zap.String("action", action), zap.String("state", string(s.game.State())))
	s.broadcastState()
	return s.game.State(), nil
}

// ValidMoves lists the destinations of the piece on sq.
func (s *Session) ValidMoves(sq model.Square) []model.MoveDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ValidMoves(sq)
}

// MakeMove plays from→to for playerID. A side without a seated player can be
// moved by anyone, which allows hot-seat games.
func (s *Session) MakeMove(playerID string, from, to model.Square) (model.TurnRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toMove := s.game.CurrentPlayer().Color
	if seated, ok := s.seats[toMove]; ok && seated != playerID {
		return model.TurnRecord{}, fmt.Errorf("player %s: %w", playerID, model.ErrNotYourTurn)
	}

	// Moves are generated here, under the lock, so they cannot go stale before Turn.
	return s.play(playerID, from, to, s.game.ValidMoves(from))
}

// play must be called with s.mu held.
func (s *Session) play(playerID string, from, to model.Square, valid []model.MoveDescriptor) (model.TurnRecord, error) {
	record, err := s.game.Turn(from, to, valid)
	if err != nil {
		if model.IsFatal(err) {
			s.logger.Error("game aborted", zap.Error(err))
			s.broadcastState()
		} else {
			s.logger.Debug("move rejected", zap.String("player_id", playerID), zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(err))
		}
		return model.TurnRecord{}, err
	}
	s.broadcastState()
	return record, nil
}

// Tick attributes d to the player on the move.
func (s *Session) Tick(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Tick(d)
}

func (s *Session) GetState() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) Log() []model.TurnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Log()
}

func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	isAuthorized := func() bool { _, ok := s.sideOf(playerID); return ok }() || s.canSpectate()
	s.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "player already connected"),
		)
		conn.Close()
		return ErrDuplicateConnection
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	s.logger.Debug("connection registered", zap.String("player_id", playerID))

	s.mu.Lock()
	s.broadcastState()
	s.mu.Unlock()
	return nil
}

// UnregisterConnection drops conn if it is still the one registered for playerID.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		delete(s.connections.connections, playerID)
		s.logger.Debug("connection unregistered", zap.String("player_id", playerID))
	}
}

// broadcastState must be called with s.mu held so snapshots are queued in the
// order they were taken.
func (s *Session) broadcastState() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.Snapshot())
	if err != nil {
		s.logger.Error("failed to marshal state", zap.Error(err))
		return
	}
	s.enqueue(msg)
}

// broadcastTurn runs as a turn observer, inside Turn and so under s.mu.
func (s *Session) broadcastTurn(record model.TurnRecord) {
	msg, err := ws.NewMessage(ws.MessageTypeTurn, record)
	if err != nil {
		s.logger.Error("failed to marshal turn", zap.Error(err))
		return
	}
	s.enqueue(msg)
}

func (s *Session) enqueue(msg ws.Message) {
	if s.closed {
		return
	}
	s.outbox <- msg
}

func (s *Session) broadcast(msg ws.Message) {
	// Get a snapshot of connections under the connections mutex
	s.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		activeConnections[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Warn("failed to send message", zap.String("player_id", playerID), zap.String("type", string(msg.Type)), zap.Error(err))
			s.connections.mu.Lock()
			delete(s.connections.connections, playerID)
			s.connections.mu.Unlock()
		}
	}
}

// turnLogger writes every committed turn to the structured log.
type turnLogger struct {
	logger *zap.Logger
}

func (l *turnLogger) TurnCommitted(r model.TurnRecord) {
	l.logger.Info("turn committed",
		zap.Int("turn", r.TurnNumber),
		zap.String("player", r.Player.Name),
		zap.String("color", string(r.Player.Color)),
		zap.Duration("player_elapsed", r.Player.ElapsedTime),
		zap.String("piece", string(r.Move.Piece)),
		zap.Stringer("start", r.Move.Start),
		zap.Stringer("end", r.Move.End),
		zap.String("special", string(r.Move.Special)),
		zap.String("captured", string(r.Move.Captured)),
		zap.String("notation", r.Move.Notation),
		zap.Duration("move_elapsed", r.Move.ElapsedTime),
	)
}
