package model

import (
	"fmt"
	"time"
)

type State string

const (
	Waiting State = "waiting"
	Running State = "running"
	Paused  State = "paused"
	Stopped State = "stopped"
)

// GameState sequences turns on a board it owns exclusively. It is not safe for
// concurrent use; callers serialise access.
type GameState struct {
	state     State
	board     *Board
	white     *Player
	black     *Player
	current   *Player
	turn      int
	log       []TurnRecord
	observers []TurnObserver
	fault     error
}

func NewGameState(board *Board, whiteName, blackName string) *GameState {
	g := &GameState{
		state: Waiting,
		board: board,
		white: newPlayer(White, whiteName),
		black: newPlayer(Black, blackName),
		turn:  1,
		log:   make([]TurnRecord, 0),
	}
	g.current = g.white
	return g
}

func (g *GameState) State() State           { return g.state }
func (g *GameState) Board() *Board          { return g.board }
func (g *GameState) CurrentPlayer() *Player { return g.current }
func (g *GameState) TurnNumber() int        { return g.turn }

// Fault is the invariant violation that stopped the game, if any.
func (g *GameState) Fault() error { return g.fault }

func (g *GameState) Player(side Side) *Player {
	if side == White {
		return g.white
	}
	return g.black
}

// SetPlayerName names a player; it is used when seats are filled after creation.
func (g *GameState) SetPlayerName(side Side, name string) {
	g.Player(side).Name = name
}

// Log returns a copy of the move log.
func (g *GameState) Log() []TurnRecord {
	out := make([]TurnRecord, len(g.log))
	copy(out, g.log)
	return out
}

func (g *GameState) Subscribe(o TurnObserver) {
	g.observers = append(g.observers, o)
}

func (g *GameState) transition(op string, to State, from ...State) error {
	for _, s := range from {
		if g.state == s {
			g.state = to
			return nil
		}
	}
	return fmt.Errorf("%s from %s: %w", op, g.state, ErrInvalidTransition)
}

func (g *GameState) Start() error  { return g.transition("start", Running, Waiting) }
func (g *GameState) Pause() error  { return g.transition("pause", Paused, Running) }
func (g *GameState) Resume() error { return g.transition("resume", Running, Paused) }
func (g *GameState) Stop() error   { return g.transition("stop", Stopped, Running, Paused) }

// Tick attributes d to the player holding the turn while the game runs.
func (g *GameState) Tick(d time.Duration) {
	if g.state != Running {
		return
	}
	g.current.clock.Add(d)
}

// ValidMoves returns the legal destinations of the piece on sq, or nil.
func (g *GameState) ValidMoves(sq Square) []MoveDescriptor {
	p := g.board.PieceAt(sq)
	if p == nil {
		return nil
	}
	return p.ValidMoves(g.board)
}

// Turn commits start→end for the player to move. valid must be the moving
// piece's ValidMoves on the current board. Any error leaves the game as it was,
// except fatal board errors which stop the game.
func (g *GameState) Turn(start, end Square, valid []MoveDescriptor) (TurnRecord, error) {
	if g.state != Running {
		return TurnRecord{}, fmt.Errorf("turn %d: %w", g.turn, ErrGameNotRunning)
	}
	piece := g.board.PieceAt(start)
	if piece == nil {
		return TurnRecord{}, fmt.Errorf("turn %d from %s: %w", g.turn, start, ErrNoPiece)
	}
	if piece.Side != g.current.Color {
		return TurnRecord{}, &TurnError{Piece: piece, ToMove: g.current.String(), Request: start}
	}

	result, err := g.board.MovePiece(start, end, valid)
	if err != nil {
		if IsFatal(err) {
			g.fault = err
			g.state = Stopped
		}
		return TurnRecord{}, fmt.Errorf("turn %d: %w", g.turn, err)
	}

	record := g.recordTurn(result)
	g.log = append(g.log, record)
	for _, o := range g.observers {
		o.TurnCommitted(record)
	}
	g.nextPlayer()
	return record, nil
}

func (g *GameState) recordTurn(r *MoveResult) TurnRecord {
	captured := Tag("")
	if r.Captured != nil {
		captured = Tag(r.Captured.Tag())
	}
	return TurnRecord{
		TurnNumber: g.turn,
		Player:     g.current.client(),
		Move: MoveRecord{
			Piece:       r.Piece.Kind,
			Start:       r.From,
			End:         r.To,
			Special:     Tag(r.Special),
			Captured:    captured,
			Notation:    r.Notation,
			ElapsedTime: g.current.TurnElapsed(),
		},
	}
}

func (g *GameState) nextPlayer() {
	g.current.clock.EndTurn()
	g.turn++
	if g.current.Color == White {
		g.current = g.black
	} else {
		g.current = g.white
	}
}

// Snapshot is the serialisable view handed to clients.
type Snapshot struct {
	State      State           `json:"state"`
	Board      [][]*Piece      `json:"board"`
	Placement  string          `json:"placement"`
	ToMove     Side            `json:"toMove"`
	TurnNumber int             `json:"turnNumber"`
	IsCheck    bool            `json:"isCheck"`
	Players    SnapshotPlayers `json:"players"`
	MoveLog    []TurnRecord    `json:"moveLog"`
	Fault      string          `json:"fault,omitempty"`
}

type SnapshotPlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (g *GameState) Snapshot() Snapshot {
	grid := make([][]*Piece, boardSize)
	for row := range grid {
		grid[row] = make([]*Piece, boardSize)
		for col := range grid[row] {
			if p := g.board.PieceAt(Square{Row: row, Col: col}); p != nil {
				cp := *p
				cp.History = append([]Square(nil), p.History...)
				cp.Captured = append([]PieceID(nil), p.Captured...)
				grid[row][col] = &cp
			}
		}
	}
	s := Snapshot{
		State:      g.state,
		Board:      grid,
		Placement:  g.board.Placement(),
		ToMove:     g.current.Color,
		TurnNumber: g.turn,
		IsCheck:    g.board.InCheck(g.current.Color),
		Players:    SnapshotPlayers{White: g.white.client(), Black: g.black.client()},
		MoveLog:    g.Log(),
	}
	if g.fault != nil {
		s.Fault = g.fault.Error()
	}
	return s
}
