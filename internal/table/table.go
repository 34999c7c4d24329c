// Package table seats two players at a match and schedules their turns.
// A Table is the game.Host the engine runs under: it tracks whose turn it
// is, ends sub-games once both players pass and keeps an undo history.
package table

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/madrigal/internal/game"
	"github.com/peterkuimelis/madrigal/internal/log"
)

var (
	// ErrNotYourTurn is returned when a seat moves out of turn.
	ErrNotYourTurn = fmt.Errorf("%w: not your turn", game.ErrInvalidMove)

	// ErrMatchOver is returned for moves after the match has been decided.
	ErrMatchOver = errors.New("match is over")

	// ErrNothingToUndo is returned by Undo on a fresh table.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Table holds one match. All methods are safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	engine  *game.Engine
	state   game.GameState
	current game.PlayerID
	starter game.PlayerID
	turn    int
	history []snapshot
	logger  *zap.Logger
}

type snapshot struct {
	state   game.GameState
	current game.PlayerID
	starter game.PlayerID
	turn    int
}

// New deals a fresh match with rng and begins the first turn. Player0
// starts the first sub-game. logger may be nil.
func New(engine *game.Engine, rng *rand.Rand, logger *zap.Logger) *Table {
	return FromState(engine, engine.Setup(rng), game.Player0, logger)
}

// FromState seats a table on an existing state with current to move.
func FromState(engine *game.Engine, gs game.GameState, current game.PlayerID, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Table{
		engine:  engine,
		current: current,
		starter: current,
		turn:    1,
		logger:  logger,
	}
	t.state = engine.TurnBegin(gs, &host{t: t})
	logger.Info("match started",
		zap.Stringer("starter", current),
		zap.Int("hand_p1", len(gs.Players[0].Hand)),
		zap.Int("hand_p2", len(gs.Players[1].Hand)),
		zap.Int("deck", len(gs.Deck)),
	)
	return t
}

// host adapts a Table to game.Host. The engine calls it while the table
// lock is held, so it touches the table fields directly.
type host struct {
	t     *Table
	ended bool
}

func (h *host) CurrentPlayer() game.PlayerID { return h.t.current }

func (h *host) RequestStage(player game.PlayerID, stage game.Stage, moveLimit int) {
	h.t.logger.Debug("stage requested",
		zap.Stringer("player", player),
		zap.Stringer("stage", stage),
		zap.Int("move_limit", moveLimit),
	)
}

func (h *host) EndTurn() { h.ended = true }

// Apply plays m for seat. While a follow-up stage is pending only the
// stage's player may move.
func (t *Table) Apply(seat game.PlayerID, m game.Move) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if game.MatchOver(t.state) {
		return ErrMatchOver
	}
	if !seat.Valid() || seat != game.ActingPlayer(t.state, t.current) {
		return ErrNotYourTurn
	}

	h := &host{t: t}
	next, err := t.engine.Apply(t.state, h, m)
	if err != nil {
		t.logger.Debug("move rejected", zap.Stringer("seat", seat), zap.String("move", m.Kind.String()), zap.Error(err))
		return err
	}

	t.history = append(t.history, t.snapshot())
	t.state = next

	if h.ended {
		t.current = t.current.Opponent()
		t.turn++
	}
	if game.BothPassed(t.state) {
		t.endSubGame()
	}
	if h.ended && !game.MatchOver(t.state) {
		t.state = t.engine.TurnBegin(t.state, h)
	}
	return nil
}

// endSubGame scores the finished sub-game and hands the next one to the
// seat that did not start this one.
func (t *Table) endSubGame() {
	t.state = t.engine.EndSubGame(t.state)
	t.logger.Info("sub-game ended",
		zap.Int("played", t.state.SubGamesPlayed),
		zap.Int("won_p1", t.state.Players[0].GamesWon),
		zap.Int("won_p2", t.state.Players[1].GamesWon),
	)
	if game.MatchOver(t.state) {
		if w, ok := game.MatchWinner(t.state); ok {
			t.logger.Info("match won", zap.Stringer("winner", w))
		} else {
			t.logger.Info("match drawn")
		}
		return
	}
	t.starter = t.starter.Opponent()
	t.current = t.starter
}

func (t *Table) snapshot() snapshot {
	return snapshot{state: t.state, current: t.current, starter: t.starter, turn: t.turn}
}

// Undo reverts the last successful move.
func (t *Table) Undo() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.history) == 0 {
		return ErrNothingToUndo
	}
	last := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
	t.state = last.state
	t.current = last.current
	t.starter = last.starter
	t.turn = last.turn
	t.logger.Debug("move undone", zap.Int("turn", t.turn))
	return nil
}

// State returns the current game state. States are never modified in
// place, so the caller may keep it.
func (t *Table) State() game.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Turn returns the 1-based turn counter.
func (t *Table) Turn() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.turn
}

// CurrentPlayer returns the seat whose turn it is.
func (t *Table) CurrentPlayer() game.PlayerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Actor returns the seat expected to move next.
func (t *Table) Actor() game.PlayerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return game.ActingPlayer(t.state, t.current)
}

// Over reports whether the match has been decided.
func (t *Table) Over() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return game.MatchOver(t.state)
}

// Winner returns the match winner once there is one.
func (t *Table) Winner() (game.PlayerID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return game.MatchWinner(t.state)
}

// LegalMoves lists the moves seat may make now, or nil when it is not
// seat's move.
func (t *Table) LegalMoves(seat game.PlayerID) []game.Move {
	t.mu.Lock()
	defer t.mu.Unlock()
	if game.MatchOver(t.state) || seat != game.ActingPlayer(t.state, t.current) {
		return nil
	}
	return game.LegalMoves(t.state, seat)
}

// EventsSince returns the events recorded after the first n.
func (t *Table) EventsSince(n int) []log.GameEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n >= len(t.state.Events) {
		return nil
	}
	return append([]log.GameEvent(nil), t.state.Events[n:]...)
}

// Result describes the outcome of a finished match, or "" while it runs.
func (t *Table) Result() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !game.MatchOver(t.state) {
		return ""
	}
	g0, g1 := t.state.Players[0].GamesWon, t.state.Players[1].GamesWon
	if w, ok := game.MatchWinner(t.state); ok {
		return fmt.Sprintf("%s wins the match %d-%d", w, g0, g1)
	}
	return fmt.Sprintf("Match drawn %d-%d", g0, g1)
}
