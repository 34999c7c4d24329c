package game

import (
	"time"

	"github.com/peterkuimelis/madrigal/internal/log"
)

// Host is the turn scheduler the engine runs under. The engine never advances
// turns itself; it asks the host to.
type Host interface {
	// CurrentPlayer returns the seat whose turn it is.
	CurrentPlayer() PlayerID

	// RequestStage restricts the next moveLimit moves of player to stage.
	RequestStage(player PlayerID, stage Stage, moveLimit int)

	// EndTurn passes the turn to the other seat.
	EndTurn()
}

// Engine applies moves to game states. It holds no match state of its own,
// so one Engine can serve any number of matches.
type Engine struct {
	Rules  Rules
	Logger log.EventLogger  // optional, receives events of successful moves
	Clock  func() time.Time // event timestamps
}

// NewEngine creates an engine for the given rules. logger may be nil.
func NewEngine(rules Rules, logger log.EventLogger) *Engine {
	return &Engine{
		Rules:  rules,
		Logger: logger,
		Clock:  time.Now,
	}
}

// ActingPlayer returns the seat expected to move next: the stage's player
// while a follow-up stage is pending, the host's current player otherwise.
func ActingPlayer(gs GameState, current PlayerID) PlayerID {
	if gs.Pending.Active() {
		return gs.Pending.Player
	}
	return current
}

// txn collects the new state and the host calls of one move. Nothing reaches
// the host or the logger until commit, so a rejected move leaves no trace.
type txn struct {
	e       *Engine
	gs      GameState
	actor   PlayerID
	mark    int
	stage   *PendingStage
	endTurn bool
}

func (e *Engine) begin(gs GameState, actor PlayerID) *txn {
	return &txn{e: e, gs: gs, actor: actor, mark: len(gs.Events)}
}

func (t *txn) log(event log.GameEvent) {
	event.Time = t.e.now()
	t.gs = appendEvent(t.gs, event)
}

// requestStage enters a follow-up stage and records it for the host.
func (t *txn) requestStage(p PendingStage) {
	t.gs.Pending = p
	t.stage = &p
	t.log(log.NewStageRequestEvent(int(p.Player), p.Stage.Prompt(), p.MovesLeft))
}

// completeStage returns to the default stage and ends the turn.
func (t *txn) completeStage() {
	done := t.gs.Pending
	t.gs.Pending = PendingStage{}
	t.stage = nil
	t.log(log.NewStageCompleteEvent(int(done.Player), done.Stage.Prompt()))
	t.endTurn = true
}

func (t *txn) commit(host Host) GameState {
	if t.e.Logger != nil {
		for _, ev := range t.gs.Events[t.mark:] {
			t.e.Logger.Log(ev)
		}
	}
	if t.stage != nil {
		host.RequestStage(t.stage.Player, t.stage.Stage, t.stage.MovesLeft)
	}
	if t.endTurn {
		host.EndTurn()
	}
	return t.gs
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

// record appends events outside a move and mirrors them to the logger.
func (e *Engine) record(gs GameState, events ...log.GameEvent) GameState {
	for _, ev := range events {
		ev.Time = e.now()
		gs = appendEvent(gs, ev)
		if e.Logger != nil {
			e.Logger.Log(gs.Events[len(gs.Events)-1])
		}
	}
	return gs
}
