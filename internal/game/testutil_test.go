package game

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/peterkuimelis/madrigal/internal/log"
)

// RecordingHost is a Host that tracks the calls the engine makes. EndTurn
// hands the turn to the other seat.
type RecordingHost struct {
	current  PlayerID
	stages   []StageCall
	endTurns int
}

type StageCall struct {
	Player    PlayerID
	Stage     Stage
	MoveLimit int
}

func NewRecordingHost(current PlayerID) *RecordingHost {
	return &RecordingHost{current: current}
}

func (h *RecordingHost) CurrentPlayer() PlayerID { return h.current }

func (h *RecordingHost) RequestStage(player PlayerID, stage Stage, moveLimit int) {
	h.stages = append(h.stages, StageCall{Player: player, Stage: stage, MoveLimit: moveLimit})
}

func (h *RecordingHost) EndTurn() {
	h.endTurns++
	h.current = h.current.Opponent()
}

// LastStage returns the most recent stage request, or a zero call if none.
func (h *RecordingHost) LastStage() StageCall {
	if len(h.stages) == 0 {
		return StageCall{}
	}
	return h.stages[len(h.stages)-1]
}

// --- Test card helpers ---

var testCardSeq int

// card builds a card with a readable unique ID such as "warrior-green-3".
func card(name string, color Color) Card {
	testCardSeq++
	return NewCard(name, color, fmt.Sprintf("%s-%s-%d", NormalizedName(name), color, testCardSeq))
}

// cell returns the board index for (row, col).
func cell(row, col int) int {
	return row*BoardCols + col
}

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine returns an engine with default rules, a memory logger and a
// fixed clock.
func newTestEngine() (*Engine, *log.MemoryLogger) {
	logger := log.NewMemoryLogger()
	e := NewEngine(DefaultRules(), logger)
	e.Clock = func() time.Time { return testEpoch }
	return e, logger
}

func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// emptyState returns a state with empty boards, hands, graveyards and deck.
func emptyState() GameState {
	return GameState{
		Players: [2]PlayerState{
			{Board: NewBoard(Player0), Hand: []Card{}, Graveyard: []Card{}},
			{Board: NewBoard(Player1), Hand: []Card{}, Graveyard: []Card{}},
		},
		Deck:    []Card{},
		Events:  []log.GameEvent{},
		SubGame: 1,
	}
}

// withBoard places cards without validation, in cell order.
func withBoard(gs GameState, p PlayerID, placements map[int]Card) GameState {
	for c := 0; c < BoardCells; c++ {
		if cd, ok := placements[c]; ok {
			gs = placeOnBoard(gs, p, c, cd)
		}
	}
	return gs
}

func withHand(gs GameState, p PlayerID, cards ...Card) GameState {
	for _, c := range cards {
		gs = addToHand(gs, p, c)
	}
	return gs
}

// withGraveyard buries cards so the first argument ends on top.
func withGraveyard(gs GameState, p PlayerID, cards ...Card) GameState {
	for i := len(cards) - 1; i >= 0; i-- {
		gs = bury(gs, p, cards[i])
	}
	return gs
}

func withDeck(gs GameState, cards ...Card) GameState {
	gs.Deck = append(gs.Deck, cards...)
	return gs
}

// pointsAt returns the recomputed score of the card at cell of p's board.
func pointsAt(t *testing.T, gs GameState, p PlayerID, c int) int {
	t.Helper()
	s := RecomputeBoard(gs.Board(p)).Slots[c]
	if s.Card == nil {
		t.Fatalf("no card at cell %d of %s's board", c, p)
	}
	return s.Card.Points
}

func logEvents(t *testing.T, gs GameState) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(gs.Events))
}

// must fails the test when the move it wraps is rejected. Use it as
// must(t)(e.Pass(gs, host)).
func must(t *testing.T) func(GameState, error) GameState {
	return func(gs GameState, err error) GameState {
		t.Helper()
		if err != nil {
			logEvents(t, gs)
			t.Fatalf("unexpected error: %v", err)
		}
		return gs
	}
}
