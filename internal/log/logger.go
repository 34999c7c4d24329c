package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return OfType(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// OfType filters a slice of events by type.
func OfType(events []GameEvent, t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	// Pad type to 14 chars for alignment
	for len(kind) < 14 {
		kind += " "
	}
	return fmt.Sprintf("#%-4d G%d %s| %s", e.Seq, e.SubGame, kind, e.Description)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnBeginEvent(player int, p0Points, p1Points int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventTurnBegin,
		Description: fmt.Sprintf("=== %s to move (P1 %d pts, P2 %d pts) ===", PlayerName(player), p0Points, p1Points),
	}
}

func NewPlaceEvent(player int, cardName string, cell int, boardOwner int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventPlace,
		Card:        cardName,
		Description: fmt.Sprintf("%s plays %s to cell %d of %s's board", PlayerName(player), cardName, cell, PlayerName(boardOwner)),
	}
}

func NewRelocateEvent(player int, cardName string, cell int, boardOwner int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventRelocate,
		Card:        cardName,
		Description: fmt.Sprintf("%s moves %s to cell %d of %s's board", PlayerName(player), cardName, cell, PlayerName(boardOwner)),
	}
}

func NewTransferEvent(from int, cardName string, to int, cell int) GameEvent {
	return GameEvent{
		Player:      from,
		Type:        EventTransfer,
		Card:        cardName,
		Description: fmt.Sprintf("%s hands %s over to %s (cell %d)", PlayerName(from), cardName, PlayerName(to), cell),
	}
}

func NewDrawEvent(player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventDraw,
		Card:        cardName,
		Description: fmt.Sprintf("%s draws %s (%s)", PlayerName(player), cardName, reason),
	}
}

func NewDeckEmptyEvent(player int, reason string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventDeckEmpty,
		Description: fmt.Sprintf("%s cannot draw, deck is empty (%s)", PlayerName(player), reason),
	}
}

func NewAddToHandEvent(player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventAddToHand,
		Card:        cardName,
		Description: fmt.Sprintf("%s is added to %s's hand (%s)", cardName, PlayerName(player), reason),
	}
}

func NewFullRowEvent(player int, color string, outcome string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventFullRow,
		Description: fmt.Sprintf("Full %s row for %s: %s", color, PlayerName(player), outcome),
	}
}

func NewEliminateEvent(player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventEliminate,
		Card:        cardName,
		Description: fmt.Sprintf("%s is eliminated from %s's board (%s)", cardName, PlayerName(player), reason),
	}
}

func NewBuryEvent(player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventBury,
		Card:        cardName,
		Description: fmt.Sprintf("%s is sent to %s's graveyard (%s)", cardName, PlayerName(player), reason),
	}
}

func NewStageRequestEvent(player int, stage string, moveLimit int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventStageRequest,
		Description: fmt.Sprintf("%s must %s (%d move(s))", PlayerName(player), stage, moveLimit),
	}
}

func NewStageCompleteEvent(player int, stage string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventStageComplete,
		Description: fmt.Sprintf("%s finished: %s", PlayerName(player), stage),
	}
}

func NewStageCancelEvent(player int, stage string) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventStageCancel,
		Description: fmt.Sprintf("%s skips: %s", PlayerName(player), stage),
	}
}

func NewPassEvent(player int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventPass,
		Description: fmt.Sprintf("%s passes", PlayerName(player)),
	}
}

func NewSubGameEndEvent(winner int, credited bool, p0Points, p1Points int) GameEvent {
	desc := fmt.Sprintf("Sub-game tied %d-%d, nobody scores", p0Points, p1Points)
	if credited {
		desc = fmt.Sprintf("%s wins the sub-game (%d-%d)", PlayerName(winner), p0Points, p1Points)
	}
	return GameEvent{
		Player:      winner,
		Type:        EventSubGameEnd,
		Description: desc,
	}
}

func NewSweepEvent(player int, count int) GameEvent {
	return GameEvent{
		Player:      player,
		Type:        EventSweep,
		Description: fmt.Sprintf("%s's board is swept to the graveyard (%d card(s))", PlayerName(player), count),
	}
}

func NewMatchWinEvent(winner int, p0Games, p1Games int) GameEvent {
	return GameEvent{
		Player:      winner,
		Type:        EventMatchWin,
		Description: fmt.Sprintf("%s wins the match! (%d-%d)", PlayerName(winner), p0Games, p1Games),
	}
}

func NewMatchDrawEvent(p0Games, p1Games int) GameEvent {
	return GameEvent{
		Type:        EventMatchDraw,
		Description: fmt.Sprintf("Match drawn after three sub-games (%d-%d)", p0Games, p1Games),
	}
}
