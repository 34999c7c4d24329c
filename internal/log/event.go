package log

import "time"

// EventType enumerates all observable game events.
type EventType int

const (
	EventTurnBegin EventType = iota
	EventPlace
	EventRelocate
	EventTransfer
	EventDraw
	EventDeckEmpty
	EventAddToHand
	EventFullRow
	EventEliminate
	EventBury
	EventStageRequest
	EventStageComplete
	EventStageCancel
	EventPass
	EventSubGameEnd
	EventSweep
	EventMatchWin
	EventMatchDraw
)

func (e EventType) String() string {
	switch e {
	case EventTurnBegin:
		return "TurnBegin"
	case EventPlace:
		return "Place"
	case EventRelocate:
		return "Relocate"
	case EventTransfer:
		return "Transfer"
	case EventDraw:
		return "Draw"
	case EventDeckEmpty:
		return "DeckEmpty"
	case EventAddToHand:
		return "AddToHand"
	case EventFullRow:
		return "FullRow"
	case EventEliminate:
		return "Eliminate"
	case EventBury:
		return "Bury"
	case EventStageRequest:
		return "StageRequest"
	case EventStageComplete:
		return "StageComplete"
	case EventStageCancel:
		return "StageCancel"
	case EventPass:
		return "Pass"
	case EventSubGameEnd:
		return "SubGameEnd"
	case EventSweep:
		return "Sweep"
	case EventMatchWin:
		return "MatchWin"
	case EventMatchDraw:
		return "MatchDraw"
	default:
		return "Unknown"
	}
}

// GameEvent is a single entry of a match's append-only audit log.
type GameEvent struct {
	Seq         int       `json:"seq"`      // 1-based position in the match log
	SubGame     int       `json:"sub_game"` // 1..3
	Player      int       `json:"player"`   // player the event concerns (0 or 1)
	Type        EventType `json:"type"`
	Card        string    `json:"card,omitempty"` // card name (if applicable)
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
}
