package game

import (
	"fmt"
)

// MoveKind names a move entry point.
type MoveKind int

const (
	MovePlayFromHand MoveKind = iota
	MovePlayFromBoard
	MovePass
	MoveSelectGraveyard
	MoveSelectBoard
	MoveCancelStage
)

var moveKindNames = [...]string{
	MovePlayFromHand:    "play_card",
	MovePlayFromBoard:   "move_board_card",
	MovePass:            "pass",
	MoveSelectGraveyard: "select_graveyard_card",
	MoveSelectBoard:     "select_board_card",
	MoveCancelStage:     "cancel_stage",
}

func (k MoveKind) String() string {
	if k < 0 || int(k) >= len(moveKindNames) {
		return "unknown"
	}
	return moveKindNames[k]
}

// ParseMoveKind converts a move name into a MoveKind.
func ParseMoveKind(s string) (MoveKind, error) {
	for i, name := range moveKindNames {
		if name == s {
			return MoveKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	parsed, err := ParseMoveKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Move is one player input, in the shape the engine entry points take.
type Move struct {
	Kind       MoveKind `json:"kind"`
	CardID     string   `json:"card_id,omitempty"`
	Cell       int      `json:"cell,omitempty"`
	BoardOwner PlayerID `json:"board_owner,omitempty"` // destination board, or source for picks
	FromOwner  PlayerID `json:"from_owner,omitempty"`  // source board of move_board_card
	Desc       string   `json:"desc,omitempty"`
}

func (m Move) String() string {
	if m.Desc != "" {
		return m.Desc
	}
	return m.Kind.String()
}

// Apply dispatches a move to its entry point.
func (e *Engine) Apply(gs GameState, host Host, m Move) (GameState, error) {
	switch m.Kind {
	case MovePlayFromHand:
		return e.PlayCardFromHand(gs, host, m.CardID, m.Cell, m.BoardOwner)
	case MovePlayFromBoard:
		return e.PlayCardFromBoard(gs, host, m.CardID, m.Cell, m.BoardOwner, m.FromOwner)
	case MovePass:
		return e.Pass(gs, host)
	case MoveSelectGraveyard:
		return e.SelectGraveyardCard(gs, host, m.CardID, m.BoardOwner)
	case MoveSelectBoard:
		return e.SelectBoardCard(gs, host, m.CardID, m.BoardOwner)
	case MoveCancelStage:
		return e.CancelStage(gs, host)
	default:
		return gs, invalid("unknown move kind %d", m.Kind)
	}
}

// LegalMoves lists every move the actor may make in the current stage.
func LegalMoves(gs GameState, actor PlayerID) []Move {
	var moves []Move
	ps := gs.Players[actor]
	opponent := actor.Opponent()

	switch gs.Pending.Stage {
	case StageDefault:
		for _, c := range ps.Hand {
			t, _ := ValidMoves(gs, actor, c.ID)
			for _, cell := range t.Own {
				moves = append(moves, Move{Kind: MovePlayFromHand, CardID: c.ID, Cell: cell, BoardOwner: actor,
					Desc: fmt.Sprintf("Play %s to cell %d of your board", c.DisplayString(), cell)})
			}
			for _, cell := range t.Opponent {
				moves = append(moves, Move{Kind: MovePlayFromHand, CardID: c.ID, Cell: cell, BoardOwner: opponent,
					Desc: fmt.Sprintf("Play %s to cell %d of the opponent's board", c.DisplayString(), cell)})
			}
		}
		moves = append(moves, Move{Kind: MovePass, Desc: "Pass"})

	case StageOwnGraveyardPick, StageEitherGraveyardPick:
		sources := []PlayerID{actor}
		if gs.Pending.Stage == StageEitherGraveyardPick {
			sources = append(sources, opponent)
		}
		for _, from := range sources {
			for _, c := range gs.Players[from].Graveyard {
				moves = append(moves, Move{Kind: MoveSelectGraveyard, CardID: c.ID, BoardOwner: from,
					Desc: fmt.Sprintf("Take %s from %s's graveyard", c.DisplayString(), from)})
			}
		}

	case StageOwnBoardPick:
		for _, s := range ps.Board.Slots {
			if s.Card == nil || s.Card.ID == gs.Pending.SourceCardID {
				continue
			}
			if gs.Pending.SelectedCardID != "" && s.Card.ID != gs.Pending.SelectedCardID {
				continue
			}
			t, _ := ValidMoves(gs, actor, s.Card.ID)
			for _, cell := range t.Own {
				moves = append(moves, Move{Kind: MovePlayFromBoard, CardID: s.Card.ID, Cell: cell, BoardOwner: actor, FromOwner: actor,
					Desc: fmt.Sprintf("Move %s from cell %d to cell %d", s.Card.DisplayString(), s.Index, cell)})
			}
		}

	case StageOpponentBoardPick:
		for _, s := range ps.Board.Slots {
			if s.Card == nil || s.Card.ID == gs.Pending.SourceCardID {
				continue
			}
			moves = append(moves, Move{Kind: MoveSelectBoard, CardID: s.Card.ID, BoardOwner: actor,
				Desc: fmt.Sprintf("Hand over %s from cell %d", s.Card.DisplayString(), s.Index)})
		}
	}

	if gs.Pending.Active() {
		moves = append(moves, Move{Kind: MoveCancelStage, Desc: "Skip: " + gs.Pending.Stage.Prompt()})
	}
	return moves
}
