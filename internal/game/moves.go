package game

import (
	"github.com/peterkuimelis/madrigal/internal/log"
)

// permitted reports whether a move of the given kind may be made in the
// current stage.
func permitted(gs GameState, kind MoveKind) error {
	ok := false
	switch gs.Pending.Stage {
	case StageDefault:
		ok = kind == MovePlayFromHand || kind == MovePass
	case StageOwnGraveyardPick, StageEitherGraveyardPick:
		ok = kind == MoveSelectGraveyard || kind == MoveCancelStage
	case StageOwnBoardPick:
		ok = kind == MoveSelectBoard || kind == MovePlayFromBoard || kind == MoveCancelStage
	case StageOpponentBoardPick:
		ok = kind == MoveSelectBoard || kind == MoveCancelStage
	}
	if !ok {
		return invalid("%s not permitted in stage %s", kind, gs.Pending.Stage)
	}
	return nil
}

// PlayCardFromHand puts a hand card of the acting player on a board, fires the
// full-row trigger and runs the card's reaction.
func (e *Engine) PlayCardFromHand(gs GameState, host Host, cardID string, cell int, boardOwner PlayerID) (GameState, error) {
	if err := permitted(gs, MovePlayFromHand); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	card, ok := gs.Players[actor].HandCard(cardID)
	if !ok {
		return gs, invalid("card %s not in hand", cardID)
	}
	if err := checkPlacement(gs, actor, card, cell, boardOwner); err != nil {
		return gs, err
	}

	t := e.begin(gs, actor)
	t.gs, _, _ = removeFromHand(t.gs, actor, cardID)
	t.gs = placeOnBoard(t.gs, boardOwner, cell, card)
	t.log(log.NewPlaceEvent(int(actor), card.Name, cell, int(boardOwner)))
	t.fullRow(boardOwner, cell)
	t.gs = clearPassed(t.gs)
	t.react(card, boardOwner)
	return t.commit(host), nil
}

// PlayCardFromBoard relocates a board card. It is the second half of a
// reposition: the card must stay on its own board, must be the selected card
// if one was selected, and must satisfy its own placement rule at the new cell.
func (e *Engine) PlayCardFromBoard(gs GameState, host Host, cardID string, cell int, toOwner, fromOwner PlayerID) (GameState, error) {
	if err := permitted(gs, MovePlayFromBoard); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	if fromOwner != actor || toOwner != actor {
		return gs, invalid("board cards can only be moved within your own board")
	}
	if gs.Pending.SelectedCardID != "" && gs.Pending.SelectedCardID != cardID {
		return gs, invalid("card %s was not the selected card", cardID)
	}
	if cardID == gs.Pending.SourceCardID {
		return gs, invalid("%s cannot move itself", cardID)
	}
	slot, ok := gs.Board(fromOwner).FindCard(cardID)
	if !ok {
		return gs, invalid("card %s not on %s's board", cardID, fromOwner)
	}
	card := *slot.Card
	if err := checkPlacement(gs, actor, card, cell, toOwner); err != nil {
		return gs, err
	}

	t := e.begin(gs, actor)
	t.gs, _, _ = removeFromBoard(t.gs, fromOwner, cardID)
	t.gs = placeOnBoard(t.gs, toOwner, cell, card)
	t.log(log.NewRelocateEvent(int(actor), card.Name, cell, int(toOwner)))
	t.fullRow(toOwner, cell)
	t.gs = clearPassed(t.gs)
	t.completeStage()
	return t.commit(host), nil
}

// Pass marks the acting player as passed and ends the turn.
func (e *Engine) Pass(gs GameState, host Host) (GameState, error) {
	if err := permitted(gs, MovePass); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	t := e.begin(gs, actor)
	t.gs = setPassed(t.gs, actor, true)
	t.log(log.NewPassEvent(int(actor)))
	t.endTurn = true
	return t.commit(host), nil
}

// SelectGraveyardCard takes a graveyard card into the acting player's hand
// during a graveyard pick stage.
func (e *Engine) SelectGraveyardCard(gs GameState, host Host, cardID string, fromOwner PlayerID) (GameState, error) {
	if err := permitted(gs, MoveSelectGraveyard); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	if !fromOwner.Valid() {
		return gs, invalid("unknown graveyard owner %d", fromOwner)
	}
	if gs.Pending.Stage == StageOwnGraveyardPick && fromOwner != actor {
		return gs, invalid("only your own graveyard may be picked from")
	}
	if _, ok := gs.Players[fromOwner].GraveyardCard(cardID); !ok {
		return gs, invalid("card %s not in %s's graveyard", cardID, fromOwner)
	}

	t := e.begin(gs, actor)
	gs, card, _ := removeFromGraveyard(t.gs, fromOwner, cardID)
	t.gs = addToHand(gs, actor, card)
	t.log(log.NewAddToHandEvent(int(actor), card.Name, "from "+fromOwner.String()+"'s graveyard"))
	t.gs.Pending.MovesLeft--

	if t.gs.Pending.MovesLeft <= 0 || !pickableGraveyard(t.gs, actor) {
		t.completeStage()
	}
	return t.commit(host), nil
}

// pickableGraveyard reports whether the current graveyard stage still has a
// card to offer.
func pickableGraveyard(gs GameState, actor PlayerID) bool {
	if len(gs.Players[actor].Graveyard) > 0 {
		return true
	}
	return gs.Pending.Stage == StageEitherGraveyardPick && len(gs.Players[actor.Opponent()].Graveyard) > 0
}

// SelectBoardCard picks a board card of the acting player. During a
// reposition it marks the card to move; during a trade it hands the card to
// the beneficiary and completes the stage.
func (e *Engine) SelectBoardCard(gs GameState, host Host, cardID string, fromOwner PlayerID) (GameState, error) {
	if err := permitted(gs, MoveSelectBoard); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	if fromOwner != actor {
		return gs, invalid("only your own board cards may be picked")
	}
	slot, ok := gs.Board(fromOwner).FindCard(cardID)
	if !ok {
		return gs, invalid("card %s not on %s's board", cardID, fromOwner)
	}
	if cardID == gs.Pending.SourceCardID {
		return gs, invalid("%s cannot pick itself", slot.Card.Name)
	}

	t := e.begin(gs, actor)
	switch gs.Pending.Stage {
	case StageOwnBoardPick:
		if targets, _ := ValidMoves(gs, actor, cardID); len(targets.Own) == 0 {
			return gs, invalid("%s has no free cell to move to", slot.Card.Name)
		}
		t.gs.Pending.SelectedCardID = cardID
		t.gs.Pending.MovesLeft--
	case StageOpponentBoardPick:
		t.gs = clearPassed(t.gs)
		t.transfer(*slot.Card, fromOwner, gs.Pending.Beneficiary)
		t.completeStage()
	}
	return t.commit(host), nil
}

// CancelStage abandons the pending follow-up stage and ends the turn.
func (e *Engine) CancelStage(gs GameState, host Host) (GameState, error) {
	if err := permitted(gs, MoveCancelStage); err != nil {
		return gs, err
	}
	actor := ActingPlayer(gs, host.CurrentPlayer())
	t := e.begin(gs, actor)
	t.log(log.NewStageCancelEvent(int(actor), gs.Pending.Stage.Prompt()))
	t.gs.Pending = PendingStage{}
	t.endTurn = true
	return t.commit(host), nil
}
