package game

import (
	"github.com/peterkuimelis/madrigal/internal/log"
)

// react runs the placed card's reaction. Every branch either requests a
// follow-up stage or ends the turn.
func (t *txn) react(card Card, boardOwner PlayerID) {
	placer := t.actor
	opponent := placer.Opponent()
	onOpponent := boardOwner == opponent
	own := t.gs.Players[placer]

	switch LookupDefinition(card.Name).Reaction {
	case ReactInfiltrateEither:
		if onOpponent && (len(own.Graveyard) > 0 || len(t.gs.Players[opponent].Graveyard) > 0) {
			t.requestStage(PendingStage{
				Stage:        StageEitherGraveyardPick,
				Player:       placer,
				MovesLeft:    1,
				Beneficiary:  placer,
				SourceCardID: card.ID,
			})
			return
		}

	case ReactInfiltrateOwn:
		if onOpponent && len(own.Graveyard) > 0 {
			t.requestStage(PendingStage{
				Stage:        StageOwnGraveyardPick,
				Player:       placer,
				MovesLeft:    2,
				Beneficiary:  placer,
				SourceCardID: card.ID,
			})
			return
		}

	case ReactDraw:
		t.draw(placer, card.Name)

	case ReactResurrect:
		if len(own.Graveyard) > 0 {
			t.requestStage(PendingStage{
				Stage:        StageOwnGraveyardPick,
				Player:       placer,
				MovesLeft:    1,
				Beneficiary:  placer,
				SourceCardID: card.ID,
			})
			return
		}
		t.draw(placer, card.Name+", empty graveyard")

	case ReactReposition:
		if hasOtherCard(t.gs.Board(boardOwner), card.ID) {
			t.requestStage(PendingStage{
				Stage:        StageOwnBoardPick,
				Player:       boardOwner,
				MovesLeft:    2,
				Beneficiary:  boardOwner,
				SourceCardID: card.ID,
			})
			return
		}

	case ReactTrade:
		if onOpponent && hasOtherCard(t.gs.Board(opponent), card.ID) {
			t.requestStage(PendingStage{
				Stage:        StageOpponentBoardPick,
				Player:       opponent,
				MovesLeft:    1,
				Beneficiary:  placer,
				SourceCardID: card.ID,
			})
			return
		}
	}
	t.endTurn = true
}

func hasOtherCard(b Board, cardID string) bool {
	for _, c := range b.Cards() {
		if c.ID != cardID {
			return true
		}
	}
	return false
}

// draw moves the top deck card to p's hand. An empty deck is logged, not an error.
func (t *txn) draw(p PlayerID, reason string) {
	gs, card, ok := drawFromDeck(t.gs, p)
	if !ok {
		t.log(log.NewDeckEmptyEvent(int(p), reason))
		return
	}
	t.gs = gs
	t.log(log.NewDrawEvent(int(p), card.Name, reason))
}

// fullRow fires the row trigger if placing into cell completed a colored row
// of boardOwner's board.
func (t *txn) fullRow(boardOwner PlayerID, cell int) {
	b := t.gs.Board(boardOwner)
	slot, ok := b.Slot(cell)
	if !ok || slot.IsNeutral() || !b.ColorRowFull(slot.Color) {
		return
	}
	color := slot.Color.String()

	switch slot.Color {
	case ColorBlue:
		t.log(log.NewFullRowEvent(int(boardOwner), color, "draw a card"))
		t.draw(boardOwner, "full blue row")

	case ColorGreen:
		gs, card, ok := drawFromGraveyard(t.gs, boardOwner)
		if !ok {
			t.log(log.NewFullRowEvent(int(boardOwner), color, "graveyard is empty"))
			return
		}
		t.gs = gs
		t.log(log.NewFullRowEvent(int(boardOwner), color, "take the top graveyard card"))
		t.log(log.NewAddToHandEvent(int(boardOwner), card.Name, "full green row"))

	case ColorRed:
		victim := boardOwner.Opponent()
		last, ok := t.gs.Board(victim).LastSurvivor()
		if !ok {
			t.log(log.NewFullRowEvent(int(boardOwner), color, "nothing to eliminate"))
			return
		}
		gs, card, _ := removeFromBoard(t.gs, victim, last.CardID)
		t.gs = bury(gs, victim, card)
		t.log(log.NewFullRowEvent(int(boardOwner), color, "eliminate the last placed opposing card"))
		t.log(log.NewEliminateEvent(int(victim), card.Name, "full red row"))
	}
}

// transfer hands card over to the beneficiary's board, on the first free cell
// its placement rule allows there. When every such cell is taken, the
// occupant of the first one is buried to make room.
func (t *txn) transfer(card Card, from, to PlayerID) {
	gs, card, _ := removeFromBoard(t.gs, from, card.ID)
	t.gs = gs

	board := t.gs.Board(to)
	cells := ValidTargets(card, board, t.gs.Board(from)).Own
	if len(cells) == 0 {
		panic("card " + card.Name + " has no legal cell on any board")
	}
	cell := -1
	for _, c := range cells {
		if board.Slots[c].Card == nil {
			cell = c
			break
		}
	}
	if cell < 0 {
		cell = cells[0]
		gs, displaced, _ := removeFromBoard(t.gs, to, board.Slots[cell].Card.ID)
		t.gs = bury(gs, to, displaced)
		t.log(log.NewBuryEvent(int(to), displaced.Name, "displaced by "+card.Name))
	}

	t.gs = placeOnBoard(t.gs, to, cell, card)
	t.log(log.NewTransferEvent(int(from), card.Name, int(to), cell))
	t.fullRow(to, cell)
}
