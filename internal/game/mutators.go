package game

import (
	"slices"

	"github.com/peterkuimelis/madrigal/internal/log"
)

// The functions in this file are the only code that moves cards between
// containers. Each takes a GameState by value and returns a new one; slices
// are always reallocated so two states never share writable storage.

func removeFromHand(gs GameState, p PlayerID, cardID string) (GameState, Card, bool) {
	ps := gs.Players[p]
	i := indexOf(ps.Hand, cardID)
	if i < 0 {
		return gs, Card{}, false
	}
	card := ps.Hand[i]
	ps.Hand = slices.Delete(slices.Clone(ps.Hand), i, i+1)
	return gs.withPlayer(p, ps), card, true
}

func addToHand(gs GameState, p PlayerID, card Card) GameState {
	ps := gs.Players[p]
	ps.Hand = append(slices.Clip(ps.Hand), card.reset())
	return gs.withPlayer(p, ps)
}

func placeOnBoard(gs GameState, owner PlayerID, cell int, card Card) GameState {
	ps := gs.Players[owner]
	ps.Board = ps.Board.withCard(cell, card)
	return gs.withPlayer(owner, ps)
}

// removeFromBoard takes a card off a board. The returned card keeps its live
// score; callers that send it elsewhere than another board reset it.
func removeFromBoard(gs GameState, owner PlayerID, cardID string) (GameState, Card, bool) {
	ps := gs.Players[owner]
	board, card, ok := ps.Board.withoutCard(cardID)
	if !ok {
		return gs, Card{}, false
	}
	ps.Board = board
	return gs.withPlayer(owner, ps), card, true
}

// bury puts a card on top of a graveyard with its score back to base.
func bury(gs GameState, p PlayerID, card Card) GameState {
	ps := gs.Players[p]
	ps.Graveyard = append([]Card{card.reset()}, ps.Graveyard...)
	return gs.withPlayer(p, ps)
}

func removeFromGraveyard(gs GameState, p PlayerID, cardID string) (GameState, Card, bool) {
	ps := gs.Players[p]
	i := indexOf(ps.Graveyard, cardID)
	if i < 0 {
		return gs, Card{}, false
	}
	card := ps.Graveyard[i]
	ps.Graveyard = slices.Delete(slices.Clone(ps.Graveyard), i, i+1)
	return gs.withPlayer(p, ps), card, true
}

// drawFromDeck moves the top deck card to a hand.
func drawFromDeck(gs GameState, p PlayerID) (GameState, Card, bool) {
	if len(gs.Deck) == 0 {
		return gs, Card{}, false
	}
	card := gs.Deck[0]
	gs.Deck = slices.Clone(gs.Deck[1:])
	return addToHand(gs, p, card), card, true
}

// drawFromGraveyard moves the most recently buried card of p's graveyard to p's hand.
func drawFromGraveyard(gs GameState, p PlayerID) (GameState, Card, bool) {
	grave := gs.Players[p].Graveyard
	if len(grave) == 0 {
		return gs, Card{}, false
	}
	gs, card, _ := removeFromGraveyard(gs, p, grave[0].ID)
	return addToHand(gs, p, card), card, true
}

// appendEvent stamps the event with its sequence number and sub-game.
func appendEvent(gs GameState, event log.GameEvent) GameState {
	event.Seq = len(gs.Events) + 1
	event.SubGame = gs.SubGame
	gs.Events = append(slices.Clip(gs.Events), event)
	return gs
}

func setPassed(gs GameState, p PlayerID, passed bool) GameState {
	ps := gs.Players[p]
	ps.Passed = passed
	return gs.withPlayer(p, ps)
}

func clearPassed(gs GameState) GameState {
	return setPassed(setPassed(gs, Player0, false), Player1, false)
}

func incrementGamesWon(gs GameState, p PlayerID) GameState {
	ps := gs.Players[p]
	ps.GamesWon++
	return gs.withPlayer(p, ps)
}

// sweepBoard buries every card on p's board. The swept cards go on top of the
// graveyard in history order, so the most recently placed card is the new top.
// History is preserved.
func sweepBoard(gs GameState, p PlayerID) (GameState, int) {
	board := gs.Players[p].Board
	var order []Card
	seen := make(map[string]bool)
	for _, h := range board.History {
		if s, ok := board.Slot(h.Cell); ok && s.Card != nil && s.Card.ID == h.CardID && !seen[h.CardID] {
			seen[h.CardID] = true
			order = append(order, *s.Card)
		}
	}
	// Cards not found through history still have to leave the board.
	for _, c := range board.Cards() {
		if !seen[c.ID] {
			order = append(order, c)
		}
	}

	ps := gs.Players[p]
	buried := make([]Card, 0, len(order)+len(ps.Graveyard))
	for _, c := range order {
		buried = append(buried, c.reset())
	}
	ps.Graveyard = append(buried, ps.Graveyard...)
	ps.Board = board.cleared()
	return gs.withPlayer(p, ps), len(order)
}
