package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is wrapped by every error a move entry point returns for a
// move the rules reject. The state returned alongside it is the unchanged input.
var ErrInvalidMove = errors.New("invalid move")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}

// Targets are the cells a card may be placed on, per board.
type Targets struct {
	Own      []int `json:"own"`
	Opponent []int `json:"opponent"`
}

// Contains reports whether cell is a legal target on the own or opponent board.
func (t Targets) Contains(cell int, onOwn bool) bool {
	cells := t.Opponent
	if onOwn {
		cells = t.Own
	}
	for _, c := range cells {
		if c == cell {
			return true
		}
	}
	return false
}

// ValidTargets evaluates the card's placement rule against both boards.
// Occupancy is not considered.
func ValidTargets(card Card, own, opponent Board) Targets {
	def := LookupDefinition(card.Name)
	var t Targets
	switch def.Placement {
	case PlaceOwnColor:
		t.Own = colorCells(card, own)
	case PlaceEitherColor:
		t.Own = colorCells(card, own)
		t.Opponent = colorCells(card, opponent)
	case PlaceOwnRowEffect:
		t.Own = rowEffectCells(card, own)
	case PlaceEitherRowEffect:
		t.Own = rowEffectCells(card, own)
		t.Opponent = rowEffectCells(card, opponent)
	default:
		panic(fmt.Sprintf("card %q has unknown placement %d", card.Name, def.Placement))
	}
	return t
}

// colorCells returns interior cells whose color matches the card. Gold matches
// every interior cell.
func colorCells(card Card, b Board) []int {
	var cells []int
	for _, s := range b.Slots {
		if s.IsNeutral() {
			continue
		}
		if card.Color == ColorGold || s.Color == card.Color {
			cells = append(cells, s.Index)
		}
	}
	return cells
}

// rowEffectCells returns neutral cells of the row matching the card color.
// Gold matches every neutral cell.
func rowEffectCells(card Card, b Board) []int {
	var cells []int
	for _, s := range b.Slots {
		if !s.IsNeutral() {
			continue
		}
		if card.Color == ColorGold || s.RowColor == card.Color {
			cells = append(cells, s.Index)
		}
	}
	return cells
}

// ValidMoves returns the empty cells the actor may put the card on. The card
// is looked up in the actor's hand, then on the actor's board. Board cards
// only ever move within their own board.
func ValidMoves(gs GameState, actor PlayerID, cardID string) (Targets, bool) {
	own := gs.Board(actor)
	opp := gs.Board(actor.Opponent())
	if card, ok := gs.Players[actor].HandCard(cardID); ok {
		t := ValidTargets(card, own, opp)
		return Targets{Own: emptyCells(own, t.Own), Opponent: emptyCells(opp, t.Opponent)}, true
	}
	if slot, ok := own.FindCard(cardID); ok {
		t := ValidTargets(*slot.Card, own, opp)
		return Targets{Own: emptyCells(own, t.Own)}, true
	}
	return Targets{}, false
}

func emptyCells(b Board, cells []int) []int {
	var result []int
	for _, c := range cells {
		if b.Slots[c].Card == nil {
			result = append(result, c)
		}
	}
	return result
}

// checkPlacement runs the occupancy and target checks for putting card on
// cell of boardOwner's board on behalf of actor.
func checkPlacement(gs GameState, actor PlayerID, card Card, cell int, boardOwner PlayerID) error {
	if !boardOwner.Valid() {
		return invalid("unknown board owner %d", boardOwner)
	}
	slot, ok := gs.Board(boardOwner).Slot(cell)
	if !ok {
		return invalid("cell %d out of range", cell)
	}
	if slot.Card != nil {
		return invalid("cell %d is occupied", cell)
	}
	t := ValidTargets(card, gs.Board(actor), gs.Board(actor.Opponent()))
	if !t.Contains(cell, boardOwner == actor) {
		return invalid("illegal target: %s cannot go to cell %d of %s's board", card.Name, cell, boardOwner)
	}
	return nil
}
