package game

import (
	"fmt"
	"slices"
)

const (
	BoardRows     = 3
	BoardCols     = 7
	InteriorSlots = BoardCols - 2
	BoardCells    = BoardRows * BoardCols
)

// RowColors is the nominal color of each row, top to bottom. Both boards use
// the same order.
var RowColors = [BoardRows]Color{ColorGreen, ColorBlue, ColorRed}

// CardSlot is one cell of a player's board.
type CardSlot struct {
	Index    int      `json:"index"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Player   PlayerID `json:"player"`
	Color    Color    `json:"color"`
	RowColor Color    `json:"row_color"`
	Card     *Card    `json:"card,omitempty"`
}

// IsNeutral reports whether the slot is one of the two row-end effect slots.
func (s CardSlot) IsNeutral() bool {
	return s.Color == ColorNeutral
}

// Empty reports whether no card occupies the slot.
func (s CardSlot) Empty() bool {
	return s.Card == nil
}

// HistoryEntry records a placement on a board.
type HistoryEntry struct {
	CardID string `json:"card_id"`
	Cell   int    `json:"cell"`
}

// Board is one player's grid. Slots are laid out row-major.
type Board struct {
	Slots   []CardSlot     `json:"card_slots"`
	Rows    int            `json:"rows"`
	Cols    int            `json:"cols"`
	History []HistoryEntry `json:"history"` // most recent first
}

// NewBoard builds an empty board for the given player.
func NewBoard(player PlayerID) Board {
	b := Board{
		Slots: make([]CardSlot, 0, BoardCells),
		Rows:  BoardRows,
		Cols:  BoardCols,
	}
	for row, rowColor := range RowColors {
		for col := 0; col < BoardCols; col++ {
			color := rowColor
			if col == 0 || col == BoardCols-1 {
				color = ColorNeutral
			}
			b.Slots = append(b.Slots, CardSlot{
				Index:    row*BoardCols + col,
				Row:      row,
				Col:      col,
				Player:   player,
				Color:    color,
				RowColor: rowColor,
			})
		}
	}
	return b
}

// Cell returns the index of the slot at (row, col).
func (b Board) Cell(row, col int) int {
	return row*b.Cols + col
}

// Slot returns the slot at the given cell.
func (b Board) Slot(cell int) (CardSlot, bool) {
	if cell < 0 || cell >= len(b.Slots) {
		return CardSlot{}, false
	}
	return b.Slots[cell], true
}

// Row returns a copy of the slots in the given row.
func (b Board) Row(row int) []CardSlot {
	start := row * b.Cols
	return slices.Clone(b.Slots[start : start+b.Cols])
}

// Column returns a copy of the slots in the given column, top to bottom.
func (b Board) Column(col int) []CardSlot {
	result := make([]CardSlot, 0, b.Rows)
	for row := 0; row < b.Rows; row++ {
		result = append(result, b.Slots[b.Cell(row, col)])
	}
	return result
}

// RowEffectSlots returns the two neutral slots of a row.
func (b Board) RowEffectSlots(row int) []CardSlot {
	var result []CardSlot
	for _, s := range b.Row(row) {
		if s.IsNeutral() {
			result = append(result, s)
		}
	}
	return result
}

// rowHasEffect reports whether a neutral slot of the row holds the given kind.
func (b Board) rowHasEffect(row int, kind Kind) bool {
	for _, s := range b.RowEffectSlots(row) {
		if s.Card != nil && s.Card.Kind() == kind {
			return true
		}
	}
	return false
}

// Cards returns every card on the board in slot order.
func (b Board) Cards() []Card {
	var result []Card
	for _, s := range b.Slots {
		if s.Card != nil {
			result = append(result, *s.Card)
		}
	}
	return result
}

// CardCount returns the number of occupied slots.
func (b Board) CardCount() int {
	count := 0
	for _, s := range b.Slots {
		if s.Card != nil {
			count++
		}
	}
	return count
}

// CountKind returns the number of cards of the given kind anywhere on the board.
func (b Board) CountKind(kind Kind) int {
	count := 0
	for _, s := range b.Slots {
		if s.Card != nil && s.Card.Kind() == kind {
			count++
		}
	}
	return count
}

// FindCard returns the slot holding the card with the given ID.
func (b Board) FindCard(cardID string) (CardSlot, bool) {
	for _, s := range b.Slots {
		if s.Card != nil && s.Card.ID == cardID {
			return s, true
		}
	}
	return CardSlot{}, false
}

// Points sums the live points of every card on the board.
func (b Board) Points() int {
	total := 0
	for _, s := range b.Slots {
		if s.Card != nil {
			total += s.Card.Points
		}
	}
	return total
}

// ColorRowFull reports whether every interior slot of the given color is occupied.
func (b Board) ColorRowFull(color Color) bool {
	found := false
	for _, s := range b.Slots {
		if s.Color != color {
			continue
		}
		found = true
		if s.Card == nil {
			return false
		}
	}
	return found
}

// LastSurvivor returns the most recently placed card that is still on the board.
func (b Board) LastSurvivor() (HistoryEntry, bool) {
	for _, h := range b.History {
		if s, ok := b.Slot(h.Cell); ok && s.Card != nil && s.Card.ID == h.CardID {
			return h, true
		}
	}
	return HistoryEntry{}, false
}

// withCard returns a copy of the board with card placed at cell and the
// placement recorded in history. Panics if the cell is out of range or occupied.
func (b Board) withCard(cell int, card Card) Board {
	if cell < 0 || cell >= len(b.Slots) {
		panic(fmt.Sprintf("cell %d out of range", cell))
	}
	if b.Slots[cell].Card != nil {
		panic(fmt.Sprintf("cell %d already holds %s", cell, b.Slots[cell].Card.ID))
	}
	next := b
	next.Slots = slices.Clone(b.Slots)
	placed := card
	next.Slots[cell].Card = &placed
	next.History = append([]HistoryEntry{{CardID: card.ID, Cell: cell}}, b.History...)
	return next
}

// withoutCard returns a copy of the board with the given card removed.
func (b Board) withoutCard(cardID string) (Board, Card, bool) {
	for i, s := range b.Slots {
		if s.Card == nil || s.Card.ID != cardID {
			continue
		}
		removed := *s.Card
		next := b
		next.Slots = slices.Clone(b.Slots)
		next.Slots[i].Card = nil
		return next, removed, true
	}
	return b, Card{}, false
}

// withSlotCards returns a copy of the board with every card replaced by
// update(slot). Empty slots are skipped.
func (b Board) withSlotCards(update func(slot CardSlot) Card) Board {
	next := b
	next.Slots = slices.Clone(b.Slots)
	for i, s := range next.Slots {
		if s.Card == nil {
			continue
		}
		c := update(s)
		next.Slots[i].Card = &c
	}
	return next
}

// cleared returns a copy of the board with every slot emptied. History is kept.
func (b Board) cleared() Board {
	next := b
	next.Slots = slices.Clone(b.Slots)
	for i := range next.Slots {
		next.Slots[i].Card = nil
	}
	return next
}
