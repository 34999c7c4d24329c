package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/madrigal/internal/log"
)

// TestPlayingCardRemovesItFromHand: the card leaves the hand, lands on the
// board and the turn ends.
func TestPlayingCardRemovesItFromHand(t *testing.T) {
	e, logger := newTestEngine()
	warrior := card("Warrior", ColorGreen)
	gs := withHand(emptyState(), Player0, warrior, card("King", ColorRed))
	host := NewRecordingHost(Player0)

	next := must(t)(e.PlayCardFromHand(gs, host, warrior.ID, cell(0, 1), Player0))

	if got := len(next.Players[0].Hand); got != 1 {
		t.Errorf("Expected 1 card left in hand, got %d", got)
	}
	if _, ok := next.Players[0].HandCard(warrior.ID); ok {
		t.Error("Expected warrior to leave the hand")
	}
	slot := next.Board(Player0).Slots[cell(0, 1)]
	if slot.Card == nil || slot.Card.ID != warrior.ID {
		t.Fatalf("Expected warrior at cell %d, got %+v", cell(0, 1), slot.Card)
	}
	if host.endTurns != 1 {
		t.Errorf("Expected one EndTurn, got %d", host.endTurns)
	}
	if len(logger.EventsOfType(log.EventPlace)) != 1 {
		t.Errorf("Expected one place event, got:\n%s", log.FormatAll(logger.Events()))
	}

	// The input state is untouched.
	if len(gs.Players[0].Hand) != 2 || gs.Board(Player0).Slots[cell(0, 1)].Card != nil {
		t.Error("Input state was modified")
	}
}

// TestFishermanKeepsHandLength: the fisherman draws to replace itself.
func TestFishermanKeepsHandLength(t *testing.T) {
	e, _ := newTestEngine()
	fisherman := card("Fisherman", ColorGreen)
	top := card("Queen", ColorBlue)
	gs := withHand(emptyState(), Player0, fisherman, card("Smith", ColorRed))
	gs = withDeck(gs, top, card("Spy", ColorGold))
	host := NewRecordingHost(Player0)

	next := must(t)(e.PlayCardFromHand(gs, host, fisherman.ID, cell(0, 1), Player0))

	if got := len(next.Players[0].Hand); got != 2 {
		t.Errorf("Expected hand length 2, got %d", got)
	}
	if _, ok := next.Players[0].HandCard(top.ID); !ok {
		t.Error("Expected the top deck card in hand")
	}
	if len(next.Deck) != 1 {
		t.Errorf("Expected 1 card left in deck, got %d", len(next.Deck))
	}
	if host.endTurns != 1 {
		t.Errorf("Expected one EndTurn, got %d", host.endTurns)
	}
}

// TestInvalidMovesLeaveStateUnchanged: every rejected move wraps
// ErrInvalidMove, returns its input and never reaches the host or logger.
func TestInvalidMovesLeaveStateUnchanged(t *testing.T) {
	warrior := card("Warrior", ColorGreen)
	blocker := card("King", ColorGreen)
	standard := card("Standard", ColorBlue)
	gs := withHand(emptyState(), Player0, warrior, standard)
	gs = placeOnBoard(gs, Player0, cell(0, 2), blocker)

	tests := []struct {
		name       string
		cardID     string
		cell       int
		boardOwner PlayerID
	}{
		{"not in hand", "missing-card", cell(0, 1), Player0},
		{"occupied", warrior.ID, cell(0, 2), Player0},
		{"wrong color", warrior.ID, cell(1, 1), Player0},
		{"neutral slot", warrior.ID, cell(0, 0), Player0},
		{"opponent board", warrior.ID, cell(0, 1), Player1},
		{"out of range", warrior.ID, BoardCells, Player0},
		{"bad owner", warrior.ID, cell(0, 1), PlayerID(7)},
		{"standard on wrong row", standard.ID, cell(0, 0), Player0},
		{"standard on opponent", standard.ID, cell(1, 0), Player1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, logger := newTestEngine()
			host := NewRecordingHost(Player0)

			next, err := e.PlayCardFromHand(gs, host, tt.cardID, tt.cell, tt.boardOwner)
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("Expected ErrInvalidMove, got %v", err)
			}
			if len(next.Players[0].Hand) != 2 || next.Board(Player0).CardCount() != 1 || len(next.Events) != 0 {
				t.Error("Expected the input state back")
			}
			if host.endTurns != 0 || len(host.stages) != 0 {
				t.Error("Expected no host calls")
			}
			if len(logger.Events()) != 0 {
				t.Error("Expected no logged events")
			}
		})
	}
}

// TestGoldIsWild: a gold card fits every interior cell but no neutral one.
func TestGoldIsWild(t *testing.T) {
	gold := card("Warrior", ColorGold)
	gs := withHand(emptyState(), Player0, gold)

	targets, ok := ValidMoves(gs, Player0, gold.ID)
	if !ok {
		t.Fatal("Expected the card to be found")
	}
	if len(targets.Own) != BoardRows*InteriorSlots {
		t.Errorf("Expected %d own targets, got %d", BoardRows*InteriorSlots, len(targets.Own))
	}
	if len(targets.Opponent) != 0 {
		t.Errorf("Expected no opponent targets, got %v", targets.Opponent)
	}
	for _, c := range targets.Own {
		if gs.Board(Player0).Slots[c].IsNeutral() {
			t.Errorf("Cell %d is neutral", c)
		}
	}
}

// TestRowEffectTargets: the standard matches its row on its own board, fog
// matches its row on both.
func TestRowEffectTargets(t *testing.T) {
	standard := card("Standard", ColorRed)
	fog := card("Fog", ColorBlue)
	gs := withHand(emptyState(), Player0, standard, fog)

	st, _ := ValidMoves(gs, Player0, standard.ID)
	if len(st.Own) != 2 || st.Own[0] != cell(2, 0) || st.Own[1] != cell(2, 6) {
		t.Errorf("Expected standard on cells %d and %d, got %v", cell(2, 0), cell(2, 6), st.Own)
	}
	if len(st.Opponent) != 0 {
		t.Errorf("Expected no opponent cells for the standard, got %v", st.Opponent)
	}

	ft, _ := ValidMoves(gs, Player0, fog.ID)
	if len(ft.Own) != 2 || len(ft.Opponent) != 2 {
		t.Errorf("Expected fog on two cells per board, got %v", ft)
	}
}

// TestFullBlueRowDraws: completing the blue row draws the top deck card.
func TestFullBlueRowDraws(t *testing.T) {
	e, logger := newTestEngine()
	gs := withBoard(emptyState(), Player0, map[int]Card{
		cell(1, 1): card("Warrior", ColorBlue),
		cell(1, 2): card("Warrior", ColorBlue),
		cell(1, 3): card("Warrior", ColorBlue),
		cell(1, 4): card("Warrior", ColorBlue),
	})
	last := card("Warrior", ColorBlue)
	top := card("Farmer", ColorGreen)
	gs = withHand(gs, Player0, last)
	gs = withDeck(gs, top)

	next := must(t)(e.PlayCardFromHand(gs, NewRecordingHost(Player0), last.ID, cell(1, 5), Player0))
	logEvents(t, next)

	if len(next.Deck) != 0 {
		t.Errorf("Expected the deck to be empty, got %d", len(next.Deck))
	}
	if _, ok := next.Players[0].HandCard(top.ID); !ok {
		t.Error("Expected the top deck card in hand")
	}
	if len(logger.EventsOfType(log.EventFullRow)) != 1 {
		t.Error("Expected one full row event")
	}
}

// TestFullGreenRowTakesGraveyardTop: completing the green row returns the
// most recently buried card.
func TestFullGreenRowTakesGraveyardTop(t *testing.T) {
	e, _ := newTestEngine()
	gs := withBoard(emptyState(), Player0, map[int]Card{
		cell(0, 1): card("Warrior", ColorGreen),
		cell(0, 2): card("Warrior", ColorGreen),
		cell(0, 3): card("Warrior", ColorGreen),
		cell(0, 4): card("Warrior", ColorGreen),
	})
	last := card("Warrior", ColorGreen)
	king := card("King", ColorRed)
	queen := card("Queen", ColorRed)
	gs = withHand(gs, Player0, last)
	gs = withGraveyard(gs, Player0, king, queen)

	next := must(t)(e.PlayCardFromHand(gs, NewRecordingHost(Player0), last.ID, cell(0, 5), Player0))

	if _, ok := next.Players[0].HandCard(king.ID); !ok {
		t.Error("Expected the king back in hand")
	}
	grave := next.Players[0].Graveyard
	if len(grave) != 1 || grave[0].ID != queen.ID {
		t.Errorf("Expected only the queen left in the graveyard, got %v", grave)
	}
}

// TestFullGreenRowEmptyGraveyard: nothing to take, nothing happens.
func TestFullGreenRowEmptyGraveyard(t *testing.T) {
	e, logger := newTestEngine()
	gs := withBoard(emptyState(), Player0, map[int]Card{
		cell(0, 1): card("Warrior", ColorGreen),
		cell(0, 2): card("Warrior", ColorGreen),
		cell(0, 3): card("Warrior", ColorGreen),
		cell(0, 4): card("Warrior", ColorGreen),
	})
	last := card("Warrior", ColorGreen)
	gs = withHand(gs, Player0, last)

	next := must(t)(e.PlayCardFromHand(gs, NewRecordingHost(Player0), last.ID, cell(0, 5), Player0))

	if len(next.Players[0].Hand) != 0 {
		t.Errorf("Expected an empty hand, got %d cards", len(next.Players[0].Hand))
	}
	if len(logger.EventsOfType(log.EventFullRow)) != 1 || len(logger.EventsOfType(log.EventAddToHand)) != 0 {
		t.Errorf("Expected a full row event and no hand additions, got:\n%s", log.FormatAll(logger.Events()))
	}
}

// TestFullRedRowEliminatesLastSurvivor: the most recently placed opposing
// card still on the board goes to its owner's graveyard.
func TestFullRedRowEliminatesLastSurvivor(t *testing.T) {
	e, _ := newTestEngine()
	older := card("Queen", ColorGreen)
	newer := card("King", ColorBlue)
	gone := card("Treasurer", ColorBlue)

	gs := emptyState()
	gs = placeOnBoard(gs, Player1, cell(0, 3), older)
	gs = placeOnBoard(gs, Player1, cell(1, 3), newer)
	gs = placeOnBoard(gs, Player1, cell(1, 4), gone)
	gs, _, _ = removeFromBoard(gs, Player1, gone.ID)

	gs = withBoard(gs, Player0, map[int]Card{
		cell(2, 1): card("Warrior", ColorRed),
		cell(2, 2): card("Warrior", ColorRed),
		cell(2, 3): card("Warrior", ColorRed),
		cell(2, 4): card("Warrior", ColorRed),
	})
	last := card("Warrior", ColorRed)
	gs = withHand(gs, Player0, last)
	gs = Recompute(gs)

	next := must(t)(e.PlayCardFromHand(gs, NewRecordingHost(Player0), last.ID, cell(2, 5), Player0))
	logEvents(t, next)

	if _, ok := next.Board(Player1).FindCard(newer.ID); ok {
		t.Error("Expected the king to be eliminated")
	}
	if _, ok := next.Board(Player1).FindCard(older.ID); !ok {
		t.Error("Expected the queen to survive")
	}
	grave := next.Players[1].Graveyard
	if len(grave) != 1 || grave[0].ID != newer.ID {
		t.Fatalf("Expected the king in P2's graveyard, got %v", grave)
	}
	if grave[0].Points != grave[0].BasePoints {
		t.Errorf("Expected buried king reset to %d, got %d", grave[0].BasePoints, grave[0].Points)
	}
}

// TestSpyPicksFromEitherGraveyard: a spy on the opposing board opens a one
// card pick from either graveyard.
func TestSpyPicksFromEitherGraveyard(t *testing.T) {
	e, _ := newTestEngine()
	spy := card("Spy", ColorGreen)
	king := card("King", ColorRed)
	gs := withHand(emptyState(), Player0, spy)
	gs = withGraveyard(gs, Player1, king)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, spy.ID, cell(0, 1), Player1))

	want := StageCall{Player: Player0, Stage: StageEitherGraveyardPick, MoveLimit: 1}
	if host.LastStage() != want {
		t.Fatalf("Expected stage request %+v, got %+v", want, host.LastStage())
	}
	if gs.Pending.Stage != StageEitherGraveyardPick || host.endTurns != 0 {
		t.Fatalf("Expected a pending pick and no turn end, got %+v", gs.Pending)
	}

	gs = must(t)(e.SelectGraveyardCard(gs, host, king.ID, Player1))

	if _, ok := gs.Players[0].HandCard(king.ID); !ok {
		t.Error("Expected the king in P1's hand")
	}
	if gs.Pending.Active() {
		t.Errorf("Expected the stage to be complete, got %+v", gs.Pending)
	}
	if host.endTurns != 1 {
		t.Errorf("Expected one EndTurn, got %d", host.endTurns)
	}
}

// TestSpyWithEmptyGraveyardsEndsTurn: no pick, no draw.
func TestSpyWithEmptyGraveyardsEndsTurn(t *testing.T) {
	e, _ := newTestEngine()
	spy := card("Spy", ColorGreen)
	gs := withHand(emptyState(), Player0, spy)
	gs = withDeck(gs, card("King", ColorRed))
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, spy.ID, cell(0, 1), Player1))

	if gs.Pending.Active() || len(host.stages) != 0 {
		t.Error("Expected no stage")
	}
	if host.endTurns != 1 || len(gs.Players[0].Hand) != 0 {
		t.Errorf("Expected the turn to end without a draw, hand=%d", len(gs.Players[0].Hand))
	}
}

// TestThiefPicksUpToTwo: the thief takes two own graveyard cards, never the
// opponent's.
func TestThiefPicksUpToTwo(t *testing.T) {
	e, _ := newTestEngine()
	thief := card("Thief", ColorBlue)
	a, b, c := card("Queen", ColorRed), card("King", ColorRed), card("Smith", ColorRed)
	theirs := card("Priest", ColorGreen)
	gs := withHand(emptyState(), Player0, thief)
	gs = withGraveyard(gs, Player0, a, b, c)
	gs = withGraveyard(gs, Player1, theirs)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, thief.ID, cell(1, 2), Player1))
	if got := host.LastStage(); got.Stage != StageOwnGraveyardPick || got.MoveLimit != 2 {
		t.Fatalf("Expected own graveyard pick with limit 2, got %+v", got)
	}

	if _, err := e.SelectGraveyardCard(gs, host, theirs.ID, Player1); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected picking from the opponent to fail, got %v", err)
	}

	gs = must(t)(e.SelectGraveyardCard(gs, host, a.ID, Player0))
	if gs.Pending.MovesLeft != 1 || host.endTurns != 0 {
		t.Fatalf("Expected one pick left, got %+v", gs.Pending)
	}
	gs = must(t)(e.SelectGraveyardCard(gs, host, c.ID, Player0))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected the stage complete and the turn over, got %+v", gs.Pending)
	}
	if len(gs.Players[0].Hand) != 2 || len(gs.Players[0].Graveyard) != 1 {
		t.Errorf("Expected 2 in hand and 1 in graveyard, got %d and %d", len(gs.Players[0].Hand), len(gs.Players[0].Graveyard))
	}
}

// TestThiefStopsWhenGraveyardEmpties: a single card ends the stage early.
func TestThiefStopsWhenGraveyardEmpties(t *testing.T) {
	e, _ := newTestEngine()
	thief := card("Thief", ColorGold)
	only := card("Queen", ColorRed)
	gs := withHand(emptyState(), Player0, thief)
	gs = withGraveyard(gs, Player0, only)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, thief.ID, cell(2, 3), Player1))
	gs = must(t)(e.SelectGraveyardCard(gs, host, only.ID, Player0))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected the stage to end with the graveyard, got %+v", gs.Pending)
	}
}

// TestThiefOnOwnBoardEndsTurn: infiltration only works on the other side.
func TestThiefOnOwnBoardEndsTurn(t *testing.T) {
	e, _ := newTestEngine()
	thief := card("Thief", ColorGreen)
	gs := withHand(emptyState(), Player0, thief)
	gs = withGraveyard(gs, Player0, card("Queen", ColorRed))
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, thief.ID, cell(0, 1), Player0))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected no stage, got %+v", gs.Pending)
	}
}

// TestPriestResurrectsOrDraws covers both priest branches.
func TestPriestResurrectsOrDraws(t *testing.T) {
	e, _ := newTestEngine()

	t.Run("graveyard", func(t *testing.T) {
		priest := card("Priest", ColorGreen)
		dead := card("King", ColorRed)
		gs := withHand(emptyState(), Player0, priest)
		gs = withGraveyard(gs, Player0, dead)
		host := NewRecordingHost(Player0)

		gs = must(t)(e.PlayCardFromHand(gs, host, priest.ID, cell(0, 1), Player0))
		if got := host.LastStage(); got.Stage != StageOwnGraveyardPick || got.MoveLimit != 1 {
			t.Fatalf("Expected own graveyard pick, got %+v", got)
		}
		gs = must(t)(e.SelectGraveyardCard(gs, host, dead.ID, Player0))
		if _, ok := gs.Players[0].HandCard(dead.ID); !ok || host.endTurns != 1 {
			t.Error("Expected the king back in hand and the turn over")
		}
	})

	t.Run("empty graveyard", func(t *testing.T) {
		priest := card("Priest", ColorGreen)
		top := card("Smith", ColorBlue)
		gs := withHand(emptyState(), Player0, priest)
		gs = withDeck(gs, top)
		host := NewRecordingHost(Player0)

		gs = must(t)(e.PlayCardFromHand(gs, host, priest.ID, cell(0, 1), Player0))
		if _, ok := gs.Players[0].HandCard(top.ID); !ok || host.endTurns != 1 {
			t.Error("Expected a draw and the turn over")
		}
	})
}

// TestFieldMarshalRepositions: the marshal lets its owner move another own
// card to a cell the card itself may occupy.
func TestFieldMarshalRepositions(t *testing.T) {
	e, _ := newTestEngine()
	warrior := card("Warrior", ColorGreen)
	marshal := card("Field marshal", ColorGreen)
	gs := placeOnBoard(emptyState(), Player0, cell(0, 1), warrior)
	gs = withHand(gs, Player0, marshal)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, marshal.ID, cell(0, 2), Player0))
	// Select, then move.
	if got := host.LastStage(); got.Stage != StageOwnBoardPick || got.Player != Player0 || got.MoveLimit != 2 {
		t.Fatalf("Expected own board pick with two moves, got %+v", got)
	}

	if _, err := e.SelectBoardCard(gs, host, marshal.ID, Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected the marshal to refuse moving itself, got %v", err)
	}
	gs = must(t)(e.SelectBoardCard(gs, host, warrior.ID, Player0))
	if gs.Pending.SelectedCardID != warrior.ID || gs.Pending.MovesLeft != 1 || host.endTurns != 0 {
		t.Fatalf("Expected the warrior selected and the turn still open, got %+v", gs.Pending)
	}

	if _, err := e.PlayCardFromBoard(gs, host, warrior.ID, cell(1, 3), Player0, Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a blue cell to be rejected, got %v", err)
	}
	if _, err := e.PlayCardFromBoard(gs, host, warrior.ID, cell(0, 3), Player1, Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a move to the other board to be rejected, got %v", err)
	}

	gs = must(t)(e.PlayCardFromBoard(gs, host, warrior.ID, cell(0, 4), Player0, Player0))
	if s := gs.Board(Player0).Slots[cell(0, 4)]; s.Card == nil || s.Card.ID != warrior.ID {
		t.Error("Expected the warrior at its new cell")
	}
	if gs.Board(Player0).Slots[cell(0, 1)].Card != nil {
		t.Error("Expected the old cell to be empty")
	}
	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected the stage complete and the turn over, got %+v", gs.Pending)
	}
}

// TestFieldMarshalAloneEndsTurn: nothing to move.
func TestFieldMarshalAloneEndsTurn(t *testing.T) {
	e, _ := newTestEngine()
	marshal := card("Field marshal", ColorBlue)
	gs := withHand(emptyState(), Player0, marshal)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, marshal.ID, cell(1, 1), Player0))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected no stage, got %+v", gs.Pending)
	}
}

// TestMerchantTrade: the opponent picks a card of theirs and it moves to the
// placer's first free legal cell.
func TestMerchantTrade(t *testing.T) {
	e, _ := newTestEngine()
	merchant := card("Merchant", ColorGreen)
	king := card("King", ColorRed)
	gs := placeOnBoard(emptyState(), Player1, cell(2, 3), king)
	gs = withHand(gs, Player0, merchant)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, merchant.ID, cell(0, 1), Player1))

	want := StageCall{Player: Player1, Stage: StageOpponentBoardPick, MoveLimit: 1}
	if host.LastStage() != want {
		t.Fatalf("Expected stage request %+v, got %+v", want, host.LastStage())
	}
	if got := ActingPlayer(gs, host.CurrentPlayer()); got != Player1 {
		t.Fatalf("Expected P2 to act, got %s", got)
	}
	if _, err := e.SelectBoardCard(gs, host, merchant.ID, Player1); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected the merchant itself to be refused, got %v", err)
	}

	gs = must(t)(e.SelectBoardCard(gs, host, king.ID, Player1))
	logEvents(t, gs)

	if s := gs.Board(Player0).Slots[cell(2, 1)]; s.Card == nil || s.Card.ID != king.ID {
		t.Errorf("Expected the king on P1's first red cell")
	}
	if _, ok := gs.Board(Player1).FindCard(king.ID); ok {
		t.Error("Expected the king to leave P2's board")
	}
	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected the stage complete and the turn over, got %+v", gs.Pending)
	}
}

// TestMerchantTradeDisplaces: with every legal cell taken, the occupant of
// the first one is buried to make room.
func TestMerchantTradeDisplaces(t *testing.T) {
	e, _ := newTestEngine()
	standard := card("Standard", ColorGreen)
	fog := card("Fog", ColorGreen)
	merchant := card("Merchant", ColorBlue)
	gs := placeOnBoard(emptyState(), Player0, cell(0, 0), card("Standard", ColorGreen))
	gs = placeOnBoard(gs, Player0, cell(0, 6), standard)
	gs = placeOnBoard(gs, Player1, cell(0, 6), fog)
	gs = withHand(gs, Player0, merchant)
	total := gs.CardCount()
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, merchant.ID, cell(1, 1), Player1))
	gs = must(t)(e.SelectBoardCard(gs, host, fog.ID, Player1))
	logEvents(t, gs)

	if s := gs.Board(Player0).Slots[cell(0, 0)]; s.Card == nil || s.Card.ID != fog.ID {
		t.Errorf("Expected the fog on cell %d", cell(0, 0))
	}
	grave := gs.Players[0].Graveyard
	if len(grave) != 1 || grave[0].Name != "Standard" {
		t.Errorf("Expected the displaced standard in P1's graveyard, got %v", grave)
	}
	if gs.CardCount() != total {
		t.Errorf("Expected %d cards in play, got %d", total, gs.CardCount())
	}
}

// TestMerchantOnOwnBoardEndsTurn: trading needs the opposing board.
func TestMerchantOnOwnBoardEndsTurn(t *testing.T) {
	e, _ := newTestEngine()
	merchant := card("Merchant", ColorGreen)
	gs := placeOnBoard(emptyState(), Player1, cell(2, 3), card("King", ColorRed))
	gs = withHand(gs, Player0, merchant)
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, merchant.ID, cell(0, 1), Player0))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected no stage, got %+v", gs.Pending)
	}
}

// TestStageRestrictsMoves: each stage only accepts its own moves.
func TestStageRestrictsMoves(t *testing.T) {
	e, _ := newTestEngine()
	warrior := card("Warrior", ColorGreen)
	dead := card("King", ColorRed)
	gs := withHand(emptyState(), Player0, warrior)
	gs = withGraveyard(gs, Player0, dead)
	host := NewRecordingHost(Player0)

	if _, err := e.SelectGraveyardCard(gs, host, dead.ID, Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a graveyard pick outside a stage to fail, got %v", err)
	}
	if _, err := e.CancelStage(gs, host); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected cancel outside a stage to fail, got %v", err)
	}

	gs.Pending = PendingStage{Stage: StageOwnGraveyardPick, Player: Player0, MovesLeft: 1, Beneficiary: Player0}
	if _, err := e.PlayCardFromHand(gs, host, warrior.ID, cell(0, 1), Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a hand play inside a stage to fail, got %v", err)
	}
	if _, err := e.Pass(gs, host); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a pass inside a stage to fail, got %v", err)
	}
	if _, err := e.SelectBoardCard(gs, host, warrior.ID, Player0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected a board pick inside a graveyard stage to fail, got %v", err)
	}
	if host.endTurns != 0 || len(host.stages) != 0 {
		t.Error("Expected no host calls")
	}
}

// TestCancelStage: cancelling returns to default and ends the turn.
func TestCancelStage(t *testing.T) {
	e, logger := newTestEngine()
	priest := card("Priest", ColorGreen)
	gs := withHand(emptyState(), Player0, priest)
	gs = withGraveyard(gs, Player0, card("King", ColorRed))
	host := NewRecordingHost(Player0)

	gs = must(t)(e.PlayCardFromHand(gs, host, priest.ID, cell(0, 1), Player0))
	gs = must(t)(e.CancelStage(gs, host))

	if gs.Pending.Active() || host.endTurns != 1 {
		t.Errorf("Expected default stage and one EndTurn, got %+v", gs.Pending)
	}
	if len(gs.Players[0].Graveyard) != 1 {
		t.Error("Expected the graveyard untouched")
	}
	if len(logger.EventsOfType(log.EventStageCancel)) != 1 {
		t.Error("Expected a cancel event")
	}
}

// TestLegalMovesFollowStage: the listed moves match what the engine accepts.
func TestLegalMovesFollowStage(t *testing.T) {
	warrior := card("Warrior", ColorRed)
	gs := withHand(emptyState(), Player0, warrior)

	moves := LegalMoves(gs, Player0)
	if len(moves) != InteriorSlots+1 {
		t.Fatalf("Expected %d moves, got %d: %v", InteriorSlots+1, len(moves), moves)
	}
	if moves[len(moves)-1].Kind != MovePass {
		t.Error("Expected pass to be listed last")
	}

	e, _ := newTestEngine()
	for _, m := range moves {
		if _, err := e.Apply(gs, NewRecordingHost(Player0), m); err != nil {
			t.Errorf("Listed move %s rejected: %v", m, err)
		}
	}
}
