package game

import (
	"slices"

	"github.com/peterkuimelis/madrigal/internal/log"
)

const (
	SubGamesPerMatch = 3
	WinsNeeded       = 2
)

// Stage is a follow-up interaction a reaction can demand before the turn ends.
type Stage int

const (
	StageDefault Stage = iota
	StageOwnGraveyardPick
	StageEitherGraveyardPick
	StageOwnBoardPick
	StageOpponentBoardPick
)

func (s Stage) String() string {
	switch s {
	case StageDefault:
		return "default"
	case StageOwnGraveyardPick:
		return "own-graveyard-pick"
	case StageEitherGraveyardPick:
		return "either-graveyard-pick"
	case StageOwnBoardPick:
		return "own-board-pick"
	case StageOpponentBoardPick:
		return "opponent-board-pick"
	default:
		return "unknown"
	}
}

// Prompt returns the instruction shown to the player a stage waits on.
func (s Stage) Prompt() string {
	switch s {
	case StageOwnGraveyardPick:
		return "pick a card from your graveyard"
	case StageEitherGraveyardPick:
		return "pick a card from either graveyard"
	case StageOwnBoardPick:
		return "pick one of your board cards to move"
	case StageOpponentBoardPick:
		return "pick one of your board cards to hand over"
	default:
		return "play a card or pass"
	}
}

// PendingStage is the stage machine's current state.
type PendingStage struct {
	Stage          Stage    `json:"stage"`
	Player         PlayerID `json:"player"`      // who must act
	MovesLeft      int      `json:"moves_left"`
	Beneficiary    PlayerID `json:"beneficiary"` // who receives traded cards
	SourceCardID   string   `json:"source_card_id,omitempty"`
	SelectedCardID string   `json:"selected_card_id,omitempty"`
}

// Active reports whether a follow-up stage is in progress.
func (p PendingStage) Active() bool {
	return p.Stage != StageDefault
}

// PlayerState is one seat's containers and counters.
type PlayerState struct {
	Board     Board  `json:"board"`
	Hand      []Card `json:"hand"`
	Graveyard []Card `json:"graveyard"` // most recently buried first
	Points    int    `json:"points"`
	GamesWon  int    `json:"games_won"`
	Passed    bool   `json:"passed"`
}

// HandCard returns the hand card with the given ID.
func (p PlayerState) HandCard(cardID string) (Card, bool) {
	i := indexOf(p.Hand, cardID)
	if i < 0 {
		return Card{}, false
	}
	return p.Hand[i], true
}

// GraveyardCard returns the graveyard card with the given ID.
func (p PlayerState) GraveyardCard(cardID string) (Card, bool) {
	i := indexOf(p.Graveyard, cardID)
	if i < 0 {
		return Card{}, false
	}
	return p.Graveyard[i], true
}

// GameState is a complete match snapshot. Values are never modified in place;
// every operation returns a new GameState.
type GameState struct {
	Players        [2]PlayerState  `json:"players"`
	Deck           []Card          `json:"deck"` // top is index 0
	Events         []log.GameEvent `json:"events"`
	Pending        PendingStage    `json:"pending"`
	SubGame        int             `json:"sub_game"` // 1..3
	SubGamesPlayed int             `json:"sub_games_played"`
}

// Player returns the state of the given seat.
func (gs GameState) Player(p PlayerID) PlayerState {
	return gs.Players[p]
}

// Board returns the board of the given seat.
func (gs GameState) Board(p PlayerID) Board {
	return gs.Players[p].Board
}

// CardCount returns the number of cards across every container. It is
// constant for the whole match.
func (gs GameState) CardCount() int {
	n := len(gs.Deck)
	for _, p := range gs.Players {
		n += len(p.Hand) + len(p.Graveyard) + p.Board.CardCount()
	}
	return n
}

func indexOf(cards []Card, cardID string) int {
	return slices.IndexFunc(cards, func(c Card) bool { return c.ID == cardID })
}

// withPlayer returns gs with seat p replaced.
func (gs GameState) withPlayer(p PlayerID, ps PlayerState) GameState {
	gs.Players[p] = ps
	return gs
}
