package net

import "github.com/peterkuimelis/madrigal/internal/game"

// Message types sent by the server.
const (
	MsgNotify       = "notify"
	MsgChooseAction = "choose_action"
	MsgError        = "error"
	MsgGameOver     = "game_over"
)

// Message types sent by clients.
const (
	MsgJoin   = "join"
	MsgAction = "action"
	MsgMove   = "move"
)

// ServerMessage is sent from the server to a client, one JSON object per line.
type ServerMessage struct {
	Type    string       `json:"type"` // "notify", "choose_action", "error", "game_over"
	Event   *EventView   `json:"event,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`
	Prompt  string       `json:"prompt,omitempty"`
	Error   string       `json:"error,omitempty"`
	Winner  string       `json:"winner,omitempty"` // "P1" or "P2", empty for a drawn match
	Result  string       `json:"result,omitempty"`
}

// EventView is a game event as seen by clients.
type EventView struct {
	Seq         int    `json:"seq"`
	SubGame     int    `json:"sub_game"`
	Player      int    `json:"player"`
	Type        string `json:"type"`
	Card        string `json:"card,omitempty"`
	Description string `json:"description"`
}

// ActionView is a legal move offered to the player.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// CardView is a card with its live score.
type CardView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Hero       bool           `json:"hero,omitempty"`
	BasePoints int            `json:"base_points"`
	Points     int            `json:"points"`
	Effects    map[string]int `json:"effects,omitempty"`
}

// SlotView is one board cell.
type SlotView struct {
	Cell    int       `json:"cell"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Color   string    `json:"color"`
	Neutral bool      `json:"neutral,omitempty"`
	Card    *CardView `json:"card,omitempty"`
}

// PlayerView is one seat as seen by a client. Hand is only filled for the
// viewer's own seat.
type PlayerView struct {
	Points         int        `json:"points"`
	GamesWon       int        `json:"games_won"`
	Passed         bool       `json:"passed,omitempty"`
	HandCount      int        `json:"hand_count"`
	Hand           []CardView `json:"hand,omitempty"`
	GraveyardCount int        `json:"graveyard_count"`
	Graveyard      []CardView `json:"graveyard,omitempty"` // top first
	Board          []SlotView `json:"board"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	Seat       string     `json:"seat"`
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	DeckCount  int        `json:"deck_count"`
	SubGame    int        `json:"sub_game"`
	Turn       int        `json:"turn"`
	Stage      string     `json:"stage"`
	MovesLeft  int        `json:"moves_left,omitempty"`
	IsYourTurn bool       `json:"is_your_turn"`
	IsYourMove bool       `json:"is_your_move"`
}

// ClientMessage is sent from a client to the server. A move is either an
// index into the last offered actions or an explicit game.Move.
type ClientMessage struct {
	Type  string     `json:"type"` // "join", "action", "move"
	Index int        `json:"index,omitempty"`
	Move  *game.Move `json:"move,omitempty"`
	Name  string     `json:"name,omitempty"`
}
