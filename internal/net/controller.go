package net

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/madrigal/internal/game"
	"github.com/peterkuimelis/madrigal/internal/log"
)

// Seat connects one player of a table to a client over a connection.
type Seat struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player game.PlayerID
	mu     sync.Mutex
}

// NewSeat creates a seat for player on conn.
func NewSeat(conn net.Conn, player game.PlayerID) *Seat {
	return &Seat{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of viewer.
func BuildStateView(gs game.GameState, viewer, current game.PlayerID, turn int) *StateView {
	actor := game.ActingPlayer(gs, current)
	sv := &StateView{
		Seat:       viewer.String(),
		You:        buildPlayerView(gs.Player(viewer), true),
		Opponent:   buildPlayerView(gs.Player(viewer.Opponent()), false),
		DeckCount:  len(gs.Deck),
		SubGame:    gs.SubGame,
		Turn:       turn,
		Stage:      gs.Pending.Stage.String(),
		IsYourTurn: current == viewer,
		IsYourMove: actor == viewer,
	}
	if gs.Pending.Active() {
		sv.MovesLeft = gs.Pending.MovesLeft
	}
	return sv
}

func buildPlayerView(ps game.PlayerState, owner bool) PlayerView {
	pv := PlayerView{
		Points:         ps.Points,
		GamesWon:       ps.GamesWon,
		Passed:         ps.Passed,
		HandCount:      len(ps.Hand),
		GraveyardCount: len(ps.Graveyard),
		Board:          boardView(ps.Board),
	}
	if owner {
		for _, c := range ps.Hand {
			pv.Hand = append(pv.Hand, NewCardView(c))
		}
	}
	for _, c := range ps.Graveyard {
		pv.Graveyard = append(pv.Graveyard, NewCardView(c))
	}
	return pv
}

func boardView(b game.Board) []SlotView {
	slots := make([]SlotView, 0, len(b.Slots))
	for _, s := range b.Slots {
		sv := SlotView{
			Cell:    s.Index,
			Row:     s.Row,
			Col:     s.Col,
			Color:   s.RowColor.String(),
			Neutral: s.IsNeutral(),
		}
		if s.Card != nil {
			cv := NewCardView(*s.Card)
			sv.Card = &cv
		}
		slots = append(slots, sv)
	}
	return slots
}

// NewCardView converts a card for clients.
func NewCardView(c game.Card) CardView {
	cv := CardView{
		ID:         c.ID,
		Name:       c.Name,
		Color:      c.Color.String(),
		Hero:       c.IsHero,
		BasePoints: c.BasePoints,
		Points:     c.Points,
	}
	if len(c.Effects) > 0 {
		cv.Effects = make(map[string]int, len(c.Effects))
		for mod, v := range c.Effects {
			cv.Effects[string(mod)] = v
		}
	}
	return cv
}

// NewEventView converts a logged event for clients.
func NewEventView(ev log.GameEvent) EventView {
	return EventView{
		Seq:         ev.Seq,
		SubGame:     ev.SubGame,
		Player:      ev.Player,
		Type:        ev.Type.String(),
		Card:        ev.Card,
		Description: ev.Description,
	}
}

// RedactEvent hides which card entered another player's hand.
func RedactEvent(ev log.GameEvent, viewer game.PlayerID) log.GameEvent {
	if ev.Player == int(viewer) {
		return ev
	}
	switch ev.Type {
	case log.EventDraw:
		ev.Card = ""
		ev.Description = fmt.Sprintf("%s draws a card", log.PlayerName(ev.Player))
	case log.EventAddToHand:
		ev.Card = ""
		ev.Description = fmt.Sprintf("%s takes a card into hand", log.PlayerName(ev.Player))
	}
	return ev
}

// NewActionViews numbers moves for clients.
func NewActionViews(moves []game.Move) []ActionView {
	views := make([]ActionView, 0, len(moves))
	for i, m := range moves {
		views = append(views, ActionView{Index: i, Desc: m.String()})
	}
	return views
}

// send sends a server message to the client. Must be called with mu held.
func (s *Seat) send(msg ServerMessage) error {
	return s.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (s *Seat) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := s.dec.Decode(&msg)
	return msg, err
}

// ChooseMove offers moves to the client and returns its choice. A reply that
// names no offered or well-formed move yields an error wrapping
// game.ErrInvalidMove.
func (s *Seat) ChooseMove(state *StateView, moves []game.Move, prompt string) (game.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := ServerMessage{
		Type:    MsgChooseAction,
		Actions: NewActionViews(moves),
		State:   state,
		Prompt:  prompt,
	}
	if err := s.send(msg); err != nil {
		return game.Move{}, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := s.recv()
	if err != nil {
		return game.Move{}, fmt.Errorf("recv action: %w", err)
	}

	switch resp.Type {
	case MsgAction:
		if resp.Index < 0 || resp.Index >= len(moves) {
			return game.Move{}, fmt.Errorf("%w: no action %d", game.ErrInvalidMove, resp.Index+1)
		}
		return moves[resp.Index], nil
	case MsgMove:
		if resp.Move == nil {
			return game.Move{}, fmt.Errorf("%w: move message without a move", game.ErrInvalidMove)
		}
		return *resp.Move, nil
	default:
		return game.Move{}, fmt.Errorf("%w: unexpected %q message", game.ErrInvalidMove, resp.Type)
	}
}

// Notify forwards a game event to the client, redacted for its player.
func (s *Seat) Notify(ev log.GameEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := NewEventView(RedactEvent(ev, s.player))
	return s.send(ServerMessage{Type: MsgNotify, Event: &view})
}

// SendError reports a rejected move to the client.
func (s *Seat) SendError(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(ServerMessage{Type: MsgError, Error: err.Error()})
}

// SendGameOver sends the final result to the client.
func (s *Seat) SendGameOver(winner, result string, state *StateView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(ServerMessage{Type: MsgGameOver, Winner: winner, Result: result, State: state})
}
