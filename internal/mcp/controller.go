package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterkuimelis/madrigal/internal/game"
)

// errBadOwner is returned for board or graveyard owners other than "own"
// and "opponent".
var errBadOwner = errors.New(`owner must be "own" or "opponent"`)

// resolveOwner maps a relative owner name to a seat.
func resolveOwner(actor game.PlayerID, owner string) (game.PlayerID, error) {
	switch strings.ToLower(strings.TrimSpace(owner)) {
	case "", "own", "self", "mine":
		return actor, nil
	case "opponent", "opp", "theirs":
		return actor.Opponent(), nil
	default:
		return 0, fmt.Errorf("%w, got %q", errBadOwner, owner)
	}
}

// apply plays m for the acting seat and returns the response for the next
// decision.
func (s *Session) apply(m game.Move) (*ToolResponse, error) {
	actor := s.table.Actor()
	if err := s.table.Apply(actor, m); err != nil {
		return nil, err
	}
	return s.respond(), nil
}

func (s *Session) playCard(cardID string, cell int, owner string) (*ToolResponse, error) {
	to, err := resolveOwner(s.table.Actor(), owner)
	if err != nil {
		return nil, err
	}
	return s.apply(game.Move{Kind: game.MovePlayFromHand, CardID: cardID, Cell: cell, BoardOwner: to})
}

func (s *Session) moveBoardCard(cardID string, cell int) (*ToolResponse, error) {
	actor := s.table.Actor()
	return s.apply(game.Move{Kind: game.MovePlayFromBoard, CardID: cardID, Cell: cell, BoardOwner: actor, FromOwner: actor})
}

func (s *Session) selectGraveyardCard(cardID, owner string) (*ToolResponse, error) {
	from, err := resolveOwner(s.table.Actor(), owner)
	if err != nil {
		return nil, err
	}
	return s.apply(game.Move{Kind: game.MoveSelectGraveyard, CardID: cardID, BoardOwner: from})
}

func (s *Session) selectBoardCard(cardID string) (*ToolResponse, error) {
	return s.apply(game.Move{Kind: game.MoveSelectBoard, CardID: cardID, BoardOwner: s.table.Actor()})
}

func (s *Session) pass() (*ToolResponse, error) {
	return s.apply(game.Move{Kind: game.MovePass})
}

func (s *Session) cancelStage() (*ToolResponse, error) {
	return s.apply(game.Move{Kind: game.MoveCancelStage})
}

func (s *Session) undo() (*ToolResponse, error) {
	if err := s.table.Undo(); err != nil {
		return nil, err
	}
	return s.respond(), nil
}
