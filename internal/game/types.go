package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// PlayerID identifies one of the two seats.
type PlayerID int

const (
	Player0 PlayerID = 0
	Player1 PlayerID = 1
)

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}

// Valid reports whether p is one of the two seats.
func (p PlayerID) Valid() bool {
	return p == Player0 || p == Player1
}

func (p PlayerID) String() string {
	return fmt.Sprintf("P%d", int(p)+1)
}

// Color is the color of a card or a board slot. Cards are never neutral.
type Color int

const (
	ColorNeutral Color = iota
	ColorGreen
	ColorBlue
	ColorRed
	ColorGold
)

func (c Color) String() string {
	switch c {
	case ColorNeutral:
		return "neutral"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGold:
		return "gold"
	default:
		return "unknown"
	}
}

// ParseColor converts a color name into a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral":
		return ColorNeutral, nil
	case "green":
		return ColorGreen, nil
	case "blue":
		return ColorBlue, nil
	case "red":
		return ColorRed, nil
	case "gold":
		return ColorGold, nil
	default:
		return ColorNeutral, fmt.Errorf("unknown color %q", s)
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Kind is the tag of a catalog entry.
type Kind int

const (
	KindSpy Kind = iota
	KindThief
	KindFisherman
	KindFarmer
	KindSmith
	KindMerchant
	KindPriest
	KindWarrior
	KindFieldMarshal
	KindTreasurer
	KindQueen
	KindKing
	KindStandard
	KindFog
	KindJester
	kindCount
)

// Placement is the rule that yields a card's legal target cells.
type Placement int

const (
	// PlaceOwnColor: color-matching interior slots on the owner's board.
	PlaceOwnColor Placement = iota
	// PlaceEitherColor: color-matching interior slots on both boards.
	PlaceEitherColor
	// PlaceOwnRowEffect: neutral slots of the matching row on the owner's board.
	PlaceOwnRowEffect
	// PlaceEitherRowEffect: neutral slots of the matching row on both boards.
	PlaceEitherRowEffect
)

func (p Placement) String() string {
	switch p {
	case PlaceOwnColor:
		return "own_color"
	case PlaceEitherColor:
		return "either_color"
	case PlaceOwnRowEffect:
		return "own_row_effect"
	case PlaceEitherRowEffect:
		return "either_row_effect"
	default:
		return "unknown"
	}
}

// Reaction is what happens right after a card is placed.
type Reaction int

const (
	ReactEndTurn Reaction = iota
	ReactInfiltrateEither
	ReactInfiltrateOwn
	ReactDraw
	ReactResurrect
	ReactReposition
	ReactTrade
)

func (r Reaction) String() string {
	switch r {
	case ReactEndTurn:
		return "end turn"
	case ReactInfiltrateEither:
		return "take a card from any graveyard when played on the opponent's board"
	case ReactInfiltrateOwn:
		return "take up to two cards from your graveyard when played on the opponent's board"
	case ReactDraw:
		return "draw a card"
	case ReactResurrect:
		return "take a card from your graveyard, or draw if it is empty"
	case ReactReposition:
		return "move one of your board cards"
	case ReactTrade:
		return "when played on the opponent's board, they hand you one of their board cards"
	default:
		return "unknown"
	}
}

// Modifier names a contribution to a card's live score.
type Modifier string

const (
	ModSmith  Modifier = "smith"
	ModFarmer Modifier = "farmer"
	ModColumn Modifier = "column"
	ModFog    Modifier = "fog"
	ModFlag   Modifier = "flag"
)

// --- Card instance ---

// Card is a single physical card. Values are treated as immutable once they
// are part of a GameState; updates produce a new Card.
type Card struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Color      Color            `json:"color"`
	IsHero     bool             `json:"is_hero"`
	BasePoints int              `json:"base_points"`
	Points     int              `json:"points"`
	Effects    map[Modifier]int `json:"effects,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Color)
}

// DisplayString returns a human-readable description including live points.
func (c Card) DisplayString() string {
	if c.Points == c.BasePoints {
		return fmt.Sprintf("%s %s %d", c.Color, c.Name, c.Points)
	}
	return fmt.Sprintf("%s %s %d (base %d)", c.Color, c.Name, c.Points, c.BasePoints)
}

// Kind resolves the card's catalog tag. Panics on unknown names.
func (c Card) Kind() Kind {
	return LookupDefinition(c.Name).Kind
}

// reset returns the card with its score back to base and no modifiers.
func (c Card) reset() Card {
	c.Points = c.BasePoints
	c.Effects = nil
	return c
}

// NormalizedName lower-cases a card name and replaces spaces with underscores.
func NormalizedName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
