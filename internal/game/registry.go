package game

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Definition is a static catalog entry.
type Definition struct {
	Kind        Kind
	Name        string
	BasePoints  int
	IsHero      bool
	Placement   Placement
	Reaction    Reaction
	Description string
}

// IsRowEffect reports whether the card only ever sits in neutral slots and
// modifies its row instead of scoring.
func (d Definition) IsRowEffect() bool {
	return d.Placement == PlaceOwnRowEffect || d.Placement == PlaceEitherRowEffect
}

// PlayableOnOpponent reports whether the card may target the opponent's board.
func (d Definition) PlayableOnOpponent() bool {
	return d.Placement == PlaceEitherColor || d.Placement == PlaceEitherRowEffect
}

// catalog is indexed by Kind.
var catalog = [kindCount]Definition{
	KindSpy: {
		Name: "Spy", BasePoints: 1,
		Placement: PlaceEitherColor, Reaction: ReactInfiltrateEither,
		Description: "Played on the opponent's board: take one card from either graveyard.",
	},
	KindThief: {
		Name: "Thief", BasePoints: 2,
		Placement: PlaceEitherColor, Reaction: ReactInfiltrateOwn,
		Description: "Played on the opponent's board: take up to two cards from your graveyard.",
	},
	KindFisherman: {
		Name: "Fisherman", BasePoints: 3,
		Placement: PlaceOwnColor, Reaction: ReactDraw,
		Description: "Draw a card.",
	},
	KindFarmer: {
		Name: "Farmer", BasePoints: 4,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
		Description: "Heroes on your board gain the square of your farmer count.",
	},
	KindSmith: {
		Name: "Smith", BasePoints: 5,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
		Description: "Every other card in the row gains 1 point. Priests need no weapon.",
	},
	KindMerchant: {
		Name: "Merchant", BasePoints: 6,
		Placement: PlaceEitherColor, Reaction: ReactTrade,
		Description: "Played on the opponent's board: they must hand you one of their board cards.",
	},
	KindPriest: {
		Name: "Priest", BasePoints: 7, IsHero: true,
		Placement: PlaceOwnColor, Reaction: ReactResurrect,
		Description: "Take a card from your graveyard, or draw one if it is empty.",
	},
	KindWarrior: {
		Name: "Warrior", BasePoints: 8,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
	},
	KindFieldMarshal: {
		Name: "Field marshal", BasePoints: 9,
		Placement: PlaceOwnColor, Reaction: ReactReposition,
		Description: "Move one of your board cards to another legal cell.",
	},
	KindTreasurer: {
		Name: "Treasurer", BasePoints: 10, IsHero: true,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
	},
	KindQueen: {
		Name: "Queen", BasePoints: 11, IsHero: true,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
	},
	KindKing: {
		Name: "King", BasePoints: 12, IsHero: true,
		Placement: PlaceOwnColor, Reaction: ReactEndTurn,
	},
	KindStandard: {
		Name: "Standard", BasePoints: 13, IsHero: true,
		Placement: PlaceOwnRowEffect, Reaction: ReactEndTurn,
		Description: "Row effect: doubles every non-hero card in the row.",
	},
	KindFog: {
		Name: "Fog", BasePoints: 0,
		Placement: PlaceEitherRowEffect, Reaction: ReactEndTurn,
		Description: "Row effect: non-heroes score nothing, heroes lose their bonuses.",
	},
	KindJester: {
		Name: "Jester", BasePoints: 0,
		Placement: PlaceEitherRowEffect, Reaction: ReactEndTurn,
		Description: "Row effect: every card in the row scores its base value only.",
	},
}

var definitionsByName map[string]Definition

func init() {
	definitionsByName = make(map[string]Definition, len(catalog))
	for k := range catalog {
		catalog[k].Kind = Kind(k)
		definitionsByName[catalog[k].Name] = catalog[k]
	}
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return catalog[k].Name
}

// Definitions returns the catalog in Kind order.
func Definitions() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog[:])
	return defs
}

// FindDefinition looks up a catalog entry by card name.
func FindDefinition(name string) (Definition, bool) {
	def, ok := definitionsByName[name]
	return def, ok
}

// LookupDefinition looks up a catalog entry by card name.
// Panics if the card is not found.
func LookupDefinition(name string) Definition {
	def, ok := definitionsByName[name]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", name))
	}
	return def
}

// NewCard builds a card instance of the named kind with an explicit ID.
// Panics if the card is not found.
func NewCard(name string, color Color, id string) Card {
	def := LookupDefinition(name)
	if color == ColorNeutral {
		panic(fmt.Sprintf("card %q cannot be neutral", name))
	}
	return Card{
		ID:         id,
		Name:       def.Name,
		Color:      color,
		IsHero:     def.IsHero,
		BasePoints: def.BasePoints,
		Points:     def.BasePoints,
	}
}

// MakeCard builds a card instance whose ID is derived from r. Passing a seeded
// reader yields reproducible IDs.
func MakeCard(name string, color Color, r io.Reader) (Card, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return Card{}, fmt.Errorf("card id: %w", err)
	}
	id := fmt.Sprintf("%s-%s-%s", NormalizedName(name), color, u)
	return NewCard(name, color, id), nil
}
