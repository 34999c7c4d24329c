package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TieBreak decides who is credited when a sub-game ends level.
type TieBreak string

const (
	// TieNone credits nobody. A match can then end drawn after three sub-games.
	TieNone TieBreak = "none"
	// TieSecondPlayer credits the second seat, as older tables did.
	TieSecondPlayer TieBreak = "second_player"
)

const DefaultHandSize = 10

// Rules is the match configuration loaded from YAML.
type Rules struct {
	HandSize int         `yaml:"hand_size" json:"hand_size"`
	TieBreak TieBreak    `yaml:"tie_break" json:"tie_break"`
	Colors   []Color     `yaml:"colors" json:"colors"`
	Cards    []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry is a card and the number of copies per color in the deck.
type CardEntry struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// DefaultRules returns one copy of every catalog card in each of the four
// card colors, a ten card opening hand and no tie credit.
func DefaultRules() Rules {
	r := Rules{
		HandSize: DefaultHandSize,
		TieBreak: TieNone,
		Colors:   []Color{ColorGreen, ColorBlue, ColorRed, ColorGold},
	}
	for _, def := range catalog {
		r.Cards = append(r.Cards, CardEntry{Name: def.Name, Count: 1})
	}
	return r
}

// DeckSize returns the number of cards Setup builds.
func (r Rules) DeckSize() int {
	n := 0
	for _, c := range r.Cards {
		n += c.Count
	}
	return n * len(r.Colors)
}

// Validate checks the rules for values Setup cannot work with.
func (r Rules) Validate() error {
	var errs []error
	if r.HandSize < 0 {
		errs = append(errs, fmt.Errorf("hand_size must not be negative (got %d)", r.HandSize))
	}
	switch r.TieBreak {
	case TieNone, TieSecondPlayer:
	default:
		errs = append(errs, fmt.Errorf("unknown tie_break %q", r.TieBreak))
	}
	if len(r.Colors) == 0 {
		errs = append(errs, errors.New("colors must not be empty"))
	}
	for _, c := range r.Colors {
		if c == ColorNeutral {
			errs = append(errs, errors.New("cards cannot be neutral"))
		}
	}
	if len(r.Cards) == 0 {
		errs = append(errs, errors.New("cards must not be empty"))
	}
	for _, c := range r.Cards {
		if _, ok := FindDefinition(c.Name); !ok {
			errs = append(errs, fmt.Errorf("unknown card %q", c.Name))
		}
		if c.Count < 0 {
			errs = append(errs, fmt.Errorf("card %q: count must not be negative", c.Name))
		}
	}
	if len(errs) == 0 && 2*r.HandSize > r.DeckSize() {
		errs = append(errs, fmt.Errorf("deck of %d cards cannot deal two hands of %d", r.DeckSize(), r.HandSize))
	}
	return errors.Join(errs...)
}

// ParseRules decodes rules from YAML. Missing fields take their defaults.
func ParseRules(data []byte) (Rules, error) {
	r := DefaultRules()
	r.Colors = nil
	r.Cards = nil

	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules YAML: %w", err)
	}

	def := DefaultRules()
	if r.TieBreak == "" {
		r.TieBreak = def.TieBreak
	}
	if len(r.Colors) == 0 {
		r.Colors = def.Colors
	}
	if len(r.Cards) == 0 {
		r.Cards = def.Cards
	}
	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return r, nil
}

// ParseRulesFile reads and decodes a YAML rules file.
func ParseRulesFile(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}
	return ParseRules(data)
}
