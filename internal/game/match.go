package game

import (
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/madrigal/internal/log"
)

// Setup builds the shuffled deck described by the engine's rules and deals
// both opening hands, alternating seats starting with Player0. All randomness
// comes from rng, so equal seeds give equal states.
func (e *Engine) Setup(rng *rand.Rand) GameState {
	var deck []Card
	for _, color := range e.Rules.Colors {
		for _, entry := range e.Rules.Cards {
			for i := 0; i < entry.Count; i++ {
				card, err := MakeCard(entry.Name, color, rng)
				if err != nil {
					panic(fmt.Sprintf("setup: %v", err))
				}
				deck = append(deck, card)
			}
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	gs := GameState{
		Players: [2]PlayerState{
			{Board: NewBoard(Player0), Hand: []Card{}, Graveyard: []Card{}},
			{Board: NewBoard(Player1), Hand: []Card{}, Graveyard: []Card{}},
		},
		Deck:    deck,
		Events:  []log.GameEvent{},
		SubGame: 1,
	}
	for i := 0; i < e.Rules.HandSize; i++ {
		for _, p := range []PlayerID{Player0, Player1} {
			gs, _, _ = drawFromDeck(gs, p)
		}
	}
	return gs
}

// TurnBegin recomputes every board card's score and both point totals, and
// records the turn start. Hosts call it once before each turn's first move.
func (e *Engine) TurnBegin(gs GameState, host Host) GameState {
	gs = Recompute(gs)
	return e.record(gs, log.NewTurnBeginEvent(int(host.CurrentPlayer()), gs.Players[0].Points, gs.Players[1].Points))
}

// BothPassed reports whether the current sub-game is over.
func BothPassed(gs GameState) bool {
	return gs.Players[0].Passed && gs.Players[1].Passed
}

// MatchWinner returns the seat that has won two sub-games. Once all three
// sub-games are played, the seat with more wins takes the match; equal
// counts mean a drawn match and no winner.
func MatchWinner(gs GameState) (PlayerID, bool) {
	g0, g1 := gs.Players[0].GamesWon, gs.Players[1].GamesWon
	switch {
	case g0 >= WinsNeeded:
		return Player0, true
	case g1 >= WinsNeeded:
		return Player1, true
	case gs.SubGamesPlayed < SubGamesPerMatch:
		return 0, false
	case g0 > g1:
		return Player0, true
	case g1 > g0:
		return Player1, true
	}
	return 0, false
}

// MatchOver reports whether no further sub-game will be played.
func MatchOver(gs GameState) bool {
	if _, ok := MatchWinner(gs); ok {
		return true
	}
	return gs.SubGamesPlayed >= SubGamesPerMatch
}

// EndSubGame scores the finished sub-game, credits its winner and, if the
// match goes on, sweeps both boards and starts the next sub-game.
func (e *Engine) EndSubGame(gs GameState) GameState {
	gs = Recompute(gs)
	p0, p1 := gs.Players[0].Points, gs.Players[1].Points

	var winner PlayerID
	credited := true
	switch {
	case p0 > p1:
		winner = Player0
	case p1 > p0:
		winner = Player1
	case e.Rules.TieBreak == TieSecondPlayer:
		winner = Player1
	default:
		credited = false
	}
	if credited {
		gs = incrementGamesWon(gs, winner)
	}
	gs = clearPassed(gs)
	gs.Pending = PendingStage{}
	gs.SubGamesPlayed++
	gs = e.record(gs, log.NewSubGameEndEvent(int(winner), credited, p0, p1))

	if MatchOver(gs) {
		g0, g1 := gs.Players[0].GamesWon, gs.Players[1].GamesWon
		if w, ok := MatchWinner(gs); ok {
			return e.record(gs, log.NewMatchWinEvent(int(w), g0, g1))
		}
		return e.record(gs, log.NewMatchDrawEvent(g0, g1))
	}

	for _, p := range []PlayerID{Player0, Player1} {
		var n int
		gs, n = sweepBoard(gs, p)
		gs = e.record(gs, log.NewSweepEvent(int(p), n))
	}
	gs = Recompute(gs)
	gs.SubGame++
	return gs
}
