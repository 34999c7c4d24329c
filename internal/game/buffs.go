package game

// RecomputeBoard derives every card's live score on the board from scratch.
// The result depends only on the board contents, so calling it twice gives
// the same board.
func RecomputeBoard(b Board) Board {
	farmers := b.CountKind(KindFarmer)
	return b.withSlotCards(func(s CardSlot) Card {
		return scoreCard(b, s, farmers)
	})
}

// Recompute refreshes both boards and both players' point totals.
func Recompute(gs GameState) GameState {
	for p := range gs.Players {
		ps := gs.Players[p]
		ps.Board = RecomputeBoard(ps.Board)
		ps.Points = ps.Board.Points()
		gs.Players[p] = ps
	}
	return gs
}

func scoreCard(b Board, s CardSlot, farmers int) Card {
	c := s.Card.reset()
	def := LookupDefinition(c.Name)

	// Row effect cards modify their row; they never score.
	if s.IsNeutral() && def.IsRowEffect() {
		c.Points = 0
		return c
	}
	if b.rowHasEffect(s.Row, KindJester) {
		return c
	}

	effects := make(map[Modifier]int)

	if def.Kind != KindPriest {
		smiths := 0
		for _, other := range b.Row(s.Row) {
			if other.Card != nil && other.Index != s.Index && other.Card.Kind() == KindSmith {
				smiths++
			}
		}
		effects[ModSmith] = smiths
	}

	if c.IsHero {
		effects[ModFarmer] = farmers * farmers
	} else {
		same := 0
		for _, other := range b.Column(s.Col) {
			if other.Card != nil && other.Card.BasePoints == c.BasePoints {
				same++
			}
		}
		effects[ModColumn] = c.BasePoints * (same - 1)
	}

	buffed := c.BasePoints + effects[ModSmith] + effects[ModFarmer] + effects[ModColumn]

	if b.rowHasEffect(s.Row, KindFog) {
		target := 0
		if c.IsHero {
			target = c.BasePoints
		}
		effects[ModFog] = target - buffed
		buffed = target
	}
	if b.rowHasEffect(s.Row, KindStandard) && !c.IsHero {
		effects[ModFlag] = buffed
		buffed *= 2
	}

	c.Points = buffed
	for k, v := range effects {
		if v == 0 {
			delete(effects, k)
		}
	}
	if len(effects) > 0 {
		c.Effects = effects
	}
	return c
}
