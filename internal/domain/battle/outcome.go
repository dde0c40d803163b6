package battle

// Outcome is the classified result of a battle from the log owner's view.
// The zero value is OutcomeUndetermined.
type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	}
	return "undetermined"
}

// Policy holds the thresholds the classifier works with. They approximate
// in-game behaviour: a loss at the trophy floor is compensated and shows up
// as an unchanged trophy count, and the placement cut-offs mirror the
// current showdown trophy tables. Neither is a hard upstream contract.
type Policy struct {
	// Team races: placements up to TeamVictoryMax win, TeamDraw is neutral.
	TeamVictoryMax int
	TeamDraw       int
	// Solo races: placements up to SoloVictoryMax win, SoloDraw is neutral.
	SoloVictoryMax int
	SoloDraw       int
	// TrophyDeltaFirst makes the trophy delta decide trophy-affecting races
	// and cooperative battles before rank or result is consulted.
	TrophyDeltaFirst bool
}

func DefaultPolicy() Policy {
	return Policy{
		TeamVictoryMax:   2,
		TeamDraw:         3,
		SoloVictoryMax:   4,
		SoloDraw:         5,
		TrophyDeltaFirst: true,
	}
}

// Classify applies DefaultPolicy.
func Classify(b Battle) Outcome { return DefaultPolicy().Classify(b) }

func (p Policy) Classify(b Battle) Outcome {
	switch b := b.(type) {
	case FriendlyCoopBattle:
		return fromResult(&b.Result)
	case LastStandBattle:
		return fromResult(&b.Result)
	case TrophyCoopBattle:
		if p.TrophyDeltaFirst {
			return p.fromTrophies(b)
		}
		return fromResult(&b.Result)

	case FriendlyDuel:
		return fromResult(b.Result)
	case CommunityMapDuel:
		return fromResult(b.Result)
	case TrophyDuel:
		return fromResult(b.Result)

	case FriendlySoloRace:
		return p.solo(b.Rank.Int())
	case CommunityMapSoloRace:
		return p.solo(b.Rank.Int())
	case TrophySoloRace:
		if p.TrophyDeltaFirst {
			return p.fromTrophies(b)
		}
		return p.solo(b.Rank.Int())
	case FriendlyTeamRace:
		return p.team(b.Rank.Int())
	case CommunityMapTeamRace:
		return p.team(b.Rank.Int())
	case TrophyTeamRace:
		if p.TrophyDeltaFirst {
			return p.fromTrophies(b)
		}
		return p.team(b.Rank.Int())

	case FriendlyTeamBattle:
		return fromResult(b.Result)
	case CommunityMapTeamBattle:
		return fromResult(b.Result)
	case TrophyTeamBattle:
		if p.TrophyDeltaFirst {
			return p.fromTrophies(b)
		}
		return fromResult(b.Result)

	case RankedLeagueBattle:
		return fromResult(b.Result)
	case FriendlyRankedBattle:
		return fromResult(b.Result)
	case RankedTeamBattle:
		return fromResult(b.Result)
	}
	return OutcomeUndetermined
}

func fromResult(r *Result) Outcome {
	if r == nil {
		return OutcomeUndetermined
	}
	switch *r {
	case ResultVictory:
		return OutcomeVictory
	case ResultDefeat:
		return OutcomeDefeat
	case ResultDraw:
		return OutcomeDraw
	}
	return OutcomeUndetermined
}

func (p Policy) fromTrophies(b TrophyAffecting) Outcome {
	delta := b.TrophyDelta()
	switch {
	case delta.Gained():
		return OutcomeVictory
	case delta.Lost():
		return OutcomeDefeat
	}
	return OutcomeDraw
}

func (p Policy) solo(rank int) Outcome {
	return byPlacement(rank, p.SoloVictoryMax, p.SoloDraw)
}

func (p Policy) team(rank int) Outcome {
	return byPlacement(rank, p.TeamVictoryMax, p.TeamDraw)
}

func byPlacement(rank, victoryMax, draw int) Outcome {
	switch {
	case rank <= victoryMax:
		return OutcomeVictory
	case rank == draw:
		return OutcomeDraw
	}
	return OutcomeDefeat
}

// Summary counts outcomes over a battle sequence. Undetermined battles are
// counted separately and never fold into the other three.
type Summary struct {
	Victories    int
	Defeats      int
	Draws        int
	Undetermined int
}

func (s Summary) Total() int { return s.Victories + s.Defeats + s.Draws + s.Undetermined }

// Determined is the number of battles with a victory, defeat or draw.
func (s Summary) Determined() int { return s.Victories + s.Defeats + s.Draws }

// WinRate is victories over determined battles, 0 when there are none.
func (s Summary) WinRate() float64 {
	if s.Determined() == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.Determined())
}

func (s Summary) Add(o Outcome) Summary {
	switch o {
	case OutcomeVictory:
		s.Victories++
	case OutcomeDefeat:
		s.Defeats++
	case OutcomeDraw:
		s.Draws++
	default:
		s.Undetermined++
	}
	return s
}

func (s Summary) Merge(o Summary) Summary {
	return Summary{
		Victories:    s.Victories + o.Victories,
		Defeats:      s.Defeats + o.Defeats,
		Draws:        s.Draws + o.Draws,
		Undetermined: s.Undetermined + o.Undetermined,
	}
}

func (p Policy) Tally(battles []Battle) Summary {
	var s Summary
	for _, b := range battles {
		s = s.Add(p.Classify(b))
	}
	return s
}

func Tally(battles []Battle) Summary { return DefaultPolicy().Tally(battles) }

func Victories(battles []Battle) int { return Tally(battles).Victories }

func Defeats(battles []Battle) int { return Tally(battles).Defeats }

func Draws(battles []Battle) int { return Tally(battles).Draws }
