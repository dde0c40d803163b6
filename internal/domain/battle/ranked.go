package battle

import (
	"slices"
	"time"

	"brawl-tracker/internal/domain/value"
)

// Round is one sub-match of a multi-round ranked match.
type Round struct {
	Result   Result
	Duration value.BattleDuration
}

// MultiRound is implemented by the ranked leaves whose rounds upstream logs
// as separate entries.
type MultiRound interface {
	ResultBearing
	OfficialBattle
	TeamFormat
	MatchRounds() []Round
	HasStarPlayer() bool
	// SameTeams is false for battles of a different leaf.
	SameTeams(other MultiRound) bool
	// WithRounds returns a copy carrying rounds in place of its own.
	// firstRoundAt is when the oldest of them was logged.
	WithRounds(rounds []Round, firstRoundAt time.Time) MultiRound
	// MatchStart is when the first round of the match was logged.
	MatchStart() time.Time
	// Standalone is the entry as a plain team battle decided by its own
	// round. It is used for rounds whose match never showed a final round.
	Standalone() TeamFormat
}

func matchStart(o Official, firstRoundAt time.Time) time.Time {
	if firstRoundAt.IsZero() || firstRoundAt.After(o.Time) {
		return o.Time
	}
	return firstRoundAt
}

// ownRound is the round an entry was logged for, if upstream gave a result.
func ownRound(rounds []Round) (*Result, value.BattleDuration) {
	if len(rounds) == 0 {
		return nil, value.BattleDuration{}
	}
	r := rounds[len(rounds)-1]
	return &r.Result, r.Duration
}

// RankedLeagueBattle is a competitive ranked match. Result is nil while the
// match is unfinished or when only a non-final round was observed.
type RankedLeagueBattle struct {
	Official
	Rounds       []Round
	FirstRoundAt time.Time
	Result       *Result
	StarPlayer   *RankedPlayer
	Party        value.PartySize
	Teams        TeamSet[RankedPlayer]
}

func (RankedLeagueBattle) Kind() Kind { return KindRankedLeague }
func (RankedLeagueBattle) sealed()    {}
func (RankedLeagueBattle) isTeam()    {}

func (b RankedLeagueBattle) BattleResult() *Result { return b.Result }

func (b RankedLeagueBattle) MatchRounds() []Round { return b.Rounds }

func (b RankedLeagueBattle) HasStarPlayer() bool { return b.StarPlayer != nil }

func (b RankedLeagueBattle) SameTeams(other MultiRound) bool {
	o, ok := other.(RankedLeagueBattle)
	return ok && b.Teams.SameRosters(o.Teams)
}

func (b RankedLeagueBattle) WithRounds(rounds []Round, firstRoundAt time.Time) MultiRound {
	b.Rounds = slices.Clone(rounds)
	b.FirstRoundAt = firstRoundAt
	return b
}

func (b RankedLeagueBattle) MatchStart() time.Time { return matchStart(b.Official, b.FirstRoundAt) }

func (b RankedLeagueBattle) Standalone() TeamFormat {
	res, dur := ownRound(b.Rounds)
	return RankedTeamBattle{Official: b.Official, Result: res, Duration: dur, Party: b.Party, Teams: b.Teams}
}

// FriendlyRankedBattle is the classic friendly match played with the ranked
// draft. Rounds are logged the same way as in the league.
type FriendlyRankedBattle struct {
	Official
	Rounds       []Round
	FirstRoundAt time.Time
	Result       *Result
	StarPlayer   FriendlyParticipant
	Teams        TeamSet[FriendlyParticipant]
}

func (FriendlyRankedBattle) Kind() Kind  { return KindFriendlyRanked }
func (FriendlyRankedBattle) sealed()     {}
func (FriendlyRankedBattle) isFriendly() {}
func (FriendlyRankedBattle) isTeam()     {}

func (b FriendlyRankedBattle) BattleResult() *Result { return b.Result }

func (b FriendlyRankedBattle) MatchRounds() []Round { return b.Rounds }

func (b FriendlyRankedBattle) HasStarPlayer() bool { return b.StarPlayer != nil }

func (b FriendlyRankedBattle) SameTeams(other MultiRound) bool {
	o, ok := other.(FriendlyRankedBattle)
	return ok && b.Teams.SameRosters(o.Teams)
}

func (b FriendlyRankedBattle) WithRounds(rounds []Round, firstRoundAt time.Time) MultiRound {
	b.Rounds = slices.Clone(rounds)
	b.FirstRoundAt = firstRoundAt
	return b
}

func (b FriendlyRankedBattle) MatchStart() time.Time { return matchStart(b.Official, b.FirstRoundAt) }

func (b FriendlyRankedBattle) Standalone() TeamFormat {
	res, dur := ownRound(b.Rounds)
	return FriendlyTeamBattle{Official: b.Official, Result: res, Duration: dur, StarPlayer: b.StarPlayer, Teams: b.Teams}
}

// RankedTeamBattle is a single ranked round seen without the rest of its
// match. It keeps the ranked snapshots of its players.
type RankedTeamBattle struct {
	Official
	Result   *Result
	Duration value.BattleDuration
	Party    value.PartySize
	Teams    TeamSet[RankedPlayer]
}

func (RankedTeamBattle) Kind() Kind { return KindRankedTeam }
func (RankedTeamBattle) sealed()    {}
func (RankedTeamBattle) isTeam()    {}

func (b RankedTeamBattle) BattleResult() *Result { return b.Result }
