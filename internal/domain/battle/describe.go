package battle

import (
	"time"

	"brawl-tracker/internal/domain/value"
)

// Description is a flat view of any leaf for storage and transport.
type Description struct {
	Time         time.Time   `json:"time"`
	Kind         string      `json:"kind"`
	Mode         string      `json:"mode"`
	EventID      int         `json:"event_id,omitempty"`
	Map          string      `json:"map,omitempty"`
	Friendly     bool        `json:"friendly"`
	Team         bool        `json:"team"`
	Trophy       bool        `json:"trophy_affecting"`
	CommunityMap bool        `json:"community_map"`
	Outcome      string      `json:"outcome"`
	Result       string      `json:"result,omitempty"`
	Rank         int         `json:"rank,omitempty"`
	TrophyChange *int        `json:"trophy_change,omitempty"`
	Level        string      `json:"level,omitempty"`
	Party        string      `json:"party,omitempty"`
	StarPlayer   string      `json:"star_player,omitempty"`
	Rounds       []RoundView `json:"rounds,omitempty"`
	// FirstRoundAt is set on matches merged from rounds logged earlier.
	FirstRoundAt *time.Time `json:"first_round_at,omitempty"`
}

type RoundView struct {
	Result   string `json:"result"`
	Duration int    `json:"duration_seconds"`
}

// Describe flattens b, classifying it with p.
func (p Policy) Describe(b Battle) Description {
	traits := TraitsOf(b)
	d := Description{
		Time:         b.BattleTime(),
		Kind:         b.Kind().String(),
		Mode:         b.BattleEvent().GameMode().String(),
		Friendly:     traits.Friendly,
		Team:         traits.Team,
		Trophy:       traits.TrophyAffecting,
		CommunityMap: traits.CommunityMap,
		Outcome:      p.Classify(b).String(),
	}
	if o, ok := b.(OfficialBattle); ok {
		d.EventID = o.OfficialEvent().ID.Int()
		d.Map = o.OfficialEvent().Map
	}
	if r, ok := b.(ResultBearing); ok && r.BattleResult() != nil {
		d.Result = r.BattleResult().String()
	}
	if r, ok := b.(RankRace); ok {
		d.Rank = r.Position().Int()
	}
	if t, ok := b.(TrophyAffecting); ok {
		delta := t.TrophyDelta().Int()
		d.TrophyChange = &delta
	}
	if m, ok := b.(MultiRound); ok {
		for _, r := range m.MatchRounds() {
			d.Rounds = append(d.Rounds, RoundView{Result: r.Result.String(), Duration: r.Duration.Seconds()})
		}
		if start := m.MatchStart(); start.Before(d.Time) {
			d.FirstRoundAt = &start
		}
	}

	switch b := b.(type) {
	case LastStandBattle:
		d.Level = b.Level.Name()
	case RankedLeagueBattle:
		d.Party = b.Party.String()
		if b.StarPlayer != nil {
			d.StarPlayer = starName(*b.StarPlayer)
		}
	case FriendlyRankedBattle:
		if b.StarPlayer != nil {
			d.StarPlayer = starName(b.StarPlayer)
		}
	case RankedTeamBattle:
		d.Party = b.Party.String()
	case FriendlyTeamBattle:
		if b.StarPlayer != nil {
			d.StarPlayer = starName(b.StarPlayer)
		}
	case CommunityMapTeamBattle:
		if b.StarPlayer != nil {
			d.StarPlayer = starName(b.StarPlayer)
		}
	case TrophyTeamBattle:
		if b.StarPlayer != nil {
			d.StarPlayer = starName(*b.StarPlayer)
		}
	}
	return d
}

func Describe(b Battle) Description { return DefaultPolicy().Describe(b) }

func starName(p Participant) string {
	if tag, ok := p.ParticipantTag(); ok {
		return p.DisplayName() + " (" + tag.String() + ")"
	}
	return p.DisplayName()
}

// Involves reports whether tag took part in b.
func Involves(b Battle, tag value.PlayerTag) bool {
	switch b := b.(type) {
	case FriendlyCoopBattle:
		return b.Players.Has(tag)
	case LastStandBattle:
		return b.Players.Has(tag)
	case TrophyCoopBattle:
		return b.Players.Has(tag)
	case FriendlyDuel:
		return b.Participants().Has(tag)
	case CommunityMapDuel:
		return b.Participants().Has(tag)
	case TrophyDuel:
		return b.Participants().Has(tag)
	case FriendlySoloRace:
		return b.Players.Has(tag)
	case CommunityMapSoloRace:
		return b.Players.Has(tag)
	case TrophySoloRace:
		return b.Players.Has(tag)
	case FriendlyTeamRace:
		return b.Teams.Has(tag)
	case CommunityMapTeamRace:
		return b.Teams.Has(tag)
	case TrophyTeamRace:
		return b.Teams.Has(tag)
	case FriendlyTeamBattle:
		return b.Teams.Has(tag)
	case CommunityMapTeamBattle:
		return b.Teams.Has(tag)
	case TrophyTeamBattle:
		return b.Teams.Has(tag)
	case RankedLeagueBattle:
		return b.Teams.Has(tag)
	case FriendlyRankedBattle:
		return b.Teams.Has(tag)
	case RankedTeamBattle:
		return b.Teams.Has(tag)
	}
	return false
}
