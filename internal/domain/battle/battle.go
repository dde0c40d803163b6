package battle

import (
	"fmt"
	"time"

	"brawl-tracker/internal/domain/value"
)

// Battle is the closed set of battle variants. Every implementation lives in
// this package; switch on Kind or use As to reach the concrete leaf.
type Battle interface {
	BattleTime() time.Time
	BattleEvent() Event
	Kind() Kind
	sealed()
}

// Capability axes. A leaf implements exactly one of TeamFormat/SoloFormat
// and exactly one of OfficialBattle/CommunityMapBattle.
type (
	FriendlyBattle interface {
		Battle
		isFriendly()
	}

	TeamFormat interface {
		Battle
		isTeam()
	}

	SoloFormat interface {
		Battle
		isSolo()
	}

	TrophyAffecting interface {
		Battle
		TrophyDelta() value.TrophyChange
	}

	OfficialBattle interface {
		Battle
		OfficialEvent() OfficialEvent
	}

	CommunityMapBattle interface {
		Battle
		CommunityEvent() CommunityEvent
	}

	RankRace interface {
		Battle
		Position() value.Rank
	}

	// ResultBearing leaves report a result directly. Nil means upstream has
	// not reported one (yet).
	ResultBearing interface {
		Battle
		BattleResult() *Result
	}
)

type Kind int

const (
	KindFriendlyCoop Kind = iota + 1
	KindLastStand
	KindTrophyCoop
	KindFriendlyDuel
	KindCommunityMapDuel
	KindTrophyDuel
	KindFriendlySoloRace
	KindFriendlyTeamRace
	KindCommunityMapSoloRace
	KindCommunityMapTeamRace
	KindTrophySoloRace
	KindTrophyTeamRace
	KindFriendlyTeam
	KindCommunityMapTeam
	KindTrophyTeam
	KindRankedLeague
	KindFriendlyRanked
	KindRankedTeam
)

// Kinds lists every leaf kind.
var Kinds = []Kind{
	KindFriendlyCoop, KindLastStand, KindTrophyCoop,
	KindFriendlyDuel, KindCommunityMapDuel, KindTrophyDuel,
	KindFriendlySoloRace, KindFriendlyTeamRace, KindCommunityMapSoloRace,
	KindCommunityMapTeamRace, KindTrophySoloRace, KindTrophyTeamRace,
	KindFriendlyTeam, KindCommunityMapTeam, KindTrophyTeam,
	KindRankedLeague, KindFriendlyRanked, KindRankedTeam,
}

var kindNames = map[Kind]string{
	KindFriendlyCoop:         "friendly_coop",
	KindLastStand:            "last_stand",
	KindTrophyCoop:           "trophy_coop",
	KindFriendlyDuel:         "friendly_duel",
	KindCommunityMapDuel:     "community_map_duel",
	KindTrophyDuel:           "trophy_duel",
	KindFriendlySoloRace:     "friendly_solo_race",
	KindFriendlyTeamRace:     "friendly_team_race",
	KindCommunityMapSoloRace: "community_map_solo_race",
	KindCommunityMapTeamRace: "community_map_team_race",
	KindTrophySoloRace:       "trophy_solo_race",
	KindTrophyTeamRace:       "trophy_team_race",
	KindFriendlyTeam:         "friendly_team",
	KindCommunityMapTeam:     "community_map_team",
	KindTrophyTeam:           "trophy_team",
	KindRankedLeague:         "ranked_league",
	KindFriendlyRanked:       "friendly_ranked",
	KindRankedTeam:           "ranked_team",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Result int

const (
	ResultVictory Result = iota + 1
	ResultDefeat
	ResultDraw
)

func ParseResult(s string) (Result, error) {
	switch s {
	case "victory":
		return ResultVictory, nil
	case "defeat":
		return ResultDefeat, nil
	case "draw":
		return ResultDraw, nil
	}
	return 0, fmt.Errorf("unknown battle result %q", s)
}

func (r Result) String() string {
	switch r {
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	case ResultDraw:
		return "draw"
	}
	return "unknown"
}

// Official is the header of every leaf played on a curated event.
type Official struct {
	Time  time.Time
	Event OfficialEvent
}

func (o Official) BattleTime() time.Time { return o.Time }

func (o Official) BattleEvent() Event { return o.Event }

func (o Official) OfficialEvent() OfficialEvent { return o.Event }

// CommunityMap is the header of every leaf played on a map-maker map.
type CommunityMap struct {
	Time  time.Time
	Event CommunityEvent
}

func (c CommunityMap) BattleTime() time.Time { return c.Time }

func (c CommunityMap) BattleEvent() Event { return c.Event }

func (c CommunityMap) CommunityEvent() CommunityEvent { return c.Event }

// Trophy is embedded by every trophy-affecting leaf.
type Trophy struct {
	Change value.TrophyChange
}

func (t Trophy) TrophyDelta() value.TrophyChange { return t.Change }

// Traits is the position of a battle on the four classification axes.
type Traits struct {
	Friendly        bool
	Team            bool
	TrophyAffecting bool
	CommunityMap    bool
}

func TraitsOf(b Battle) Traits {
	_, friendly := b.(FriendlyBattle)
	_, team := b.(TeamFormat)
	_, trophy := b.(TrophyAffecting)
	_, community := b.(CommunityMapBattle)
	return Traits{
		Friendly:        friendly,
		Team:            team,
		TrophyAffecting: trophy,
		CommunityMap:    community,
	}
}

// As narrows b to a leaf or capability type.
func As[T Battle](b Battle) (T, bool) {
	t, ok := b.(T)
	return t, ok
}
