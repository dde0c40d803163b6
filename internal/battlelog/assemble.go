package battlelog

import (
	"errors"
	"fmt"
	"time"

	"brawl-tracker/internal/domain/battle"
	"brawl-tracker/internal/domain/value"
)

var (
	ErrCommunityMapOfficialOnly = errors.New("battle kind is only played on official events")
	ErrBotNotAllowed            = errors.New("bots only take part in friendly and community map battles")
	ErrMissingRank              = errors.New("ranking race without a rank")
	ErrMissingResult            = errors.New("battle without a result")
	ErrMissingLevel             = errors.New("last stand battle without a level")
	ErrMissingSnapshot          = errors.New("brawler snapshot missing")
	ErrUnknownLayout            = errors.New("unrecognised participant layout")
)

// AssembleError is returned for a record that cannot become a battle.
type AssembleError struct {
	Time time.Time
	Mode string
	Err  error
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("failed to assemble %s battle at %s: %v", e.Mode, e.Time.Format(time.RFC3339), e.Err)
}

func (e *AssembleError) Unwrap() error { return e.Err }

// scope is the context a record was played in. It decides which brawler
// snapshot the participants carry.
type scope int

const (
	scopeCommunity scope = iota
	scopeFriendly
	scopeTrophy
	scopeRanked
	scopeFriendlyRanked
)

const (
	typeFriendly       = "friendly"
	typeFriendlyRanked = "friendlyRanked"
)

var rankedParty = map[string]value.PartySize{
	"soloRanked": value.PartySolo,
	"duoRanked":  value.PartyDuo,
	"teamRanked": value.PartyTrio,
	"trioRanked": value.PartyTrio,
}

var raceModes = map[value.Mode]struct{}{
	value.ModeSoloShowdown: {},
	value.ModeDuoShowdown:  {},
	value.ModeTrioShowdown: {},
}

// Assemble selects the one leaf a record belongs to:
//   - a rank makes it a ranking race, a team race when teams are present
//   - two teams make it a ranked match in ranked contexts, a team battle otherwise
//   - the last stand mode makes it a Last Stand battle
//   - two players without a level make it a duel
//   - any other participant list makes it a cooperative battle
//
// The record is official when its event carries a non-zero id.
func Assemble(e Entry) (battle.Battle, error) {
	b, err := assemble(e)
	if err != nil {
		return nil, &AssembleError{Time: e.BattleTime.Time, Mode: e.Battle.Mode, Err: err}
	}
	return b, nil
}

func assemble(e Entry) (battle.Battle, error) {
	a, err := newAssembler(e)
	if err != nil {
		return nil, err
	}

	raw := a.raw
	switch {
	case raw.Rank != nil:
		return a.race()
	case isRace(a.mode):
		return nil, ErrMissingRank
	case len(raw.Teams) == 2:
		if a.scope == scopeRanked || a.scope == scopeFriendlyRanked {
			return a.ranked()
		}
		return a.team()
	case a.scope == scopeRanked || a.scope == scopeFriendlyRanked:
		return nil, fmt.Errorf("%w: ranked battle with %d teams", ErrUnknownLayout, len(raw.Teams))
	case a.mode == value.ModeLastStand:
		return a.lastStand()
	case len(raw.Players) == 2 && raw.Level == nil:
		return a.duel()
	case len(raw.Players) > 0 || len(raw.Teams) == 1:
		return a.coop()
	}
	return nil, ErrUnknownLayout
}

func isRace(m value.Mode) bool {
	_, ok := raceModes[m]
	return ok
}

type assembler struct {
	raw   RawBattle
	time  time.Time
	mode  value.Mode
	event *battle.OfficialEvent
	scope scope
}

func newAssembler(e Entry) (*assembler, error) {
	if e.BattleTime.IsZero() {
		return nil, errors.New("battle time missing")
	}

	rawMode := e.Battle.Mode
	if rawMode == "" {
		rawMode = e.Event.Mode
	}
	mode, err := value.NewMode(rawMode)
	if err != nil {
		return nil, err
	}

	a := &assembler{raw: e.Battle, time: e.BattleTime.Time, mode: mode}
	if e.Event.ID != nil && *e.Event.ID != 0 {
		id, err := value.NewEventID(*e.Event.ID)
		if err != nil {
			return nil, err
		}
		a.event = &battle.OfficialEvent{ID: id, Map: e.Event.Map, Mode: mode}
	}

	a.scope, err = a.resolveScope()
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *assembler) resolveScope() (scope, error) {
	_, ranked := rankedParty[a.raw.Type]
	ranked = ranked || a.raw.Type == typeFriendlyRanked

	if a.event == nil {
		switch {
		case ranked:
			return 0, fmt.Errorf("%w: ranked match", ErrCommunityMapOfficialOnly)
		case a.mode == value.ModeLastStand || a.raw.Level != nil:
			return 0, fmt.Errorf("%w: last stand", ErrCommunityMapOfficialOnly)
		case a.raw.TrophyChange != nil:
			return 0, fmt.Errorf("%w: trophy-affecting battle", ErrCommunityMapOfficialOnly)
		}
		return scopeCommunity, nil
	}

	switch {
	case a.raw.Type == typeFriendlyRanked:
		return scopeFriendlyRanked, nil
	case ranked:
		return scopeRanked, nil
	case a.raw.Type == typeFriendly:
		return scopeFriendly, nil
	case a.raw.TrophyChange != nil || a.hasTrophySnapshots():
		return scopeTrophy, nil
	}
	return scopeFriendly, nil
}

func (a *assembler) hasTrophySnapshots() bool {
	check := func(players []RawPlayer) bool {
		for _, p := range players {
			for _, b := range p.lineup() {
				if b.Trophies != nil {
					return true
				}
			}
		}
		return false
	}
	if check(a.raw.Players) {
		return true
	}
	for _, team := range a.raw.Teams {
		if check(team) {
			return true
		}
	}
	return false
}

func (a *assembler) official() battle.Official {
	return battle.Official{Time: a.time, Event: *a.event}
}

func (a *assembler) community() battle.CommunityMap {
	return battle.CommunityMap{Time: a.time, Event: battle.CommunityEvent{Mode: a.mode}}
}

func (a *assembler) result() (*battle.Result, error) {
	if a.raw.Result == "" {
		return nil, nil
	}
	r, err := battle.ParseResult(a.raw.Result)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *assembler) requiredResult() (battle.Result, error) {
	r, err := a.result()
	if err != nil {
		return 0, err
	}
	if r == nil {
		return 0, ErrMissingResult
	}
	return *r, nil
}

func (a *assembler) duration() (value.BattleDuration, error) {
	if a.raw.Duration == nil {
		return value.BattleDuration{}, nil
	}
	return value.NewBattleDuration(*a.raw.Duration)
}

// trophy reads the battle-level delta. Upstream omits it when nothing moved.
func (a *assembler) trophy() (battle.Trophy, error) {
	if a.raw.TrophyChange == nil {
		return battle.Trophy{Change: value.MustTrophyChange(0)}, nil
	}
	change, err := value.NewTrophyChange(*a.raw.TrophyChange)
	if err != nil {
		return battle.Trophy{}, err
	}
	return battle.Trophy{Change: change}, nil
}

func (a *assembler) race() (battle.Battle, error) {
	rank, err := value.NewRank(*a.raw.Rank)
	if err != nil {
		return nil, err
	}
	team := len(a.raw.Teams) > 0

	switch a.scope {
	case scopeCommunity, scopeFriendly:
		if team {
			ts, err := teams(a.raw.Teams, friendlyParticipant)
			if err != nil {
				return nil, err
			}
			if a.scope == scopeCommunity {
				return battle.CommunityMapTeamRace{CommunityMap: a.community(), Rank: rank, Teams: ts}, nil
			}
			return battle.FriendlyTeamRace{Official: a.official(), Rank: rank, Teams: ts}, nil
		}
		players, err := roster(a.raw.Players, friendlyParticipant)
		if err != nil {
			return nil, err
		}
		if a.scope == scopeCommunity {
			return battle.CommunityMapSoloRace{CommunityMap: a.community(), Rank: rank, Players: players}, nil
		}
		return battle.FriendlySoloRace{Official: a.official(), Rank: rank, Players: players}, nil

	case scopeTrophy:
		trophy, err := a.trophy()
		if err != nil {
			return nil, err
		}
		if team {
			ts, err := teams(a.raw.Teams, trophyPlayer)
			if err != nil {
				return nil, err
			}
			return battle.TrophyTeamRace{Official: a.official(), Trophy: trophy, Rank: rank, Teams: ts}, nil
		}
		players, err := roster(a.raw.Players, trophyPlayer)
		if err != nil {
			return nil, err
		}
		return battle.TrophySoloRace{Official: a.official(), Trophy: trophy, Rank: rank, Players: players}, nil
	}
	return nil, fmt.Errorf("%w: ranked match with a rank", ErrUnknownLayout)
}

func (a *assembler) team() (battle.Battle, error) {
	res, err := a.result()
	if err != nil {
		return nil, err
	}
	dur, err := a.duration()
	if err != nil {
		return nil, err
	}

	if a.scope == scopeTrophy {
		trophy, err := a.trophy()
		if err != nil {
			return nil, err
		}
		ts, err := teams(a.raw.Teams, trophyPlayer)
		if err != nil {
			return nil, err
		}
		star, err := starPlayer(a.raw.StarPlayer, ts, trophyPlayer)
		if err != nil {
			return nil, err
		}
		return battle.TrophyTeamBattle{Official: a.official(), Trophy: trophy, Result: res, Duration: dur, StarPlayer: star, Teams: ts}, nil
	}

	ts, err := teams(a.raw.Teams, friendlyParticipant)
	if err != nil {
		return nil, err
	}
	star, err := starPlayer(a.raw.StarPlayer, ts, friendlyParticipant)
	if err != nil {
		return nil, err
	}
	if a.scope == scopeCommunity {
		b := battle.CommunityMapTeamBattle{CommunityMap: a.community(), Result: res, Duration: dur, Teams: ts}
		if star != nil {
			b.StarPlayer = *star
		}
		return b, nil
	}
	b := battle.FriendlyTeamBattle{Official: a.official(), Result: res, Duration: dur, Teams: ts}
	if star != nil {
		b.StarPlayer = *star
	}
	return b, nil
}

// ranked builds a single-round match. The match result is only known on the
// final round, which is the one carrying a star player.
func (a *assembler) ranked() (battle.Battle, error) {
	res, err := a.result()
	if err != nil {
		return nil, err
	}
	dur, err := a.duration()
	if err != nil {
		return nil, err
	}

	var rounds []battle.Round
	if res != nil {
		rounds = []battle.Round{{Result: *res, Duration: dur}}
	}
	if a.raw.StarPlayer == nil {
		res = nil
	}

	if a.scope == scopeFriendlyRanked {
		ts, err := teams(a.raw.Teams, friendlyParticipant)
		if err != nil {
			return nil, err
		}
		star, err := starPlayer(a.raw.StarPlayer, ts, friendlyParticipant)
		if err != nil {
			return nil, err
		}
		b := battle.FriendlyRankedBattle{Official: a.official(), Rounds: rounds, Result: res, Teams: ts}
		if star != nil {
			b.StarPlayer = *star
		}
		return b, nil
	}

	ts, err := teams(a.raw.Teams, rankedPlayer)
	if err != nil {
		return nil, err
	}
	star, err := starPlayer(a.raw.StarPlayer, ts, rankedPlayer)
	if err != nil {
		return nil, err
	}
	return battle.RankedLeagueBattle{
		Official:   a.official(),
		Rounds:     rounds,
		Result:     res,
		StarPlayer: star,
		Party:      rankedParty[a.raw.Type],
		Teams:      ts,
	}, nil
}

func (a *assembler) duel() (battle.Battle, error) {
	res, err := a.result()
	if err != nil {
		return nil, err
	}
	dur, err := a.duration()
	if err != nil {
		return nil, err
	}

	if a.scope == scopeTrophy {
		trophy, err := a.trophy()
		if err != nil {
			return nil, err
		}
		players, err := roster(a.raw.Players, trophyPlayer)
		if err != nil {
			return nil, err
		}
		return battle.TrophyDuel{
			Official: a.official(),
			Trophy:   trophy,
			Result:   res,
			Duration: dur,
			Players:  [2]battle.TrophyPlayer{players[0], players[1]},
		}, nil
	}

	players, err := roster(a.raw.Players, friendlyParticipant)
	if err != nil {
		return nil, err
	}
	pair := [2]battle.FriendlyParticipant{players[0], players[1]}
	if a.scope == scopeCommunity {
		return battle.CommunityMapDuel{CommunityMap: a.community(), Result: res, Duration: dur, Players: pair}, nil
	}
	return battle.FriendlyDuel{Official: a.official(), Result: res, Duration: dur, Players: pair}, nil
}

func (a *assembler) coopPlayers() ([]RawPlayer, error) {
	if len(a.raw.Players) > 0 {
		return a.raw.Players, nil
	}
	if len(a.raw.Teams) == 1 {
		return a.raw.Teams[0], nil
	}
	return nil, ErrUnknownLayout
}

func (a *assembler) coop() (battle.Battle, error) {
	if a.scope == scopeCommunity {
		return nil, fmt.Errorf("%w: cooperative battle", ErrCommunityMapOfficialOnly)
	}
	raw, err := a.coopPlayers()
	if err != nil {
		return nil, err
	}
	res, err := a.requiredResult()
	if err != nil {
		return nil, err
	}
	dur, err := a.duration()
	if err != nil {
		return nil, err
	}

	if a.scope == scopeTrophy {
		trophy, err := a.trophy()
		if err != nil {
			return nil, err
		}
		players, err := roster(raw, trophyPlayer)
		if err != nil {
			return nil, err
		}
		return battle.TrophyCoopBattle{Official: a.official(), Trophy: trophy, Result: res, Duration: dur, Players: players}, nil
	}

	players, err := roster(raw, friendlyParticipant)
	if err != nil {
		return nil, err
	}
	return battle.FriendlyCoopBattle{Official: a.official(), Result: res, Duration: dur, Players: players}, nil
}

func (a *assembler) lastStand() (battle.Battle, error) {
	if a.raw.Level == nil {
		return nil, ErrMissingLevel
	}
	level, err := value.NewEnemyLevel(a.raw.Level.ID, a.raw.Level.Name)
	if err != nil {
		return nil, err
	}
	raw, err := a.coopPlayers()
	if err != nil {
		return nil, err
	}
	res, err := a.requiredResult()
	if err != nil {
		return nil, err
	}
	dur, err := a.duration()
	if err != nil {
		return nil, err
	}
	players, err := roster(raw, trophyPlayer)
	if err != nil {
		return nil, err
	}
	return battle.LastStandBattle{Official: a.official(), Level: level, Result: res, Duration: dur, Players: players}, nil
}
