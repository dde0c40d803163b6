package battlelog

import (
	"fmt"

	"brawl-tracker/internal/domain/battle"
	"brawl-tracker/internal/domain/value"
)

func roster[P battle.Participant](raw []RawPlayer, build func(RawPlayer) (P, error)) (battle.Roster[P], error) {
	r := make(battle.Roster[P], 0, len(raw))
	for _, p := range raw {
		built, err := build(p)
		if err != nil {
			return nil, err
		}
		r = append(r, built)
	}
	return r, nil
}

func teams[P battle.Participant](raw [][]RawPlayer, build func(RawPlayer) (P, error)) (battle.TeamSet[P], error) {
	ts := make(battle.TeamSet[P], 0, len(raw))
	for i, team := range raw {
		r, err := roster(team, build)
		if err != nil {
			return nil, fmt.Errorf("team %d: %w", i, err)
		}
		ts = append(ts, r)
	}
	return ts, nil
}

// starPlayer prefers the team member with the star's tag so both share one
// snapshot.
func starPlayer[P battle.Participant](raw *RawPlayer, ts battle.TeamSet[P], build func(RawPlayer) (P, error)) (*P, error) {
	if raw == nil {
		return nil, nil
	}
	if !raw.isBot() {
		if tag, err := value.NewPlayerTag(raw.Tag); err == nil {
			if p, ok := ts.FindParticipant(tag); ok {
				return &p, nil
			}
		}
	}
	p, err := build(*raw)
	if err != nil {
		return nil, fmt.Errorf("star player: %w", err)
	}
	return &p, nil
}

func player[B battle.BrawlerSnapshot](raw RawPlayer, snapshot func(RawBrawler) (B, error)) (battle.Player[B], error) {
	if raw.isBot() {
		return battle.Player[B]{}, fmt.Errorf("%w: %q", ErrBotNotAllowed, raw.Name)
	}
	tag, err := value.NewPlayerTag(raw.Tag)
	if err != nil {
		return battle.Player[B]{}, err
	}
	lineup := raw.lineup()
	if len(lineup) == 0 {
		return battle.Player[B]{}, fmt.Errorf("%w: %s has no brawler", ErrMissingSnapshot, tag)
	}

	brawlers := make([]B, 0, len(lineup))
	for _, rb := range lineup {
		b, err := snapshot(rb)
		if err != nil {
			return battle.Player[B]{}, fmt.Errorf("player %s: %w", tag, err)
		}
		brawlers = append(brawlers, b)
	}
	return battle.Player[B]{Tag: tag, Name: raw.Name, Brawlers: brawlers}, nil
}

func friendlyParticipant(raw RawPlayer) (battle.FriendlyParticipant, error) {
	if !raw.isBot() {
		return player(raw, friendlyBrawler)
	}
	lineup := raw.lineup()
	if len(lineup) == 0 {
		return nil, fmt.Errorf("%w: bot %q has no brawler", ErrMissingSnapshot, raw.Name)
	}
	b, err := friendlyBrawler(lineup[0])
	if err != nil {
		return nil, err
	}
	return battle.Bot{Name: raw.Name, Brawler: b}, nil
}

func trophyPlayer(raw RawPlayer) (battle.TrophyPlayer, error) { return player(raw, trophyBrawler) }

func rankedPlayer(raw RawPlayer) (battle.RankedPlayer, error) { return player(raw, rankedBrawler) }

func brawler(raw RawBrawler, power value.PowerLevel) (battle.Brawler, error) {
	id, err := value.NewBrawlerID(raw.ID)
	if err != nil {
		return battle.Brawler{}, err
	}
	return battle.Brawler{ID: id, Name: raw.Name, Power: power}, nil
}

// friendlyBrawler accepts a missing power level, which friendly rooms report
// as maxed anyway.
func friendlyBrawler(raw RawBrawler) (battle.FriendlyBrawler, error) {
	power := value.MaxPower()
	if raw.Power != 0 {
		p, err := value.NewPowerLevel(raw.Power)
		if err != nil {
			return battle.FriendlyBrawler{}, err
		}
		power = p
	}
	b, err := brawler(raw, power)
	if err != nil {
		return battle.FriendlyBrawler{}, err
	}
	return battle.FriendlyBrawler{Brawler: b}, nil
}

func trophyBrawler(raw RawBrawler) (battle.TrophyBrawler, error) {
	power, err := value.NewPowerLevel(raw.Power)
	if err != nil {
		return battle.TrophyBrawler{}, err
	}
	b, err := brawler(raw, power)
	if err != nil {
		return battle.TrophyBrawler{}, err
	}
	if raw.Trophies == nil {
		return battle.TrophyBrawler{}, fmt.Errorf("%w: trophies of %s", ErrMissingSnapshot, raw.Name)
	}
	trophies, err := value.NewTrophies(*raw.Trophies)
	if err != nil {
		return battle.TrophyBrawler{}, err
	}

	tb := battle.TrophyBrawler{Brawler: b, Trophies: trophies}
	if raw.TrophyChange != nil {
		change, err := value.NewTrophyChange(*raw.TrophyChange)
		if err != nil {
			return battle.TrophyBrawler{}, err
		}
		tb.TrophyChange = &change
	}
	return tb, nil
}

func rankedBrawler(raw RawBrawler) (battle.RankedBrawler, error) {
	power, err := value.NewPowerLevel(raw.Power)
	if err != nil {
		return battle.RankedBrawler{}, err
	}
	b, err := brawler(raw, power)
	if err != nil {
		return battle.RankedBrawler{}, err
	}
	if raw.Trophies == nil {
		return battle.RankedBrawler{}, fmt.Errorf("%w: ranked stage of %s", ErrMissingSnapshot, raw.Name)
	}
	stage, err := value.NewRankedStage(*raw.Trophies)
	if err != nil {
		return battle.RankedBrawler{}, err
	}
	return battle.RankedBrawler{Brawler: b, Stage: stage}, nil
}
