package battle

import (
	"slices"

	"brawl-tracker/internal/domain/value"
)

// Brawler is the part every brawler-in-battle shares.
type Brawler struct {
	ID    value.BrawlerID
	Name  string
	Power value.PowerLevel
}

func (b Brawler) Base() Brawler { return b }

// FriendlyBrawler carries no snapshot. Upstream reports friendly power at
// the maximum level regardless of the real one.
type FriendlyBrawler struct {
	Brawler
}

// TrophyBrawler is a brawler in a trophy-affecting battle. TrophyChange is
// only reported per brawler in duels.
type TrophyBrawler struct {
	Brawler
	Trophies     value.Trophies
	TrophyChange *value.TrophyChange
}

type RankedBrawler struct {
	Brawler
	Stage value.RankedStage
}

// BrawlerSnapshot is satisfied by the three brawler shapes above.
type BrawlerSnapshot interface {
	Base() Brawler
}

// Participant is anything that can appear in a battle roster.
type Participant interface {
	// ParticipantTag is false for bots, which have no tag.
	ParticipantTag() (value.PlayerTag, bool)
	DisplayName() string
}

// Player is a human participant. Upstream may report a single brawler even
// where several were played, so Brawlers has at least one element and no
// other guarantee.
type Player[B BrawlerSnapshot] struct {
	Tag      value.PlayerTag
	Name     string
	Brawlers []B
}

func (p Player[B]) ParticipantTag() (value.PlayerTag, bool) { return p.Tag, true }

func (p Player[B]) DisplayName() string { return p.Name }

func (p Player[B]) Lineup() []B { return p.Brawlers }

func (p Player[B]) IsBot() bool { return false }

// Bot only ever appears in friendly and community-map battles.
type Bot struct {
	Name    string
	Brawler FriendlyBrawler
}

func (b Bot) ParticipantTag() (value.PlayerTag, bool) { return value.PlayerTag{}, false }

func (b Bot) DisplayName() string { return b.Name }

func (b Bot) Lineup() []FriendlyBrawler { return []FriendlyBrawler{b.Brawler} }

func (b Bot) IsBot() bool { return true }

// FriendlyParticipant is a Player[FriendlyBrawler] or a Bot.
type FriendlyParticipant interface {
	Participant
	Lineup() []FriendlyBrawler
	IsBot() bool
}

type (
	FriendlyPlayer = Player[FriendlyBrawler]
	TrophyPlayer   = Player[TrophyBrawler]
	RankedPlayer   = Player[RankedBrawler]
)

// Roster is one group of participants: a team, or everyone in a free-for-all.
type Roster[P Participant] []P

func (r Roster[P]) Find(tag value.PlayerTag) (P, bool) {
	for _, p := range r {
		if t, ok := p.ParticipantTag(); ok && t == tag {
			return p, true
		}
	}
	var zero P
	return zero, false
}

func (r Roster[P]) Has(tag value.PlayerTag) bool {
	_, ok := r.Find(tag)
	return ok
}

// Tags lists the tags of the human members, in roster order.
func (r Roster[P]) Tags() []value.PlayerTag {
	tags := make([]value.PlayerTag, 0, len(r))
	for _, p := range r {
		if t, ok := p.ParticipantTag(); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// key identifies the roster's membership independent of order.
func (r Roster[P]) key() []string {
	k := make([]string, 0, len(r))
	for _, p := range r {
		if t, ok := p.ParticipantTag(); ok {
			k = append(k, t.String())
			continue
		}
		k = append(k, "bot:"+p.DisplayName())
	}
	slices.Sort(k)
	return k
}

// TeamSet groups the rosters of a team format battle.
type TeamSet[P Participant] []Roster[P]

func (ts TeamSet[P]) FindParticipant(tag value.PlayerTag) (P, bool) {
	for _, team := range ts {
		if p, ok := team.Find(tag); ok {
			return p, true
		}
	}
	var zero P
	return zero, false
}

func (ts TeamSet[P]) Has(tag value.PlayerTag) bool {
	_, ok := ts.FindParticipant(tag)
	return ok
}

// FindTeam returns the roster holding tag and its index in the set.
func (ts TeamSet[P]) FindTeam(tag value.PlayerTag) (Roster[P], int, bool) {
	for i, team := range ts {
		if _, ok := team.Find(tag); ok {
			return team, i, true
		}
	}
	return nil, -1, false
}

// SameRosters reports whether both sets hold the same teams with the same
// members. Team order and member order are ignored.
func (ts TeamSet[P]) SameRosters(other TeamSet[P]) bool {
	if len(ts) != len(other) {
		return false
	}
	used := make([]bool, len(other))
	for _, team := range ts {
		k := team.key()
		matched := false
		for j, candidate := range other {
			if used[j] || !slices.Equal(k, candidate.key()) {
				continue
			}
			used[j] = true
			matched = true
			break
		}
		if !matched {
			return false
		}
	}
	return true
}
