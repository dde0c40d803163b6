package battle

import (
	"testing"

	"brawl-tracker/internal/domain/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shelly = Brawler{ID: value.MustBrawlerID(16000000), Name: "SHELLY", Power: value.MaxPower()}

func friendlyPlayer(tag, name string) FriendlyPlayer {
	return FriendlyPlayer{Tag: value.MustPlayerTag(tag), Name: name, Brawlers: []FriendlyBrawler{{Brawler: shelly}}}
}

func trophyPlayer(tag, name string) TrophyPlayer {
	return TrophyPlayer{Tag: value.MustPlayerTag(tag), Name: name, Brawlers: []TrophyBrawler{{Brawler: shelly, Trophies: value.MustTrophies(540)}}}
}

func rankedPlayer(tag, name string) RankedPlayer {
	return RankedPlayer{Tag: value.MustPlayerTag(tag), Name: name, Brawlers: []RankedBrawler{{Brawler: shelly, Stage: value.MustRankedStage(9)}}}
}

func TestBot(t *testing.T) {
	bot := Bot{Name: "Bot 2", Brawler: FriendlyBrawler{Brawler: shelly}}

	_, ok := bot.ParticipantTag()
	assert.False(t, ok)
	assert.True(t, bot.IsBot())
	assert.Equal(t, []FriendlyBrawler{{Brawler: shelly}}, bot.Lineup())

	var p FriendlyParticipant = friendlyPlayer("#2PP", "Ann")
	assert.False(t, p.IsBot())
	tag, ok := p.ParticipantTag()
	require.True(t, ok)
	assert.Equal(t, "#2PP", tag.String())
}

func TestRoster_Find(t *testing.T) {
	r := Roster[FriendlyParticipant]{Bot{Name: "Bot 1"}, friendlyPlayer("#2PP", "Ann"), friendlyPlayer("#QQQ", "Bob")}

	p, ok := r.Find(value.MustPlayerTag("qqq"))
	require.True(t, ok)
	assert.Equal(t, "Bob", p.DisplayName())

	_, ok = r.Find(value.MustPlayerTag("#VVV"))
	assert.False(t, ok)

	assert.Equal(t, []value.PlayerTag{value.MustPlayerTag("#2PP"), value.MustPlayerTag("#QQQ")}, r.Tags())
}

func TestTeamSet_FindTeam(t *testing.T) {
	ts := TeamSet[TrophyPlayer]{
		{trophyPlayer("#2PP", "Ann"), trophyPlayer("#QQQ", "Bob")},
		{trophyPlayer("#VVV", "Cid"), trophyPlayer("#YYY", "Dee")},
	}

	team, idx, ok := ts.FindTeam(value.MustPlayerTag("#YYY"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Len(t, team, 2)

	p, ok := ts.FindParticipant(value.MustPlayerTag("#QQQ"))
	require.True(t, ok)
	assert.Equal(t, "Bob", p.Name)

	_, idx, ok = ts.FindTeam(value.MustPlayerTag("#LLL"))
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestTeamSet_SameRosters(t *testing.T) {
	ann, bob := rankedPlayer("#2PP", "Ann"), rankedPlayer("#QQQ", "Bob")
	cid, dee := rankedPlayer("#VVV", "Cid"), rankedPlayer("#YYY", "Dee")

	base := TeamSet[RankedPlayer]{{ann, bob}, {cid, dee}}

	tests := []struct {
		name  string
		other TeamSet[RankedPlayer]
		want  bool
	}{
		{"identical", TeamSet[RankedPlayer]{{ann, bob}, {cid, dee}}, true},
		{"teams swapped", TeamSet[RankedPlayer]{{cid, dee}, {ann, bob}}, true},
		{"members swapped", TeamSet[RankedPlayer]{{bob, ann}, {dee, cid}}, true},
		{"players traded", TeamSet[RankedPlayer]{{ann, cid}, {bob, dee}}, false},
		{"missing team", TeamSet[RankedPlayer]{{ann, bob}}, false},
		{"stranger", TeamSet[RankedPlayer]{{ann, bob}, {cid, rankedPlayer("#LLL", "Eve")}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.SameRosters(tt.other))
			assert.Equal(t, tt.want, tt.other.SameRosters(base))
		})
	}
}

func TestTeamSet_SameRostersWithBots(t *testing.T) {
	ann := friendlyPlayer("#2PP", "Ann")
	a := TeamSet[FriendlyParticipant]{{ann, Bot{Name: "Bot 1"}}, {Bot{Name: "Bot 2"}}}
	b := TeamSet[FriendlyParticipant]{{Bot{Name: "Bot 2"}}, {Bot{Name: "Bot 1"}, ann}}
	c := TeamSet[FriendlyParticipant]{{ann, Bot{Name: "Bot 3"}}, {Bot{Name: "Bot 2"}}}

	assert.True(t, a.SameRosters(b))
	assert.False(t, a.SameRosters(c))
}
