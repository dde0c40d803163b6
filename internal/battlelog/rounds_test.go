package battlelog

import (
	"reflect"
	"testing"
	"time"

	"brawl-tracker/internal/domain/battle"
	"brawl-tracker/internal/domain/value"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ann = human("#2PP", "Ann", intp(12))
	bob = human("#QQQ", "Bob", intp(10))
	cid = human("#VVV", "Cid", intp(11))
	dee = human("#YYY", "Dee", intp(12))
	eve = human("#LLL", "Eve", intp(9))
	fay = human("#GGG", "Fay", intp(13))
)

// battleDiff compares battles field by field, including the unexported
// fields of value types.
var battleDiff = cmp.Exporter(func(reflect.Type) bool { return true })

func rankedEntry(ts Timestamp, eventID int, result string, star *RawPlayer) Entry {
	return rankedEntryWith(ts, eventID, result, star, ann)
}

func rankedEntryWith(ts Timestamp, eventID int, result string, star *RawPlayer, first RawPlayer) Entry {
	return Entry{BattleTime: ts, Event: official(eventID, "gemGrab"), Battle: RawBattle{
		Mode:       "gemGrab",
		Type:       "soloRanked",
		Result:     result,
		Duration:   intp(100),
		StarPlayer: star,
		Teams:      [][]RawPlayer{{first, bob, cid}, {dee, eve, fay}},
	}}
}

func lasting(e Entry, seconds int) Entry {
	e.Battle.Duration = intp(seconds)
	return e
}

func showdownEntry(ts Timestamp, rank, delta int) Entry {
	return Entry{BattleTime: ts, Event: official(15000400, "soloShowdown"), Battle: RawBattle{
		Mode: "soloShowdown", Type: "ranked", Rank: intp(rank), TrophyChange: intp(delta),
		Players: []RawPlayer{human("#2PP", "Ann", intp(520)), human("#UUU", "Gus", intp(515))},
	}}
}

func round(r battle.Result, seconds int) battle.Round {
	return battle.Round{Result: r, Duration: value.MustBattleDuration(seconds)}
}

func TestInferRounds_MergesFinalRoundWithEarlierRounds(t *testing.T) {
	a := lasting(rankedEntry(at(0), 15000026, "victory", &ann), 95)
	b := lasting(rankedEntry(at(3), 15000026, "defeat", nil), 120)
	b.Battle.Teams = [][]RawPlayer{{fay, dee, eve}, {cid, ann, bob}}
	c := lasting(rankedEntry(at(6), 15000026, "victory", nil), 130)
	d := showdownEntry(at(10), 2, -3)

	page := Process([]Entry{a, b, c, d}, DefaultOptions())
	require.Empty(t, page.Rejected)
	require.NoError(t, page.Err())
	require.Len(t, page.Battles, 2)

	match, ok := battle.As[battle.RankedLeagueBattle](page.Battles[0])
	require.True(t, ok)
	assert.Equal(t, []battle.Round{
		round(battle.ResultVictory, 130),
		round(battle.ResultDefeat, 120),
		round(battle.ResultVictory, 95),
	}, match.Rounds)
	require.NotNil(t, match.Result)
	assert.Equal(t, battle.ResultVictory, *match.Result)
	require.NotNil(t, match.StarPlayer)
	assert.Equal(t, "Ann", match.StarPlayer.Name)
	assert.True(t, at(0).Equal(match.BattleTime()))
	assert.True(t, at(6).Equal(match.MatchStart()))

	untouched, err := Assemble(d)
	require.NoError(t, err)
	if diff := cmp.Diff(untouched, page.Battles[1], battleDiff); diff != "" {
		t.Errorf("unrelated battle changed (-want +got):\n%s", diff)
	}

	assert.Equal(t, battle.Summary{Victories: 1, Defeats: 1}, page.Summary)
}

func TestInferRounds_KeepsSeparateWhatDiffers(t *testing.T) {
	otherEvent := rankedEntry(at(3), 15000027, "defeat", nil)
	otherMode := rankedEntry(at(3), 15000026, "defeat", nil)
	otherMode.Battle.Mode = "heist"
	otherMode.Event.Mode = "heist"
	otherRoster := rankedEntryWith(at(3), 15000026, "defeat", nil, human("#UUU", "Gus", intp(12)))
	withStar := rankedEntry(at(3), 15000026, "defeat", &dee)
	tooOld := rankedEntry(at(30), 15000026, "defeat", nil)
	friendly := rankedEntry(at(3), 15000026, "defeat", nil)
	friendly.Battle.Type = "friendlyRanked"

	tests := []struct {
		name  string
		prior Entry
	}{
		{"different event", otherEvent},
		{"different mode", otherMode},
		{"different rosters", otherRoster},
		{"earlier round has a star player", withStar},
		{"outside the match duration", tooOld},
		{"different kind", friendly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final := rankedEntry(at(0), 15000026, "victory", &ann)
			page := Process([]Entry{final, tt.prior}, DefaultOptions())
			require.Empty(t, page.Rejected)
			require.Len(t, page.Battles, 2)

			merged, ok := page.Battles[0].(battle.MultiRound)
			require.True(t, ok)
			assert.Len(t, merged.MatchRounds(), 1)

			prior, err := Assemble(tt.prior)
			require.NoError(t, err)
			if m := prior.(battle.MultiRound); !m.HasStarPlayer() {
				prior = m.Standalone()
			}
			if diff := cmp.Diff(prior, page.Battles[1], battleDiff); diff != "" {
				t.Errorf("prior entry changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInferRounds_ConsecutiveMatches(t *testing.T) {
	entries := []Entry{
		rankedEntry(at(0), 15000026, "defeat", &dee),
		rankedEntry(at(2), 15000026, "victory", nil),
		rankedEntry(at(5), 15000026, "victory", &ann),
		rankedEntry(at(8), 15000026, "defeat", nil),
		rankedEntry(at(11), 15000026, "victory", nil),
	}

	page := Process(entries, DefaultOptions())
	require.Len(t, page.Battles, 2)

	first := page.Battles[0].(battle.RankedLeagueBattle)
	assert.Equal(t, []battle.Round{round(battle.ResultVictory, 100), round(battle.ResultDefeat, 100)}, first.Rounds)
	assert.Equal(t, battle.ResultDefeat, *first.Result)

	second := page.Battles[1].(battle.RankedLeagueBattle)
	assert.Equal(t, []battle.Round{
		round(battle.ResultVictory, 100),
		round(battle.ResultDefeat, 100),
		round(battle.ResultVictory, 100),
	}, second.Rounds)
	assert.Equal(t, battle.ResultVictory, *second.Result)

	assert.Equal(t, battle.Summary{Victories: 1, Defeats: 1}, page.Summary)
}

func TestInferRounds_MaxMatchDuration(t *testing.T) {
	entries := []Entry{
		rankedEntry(at(0), 15000026, "victory", &ann),
		rankedEntry(at(30), 15000026, "defeat", nil),
	}

	assert.Len(t, Process(entries, DefaultOptions()).Battles, 2)

	opts := DefaultOptions()
	opts.MaxMatchDuration = 40 * time.Minute
	page := Process(entries, opts)
	require.Len(t, page.Battles, 1)
	assert.Len(t, page.Battles[0].(battle.MultiRound).MatchRounds(), 2)
}

func TestInferRounds_UnterminatedRoundsBecomeTeamBattles(t *testing.T) {
	entries := []Entry{
		lasting(rankedEntry(at(0), 15000026, "victory", nil), 90),
		lasting(rankedEntry(at(3), 15000026, "defeat", nil), 110),
	}

	page := Process(entries, DefaultOptions())
	require.Len(t, page.Battles, 2)

	want := []struct {
		result  battle.Result
		seconds int
	}{{battle.ResultVictory, 90}, {battle.ResultDefeat, 110}}
	for i, b := range page.Battles {
		team, ok := battle.As[battle.RankedTeamBattle](b)
		require.True(t, ok, "got %s", b.Kind())
		require.NotNil(t, team.Result)
		assert.Equal(t, want[i].result, *team.Result)
		assert.Equal(t, want[i].seconds, team.Duration.Seconds())
		assert.Equal(t, value.PartySolo, team.Party)
		assert.True(t, team.Teams.Has(value.MustPlayerTag("#2PP")))
		assert.True(t, entries[i].BattleTime.Equal(b.BattleTime()))
	}
	assert.Equal(t, battle.Summary{Victories: 1, Defeats: 1}, page.Summary)
}

func TestInferRounds_RoundWithoutResult(t *testing.T) {
	entry := rankedEntry(at(0), 15000026, "", nil)

	page := Process([]Entry{entry}, DefaultOptions())
	require.Empty(t, page.Rejected)
	require.Len(t, page.Battles, 1)
	team := page.Battles[0].(battle.RankedTeamBattle)
	assert.Nil(t, team.Result)
	assert.Equal(t, battle.Summary{Undetermined: 1}, page.Summary)
}

func TestInferRounds_NotFinalRounds(t *testing.T) {
	draw := rankedEntry(at(0), 15000026, "draw", &ann)

	unranked := rankedEntry(at(0), 15000026, "victory", &ann)
	unranked.Battle.Mode = "wipeout"
	unranked.Event.Mode = "wipeout"

	for name, final := range map[string]Entry{"draw": draw, "mode outside the ranked pool": unranked} {
		t.Run(name, func(t *testing.T) {
			prior := rankedEntry(at(3), 15000026, "defeat", nil)
			prior.Battle.Mode = final.Battle.Mode
			prior.Event.Mode = final.Event.Mode

			page := Process([]Entry{final, prior}, DefaultOptions())
			require.Len(t, page.Battles, 2)
			assert.Len(t, page.Battles[0].(battle.MultiRound).MatchRounds(), 1)
		})
	}
}

func TestInferRounds_FriendlyRanked(t *testing.T) {
	event := battle.OfficialEvent{ID: value.MustEventID(15000050), Map: "Backyard Bowl", Mode: value.ModeBrawlBall}
	p := battle.FriendlyPlayer{Tag: value.MustPlayerTag("#2PP"), Name: "Ann"}
	teams := battle.TeamSet[battle.FriendlyParticipant]{{p}, {battle.Bot{Name: "Bot 1"}}}
	victory := battle.ResultVictory

	log := []battle.Battle{
		battle.FriendlyRankedBattle{
			Official:   battle.Official{Time: base, Event: event},
			Rounds:     []battle.Round{round(battle.ResultVictory, 80)},
			Result:     &victory,
			StarPlayer: p,
			Teams:      teams,
		},
		battle.FriendlyRankedBattle{
			Official: battle.Official{Time: base.Add(-2 * time.Minute), Event: event},
			Rounds:   []battle.Round{round(battle.ResultDraw, 150)},
			Teams:    teams,
		},
	}

	out := InferRounds(log, 0)
	require.Len(t, out, 1)
	match := out[0].(battle.FriendlyRankedBattle)
	assert.Equal(t, []battle.Round{round(battle.ResultDraw, 150), round(battle.ResultVictory, 80)}, match.Rounds)
	assert.Equal(t, battle.OutcomeVictory, battle.Classify(match))

	assert.Len(t, log[0].(battle.FriendlyRankedBattle).Rounds, 1, "input is not modified")

	orphan := InferRounds(log[1:], 0)
	require.Len(t, orphan, 1)
	team, ok := battle.As[battle.FriendlyTeamBattle](orphan[0])
	require.True(t, ok)
	require.NotNil(t, team.Result)
	assert.Equal(t, battle.ResultDraw, *team.Result)
	assert.Equal(t, 150, team.Duration.Seconds())
	assert.Nil(t, team.StarPlayer)
	assert.Equal(t, battle.OutcomeDraw, battle.Classify(team))
}

func TestInferRounds_Empty(t *testing.T) {
	assert.Empty(t, InferRounds(nil, time.Minute))
}
