package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"brawl-tracker/internal/database"
	"brawl-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(v int) *int { return &v }

func TestPlayerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(openTestDB(t), zerolog.Nop())

	_, err := repo.Get(ctx, "#2PP")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	refresh, err := repo.ShouldRefresh(ctx, "#2PP", time.Minute)
	require.NoError(t, err)
	assert.True(t, refresh)

	require.NoError(t, repo.Upsert(ctx, &domain.Player{Tag: "#2PP", Name: "Ann", Trophies: 1200, ClubName: "Team"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Player{Tag: "#2PP", Name: "Ann", Trophies: 1250, ClubName: "Team"}))

	p, err := repo.Get(ctx, "#2PP")
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, 1250, p.Trophies)
	assert.False(t, p.LastFetchAt.IsZero())

	refresh, err = repo.ShouldRefresh(ctx, "#2PP", time.Hour)
	require.NoError(t, err)
	assert.False(t, refresh)

	require.NoError(t, repo.Upsert(ctx, &domain.Player{Tag: "#2PP", Name: "Ann", LastFetchAt: time.Now().Add(-2 * time.Hour)}))
	refresh, err = repo.ShouldRefresh(ctx, "#2PP", time.Hour)
	require.NoError(t, err)
	assert.True(t, refresh)
}

func TestBattleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBattleRepository(openTestDB(t), zerolog.Nop())
	base := time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC)

	battles := []domain.StoredBattle{
		{PlayerTag: "#2PP", BattleTime: base, Kind: "ranked_league", Mode: "gemGrab", EventID: intp(15000026), Outcome: "victory", Result: "victory", Rounds: 1},
		{PlayerTag: "#2PP", BattleTime: base.Add(-10 * time.Minute), Kind: "trophy_solo_race", Mode: "soloShowdown", Outcome: "victory", Rank: intp(3), TrophyChange: intp(7)},
		{PlayerTag: "#2PP", BattleTime: base.Add(-20 * time.Minute), Kind: "trophy_duel", Mode: "duels", Outcome: "defeat", Result: "defeat", TrophyChange: intp(-5)},
		{PlayerTag: "#QQQ", BattleTime: base, Kind: "friendly_duel", Mode: "duels", Outcome: "undetermined"},
	}
	require.NoError(t, repo.UpsertBatch(ctx, battles))

	// Same match seen again once more rounds are known.
	battles[0].Rounds = 3
	require.NoError(t, repo.UpsertBatch(ctx, battles[:1]))
	require.NoError(t, repo.UpsertBatch(ctx, nil))

	recent, err := repo.Recent(ctx, "#2PP", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, base, recent[0].BattleTime)
	assert.Equal(t, 3, recent[0].Rounds)
	assert.NotEmpty(t, recent[0].ID)
	require.NotNil(t, recent[0].EventID)
	assert.Equal(t, 15000026, *recent[0].EventID)
	assert.Nil(t, recent[0].Rank)
	require.NotNil(t, recent[1].Rank)
	assert.Equal(t, 3, *recent[1].Rank)

	limited, err := repo.Recent(ctx, "#2PP", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	counts, err := repo.Summary(ctx, "#2PP")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCounts{Victories: 2, Defeats: 1, TrophyDelta: 2}, counts)

	counts, err = repo.Summary(ctx, "#QQQ")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCounts{Undetermined: 1}, counts)
}

func TestBattleRepository_MergedMatchReplacesRounds(t *testing.T) {
	ctx := context.Background()
	repo := NewBattleRepository(openTestDB(t), zerolog.Nop())
	t0 := time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC)

	earlier := []domain.StoredBattle{
		{PlayerTag: "#2PP", BattleTime: t0.Add(-30 * time.Minute), Kind: "ranked_league", Mode: "gemGrab", EventID: intp(15000026), Outcome: "defeat", Result: "defeat", Rounds: 2},
		{PlayerTag: "#2PP", BattleTime: t0.Add(time.Minute), Kind: "ranked_team", Mode: "heist", EventID: intp(15000027), Outcome: "victory", Result: "victory", Rounds: 0},
		{PlayerTag: "#2PP", BattleTime: t0, Kind: "ranked_team", Mode: "gemGrab", EventID: intp(15000026), Outcome: "victory", Result: "victory", Rounds: 0},
		{PlayerTag: "#QQQ", BattleTime: t0, Kind: "ranked_team", Mode: "gemGrab", EventID: intp(15000026), Outcome: "defeat", Result: "defeat", Rounds: 0},
	}
	require.NoError(t, repo.UpsertBatch(ctx, earlier))

	merged := domain.StoredBattle{
		PlayerTag: "#2PP", BattleTime: t0.Add(3 * time.Minute), FirstRoundAt: t0,
		Kind: "ranked_league", Mode: "gemGrab", EventID: intp(15000026), Outcome: "victory", Result: "victory", Rounds: 2,
	}
	require.NoError(t, repo.UpsertBatch(ctx, []domain.StoredBattle{merged}))

	recent, err := repo.Recent(ctx, "#2PP", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, t0.Add(3*time.Minute), recent[0].BattleTime)
	assert.Equal(t, 2, recent[0].Rounds)
	assert.Equal(t, "ranked_team", recent[1].Kind, "other event in the window is kept")
	assert.Equal(t, t0.Add(-30*time.Minute), recent[2].BattleTime, "match before the window is kept")

	counts, err := repo.Summary(ctx, "#2PP")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCounts{Victories: 2, Defeats: 1}, counts)

	other, err := repo.Recent(ctx, "#QQQ", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
