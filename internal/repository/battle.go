package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brawl-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type BattleRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBattleRepository(sqlDB *sql.DB, logger zerolog.Logger) *BattleRepository {
	return &BattleRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const upsertBattle = `
INSERT INTO battles (
    id, player_tag, battle_time, kind, mode, event_id, map, outcome, result,
    rank, trophy_change, rounds, star_player, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_tag, battle_time) DO UPDATE SET
    kind = excluded.kind,
    mode = excluded.mode,
    event_id = excluded.event_id,
    map = excluded.map,
    outcome = excluded.outcome,
    result = excluded.result,
    rank = excluded.rank,
    trophy_change = excluded.trophy_change,
    rounds = excluded.rounds,
    star_player = excluded.star_player,
    updated_at = excluded.updated_at`

const deleteRounds = `
DELETE FROM battles
WHERE player_tag = ? AND event_id = ? AND battle_time >= ? AND battle_time < ?`

// UpsertBatch stores battles keyed by player tag and battle time. A ranked
// match seen again with more rounds replaces the earlier row, and rows stored
// for its earlier rounds are removed.
func (r *BattleRepository) UpsertBatch(ctx context.Context, battles []domain.StoredBattle) error {
	if len(battles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertBattle)
	if err != nil {
		return fmt.Errorf("failed to prepare battle upsert: %w", err)
	}
	defer stmt.Close()

	purge, err := tx.PrepareContext(ctx, deleteRounds)
	if err != nil {
		return fmt.Errorf("failed to prepare round purge: %w", err)
	}
	defer purge.Close()

	now := time.Now()
	for _, b := range battles {
		if b.EventID != nil && !b.FirstRoundAt.IsZero() && b.FirstRoundAt.Before(b.BattleTime) {
			res, err := purge.ExecContext(ctx, b.PlayerTag, *b.EventID, b.FirstRoundAt.Unix(), b.BattleTime.Unix())
			if err != nil {
				return fmt.Errorf("failed to purge earlier rounds: %w", err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				r.logger.Debug().
					Str("tag", b.PlayerTag).
					Int("event_id", *b.EventID).
					Int64("rows", n).
					Msg("replaced stored rounds with merged match")
			}
		}

		id := b.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		_, err := stmt.ExecContext(ctx,
			id, b.PlayerTag, b.BattleTime.Unix(), b.Kind, b.Mode, nullInt(b.EventID), b.Map,
			b.Outcome, b.Result, nullInt(b.Rank), nullInt(b.TrophyChange), b.Rounds, b.StarPlayer,
			now.Unix(), now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert battle: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit battles: %w", err)
	}

	r.logger.Debug().Str("tag", battles[0].PlayerTag).Int("count", len(battles)).Msg("battles stored")
	return nil
}

const recentBattles = `
SELECT id, player_tag, battle_time, kind, mode, event_id, map, outcome, result,
       rank, trophy_change, rounds, star_player, created_at, updated_at
FROM battles
WHERE player_tag = ?
ORDER BY battle_time DESC
LIMIT ?`

func (r *BattleRepository) Recent(ctx context.Context, tag string, limit int) ([]domain.StoredBattle, error) {
	rows, err := r.db.QueryContext(ctx, recentBattles, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %w", err)
	}
	defer rows.Close()

	result := make([]domain.StoredBattle, 0, limit)
	for rows.Next() {
		var (
			b                                domain.StoredBattle
			battleTime, createdAt, updatedAt int64
			eventID, rank, trophyChange      sql.NullInt64
		)
		err := rows.Scan(
			&b.ID, &b.PlayerTag, &battleTime, &b.Kind, &b.Mode, &eventID, &b.Map, &b.Outcome, &b.Result,
			&rank, &trophyChange, &b.Rounds, &b.StarPlayer, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan battle: %w", err)
		}
		b.BattleTime = time.Unix(battleTime, 0).UTC()
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		b.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		b.EventID = intOrNil(eventID)
		b.Rank = intOrNil(rank)
		b.TrophyChange = intOrNil(trophyChange)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read battles: %w", err)
	}
	return result, nil
}

const outcomeCounts = `
SELECT outcome, COUNT(*), COALESCE(SUM(trophy_change), 0)
FROM battles
WHERE player_tag = ?
GROUP BY outcome`

// Summary tallies every stored battle of tag.
func (r *BattleRepository) Summary(ctx context.Context, tag string) (domain.OutcomeCounts, error) {
	var counts domain.OutcomeCounts

	rows, err := r.db.QueryContext(ctx, outcomeCounts, tag)
	if err != nil {
		return counts, fmt.Errorf("failed to query outcome counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var n, delta int
		if err := rows.Scan(&outcome, &n, &delta); err != nil {
			return counts, fmt.Errorf("failed to scan outcome count: %w", err)
		}
		counts.TrophyDelta += delta
		switch outcome {
		case "victory":
			counts.Victories = n
		case "defeat":
			counts.Defeats = n
		case "draw":
			counts.Draws = n
		default:
			counts.Undetermined += n
		}
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("failed to read outcome counts: %w", err)
	}
	return counts, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
