package domain

import (
	"time"
)

type Player struct {
	Tag             string
	Name            string
	NameColor       string
	Trophies        int
	HighestTrophies int
	ExpLevel        int
	ClubTag         string
	ClubName        string
	BrawlerCount    int
	LastFetchAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StoredBattle is one classified battle as persisted for a player.
type StoredBattle struct {
	ID           string // nanoid
	PlayerTag    string
	BattleTime   time.Time
	Kind         string
	Mode         string
	EventID      *int
	Map          string
	Outcome      string // "victory", "defeat", "draw", "undetermined"
	Result       string
	Rank         *int
	TrophyChange *int
	Rounds       int
	StarPlayer   string
	// FirstRoundAt is not stored. When set, rows of the same event logged
	// from then until BattleTime are earlier rounds of this match.
	FirstRoundAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OutcomeCounts is the all-time tally stored for a player.
type OutcomeCounts struct {
	Victories    int
	Defeats      int
	Draws        int
	Undetermined int
	TrophyDelta  int
}
