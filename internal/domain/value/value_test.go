package value

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_ConstructionModes(t *testing.T) {
	tests := []struct {
		name  string
		input int
		valid bool
	}{
		{"negative", -3, false},
		{"zero", 0, false},
		{"first", 1, true},
		{"tenth", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRank(tt.input)
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRank))
				assert.True(t, errors.Is(err, ErrInvalidValue))
				assert.Nil(t, RankOrNil(tt.input))
				assert.Panics(t, func() { MustRank(tt.input) })
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, r.Int())
			require.NotNil(t, RankOrNil(tt.input))
			assert.Equal(t, r, *RankOrNil(tt.input))
			assert.NotPanics(t, func() { MustRank(tt.input) })
		})
	}
}

func TestTrophyChange(t *testing.T) {
	gained := MustTrophyChange(8)
	lost := MustTrophyChange(-5)
	zero := MustTrophyChange(0)

	assert.True(t, gained.Gained())
	assert.False(t, gained.Lost())
	assert.True(t, lost.Lost())
	assert.False(t, lost.Unchanged())
	assert.True(t, zero.Unchanged())
	assert.Equal(t, "+8", gained.String())
	assert.Equal(t, "-5", lost.String())

	_, err := NewTrophyChange(MaxTrophyDelta + 1)
	assert.ErrorIs(t, err, ErrInvalidTrophyChange)
	_, err = NewTrophyChange(-MaxTrophyDelta - 1)
	assert.ErrorIs(t, err, ErrInvalidTrophyChange)
}

func TestEnemyLevel(t *testing.T) {
	for i := 0; i < len(KnownEnemyLevels)-1; i++ {
		assert.Equal(t, -1, KnownEnemyLevels[i].Compare(KnownEnemyLevels[i+1]),
			"%s should be below %s", KnownEnemyLevels[i], KnownEnemyLevels[i+1])
	}
	assert.Len(t, KnownEnemyLevels, 7)

	lvl, err := NewEnemyLevel(4, "")
	require.NoError(t, err)
	assert.Equal(t, LevelMaster, lvl)

	lvl, err = NewEnemyLevel(9, "Insane V")
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.Compare(LevelInsaneIII))

	_, err = NewEnemyLevel(0, "Normal")
	assert.ErrorIs(t, err, ErrInvalidEnemyLevel)
	_, err = NewEnemyLevel(12, "")
	assert.ErrorIs(t, err, ErrInvalidEnemyLevel)
}

func TestEventID(t *testing.T) {
	_, err := NewEventID(MinEventID)
	assert.NoError(t, err)
	_, err = NewEventID(MaxEventID)
	assert.NoError(t, err)
	assert.Nil(t, EventIDOrNil(0))
	assert.Nil(t, EventIDOrNil(MaxEventID+1))
	assert.Panics(t, func() { MustEventID(42) })
}

func TestPartySize(t *testing.T) {
	assert.Equal(t, PartySolo, MustPartySize(1))
	assert.Equal(t, PartyDuo, MustPartySize(2))
	assert.Equal(t, PartyTrio, MustPartySize(3))
	assert.Equal(t, "duo", PartyDuo.String())
	assert.Nil(t, PartySizeOrNil(4))
	assert.Nil(t, PartySizeOrNil(0))
}

func TestPlayerTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "with hash", input: "#2PP", want: "#2PP"},
		{name: "without hash", input: "y2qcv", want: "#Y2QCV"},
		{name: "letter o", input: "#2oo9", want: "#2009"},
		{name: "padded", input: "  #QJ8  ", want: "#QJ8"},
		{name: "shortest", input: "#2P", want: "#2P"},
		{name: "two chars", input: "#2", wantErr: true},
		{name: "bad alphabet", input: "#ABC", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := NewPlayerTag(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPlayerTag)
				assert.Nil(t, PlayerTagOrNil(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tag.String())
			assert.Equal(t, tt.want[1:], tag.Bare())
		})
	}
}

func TestBrawlerScalars(t *testing.T) {
	assert.Equal(t, MaxPowerLevel, MaxPower().Int())
	assert.Nil(t, PowerLevelOrNil(0))
	assert.Nil(t, PowerLevelOrNil(12))
	assert.NotNil(t, PowerLevelOrNil(11))

	assert.Nil(t, TrophiesOrNil(-1))
	assert.NotNil(t, TrophiesOrNil(0))

	assert.Nil(t, RankedStageOrNil(0))
	assert.NotNil(t, RankedStageOrNil(1))

	assert.Nil(t, BrawlerIDOrNil(15_000_000))
	assert.NotNil(t, BrawlerIDOrNil(16_000_001))
}

func TestMode(t *testing.T) {
	assert.True(t, ModeGemGrab.IsRankedPlayable())
	assert.True(t, MustMode("knockout").IsRankedPlayable())
	assert.False(t, ModeSoloShowdown.IsRankedPlayable())
	assert.False(t, ModeDuels.IsRankedPlayable())
	assert.Nil(t, ModeOrNil("   "))
}

func TestBattleDuration(t *testing.T) {
	d := MustBattleDuration(95)
	assert.Equal(t, 95*time.Second, d.Duration())
	assert.Equal(t, 95, d.Seconds())
	assert.Nil(t, BattleDurationOrNil(-1))
}
