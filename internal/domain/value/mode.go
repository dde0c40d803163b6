package value

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the upstream game mode identifier, e.g. "gemGrab".
type Mode struct {
	v string
}

var (
	ModeGemGrab      = Mode{v: "gemGrab"}
	ModeBrawlBall    = Mode{v: "brawlBall"}
	ModeHeist        = Mode{v: "heist"}
	ModeBounty       = Mode{v: "bounty"}
	ModeHotZone      = Mode{v: "hotZone"}
	ModeKnockout     = Mode{v: "knockout"}
	ModeWipeout      = Mode{v: "wipeout"}
	ModeDuels        = Mode{v: "duels"}
	ModeSoloShowdown = Mode{v: "soloShowdown"}
	ModeDuoShowdown  = Mode{v: "duoShowdown"}
	ModeTrioShowdown = Mode{v: "trioShowdown"}
	ModeRoboRumble   = Mode{v: "roboRumble"}
	ModeBossFight    = Mode{v: "bossFight"}
	ModeLastStand    = Mode{v: "lastStand"}
)

var rankedPlayable = map[Mode]struct{}{
	ModeGemGrab:   {},
	ModeBrawlBall: {},
	ModeHeist:     {},
	ModeBounty:    {},
	ModeHotZone:   {},
	ModeKnockout:  {},
}

func NewMode(raw string) (Mode, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Mode{}, fmt.Errorf("%w: empty identifier", ErrInvalidMode)
	}
	return Mode{v: s}, nil
}

func MustMode(raw string) Mode { return must(NewMode(raw)) }

func ModeOrNil(raw string) *Mode { return orNil(NewMode(raw)) }

func (m Mode) String() string { return m.v }

// IsRankedPlayable reports whether the mode is part of the ranked league pool.
func (m Mode) IsRankedPlayable() bool {
	_, ok := rankedPlayable[m]
	return ok
}

// BattleDuration is how long a battle (or a single ranked round) lasted.
type BattleDuration struct {
	d time.Duration
}

func NewBattleDuration(seconds int) (BattleDuration, error) {
	if seconds < 0 {
		return BattleDuration{}, fmt.Errorf("%w: %ds is negative", ErrInvalidBattleDuration, seconds)
	}
	return BattleDuration{d: time.Duration(seconds) * time.Second}, nil
}

func MustBattleDuration(seconds int) BattleDuration { return must(NewBattleDuration(seconds)) }

func BattleDurationOrNil(seconds int) *BattleDuration { return orNil(NewBattleDuration(seconds)) }

func (b BattleDuration) Duration() time.Duration { return b.d }

func (b BattleDuration) Seconds() int { return int(b.d / time.Second) }
