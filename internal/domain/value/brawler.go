package value

import "fmt"

const (
	MinPowerLevel = 1
	MaxPowerLevel = 11
)

type PowerLevel struct {
	v int
}

func NewPowerLevel(v int) (PowerLevel, error) {
	if v < MinPowerLevel || v > MaxPowerLevel {
		return PowerLevel{}, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidPowerLevel, v, MinPowerLevel, MaxPowerLevel)
	}
	return PowerLevel{v: v}, nil
}

func MustPowerLevel(v int) PowerLevel { return must(NewPowerLevel(v)) }

func PowerLevelOrNil(v int) *PowerLevel { return orNil(NewPowerLevel(v)) }

func MaxPower() PowerLevel { return PowerLevel{v: MaxPowerLevel} }

func (p PowerLevel) Int() int { return p.v }

// Trophies is a brawler trophy count snapshot taken when the battle was played.
type Trophies struct {
	v int
}

func NewTrophies(v int) (Trophies, error) {
	if v < 0 {
		return Trophies{}, fmt.Errorf("%w: %d is negative", ErrInvalidTrophies, v)
	}
	return Trophies{v: v}, nil
}

func MustTrophies(v int) Trophies { return must(NewTrophies(v)) }

func TrophiesOrNil(v int) *Trophies { return orNil(NewTrophies(v)) }

func (t Trophies) Int() int { return t.v }

// RankedStage is the ranked-league stage a brawler was played at.
type RankedStage struct {
	v int
}

func NewRankedStage(v int) (RankedStage, error) {
	if v < 1 {
		return RankedStage{}, fmt.Errorf("%w: %d is below 1", ErrInvalidRankedStage, v)
	}
	return RankedStage{v: v}, nil
}

func MustRankedStage(v int) RankedStage { return must(NewRankedStage(v)) }

func RankedStageOrNil(v int) *RankedStage { return orNil(NewRankedStage(v)) }

func (s RankedStage) Int() int { return s.v }
