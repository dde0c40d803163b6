package value

import "fmt"

// Rank is a 1-based placement in a ranking race.
type Rank struct {
	v int
}

func NewRank(v int) (Rank, error) {
	if v < 1 {
		return Rank{}, fmt.Errorf("%w: %d is below 1", ErrInvalidRank, v)
	}
	return Rank{v: v}, nil
}

func MustRank(v int) Rank { return must(NewRank(v)) }

func RankOrNil(v int) *Rank { return orNil(NewRank(v)) }

func (r Rank) Int() int { return r.v }

func (r Rank) String() string { return fmt.Sprintf("#%d", r.v) }

// TrophyChange is the signed trophy delta a battle applied to the player.
type TrophyChange struct {
	v int
}

// MaxTrophyDelta bounds a single battle's delta. Nothing in the game comes
// close; anything larger is a corrupted record.
const MaxTrophyDelta = 1000

func NewTrophyChange(v int) (TrophyChange, error) {
	if v > MaxTrophyDelta || v < -MaxTrophyDelta {
		return TrophyChange{}, fmt.Errorf("%w: %d is out of range ±%d", ErrInvalidTrophyChange, v, MaxTrophyDelta)
	}
	return TrophyChange{v: v}, nil
}

func MustTrophyChange(v int) TrophyChange { return must(NewTrophyChange(v)) }

func TrophyChangeOrNil(v int) *TrophyChange { return orNil(NewTrophyChange(v)) }

func (t TrophyChange) Int() int { return t.v }

func (t TrophyChange) Gained() bool { return t.v > 0 }

func (t TrophyChange) Lost() bool { return t.v < 0 }

func (t TrophyChange) Unchanged() bool { return t.v == 0 }

func (t TrophyChange) String() string { return fmt.Sprintf("%+d", t.v) }
