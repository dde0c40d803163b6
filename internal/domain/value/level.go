package value

import (
	"cmp"
	"fmt"
	"strings"
)

// EnemyLevel is the difficulty of a Last Stand battle.
type EnemyLevel struct {
	ordinal int
	name    string
}

// Known difficulty tiers, lowest first.
var (
	LevelNormal    = EnemyLevel{ordinal: 1, name: "Normal"}
	LevelHard      = EnemyLevel{ordinal: 2, name: "Hard"}
	LevelExpert    = EnemyLevel{ordinal: 3, name: "Expert"}
	LevelMaster    = EnemyLevel{ordinal: 4, name: "Master"}
	LevelInsane    = EnemyLevel{ordinal: 5, name: "Insane"}
	LevelInsaneII  = EnemyLevel{ordinal: 6, name: "Insane II"}
	LevelInsaneIII = EnemyLevel{ordinal: 7, name: "Insane III"}
)

var KnownEnemyLevels = []EnemyLevel{
	LevelNormal, LevelHard, LevelExpert, LevelMaster, LevelInsane, LevelInsaneII, LevelInsaneIII,
}

// NewEnemyLevel keeps the upstream display name. An empty name falls back to
// the known tier with the same ordinal.
func NewEnemyLevel(ordinal int, name string) (EnemyLevel, error) {
	if ordinal < 1 {
		return EnemyLevel{}, fmt.Errorf("%w: ordinal %d is below 1", ErrInvalidEnemyLevel, ordinal)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		known, ok := EnemyLevelByOrdinal(ordinal)
		if !ok {
			return EnemyLevel{}, fmt.Errorf("%w: unknown ordinal %d without a name", ErrInvalidEnemyLevel, ordinal)
		}
		return known, nil
	}
	return EnemyLevel{ordinal: ordinal, name: name}, nil
}

func MustEnemyLevel(ordinal int, name string) EnemyLevel { return must(NewEnemyLevel(ordinal, name)) }

func EnemyLevelOrNil(ordinal int, name string) *EnemyLevel {
	return orNil(NewEnemyLevel(ordinal, name))
}

func EnemyLevelByOrdinal(ordinal int) (EnemyLevel, bool) {
	for _, l := range KnownEnemyLevels {
		if l.ordinal == ordinal {
			return l, true
		}
	}
	return EnemyLevel{}, false
}

func (l EnemyLevel) Ordinal() int { return l.ordinal }

func (l EnemyLevel) Name() string { return l.name }

// Compare orders levels by ordinal only.
func (l EnemyLevel) Compare(other EnemyLevel) int { return cmp.Compare(l.ordinal, other.ordinal) }

func (l EnemyLevel) String() string { return l.name }
