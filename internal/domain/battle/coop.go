package battle

import "brawl-tracker/internal/domain/value"

// FriendlyCoopBattle is a cooperative PvE battle played in a friendly room.
type FriendlyCoopBattle struct {
	Official
	Result   Result
	Duration value.BattleDuration
	Players  Roster[FriendlyParticipant]
}

func (FriendlyCoopBattle) Kind() Kind  { return KindFriendlyCoop }
func (FriendlyCoopBattle) sealed()     {}
func (FriendlyCoopBattle) isFriendly() {}
func (FriendlyCoopBattle) isTeam()     {}

func (b FriendlyCoopBattle) BattleResult() *Result { return ptr(b.Result) }

// LastStandBattle is the event-based cooperative mode with a difficulty level.
type LastStandBattle struct {
	Official
	Level    value.EnemyLevel
	Result   Result
	Duration value.BattleDuration
	Players  Roster[TrophyPlayer]
}

func (LastStandBattle) Kind() Kind { return KindLastStand }
func (LastStandBattle) sealed()    {}
func (LastStandBattle) isTeam()    {}

func (b LastStandBattle) BattleResult() *Result { return ptr(b.Result) }

// TrophyCoopBattle is a classic cooperative event that moves trophies.
type TrophyCoopBattle struct {
	Official
	Trophy
	Result   Result
	Duration value.BattleDuration
	Players  Roster[TrophyPlayer]
}

func (TrophyCoopBattle) Kind() Kind { return KindTrophyCoop }
func (TrophyCoopBattle) sealed()    {}
func (TrophyCoopBattle) isTeam()    {}

func (b TrophyCoopBattle) BattleResult() *Result { return ptr(b.Result) }

func ptr[T any](v T) *T { return &v }
