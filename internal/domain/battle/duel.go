package battle

import "brawl-tracker/internal/domain/value"

type FriendlyDuel struct {
	Official
	Result   *Result
	Duration value.BattleDuration
	Players  [2]FriendlyParticipant
}

func (FriendlyDuel) Kind() Kind  { return KindFriendlyDuel }
func (FriendlyDuel) sealed()     {}
func (FriendlyDuel) isFriendly() {}
func (FriendlyDuel) isSolo()     {}

func (b FriendlyDuel) BattleResult() *Result { return b.Result }

func (b FriendlyDuel) Participants() Roster[FriendlyParticipant] { return b.Players[:] }

type CommunityMapDuel struct {
	CommunityMap
	Result   *Result
	Duration value.BattleDuration
	Players  [2]FriendlyParticipant
}

func (CommunityMapDuel) Kind() Kind { return KindCommunityMapDuel }
func (CommunityMapDuel) sealed()    {}
func (CommunityMapDuel) isSolo()    {}

func (b CommunityMapDuel) BattleResult() *Result { return b.Result }

func (b CommunityMapDuel) Participants() Roster[FriendlyParticipant] { return b.Players[:] }

// TrophyDuel players carry a per-brawler trophy change next to the
// battle-level one.
type TrophyDuel struct {
	Official
	Trophy
	Result   *Result
	Duration value.BattleDuration
	Players  [2]TrophyPlayer
}

func (TrophyDuel) Kind() Kind { return KindTrophyDuel }
func (TrophyDuel) sealed()    {}
func (TrophyDuel) isSolo()    {}

func (b TrophyDuel) BattleResult() *Result { return b.Result }

func (b TrophyDuel) Participants() Roster[TrophyPlayer] { return b.Players[:] }
