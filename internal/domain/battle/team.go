package battle

import "brawl-tracker/internal/domain/value"

// FriendlyTeamBattle is a non-ranked team-vs-team battle in a friendly room.
// StarPlayer is nil when upstream did not name one.
type FriendlyTeamBattle struct {
	Official
	Result     *Result
	Duration   value.BattleDuration
	StarPlayer FriendlyParticipant
	Teams      TeamSet[FriendlyParticipant]
}

func (FriendlyTeamBattle) Kind() Kind  { return KindFriendlyTeam }
func (FriendlyTeamBattle) sealed()     {}
func (FriendlyTeamBattle) isFriendly() {}
func (FriendlyTeamBattle) isTeam()     {}

func (b FriendlyTeamBattle) BattleResult() *Result { return b.Result }

type CommunityMapTeamBattle struct {
	CommunityMap
	Result     *Result
	Duration   value.BattleDuration
	StarPlayer FriendlyParticipant
	Teams      TeamSet[FriendlyParticipant]
}

func (CommunityMapTeamBattle) Kind() Kind { return KindCommunityMapTeam }
func (CommunityMapTeamBattle) sealed()    {}
func (CommunityMapTeamBattle) isTeam()    {}

func (b CommunityMapTeamBattle) BattleResult() *Result { return b.Result }

type TrophyTeamBattle struct {
	Official
	Trophy
	Result     *Result
	Duration   value.BattleDuration
	StarPlayer *TrophyPlayer
	Teams      TeamSet[TrophyPlayer]
}

func (TrophyTeamBattle) Kind() Kind { return KindTrophyTeam }
func (TrophyTeamBattle) sealed()    {}
func (TrophyTeamBattle) isTeam()    {}

func (b TrophyTeamBattle) BattleResult() *Result { return b.Result }
