package battle

import "brawl-tracker/internal/domain/value"

// Ranking races order every participant (solo) or team by placement.

type FriendlySoloRace struct {
	Official
	Rank    value.Rank
	Players Roster[FriendlyParticipant]
}

func (FriendlySoloRace) Kind() Kind             { return KindFriendlySoloRace }
func (FriendlySoloRace) sealed()                {}
func (FriendlySoloRace) isFriendly()            {}
func (FriendlySoloRace) isSolo()                {}
func (b FriendlySoloRace) Position() value.Rank { return b.Rank }

type FriendlyTeamRace struct {
	Official
	Rank  value.Rank
	Teams TeamSet[FriendlyParticipant]
}

func (FriendlyTeamRace) Kind() Kind             { return KindFriendlyTeamRace }
func (FriendlyTeamRace) sealed()                {}
func (FriendlyTeamRace) isFriendly()            {}
func (FriendlyTeamRace) isTeam()                {}
func (b FriendlyTeamRace) Position() value.Rank { return b.Rank }

type CommunityMapSoloRace struct {
	CommunityMap
	Rank    value.Rank
	Players Roster[FriendlyParticipant]
}

func (CommunityMapSoloRace) Kind() Kind             { return KindCommunityMapSoloRace }
func (CommunityMapSoloRace) sealed()                {}
func (CommunityMapSoloRace) isSolo()                {}
func (b CommunityMapSoloRace) Position() value.Rank { return b.Rank }

type CommunityMapTeamRace struct {
	CommunityMap
	Rank  value.Rank
	Teams TeamSet[FriendlyParticipant]
}

func (CommunityMapTeamRace) Kind() Kind             { return KindCommunityMapTeamRace }
func (CommunityMapTeamRace) sealed()                {}
func (CommunityMapTeamRace) isTeam()                {}
func (b CommunityMapTeamRace) Position() value.Rank { return b.Rank }

type TrophySoloRace struct {
	Official
	Trophy
	Rank    value.Rank
	Players Roster[TrophyPlayer]
}

func (TrophySoloRace) Kind() Kind             { return KindTrophySoloRace }
func (TrophySoloRace) sealed()                {}
func (TrophySoloRace) isSolo()                {}
func (b TrophySoloRace) Position() value.Rank { return b.Rank }

type TrophyTeamRace struct {
	Official
	Trophy
	Rank  value.Rank
	Teams TeamSet[TrophyPlayer]
}

func (TrophyTeamRace) Kind() Kind             { return KindTrophyTeamRace }
func (TrophyTeamRace) sealed()                {}
func (TrophyTeamRace) isTeam()                {}
func (b TrophyTeamRace) Position() value.Rank { return b.Rank }
