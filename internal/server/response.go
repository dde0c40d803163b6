package server

import (
	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/domain"
	"brawl-tracker/internal/domain/battle"
	"brawl-tracker/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type playerResponse struct {
	Tag             string `json:"tag"`
	Name            string `json:"name"`
	NameColor       string `json:"name_color,omitempty"`
	Trophies        int    `json:"trophies"`
	HighestTrophies int    `json:"highest_trophies"`
	ExpLevel        int    `json:"exp_level"`
	ClubTag         string `json:"club_tag,omitempty"`
	ClubName        string `json:"club_name,omitempty"`
	BrawlerCount    int    `json:"brawler_count"`
	LastFetchAt     string `json:"last_fetch_at"`
}

func toPlayerResponse(p *domain.Player) playerResponse {
	return playerResponse{
		Tag:             p.Tag,
		Name:            p.Name,
		NameColor:       p.NameColor,
		Trophies:        p.Trophies,
		HighestTrophies: p.HighestTrophies,
		ExpLevel:        p.ExpLevel,
		ClubTag:         p.ClubTag,
		ClubName:        p.ClubName,
		BrawlerCount:    p.BrawlerCount,
		LastFetchAt:     formatTime(p.LastFetchAt),
	}
}

type outcomeSummary struct {
	Victories    int     `json:"victories"`
	Defeats      int     `json:"defeats"`
	Draws        int     `json:"draws"`
	Undetermined int     `json:"undetermined"`
	WinRate      float64 `json:"win_rate"`
}

func toOutcomeSummary(s battle.Summary) outcomeSummary {
	return outcomeSummary{
		Victories:    s.Victories,
		Defeats:      s.Defeats,
		Draws:        s.Draws,
		Undetermined: s.Undetermined,
		WinRate:      s.WinRate(),
	}
}

type rejectedEntry struct {
	Time  string `json:"time"`
	Mode  string `json:"mode"`
	Error string `json:"error"`
}

type battleLogResponse struct {
	Tag      string               `json:"tag"`
	Cached   bool                 `json:"cached"`
	Battles  []battle.Description `json:"battles"`
	Rejected []rejectedEntry      `json:"rejected,omitempty"`
	Summary  outcomeSummary       `json:"summary"`
}

func toBattleLogResponse(log *service.BattleLog, policy battle.Policy) battleLogResponse {
	resp := battleLogResponse{
		Tag:     log.Tag.String(),
		Cached:  log.Cached,
		Battles: make([]battle.Description, 0, len(log.Page.Battles)),
		Summary: toOutcomeSummary(log.Page.Summary),
	}
	for _, b := range log.Page.Battles {
		resp.Battles = append(resp.Battles, policy.Describe(b))
	}
	for _, r := range log.Page.Rejected {
		resp.Rejected = append(resp.Rejected, toRejectedEntry(r))
	}
	return resp
}

func toRejectedEntry(e *battlelog.AssembleError) rejectedEntry {
	return rejectedEntry{Time: formatTime(e.Time), Mode: e.Mode, Error: e.Err.Error()}
}

type summaryResponse struct {
	Tag     string         `json:"tag"`
	Page    outcomeSummary `json:"page"`
	AllTime struct {
		outcomeSummary
		TrophyDelta int `json:"trophy_delta"`
	} `json:"all_time"`
}

func toSummaryResponse(s service.Summary) summaryResponse {
	resp := summaryResponse{Tag: s.Tag.String(), Page: toOutcomeSummary(s.Page)}
	resp.AllTime.outcomeSummary = toOutcomeSummary(battle.Summary{
		Victories:    s.AllTime.Victories,
		Defeats:      s.AllTime.Defeats,
		Draws:        s.AllTime.Draws,
		Undetermined: s.AllTime.Undetermined,
	})
	resp.AllTime.TrophyDelta = s.AllTime.TrophyDelta
	return resp
}

type storedBattleResponse struct {
	Time         string `json:"time"`
	Kind         string `json:"kind"`
	Mode         string `json:"mode"`
	EventID      *int   `json:"event_id,omitempty"`
	Map          string `json:"map,omitempty"`
	Outcome      string `json:"outcome"`
	Result       string `json:"result,omitempty"`
	Rank         *int   `json:"rank,omitempty"`
	TrophyChange *int   `json:"trophy_change,omitempty"`
	Rounds       int    `json:"rounds,omitempty"`
	StarPlayer   string `json:"star_player,omitempty"`
}

func toStoredBattleResponse(b domain.StoredBattle) storedBattleResponse {
	return storedBattleResponse{
		Time:         formatTime(b.BattleTime),
		Kind:         b.Kind,
		Mode:         b.Mode,
		EventID:      b.EventID,
		Map:          b.Map,
		Outcome:      b.Outcome,
		Result:       b.Result,
		Rank:         b.Rank,
		TrophyChange: b.TrophyChange,
		Rounds:       b.Rounds,
		StarPlayer:   b.StarPlayer,
	}
}
