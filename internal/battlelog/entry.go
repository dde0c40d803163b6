// Package battlelog turns raw upstream battle-log records into typed battles
// and stitches ranked rounds back into matches.
package battlelog

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the compact ISO-8601 form upstream uses for battleTime.
const TimeLayout = "20060102T150405.000Z"

// Entry is one raw record of a player's battle log, newest first.
type Entry struct {
	BattleTime Timestamp `json:"battleTime"`
	Event      RawEvent  `json:"event"`
	Battle     RawBattle `json:"battle"`
}

type RawEvent struct {
	// ID is absent or zero on community maps.
	ID   *int   `json:"id,omitempty"`
	Mode string `json:"mode,omitempty"`
	Map  string `json:"map,omitempty"`
}

type RawBattle struct {
	Mode         string        `json:"mode"`
	Type         string        `json:"type,omitempty"`
	Result       string        `json:"result,omitempty"`
	Duration     *int          `json:"duration,omitempty"`
	TrophyChange *int          `json:"trophyChange,omitempty"`
	Rank         *int          `json:"rank,omitempty"`
	Level        *RawLevel     `json:"level,omitempty"`
	StarPlayer   *RawPlayer    `json:"starPlayer,omitempty"`
	Teams        [][]RawPlayer `json:"teams,omitempty"`
	Players      []RawPlayer   `json:"players,omitempty"`
}

type RawLevel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawPlayer has an empty Tag when it is a bot.
type RawPlayer struct {
	Tag      string       `json:"tag"`
	Name     string       `json:"name"`
	Brawler  *RawBrawler  `json:"brawler,omitempty"`
	Brawlers []RawBrawler `json:"brawlers,omitempty"`
}

// RawBrawler.Trophies holds the ranked stage in ranked battles.
type RawBrawler struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Power        int    `json:"power"`
	Trophies     *int   `json:"trophies,omitempty"`
	TrophyChange *int   `json:"trophyChange,omitempty"`
}

// lineup is every brawler the player reported, falling back to the single
// brawler field.
func (p RawPlayer) lineup() []RawBrawler {
	if len(p.Brawlers) > 0 {
		return p.Brawlers
	}
	if p.Brawler != nil {
		return []RawBrawler{*p.Brawler}
	}
	return nil
}

func (p RawPlayer) isBot() bool { return p.Tag == "" }

// Timestamp reads and writes battleTime in TimeLayout.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode battle time: %w", err)
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse battle time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayout))
}

// DecodeLog decodes the items of a battle-log page.
func DecodeLog(data []byte) ([]Entry, error) {
	var page struct {
		Items []Entry `json:"items"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to decode battle log: %w", err)
	}
	return page.Items, nil
}
