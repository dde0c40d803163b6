// Package battle is the typed battle taxonomy: events, participants, the
// closed set of battle variants and the outcome rules applied to them.
package battle

import "brawl-tracker/internal/domain/value"

// Event is what a battle was played on. It is either an OfficialEvent or a
// CommunityEvent; no other implementations exist.
type Event interface {
	GameMode() value.Mode
	isEvent()
}

// OfficialEvent is a curated rotation slot with full metadata.
type OfficialEvent struct {
	ID   value.EventID
	Map  string
	Mode value.Mode
}

func (e OfficialEvent) GameMode() value.Mode { return e.Mode }

func (OfficialEvent) isEvent() {}

// CommunityEvent is a map-maker map. Upstream only reports the mode reliably.
type CommunityEvent struct {
	Mode value.Mode
}

func (e CommunityEvent) GameMode() value.Mode { return e.Mode }

func (CommunityEvent) isEvent() {}
