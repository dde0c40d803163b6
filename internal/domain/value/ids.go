package value

import (
	"fmt"
	"strings"
)

const (
	MinEventID = 15_000_000
	MaxEventID = 15_999_999

	MinBrawlerID = 16_000_000
	MaxBrawlerID = 16_999_999
)

// EventID identifies an officially curated event (map + mode rotation slot).
type EventID struct {
	v int
}

func NewEventID(v int) (EventID, error) {
	if v < MinEventID || v > MaxEventID {
		return EventID{}, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidEventID, v, MinEventID, MaxEventID)
	}
	return EventID{v: v}, nil
}

func MustEventID(v int) EventID { return must(NewEventID(v)) }

func EventIDOrNil(v int) *EventID { return orNil(NewEventID(v)) }

func (id EventID) Int() int { return id.v }

func (id EventID) String() string { return fmt.Sprintf("%d", id.v) }

type BrawlerID struct {
	v int
}

func NewBrawlerID(v int) (BrawlerID, error) {
	if v < MinBrawlerID || v > MaxBrawlerID {
		return BrawlerID{}, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidBrawlerID, v, MinBrawlerID, MaxBrawlerID)
	}
	return BrawlerID{v: v}, nil
}

func MustBrawlerID(v int) BrawlerID { return must(NewBrawlerID(v)) }

func BrawlerIDOrNil(v int) *BrawlerID { return orNil(NewBrawlerID(v)) }

func (id BrawlerID) Int() int { return id.v }

// PartySize is how many players queued together for a ranked match.
type PartySize struct {
	v int
}

var (
	PartySolo = PartySize{v: 1}
	PartyDuo  = PartySize{v: 2}
	PartyTrio = PartySize{v: 3}
)

func NewPartySize(v int) (PartySize, error) {
	if v < PartySolo.v || v > PartyTrio.v {
		return PartySize{}, fmt.Errorf("%w: %d is not solo, duo or trio", ErrInvalidPartySize, v)
	}
	return PartySize{v: v}, nil
}

func MustPartySize(v int) PartySize { return must(NewPartySize(v)) }

func PartySizeOrNil(v int) *PartySize { return orNil(NewPartySize(v)) }

func (p PartySize) Int() int { return p.v }

func (p PartySize) String() string {
	switch p {
	case PartySolo:
		return "solo"
	case PartyDuo:
		return "duo"
	case PartyTrio:
		return "trio"
	}
	return "unknown"
}

// tagAlphabet is the character set player tags are encoded with.
const tagAlphabet = "0289PYLQGRJCUV"

const minTagLength = 3

// PlayerTag is a normalised player tag, always "#" prefixed and upper case.
type PlayerTag struct {
	v string
}

func NewPlayerTag(raw string) (PlayerTag, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "#")
	// letter O is a common typo for zero
	s = strings.ReplaceAll(s, "O", "0")
	if len(s) < minTagLength {
		return PlayerTag{}, fmt.Errorf("%w: %q is too short", ErrInvalidPlayerTag, raw)
	}
	for _, c := range s {
		if !strings.ContainsRune(tagAlphabet, c) {
			return PlayerTag{}, fmt.Errorf("%w: %q contains %q", ErrInvalidPlayerTag, raw, c)
		}
	}
	return PlayerTag{v: "#" + s}, nil
}

func MustPlayerTag(raw string) PlayerTag { return must(NewPlayerTag(raw)) }

func PlayerTagOrNil(raw string) *PlayerTag { return orNil(NewPlayerTag(raw)) }

func (t PlayerTag) String() string { return t.v }

// Bare returns the tag without its "#" prefix, as used in API paths.
func (t PlayerTag) Bare() string { return strings.TrimPrefix(t.v, "#") }

func (t PlayerTag) IsZero() bool { return t.v == "" }
