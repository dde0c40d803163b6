package battlelog

import (
	"slices"
	"time"

	"brawl-tracker/internal/domain/battle"
)

// DefaultMaxMatchDuration bounds how far back from a final round earlier
// rounds of the same match are looked for. The API gives no hard signal.
const DefaultMaxMatchDuration = 25 * time.Minute

type scanState int

const (
	stateSeeking scanState = iota
	stateAccumulating
)

// InferRounds merges the separately logged rounds of ranked matches into one
// battle per match. battles must be newest first, as upstream delivers them.
//
// A final round is a ranked entry in a ranked-playable mode that carries a
// star player and a victory or defeat. The contiguous older entries of the
// same kind, event and rosters without a star player, played within
// maxDuration of it, become its earlier rounds, and the oldest of them sets
// the match's FirstRoundAt. A round never absorbed, such as one whose final
// round fell off the page, is re-emitted as a standalone team battle decided
// by its own result. Everything else passes through unchanged. A non-positive maxDuration means DefaultMaxMatchDuration.
func InferRounds(battles []battle.Battle, maxDuration time.Duration) []battle.Battle {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxMatchDuration
	}
	s := &roundScanner{log: battles, maxDuration: maxDuration, out: make([]battle.Battle, 0, len(battles))}
	return s.run()
}

type roundScanner struct {
	log         []battle.Battle
	maxDuration time.Duration

	state    scanState
	cursor   int
	terminal battle.MultiRound
	rounds   []battle.Round
	first    time.Time

	out []battle.Battle
}

func (s *roundScanner) run() []battle.Battle {
	for s.cursor < len(s.log) || s.state == stateAccumulating {
		switch s.state {
		case stateSeeking:
			s.seek()
		case stateAccumulating:
			s.accumulate()
		}
	}
	return s.out
}

func (s *roundScanner) seek() {
	b := s.log[s.cursor]
	s.cursor++

	if m, ok := finalRound(b); ok {
		s.terminal = m
		s.rounds = slices.Clone(m.MatchRounds())
		s.first = time.Time{}
		s.state = stateAccumulating
		return
	}
	if m, ok := b.(battle.MultiRound); ok && !m.HasStarPlayer() {
		s.out = append(s.out, m.Standalone())
		return
	}
	s.out = append(s.out, b)
}

func (s *roundScanner) accumulate() {
	if s.cursor < len(s.log) {
		if prior, ok := s.priorRound(s.log[s.cursor]); ok {
			s.rounds = append(slices.Clone(prior.MatchRounds()), s.rounds...)
			s.first = prior.BattleTime()
			s.cursor++
			return
		}
	}

	s.out = append(s.out, s.terminal.WithRounds(s.rounds, s.first))
	s.terminal, s.rounds = nil, nil
	s.state = stateSeeking
}

func finalRound(b battle.Battle) (battle.MultiRound, bool) {
	m, ok := b.(battle.MultiRound)
	if !ok || !m.HasStarPlayer() || !m.OfficialEvent().Mode.IsRankedPlayable() {
		return nil, false
	}
	r := m.BattleResult()
	if r == nil || (*r != battle.ResultVictory && *r != battle.ResultDefeat) {
		return nil, false
	}
	return m, true
}

func (s *roundScanner) priorRound(b battle.Battle) (battle.MultiRound, bool) {
	m, ok := b.(battle.MultiRound)
	if !ok || m.HasStarPlayer() || len(m.MatchRounds()) == 0 {
		return nil, false
	}
	if m.Kind() != s.terminal.Kind() || m.OfficialEvent() != s.terminal.OfficialEvent() {
		return nil, false
	}
	gap := s.terminal.BattleTime().Sub(m.BattleTime())
	if gap < 0 || gap > s.maxDuration {
		return nil, false
	}
	return m, s.terminal.SameTeams(m)
}
