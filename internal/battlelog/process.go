package battlelog

import (
	"errors"
	"time"

	"brawl-tracker/internal/domain/battle"
)

type Options struct {
	MaxMatchDuration time.Duration
	Policy           battle.Policy
}

func DefaultOptions() Options {
	return Options{MaxMatchDuration: DefaultMaxMatchDuration, Policy: battle.DefaultPolicy()}
}

// Page is one processed battle-log page.
type Page struct {
	// Battles are newest first, ranked rounds merged into matches.
	Battles  []battle.Battle
	Rejected []*AssembleError
	Summary  battle.Summary
}

// Err joins the rejections, nil when every record was assembled.
func (p Page) Err() error {
	errs := make([]error, 0, len(p.Rejected))
	for _, e := range p.Rejected {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Process assembles every entry and infers ranked rounds. A record that
// cannot be assembled is skipped and reported in Page.Rejected.
func Process(entries []Entry, opts Options) Page {
	assembled := make([]battle.Battle, 0, len(entries))
	var rejected []*AssembleError
	for _, e := range entries {
		b, err := Assemble(e)
		if err != nil {
			var ae *AssembleError
			if errors.As(err, &ae) {
				rejected = append(rejected, ae)
			}
			continue
		}
		assembled = append(assembled, b)
	}

	battles := InferRounds(assembled, opts.MaxMatchDuration)
	return Page{
		Battles:  battles,
		Rejected: rejected,
		Summary:  opts.Policy.Tally(battles),
	}
}
