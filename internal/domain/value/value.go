// Package value holds the validated scalars battle records are built from.
//
// Each type has a single fallible constructor NewX. MustX and XOrNil are
// thin adapters over it for callers that prefer panics or nil pointers.
package value

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValue = errors.New("invalid value")

	ErrInvalidRank           = fmt.Errorf("%w: ranking position", ErrInvalidValue)
	ErrInvalidTrophyChange   = fmt.Errorf("%w: trophy change", ErrInvalidValue)
	ErrInvalidEnemyLevel     = fmt.Errorf("%w: enemy level", ErrInvalidValue)
	ErrInvalidEventID        = fmt.Errorf("%w: event id", ErrInvalidValue)
	ErrInvalidPartySize      = fmt.Errorf("%w: party size", ErrInvalidValue)
	ErrInvalidPlayerTag      = fmt.Errorf("%w: player tag", ErrInvalidValue)
	ErrInvalidBrawlerID      = fmt.Errorf("%w: brawler id", ErrInvalidValue)
	ErrInvalidPowerLevel     = fmt.Errorf("%w: power level", ErrInvalidValue)
	ErrInvalidTrophies       = fmt.Errorf("%w: trophies", ErrInvalidValue)
	ErrInvalidRankedStage    = fmt.Errorf("%w: ranked stage", ErrInvalidValue)
	ErrInvalidMode           = fmt.Errorf("%w: mode", ErrInvalidValue)
	ErrInvalidBattleDuration = fmt.Errorf("%w: battle duration", ErrInvalidValue)
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func orNil[T any](v T, err error) *T {
	if err != nil {
		return nil
	}
	return &v
}
