package search

import (
	"errors"
	"fmt"

	"github.com/devries/synacor/energy"

	"go.uber.org/multierr"
)

var ErrInvalidConfig = errors.New("invalid search configuration")

// ExhaustionPolicy decides what happens to the search when one k runs out
// of stack or memo budget.
type ExhaustionPolicy string

const (
	Abort ExhaustionPolicy = "abort"
	Skip  ExhaustionPolicy = "skip"
)

type MemoKind string

const (
	DenseMemo MemoKind = "dense"
	MapMemo   MemoKind = "map"
)

// Config describes one search. Fields are ints so that out-of-range values
// can be reported before they are narrowed to 15 bits.
type Config struct {
	X      int
	Y      int
	Target int
	KMin   int
	KMax   int

	// Workers is the number of k values evaluated at once. 1 keeps the
	// strictly increasing reference order.
	Workers int

	Limits       energy.Limits
	OnExhaustion ExhaustionPolicy
	Memo         MemoKind
}

func DefaultConfig() Config {
	return Config{
		X:       4,
		Y:       1,
		Target:  6,
		KMin:    0,
		KMax:    energy.MaxValue,
		Workers: 1,
		Limits: energy.Limits{
			MaxDepth:   energy.DefaultMaxDepth,
			MaxEntries: energy.DefaultMaxEntries,
		},
		OnExhaustion: Abort,
		Memo:         DenseMemo,
	}
}

// Validate returns every problem found, each wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var err error
	inRange := func(name string, v int) {
		if v < 0 || v > energy.MaxValue {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%d outside [0, %d]", ErrInvalidConfig, name, v, energy.MaxValue))
		}
	}

	inRange("x", c.X)
	inRange("y", c.Y)
	inRange("target", c.Target)
	inRange("k-min", c.KMin)
	inRange("k-max", c.KMax)

	if c.KMin > c.KMax {
		err = multierr.Append(err, fmt.Errorf("%w: empty k range [%d, %d]", ErrInvalidConfig, c.KMin, c.KMax))
	}
	if c.Workers < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: workers=%d must be at least 1", ErrInvalidConfig, c.Workers))
	}
	if c.Limits.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max-depth=%d is negative", ErrInvalidConfig, c.Limits.MaxDepth))
	}
	if c.Limits.MaxEntries < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max-entries=%d is negative", ErrInvalidConfig, c.Limits.MaxEntries))
	}

	switch c.OnExhaustion {
	case Abort, Skip:
	default:
		err = multierr.Append(err, fmt.Errorf("%w: on-exhaustion=%q, want %q or %q", ErrInvalidConfig, c.OnExhaustion, Abort, Skip))
	}

	switch c.Memo {
	case DenseMemo, MapMemo:
	default:
		err = multierr.Append(err, fmt.Errorf("%w: memo=%q, want %q or %q", ErrInvalidConfig, c.Memo, DenseMemo, MapMemo))
	}

	return err
}

func (c Config) newMemo(k uint16) energy.Memo {
	if c.Memo == MapMemo {
		return energy.NewMapMemo()
	}
	return energy.NewDenseMemo(k)
}
