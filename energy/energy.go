// Package energy evaluates the teleporter confirmation function
//
//	f(0, y, k) = y + 1
//	f(x, 0, k) = f(x-1, k, k)
//	f(x, y, k) = f(x-1, f(x, y-1, k), k)
//
// over 15-bit values. Evaluation runs on an explicit frame stack, so deep
// chains cost heap rather than goroutine stack, and is bounded by Limits.
package energy

import (
	"context"
	"errors"
	"fmt"
)

const (
	Modulus  = 32768
	MaxValue = Modulus - 1

	DefaultMaxDepth   = 1 << 20
	DefaultMaxEntries = 1 << 22

	ctxCheckMask = 1<<14 - 1
)

var (
	ErrOutOfRange        = errors.New("value outside 15-bit range")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrForeignKey        = errors.New("triple does not belong to memo table")
)

// ExhaustedError reports an evaluation that hit one of its Limits.
type ExhaustedError struct {
	Root     Triple
	Resource string
	Limit    int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("evaluating %v: %s limit %d reached", e.Root, e.Resource, e.Limit)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrResourceExhausted
}

// Limits bound a single evaluation. MaxEntries caps allocated memo slots,
// so a dense table pays for whole rows. Zero fields take the defaults.
type Limits struct {
	MaxDepth   int
	MaxEntries int
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxEntries <= 0 {
		l.MaxEntries = DefaultMaxEntries
	}
	return l
}

type Stats struct {
	Hits      uint64
	Computed  uint64
	PeakDepth int
}

const (
	stageEnter uint8 = iota
	stageInner
	stageFinish
)

type frame struct {
	x     uint16
	y     uint16
	stage uint8
}

// Evaluator owns the frame stack and accumulates Stats across calls. It is
// not safe for concurrent use; give each goroutine its own Evaluator and Memo.
type Evaluator struct {
	memo   Memo
	limits Limits
	stats  Stats
	stack  []frame
	root   Triple
}

func NewEvaluator(memo Memo, limits Limits) *Evaluator {
	return &Evaluator{
		memo:   memo,
		limits: limits.withDefaults(),
		stack:  make([]frame, 0, 1024),
	}
}

func (e *Evaluator) Stats() Stats {
	return e.stats
}

// Evaluate computes f(x, y, k) using default limits.
func Evaluate(ctx context.Context, x, y, k uint16, memo Memo) (uint16, error) {
	return NewEvaluator(memo, Limits{}).Evaluate(ctx, x, y, k)
}

func (e *Evaluator) Evaluate(ctx context.Context, x, y, k uint16) (uint16, error) {
	e.root = Triple{X: x, Y: y, K: k}
	if x > MaxValue || y > MaxValue || k > MaxValue {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, e.root)
	}

	e.stack = e.stack[:0]
	if err := e.push(frame{x: x, y: y}); err != nil {
		return 0, err
	}

	var ret uint16
	for steps := 0; len(e.stack) > 0; steps++ {
		if steps&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		top := &e.stack[len(e.stack)-1]
		t := Triple{X: top.x, Y: top.y, K: k}

		switch top.stage {
		case stageEnter:
			if v, ok := e.memo.Load(t); ok {
				e.stats.Hits++
				ret = v
				e.pop()
				continue
			}

			switch {
			case top.x == 0:
				ret = (top.y + 1) & MaxValue
				if err := e.store(t, ret); err != nil {
					return 0, err
				}
				e.pop()
			case top.y == 0:
				top.stage = stageFinish
				if err := e.push(frame{x: top.x - 1, y: k}); err != nil {
					return 0, err
				}
			default:
				top.stage = stageInner
				if err := e.push(frame{x: top.x, y: top.y - 1}); err != nil {
					return 0, err
				}
			}

		case stageInner:
			// ret holds f(x, y-1, k)
			top.stage = stageFinish
			if err := e.push(frame{x: top.x - 1, y: ret}); err != nil {
				return 0, err
			}

		case stageFinish:
			if err := e.store(t, ret); err != nil {
				return 0, err
			}
			e.pop()
		}
	}

	return ret, nil
}

func (e *Evaluator) push(f frame) error {
	if len(e.stack) >= e.limits.MaxDepth {
		return &ExhaustedError{Root: e.root, Resource: "depth", Limit: e.limits.MaxDepth}
	}
	e.stack = append(e.stack, f)
	if len(e.stack) > e.stats.PeakDepth {
		e.stats.PeakDepth = len(e.stack)
	}
	return nil
}

func (e *Evaluator) pop() {
	e.stack = e.stack[:len(e.stack)-1]
}

func (e *Evaluator) store(t Triple, v uint16) error {
	if e.memo.Slots() >= e.limits.MaxEntries {
		return &ExhaustedError{Root: e.root, Resource: "entries", Limit: e.limits.MaxEntries}
	}
	if err := e.memo.Store(t, v); err != nil {
		return err
	}
	e.stats.Computed++
	return nil
}
