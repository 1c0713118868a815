// Package search looks for the smallest k for which f(X, Y, k) equals a
// target value. Each k gets a fresh memo table; nothing is shared between
// evaluations of different k.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/devries/synacor/energy"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Status int

const (
	Searching Status = iota
	Found
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the terminal state of a search. K and Value are set only when
// Status is Found. Skipped lists, in increasing order, the k values whose
// evaluation was abandoned under the Skip policy.
type Outcome struct {
	Status  Status
	K       uint16
	Value   uint16
	Tried   int
	Skipped []uint16
}

type Searcher struct {
	cfg Config
	log *zap.Logger
}

// New validates cfg before anything is evaluated.
func New(cfg Config, logger *zap.Logger) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		cfg: cfg,
		log: logger.With(zap.String("run", uuid.NewString())),
	}, nil
}

func (s *Searcher) Run(ctx context.Context) (Outcome, error) {
	var (
		out Outcome
		err error
	)
	if s.cfg.Workers > 1 {
		out, err = s.runParallel(ctx)
	} else {
		out, err = s.runSequential(ctx)
	}
	if err != nil {
		return out, err
	}

	switch out.Status {
	case Found:
		s.log.Info("energy level found",
			zap.Uint16("k", out.K),
			zap.Uint16("result", out.Value),
			zap.Int("tried", out.Tried),
		)
		if len(out.Skipped) > 0 {
			s.log.Warn("smaller k values were skipped and are unverified", zap.Uint16s("skipped", out.Skipped))
		}
	case Exhausted:
		s.log.Warn("no k produces target",
			zap.Int("target", s.cfg.Target),
			zap.Int("k-min", s.cfg.KMin),
			zap.Int("k-max", s.cfg.KMax),
			zap.Int("tried", out.Tried),
			zap.Int("skipped", len(out.Skipped)),
		)
	}
	return out, nil
}

// evaluate runs one k against its own memo table. A non-nil error from an
// exhausted k under the Skip policy is returned as skipped=true.
func (s *Searcher) evaluate(ctx context.Context, k uint16) (v uint16, skipped bool, err error) {
	x, y := uint16(s.cfg.X), uint16(s.cfg.Y)
	fields := []zap.Field{zap.Uint16("x", x), zap.Uint16("y", y), zap.Uint16("k", k)}

	s.log.Info("evaluating energy level", fields...)

	memo := s.cfg.newMemo(k)
	ev := energy.NewEvaluator(memo, s.cfg.Limits)
	v, err = ev.Evaluate(ctx, x, y, k)
	if err != nil {
		if errors.Is(err, energy.ErrResourceExhausted) && s.cfg.OnExhaustion == Skip {
			s.log.Warn("skipping k", append(fields, zap.Error(err))...)
			return 0, true, nil
		}
		return 0, false, fmt.Errorf("k=%d: %w", k, err)
	}

	stats := ev.Stats()
	s.log.Info("energy level computed", append(fields,
		zap.Uint16("result", v),
		zap.Int("entries", memo.Len()),
		zap.Int("depth", stats.PeakDepth),
	)...)
	return v, false, nil
}

func (s *Searcher) runSequential(ctx context.Context) (Outcome, error) {
	out := Outcome{Status: Searching}
	target := uint16(s.cfg.Target)

	for k := s.cfg.KMin; k <= s.cfg.KMax; k++ {
		v, skipped, err := s.evaluate(ctx, uint16(k))
		if err != nil {
			return out, err
		}
		if skipped {
			out.Skipped = append(out.Skipped, uint16(k))
			continue
		}
		out.Tried++

		if v == target {
			out.Status = Found
			out.K = uint16(k)
			out.Value = v
			return out, nil
		}
	}

	out.Status = Exhausted
	return out, nil
}

// runParallel hands out k in increasing order. Once a match is known no k
// above it is claimed, and Wait lets every smaller in-flight k finish, so
// the reported winner is the smallest match.
func (s *Searcher) runParallel(ctx context.Context) (Outcome, error) {
	target := uint16(s.cfg.Target)
	notFound := int64(s.cfg.KMax) + 1

	var (
		next  atomic.Int64
		best  atomic.Int64
		tried atomic.Int64

		mu      sync.Mutex
		skipped []uint16
	)
	next.Store(int64(s.cfg.KMin))
	best.Store(notFound)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.cfg.Workers; w++ {
		g.Go(func() error {
			for {
				k := next.Add(1) - 1
				if k > int64(s.cfg.KMax) || k >= best.Load() {
					return nil
				}

				v, skip, err := s.evaluate(gctx, uint16(k))
				if err != nil {
					return err
				}
				if skip {
					mu.Lock()
					skipped = append(skipped, uint16(k))
					mu.Unlock()
					continue
				}
				tried.Add(1)

				if v != target {
					continue
				}
				for {
					cur := best.Load()
					if k >= cur || best.CompareAndSwap(cur, k) {
						break
					}
				}
			}
		})
	}

	out := Outcome{Status: Searching}
	if err := g.Wait(); err != nil {
		return out, err
	}

	out.Tried = int(tried.Load())
	win := best.Load()
	out.Skipped = make([]uint16, 0, len(skipped))
	for _, k := range skipped {
		if int64(k) < win {
			out.Skipped = append(out.Skipped, k)
		}
	}
	sort.Slice(out.Skipped, func(i, j int) bool { return out.Skipped[i] < out.Skipped[j] })
	if len(out.Skipped) == 0 {
		out.Skipped = nil
	}

	if win == notFound {
		out.Status = Exhausted
		return out, nil
	}
	out.Status = Found
	out.K = uint16(win)
	out.Value = target
	return out, nil
}
