// Package ensemble runs independent bird models side by side.
//
// Every member is built by its own call to the Builder and owns its state;
// nothing mutable is shared between members. Members run on a bounded pool
// of goroutines and the first failure cancels the rest.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dd-harp/birds-sim/bird"
	"golang.org/x/sync/errgroup"
)

// ErrBadEnsemble indicates a non-positive member count, a negative step
// count or a nil builder.
var ErrBadEnsemble = errors.New("ensemble: invalid ensemble")

// Member is one replicate: a freshly built model and the per-step drivers
// it is advanced with.
type Member struct {
	Model  *bird.Model
	Params bird.StepParams
}

// Builder builds member i. It is called concurrently and must not return a
// model shared with another member.
type Builder func(i int) (Member, error)

// Trajectory holds the snapshots of one member: the initial state followed
// by one snapshot per completed step.
type Trajectory []bird.Snapshot

// Option tunes Run.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the number of members advanced at once. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("ensemble: WithWorkers: n must be >= 1")
	}

	return func(o *options) { o.workers = n }
}

// Run builds n members and advances each by steps updates. Trajectories are
// returned in member order. On the first error every other member stops at
// its next step and the error, tagged with the member index, is returned.
func Run(ctx context.Context, n, steps int, build Builder, opts ...Option) ([]Trajectory, error) {
	if n < 1 || steps < 0 || build == nil {
		return nil, fmt.Errorf("%w: n=%d steps=%d", ErrBadEnsemble, n, steps)
	}
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]Trajectory, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			tr, err := runMember(ctx, i, steps, build)
			if err != nil {
				return fmt.Errorf("ensemble: member %d: %w", i, err)
			}
			out[i] = tr

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func runMember(ctx context.Context, i, steps int, build Builder) (Trajectory, error) {
	mem, err := build(i)
	if err != nil {
		return nil, err
	}
	if mem.Model == nil {
		return nil, fmt.Errorf("%w: builder returned no model", ErrBadEnsemble)
	}
	tr := make(Trajectory, 0, steps+1)
	tr = append(tr, mem.Model.Snapshot())
	for s := 0; s < steps; s++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if err = mem.Model.Update(mem.Params); err != nil {
			return nil, err
		}
		tr = append(tr, mem.Model.Snapshot())
	}

	return tr, nil
}

// Mean returns the member-averaged population at every step. All
// trajectories must have the same length.
func Mean(trs []Trajectory) ([]float64, error) {
	if len(trs) == 0 {
		return nil, fmt.Errorf("%w: no trajectories", ErrBadEnsemble)
	}
	out := make([]float64, len(trs[0]))
	for k, tr := range trs {
		if len(tr) != len(out) {
			return nil, fmt.Errorf("%w: trajectory %d has %d steps, want %d", ErrBadEnsemble, k, len(tr), len(out))
		}
		for s := range tr {
			out[s] += tr[s].Population()
		}
	}
	for s := range out {
		out[s] /= float64(len(trs))
	}

	return out, nil
}
