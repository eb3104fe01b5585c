// Package analyze drives a profiling run: it folds a document producer
// through classification and merging, then finalizes the resulting
// profile with truncation and ambiguity scoring.
package analyze

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/datprof/schemap/pkg/loader"
	"github.com/datprof/schemap/pkg/profile"
)

// Options configures a run. Zero values fall back to the profile
// defaults; Workers below two selects the sequential fold.
type Options struct {
	TextLimit     int
	DiscreteLimit int
	Workers       int
}

// Analysis runs schema profiling over the documents of one loader.
type Analysis struct {
	src  loader.Loader
	opts Options
}

// New returns an analysis over src.
func New(src loader.Loader, opts Options) *Analysis {
	return &Analysis{src: src, opts: opts}
}

// Run pulls every document from the loader, folds it into a profile, and
// finalizes the result. The first classification, merge, or read error
// aborts the run with no partial profile: schema inference over a
// corrupted dataset is not trustworthy half-done.
func (a *Analysis) Run(ctx context.Context) (*profile.Profile, error) {
	slog.Info("starting schema analysis",
		slog.String("mode", a.mode()),
		slog.Int("workers", a.opts.Workers),
	)

	var (
		result *profile.Profile
		err    error
	)
	if a.opts.Workers > 1 {
		result, err = a.runParallel(ctx)
	} else {
		result, err = a.runSequential(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := result.Finalize(); err != nil {
		return nil, fmt.Errorf("finalizing profile: %w", err)
	}

	slog.Info("schema analysis complete",
		slog.Int("documents", result.Documents),
		slog.Int("ambiguous", result.Ambiguous),
	)
	return result, nil
}

func (a *Analysis) profileOptions() profile.Options {
	return profile.Options{
		TextLimit:     a.opts.TextLimit,
		DiscreteLimit: a.opts.DiscreteLimit,
	}
}

func (a *Analysis) mode() string {
	if a.opts.Workers > 1 {
		return "parallel"
	}
	return "sequential"
}

func (a *Analysis) runSequential(ctx context.Context) (*profile.Profile, error) {
	p := profile.New(a.profileOptions())
	for {
		doc, err := a.src.Next(ctx)
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading document %d: %w", a.src.Count()+1, err)
		}
		if err := p.Observe(doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", a.src.Count(), err)
		}
	}
}

// runParallel partitions the document stream across workers, each folding
// its own partial profile, and merges the partials at the end. The merge
// algebra is associative and commutative over classified trees, so the
// result equals the sequential fold regardless of how documents were
// dealt out.
func (a *Analysis) runParallel(ctx context.Context) (*profile.Profile, error) {
	g, ctx := errgroup.WithContext(ctx)
	docs := make(chan any)

	g.Go(func() error {
		defer close(docs)
		for {
			doc, err := a.src.Next(ctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading document %d: %w", a.src.Count()+1, err)
			}
			select {
			case docs <- doc:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	partials := make([]*profile.Profile, a.opts.Workers)
	for i := range partials {
		p := profile.New(a.profileOptions())
		partials[i] = p
		g.Go(func() error {
			for doc := range docs {
				if err := p.Observe(doc); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := partials[0]
	for _, p := range partials[1:] {
		if err := combined.Absorb(p); err != nil {
			return nil, fmt.Errorf("merging partial profiles: %w", err)
		}
	}
	return combined, nil
}
