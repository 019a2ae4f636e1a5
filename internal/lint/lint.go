// Package lint validates batches of SICI strings with the core engine.
package lint

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sici/pkg/sici"
)

// Finding is the verdict for a single input.
type Finding struct {
	Input     string
	Valid     bool
	RoundTrip bool
	// Canonical is the engine's re-serialization of whatever state
	// tokenization reached, including the computed check character.
	Canonical string
	Problems  map[string][]string
	// Err is set in strict mode when Parse aborted; nil in lax mode.
	Err error
}

// Runner validates inputs concurrently. Every input gets a private Sici
// instance; instances are never shared between goroutines.
type Runner struct {
	Mode sici.Mode
	// Jobs bounds concurrent validations; values <= 0 fall back to
	// GOMAXPROCS.
	Jobs int
}

// Run validates every input and returns findings in input order. The only
// error it returns is context cancellation; per-input failures are carried
// in the findings.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]Finding, error) {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	findings := make([]Finding, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			findings[i] = check(r.Mode, input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return findings, nil
}

func check(mode sici.Mode, input string) Finding {
	s, err := sici.New(string(mode))
	if err != nil {
		return Finding{Input: input, Err: err}
	}
	res, err := s.Parse(input)
	return Finding{
		Input:     input,
		Valid:     err == nil && res.Valid,
		RoundTrip: res.Compared && res.RoundTrip,
		Canonical: s.String(),
		Problems:  s.Problems(),
		Err:       err,
	}
}
