package neat

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// score runs the fitness function on every organism that has not been scored
// yet. With more than one worker the organisms are scored in parallel; every
// goroutine writes only to its own organism, and score returns once all of
// them are done.
func (t *Trainer) score(ctx context.Context, organisms []*Organism) error {
	pending := make([]*Organism, 0, len(organisms))
	for _, o := range organisms {
		if !o.Evaluated {
			pending = append(pending, o)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	workers := t.Config.Trainer.Workers
	if workers <= 1 {
		for _, o := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			t.scoreOrganism(o)
		}
		return nil
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	for _, o := range pending {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t.scoreOrganism(o)
			return nil
		})
	}
	return p.Wait()
}

// scoreOrganism scores one organism and clears the state the fitness function
// left in its network.
func (t *Trainer) scoreOrganism(o *Organism) {
	o.Network.Reset()
	o.Score = t.fitness(o.Network)
	o.Network.Reset()
	o.Evaluated = true
}
