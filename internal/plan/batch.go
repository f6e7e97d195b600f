package plan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"delegen/internal/model"
)

// PlanAll plans models concurrently with at most workers goroutines
// (unbounded when workers <= 0). Plans come back in input order. The first
// failure cancels the models not yet started and is returned.
func (p *Planner) PlanAll(ctx context.Context, models []*model.ClassModel, workers int) ([]*Plan, error) {
	plans := make([]*Plan, len(models))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, cm := range models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pl, err := p.Plan(cm)
			if err != nil {
				return err
			}

			plans[i] = pl

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Infof("planned %d classes", len(plans))

	return plans, nil
}
