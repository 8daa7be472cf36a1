package report

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// DefaultConcurrency is the number of activity requests kept in flight.
const DefaultConcurrency = 4

// FetchAll runs fetch for every voyage with at most limit calls in flight.
// Workers pull the next voyage from a shared cursor as soon as they finish
// one, and each result lands at its voyage's index. The first error cancels
// the remaining work and FetchAll returns no results.
func FetchAll[T any](ctx context.Context, voyages []models.Voyage, limit int, fetch func(context.Context, models.Voyage) (T, error)) ([]T, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]T, len(voyages))
	if len(voyages) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var cursor atomic.Int64

	for range min(limit, len(voyages)) {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1) - 1)
				if i >= len(voyages) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := fetch(gctx, voyages[i])
				if err != nil {
					return fmt.Errorf("voyage %d: %w", voyages[i].ID, err)
				}
				results[i] = r
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
