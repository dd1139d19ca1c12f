// Package optim tunes scene parameters against rollout metrics.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/impulse/internal/simulation"
)

// RunFunc builds and rolls out a world for one parameter combination.
type RunFunc func(ctx context.Context, params map[string]float64) (*simulation.Result, error)

// GridSearch sweeps named parameters over fixed value grids and keeps
// the combination minimizing one rollout metric.
type GridSearch struct {
	names  []string
	ranges [][]float64
}

// NewGridSearch pairs parameter names with candidate values; names[i]
// takes the values in ranges[i].
func NewGridSearch(names []string, ranges [][]float64) *GridSearch {
	return &GridSearch{names: names, ranges: ranges}
}

// Search evaluates every combination. Combinations whose rollout fails
// or lacks the metric are skipped; the error is non-nil only when the
// context is cancelled or no combination yields the metric at all.
func (g *GridSearch) Search(ctx context.Context, run RunFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.search(ctx, 0, map[string]float64{}, run, metricName, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no parameter combination produced metric %q", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) search(ctx context.Context, depth int, current map[string]float64, run RunFunc, metricName string, best *float64, bestParams *map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.names) {
		result, err := run(ctx, current)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return nil
		}
		if val < *best {
			*best = val
			params := make(map[string]float64, len(current))
			for k, v := range current {
				params[k] = v
			}
			*bestParams = params
		}
		return nil
	}

	name := g.names[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		if err := g.search(ctx, depth+1, next, run, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
