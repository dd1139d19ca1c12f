package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/impulse/internal/simulation"
)

func scoreResult(score float64) *simulation.Result {
	return &simulation.Result{Metrics: map[string]float64{"score": score}}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	search := NewGridSearch([]string{"a", "b"}, [][]float64{{0, 1, 2}, {10, 20}})

	calls := 0
	run := func(ctx context.Context, params map[string]float64) (*simulation.Result, error) {
		calls++
		a, b := params["a"], params["b"]
		return scoreResult((a-1)*(a-1) + (b-20)*(b-20)/100), nil
	}

	params, best, err := search.Search(context.Background(), run, "score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 6 {
		t.Errorf("expected 6 evaluations, got %d", calls)
	}
	if params["a"] != 1 || params["b"] != 20 {
		t.Errorf("expected best params a=1 b=20, got %v", params)
	}
	if math.Abs(best) > 1e-12 {
		t.Errorf("expected best score 0, got %v", best)
	}
}

func TestGridSearchSkipsFailedCombinations(t *testing.T) {
	search := NewGridSearch([]string{"a"}, [][]float64{{0, 1, 2}})

	run := func(ctx context.Context, params map[string]float64) (*simulation.Result, error) {
		if params["a"] == 1 {
			return nil, fmt.Errorf("resolution blew up")
		}
		return scoreResult(math.Abs(params["a"] - 1)), nil
	}

	params, best, err := search.Search(context.Background(), run, "score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["a"] != 0 && params["a"] != 2 {
		t.Errorf("expected a surviving combination, got %v", params)
	}
	if best != 1 {
		t.Errorf("expected best score 1, got %v", best)
	}
}

func TestGridSearchMissingMetric(t *testing.T) {
	search := NewGridSearch([]string{"a"}, [][]float64{{0, 1}})

	run := func(ctx context.Context, params map[string]float64) (*simulation.Result, error) {
		return &simulation.Result{Metrics: map[string]float64{}}, nil
	}

	if _, _, err := search.Search(context.Background(), run, "score"); err == nil {
		t.Error("expected error when no combination yields the metric")
	}
}

func TestGridSearchCancelled(t *testing.T) {
	search := NewGridSearch([]string{"a"}, [][]float64{{0, 1, 2}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := func(ctx context.Context, params map[string]float64) (*simulation.Result, error) {
		return scoreResult(0), nil
	}

	_, _, err := search.Search(ctx, run, "score")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
