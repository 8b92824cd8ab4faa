package batch

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"Pavement/internal/calc/design"
)

var (
	ErrEmpty    = errors.New("no items")
	ErrTooLarge = errors.New("too many items")
)

// MaxItems bounds a single batch request.
const MaxItems = 500

type DesignBatchInput struct {
	Items []design.Input `json:"items"`
}

type DesignBatchResult struct {
	Results []design.Result `json:"results"`
}

// ItemError reports the first failing run of a batch by its position.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// CalculateDesigns evaluates the runs on at most runtime.NumCPU workers.
// Results keep the input order; the failing item with the lowest index
// aborts the batch.
func CalculateDesigns(in DesignBatchInput) (DesignBatchResult, error) {
	if len(in.Items) == 0 {
		return DesignBatchResult{}, ErrEmpty
	}
	if len(in.Items) > MaxItems {
		return DesignBatchResult{}, fmt.Errorf("%w: %d items, limit %d", ErrTooLarge, len(in.Items), MaxItems)
	}
	results := make([]design.Result, len(in.Items))
	errs := make([]error, len(in.Items))

	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for i, item := range in.Items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item design.Input) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = design.Calculate(item)
		}(i, item)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return DesignBatchResult{}, &ItemError{Index: i, Err: err}
		}
	}
	return DesignBatchResult{Results: results}, nil
}
