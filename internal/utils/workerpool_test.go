package utils

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForEach_ProcessesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var mu sync.Mutex
	seen := map[int]bool{}

	errs := ParallelForEach(context.Background(), items, 3, func(ctx context.Context, item int) error {
		mu.Lock()
		seen[item] = true
		mu.Unlock()
		return nil
	})

	require.Len(t, errs, len(items))
	assert.Len(t, seen, len(items))
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestParallelForEach_ErrorSlotsMatchItems(t *testing.T) {
	items := []int{0, 1, 2, 3}
	errs := ParallelForEach(context.Background(), items, 2, func(ctx context.Context, item int) error {
		if item%2 == 1 {
			return fmt.Errorf("item %d failed", item)
		}
		return nil
	})

	require.Len(t, errs, 4)
	assert.NoError(t, errs[0])
	assert.EqualError(t, errs[1], "item 1 failed")
	assert.NoError(t, errs[2])
	assert.EqualError(t, errs[3], "item 3 failed")
}

func TestParallelForEach_FailureDoesNotStopOthers(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	var processed int64
	ParallelForEach(context.Background(), items, 4, func(ctx context.Context, item int) error {
		atomic.AddInt64(&processed, 1)
		if item == 0 {
			return fmt.Errorf("boom")
		}
		return nil
	})

	assert.Equal(t, int64(20), atomic.LoadInt64(&processed))
}

func TestParallelForEach_BoundsConcurrency(t *testing.T) {
	items := make([]int, 50)
	var current, peak int64
	var mu sync.Mutex

	ParallelForEach(context.Background(), items, 4, func(ctx context.Context, item int) error {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		atomic.AddInt64(&current, -1)
		return nil
	})

	assert.LessOrEqual(t, peak, int64(4))
}

func TestParallelForEach_CanceledContextStopsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]int, 100)
	var processed int64
	errs := ParallelForEach(ctx, items, 2, func(ctx context.Context, item int) error {
		atomic.AddInt64(&processed, 1)
		return nil
	})

	require.Len(t, errs, 100)
	assert.Less(t, atomic.LoadInt64(&processed), int64(100))
}

func TestParallelForEach_EmptyInput(t *testing.T) {
	errs := ParallelForEach(context.Background(), nil, 4, func(ctx context.Context, item int) error {
		t.Fatal("should not be called")
		return nil
	})
	assert.Empty(t, errs)
}

func TestFirstError(t *testing.T) {
	errA := fmt.Errorf("a")
	errB := fmt.Errorf("b")

	assert.NoError(t, FirstError(nil))
	assert.NoError(t, FirstError([]error{nil, nil}))
	assert.Equal(t, errA, FirstError([]error{nil, errA, errB}))
}

func TestCollectErrors(t *testing.T) {
	errA := fmt.Errorf("a")
	errB := fmt.Errorf("b")

	assert.Nil(t, CollectErrors([]error{nil, nil}))
	assert.Equal(t, []error{errA, errB}, CollectErrors([]error{nil, errA, nil, errB}))
}
