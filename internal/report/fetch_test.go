package report

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func voyages(n int) []models.Voyage {
	out := make([]models.Voyage, n)
	for i := range out {
		out[i] = models.Voyage{ID: int64(i + 1)}
	}
	return out
}

func TestFetchAll_BoundedAndOrdered(t *testing.T) {
	var inFlight, peak atomic.Int32

	results, err := FetchAll(context.Background(), voyages(10), 4, func(ctx context.Context, v models.Voyage) (int64, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		// Later voyages finish first to scramble completion order.
		time.Sleep(time.Duration(12-v.ID) * time.Millisecond)
		inFlight.Add(-1)
		return v.ID * 10, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(4))
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, int64(i+1)*10, r, "result %d out of place", i)
	}
}

func TestFetchAll_RefillsAsSoonAsOneCompletes(t *testing.T) {
	fifthStarted := make(chan struct{})
	var once sync.Once

	_, err := FetchAll(context.Background(), voyages(6), 4, func(ctx context.Context, v models.Voyage) (struct{}, error) {
		if v.ID == 5 {
			once.Do(func() { close(fifthStarted) })
		}
		if v.ID == 1 {
			// A batch-then-wait pool would never start voyage 5 while
			// voyage 1 is still pending.
			select {
			case <-fifthStarted:
			case <-time.After(2 * time.Second):
				return struct{}{}, errors.New("voyage 5 was not dispatched while voyage 1 was in flight")
			}
		}
		return struct{}{}, nil
	})

	require.NoError(t, err)
}

func TestFetchAll_FailureDiscardsResults(t *testing.T) {
	boom := errors.New("boom")

	results, err := FetchAll(context.Background(), voyages(10), 4, func(ctx context.Context, v models.Voyage) (int64, error) {
		if v.ID == 7 {
			return 0, boom
		}
		return v.ID, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
}

func TestFetchAll_Empty(t *testing.T) {
	called := false
	results, err := FetchAll(context.Background(), nil, 4, func(ctx context.Context, v models.Voyage) (int, error) {
		called = true
		return 0, nil
	})

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestFetchAll_FewerVoyagesThanWorkers(t *testing.T) {
	var calls atomic.Int32
	results, err := FetchAll(context.Background(), voyages(2), 0, func(ctx context.Context, v models.Voyage) (int64, error) {
		calls.Add(1)
		return v.ID, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, results)
	assert.Equal(t, int32(2), calls.Load())
}
