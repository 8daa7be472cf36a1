package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/vessel-console/internal/logging"
)

func TestPreviousPeriod(t *testing.T) {
	m, y := PreviousPeriod(time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, 12, m)
	assert.Equal(t, 2023, y)

	m, y = PreviousPeriod(time.Date(2024, 3, 31, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, m)
	assert.Equal(t, 2024, y)
}

func TestScheduler_AddRejectsInvalidSpec(t *testing.T) {
	s := NewScheduler(context.Background())
	_, err := s.Add("every tuesday", func(ctx context.Context, month, year int) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_RunReportsPreviousPeriod(t *testing.T) {
	s := NewScheduler(context.Background())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC) }

	var gotMonth, gotYear int
	var gotCID bool
	s.run(func(ctx context.Context, month, year int) error {
		gotMonth, gotYear = month, year
		gotCID = logging.CorrelationID(ctx) != ""
		return nil
	})
	assert.Equal(t, 4, gotMonth)
	assert.Equal(t, 2024, gotYear)
	assert.True(t, gotCID)

	// A failing job is logged, not propagated.
	s.run(func(ctx context.Context, month, year int) error { return errors.New("export failed") })

	id, err := s.Add("0 6 1 * *", func(ctx context.Context, month, year int) error { return nil })
	require.NoError(t, err)
	assert.NotZero(t, id)
}
