package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/sensorview/internal/timeutil"
)

func TestIsSQLiteBusy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"database is locked", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"SQLITE_BUSY", errors.New("SQLITE_BUSY"), true},
		{"other error", errors.New("some other error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isSQLiteBusy(tt.err))
		})
	}
}

func TestRetryOnBusy(t *testing.T) {
	busy := errors.New("database is locked (5) (SQLITE_BUSY)")

	newLedger := func() (*Ledger, *timeutil.MockClock) {
		clock := timeutil.NewMockClock(time.Time{})
		return New(nil, WithClock(clock)), clock
	}

	t.Run("success on first try", func(t *testing.T) {
		l, clock := newLedger()
		calls := 0
		err := l.retryOnBusy(context.Background(), func() error { calls++; return nil })
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, clock.Sleeps())
	})

	t.Run("success after retry backs off exponentially", func(t *testing.T) {
		l, clock := newLedger()
		calls := 0
		err := l.retryOnBusy(context.Background(), func() error {
			calls++
			if calls < 3 {
				return busy
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, clock.Sleeps())
	})

	t.Run("non-busy error fails immediately", func(t *testing.T) {
		l, _ := newLedger()
		testErr := errors.New("some other error")
		calls := 0
		err := l.retryOnBusy(context.Background(), func() error { calls++; return testErr })
		assert.Equal(t, testErr, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		l, clock := newLedger()
		calls := 0
		err := l.retryOnBusy(context.Background(), func() error { calls++; return busy })
		assert.Equal(t, busy, err)
		assert.Equal(t, 5, calls)
		assert.Len(t, clock.Sleeps(), 4)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		l, clock := newLedger()
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := l.retryOnBusy(ctx, func() error {
			calls++
			if calls == 2 {
				cancel()
			}
			return busy
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "SQLITE_BUSY")
		assert.Equal(t, 2, calls)
		assert.Equal(t, []time.Duration{10 * time.Millisecond}, clock.Sleeps())
	})
}
