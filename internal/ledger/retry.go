package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	busyRetries   = 5
	busyBaseDelay = 10 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// retryOnBusy runs fn until it succeeds, fails with a non-busy error, or
// busyRetries attempts have been made. The delay doubles after each busy
// attempt. A done ctx stops the retries before the next sleep.
func (l *Ledger) retryOnBusy(ctx context.Context, fn func() error) error {
	delay := busyBaseDelay
	var err error
	for attempt := 1; attempt <= busyRetries; attempt++ {
		if err = fn(); !isSQLiteBusy(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w (last attempt: %v)", ctxErr, err)
		}
		if attempt < busyRetries {
			logf("database busy, retrying in %s (attempt %d/%d)", delay, attempt, busyRetries)
			l.clock.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
