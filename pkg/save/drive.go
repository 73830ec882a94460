package save

import (
	"context"
	"time"
)

// Drive calls o.Update once per interval until o is idle or ctx is done.
// A non-positive interval ticks back to back. Returning because ctx ended
// leaves the operation suspended; calling Drive again resumes it.
func Drive(ctx context.Context, o *Orchestrator, interval time.Duration) error {
	if interval <= 0 {
		for o.IsWorking() {
			if err := ctx.Err(); err != nil {
				return err
			}
			o.Update()
		}
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for o.IsWorking() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			o.Update()
		}
	}
	return nil
}
