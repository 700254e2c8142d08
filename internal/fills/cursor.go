package fills

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ikenox/ftx-history-collector/internal/api"
)

// PageFetcher fetches one page of fills executed in [start, end),
// ordered newest first, truncated at the exchange page limit.
type PageFetcher interface {
	FetchPage(ctx context.Context, start, end time.Time) ([]api.Fill, error)
}

// Cursor walks an account's fill history backward in time and yields each
// fill in [start, end) exactly once, in the exchange's newest-first order.
//
// It is a single-use state machine: create one per run, call Next until it
// reports exhaustion. It is not safe for concurrent use; pagination is
// inherently sequential because each request depends on the previous
// page's oldest timestamp and id.
type Cursor struct {
	fetcher PageFetcher
	logger  *slog.Logger

	// Run bounds. start is the zero time when no lower bound is set;
	// end is the exclusive upper bound of the whole run.
	start time.Time
	end   time.Time

	// Pagination state, replaced after every non-empty page.
	endTime  time.Time
	oldestID uint64

	done bool
}

// New creates a cursor over [start, end). A zero start means no lower
// bound. A start at or after end is a configuration error, rejected
// before any fetch.
func New(fetcher PageFetcher, start, end time.Time, logger *slog.Logger) (*Cursor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if end.IsZero() {
		return nil, errors.New("end bound is required")
	}
	if !start.IsZero() && !start.Before(end) {
		return nil, fmt.Errorf("start %s must be before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return &Cursor{
		fetcher:  fetcher,
		logger:   logger,
		start:    start,
		end:      end,
		endTime:  end,
		oldestID: math.MaxUint64,
	}, nil
}

// Next returns the next batch of fills, newest first, or (nil, nil) once
// the history is exhausted. Any fetch error is terminal for the cursor.
func (c *Cursor) Next(ctx context.Context) ([]api.Fill, error) {
	if c.done {
		return nil, nil
	}

	page, err := c.fetcher.FetchPage(ctx, time.Unix(0, 0), c.endTime)
	if err != nil {
		c.done = true
		return nil, err
	}

	var kept []api.Fill
	for _, f := range page {
		if f.ID >= c.oldestID {
			// Re-fetched overlap from the previous page's boundary second.
			continue
		}
		if !f.Time.Before(c.end) {
			continue
		}
		if !c.start.IsZero() && f.Time.Before(c.start) {
			continue
		}
		kept = append(kept, f)
	}

	// An empty filtered page is the only exhaustion signal: either the raw
	// page was empty, everything was already emitted (no further progress
	// is possible), or the remaining history predates the start bound.
	if len(kept) == 0 {
		c.done = true
		return nil, nil
	}

	oldest := kept[len(kept)-1]
	c.logger.Info("fetched fills page",
		"count", len(kept),
		"oldest", oldest.Time.Format(time.RFC3339),
		"window_end", c.endTime.Format(time.RFC3339),
	)

	// +1 second: fills sharing the oldest fill's second may still be
	// unfetched behind the page limit; the id filter drops the re-fetch.
	c.endTime = oldest.Time.Add(time.Second)
	c.oldestID = oldest.ID

	return kept, nil
}
