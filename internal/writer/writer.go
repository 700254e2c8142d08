package writer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ikenox/ftx-history-collector/internal/api"
)

// Sink is an append-only destination for fills.
type Sink interface {
	Write(f api.Fill) error
	Close() error
}

// SinkFactory opens the sink for a calendar date (midnight in the run's
// reference timezone).
type SinkFactory interface {
	Open(date time.Time) (Sink, error)
}

// PartitionedWriter routes each fill to the sink for its calendar date,
// holding at most one sink open at a time.
type PartitionedWriter struct {
	factory SinkFactory
	loc     *time.Location
	logger  *slog.Logger

	// Partition state: the date of the open sink, zero when none.
	date time.Time
	sink Sink
}

// NewPartitioned creates a writer that partitions by calendar day in loc.
func NewPartitioned(factory SinkFactory, loc *time.Location, logger *slog.Logger) *PartitionedWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PartitionedWriter{
		factory: factory,
		loc:     loc,
		logger:  logger,
	}
}

// Write appends f to the sink for f's calendar date. A date change closes
// the current sink before the next one is opened; any open, write, or
// close failure is terminal for the run.
func (w *PartitionedWriter) Write(f api.Fill) error {
	date := dateOf(f.Time, w.loc)

	if w.sink == nil || !date.Equal(w.date) {
		if err := w.rotate(date); err != nil {
			return err
		}
	}

	if err := w.sink.Write(f); err != nil {
		return fmt.Errorf("write fill %d: %w", f.ID, err)
	}
	return nil
}

// Close finalizes the open sink, if any. It is safe to call more than once.
func (w *PartitionedWriter) Close() error {
	if w.sink == nil {
		return nil
	}
	sink := w.sink
	w.sink = nil
	if err := sink.Close(); err != nil {
		return fmt.Errorf("close sink for %s: %w", w.date.Format(time.DateOnly), err)
	}
	return nil
}

func (w *PartitionedWriter) rotate(date time.Time) error {
	if w.sink != nil {
		sink := w.sink
		w.sink = nil
		if err := sink.Close(); err != nil {
			return fmt.Errorf("close sink for %s: %w", w.date.Format(time.DateOnly), err)
		}
	}

	sink, err := w.factory.Open(date)
	if err != nil {
		return fmt.Errorf("open sink for %s: %w", date.Format(time.DateOnly), err)
	}

	w.logger.Debug("opened sink", "date", date.Format(time.DateOnly))
	w.sink = sink
	w.date = date
	return nil
}

// dateOf truncates t to its calendar day in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
