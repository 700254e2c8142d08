// Package collector drains the fill cursor into the partitioned writer.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ikenox/ftx-history-collector/internal/fills"
	"github.com/ikenox/ftx-history-collector/internal/writer"
)

// Collector runs one backfill: a strictly serial pipeline from the
// cursor's page fetches to the writer's sink appends. There is no overlap
// between fetching the next page and writing the previous one.
type Collector struct {
	cursor *fills.Cursor
	writer *writer.PartitionedWriter
	logger *slog.Logger
}

// New creates a Collector.
func New(cursor *fills.Cursor, w *writer.PartitionedWriter, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		cursor: cursor,
		writer: w,
		logger: logger,
	}
}

// Run drains the cursor until exhaustion or the first error. The writer
// is finalized on every exit path; on failure, files already flushed stay
// on disk as-is.
func (c *Collector) Run(ctx context.Context) error {
	start := time.Now()
	var pages, count int

	for {
		batch, err := c.cursor.Next(ctx)
		if err != nil {
			c.closeWriter()
			return fmt.Errorf("fetch fills: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		pages++
		for _, f := range batch {
			if err := c.writer.Write(f); err != nil {
				c.closeWriter()
				return err
			}
		}
		count += len(batch)
	}

	if err := c.writer.Close(); err != nil {
		return err
	}

	c.logger.Info("collection complete",
		"pages", pages,
		"fills", count,
		"duration", time.Since(start),
	)
	return nil
}

// closeWriter finalizes the writer on an error path, keeping the original
// error primary.
func (c *Collector) closeWriter() {
	if err := c.writer.Close(); err != nil {
		c.logger.Warn("failed to close writer", "error", err)
	}
}
