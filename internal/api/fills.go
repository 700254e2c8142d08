package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// PageLimit is the maximum number of fills the exchange returns per request,
// ordered newest first.
const PageLimit = 5000

// GetFills fetches one page of fills executed in [start, end).
// The exchange truncates the page at PageLimit, so callers paginate by
// shrinking end rather than growing start.
func (c *Client) GetFills(ctx context.Context, start, end time.Time) ([]Fill, error) {
	query := url.Values{}
	query.Set("start_time", strconv.FormatInt(start.Unix(), 10))
	query.Set("end_time", strconv.FormatInt(end.Unix(), 10))

	var fills []Fill
	if err := c.get(ctx, "/fills", query, &fills); err != nil {
		return nil, fmt.Errorf("get fills: %w", err)
	}

	return fills, nil
}

// FetchPage implements the fill cursor's page fetcher.
func (c *Client) FetchPage(ctx context.Context, start, end time.Time) ([]Fill, error) {
	return c.GetFills(ctx, start, end)
}
