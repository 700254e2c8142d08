package api

import (
	"context"
	"fmt"
)

// GetAccount fetches account details. The collector calls it once before
// starting a run so bad credentials fail fast, before any pagination.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.get(ctx, "/account", nil, &account); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}
