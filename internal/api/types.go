package api

import "time"

// Fill represents one executed trade leg from GET /fills.
//
// Optional attributes are pointers: the exchange omits or nulls them
// depending on market type, and they are passed through to output verbatim.
type Fill struct {
	Fee           float64  `json:"fee"`
	FeeCurrency   *string  `json:"feeCurrency"`
	FeeRate       *float64 `json:"feeRate"`
	Future        *string  `json:"future"`
	ID            uint64   `json:"id"`
	Liquidity     *string  `json:"liquidity"`
	Market        *string  `json:"market"`
	BaseCurrency  *string  `json:"baseCurrency"`
	QuoteCurrency *string  `json:"quoteCurrency"`
	OrderID       *uint64  `json:"orderId"`
	TradeID       *uint64  `json:"tradeId"`
	Price         float64  `json:"price"`
	Side          *string  `json:"side"`
	Size          float64  `json:"size"`

	// Time is the execution timestamp (RFC 3339 with offset, second
	// resolution is what the pagination window relies on).
	Time time.Time `json:"time"`

	Type *string `json:"type"`
}

// Account is the subset of GET /account used for the pre-flight
// credential check.
type Account struct {
	Username          string  `json:"username"`
	Collateral        float64 `json:"collateral"`
	TotalAccountValue float64 `json:"totalAccountValue"`
	Leverage          float64 `json:"leverage"`
}
