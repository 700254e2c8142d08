// Package writer streams fills into date-partitioned, append-only CSV
// sinks, one file per (account, calendar date).
//
// At most one sink is open at any moment. The writer rotates whenever the
// incoming fill's calendar date differs from the open sink's date; it
// never assumes dates arrive monotonically. Rows land in natural fetch
// order, which is newest first within a day.
package writer
