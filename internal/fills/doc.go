// Package fills implements the backward-paginating fill cursor.
//
// The exchange returns at most api.PageLimit fills per request, newest
// first, so querying with a wide start bound risks silently truncated
// pages. The cursor instead always queries [epoch, end) and shrinks the
// end bound to one second past the oldest fill of the previous page. The
// one-second overlap re-fetches fills that share the boundary second; the
// overlap is removed by filtering on the oldest fill id already seen.
package fills
