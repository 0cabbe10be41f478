// Package resolve turns raw platform series names and episode descriptions
// into canonical identities.
//
// Series resolution consults decision memory first, then local records, then
// catalog search with interactive disambiguation as the last resort. Episode
// matching is a pure scoring algorithm over a season-keyed episode index with
// fixed confidence policy: 0.7 and above auto-accepts, anything lower is the
// caller's problem to resolve interactively.
//
// Two sentinel errors shape control flow: ErrSkipped ends the current item,
// ErrCancelled ends the whole batch.
package resolve
