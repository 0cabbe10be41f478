// Package records is the local SQLite store of resolved series, their
// episode indexes, and recorded watch events. It is the first stop for
// series resolution: catalog lookups only happen when nothing here matches.
//
// Watch events carry a unique dedupe key so re-importing the same export is
// harmless.
package records
