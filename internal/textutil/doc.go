// Package textutil provides the text heuristics behind series and episode
// identity resolution.
//
// The primary use cases are:
//   - Normalizing raw platform series names into catalog-search-friendly queries
//   - Splitting multi-part episode titles ("Finale, Pt. 2") into base title and part
//   - Cleaning platform episode titles (series prefixes, pilot markers, generic labels)
//   - Scoring title similarity for the episode matcher's tier thresholds
//
// Everything here is a pure function. The similarity metric and the suffix
// grammar are contracts: matcher confidence tiers depend on their exact
// values, so changes here must be reflected in the matcher tests.
package textutil
