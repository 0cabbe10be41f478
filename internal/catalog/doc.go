// Package catalog talks to the TMDB API for series search and episode
// listings. Resolution code depends on the Searcher interface, never on the
// concrete client, so tests substitute fakes and never touch the network.
package catalog
