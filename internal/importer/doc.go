// Package importer drives a batch of raw watch items through series and
// episode resolution and records the results. Items are processed strictly
// one at a time; a user cancel stops the batch, but decisions already
// persisted for earlier items stay committed.
package importer
