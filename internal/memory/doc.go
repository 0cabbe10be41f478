// Package memory persists resolution decisions so re-runs never re-ask.
//
// The store holds four maps in a single JSON document: series aliases (raw
// platform name to canonical identity), skipped series, manual episode
// mappings, and skipped episodes. The document is read in full when the store
// opens and rewritten in full (atomic temp-file rename, guarded by a file
// lock) after every mutation, because the surrounding batch may be killed
// between items.
//
// Entries are created only by decisions: alias creation, a user skip, or a
// user manual pick. High-confidence automatic matches never write here.
// Removal is an explicit operator action via the Remove methods.
package memory
