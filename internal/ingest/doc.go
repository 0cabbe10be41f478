// Package ingest turns source exports into raw watch items. Each source
// (CSV viewing-activity exports, a Jellyfin server) produces the same Item
// shape; resolution never sees source-specific structure.
package ingest
