// Command rewatch imports TV watch history from platform exports and media
// servers, resolves each record to a canonical series and episode, and keeps
// a local record plus one markdown note per watch.
package main
