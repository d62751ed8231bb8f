// Package broadcast pushes fresh statistics to connected admin dashboards.
//
// A single goroutine owns the client set and processes commands from a
// channel, so no locking is needed. Submissions trigger a snapshot fetch that
// fans out to every connected WebSocket client.
package broadcast
