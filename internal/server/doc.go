// Package server wires the HTTP surface: the public kiosk endpoints, the
// session-protected admin API, the dashboard WebSocket, and the
// observability endpoints.
package server
