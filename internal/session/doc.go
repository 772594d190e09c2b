// Package session persists the client's only durable state: the bearer token
// issued at login and the sidebar-expanded UI preference.
//
// The presence of a token is the sole authorization signal. Nothing is
// validated locally; a stale or revoked token is discovered when a protected
// call fails on the remote side. The store is constructed once at startup and
// passed by reference to the API client and the UI, so no component reads the
// database directly.
package session
