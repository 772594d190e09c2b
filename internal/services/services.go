// package services implements the HTTP client for the remote product API.
//
// Every response from the API arrives in a {success, message, data} envelope.
// The client splits failures into two kinds: [*APIError] when a reachable
// server answered with success=false, and [shared.ErrNetwork] when the server
// was unreachable or the response was not an envelope at all. The client
// performs no retries and mutates neither session nor view state; callers
// interpret results.
package services

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError is a logic failure reported by a reachable server: success=false
// together with a human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
