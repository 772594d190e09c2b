// Package models defines the data model shared between the API client, the
// forms layer, and the terminal UI.
//
// [Product] mirrors the remote API's product resource. The id is assigned by
// the server and never generated locally; the local collection is a
// read-through cache that is re-derived from the server after every mutation.
package models
