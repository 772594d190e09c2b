// Package ui implements the interactive console using bubbletea's Elm architecture.
//
// The view state machine mirrors the product screen:
//  1. [SignInView] / [SignUpView] : Credential forms gating everything else
//  2. [ListView] : Browse the full product collection, search by id
//  3. [DetailView] : Single product found via search
//  4. Add / Edit modals : Overlay forms, mutually exclusive with each other
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. All
// network work runs as commands; results come back as messages tagged with a
// fetch generation so a stale in-flight fetch can never overwrite state owned
// by a later mutation. After any mutation the collection is re-fetched
// wholesale: the server is the source of truth and local product objects are
// never trusted once a write has happened.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
