package ui

import (
	"github.com/mvribeiro/talpha/internal/models"
)

// loginResultMsg carries the outcome of a sign-in submission.
type loginResultMsg struct {
	token string
	err   error
}

// registerResultMsg carries the outcome of a sign-up submission.
type registerResultMsg struct {
	err error
}

// productsFetchedMsg carries a fetched collection. gen identifies the fetch
// generation that issued the request; stale generations are dropped.
type productsFetchedMsg struct {
	gen      int
	products []models.Product
	err      error
}

// productFetchedMsg carries a single product found (or not) via search.
type productFetchedMsg struct {
	gen     int
	product *models.Product
	err     error
}

// mutationDoneMsg carries the outcome of a create or update submission.
type mutationDoneMsg struct {
	editing bool
	err     error
}

// deleteDoneMsg carries the outcome of a delete action.
type deleteDoneMsg struct {
	id  string
	err error
}

// reloadMsg triggers the post-mutation collection re-fetch.
type reloadMsg struct{}

// noticeExpiredMsg clears the transient notification.
type noticeExpiredMsg struct{ seq int }

// inlineErrExpiredMsg clears the sign-up inline error.
type inlineErrExpiredMsg struct{ seq int }
