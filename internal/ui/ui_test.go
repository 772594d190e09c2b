package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvribeiro/talpha/internal/forms"
	"github.com/mvribeiro/talpha/internal/models"
	"github.com/mvribeiro/talpha/internal/services"
	tu "github.com/mvribeiro/talpha/internal/testing"
)

type mockAuth struct {
	LoginFn    func(ctx context.Context, taxNumber, password string) (string, error)
	RegisterFn func(ctx context.Context, input models.RegisterInput) error
	Calls      []string
}

func (m *mockAuth) Login(ctx context.Context, taxNumber, password string) (string, error) {
	m.Calls = append(m.Calls, "Login")
	if m.LoginFn != nil {
		return m.LoginFn(ctx, taxNumber, password)
	}
	return "jwt-abc", nil
}

func (m *mockAuth) Register(ctx context.Context, input models.RegisterInput) error {
	m.Calls = append(m.Calls, "Register")
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, input)
	}
	return nil
}

var testProducts = []models.Product{
	{ID: "p1", Name: "Widget", Price: 19.9, Stock: 3, Description: "a widget"},
	{ID: "p2", Name: "Gadget", Price: 120, Stock: 0, Description: "a gadget"},
}

func newTestModel(t *testing.T, auth *mockAuth, api *tu.MockProductAPI, store *tu.MemorySession) *Model {
	t.Helper()

	if auth == nil {
		auth = &mockAuth{}
	}
	if api == nil {
		api = &tu.MockProductAPI{}
	}
	if store == nil {
		store = &tu.MemorySession{}
	}

	m := NewModel(context.Background(), auth, api, store, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// withProducts puts the model in the list view with a loaded collection.
func withProducts(t *testing.T, m *Model, products []models.Product) {
	t.Helper()
	m.view = ListView
	m.Update(productsFetchedMsg{gen: m.fetchGen, products: products})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitialView(t *testing.T) {
	t.Run("starts at sign-in without a token", func(t *testing.T) {
		m := newTestModel(t, nil, nil, &tu.MemorySession{})
		if m.view != SignInView {
			t.Errorf("expected sign-in view, got %v", m.view)
		}
	})

	t.Run("starts at the list with a stored token", func(t *testing.T) {
		m := newTestModel(t, nil, nil, &tu.MemorySession{TokenValue: "jwt-abc"})
		if m.view != ListView {
			t.Errorf("expected list view, got %v", m.view)
		}
		if m.Init() == nil {
			t.Error("expected an initial fetch command")
		}
	})
}

func TestSignIn(t *testing.T) {
	t.Run("invalid form never reaches the API", func(t *testing.T) {
		auth := &mockAuth{}
		m := newTestModel(t, auth, nil, nil)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no command for an invalid form")
		}
		if len(auth.Calls) != 0 {
			t.Errorf("expected no auth calls, got %v", auth.Calls)
		}
		if m.fieldErrs.Get("TaxNumber") == "" {
			t.Error("expected a tax number error")
		}
	})

	t.Run("success stores the token and shows the list", func(t *testing.T) {
		store := &tu.MemorySession{}
		m := newTestModel(t, nil, nil, store)

		_, cmd := m.Update(loginResultMsg{token: "jwt-abc"})
		if token, _ := store.Token(); token != "jwt-abc" {
			t.Errorf("expected stored token, got %q", token)
		}
		if m.view != ListView {
			t.Errorf("expected list view, got %v", m.view)
		}
		if cmd == nil {
			t.Error("expected a fetch command after login")
		}
	})

	t.Run("failure leaves the store untouched", func(t *testing.T) {
		store := &tu.MemorySession{}
		m := newTestModel(t, nil, nil, store)

		m.Update(loginResultMsg{err: &services.APIError{Status: 401, Message: "invalid credentials"}})
		if _, ok := store.Token(); ok {
			t.Error("expected no token after a failed login")
		}
		if m.view != SignInView {
			t.Errorf("expected to stay on sign-in, got %v", m.view)
		}
		if m.inlineErr != "authentication failed, check your credentials" {
			t.Errorf("unexpected inline error %q", m.inlineErr)
		}
	})

	t.Run("network failure reads differently from rejection", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)

		m.Update(loginResultMsg{err: errors.New("connection refused")})
		if m.inlineErr != "network error, try again later" {
			t.Errorf("unexpected inline error %q", m.inlineErr)
		}
	})

	t.Run("submit while pending is ignored", func(t *testing.T) {
		auth := &mockAuth{}
		m := newTestModel(t, auth, nil, nil)
		m.signInFields.set("TaxNumber", "12345678900")
		m.signInFields.set("Password", "secret1")
		m.formState = forms.Submitting

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected the second submit to be swallowed")
		}
	})
}

func TestSignUp(t *testing.T) {
	t.Run("ctrl+n opens the sign-up form", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
		if m.view != SignUpView {
			t.Errorf("expected sign-up view, got %v", m.view)
		}
	})

	t.Run("success never stores a token", func(t *testing.T) {
		store := &tu.MemorySession{}
		m := newTestModel(t, nil, nil, store)
		m.view = SignUpView

		m.Update(registerResultMsg{})
		if _, ok := store.Token(); ok {
			t.Error("registration must not sign the user in")
		}
		if m.notice == "" {
			t.Error("expected a confirmation notice")
		}
	})

	t.Run("failure raises a self-clearing inline error", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		m.view = SignUpView

		_, cmd := m.Update(registerResultMsg{err: errors.New("boom")})
		if m.inlineErr == "" {
			t.Error("expected an inline error")
		}
		if cmd == nil {
			t.Error("expected the expiry tick command")
		}

		seq := m.inlineSeq
		m.Update(inlineErrExpiredMsg{seq: seq})
		if m.inlineErr != "" {
			t.Error("expected the inline error to clear")
		}
	})

	t.Run("esc returns to sign-in", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		m.view = SignUpView

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != SignInView {
			t.Errorf("expected sign-in view, got %v", m.view)
		}
	})
}

func TestProductList(t *testing.T) {
	t.Run("fetch failure empties the collection and notifies", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		m.Update(productsFetchedMsg{gen: m.fetchGen, err: errors.New("boom")})
		if len(m.products) != 0 {
			t.Error("expected an empty collection after a failed fetch")
		}
		if m.notice != "failed to fetch products" {
			t.Errorf("unexpected notice %q", m.notice)
		}
	})

	t.Run("stale fetch results are dropped", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		staleGen := m.fetchGen
		m.fetchGen++
		m.Update(productsFetchedMsg{gen: staleGen, products: nil, err: errors.New("slow response")})

		if len(m.products) != 2 {
			t.Error("expected the stale result to be ignored")
		}
		if m.notice != "" {
			t.Errorf("expected no notice for a stale result, got %q", m.notice)
		}
	})

	t.Run("search hit opens the detail view", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		p := testProducts[0]
		m.Update(productFetchedMsg{gen: m.fetchGen, product: &p})
		if m.view != DetailView {
			t.Errorf("expected detail view, got %v", m.view)
		}
		if m.selected == nil || m.selected.ID != "p1" {
			t.Errorf("expected p1 selected, got %+v", m.selected)
		}
	})

	t.Run("search miss stays on the list with a notification", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		m.Update(productFetchedMsg{gen: m.fetchGen, err: &services.APIError{Status: 404, Message: "not found"}})
		if m.view != ListView {
			t.Errorf("expected to stay on the list, got %v", m.view)
		}
		if m.selected != nil {
			t.Error("expected no selection after a miss")
		}
		if m.notice != "product not found" {
			t.Errorf("unexpected notice %q", m.notice)
		}
	})

	t.Run("back from detail clears selection and search", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		p := testProducts[1]
		m.Update(productFetchedMsg{gen: m.fetchGen, product: &p})
		m.searchInput.SetValue("p2")

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != ListView {
			t.Errorf("expected list view, got %v", m.view)
		}
		if m.selected != nil {
			t.Error("expected selection cleared")
		}
		if m.searchInput.Value() != "" {
			t.Error("expected search text cleared")
		}
	})

	t.Run("logout clears the session and returns to sign-in", func(t *testing.T) {
		store := &tu.MemorySession{TokenValue: "jwt-abc"}
		m := newTestModel(t, nil, nil, store)
		withProducts(t, m, testProducts)

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
		if _, ok := store.Token(); ok {
			t.Error("expected the token cleared")
		}
		if m.view != SignInView {
			t.Errorf("expected sign-in view, got %v", m.view)
		}
	})

	t.Run("sidebar toggle persists the preference", func(t *testing.T) {
		store := &tu.MemorySession{TokenValue: "jwt-abc"}
		m := newTestModel(t, nil, nil, store)
		withProducts(t, m, testProducts)

		m.Update(keyRune('b'))
		if !store.Sidebar {
			t.Error("expected the preference persisted")
		}
		m.Update(keyRune('b'))
		if store.Sidebar {
			t.Error("expected the preference persisted on toggle back")
		}
	})
}

func TestProductModals(t *testing.T) {
	t.Run("add opens an empty form", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		m.Update(keyRune('a'))
		if m.modal != ModalAdd {
			t.Errorf("expected add modal, got %v", m.modal)
		}
		if m.productFields.value("Name") != "" {
			t.Error("expected an empty form")
		}
	})

	t.Run("edit pre-fills the form from the highlighted product", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)

		m.Update(keyRune('e'))
		if m.modal != ModalEdit {
			t.Errorf("expected edit modal, got %v", m.modal)
		}
		if m.productFields.value("Name") != "Widget" {
			t.Errorf("expected pre-filled name, got %q", m.productFields.value("Name"))
		}
		if m.productFields.value("Price") != "19.9" {
			t.Errorf("expected pre-filled price, got %q", m.productFields.value("Price"))
		}
	})

	t.Run("submitting an edit patches the right product", func(t *testing.T) {
		var gotID string
		var gotInput models.ProductInput
		api := &tu.MockProductAPI{
			UpdateFn: func(ctx context.Context, id string, input models.ProductInput) error {
				gotID, gotInput = id, input
				return nil
			},
		}
		m := newTestModel(t, nil, api, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('e'))
		m.productFields.set("Stock", "7")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a submit command")
		}
		cmd()

		if gotID != "p1" {
			t.Errorf("expected update for p1, got %q", gotID)
		}
		if gotInput.Stock != 7 || gotInput.Name != "Widget" {
			t.Errorf("unexpected payload %+v", gotInput)
		}
	})

	t.Run("invalid form stays in the modal with field errors", func(t *testing.T) {
		api := &tu.MockProductAPI{}
		m := newTestModel(t, nil, api, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('a'))
		m.productFields.set("Price", "abc")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no command for an invalid form")
		}
		if m.modal != ModalAdd {
			t.Error("expected to stay in the modal")
		}
		if m.fieldErrs.Get("Price") != "price must be a number" {
			t.Errorf("unexpected price error %q", m.fieldErrs.Get("Price"))
		}
		if len(api.Calls) != 0 {
			t.Errorf("expected no API calls, got %v", api.Calls)
		}
	})

	t.Run("successful mutation closes the modal and re-fetches", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('a'))
		before := m.fetchGen

		_, cmd := m.Update(mutationDoneMsg{editing: false})
		if m.modal != ModalNone {
			t.Error("expected the modal closed")
		}
		if m.view != ListView {
			t.Errorf("expected list view, got %v", m.view)
		}
		if m.fetchGen != before+1 {
			t.Error("expected the fetch generation bumped")
		}
		if cmd == nil {
			t.Error("expected a re-fetch command")
		}
	})

	t.Run("failed mutation keeps the modal open", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('a'))

		m.Update(mutationDoneMsg{editing: false, err: &services.APIError{Status: 409, Message: "name taken"}})
		if m.modal != ModalAdd {
			t.Error("expected to stay in the modal")
		}
		if m.notice != "name taken" {
			t.Errorf("expected the server message surfaced, got %q", m.notice)
		}
	})

	t.Run("reload dropping the product closes an open edit modal", func(t *testing.T) {
		api := &tu.MockProductAPI{}
		m := newTestModel(t, nil, api, nil)
		withProducts(t, m, testProducts)
		p := testProducts[0]
		m.Update(productFetchedMsg{gen: m.fetchGen, product: &p})
		m.Update(keyRune('e'))

		// The collection comes back without p1 while the modal is open.
		m.Update(productsFetchedMsg{gen: m.fetchGen, products: testProducts[1:]})
		if m.modal != ModalNone {
			t.Error("expected the modal closed with its product gone")
		}
		if m.selected != nil {
			t.Error("expected selection cleared")
		}
		if m.view != ListView {
			t.Errorf("expected list view, got %v", m.view)
		}

		// A submit racing the reload must not reach the API.
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			cmd()
		}
		for _, call := range api.Calls {
			if strings.HasPrefix(call, "UpdateProduct") {
				t.Errorf("expected no update call, got %v", api.Calls)
			}
		}
	})

	t.Run("submitting an edit without a selection backs out", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('e'))
		m.selected = nil

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a notice command")
		}
		if m.modal != ModalNone {
			t.Error("expected the modal closed")
		}
		if m.notice != "product no longer exists" {
			t.Errorf("unexpected notice %q", m.notice)
		}
	})

	t.Run("cancel clears selection and search", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		m.Update(keyRune('e'))
		m.searchInput.SetValue("p1")

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.modal != ModalNone {
			t.Error("expected the modal closed")
		}
		if m.selected != nil {
			t.Error("expected selection cleared")
		}
		if m.searchInput.Value() != "" {
			t.Error("expected search text cleared")
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("delete issues the call for the highlighted product", func(t *testing.T) {
		api := &tu.MockProductAPI{}
		m := newTestModel(t, nil, api, nil)
		withProducts(t, m, testProducts)

		_, cmd := m.Update(keyRune('x'))
		if cmd == nil {
			t.Fatal("expected a delete command")
		}
		cmd()

		if len(api.Calls) != 1 || api.Calls[0] != "DeleteProduct:p1" {
			t.Errorf("expected DeleteProduct:p1, got %v", api.Calls)
		}
	})

	t.Run("both outcomes schedule a reload", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			err  error
		}{
			{name: "success", err: nil},
			{name: "failure", err: errors.New("boom")},
		} {
			t.Run(tc.name, func(t *testing.T) {
				m := newTestModel(t, nil, nil, nil)
				withProducts(t, m, testProducts)

				_, cmd := m.Update(deleteDoneMsg{id: "p1", err: tc.err})
				if cmd == nil {
					t.Fatal("expected a scheduled reload")
				}
				if m.notice == "" {
					t.Error("expected a notice")
				}
			})
		}
	})

	t.Run("a reload firing after logout issues no fetch", func(t *testing.T) {
		store := &tu.MemorySession{TokenValue: "jwt-abc"}
		api := &tu.MockProductAPI{}
		m := newTestModel(t, nil, api, store)
		withProducts(t, m, testProducts)

		m.Update(deleteDoneMsg{id: "p1"})
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

		// The delete's delayed reload fires on the sign-in view.
		_, cmd := m.Update(reloadMsg{})
		if cmd != nil {
			t.Error("expected no command from a signed-out reload")
		}
		if len(api.Calls) != 0 {
			t.Errorf("expected no API calls after logout, got %v", api.Calls)
		}
		if m.view != SignInView {
			t.Errorf("expected sign-in view, got %v", m.view)
		}
	})

	t.Run("reload bumps the generation and re-fetches", func(t *testing.T) {
		api := &tu.MockProductAPI{}
		m := newTestModel(t, nil, api, nil)
		withProducts(t, m, testProducts)
		before := m.fetchGen

		_, cmd := m.Update(reloadMsg{})
		if m.fetchGen != before+1 {
			t.Error("expected the fetch generation bumped")
		}
		if cmd == nil {
			t.Fatal("expected a fetch command")
		}
		cmd()
		if len(api.Calls) != 1 || api.Calls[0] != "GetAllProducts" {
			t.Errorf("expected GetAllProducts, got %v", api.Calls)
		}
	})

	t.Run("reloaded collection refreshes the detail view", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)
		withProducts(t, m, testProducts)
		p := testProducts[0]
		m.Update(productFetchedMsg{gen: m.fetchGen, product: &p})

		updated := []models.Product{{ID: "p1", Name: "Widget v2", Price: 21, Stock: 5}}
		m.Update(productsFetchedMsg{gen: m.fetchGen, products: updated})
		if m.selected == nil || m.selected.Name != "Widget v2" {
			t.Errorf("expected the selection refreshed, got %+v", m.selected)
		}

		// A deleted product drops the detail view entirely.
		m.Update(productsFetchedMsg{gen: m.fetchGen, products: nil})
		if m.view != ListView || m.selected != nil {
			t.Error("expected fallback to the list when the product is gone")
		}
	})
}

func TestNotices(t *testing.T) {
	t.Run("notices expire by sequence", func(t *testing.T) {
		m := newTestModel(t, nil, nil, nil)

		m.setNotice("first", false)
		firstSeq := m.noticeSeq
		m.setNotice("second", false)

		// The first notice's expiry must not clear the second.
		m.Update(noticeExpiredMsg{seq: firstSeq})
		if m.notice != "second" {
			t.Errorf("expected the newer notice kept, got %q", m.notice)
		}

		m.Update(noticeExpiredMsg{seq: m.noticeSeq})
		if m.notice != "" {
			t.Error("expected the notice cleared")
		}
	})
}
