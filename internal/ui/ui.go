package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mvribeiro/talpha/internal/forms"
	"github.com/mvribeiro/talpha/internal/models"
	"github.com/mvribeiro/talpha/internal/services"
	"github.com/mvribeiro/talpha/internal/session"
	"github.com/mvribeiro/talpha/internal/shared"
)

// ViewState represents the current view in the console.
type ViewState int

const (
	SignInView ViewState = iota
	SignUpView
	ListView
	DetailView
)

// Modal is the overlay state, orthogonal to list/detail but mutually
// exclusive with itself: at most one modal is open.
type Modal int

const (
	ModalNone Modal = iota
	ModalAdd
	ModalEdit
)

const (
	noticeTTL    = 2 * time.Second
	inlineErrTTL = 2100 * time.Millisecond
	reloadDelay  = 2 * time.Second
)

// AuthAPI is the authentication surface the console needs from the client.
type AuthAPI interface {
	Login(ctx context.Context, taxNumber, password string) (string, error)
	Register(ctx context.Context, input models.RegisterInput) error
}

// Model represents the console application state.
type Model struct {
	ctx     context.Context
	auth    AuthAPI
	api     services.ProductAPI
	session session.Store
	logger  *log.Logger

	view   ViewState
	modal  Modal
	width  int
	height int

	products    []models.Product
	productList list.Model
	selected    *models.Product

	searchInput textinput.Model
	searching   bool

	signInFields  fieldSet
	signUpFields  fieldSet
	productFields fieldSet
	formState     forms.State
	fieldErrs     forms.FieldErrors
	inlineErr     string

	notice    string
	noticeErr bool
	noticeSeq int
	inlineSeq int

	// fetchGen tags every product fetch. A mutation bumps the generation, so
	// results from requests issued before the mutation are discarded and the
	// post-mutation reload is always the last write to the collection.
	fetchGen int

	sidebar bool
	help    help.Model
	keys    keyMap
}

// NewModel creates a console model. The initial view is the product list when
// the session store already holds a token, the sign-in form otherwise.
func NewModel(ctx context.Context, auth AuthAPI, api services.ProductAPI, store session.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	search := textinput.New()
	search.Placeholder = "product id"
	search.CharLimit = 64
	search.Width = 24

	m := &Model{
		ctx:           ctx,
		auth:          auth,
		api:           api,
		session:       store,
		logger:        logger,
		view:          SignInView,
		searchInput:   search,
		signInFields:  newSignInFields(),
		signUpFields:  newSignUpFields(),
		productFields: newProductFields(),
		fieldErrs:     forms.FieldErrors{},
		sidebar:       store.SidebarExpanded(),
		help:          help.New(),
		keys:          newKeyMap(),
	}
	m.productList = newProductList(nil, 40, 20)

	if _, ok := store.Token(); ok {
		m.view = ListView
	}

	return m
}

// Init fetches the collection when a session already exists.
func (m *Model) Init() tea.Cmd {
	if m.view == ListView {
		return tea.Batch(m.fetchProducts(), textinput.Blink)
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.productList.SetSize(m.listWidth(), m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case productsFetchedMsg:
		return m.handleProductsFetched(msg)

	case productFetchedMsg:
		return m.handleProductFetched(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case reloadMsg:
		// A delete's delayed reload may fire after logout; signed-out views
		// issue no fetches.
		if m.view != ListView && m.view != DetailView {
			return m, nil
		}
		m.fetchGen++
		return m, m.fetchProducts()

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case inlineErrExpiredMsg:
		if msg.seq == m.inlineSeq {
			m.inlineErr = ""
		}
		return m, nil
	}

	if m.view == ListView && !m.searching && m.modal == ModalNone {
		var cmd tea.Cmd
		m.productList, cmd = m.productList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeys routes key presses to the active view or overlay.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != ModalNone {
		return m.handleModalKeys(msg)
	}

	switch m.view {
	case SignInView:
		return m.handleSignInKeys(msg)
	case SignUpView:
		return m.handleSignUpKeys(msg)
	case ListView:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

func (m *Model) handleSignInKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		m.view = SignUpView
		m.fieldErrs = forms.FieldErrors{}
		m.inlineErr = ""
		m.signUpFields.reset()
		return m, nil
	case "tab", "down":
		m.signInFields.next()
		return m, nil
	case "shift+tab", "up":
		m.signInFields.prev()
		return m, nil
	case "enter":
		// Submitting doubles as the single-in-flight guard: a second enter
		// while a login is pending is ignored, no cancellation needed.
		if m.formState == forms.Submitting {
			return m, nil
		}

		form := m.signInFields.signIn()
		if errs := form.Validate(); !errs.Empty() {
			m.fieldErrs = errs
			return m, nil
		}

		m.fieldErrs = forms.FieldErrors{}
		m.inlineErr = ""
		m.formState = forms.Submitting
		return m, m.login(form)
	}

	return m, m.signInFields.update(msg)
}

func (m *Model) handleSignUpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = SignInView
		m.fieldErrs = forms.FieldErrors{}
		m.inlineErr = ""
		m.signInFields.reset()
		return m, nil
	case "tab", "down":
		m.signUpFields.next()
		return m, nil
	case "shift+tab", "up":
		m.signUpFields.prev()
		return m, nil
	case "enter":
		if m.formState == forms.Submitting {
			return m, nil
		}

		form := m.signUpFields.signUp()
		if errs := form.Validate(); !errs.Empty() {
			m.fieldErrs = errs
			return m, nil
		}

		m.fieldErrs = forms.FieldErrors{}
		m.inlineErr = ""
		m.formState = forms.Submitting
		return m, m.register(form)
	}

	return m, m.signUpFields.update(msg)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "a":
		return m, m.openAddModal()
	case "e":
		if p, ok := m.highlighted(); ok {
			return m, m.openEditModal(p)
		}
		return m, nil
	case "x":
		if p, ok := m.highlighted(); ok {
			return m, m.deleteProduct(p.ID)
		}
		return m, nil
	case "b":
		return m, m.toggleSidebar()
	case "ctrl+o":
		return m.logout()
	}

	var cmd tea.Cmd
	m.productList, cmd = m.productList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		return m, nil
	case "enter":
		id := strings.TrimSpace(m.searchInput.Value())
		if id == "" {
			return m, nil
		}
		return m, m.searchProduct(id)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.backToList()
		return m, nil
	case "a":
		return m, m.openAddModal()
	case "e":
		if m.selected != nil {
			return m, m.openEditModal(*m.selected)
		}
		return m, nil
	case "x":
		if m.selected != nil {
			return m, m.deleteProduct(m.selected.ID)
		}
		return m, nil
	case "b":
		return m, m.toggleSidebar()
	case "ctrl+o":
		return m.logout()
	}
	return m, nil
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel clears everything, same as the back action: selection,
		// search text, and the form are gone and the list view owns the
		// screen again.
		m.closeModal()
		m.backToList()
		return m, nil
	case "tab", "down":
		m.productFields.next()
		return m, nil
	case "shift+tab", "up":
		m.productFields.prev()
		return m, nil
	case "enter":
		if m.formState == forms.Submitting {
			return m, nil
		}
		// The selection can vanish under an open edit modal when a scheduled
		// reload finds the product deleted remotely.
		if m.modal == ModalEdit && m.selected == nil {
			m.closeModal()
			m.backToList()
			return m, m.setNotice("product no longer exists", true)
		}

		form := m.productFields.product()
		if errs := form.Validate(); !errs.Empty() {
			m.fieldErrs = errs
			return m, nil
		}

		m.fieldErrs = forms.FieldErrors{}
		m.formState = forms.Submitting

		if m.modal == ModalEdit {
			return m, m.updateProduct(m.selected.ID, form.Input())
		}
		return m, m.createProduct(form.Input())
	}

	return m, m.productFields.update(msg)
}

// Message handlers

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The credential is never stored on failure.
		m.formState = forms.Failed
		m.inlineErr = loginErrMessage(msg.err)
		m.logger.Warn("login failed", "error", msg.err)
		return m, nil
	}

	if err := m.session.SetToken(msg.token); err != nil {
		m.formState = forms.Failed
		m.inlineErr = "failed to persist session: " + err.Error()
		return m, nil
	}

	m.formState = forms.Succeeded
	m.view = ListView
	m.signInFields.reset()
	m.inlineErr = ""
	m.fetchGen++
	return m, m.fetchProducts()
}

func (m *Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.formState = forms.Failed
		m.logger.Warn("registration failed", "error", msg.err)

		// Both a toast and an inline line, the latter clearing on its own.
		m.inlineSeq++
		seq := m.inlineSeq
		m.inlineErr = "registration failed, try again"
		return m, tea.Batch(
			m.setNotice("registration failed", true),
			tea.Tick(inlineErrTTL, func(time.Time) tea.Msg { return inlineErrExpiredMsg{seq: seq} }),
		)
	}

	// Registration never signs the user in; no token exists to store.
	m.formState = forms.Succeeded
	m.signUpFields.reset()
	return m, m.setNotice("account registered, sign in to continue", false)
}

func (m *Model) handleProductsFetched(msg productsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.fetchGen {
		// A mutation (or logout) superseded this fetch while it was in
		// flight; its result must not overwrite newer state.
		return m, nil
	}

	if msg.err != nil {
		m.products = nil
		m.productList = newProductList(nil, m.listWidth(), m.listHeight())
		m.logger.Error("failed to fetch products", "error", msg.err)
		return m, m.setNotice("failed to fetch products", true)
	}

	m.products = msg.products
	m.productList = newProductList(msg.products, m.listWidth(), m.listHeight())

	// A reload in detail view re-derives the selected product from the
	// fresh collection; if it is gone, so is the detail view, along with
	// any modal open over it.
	if m.view == DetailView && m.selected != nil {
		if p, ok := findProduct(msg.products, m.selected.ID); ok {
			m.selected = &p
		} else {
			m.closeModal()
			m.backToList()
		}
	}

	return m, nil
}

func (m *Model) handleProductFetched(msg productFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.fetchGen {
		return m, nil
	}

	if msg.err != nil {
		m.selected = nil
		m.view = ListView
		m.logger.Warn("product search failed", "error", msg.err)
		return m, m.setNotice("product not found", true)
	}

	m.selected = msg.product
	m.view = DetailView
	m.searching = false
	m.searchInput.Blur()
	return m, m.setNotice("product found", false)
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.formState = forms.Idle

	if msg.err != nil {
		// Stay in the modal so the user can correct and resubmit.
		m.logger.Warn("product mutation failed", "editing", msg.editing, "error", msg.err)
		return m, m.setNotice(mutationErrMessage(msg.editing, msg.err), true)
	}

	notice := "product added"
	if msg.editing {
		notice = "product updated"
	}

	m.closeModal()
	m.backToList()
	m.fetchGen++
	return m, tea.Batch(m.setNotice(notice, false), m.fetchProducts())
}

func (m *Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg.err != nil {
		m.logger.Warn("delete failed", "id", msg.id, "error", msg.err)
		cmds = append(cmds, m.setNotice("failed to delete product", true))
	} else {
		cmds = append(cmds, m.setNotice("product deleted", false))
	}

	// The collection is re-derived either way: a failed delete may still
	// have changed server state, and the local copy is not to be trusted
	// after any mutation attempt.
	cmds = append(cmds, tea.Tick(reloadDelay, func(time.Time) tea.Msg { return reloadMsg{} }))
	return m, tea.Batch(cmds...)
}

// Transitions

// openAddModal resets the product form and raises the add overlay.
func (m *Model) openAddModal() tea.Cmd {
	m.modal = ModalAdd
	m.productFields.reset()
	m.fieldErrs = forms.FieldErrors{}
	m.formState = forms.Idle
	return textinput.Blink
}

// openEditModal selects the product and pre-fills the form from it.
func (m *Model) openEditModal(p models.Product) tea.Cmd {
	m.modal = ModalEdit
	m.selected = &p
	m.productFields.reset()
	m.productFields.fill(forms.FromModel(p))
	m.fieldErrs = forms.FieldErrors{}
	m.formState = forms.Idle
	return textinput.Blink
}

func (m *Model) closeModal() {
	m.modal = ModalNone
	m.productFields.reset()
	m.fieldErrs = forms.FieldErrors{}
	m.formState = forms.Idle
}

// backToList is the shared back/cancel transition: no selection, no search
// text, list owns the screen.
func (m *Model) backToList() {
	m.view = ListView
	m.selected = nil
	m.searching = false
	m.searchInput.SetValue("")
	m.searchInput.Blur()
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Clear(); err != nil {
		m.logger.Error("failed to clear session", "error", err)
		return m, m.setNotice("failed to clear session", true)
	}

	m.view = SignInView
	m.modal = ModalNone
	m.products = nil
	m.selected = nil
	m.searching = false
	m.searchInput.SetValue("")
	m.signInFields.reset()
	m.fieldErrs = forms.FieldErrors{}
	m.inlineErr = ""
	m.formState = forms.Idle
	m.fetchGen++ // any in-flight fetch now resolves into the void
	return m, nil
}

func (m *Model) toggleSidebar() tea.Cmd {
	m.sidebar = !m.sidebar
	if err := m.session.SetSidebarExpanded(m.sidebar); err != nil {
		m.logger.Warn("failed to persist sidebar preference", "error", err)
	}
	m.productList.SetSize(m.listWidth(), m.listHeight())
	return nil
}

// Commands

func (m *Model) login(form forms.SignIn) tea.Cmd {
	return func() tea.Msg {
		token, err := m.auth.Login(m.ctx, form.TaxNumber, form.Password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) register(form forms.SignUp) tea.Cmd {
	input := form.Input()
	return func() tea.Msg {
		return registerResultMsg{err: m.auth.Register(m.ctx, input)}
	}
}

func (m *Model) fetchProducts() tea.Cmd {
	gen := m.fetchGen
	return func() tea.Msg {
		products, err := m.api.GetAllProducts(m.ctx)
		return productsFetchedMsg{gen: gen, products: products, err: err}
	}
}

func (m *Model) searchProduct(id string) tea.Cmd {
	gen := m.fetchGen
	return func() tea.Msg {
		product, err := m.api.GetProduct(m.ctx, id)
		return productFetchedMsg{gen: gen, product: product, err: err}
	}
}

func (m *Model) createProduct(input models.ProductInput) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{editing: false, err: m.api.CreateProduct(m.ctx, input)}
	}
}

func (m *Model) updateProduct(id string, input models.ProductInput) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{editing: true, err: m.api.UpdateProduct(m.ctx, id, input)}
	}
}

func (m *Model) deleteProduct(id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: m.api.DeleteProduct(m.ctx, id)}
	}
}

// setNotice shows a transient notification that dismisses itself.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

// Helpers

// highlighted returns the product under the list cursor.
func (m *Model) highlighted() (models.Product, bool) {
	item, ok := m.productList.SelectedItem().(productItem)
	if !ok {
		return models.Product{}, false
	}
	return item.product, true
}

func (m *Model) listWidth() int {
	w := m.width - 4
	if m.sidebar {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) listHeight() int {
	h := m.height - 8
	if h < 10 {
		h = 10
	}
	return h
}

func findProduct(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// loginErrMessage maps the error taxonomy to the single-line sign-in error.
func loginErrMessage(err error) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		return "authentication failed, check your credentials"
	}
	return "network error, try again later"
}

func mutationErrMessage(editing bool, err error) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if editing {
		return "failed to update product"
	}
	return "failed to add product"
}
