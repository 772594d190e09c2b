package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mvribeiro/talpha/internal/forms"
)

const sidebarWidth = 22

// View renders the active view, overlaying the product modal when one is open.
func (m *Model) View() string {
	var body string

	switch {
	case m.modal != ModalNone:
		body = m.modalView()
	case m.view == SignInView:
		body = m.signInView()
	case m.view == SignUpView:
		body = m.signUpView()
	case m.view == DetailView:
		body = m.detailView()
	default:
		body = m.listView()
	}

	if m.sidebar && m.view != SignInView && m.view != SignUpView {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), body)
	}

	return body + "\n" + m.noticeView()
}

func (m *Model) signInView() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(renderFields(&m.signInFields, m.fieldErrs))

	if m.inlineErr != "" {
		b.WriteString(styles.err.Render(m.inlineErr))
		b.WriteString("\n")
	}
	if m.formState == forms.Submitting {
		b.WriteString(styles.warn.Render("signing in..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter submit · tab next field · ctrl+n create account · ctrl+c quit"))
	return styles.box.Render(b.String())
}

func (m *Model) signUpView() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Create account"))
	b.WriteString("\n")
	b.WriteString(renderFields(&m.signUpFields, m.fieldErrs))

	if m.inlineErr != "" {
		b.WriteString(styles.err.Render(m.inlineErr))
		b.WriteString("\n")
	}
	if m.formState == forms.Submitting {
		b.WriteString(styles.warn.Render("registering..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter submit · tab next field · esc back to sign in · ctrl+c quit"))
	return styles.box.Render(b.String())
}

func (m *Model) listView() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Products"))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(styles.label.Render("Search by id: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if len(m.products) == 0 {
		b.WriteString(styles.help.Render("no products registered"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.productList.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) detailView() string {
	if m.selected == nil {
		return m.listView()
	}

	p := m.selected
	rows := [][2]string{
		{"Id", p.ID},
		{"Name", p.Name},
		{"Price", fmt.Sprintf("$ %.2f", p.Price)},
		{"Stock", fmt.Sprintf("%d", p.Stock)},
		{"Description", p.Description},
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Product"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(styles.label.Render(fmt.Sprintf("%-12s", row[0])))
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("e edit · x delete · esc back · q quit"))
	return styles.box.Render(b.String())
}

func (m *Model) modalView() string {
	title := "Add product"
	hint := "enter save · tab next field · esc cancel"
	if m.modal == ModalEdit {
		title = "Edit product"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(renderFields(&m.productFields, m.fieldErrs))

	if m.formState == forms.Submitting {
		b.WriteString(styles.warn.Render("saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render(hint))
	return styles.box.Render(b.String())
}

func (m *Model) sidebarView() string {
	items := []string{
		styles.title.Render("talpha"),
		"products",
		"",
		styles.help.Render("b collapse"),
		styles.help.Render("ctrl+o sign out"),
	}
	return styles.box.Width(sidebarWidth).Render(strings.Join(items, "\n"))
}

func (m *Model) noticeView() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return styles.err.Render(m.notice)
	}
	return styles.ok.Render(m.notice)
}

// renderFields draws each labeled input with its validation message, if any.
func renderFields(fs *fieldSet, errs forms.FieldErrors) string {
	var b strings.Builder

	for i := range fs.inputs {
		b.WriteString(styles.label.Render(fs.labels[i]))
		b.WriteString("\n")
		b.WriteString(fs.inputs[i].View())
		b.WriteString("\n")
		if msg := errs.Get(fs.names[i]); msg != "" {
			b.WriteString(styles.err.Render(msg))
			b.WriteString("\n")
		}
	}

	return b.String()
}
