package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvribeiro/talpha/internal/forms"
)

// fieldSet binds a column of labeled text inputs to a form schema. Exactly one
// input is focused at a time; tab/shift+tab (or down/up) cycle focus.
type fieldSet struct {
	names  []string // schema field names, align with forms.FieldErrors keys
	labels []string
	inputs []textinput.Model
	focus  int
}

type fieldSpec struct {
	name        string
	label       string
	placeholder string
	secret      bool
}

func newFieldSet(specs []fieldSpec) fieldSet {
	fs := fieldSet{
		names:  make([]string, len(specs)),
		labels: make([]string, len(specs)),
		inputs: make([]textinput.Model, len(specs)),
	}

	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = 128
		in.Width = 40
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}

		fs.names[i] = spec.name
		fs.labels[i] = spec.label
		fs.inputs[i] = in
	}

	return fs
}

func newSignInFields() fieldSet {
	return newFieldSet([]fieldSpec{
		{name: "TaxNumber", label: "Tax number", placeholder: "CPF or CNPJ"},
		{name: "Password", label: "Password", secret: true},
	})
}

func newSignUpFields() fieldSet {
	return newFieldSet([]fieldSpec{
		{name: "Name", label: "Name"},
		{name: "TaxNumber", label: "Tax number", placeholder: "CPF or CNPJ"},
		{name: "Mail", label: "E-mail", placeholder: "you@example.com"},
		{name: "Phone", label: "Phone"},
		{name: "Password", label: "Password", secret: true},
	})
}

func newProductFields() fieldSet {
	return newFieldSet([]fieldSpec{
		{name: "Name", label: "Name"},
		{name: "Price", label: "Price", placeholder: "0.00"},
		{name: "Description", label: "Description"},
		{name: "Stock", label: "Stock", placeholder: "0"},
	})
}

// next moves focus to the following input, wrapping around.
func (f *fieldSet) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// prev moves focus to the preceding input, wrapping around.
func (f *fieldSet) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards a message to the focused input.
func (f *fieldSet) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the current text of the named field.
func (f *fieldSet) value(name string) string {
	for i, n := range f.names {
		if n == name {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// set replaces the text of the named field.
func (f *fieldSet) set(name, value string) {
	for i, n := range f.names {
		if n == name {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// reset clears every input and returns focus to the first field.
func (f *fieldSet) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// signIn builds the schema struct from the current input values.
func (f *fieldSet) signIn() forms.SignIn {
	return forms.SignIn{
		TaxNumber: f.value("TaxNumber"),
		Password:  f.value("Password"),
	}
}

// signUp builds the schema struct from the current input values.
func (f *fieldSet) signUp() forms.SignUp {
	return forms.SignUp{
		Name:      f.value("Name"),
		TaxNumber: f.value("TaxNumber"),
		Mail:      f.value("Mail"),
		Phone:     f.value("Phone"),
		Password:  f.value("Password"),
	}
}

// product builds the schema struct from the current input values.
func (f *fieldSet) product() forms.Product {
	return forms.Product{
		Name:        f.value("Name"),
		Price:       f.value("Price"),
		Description: f.value("Description"),
		Stock:       f.value("Stock"),
	}
}

// fill pre-loads the product form from a schema value.
func (f *fieldSet) fill(form forms.Product) {
	f.set("Name", form.Name)
	f.set("Price", form.Price)
	f.set("Description", form.Description)
	f.set("Stock", form.Stock)
}
