// Package forms declares one typed schema per input form, each field carrying
// its constraint and error message up front.
//
// Validation is entirely client side and happens before any network call: an
// invalid form never reaches the API. Numeric product fields are kept as raw
// text while the user types and coerced on submission; coercion failures are
// validation errors, not API errors.
package forms

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mvribeiro/talpha/internal/models"
	"github.com/shopspring/decimal"
)

// State is the submission lifecycle of a form.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

// FieldErrors maps a field name to its human-readable error message. An empty
// map means the form passed validation.
type FieldErrors map[string]string

func (e FieldErrors) Get(field string) string { return e[field] }
func (e FieldErrors) Empty() bool             { return len(e) == 0 }

var validate = validator.New(validator.WithRequiredStructEnabled())

// messages maps "Field.tag" to the message surfaced next to the input.
var messages = map[string]string{
	"TaxNumber.required": "tax number is required",
	"Password.required":  "password is required",
	"Password.min":       "password must be at least 6 characters",
	"Name.required":      "name is required",
	"Name.min":           "name must be at least 3 characters",
	"Mail.required":      "e-mail is required",
	"Mail.email":         "e-mail is invalid",
	"Phone.required":     "phone is required",
}

// collect converts validator errors into [FieldErrors].
func collect(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}

	for _, fe := range invalid {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			errs[fe.Field()] = msg
		} else {
			errs[fe.Field()] = "invalid value"
		}
	}
	return errs
}

// SignIn collects login credentials.
type SignIn struct {
	TaxNumber string `validate:"required"`
	Password  string `validate:"required,min=6"`
}

func (f SignIn) Validate() FieldErrors {
	return collect(validate.Struct(f))
}

// SignUp collects registration details.
type SignUp struct {
	Name      string `validate:"required,min=3"`
	TaxNumber string `validate:"required"`
	Mail      string `validate:"required,email"`
	Phone     string `validate:"required"`
	Password  string `validate:"required,min=6"`
}

func (f SignUp) Validate() FieldErrors {
	return collect(validate.Struct(f))
}

// Input returns the registration payload. Call only after Validate passes.
func (f SignUp) Input() models.RegisterInput {
	return models.RegisterInput{
		Name:      f.Name,
		TaxNumber: f.TaxNumber,
		Mail:      f.Mail,
		Phone:     f.Phone,
		Password:  f.Password,
	}
}

// Product collects product fields as typed. Price and Stock stay raw text
// until submission.
type Product struct {
	Name        string
	Price       string
	Description string
	Stock       string
}

// FromModel pre-fills the form from an existing product for editing.
func FromModel(p models.Product) Product {
	return Product{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Description: p.Description,
		Stock:       strconv.Itoa(p.Stock),
	}
}

// Validate checks required fields and numeric coercion. Price must parse as a
// non-negative decimal, stock as a non-negative integer.
func (f Product) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["Name"] = "name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["Description"] = "description is required"
	}

	if raw := strings.TrimSpace(f.Price); raw == "" {
		errs["Price"] = "price is required"
	} else if d, err := decimal.NewFromString(raw); err != nil {
		errs["Price"] = "price must be a number"
	} else if d.IsNegative() {
		errs["Price"] = "price cannot be negative"
	}

	if raw := strings.TrimSpace(f.Stock); raw == "" {
		errs["Stock"] = "stock is required"
	} else if n, err := strconv.Atoi(raw); err != nil {
		errs["Stock"] = "stock must be an integer"
	} else if n < 0 {
		errs["Stock"] = "stock cannot be negative"
	}

	return errs
}

// Input coerces the form into the wire payload. Call only after Validate
// passes; coercion errors here would already have been reported.
func (f Product) Input() models.ProductInput {
	price, _ := decimal.NewFromString(strings.TrimSpace(f.Price))
	stock, _ := strconv.Atoi(strings.TrimSpace(f.Stock))

	return models.ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Price:       price.InexactFloat64(),
		Description: strings.TrimSpace(f.Description),
		Stock:       stock,
	}
}
