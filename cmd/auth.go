package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvribeiro/talpha/internal/forms"
	"github.com/mvribeiro/talpha/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in against the remote API and persists the bearer token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	form := forms.SignIn{
		TaxNumber: cmd.String("tax-number"),
		Password:  cmd.String("password"),
	}
	if errs := form.Validate(); !errs.Empty() {
		return fmt.Errorf("%w: %s", shared.ErrValidation, fieldErrLine(errs))
	}

	token, err := r.auth.Login(ctx, form.TaxNumber, form.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := r.session.SetToken(token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	r.logger.Info("session token stored")
	r.writePlain("✓ Signed in\n")
	return nil
}

// AuthRegister creates a new account. Registration never signs the user in;
// a follow-up login is required.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	form := forms.SignUp{
		Name:      cmd.String("name"),
		TaxNumber: cmd.String("tax-number"),
		Mail:      cmd.String("mail"),
		Phone:     cmd.String("phone"),
		Password:  cmd.String("password"),
	}
	if errs := form.Validate(); !errs.Empty() {
		return fmt.Errorf("%w: %s", shared.ErrValidation, fieldErrLine(errs))
	}

	if err := r.auth.Register(ctx, form.Input()); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account registered\n")
	r.writePlain("Run 'talpha auth login' to sign in\n")
	return nil
}

// AuthLogout clears the persisted session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared")
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthStatus reports whether a session token is stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	token, ok := r.session.Token()
	if !ok {
		r.writePlain("Not signed in\n")
		return nil
	}

	r.writePlain("Signed in (token %s)\n", maskToken(token))
	return nil
}

// maskToken keeps the first and last four characters of a token visible.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// fieldErrLine flattens validation errors into a single message.
func fieldErrLine(errs forms.FieldErrors) string {
	parts := make([]string, 0, len(errs))
	for field, msg := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(field), msg))
	}
	return strings.Join(parts, "; ")
}
