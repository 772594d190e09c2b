package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mvribeiro/talpha/internal/models"
	"github.com/mvribeiro/talpha/internal/services"
	"github.com/mvribeiro/talpha/internal/session"
	"github.com/mvribeiro/talpha/internal/shared"
	"github.com/mvribeiro/talpha/internal/tasks"
	"github.com/urfave/cli/v3"
)

// authAPI is the authentication surface commands need from the client.
type authAPI interface {
	Login(ctx context.Context, taxNumber, password string) (string, error)
	Register(ctx context.Context, input models.RegisterInput) error
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	auth    authAPI
	api     services.ProductAPI
	session session.Store
	logger  *log.Logger
	output  io.Writer
	engine  *tasks.ExportEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Auth    authAPI
	API     services.ProductAPI
	Session session.Store
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		auth:    opts.Auth,
		api:     opts.API,
		session: opts.Session,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  tasks.NewExportEngine(opts.API),
	}
}

// SetLogger swaps the runner's logger, e.g. to redirect to a file while the
// TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, productsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireSession guards commands that need the session database.
func (r *Runner) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("%w: session database not available, run 'talpha setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
