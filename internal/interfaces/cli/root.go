// Package cli implements the cupsprint command line: cobra commands that
// call the print service and render results as text or JSON.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/openclaw/cupsprint/internal/application/printing"
	"github.com/openclaw/cupsprint/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// errReported marks a failure whose output has already been written
var errReported = errors.New("reported")

// PrintService is the application service behind the commands
type PrintService interface {
	ListPrinters(ctx context.Context) ([]printing.PrinterResponse, error)
	GetInfo(ctx context.Context, printer string) (*printing.InfoResponse, error)
	GetOptions(ctx context.Context, printer string) (*printing.OptionsResponse, error)
	Print(ctx context.Context, req printing.PrintRequest) (*printing.PrintResponse, error)
}

var _ PrintService = (*printing.PrintService)(nil)

// GlobalOptions are the flags shared by every command
type GlobalOptions struct {
	ConfigFile string
	LogLevel   string
}

// App is what a command needs once configuration is loaded
type App struct {
	Service PrintService
	Logger  *zap.Logger
	// Close flushes and releases resources; may be nil
	Close func()
}

// Bootstrap loads configuration and builds the App
type Bootstrap func(ctx context.Context, opts GlobalOptions) (*App, error)

// Config contains configuration for the CLI
type Config struct {
	Bootstrap Bootstrap
	Version   string
	Stdout    io.Writer
	Stderr    io.Writer
}

// CLI runs one cupsprint invocation
type CLI struct {
	bootstrap Bootstrap
	version   string
	stdout    io.Writer
	stderr    io.Writer

	opts       GlobalOptions
	jsonOutput bool
	app        *App
}

// New creates a new CLI
func New(config *Config) *CLI {
	c := &CLI{
		bootstrap: config.Bootstrap,
		version:   config.Version,
		stdout:    config.Stdout,
		stderr:    config.Stderr,
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	if c.version == "" {
		c.version = "dev"
	}
	return c
}

// Execute runs the command line and returns the process exit code
func (c *CLI) Execute(ctx context.Context, args []string) int {
	root := c.newRootCommand()
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if c.app != nil && c.app.Close != nil {
		c.app.Close()
	}
	if err == nil {
		return ExitOK
	}
	if !errors.Is(err, errReported) {
		c.report(cmd, err)
	}
	return ExitFailure
}

func (c *CLI) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cupsprint",
		Short:         "Print images and PDFs to any CUPS printer",
		Version:       c.version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errReported
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ConfigFile, "config", "", "config file (default: ./cupsprint.toml, ~/.config/cupsprint, /etc/cupsprint)")
	flags.StringVar(&c.opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&c.jsonOutput, "json", false, "JSON output")

	root.AddCommand(
		c.newListCommand(),
		c.newInfoCommand(),
		c.newOptionsCommand(),
		c.newPrintCommand(),
	)
	return root
}

// presenter returns the output writer for the current flags
func (c *CLI) presenter() *Presenter {
	return NewPresenter(c.stdout, c.stderr, c.jsonOutput)
}

// load bootstraps the App once and returns a context carrying the
// invocation logger
func (c *CLI) load(cmd *cobra.Command) (context.Context, PrintService, error) {
	ctx := cmd.Context()
	if c.app == nil {
		if c.bootstrap == nil {
			return nil, nil, errors.New("no service configured")
		}
		app, err := c.bootstrap(ctx, c.opts)
		if err != nil {
			return nil, nil, err
		}
		c.app = app
	}

	log := c.app.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, log = logger.WithInvocationID(ctx, log, logger.NewInvocationID())
	log.Debug("command started", zap.String("command", cmd.Name()))
	return ctx, c.app.Service, nil
}

// report writes an error that no command has rendered yet
func (c *CLI) report(cmd *cobra.Command, err error) {
	p := c.presenter()

	var convErr *printing.ConversionError
	switch {
	case cmd != nil && cmd.Name() == "print" && p.JSON():
		_ = p.writeJSON(printing.PrintResponse{OK: false, Error: err.Error()})
	case errors.As(err, &convErr) && !p.JSON():
		p.Raw(err.Error())
	default:
		p.Error(err.Error())
	}
}
