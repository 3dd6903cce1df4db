package cups

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"go.uber.org/zap"
)

const (
	defaultLpPath        = "lp"
	defaultLpstatPath    = "lpstat"
	defaultLpoptionsPath = "lpoptions"
)

// ClientConfig contains configuration for the CUPS client
type ClientConfig struct {
	// LpPath is the lp binary, resolved through PATH if not absolute
	LpPath string
	// LpstatPath is the lpstat binary
	LpstatPath string
	// LpoptionsPath is the lpoptions binary
	LpoptionsPath string
	// Timeout bounds each command (0 = no timeout)
	Timeout time.Duration
	// Runner executes the commands. Default: ExecRunner
	Runner Runner
	// Logger for debug output
	Logger *zap.Logger
}

// Client translates printing intents into CUPS command invocations
type Client struct {
	config *ClientConfig
	runner Runner
	logger *zap.Logger
}

// NewClient creates a new CUPS client
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = &ClientConfig{}
	}

	if config.LpPath == "" {
		config.LpPath = defaultLpPath
	}
	if config.LpstatPath == "" {
		config.LpstatPath = defaultLpstatPath
	}
	if config.LpoptionsPath == "" {
		config.LpoptionsPath = defaultLpoptionsPath
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runner := config.Runner
	if runner == nil {
		runner = NewExecRunner(logger)
	}

	return &Client{
		config: config,
		runner: runner,
		logger: logger,
	}
}

func (c *Client) run(ctx context.Context, name string, args ...string) (*Result, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}
	return c.runner.Run(ctx, name, args...)
}

// DefaultPrinter returns the system default destination. ok is false when
// none is configured or lpstat exits non-zero.
func (c *Client) DefaultPrinter(ctx context.Context) (name string, ok bool, err error) {
	res, err := c.run(ctx, c.config.LpstatPath, "-d")
	if err != nil {
		return "", false, err
	}
	if !res.Success() {
		c.logger.Debug("lpstat -d failed, treating as no default",
			zap.Int("exit_code", res.ExitCode))
		return "", false, nil
	}
	name, ok = ParseDefaultDestination(res.Stdout)
	return name, ok, nil
}

// ListPrinters returns every printer lpstat knows about. The default flag is
// taken from the same lpstat output.
func (c *Client) ListPrinters(ctx context.Context) ([]printing.Printer, error) {
	res, err := c.run(ctx, c.config.LpstatPath, "-p", "-d")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, NewCommandError(ErrCodeCommandFailed, "Could not list printers", res.Stderr, nil)
	}

	defaultName, _ := ParseDefaultDestination(res.Stdout)
	printers := ParsePrinterList(res.Stdout, defaultName)
	c.logger.Debug("printers listed", zap.Int("count", len(printers)), zap.String("default", defaultName))
	return printers, nil
}

// Submit queues file on printer with the media and duplex of spec and
// returns the job id, which is empty when lp did not report one.
func (c *Client) Submit(ctx context.Context, printer, file string, spec *printing.PrinterSpec) (string, error) {
	name, err := printing.ValidatePrinterName(printer)
	if err != nil {
		return "", err
	}
	if spec == nil {
		spec = printing.FallbackSpec()
	}

	args := BuildSubmitArgs(name, file, spec.Media, spec.Duplex)
	res, err := c.run(ctx, c.config.LpPath, args...)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("lp exited with status %d", res.ExitCode)
		}
		return "", NewCommandError(ErrCodeCommandFailed, msg, res.Stderr, nil)
	}

	jobID, ok := ParseJobID(res.Stdout)
	if !ok {
		c.logger.Debug("lp output carried no job id", zap.String("stdout", res.Stdout))
	}
	return jobID, nil
}

// Options returns the printer's configurable options as reported by lpoptions
func (c *Client) Options(ctx context.Context, printer string) ([]printing.PrinterOption, error) {
	name, err := printing.ValidatePrinterName(printer)
	if err != nil {
		return nil, err
	}

	res, err := c.run(ctx, c.config.LpoptionsPath, "-p", name, "-l")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, NewCommandError(ErrCodeCommandFailed,
			fmt.Sprintf("Could not get options for %s", name), res.Stderr, nil)
	}
	return ParseOptions(res.Stdout), nil
}
