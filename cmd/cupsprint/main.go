package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	printingapp "github.com/openclaw/cupsprint/internal/application/printing"
	"github.com/openclaw/cupsprint/internal/infrastructure/config"
	"github.com/openclaw/cupsprint/internal/infrastructure/cups"
	"github.com/openclaw/cupsprint/internal/infrastructure/logger"
	"github.com/openclaw/cupsprint/internal/infrastructure/ppd"
	"github.com/openclaw/cupsprint/internal/infrastructure/printing"
	"github.com/openclaw/cupsprint/internal/interfaces/cli"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.New(&cli.Config{
		Bootstrap: bootstrap,
		Version:   version,
	}).Execute(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

// bootstrap loads configuration and wires the print service
func bootstrap(ctx context.Context, opts cli.GlobalOptions) (*cli.App, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Debug("configuration loaded",
		zap.String("version", version),
		zap.String("workspace", cfg.Workspace.Root),
		zap.Strings("ppd_dirs", cfg.PPD.Dirs),
		zap.Duration("cups_timeout", cfg.CUPS.Timeout))

	reader := ppd.NewReader(&ppd.ReaderConfig{
		Dirs:   cfg.PPD.Dirs,
		Logger: log.Named("ppd"),
	})
	client := cups.NewClient(&cups.ClientConfig{
		LpPath:        cfg.CUPS.Lp,
		LpstatPath:    cfg.CUPS.Lpstat,
		LpoptionsPath: cfg.CUPS.Lpoptions,
		Timeout:       cfg.CUPS.Timeout,
		Logger:        log.Named("cups"),
	})
	converter := printing.NewImageConverter(&printing.ConverterConfig{
		TempDir:     cfg.Convert.TempDir,
		JPEGQuality: cfg.Convert.JPEGQuality,
		Logger:      log.Named("convert"),
	})
	guard := printing.NewFileGuard(&printing.FileGuardConfig{
		WorkspaceRoot:   cfg.Workspace.Root,
		WorkspaceMarker: cfg.Workspace.Marker,
		TempDir:         cfg.Workspace.TempDir,
		Logger:          log.Named("guard"),
	})
	inspector := printing.NewPDFInspector(log.Named("pdf"))

	service := printingapp.NewPrintService(client, reader, converter, inspector, guard, log)

	return &cli.App{
		Service: service,
		Logger:  log,
		Close: func() {
			_ = logger.Sync(log)
		},
	}, nil
}
