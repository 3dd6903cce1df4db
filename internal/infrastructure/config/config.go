package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configName = "cupsprint"
	envPrefix  = "CUPSPRINT"
	// WorkspaceEnv names the agent workspace; it feeds workspace.root
	WorkspaceEnv = "OPENCLAW_WORKSPACE"
)

// Config holds all application configuration
type Config struct {
	Workspace WorkspaceConfig
	PPD       PPDConfig
	CUPS      CUPSConfig
	Convert   ConvertConfig
	Log       LogConfig
}

// WorkspaceConfig holds the directories files may be printed from
type WorkspaceConfig struct {
	Root    string `key:"workspace.root"`
	Marker  string `key:"workspace.marker" validate:"required,excludesall=/\\"`
	TempDir string `key:"workspace.temp_dir" validate:"required"`
}

// PPDConfig holds PPD lookup settings
type PPDConfig struct {
	Dirs []string `key:"ppd.dirs" validate:"required,min=1,dive,required"`
}

// CUPSConfig holds the CUPS client programs
type CUPSConfig struct {
	Lp        string        `key:"cups.lp" validate:"required"`
	Lpstat    string        `key:"cups.lpstat" validate:"required"`
	Lpoptions string        `key:"cups.lpoptions" validate:"required"`
	Timeout   time.Duration `key:"cups.timeout" validate:"gte=0"` // 0 = none
}

// ConvertConfig holds image conversion settings
type ConvertConfig struct {
	TempDir     string `key:"convert.temp_dir" validate:"required"`
	JPEGQuality int    `key:"convert.jpeg_quality" validate:"gte=1,lte=100"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `key:"log.level" validate:"oneof=debug info warn error"`
	Format string `key:"log.format" validate:"oneof=json console"`
	Output string `key:"log.output" validate:"required"` // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with CUPSPRINT_ prefix (e.g., CUPSPRINT_LOG_LEVEL),
// and OPENCLAW_WORKSPACE for workspace.root
// 2. configFile if given, otherwise cupsprint.toml from ., ~/.config/cupsprint
// or /etc/cupsprint
// 3. Built-in defaults
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.AddConfigPath(filepath.Join("/etc", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and env vars apply
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("workspace.root", envPrefix+"_WORKSPACE_ROOT", WorkspaceEnv); err != nil {
		return nil, err
	}

	cfg := &Config{
		Workspace: WorkspaceConfig{
			Root:    v.GetString("workspace.root"),
			Marker:  v.GetString("workspace.marker"),
			TempDir: v.GetString("workspace.temp_dir"),
		},
		PPD: PPDConfig{
			Dirs: v.GetStringSlice("ppd.dirs"),
		},
		CUPS: CUPSConfig{
			Lp:        v.GetString("cups.lp"),
			Lpstat:    v.GetString("cups.lpstat"),
			Lpoptions: v.GetString("cups.lpoptions"),
			Timeout:   v.GetDuration("cups.timeout"),
		},
		Convert: ConvertConfig{
			TempDir:     v.GetString("convert.temp_dir"),
			JPEGQuality: v.GetInt("convert.jpeg_quality"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.Workspace.Marker == "" {
		cfg.Workspace.Marker = "skills"
	}
	if cfg.Workspace.TempDir == "" {
		cfg.Workspace.TempDir = "/tmp"
	}

	if len(cfg.PPD.Dirs) == 0 {
		cfg.PPD.Dirs = []string{"/etc/cups/ppd", "/private/etc/cups/ppd"}
	}

	if cfg.CUPS.Lp == "" {
		cfg.CUPS.Lp = "lp"
	}
	if cfg.CUPS.Lpstat == "" {
		cfg.CUPS.Lpstat = "lpstat"
	}
	if cfg.CUPS.Lpoptions == "" {
		cfg.CUPS.Lpoptions = "lpoptions"
	}

	if cfg.Convert.TempDir == "" {
		cfg.Convert.TempDir = os.TempDir()
	}
	if cfg.Convert.JPEGQuality == 0 {
		cfg.Convert.JPEGQuality = 94
	}

	// stdout carries command output, so logs default to stderr
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report config keys instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("key")
	})
	return v
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	e := validationErrors[0]
	return fmt.Errorf("invalid configuration: %s %s", e.Field(), validationMessage(e))
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "min":
		return "must have at least " + e.Param() + " entries"
	case "excludesall":
		return "must not contain path separators"
	default:
		return "is invalid"
	}
}
