package printing

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"github.com/openclaw/cupsprint/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultWorkspaceMarker = "skills"
	defaultSharedTempDir   = "/tmp"
)

// FileGuardConfig contains configuration for the file guard
type FileGuardConfig struct {
	// WorkspaceRoot is always an allowed root when set
	WorkspaceRoot string
	// WorkspaceMarker is the directory whose presence makes the current
	// directory an allowed root. Default: "skills"
	WorkspaceMarker string
	// TempDir is the shared temp directory, always allowed. Default: /tmp
	TempDir string
	// Getwd returns the current directory. Default: os.Getwd
	Getwd func() (string, error)
	// Logger for debug output
	Logger *zap.Logger
}

// FileGuard decides whether a file may be printed. The real path, after all
// symlinks are resolved, must be a regular file with a printable extension
// inside one of the allowed roots.
type FileGuard struct {
	config *FileGuardConfig
	logger *zap.Logger
}

// NewFileGuard creates a new file guard
func NewFileGuard(config *FileGuardConfig) *FileGuard {
	if config == nil {
		config = &FileGuardConfig{}
	}

	if config.WorkspaceMarker == "" {
		config.WorkspaceMarker = defaultWorkspaceMarker
	}
	if config.TempDir == "" {
		config.TempDir = defaultSharedTempDir
	}
	if config.Getwd == nil {
		config.Getwd = os.Getwd
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileGuard{
		config: config,
		logger: logger,
	}
}

// AllowedRoots returns the canonical allowed directories in priority order:
// workspace root, current directory if it looks like a workspace, temp dir.
// Roots that do not exist are left out.
func (g *FileGuard) AllowedRoots() []string {
	var roots []string
	add := func(dir string) {
		canonical, err := canonicalDir(dir)
		if err != nil {
			g.logger.Debug("ignoring allowed root", zap.String("dir", dir), zap.Error(err))
			return
		}
		if !slices.Contains(roots, canonical) {
			roots = append(roots, canonical)
		}
	}

	if g.config.WorkspaceRoot != "" {
		add(g.config.WorkspaceRoot)
	}

	if cwd, err := g.config.Getwd(); err == nil {
		if info, err := os.Stat(filepath.Join(cwd, g.config.WorkspaceMarker)); err == nil && info.IsDir() {
			add(cwd)
		}
	}

	add(g.config.TempDir)
	return roots
}

// Validate checks path and returns its resolved real path
func (g *FileGuard) Validate(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", shared.NewDomainError(shared.CodeInvalidFile,
			fmt.Sprintf("Not a file: %s", path))
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return "", shared.NewDomainError(shared.CodeInvalidFile,
			fmt.Sprintf("Not a file: %s", path))
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", shared.NewDomainError(shared.CodeInvalidFile,
			fmt.Sprintf("Not a regular file: %s", path))
	}

	roots := g.AllowedRoots()
	if !slices.ContainsFunc(roots, func(root string) bool { return within(root, resolved) }) {
		g.logger.Debug("file outside allowed roots",
			zap.String("path", path),
			zap.String("resolved", resolved),
			zap.Strings("roots", roots))
		return "", shared.NewDomainError(shared.CodeFileNotAllowed,
			fmt.Sprintf("File is outside the allowed directories (workspace, /tmp): %s", resolved))
	}

	if !printing.IsPrintableFile(resolved) {
		return "", shared.NewDomainError(shared.CodeUnsupportedFileType,
			fmt.Sprintf("Unsupported file type: %s. Supported: %s",
				filepath.Ext(resolved), strings.Join(printing.PrintableExtensions(), ", ")))
	}

	return resolved, nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func canonicalDir(dir string) (string, error) {
	canonical, err := resolvePath(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", canonical)
	}
	return canonical, nil
}

// within reports whether path equals root or lies below it
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
