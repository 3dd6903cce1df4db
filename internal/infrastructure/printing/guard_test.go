package printing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openclaw/cupsprint/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	workspace string
	temp      string
	outside   string
	guard     *FileGuard
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	f := &guardFixture{
		workspace: realDir(t, t.TempDir()),
		temp:      realDir(t, t.TempDir()),
		outside:   realDir(t, t.TempDir()),
	}
	f.guard = NewFileGuard(&FileGuardConfig{
		WorkspaceRoot: f.workspace,
		TempDir:       f.temp,
		Getwd:         func() (string, error) { return f.outside, nil },
	})
	return f
}

func realDir(t *testing.T, dir string) string {
	t.Helper()
	canonical, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return canonical
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return path
}

func TestFileGuard_Validate(t *testing.T) {
	f := newGuardFixture(t)

	t.Run("file in workspace", func(t *testing.T) {
		path := touch(t, filepath.Join(f.workspace, "photo.PNG"))
		resolved, err := f.guard.Validate(path)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("file in temp dir", func(t *testing.T) {
		path := touch(t, filepath.Join(f.temp, "doc.pdf"))
		resolved, err := f.guard.Validate(path)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(f.workspace, "missing.pdf")
		_, err := f.guard.Validate(path)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidFile))
		assert.Equal(t, "Not a file: "+path, err.Error())
	})

	t.Run("directory", func(t *testing.T) {
		path := filepath.Join(f.workspace, "folder.pdf")
		require.NoError(t, os.Mkdir(path, 0755))
		_, err := f.guard.Validate(path)
		require.Error(t, err)
		assert.Equal(t, "Not a regular file: "+path, err.Error())
	})

	t.Run("outside allowed roots", func(t *testing.T) {
		path := touch(t, filepath.Join(f.outside, "secret.pdf"))
		_, err := f.guard.Validate(path)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeFileNotAllowed))
		assert.Equal(t, "File is outside the allowed directories (workspace, /tmp): "+path, err.Error())
	})

	t.Run("symlink escaping the workspace", func(t *testing.T) {
		target := touch(t, filepath.Join(f.outside, "id_rsa.pdf"))
		link := filepath.Join(f.workspace, "innocent.pdf")
		require.NoError(t, os.Symlink(target, link))

		_, err := f.guard.Validate(link)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeFileNotAllowed))
		assert.Contains(t, err.Error(), target)
	})

	t.Run("symlink inside the workspace", func(t *testing.T) {
		target := touch(t, filepath.Join(f.workspace, "real.jpg"))
		link := filepath.Join(f.workspace, "alias.jpg")
		require.NoError(t, os.Symlink(target, link))

		resolved, err := f.guard.Validate(link)
		require.NoError(t, err)
		assert.Equal(t, target, resolved)
	})

	t.Run("extension checked on the real file", func(t *testing.T) {
		target := touch(t, filepath.Join(f.workspace, "notes.txt"))
		link := filepath.Join(f.workspace, "notes.pdf")
		require.NoError(t, os.Symlink(target, link))

		_, err := f.guard.Validate(link)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeUnsupportedFileType))
		assert.Equal(t,
			"Unsupported file type: .txt. Supported: .bmp, .gif, .jpeg, .jpg, .pdf, .png, .tiff, .webp",
			err.Error())
	})
}

func TestFileGuard_WorkspaceMarker(t *testing.T) {
	f := newGuardFixture(t)
	path := touch(t, filepath.Join(f.outside, "scan.tiff"))

	_, err := f.guard.Validate(path)
	require.Error(t, err, "cwd without marker is not allowed")

	require.NoError(t, os.Mkdir(filepath.Join(f.outside, "skills"), 0755))
	resolved, err := f.guard.Validate(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestFileGuard_AllowedRoots(t *testing.T) {
	f := newGuardFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(f.outside, "skills"), 0755))

	assert.Equal(t, []string{f.workspace, f.outside, f.temp}, f.guard.AllowedRoots())

	missing := NewFileGuard(&FileGuardConfig{
		WorkspaceRoot: filepath.Join(f.workspace, "does-not-exist"),
		TempDir:       f.temp,
		Getwd:         func() (string, error) { return f.workspace, nil },
	})
	assert.Equal(t, []string{f.temp}, missing.AllowedRoots())
}

func TestWithin(t *testing.T) {
	sep := string(filepath.Separator)
	root := sep + filepath.Join("srv", "ws")

	assert.True(t, within(root, root))
	assert.True(t, within(root, filepath.Join(root, "a", "b.pdf")))
	assert.False(t, within(root, root+"2"+sep+"b.pdf"))
	assert.False(t, within(root, filepath.Dir(root)))
	assert.True(t, within(sep, filepath.Join(root, "x.pdf")))
}
