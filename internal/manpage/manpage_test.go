package manpage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atinylittleshell/rgr/internal/filesystem"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingFS struct {
	filesystem.DefaultFileSystem
}

func (failingFS) WriteFile(string, []byte, os.FileMode) error {
	return errors.New("no space left on device")
}

func newTestSchema() *cobra.Command {
	root := &cobra.Command{Use: "foo", Short: "foo does things", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "bar", Short: "bar things", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(&cobra.Command{Use: "secret", Hidden: true, Run: func(*cobra.Command, []string) {}})
	return root
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "man")
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	written, err := Generate(filesystem.DefaultFileSystem{}, zap.NewNop(), newTestSchema(), Options{
		Dir:    dir,
		Date:   &date,
		Source: "foo 1.0.0",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "foo.1"),
		filepath.Join(dir, "foo-bar.1"),
	}, written)
	assert.NoFileExists(t, filepath.Join(dir, "foo-secret.1"))

	page, err := os.ReadFile(filepath.Join(dir, "foo.1"))
	require.NoError(t, err)
	assert.Contains(t, string(page), ".TH")
	assert.Contains(t, string(page), "FOO")
	assert.Contains(t, string(page), "foo 1.0.0")
	assert.Contains(t, string(page), "Mar 2024")
}

func TestGenerate_WriteError(t *testing.T) {
	_, err := Generate(failingFS{}, zap.NewNop(), newTestSchema(), Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left on device")
}

func TestPageName(t *testing.T) {
	root := newTestSchema()
	bar, _, err := root.Find([]string{"bar"})
	require.NoError(t, err)

	assert.Equal(t, "foo.1", PageName(root))
	assert.Equal(t, "foo-bar.1", PageName(bar))
}
