package manpage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atinylittleshell/rgr/internal/filesystem"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"go.uber.org/zap"
)

const section = "1"

type Options struct {
	Dir string
	// Date stamped into each page. nil lets cobra pick the current time
	// (or SOURCE_DATE_EPOCH when set).
	Date   *time.Time
	Source string
}

// Generate writes a section 1 page for schema and every visible
// subcommand below it. It returns the paths written.
func Generate(fs filesystem.FileSystem, logger *zap.Logger, schema *cobra.Command, opts Options) ([]string, error) {
	if err := fs.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create man directory %s: %w", opts.Dir, err)
	}

	header := &doc.GenManHeader{
		Title:   strings.ToUpper(schema.Name()),
		Section: section,
		Date:    opts.Date,
		Source:  opts.Source,
	}

	var written []string
	var walk func(cmd *cobra.Command) error
	walk = func(cmd *cobra.Command) error {
		for _, child := range cmd.Commands() {
			if !child.IsAvailableCommand() || child.IsAdditionalHelpTopicCommand() {
				continue
			}
			if err := walk(child); err != nil {
				return err
			}
		}

		var buf bytes.Buffer
		if err := doc.GenMan(cmd, header, &buf); err != nil {
			return fmt.Errorf("failed to render man page for %q: %w", cmd.CommandPath(), err)
		}

		path := filepath.Join(opts.Dir, PageName(cmd))
		if err := fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write man page %s: %w", path, err)
		}
		logger.Debug("wrote man page", zap.String("path", path))
		written = append(written, path)
		return nil
	}

	if err := walk(schema); err != nil {
		return nil, err
	}
	return written, nil
}

// PageName follows cobra's GenManTree naming: "root-sub.1".
func PageName(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "-") + "." + section
}
