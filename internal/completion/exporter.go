package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/atinylittleshell/rgr/internal/core"
	"github.com/atinylittleshell/rgr/internal/filesystem"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var ErrEmptyScript = errors.New("renderer produced an empty script")

// Options configures a single export run.
type Options struct {
	OutDir   string
	Dialects []Dialect
	// Stamp names an empty marker file written next to the scripts so CI
	// can locate the output directory. Empty disables it.
	Stamp  string
	Verify bool
}

// Artifact is one file written by an export.
type Artifact struct {
	Dialect Dialect
	Path    string
	Size    int
}

type Report struct {
	Program   string
	OutDir    string
	Artifacts []Artifact
	StampFile string
}

type Exporter struct {
	FS       filesystem.FileSystem
	Renderer Renderer
	Logger   *zap.Logger
}

func NewExporter(fs filesystem.FileSystem, renderer Renderer, logger *zap.Logger) *Exporter {
	if fs == nil {
		fs = filesystem.DefaultFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		FS:       fs,
		Renderer: renderer,
		Logger:   logger,
	}
}

// Export renders one completion script per dialect for schema and writes
// each into opts.OutDir, creating the directory first. The first failure
// aborts the run.
func (e *Exporter) Export(ctx context.Context, schema *cobra.Command, opts Options) (*Report, error) {
	if opts.OutDir == "" {
		return nil, errors.New("output directory is not set")
	}
	if schema == nil {
		return nil, errors.New("command schema is nil")
	}

	if len(opts.Dialects) == 0 {
		return nil, errors.New("no shell dialects selected")
	}

	program := schema.Name()
	for _, d := range opts.Dialects {
		if opts.Stamp != "" && opts.Stamp == d.FileName(program) {
			return nil, fmt.Errorf("stamp file name %q collides with the %s completion script", opts.Stamp, d)
		}
	}
	layout := core.NewLayout(opts.OutDir, program, opts.Stamp)

	if err := e.FS.MkdirAll(layout.OutDir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", layout.OutDir, err)
	}

	report := &Report{
		Program: program,
		OutDir:  layout.OutDir,
	}

	if stamp := layout.StampFile(); stamp != "" {
		if err := e.FS.WriteFile(stamp, nil, filePerm); err != nil {
			return nil, fmt.Errorf("failed to write stamp file %s: %w", stamp, err)
		}
		report.StampFile = stamp
		e.Logger.Debug("wrote stamp file", zap.String("path", stamp))
	}

	for _, d := range opts.Dialects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		artifact, err := e.exportDialect(schema, layout, d, opts.Verify)
		if err != nil {
			return nil, err
		}
		report.Artifacts = append(report.Artifacts, artifact)
		e.Logger.Info("wrote completion script",
			zap.String("shell", d.String()),
			zap.String("path", artifact.Path),
			zap.Int("bytes", artifact.Size),
		)
	}

	return report, nil
}

func (e *Exporter) exportDialect(schema *cobra.Command, layout core.Layout, d Dialect, verify bool) (Artifact, error) {
	path := layout.File(d.FileName(layout.Program))

	var buf bytes.Buffer
	if err := e.Renderer.Render(&buf, schema, d); err != nil {
		return Artifact{}, fmt.Errorf("failed to render %s completions: %w", d, err)
	}
	if buf.Len() == 0 {
		return Artifact{}, fmt.Errorf("%s: %w", d, ErrEmptyScript)
	}

	if verify {
		if err := VerifyScript(d, buf.Bytes(), path); err != nil {
			return Artifact{}, err
		}
	}

	if err := e.FS.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return Artifact{}, fmt.Errorf("failed to write %s completions to %s: %w", d, path, err)
	}

	return Artifact{
		Dialect: d,
		Path:    path,
		Size:    buf.Len(),
	}, nil
}
