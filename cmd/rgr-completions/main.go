package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/rgr/internal/cli"
	"github.com/atinylittleshell/rgr/internal/completion"
	"github.com/atinylittleshell/rgr/internal/config"
	"github.com/atinylittleshell/rgr/internal/core"
	"github.com/atinylittleshell/rgr/internal/filesystem"
	"github.com/atinylittleshell/rgr/internal/manpage"
	"github.com/atinylittleshell/rgr/internal/render"
	"github.com/atinylittleshell/rgr/internal/styles"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

const helpText = `rgr-completions - write rgr shell completion scripts into a build directory

USAGE:
  OUT_DIR=<dir> rgr-completions [options]
  rgr-completions -out <dir> [options]

Writes _rgr, rgr.bash, rgr.fish, rgr.elvish and rgr.ps1 (or the subset
selected with -shells) plus an empty stamp file into the output directory.

OPTIONS:
`

type cliFlags struct {
	out      string
	config   string
	shells   string
	stamp    string
	noDesc   bool
	noVerify bool
	man      bool
	help     bool
	version  bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("rgr-completions", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &cliFlags{}
	fs.StringVar(&f.out, "out", "", "output directory (overrides $"+config.EnvOutDir+")")
	fs.StringVar(&f.config, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	fs.StringVar(&f.shells, "shells", "", "comma separated shells to generate (default all)")
	fs.StringVar(&f.stamp, "stamp", "", "stamp file name, \"-\" to disable (default "+config.DefaultStamp+")")
	fs.BoolVar(&f.noDesc, "no-desc", false, "leave flag descriptions out of the scripts")
	fs.BoolVar(&f.noVerify, "no-verify", false, "skip parsing generated scripts")
	fs.BoolVar(&f.man, "man", false, "also generate man pages")
	fs.BoolVar(&f.help, "h", false, "display help information")
	fs.BoolVar(&f.version, "ver", false, "display build version")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return f, fs, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, lookup config.LookupEnv, stdout, stderr io.Writer) int {
	flags, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.version {
		fmt.Fprintln(stdout, cli.ResolveVersion(BUILD_VERSION))
		return 0
	}
	if flags.help {
		fmt.Fprint(stdout, helpText)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	fileSystem := filesystem.DefaultFileSystem{}

	cfg, err := resolveConfig(fileSystem, flags, lookup)
	if err != nil {
		fmt.Fprintln(stderr, styles.ERROR("error: "+err.Error()))
		return 1
	}

	logger, err := initializeLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, styles.ERROR("error: failed to initialize logger: "+err.Error()))
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	if err := export(ctx, fileSystem, logger, cfg, stderr); err != nil {
		logger.Error("completion export failed", zap.Error(err))
		return 1
	}
	return 0
}

// resolveConfig layers defaults, the config file, the environment and the
// command line flags.
func resolveConfig(fileSystem filesystem.FileSystem, flags *cliFlags, lookup config.LookupEnv) (*config.Config, error) {
	cfg := config.DefaultConfig()

	configFile := flags.config
	if configFile == "" {
		configFile, _ = lookup(config.EnvConfigFile)
	}
	if configFile != "" {
		if err := cfg.LoadFile(fileSystem, configFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if flags.out != "" {
		cfg.OutDir = flags.out
	}
	if flags.shells != "" {
		if err := cfg.SetDialects(strings.Split(flags.shells, ",")); err != nil {
			return nil, err
		}
	}
	switch flags.stamp {
	case "":
	case "-":
		cfg.Stamp = ""
	default:
		cfg.Stamp = flags.stamp
	}
	if flags.noDesc {
		cfg.Descriptions = false
	}
	if flags.noVerify {
		cfg.Verify = false
	}
	if flags.man {
		cfg.ManPages = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func export(ctx context.Context, fileSystem filesystem.FileSystem, logger *zap.Logger, cfg *config.Config, stderr io.Writer) error {
	schema := cli.NewRootCommand(BUILD_VERSION, nil)

	logger.Debug("exporting completions",
		zap.String("program", schema.Name()),
		zap.String("out_dir", cfg.OutDir),
		zap.Strings("shells", completion.DialectNames(cfg.Dialects)),
	)

	exporter := completion.NewExporter(fileSystem, completion.NewCobraRenderer(cfg.Descriptions), logger)
	report, err := exporter.Export(ctx, schema, cfg.ExportOptions())
	if err != nil {
		return err
	}

	var manPages []string
	if cfg.ManPages {
		layout := core.NewLayout(cfg.OutDir, schema.Name(), cfg.Stamp)
		manPages, err = manpage.Generate(fileSystem, logger, schema, manpage.Options{
			Dir:    layout.ManDir(),
			Source: schema.Name() + " " + schema.Version,
		})
		if err != nil {
			return err
		}
	}

	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, render.Summary(report, manPages))
	}
	return nil
}

func initializeLogger(level zapcore.Level, stderr io.Writer) (*zap.Logger, error) {
	logLevel := zap.NewAtomicLevelAt(level)
	if BUILD_VERSION == "dev" && level > zapcore.DebugLevel {
		logLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.Sampling = nil

	// Build logs go to stderr; stdout stays free for tools that capture it.
	if f, ok := stderr.(*os.File); ok && f == os.Stderr {
		loggerConfig.OutputPaths = []string{"stderr"}
		loggerConfig.ErrorOutputPaths = []string{"stderr"}
		return loggerConfig.Build()
	}

	encoder := zapcore.NewJSONEncoder(loggerConfig.EncoderConfig)
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(stderr), logLevel)), nil
}
