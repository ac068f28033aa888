// Package cli declares the rgr command-line schema. The same tree parses
// arguments at runtime and drives completion generation at build time.
package cli

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/carapace-sh/carapace"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const (
	Name = "rgr"

	helpWidth = 80
)

const longDescription = `rgr is a find and replace front-end for ripgrep. The pattern, paths and search flags are translated into a ripgrep invocation whose matches rgr then works on.

Arguments after "--" are handed to ripgrep unchanged.`

var (
	sortModes = []string{"none", "path", "modified", "accessed", "created"}
	encodings = []string{"auto", "utf-8", "utf-16", "utf-16le", "utf-16be", "latin1", "shift_jis", "euc-jp", "gbk", "big5", "windows-1252"}
	engines   = []string{"default", "pcre2", "auto"}

	fileTypes = []string{
		"c", "cpp", "css", "go", "html", "java", "js", "json", "lua", "make",
		"markdown", "py", "ruby", "rust", "sh", "sql", "toml", "ts", "txt", "yaml",
	}
)

// NewRootCommand builds the complete rgr schema. run may be nil, in which
// case the command only validates its arguments.
func NewRootCommand(version string, run func(cmd *cobra.Command, opts *Options) error) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     Name + " [flags] <PATTERN> [PATH...]",
		Short:   "Find and replace on top of ripgrep",
		Long:    wordwrap.String(longDescription, helpWidth),
		Version: ResolveVersion(version),
		Args:    cobra.ArbitraryArgs,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				// The pattern is free text.
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional := args
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional, opts.RipgrepPassArg = args[:dash], args[dash:]
			}
			opts.Paths = positional
			opts.MaxDepthSet = cmd.Flags().Changed("max-depth")
			if len(opts.Regexps) == 0 && len(opts.PatternFiles) == 0 {
				if len(positional) == 0 {
					return cmd.Help()
				}
				opts.Pattern, opts.Paths = positional[0], positional[1:]
				opts.HasPattern = true
			}
			if run == nil {
				return nil
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringArrayVarP(&opts.Regexps, "regexp", "e", nil, "A pattern to search for; may be given multiple times")
	flags.StringArrayVarP(&opts.PatternFiles, "file", "f", nil, "Search for patterns from the given file, one per line")
	flags.BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Search case insensitively")
	flags.BoolVarP(&opts.SmartCase, "smart-case", "S", false, "Search case insensitively if the pattern is all lowercase")
	flags.BoolVarP(&opts.CaseSensitive, "case-sensitive", "s", false, "Search case sensitively (default)")
	flags.BoolVarP(&opts.FixedStrings, "fixed-strings", "F", false, "Treat the pattern as a literal string")
	flags.BoolVarP(&opts.WordRegexp, "word-regexp", "w", false, "Only show matches surrounded by word boundaries")
	flags.BoolVarP(&opts.LineRegexp, "line-regexp", "x", false, "Only show matches surrounded by line boundaries")
	flags.BoolVarP(&opts.Multiline, "multiline", "U", false, "Enable matching across multiple lines")
	flags.BoolVar(&opts.MultilineDot, "multiline-dotall", false, "Make '.' match new lines when multiline is enabled")
	flags.StringVar(&opts.Engine, "engine", "default", "Regex engine to use")
	flags.StringVarP(&opts.Encoding, "encoding", "E", "auto", "Text encoding to use when searching")
	flags.StringArrayVarP(&opts.Globs, "glob", "g", nil, "Include or exclude files matching the glob")
	flags.StringArrayVar(&opts.IGlobs, "iglob", nil, "Like --glob, but case insensitive")
	flags.StringArrayVarP(&opts.Types, "type", "t", nil, "Only search files matching the type")
	flags.StringArrayVarP(&opts.TypesNot, "type-not", "T", nil, "Do not search files matching the type")
	flags.BoolVar(&opts.Hidden, "hidden", false, "Search hidden files and directories")
	flags.BoolVarP(&opts.Follow, "follow", "L", false, "Follow symbolic links")
	flags.BoolVar(&opts.NoIgnore, "no-ignore", false, "Don't respect ignore files")
	flags.CountVarP(&opts.Unrestricted, "unrestricted", "u", "Reduce the level of smart filtering; repeat up to three times")
	flags.IntVarP(&opts.MaxDepth, "max-depth", "d", 0, "Limit the depth of directory traversal")
	flags.StringVar(&opts.MaxFilesize, "max-filesize", "", "Ignore files larger than the given size (e.g. 10K, 2M)")
	flags.StringVar(&opts.Sort, "sort", "", "Sort results in ascending order")
	flags.StringVar(&opts.SortReverse, "sortr", "", "Sort results in descending order")
	flags.StringVar(&opts.RipgrepPath, "rg-path", "rg", "Path to the ripgrep executable")

	cmd.MarkFlagsMutuallyExclusive("ignore-case", "smart-case", "case-sensitive")
	cmd.MarkFlagsMutuallyExclusive("sort", "sortr")

	registerValues(cmd, "sort", sortModes)
	registerValues(cmd, "sortr", sortModes)
	registerValues(cmd, "encoding", encodings)
	registerValues(cmd, "engine", engines)
	registerValues(cmd, "type", fileTypes)
	registerValues(cmd, "type-not", fileTypes)

	_ = cmd.MarkFlagFilename("file")
	_ = cmd.MarkFlagFilename("rg-path")
	_ = cmd.RegisterFlagCompletionFunc("max-depth", cobra.NoFileCompletions)
	_ = cmd.RegisterFlagCompletionFunc("max-filesize", cobra.NoFileCompletions)

	// Registers the hidden _carapace command that elvish completions call.
	carapace.Gen(cmd)

	return cmd
}

func registerValues(cmd *cobra.Command, flag string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

// ResolveVersion normalises a build version to semver. Anything that is
// not a version (e.g. "dev") is returned as is.
func ResolveVersion(build string) string {
	build = strings.TrimSpace(build)
	if build == "" {
		return "dev"
	}
	v, err := semver.NewVersion(build)
	if err != nil {
		return build
	}
	return v.String()
}
