package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (*Options, string, error) {
	t.Helper()

	var got *Options
	cmd := NewRootCommand("v1.4.0", func(_ *cobra.Command, opts *Options) error {
		got = opts
		return nil
	})

	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return got, out.String(), err
}

func TestNewRootCommand_Schema(t *testing.T) {
	cmd := NewRootCommand("dev", nil)

	assert.Equal(t, Name, cmd.Name())
	assert.Equal(t, "dev", cmd.Version)

	for _, name := range []string{"regexp", "ignore-case", "smart-case", "glob", "type", "type-not", "sort", "sortr", "encoding", "engine", "hidden", "max-depth", "rg-path"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	var hasCarapace bool
	for _, sub := range cmd.Commands() {
		if sub.Name() == "_carapace" {
			hasCarapace = true
			assert.True(t, sub.Hidden)
		}
	}
	assert.True(t, hasCarapace, "elvish completions need the _carapace command")
}

func TestNewRootCommand_FlagValueCompletions(t *testing.T) {
	tests := []struct {
		flag     string
		contains string
	}{
		{"sort", "modified"},
		{"sortr", "path"},
		{"encoding", "utf-16le"},
		{"engine", "pcre2"},
		{"type", "rust"},
		{"type-not", "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			_, out, err := execute(t, cobra.ShellCompRequestCmd, "--"+tt.flag, "")
			require.NoError(t, err)

			assert.Contains(t, out, tt.contains+"\n")
			assert.Contains(t, out, ":4\n", "values must not fall back to file completion")
		})
	}
}

func TestNewRootCommand_PatternAndPaths(t *testing.T) {
	opts, _, err := execute(t, "-i", "--type", "go", "-g", "!vendor", "foo.*bar", "src", "docs")
	require.NoError(t, err)
	require.NotNil(t, opts)

	assert.Equal(t, "foo.*bar", opts.Pattern)
	assert.Equal(t, []string{"src", "docs"}, opts.Paths)
	assert.True(t, opts.IgnoreCase)
	assert.Equal(t, []string{"go"}, opts.Types)
	assert.Equal(t, []string{"!vendor"}, opts.Globs)
}

func TestNewRootCommand_RegexpFlagMakesAllArgsPaths(t *testing.T) {
	opts, _, err := execute(t, "-e", "one", "-e", "two", "src")
	require.NoError(t, err)

	assert.Empty(t, opts.Pattern)
	assert.False(t, opts.HasPattern)
	assert.Equal(t, []string{"one", "two"}, opts.Regexps)
	assert.Equal(t, []string{"src"}, opts.Paths)
}

func TestNewRootCommand_EmptyPattern(t *testing.T) {
	opts, _, err := execute(t, "", "src")
	require.NoError(t, err)
	require.NotNil(t, opts)

	assert.True(t, opts.HasPattern)
	assert.Equal(t, []string{"--regexp", "", "--", "src"}, opts.RipgrepArgs())
}

func TestNewRootCommand_ZeroMaxDepth(t *testing.T) {
	opts, _, err := execute(t, "--max-depth", "0", "x", "dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"--max-depth", "0", "--regexp", "x", "--", "dir"}, opts.RipgrepArgs())

	opts, _, err = execute(t, "x", "dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"--regexp", "x", "--", "dir"}, opts.RipgrepArgs())
}

func TestNewRootCommand_PassThroughAfterDash(t *testing.T) {
	opts, _, err := execute(t, "needle", "src", "--", "--pcre2", "--no-config")
	require.NoError(t, err)

	assert.Equal(t, "needle", opts.Pattern)
	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, []string{"--pcre2", "--no-config"}, opts.RipgrepPassArg)
}

func TestNewRootCommand_NoPatternShowsHelp(t *testing.T) {
	opts, out, err := execute(t)
	require.NoError(t, err)
	assert.Nil(t, opts)
	assert.Contains(t, out, "ripgrep")
}

func TestNewRootCommand_MutuallyExclusiveCaseFlags(t *testing.T) {
	_, _, err := execute(t, "-i", "-S", "needle")
	assert.Error(t, err)
}

func TestNewRootCommand_Version(t *testing.T) {
	_, out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.4.0")
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"v2.0.0-rc.1", "2.0.0-rc.1"},
		{"dev", "dev"},
		{"", "dev"},
		{"  ", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveVersion(tt.input))
		})
	}
}
