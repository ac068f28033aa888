package main

//go:generate go run ../rgr-completions -out ../../completions

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/atinylittleshell/rgr/internal/cli"
	"github.com/atinylittleshell/rgr/internal/styles"
	"github.com/spf13/cobra"
)

var BUILD_VERSION = "dev"

func main() {
	root := cli.NewRootCommand(BUILD_VERSION, runRipgrep)
	root.SilenceErrors = true

	err := root.ExecuteContext(context.Background())

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		os.Stderr.WriteString(styles.ERROR(err.Error()) + "\n")
		os.Exit(2)
	}
}

// runRipgrep runs the search the options describe and streams ripgrep's
// output.
func runRipgrep(cmd *cobra.Command, opts *cli.Options) error {
	rg := exec.CommandContext(cmd.Context(), opts.RipgrepPath, opts.RipgrepArgs()...)
	rg.Stdin = cmd.InOrStdin()
	rg.Stdout = cmd.OutOrStdout()
	rg.Stderr = cmd.ErrOrStderr()
	return rg.Run()
}
