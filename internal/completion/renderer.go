package completion

import (
	"fmt"
	"io"

	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"
)

// Renderer turns a command schema into completion script text for one
// dialect. The script grammar belongs to the renderer, not to the exporter.
type Renderer interface {
	Render(w io.Writer, schema *cobra.Command, d Dialect) error
}

// CobraRenderer uses cobra's built-in generators, and carapace for the
// shells cobra does not cover.
type CobraRenderer struct {
	// Descriptions includes flag and subcommand help text in the scripts of
	// dialects that can show it.
	Descriptions bool
}

func NewCobraRenderer(descriptions bool) *CobraRenderer {
	return &CobraRenderer{Descriptions: descriptions}
}

func (r *CobraRenderer) Render(w io.Writer, schema *cobra.Command, d Dialect) error {
	switch d {
	case Zsh:
		if r.Descriptions {
			return schema.GenZshCompletion(w)
		}
		return schema.GenZshCompletionNoDesc(w)
	case Bash:
		return schema.GenBashCompletionV2(w, r.Descriptions)
	case Fish:
		return schema.GenFishCompletion(w, r.Descriptions)
	case PowerShell:
		if r.Descriptions {
			return schema.GenPowerShellCompletionWithDesc(w)
		}
		return schema.GenPowerShellCompletion(w)
	case Elvish:
		snippet, err := carapace.Gen(schema).Snippet(string(Elvish))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, snippet)
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownDialect, d)
	}
}
