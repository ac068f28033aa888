package completion

import (
	"bytes"
	"fmt"

	"mvdan.cc/sh/v3/syntax"
)

// VerifyScript parses a rendered script with a shell parser when one exists
// for the dialect. Dialects without a parser pass unchecked.
func VerifyScript(d Dialect, script []byte, name string) error {
	var variant syntax.LangVariant
	switch d {
	case Bash:
		variant = syntax.LangBash
	default:
		return nil
	}

	parser := syntax.NewParser(syntax.Variant(variant), syntax.KeepComments(false))
	if _, err := parser.Parse(bytes.NewReader(script), name); err != nil {
		return fmt.Errorf("rendered %s script does not parse: %w", d, err)
	}
	return nil
}
