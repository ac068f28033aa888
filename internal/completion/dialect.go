// Package completion renders shell-completion scripts for a command schema
// and exports them into a build output directory.
package completion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Dialect identifies a shell whose completion syntax we can emit.
type Dialect string

const (
	Zsh        Dialect = "zsh"
	Bash       Dialect = "bash"
	Fish       Dialect = "fish"
	Elvish     Dialect = "elvish"
	PowerShell Dialect = "powershell"
)

var ErrUnknownDialect = errors.New("unknown shell dialect")

// AllDialects lists every supported dialect in export order.
var AllDialects = []Dialect{Zsh, Bash, Fish, Elvish, PowerShell}

var dialectAliases = map[string]Dialect{
	"zsh":        Zsh,
	"bash":       Bash,
	"fish":       Fish,
	"elvish":     Elvish,
	"powershell": PowerShell,
	"pwsh":       PowerShell,
	"ps1":        PowerShell,
}

// FileName returns the conventional completion file name for program.
func (d Dialect) FileName(program string) string {
	switch d {
	case Zsh:
		return "_" + program
	case PowerShell:
		return program + ".ps1"
	default:
		return program + "." + string(d)
	}
}

func (d Dialect) String() string {
	return string(d)
}

// ParseDialect resolves a user supplied shell name. Names are case
// insensitive and a few common aliases are accepted.
func ParseDialect(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if d, ok := dialectAliases[key]; ok {
		return d, nil
	}

	if suggestion := suggestDialect(key); suggestion != "" {
		return "", fmt.Errorf("%w %q, did you mean %q?", ErrUnknownDialect, name, suggestion)
	}
	return "", fmt.Errorf("%w %q (supported: %s)", ErrUnknownDialect, name, strings.Join(DialectNames(AllDialects), ", "))
}

// ParseDialects parses every name and drops duplicates, keeping first
// occurrence order.
func ParseDialects(names []string) ([]Dialect, error) {
	dialects := make([]Dialect, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		d, err := ParseDialect(name)
		if err != nil {
			return nil, err
		}
		dialects = append(dialects, d)
	}
	return lo.Uniq(dialects), nil
}

func DialectNames(dialects []Dialect) []string {
	return lo.Map(dialects, func(d Dialect, _ int) string {
		return string(d)
	})
}

func suggestDialect(name string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, lo.Keys(dialectAliases))
	if len(matches) == 0 {
		return ""
	}
	// Map iteration order is random; break score ties by name.
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score || (m.Score == best.Score && m.Str < best.Str) {
			best = m
		}
	}
	return string(dialectAliases[best.Str])
}
