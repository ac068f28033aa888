package cli

import (
	"strconv"
)

// Options holds parsed rgr arguments.
type Options struct {
	Regexps        []string
	PatternFiles   []string
	IgnoreCase     bool
	SmartCase      bool
	CaseSensitive  bool
	FixedStrings   bool
	WordRegexp     bool
	LineRegexp     bool
	Multiline      bool
	MultilineDot   bool
	Engine         string
	Encoding       string
	Globs          []string
	IGlobs         []string
	Types          []string
	TypesNot       []string
	Hidden         bool
	Follow         bool
	NoIgnore       bool
	Unrestricted   int
	MaxDepth       int
	MaxDepthSet    bool
	MaxFilesize    string
	Sort           string
	SortReverse    string
	RipgrepPath    string
	Pattern        string
	HasPattern     bool
	Paths          []string
	RipgrepPassArg []string
}

// RipgrepArgs translates the parsed options into a ripgrep argument list.
// The pattern is passed with -e so it can never be mistaken for a flag.
func (o *Options) RipgrepArgs() []string {
	var args []string

	boolFlags := []struct {
		set  bool
		flag string
	}{
		{o.IgnoreCase, "--ignore-case"},
		{o.SmartCase, "--smart-case"},
		{o.CaseSensitive, "--case-sensitive"},
		{o.FixedStrings, "--fixed-strings"},
		{o.WordRegexp, "--word-regexp"},
		{o.LineRegexp, "--line-regexp"},
		{o.Multiline, "--multiline"},
		{o.MultilineDot, "--multiline-dotall"},
		{o.Hidden, "--hidden"},
		{o.Follow, "--follow"},
		{o.NoIgnore, "--no-ignore"},
	}
	for _, f := range boolFlags {
		if f.set {
			args = append(args, f.flag)
		}
	}
	for i := 0; i < o.Unrestricted; i++ {
		args = append(args, "--unrestricted")
	}

	if o.Engine != "" && o.Engine != "default" {
		args = append(args, "--engine", o.Engine)
	}
	if o.Encoding != "" && o.Encoding != "auto" {
		args = append(args, "--encoding", o.Encoding)
	}
	if o.MaxDepthSet {
		args = append(args, "--max-depth", strconv.Itoa(o.MaxDepth))
	}
	if o.MaxFilesize != "" {
		args = append(args, "--max-filesize", o.MaxFilesize)
	}
	if o.Sort != "" {
		args = append(args, "--sort", o.Sort)
	}
	if o.SortReverse != "" {
		args = append(args, "--sortr", o.SortReverse)
	}

	args = appendRepeated(args, "--glob", o.Globs)
	args = appendRepeated(args, "--iglob", o.IGlobs)
	args = appendRepeated(args, "--type", o.Types)
	args = appendRepeated(args, "--type-not", o.TypesNot)
	args = appendRepeated(args, "--file", o.PatternFiles)
	args = appendRepeated(args, "--regexp", o.Regexps)
	// An empty pattern is valid and matches every line.
	if o.HasPattern {
		args = append(args, "--regexp", o.Pattern)
	}

	args = append(args, o.RipgrepPassArg...)
	if len(o.Paths) > 0 {
		args = append(args, "--")
		args = append(args, o.Paths...)
	}
	return args
}

func appendRepeated(args []string, flag string, values []string) []string {
	for _, v := range values {
		args = append(args, flag, v)
	}
	return args
}
