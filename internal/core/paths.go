package core

import (
	"path/filepath"
)

const ManDirName = "man"

// Layout describes where export artifacts land inside the build output
// directory.
type Layout struct {
	OutDir  string
	Program string
	Stamp   string
}

func NewLayout(outDir, program, stamp string) Layout {
	return Layout{
		OutDir:  outDir,
		Program: program,
		Stamp:   stamp,
	}
}

// File joins name onto the output directory.
func (l Layout) File(name string) string {
	return filepath.Join(l.OutDir, name)
}

// StampFile returns the stamp path, or "" when stamping is disabled.
func (l Layout) StampFile() string {
	if l.Stamp == "" {
		return ""
	}
	return l.File(l.Stamp)
}

func (l Layout) ManDir() string {
	return l.File(ManDirName)
}
