// Package abacusdir knows the layout of the .abacus/ project directory:
//
//	.abacus/
//	  config.yaml   settings, see pkg/config
//	  .gitignore    ignores local/
//	  local/        machine-specific state such as abacus.log
package abacusdir

import (
	"os"
	"path/filepath"
)

const (
	configName    = "config.yaml"
	localName     = "local"
	logName       = "abacus.log"
	gitignoreName = ".gitignore"
)

// Dir resolves paths inside one .abacus/ directory. It does no I/O except
// in Exists and the functions in init.go.
type Dir struct {
	root string
}

// New returns a Dir for root, made absolute when possible.
func New(root string) Dir {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	return Dir{root: root}
}

func (d Dir) Root() string          { return d.root }
func (d Dir) ConfigPath() string    { return filepath.Join(d.root, configName) }
func (d Dir) LocalDir() string      { return filepath.Join(d.root, localName) }
func (d Dir) LogPath() string       { return filepath.Join(d.LocalDir(), logName) }
func (d Dir) GitignorePath() string { return filepath.Join(d.root, gitignoreName) }

// Exists reports whether root is an existing directory.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)
	return err == nil && info.IsDir()
}
