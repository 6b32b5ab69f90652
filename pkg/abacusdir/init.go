package abacusdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EnsureStructure creates local/ and the .gitignore that hides it. Existing
// files are kept.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("abacusdir: create local dir: %w", err)
	}

	if err := writeIfMissing(d.GitignorePath(), []byte(localName+"/\n")); err != nil {
		return fmt.Errorf("abacusdir: gitignore: %w", err)
	}

	return nil
}

// Bootstrap runs EnsureStructure and writes configYAML unless a config file
// already exists.
func Bootstrap(d Dir, configYAML []byte) error {
	if err := EnsureStructure(d); err != nil {
		return err
	}

	if err := writeIfMissing(d.ConfigPath(), configYAML); err != nil {
		return fmt.Errorf("abacusdir: write config: %w", err)
	}

	return nil
}

// writeIfMissing creates path with data. It is a no-op when path exists.
func writeIfMissing(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // path comes from Dir
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
