package lint

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Template is a commented starter config file.
//
//go:embed template.yaml
var Template []byte

// WriteTemplate writes Template to path. An existing file is left alone and
// reported as fs.ErrExist.
func WriteTemplate(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", path, fs.ErrExist)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(Template); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
