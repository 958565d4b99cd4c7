package local

import (
	"context"
	"os"
	"path"
	"path/filepath"
)

type Driver struct {
	root string
}

func NewDriver(root string) *Driver {
	return &Driver{root: root}
}

func (d *Driver) Name() string { return "local" }

// fullPath resolves p under root. Cleaning against "/" first keeps ".."
// segments from walking out of root.
func (d *Driver) fullPath(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(path.Clean("/"+p)))
}

func (d *Driver) GetContent(ctx context.Context, p string) ([]byte, error) {
	fp := d.fullPath(p)
	fi, err := os.Stat(fp)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &os.PathError{Op: "read", Path: fp, Err: os.ErrNotExist}
	}
	return os.ReadFile(fp)
}
