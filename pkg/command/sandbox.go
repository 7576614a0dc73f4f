package command

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// RootFs resolves every name inside root. Names that leave root through
// ".." fail with os.ErrNotExist, like a missing file.
type RootFs struct {
	afero.Fs
	root string
}

// NewRootFs makes root absolute and sandboxes base to it.
func NewRootFs(base afero.Fs, root string) (*RootFs, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &RootFs{
		Fs:   afero.NewBasePathFs(base, abs),
		root: abs,
	}, nil
}

func (r *RootFs) Root() string { return r.root }

func (r *RootFs) check(op, name string) error {
	rel, err := filepath.Rel(r.root, filepath.Join(r.root, name))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
	}
	return nil
}

func (r *RootFs) Create(name string) (afero.File, error) {
	if err := r.check("create", name); err != nil {
		return nil, err
	}
	return r.Fs.Create(name)
}

func (r *RootFs) Mkdir(name string, perm os.FileMode) error {
	if err := r.check("mkdir", name); err != nil {
		return err
	}
	return r.Fs.Mkdir(name, perm)
}

func (r *RootFs) MkdirAll(name string, perm os.FileMode) error {
	if err := r.check("mkdir", name); err != nil {
		return err
	}
	return r.Fs.MkdirAll(name, perm)
}

func (r *RootFs) Open(name string) (afero.File, error) {
	if err := r.check("open", name); err != nil {
		return nil, err
	}
	return r.Fs.Open(name)
}

func (r *RootFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := r.check("openfile", name); err != nil {
		return nil, err
	}
	return r.Fs.OpenFile(name, flag, perm)
}

func (r *RootFs) Remove(name string) error {
	if err := r.check("remove", name); err != nil {
		return err
	}
	return r.Fs.Remove(name)
}

func (r *RootFs) RemoveAll(name string) error {
	if err := r.check("remove_all", name); err != nil {
		return err
	}
	return r.Fs.RemoveAll(name)
}

func (r *RootFs) Rename(oldname, newname string) error {
	if err := r.check("rename", oldname); err != nil {
		return err
	}
	if err := r.check("rename", newname); err != nil {
		return err
	}
	return r.Fs.Rename(oldname, newname)
}

func (r *RootFs) Stat(name string) (os.FileInfo, error) {
	if err := r.check("stat", name); err != nil {
		return nil, err
	}
	return r.Fs.Stat(name)
}

func (r *RootFs) Chmod(name string, mode os.FileMode) error {
	if err := r.check("chmod", name); err != nil {
		return err
	}
	return r.Fs.Chmod(name, mode)
}

func (r *RootFs) Chown(name string, uid, gid int) error {
	if err := r.check("chown", name); err != nil {
		return err
	}
	return r.Fs.Chown(name, uid, gid)
}

func (r *RootFs) Chtimes(name string, atime, mtime time.Time) error {
	if err := r.check("chtimes", name); err != nil {
		return err
	}
	return r.Fs.Chtimes(name, atime, mtime)
}
