package fstab

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// WriteFile replaces path with the rendered table. Any pre-existing
// version is copied to path+".old" first, and an exclusive lock is held
// on the file for the duration of the rewrite so concurrent writers
// cannot interleave. The lock is released on every exit path.
func (t *Table) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	if err := backup(path); err != nil {
		return fmt.Errorf("back up %s: %w", path, err)
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	if _, err := f.Write(t.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}

// backup copies the current contents of path to path+".old". The copy is
// taken rather than a rename so the locked inode stays the live file.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		// Freshly created by our own open, nothing to preserve.
		return nil
	}
	return os.WriteFile(path+".old", data, 0644)
}
