package pipeline

import (
	"errors"
	"path/filepath"

	"github.com/gofrs/flock"

	"skillsetl/internal/etlerr"
)

// LockFileName is created inside every directory a stage writes to.
const LockFileName = ".skillsetl.lock"

// ErrBusy reports that another run holds the directory lock.
var ErrBusy = errors.New("directory is locked by another skillsetl run")

// dirLocks holds the locks taken by one stage, released together.
type dirLocks []*flock.Flock

func acquire(stage string, dirs ...string) (dirLocks, error) {
	var held dirLocks
	seen := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		if _, dup := seen[filepath.Clean(dir)]; dup {
			continue
		}
		seen[filepath.Clean(dir)] = struct{}{}
		lock := flock.New(filepath.Join(dir, LockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			held.release()
			return nil, etlerr.Wrap(etlerr.ErrIO, stage, "lock", dir, err)
		}
		if !ok {
			held.release()
			return nil, etlerr.Wrap(etlerr.ErrIO, stage, "lock", dir, ErrBusy)
		}
		held = append(held, lock)
	}
	return held, nil
}

func (l dirLocks) release() {
	for i := len(l) - 1; i >= 0; i-- {
		_ = l[i].Unlock()
	}
}
