package board

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// boardLock is an advisory lock file guarding board.yaml mutations. The
// file holds the owner's token so release never removes another owner's
// lock.
type boardLock struct {
	path  string
	token string
}

// acquireLock creates the lock file exclusively. It fails fast with
// types.ErrLockHeld if another owner has it.
func acquireLock(dir string) (*boardLock, error) {
	path := filepath.Join(dir, lockFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrLockHeld, path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrBoardNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("creating lock %s: %w", path, err)
	}

	l := &boardLock{path: path, token: uuid.NewString()}
	_, werr := f.WriteString(l.token + "\n")
	cerr := f.Close()
	if werr != nil || cerr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing lock %s: %w", path, errors.Join(werr, cerr))
	}
	return l, nil
}

// release removes the lock file if it still carries our token.
func (l *boardLock) release() error {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading lock %s: %w", l.path, err)
	}
	if string(data) != l.token+"\n" {
		return fmt.Errorf("lock %s is owned by another writer", l.path)
	}
	return os.Remove(l.path)
}

// withLock runs fn while holding the board lock when locking is enabled in
// the store's config, and runs it bare otherwise.
func (s *Store) withLock(fn func() error) (err error) {
	if !s.config.Lock {
		return fn()
	}
	l, err := acquireLock(s.dir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := l.release(); rerr != nil {
			s.logger.Warn("releasing board lock", "err", rerr)
			if err == nil {
				err = rerr
			}
		}
	}()
	return fn()
}
