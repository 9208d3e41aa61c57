package todo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// List configures lists loaded from the store.
	List Options

	// Logger receives debug output about reads and writes. If nil, output
	// is discarded.
	Logger *log.Logger

	// Lenient accepts documents whose orderings disagree with task state,
	// so that they can be repaired with List.Clean.
	Lenient bool
}

// Store persists a List as a single JSON document, guarded by a lock file
// next to it.
type Store struct {
	path   string
	opts   StoreOptions
	logger *log.Logger
}

// OpenStore returns a store for the document at path. The file need not
// exist yet.
func OpenStore(path string, opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, opts: opts, logger: logger}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Load reads the list from disk. A missing file yields an empty list.
func (s *Store) Load() (*List, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no task list on disk", "path", s.path)
		return New(s.opts.List)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}

	var l *List
	if s.opts.Lenient {
		l, err = UnmarshalLenient(data, s.opts.List)
	} else {
		l, err = Unmarshal(data, s.opts.List)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.logger.Debug("loaded task list", "path", s.path, "tasks", l.Len())
	return l, nil
}

// Save writes the list atomically via a temp file and rename. Writing an
// unchanged document is skipped.
func (s *Store) Save(l *List) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	if existing, err := os.ReadFile(s.path); err == nil {
		if bytes.Equal(existing, data) {
			s.logger.Debug("task list unchanged", "path", s.path)
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("%w: write temp file: %w", ErrIO, err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("%w: rename %s: %w", ErrIO, s.path, err)
	}
	s.logger.Debug("saved task list", "path", s.path, "tasks", l.Len(), "bytes", len(data))
	return nil
}

// View loads the list under a shared lock and passes it to fn.
func (s *Store) View(fn func(l *List) error) error {
	return s.withLock(syscall.LOCK_SH, func() error {
		l, err := s.Load()
		if err != nil {
			return err
		}
		return fn(l)
	})
}

// Update loads the list under an exclusive lock, applies fn and saves the
// result. Nothing is written when fn fails.
func (s *Store) Update(fn func(l *List) error) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		l, err := s.Load()
		if err != nil {
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		return s.Save(l)
	})
}

func (s *Store) withLock(how int, fn func() error) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("%w: open lock file: %w", ErrIO, err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), how); err != nil {
		return fmt.Errorf("%w: acquire lock: %w", ErrIO, err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}
