package store

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"github.com/liftedinit/minichain/internal/ledger"
)

// FileStore keeps a ledger snapshot in a single JSON file.
type FileStore struct {
	path string
	opts []ledger.Option
}

// NewFileStore returns a store for path. opts apply to every ledger it loads
// or creates.
func NewFileStore(path string, opts ...ledger.Option) *FileStore {
	return &FileStore{path: path, opts: opts}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns the ledger stored at the store's path. A missing, unreadable or
// unparsable file yields a fresh ledger instead of an error.
func (s *FileStore) Load() *ledger.Ledger {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("No state file found, starting a new chain", "file", s.path)
		} else {
			slog.Warn("Failed to read state file, starting a new chain", "file", s.path, "error", err)
		}
		return ledger.New(s.opts...)
	}

	l, err := ledger.Decode(data, s.opts...)
	if err != nil {
		slog.Warn("Failed to parse state file, starting a new chain", "file", s.path, "error", err)
		return ledger.New(s.opts...)
	}

	slog.Debug("Loaded state file", "file", s.path, "blocks", l.Len(), "pending", l.PendingLen())
	return l
}

// Save writes l to the store's path, replacing the previous snapshot
// atomically.
func (s *FileStore) Save(l *ledger.Ledger) error {
	data, err := ledger.Encode(l)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pkgerrors.WithMessage(err, "failed to create state directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return pkgerrors.WithMessage(err, "failed to create temporary state file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.WithMessage(err, "failed to write state file")
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return pkgerrors.WithMessage(err, "failed to set state file permissions")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.WithMessage(err, "failed to close state file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return pkgerrors.WithMessage(err, "failed to replace state file")
	}
	return nil
}
