package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// JSONStore keeps each collection in <dir>/<collection>.json.
type JSONStore struct {
	dir    string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewJSONStore creates dir if needed.
func NewJSONStore(dir string, logger *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{dir: dir, logger: logger, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *JSONStore) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// readFile returns the stored document and whether the file existed.
func (s *JSONStore) readFile(name string) ([]byte, bool, error) {
	doc, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return emptyDocument, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return doc, true, nil
}

// writeFile replaces the collection file via a synced temp file and rename.
func (s *JSONStore) writeFile(name string, doc []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *JSONStore) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	l := s.lockFor(collection)
	l.Lock()
	defer l.Unlock()
	doc, _, err := s.readFile(collection)
	return doc, err
}

func (s *JSONStore) Write(ctx context.Context, collection string, doc []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.lockFor(collection)
	l.Lock()
	defer l.Unlock()
	return s.writeFile(collection, doc)
}

func (s *JSONStore) Transact(ctx context.Context, fn func(tx Tx) error, collections ...string) error {
	names, err := lockOrder(collections)
	if err != nil {
		return err
	}
	for _, name := range names {
		l := s.lockFor(name)
		l.Lock()
		defer l.Unlock()
	}

	tx := &jsonTx{store: s, declared: names, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

func (s *JSONStore) Close() error { return nil }

type jsonTx struct {
	store    *JSONStore
	declared []string
	staged   map[string][]byte
	order    []string
}

func (tx *jsonTx) check(name string) error {
	for _, d := range tx.declared {
		if d == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUndeclared, name)
}

func (tx *jsonTx) Load(collection string) ([]byte, error) {
	if err := tx.check(collection); err != nil {
		return nil, err
	}
	if doc, ok := tx.staged[collection]; ok {
		return doc, nil
	}
	doc, _, err := tx.store.readFile(collection)
	return doc, err
}

func (tx *jsonTx) Save(collection string, doc []byte) error {
	if err := tx.check(collection); err != nil {
		return err
	}
	if _, ok := tx.staged[collection]; !ok {
		tx.order = append(tx.order, collection)
	}
	tx.staged[collection] = doc
	return nil
}

type previous struct {
	name    string
	doc     []byte
	existed bool
}

// commit writes staged collections in save order. If one write fails, the
// collections already written are put back as they were.
func (tx *jsonTx) commit() error {
	var done []previous
	for _, name := range tx.order {
		old, existed, err := tx.store.readFile(name)
		if err != nil {
			tx.rollback(done)
			return err
		}
		if err := tx.store.writeFile(name, tx.staged[name]); err != nil {
			tx.rollback(done)
			return err
		}
		done = append(done, previous{name: name, doc: old, existed: existed})
	}
	return nil
}

func (tx *jsonTx) rollback(done []previous) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		var err error
		if p.existed {
			err = tx.store.writeFile(p.name, p.doc)
		} else {
			err = os.Remove(tx.store.path(p.name))
		}
		if err != nil {
			tx.store.logger.Error("Failed to restore collection after aborted commit",
				zap.String("collection", p.name), zap.Error(err))
		}
	}
}
