package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store is the per-invocation cache of configuration documents, keyed
// by absolute file path. A path appears at most once; the dirty flag is
// set iff the entry was created or mutated since it was last written.
//
// The store is owned by exactly one execution context and is not safe
// for concurrent use; a caide invocation is single-threaded by design.
type Store struct {
	root    string
	entries map[string]*entry
}

type entry struct {
	doc   *Document
	dirty bool
}

// NewStore creates an empty store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{
		root:    root,
		entries: make(map[string]*entry),
	}
}

// Root returns the workspace root directory.
func (s *Store) Root() string { return s.root }

// resolve normalizes a path: relative paths are taken relative to the
// workspace root.
func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

// CreateConf inserts a brand-new document at path and returns its
// handle. The entry starts dirty so it is written on commit. Fails
// with ErrAlreadyExists if the path is already cached this invocation.
func (s *Store) CreateConf(path string, doc *Document) (Handle, error) {
	full := s.resolve(path)
	if _, ok := s.entries[full]; ok {
		return Handle{}, fmt.Errorf("%w: %s", ErrAlreadyExists, full)
	}
	if doc == nil {
		doc = NewDocument()
	}
	s.entries[full] = &entry{doc: doc, dirty: true}
	return Handle{path: full}, nil
}

// ReadConf returns a handle for the document at path, reading and
// parsing the file on first touch. Subsequent calls for the same path
// reuse the cached entry and never re-read the disk.
func (s *Store) ReadConf(path string) (Handle, error) {
	full := s.resolve(path)
	if _, ok := s.entries[full]; ok {
		return Handle{path: full}, nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: read %s: %v", ErrIO, full, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return Handle{}, fmt.Errorf("parse %s: %w", full, err)
	}
	s.entries[full] = &entry{doc: doc}
	return Handle{path: full}, nil
}

// TemporaryConf returns the handle of the session-only document,
// creating it on first use. The document lives under a reserved
// sentinel path and is never selected by Commit.
func (s *Store) TemporaryConf() TempHandle {
	if _, ok := s.entries[temporaryPath]; !ok {
		s.entries[temporaryPath] = &entry{doc: NewDocument(), dirty: true}
	}
	return TempHandle{}
}

// Flush writes the referenced document to disk immediately and clears
// its dirty flag. Used when a later step (an external process, say)
// must observe the file before the invocation commits.
func (s *Store) Flush(h Handle) error {
	e, ok := s.entries[h.path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotCached, h.path)
	}
	if err := writeDocument(h.path, e.doc); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// GetProp returns the interpolated value of section/key in the
// referenced document. The injected caideRoot variable resolves to the
// store root.
func (s *Store) GetProp(ref Ref, section, key string) (string, error) {
	e, ok := s.entries[ref.confPath()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownHandle, ref.confPath())
	}
	raw, ok := e.doc.Get(section, key)
	if !ok {
		return "", fmt.Errorf("%w: [%s] %s", ErrNoOption, section, key)
	}
	return e.doc.Interpolate(section, raw, s.interpolationVars())
}

// SetProp stores value under section/key in the referenced document and
// marks the entry dirty.
func (s *Store) SetProp(ref Ref, section, key, value string) error {
	e, ok := s.entries[ref.confPath()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, ref.confPath())
	}
	if err := e.doc.Set(section, key, value); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// Commit writes every dirty persistent entry back to disk, creating
// parent directories as needed. The temporary sentinel entry is always
// skipped. Paths are written in sorted order so failures are
// deterministic.
func (s *Store) Commit() error {
	paths := make([]string, 0, len(s.entries))
	for path, e := range s.entries {
		if path == temporaryPath || !e.dirty {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		e := s.entries[path]
		if err := writeDocument(path, e.doc); err != nil {
			return err
		}
		e.dirty = false
	}
	return nil
}

// DirtyPaths lists the persistent paths that would be written by
// Commit, in sorted order.
func (s *Store) DirtyPaths() []string {
	var paths []string
	for path, e := range s.entries {
		if path != temporaryPath && e.dirty {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// interpolationVars carries the variables injected into every lookup.
func (s *Store) interpolationVars() map[string]string {
	return map[string]string{RootVariable: s.root}
}

// writeDocument serializes doc to path, creating parent directories.
func writeDocument(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrIO, filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, path, err)
	}
	if err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, path, err)
	}
	return nil
}

// GetTypedProp returns the value of section/key decoded by the given
// codec function. A decode failure reports ErrMalformedOption.
func GetTypedProp[T any](s *Store, ref Ref, section, key string, decode func(string) (T, bool)) (T, error) {
	var zero T
	raw, err := s.GetProp(ref, section, key)
	if err != nil {
		return zero, err
	}
	v, ok := decode(raw)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] %s = %q", ErrMalformedOption, section, key, raw)
	}
	return v, nil
}

// SetTypedProp stores the value of section/key encoded by the given
// codec function.
func SetTypedProp[T any](s *Store, ref Ref, section, key string, value T, encode func(T) string) error {
	return s.SetProp(ref, section, key, encode(value))
}
