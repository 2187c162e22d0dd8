// Package filestore persists client auth state as a JSON document on disk, so
// a CLI session survives between invocations.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/schoolgest-client/token"
)

var _ token.Repo = (*Repo)(nil)

type Repo struct {
	path string
	lock sync.Mutex
}

// New returns a file-backed repo. The file is created on first write.
func New(path string) *Repo {
	return &Repo{path: path}
}

func (r *Repo) Get(key token.Key) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", token.ErrNotFound
	}
	return v, nil
}

func (r *Repo) Set(key token.Key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	values[key] = value
	return r.save(values)
}

func (r *Repo) Delete(keys ...token.Key) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("[filestore Delete] failed to remove %s: %w", r.path, err)
		}
		return nil
	}
	return r.save(values)
}

func (r *Repo) load() (map[token.Key]string, error) {
	values := make(map[token.Key]string)
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[filestore load] failed to read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("[filestore load] corrupt session file %s: %w", r.path, err)
	}
	return values, nil
}

// save writes through a temp file so a crash never leaves a half-written file
func (r *Repo) save(values map[token.Key]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("[filestore save] failed to create folder: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("[filestore save] failed to encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*")
	if err != nil {
		return fmt.Errorf("[filestore save] failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore save] failed to write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore save] failed to chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filestore save] failed to close: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("[filestore save] failed to rename: %w", err)
	}
	return nil
}
