// Package store is a flat-file key value layer: one JSON file per
// entry under <root>/<namespace>/<id>.json. The poll and reminder
// repositories layer their record types on top of it.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/natefinch/atomic"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotFound = errors.New("no such entry")
	ErrCorrupt  = errors.New("corrupt entry")
	ErrBadKey   = errors.New("invalid namespace or id")
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	err := os.MkdirAll(root, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}

	return &Store{root: root}, nil
}

// Namespaces and ids become path components, so anything that could
// escape the root is rejected outright.
func (s *Store) path(namespace, id string) (string, error) {
	for _, part := range []string{namespace, id} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrBadKey, part)
		}
	}

	return filepath.Join(s.root, namespace, id+".json"), nil
}

// Put serializes record and replaces whatever is stored at
// (namespace, id). The write goes through a temp file and rename so a
// crash mid-write never leaves a half written entry where Get can see
// it. The namespace directory is created on first use.
func (s *Store) Put(namespace, id string, record any) error {
	path, err := s.path(namespace, id)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create namespace dir: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal entry %s/%s: %w", namespace, id, err)
	}

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to write entry %s/%s: %w", namespace, id, err)
	}

	return nil
}

// Get reads the entry at (namespace, id) into record. A missing file
// is ErrNotFound, bytes that do not parse are ErrCorrupt.
func (s *Store) Get(namespace, id string, record any) error {
	path, err := s.path(namespace, id)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, id)
	}

	if err != nil {
		return fmt.Errorf("failed to read entry %s/%s: %w", namespace, id, err)
	}

	err = json.Unmarshal(data, record)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrCorrupt, namespace, id, err)
	}

	return nil
}

func (s *Store) Delete(namespace, id string) error {
	path, err := s.path(namespace, id)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, id)
	}

	if err != nil {
		return fmt.Errorf("failed to delete entry %s/%s: %w", namespace, id, err)
	}

	return nil
}

// List returns the ids stored under namespace, in no particular
// order. A namespace that has never been written to lists as empty.
func (s *Store) List(namespace string) ([]string, error) {
	if _, err := s.path(namespace, "-"); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, namespace))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list namespace %s: %w", namespace, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}

	return ids, nil
}

// Namespaces returns every namespace that currently holds entries.
func (s *Store) Namespaces() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	var namespaces []string
	for _, entry := range entries {
		if entry.IsDir() {
			namespaces = append(namespaces, entry.Name())
		}
	}

	return namespaces, nil
}
