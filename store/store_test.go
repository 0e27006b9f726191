package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string   `json:"unique_id"`
	Message string   `json:"msg"`
	Tags    []string `json:"tags"`
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newStore(t)

	in := record{ID: "abc123", Message: "buy milk", Tags: []string{"a", "b"}}
	require.NoError(t, s.Put("reminders", "abc123", in))

	var out record
	require.NoError(t, s.Get("reminders", "abc123", &out))

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Put("ns", "id", record{ID: "id", Message: "old"}))
	require.NoError(t, s.Put("ns", "id", record{ID: "id", Message: "new"}))

	var out record
	require.NoError(t, s.Get("ns", "id", &out))
	assert.Equal(t, "new", out.Message)
}

func TestGetMissing(t *testing.T) {
	s := newStore(t)

	var out record
	err := s.Get("ns", "nope", &out)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestGetCorrupt(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(s.root, "ns"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.root, "ns", "bad.json"), []byte("{not json"), 0o644))

	var out record
	err = s.Get("ns", "bad", &out)
	assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)

	// The corrupt file stays on disk for inspection.
	_, statErr := os.Stat(filepath.Join(s.root, "ns", "bad.json"))
	assert.NoError(t, statErr)
}

func TestDelete(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Put("ns", "id", record{ID: "id"}))
	require.NoError(t, s.Delete("ns", "id"))

	var out record
	err := s.Get("ns", "id", &out)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	err = s.Delete("ns", "id")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestList(t *testing.T) {
	s := newStore(t)

	ids, err := s.List("empty")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.Put("ns", "one", record{ID: "one"}))
	require.NoError(t, s.Put("ns", "two", record{ID: "two"}))
	require.NoError(t, s.Put("other", "three", record{ID: "three"}))

	ids, err = s.List("ns")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}

func TestNamespaces(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Put("alice#0", "a", record{ID: "a"}))
	require.NoError(t, s.Put("bob#1", "b", record{ID: "b"}))

	namespaces, err := s.Namespaces()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice#0", "bob#1"}, namespaces)
}

func TestBadKeys(t *testing.T) {
	s := newStore(t)

	for _, bad := range []string{"", ".", "..", "a/b", `a\b`} {
		err := s.Put(bad, "id", record{})
		assert.True(t, errors.Is(err, ErrBadKey), "namespace %q: got %v", bad, err)

		err = s.Put("ns", bad, record{})
		assert.True(t, errors.Is(err, ErrBadKey), "id %q: got %v", bad, err)
	}
}
