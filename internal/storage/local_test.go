package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return store
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	n, err := store.Save("todo-1/123-a.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Save() wrote %d bytes, want 5", n)
	}

	r, err := store.Open("todo-1/123-a.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Open() bytes = %q, want hello", data)
	}

	if !store.Exists("todo-1/123-a.txt") {
		t.Error("Exists() = false for a stored key")
	}
	if store.Exists("todo-1/missing.txt") {
		t.Error("Exists() = true for an absent key")
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store := newTestStore(t)

	keys := []string{
		"",
		"../outside.txt",
		"../../etc/passwd",
		"a/../../outside.txt",
		"/etc/passwd",
	}
	for _, key := range keys {
		if _, err := store.Save(key, strings.NewReader("x")); err == nil {
			t.Errorf("Save(%q) error = nil, want rejection", key)
		}
		if _, err := store.Open(key); err == nil {
			t.Errorf("Open(%q) error = nil, want rejection", key)
		}
	}

	// A dot segment that stays inside the root is fine
	if _, err := store.Save("a/../b.txt", strings.NewReader("x")); err != nil {
		t.Errorf("Save(a/../b.txt) error = %v, want nil", err)
	}
	if !store.Exists("b.txt") {
		t.Error("cleaned key did not land at b.txt")
	}
}

func TestLocalStore_Rel(t *testing.T) {
	store := newTestStore(t)

	inside := filepath.Join(store.Root(), "todo-1", "file.txt")
	key, err := store.Rel(inside)
	if err != nil {
		t.Fatalf("Rel() error = %v", err)
	}
	if key != "todo-1/file.txt" {
		t.Errorf("Rel() = %q, want todo-1/file.txt", key)
	}

	outside := filepath.Join(filepath.Dir(store.Root()), "elsewhere", "file.txt")
	if _, err := store.Rel(outside); err == nil {
		t.Error("Rel() accepted a path outside the root")
	}
}

func TestLocalStore_Remove(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save("todo-1/123-a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Remove("todo-1/123-a.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if store.Exists("todo-1/123-a.txt") {
		t.Error("file still exists after Remove()")
	}

	// Emptied per-todo directory is dropped as well
	if _, err := os.Stat(filepath.Join(store.Root(), "todo-1")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("empty todo directory survived Remove(), stat err = %v", err)
	}

	// Removing again surfaces fs.ErrNotExist for the caller to interpret
	err := store.Remove("todo-1/123-a.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove() on missing file error = %v, want fs.ErrNotExist", err)
	}
}

func TestLocalStore_Walk(t *testing.T) {
	store := newTestStore(t)

	files := []string{"todo-1/1-a.txt", "todo-1/2-b.txt", "todo-2/3-c.txt"}
	for _, key := range files {
		if _, err := store.Save(key, strings.NewReader("x")); err != nil {
			t.Fatalf("Save(%q) error = %v", key, err)
		}
	}

	var seen []string
	err := store.Walk(func(key string, info fs.FileInfo) error {
		seen = append(seen, key)
		if info.Size() != 1 {
			t.Errorf("Walk() info.Size() = %d for %q, want 1", info.Size(), key)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	sort.Strings(seen)
	if len(seen) != len(files) {
		t.Fatalf("Walk() visited %d files, want %d", len(seen), len(files))
	}
	for i, key := range files {
		if seen[i] != key {
			t.Errorf("Walk() visited %q, want %q", seen[i], key)
		}
	}
}
