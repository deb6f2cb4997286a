package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSave(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	stored, err := store.Save(strings.NewReader("file body"), "My Report.PDF")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if stored.Ext != "pdf" {
		t.Errorf("Ext = %q, want %q", stored.Ext, "pdf")
	}
	if stored.OriginalName != "My Report.PDF" {
		t.Errorf("OriginalName = %q", stored.OriginalName)
	}
	if stored.ID == "" {
		t.Error("ID should not be empty")
	}
	if !strings.HasSuffix(stored.Path, stored.ID+".pdf") {
		t.Errorf("Path = %q, want suffix %q", stored.Path, stored.ID+".pdf")
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "file body" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	a, err := store.Save(strings.NewReader("a"), "same.txt")
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Save(strings.NewReader("b"), "same.txt")
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("two saves of the same name must not collide: %q", a.Path)
	}
}

func TestOpenStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Open("../secret.txt"); !os.IsNotExist(err) {
		t.Errorf("traversal should not escape the store dir, err = %v", err)
	}
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	oldFile := filepath.Join(dir, "old.txt")
	newFile := filepath.Join(dir, "new.txt")
	for _, p := range []string{oldFile, newFile} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Sweep(time.Hour)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("old file should be gone")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Errorf("new file should survive: %v", err)
	}
}
