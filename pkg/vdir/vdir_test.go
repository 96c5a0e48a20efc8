package vdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_LocalFolder(t *testing.T) {
	dir := t.TempDir()

	vd, err := Open(context.Background(), Path{Kind: KindLocalFolder, LocalPath: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer vd.Close()

	if vd.Path() != dir {
		t.Errorf("Path() = %q, want %q", vd.Path(), dir)
	}
}

// A LocalFolder source carrying a sub_folder must resolve to that nested
// directory, not the root the source string names.
func TestOpen_LocalFolderWithSubFolder(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "model", "db")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	vd, err := Open(context.Background(), Path{Kind: KindLocalFolder, LocalPath: dir, SubFolder: "model/db"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer vd.Close()

	if vd.Path() != sub {
		t.Errorf("Path() = %q, want %q", vd.Path(), sub)
	}
}

func TestOpen_LocalFolderMissing(t *testing.T) {
	if _, err := Open(context.Background(), Path{Kind: KindLocalFolder, LocalPath: "/nonexistent/path/that/does/not/exist"}); err == nil {
		t.Error("Open() error = nil, want error for missing directory")
	}
}

func TestOpen_LocalFolderNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Open(context.Background(), Path{Kind: KindLocalFolder, LocalPath: file}); err == nil {
		t.Error("Open() error = nil, want error for non-directory path")
	}
}

// Close is safe to call more than once, and safe on a handle that owns no
// temp storage (the scoped-acquisition contract every VDir source shares).
func TestVirtualDirectory_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	vd, err := Open(context.Background(), Path{Kind: KindLocalFolder, LocalPath: dir})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := vd.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := vd.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
