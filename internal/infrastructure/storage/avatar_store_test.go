package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAvatarStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAvatarStore(dir)
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	path, err := store.Save("u1", "me.png", bytes.NewReader([]byte("img-bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(path, PublicPrefix+"/u1_") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected public path: %q", path)
	}

	name := filepath.Base(path)
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "img-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestAvatarStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "profile_pics")
	if _, err := NewAvatarStore(dir); err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestAvatarStore_ExtensionLowercased(t *testing.T) {
	store, err := NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}

	path, err := store.Save("u1", "ME.JPG", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("extension not lowercased: %q", path)
	}
}
