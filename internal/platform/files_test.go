package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRenameIfAbsent(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "raw name.mp3")
	dst := filepath.Join(dir, "Clean Name.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := RenameIfAbsent(src, dst)
	if err != nil {
		t.Fatalf("RenameIfAbsent() error: %v", err)
	}
	if got != dst {
		t.Errorf("RenameIfAbsent() = %q, expected %q", got, dst)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source file still exists after rename")
	}

	// Existing destination wins; the new duplicate is dropped.
	dup := filepath.Join(dir, "raw name 2.mp3")
	if err := os.WriteFile(dup, []byte("other audio"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = RenameIfAbsent(dup, dst)
	if err != nil {
		t.Fatalf("RenameIfAbsent() duplicate error: %v", err)
	}
	if got != dst {
		t.Errorf("RenameIfAbsent() duplicate = %q, expected %q", got, dst)
	}
	if _, err := os.Stat(dup); !os.IsNotExist(err) {
		t.Error("duplicate source file was not removed")
	}
	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "audio" {
		t.Errorf("destination content overwritten: %q", content)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	dstDir := filepath.Join(dir, "Rock")
	got, err := MoveFile(src, dstDir)
	if err != nil {
		t.Fatalf("MoveFile() error: %v", err)
	}
	expected := filepath.Join(dstDir, "track.mp3")
	if got != expected {
		t.Errorf("MoveFile() = %q, expected %q", got, expected)
	}
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
}
