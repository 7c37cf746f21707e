package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadURLList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := `
https://www.youtube.com/watch?v=one

# a comment
https://www.youtube.com/watch?v=two
   https://www.youtube.com/watch?v=three
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := readURLList(path)
	if err != nil {
		t.Fatalf("readURLList() error: %v", err)
	}
	expected := []string{
		"https://www.youtube.com/watch?v=one",
		"https://www.youtube.com/watch?v=two",
		"https://www.youtube.com/watch?v=three",
	}
	if !reflect.DeepEqual(urls, expected) {
		t.Errorf("readURLList() = %v, expected %v", urls, expected)
	}
}

func TestReadURLList_MissingFile(t *testing.T) {
	if _, err := readURLList(filepath.Join(t.TempDir(), "input.txt")); err == nil {
		t.Error("readURLList() expected error for missing file")
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"get", "batch", "enrich"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}
