package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestROMFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pong.ch8", "README", "Tetris.CH8", "ibm.c8", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0x12, 0x00}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "games.ch8"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := romFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Tetris.CH8", "ibm.c8", "pong.ch8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("romFiles = %q, want %q", got, want)
	}
}

func TestROMFilesMissingDir(t *testing.T) {
	if _, err := romFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("got nil error for a missing directory")
	}
}
