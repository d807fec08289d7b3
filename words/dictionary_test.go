/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() < 200 {
		t.Fatalf("embedded list has %d words", d.Len())
	}
	for _, w := range d.list {
		if !Valid(w) {
			t.Errorf("invalid embedded word %q", w)
		}
	}
	for i := 0; i < 50; i++ {
		if w := d.Random(); !d.Contains(w) {
			t.Fatalf("Random returned %q, not in list", w)
		}
	}
}

func TestLoad(t *testing.T) {
	in := strings.Join([]string{
		"# comment",
		"crane",
		"  Slate ",
		"",
		"CRANE",
		"toolong",
		"ab1de",
		"trace",
	}, "\n")

	d, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"CRANE", "SLATE", "TRACE"}
	if strings.Join(d.list, ",") != strings.Join(want, ",") {
		t.Fatalf("list = %v, want %v", d.list, want)
	}
	if !d.Contains("slate") {
		t.Error("Contains should ignore case")
	}
	if d.Contains("TOOLONG") {
		t.Error("invalid word was kept")
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader("# nothing here\nab\n"))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}

	_, err = New(nil)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("New(nil) err = %v, want ErrEmpty", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("plant\nplane\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewSingleWord(t *testing.T) {
	d, err := New([]string{"crane"})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Random(); got != "CRANE" {
		t.Fatalf("Random = %q, want CRANE", got)
	}
}
