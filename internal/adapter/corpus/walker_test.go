package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalker_Walk(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		"english-web-bible.json",
		"translations/kjv.json",
		"notes.txt",
		"backup/old.json",
	}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w := NewWalker(nil, []string{"backup/**"})
	found, err := w.Walk(tmpDir)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := make(map[string]bool, len(found))
	for _, f := range found {
		rel, err := filepath.Rel(tmpDir, f.Path)
		if err != nil {
			t.Fatal(err)
		}
		got[filepath.ToSlash(rel)] = true
	}

	if !got["english-web-bible.json"] {
		t.Error("expected english-web-bible.json to be found")
	}
	if !got["translations/kjv.json"] {
		t.Error("expected translations/kjv.json to be found")
	}
	if got["notes.txt"] {
		t.Error("notes.txt should not match the default include pattern")
	}
	if got["backup/old.json"] {
		t.Error("backup/old.json should be excluded")
	}
}

func TestWalker_CustomIncludes(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "glove.6B.200d.txt"), []byte("the 0.1"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWalker([]string{"**/*.txt"}, nil)
	found, err := w.Walk(tmpDir)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 file, got %d", len(found))
	}
	if found[0].Size == 0 {
		t.Error("expected non-zero file size")
	}
}
