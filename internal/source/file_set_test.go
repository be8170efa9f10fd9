package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("index.liquid", []byte("p hello"), 0)
	id2 := fs.Add("index.liquid", []byte("p world"), 0)
	if id1 == id2 {
		t.Fatal("Expected a new FileID for the second Add")
	}

	if got := fs.Get(id2).Path; got != "index.liquid" {
		t.Errorf("Expected normalized path, got %q", got)
	}

	if got := fs.Get(id1).Source(); got != "p hello" {
		t.Errorf("Expected first version content 'p hello', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 stored files, got %d", fs.Len())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("stdin.liquid", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	file := fs.Get(id)

	if file.Source() != "a\nb\n" {
		t.Errorf("Expected normalized content, got %q", file.Source())
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if file.Flags != want {
		t.Errorf("Expected flags %b, got %b", want, file.Flags)
	}
	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) || file.LineIdx[0] != 1 || file.LineIdx[1] != 3 {
		t.Errorf("Expected LineIdx %v, got %v", expected, file.LineIdx)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb"))
	if changed || string(out) != "a\rb" {
		t.Errorf("Expected lone \\r untouched, got %q (changed=%v)", out, changed)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"", nil},
		{".style\n", []string{".style"}},
		{".style\n\n", []string{".style"}},
		{".style\n ", []string{".style", " "}},
		{"\n.style", []string{"", ".style"}},
	}
	for _, tc := range cases {
		got := SplitLines(tc.content)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.liquid")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if file.Source() != "a\nb\n" {
		t.Errorf("Expected file content 'a\\nb\\n', got %q", file.Source())
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag to be set")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.liquid")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadReader(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadReader("views/show.liquid", strings.NewReader("p hi\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	file := fs.Get(id)
	if file.Path != "views/show.liquid" || file.Flags&FileVirtual == 0 {
		t.Errorf("unexpected file %+v", file)
	}
}
