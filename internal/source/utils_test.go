package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeTemplateInput(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		want     string
		wantBOM  bool
		wantCRLF bool
	}{
		{"plain", "- if a\n  p b\n", "- if a\n  p b\n", false, false},
		{"crlf", "- if a\r\n  p b\r\n", "- if a\n  p b\n", false, true},
		{"bom", "\xEF\xBB\xBFdiv\n", "div\n", true, false},
		{"bom and crlf", "\xEF\xBB\xBF/ note\r\np x\r\n", "/ note\np x\n", true, true},
		{"lone cr kept", "p a\rb\n", "p a\rb\n", false, false},
		{"short", "p", "p", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, flags := normalize([]byte(tc.in))
			if string(got) != tc.want {
				t.Fatalf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if (flags&FileHadBOM != 0) != tc.wantBOM {
				t.Errorf("BOM flag = %v, want %v", flags&FileHadBOM != 0, tc.wantBOM)
			}
			if (flags&FileNormalizedCRLF != 0) != tc.wantCRLF {
				t.Errorf("CRLF flag = %v, want %v", flags&FileNormalizedCRLF != 0, tc.wantCRLF)
			}
		})
	}
}

func TestBuildLineIndexAfterCRLF(t *testing.T) {
	content, _ := normalizeCRLF([]byte("div\r\n  p \r\n= x\r\n"))
	got := buildLineIndex(content)
	want := []uint32{3, 8, 12}
	if len(got) != len(want) {
		t.Fatalf("line index %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line index %v, want %v", got, want)
		}
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	views := filepath.Join(tmp, "app", "views")
	if err := os.MkdirAll(filepath.Join(views, "shared"), 0o755); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"partial inside views", filepath.Join(views, "shared", "_nav.liquid"), "shared/_nav.liquid"},
		{"views root", filepath.Join(views, "index.liquid"), "index.liquid"},
		{"sibling dir falls back to absolute", filepath.Join(tmp, "lib", "mailer.liquid"), normalizePath(filepath.Join(tmp, "lib", "mailer.liquid"))},
		{"dotdot prefix name stays inside", filepath.Join(views, "..layouts.liquid"), "..layouts.liquid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RelativePath(tc.target, views)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tc.want {
				t.Fatalf("RelativePath(%q) = %q, want %q", tc.target, got, tc.want)
			}
		})
	}
}

func TestFormatPathModes(t *testing.T) {
	views := t.TempDir()
	long := filepath.Join(views, "app", "views", "accounts", "settings", "show.liquid")

	if got := FormatPath(long, "basename", ""); got != "show.liquid" {
		t.Errorf("basename: %q", got)
	}
	if got := FormatPath(long, "relative", views); got != "app/views/accounts/settings/show.liquid" {
		t.Errorf("relative: %q", got)
	}
	if got := FormatPath("views/a.liquid", "auto", ""); got != "views/a.liquid" {
		t.Errorf("auto keeps relative input: %q", got)
	}
	if len(long) >= 40 {
		if got := FormatPath(long, "auto", ""); got != "show.liquid" {
			t.Errorf("auto shortens long absolute: %q", got)
		}
	}
	if got := FormatPath("a.liquid", "unknown", ""); got != "a.liquid" {
		t.Errorf("unknown mode: %q", got)
	}
}
