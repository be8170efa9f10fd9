package testkit

import "testing"

func TestNormalize(t *testing.T) {
	got := Normalize(`
    p
      | text

    div
`)
	want := "p\n  | text\n\ndiv\n"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeWithoutIndent(t *testing.T) {
	if got := Normalize("a\nb"); got != "a\nb" {
		t.Errorf("Normalize = %q", got)
	}
}
