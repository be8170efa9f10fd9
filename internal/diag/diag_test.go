package diag

import "testing"

func TestFormatGolden(t *testing.T) {
	issues := []Issue{
		New("TagCase", "views/b.liquid", 3, "Tag `IMG` should be written in lowercase"),
		NewError("", "views/a.liquid", 2, "Unknown line indicator\n  detail"),
		New("Tab", "views/a.liquid", 2, "Tab detected"),
		New("LineLength", "views/a.liquid", 1, "Line is too long. [90/80]"),
	}

	expected := "warning LineLength views/a.liquid:1 Line is too long. [90/80]\n" +
		"error - views/a.liquid:2 Unknown line indicator   detail\n" +
		"warning Tab views/a.liquid:2 Tab detected\n" +
		"warning TagCase views/b.liquid:3 Tag `IMG` should be written in lowercase"

	if got := FormatGolden(issues); got != expected {
		t.Fatalf("unexpected golden issues:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	a := New("Tab", "x.liquid", 1, "Tab detected")
	if !b.Add(a) || !b.Add(a) {
		t.Fatal("expected first two adds to succeed")
	}
	if b.Add(New("Tab", "x.liquid", 2, "Tab detected")) {
		t.Error("expected limit to reject the third issue")
	}
	if b.Len() != 2 || len(b.Items()) != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	i := New("Zwsp", "x.liquid", 4, "Remove zero-width space")
	r.Report(i)
	r.Report(i)
	r.Report(NewError("Zwsp", "x.liquid", 4, "Remove zero-width space"))
	if bag.Len() != 2 {
		t.Errorf("bag has %d issues, want 2", bag.Len())
	}
}

func TestReportFailedAndCounts(t *testing.T) {
	r := NewReport([]Issue{
		New("Tab", "b.liquid", 1, "Tab detected"),
		NewError("", "a.liquid", 5, "Malformed indentation"),
	}, []string{"a.liquid", "b.liquid"})
	if !r.Failed() {
		t.Error("expected report to fail")
	}
	w, e := r.Counts()
	if w != 1 || e != 1 {
		t.Errorf("Counts() = %d, %d", w, e)
	}
	if r.Issues[0].File != "a.liquid" {
		t.Errorf("issues not sorted: %+v", r.Issues)
	}
}

func TestParseSeverity(t *testing.T) {
	if s, err := ParseSeverity("error"); err != nil || s != SevError {
		t.Errorf("ParseSeverity(error) = %v, %v", s, err)
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
}
