package diag

import "sort"

// Bag collects issues up to an optional limit.
type Bag struct {
	items []Issue
	max   int
}

// NewBag creates a bag; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет issue, учитывая лимит.
// Возвращает false, если issue не добавлен (достигнут лимит).
func (b *Bag) Add(i Issue) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, i)
	return true
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Issue {
	return b.items
}

// SortIssues sorts issues in place by file, line, severity (desc), linter and message.
func SortIssues(items []Issue) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i], items[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Linter != dj.Linter {
			return di.Linter < dj.Linter
		}
		return di.Message < dj.Message
	})
}
