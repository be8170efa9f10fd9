package diag

// Reporter: минимальный контракт получения issues от проверок.
type Reporter interface {
	Report(i Issue)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(i Issue) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(i)
}
