package diag

import (
	"cmp"
	"slices"
)

// DefaultMax caps the number of diagnostics kept per file when
// --max-diagnostics is not positive.
const DefaultMax = 256

// Bag collects the diagnostics of one file up to a limit. Diagnostics past
// the limit are counted, not stored.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = DefaultMax
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), limit: limit}
}

// Add reports false once the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.limit }

// Dropped counts diagnostics rejected by Add.
func (b *Bag) Dropped() int {
	if b == nil {
		return 0
	}
	return b.dropped
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items is the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

func (b *Bag) HasErrors() bool   { return b.any(SevError) }
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

// any reports a diagnostic at least as severe as sev.
func (b *Bag) any(sev Severity) bool {
	if b == nil {
		return false
	}
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Merge appends everything from other; the limit grows to fit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, len(b.items))
	b.dropped += other.dropped
}

// Sort orders by file and position; at the same span errors come first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

func (b *Bag) Messages() []string {
	out := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		out = append(out, d.Message)
	}
	return out
}

// Filter keeps the diagnostics keep accepts, in place.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	if b == nil {
		return
	}
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(&d) })
}

// Transform edits every diagnostic in place (e.g. warnings to errors).
func (b *Bag) Transform(fn func(*Diagnostic)) {
	if b == nil {
		return
	}
	for i := range b.items {
		fn(&b.items[i])
	}
}
