package filter

// Builder accumulates predicates for a Filter.
//
// Duplicate predicates resolve last-write-wins: a later bound replaces the
// earlier bound of the same side, and when it contradicts the opposite bound
// (new min above old max, or new max below old min) the older bound is dropped.
// Exact predicates are replaced outright.
type Builder struct {
	ranges   map[string]Range
	exact    map[string]string
	keywords []string
	seen     map[string]struct{}
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		ranges: make(map[string]Range),
		exact:  make(map[string]string),
		seen:   make(map[string]struct{}),
	}
}

// SetMin sets the lower bound of a field's range.
func (b *Builder) SetMin(field string, v float64) *Builder {
	r := b.ranges[field]
	if r.max != nil && *r.max < v {
		r.max = nil
	}
	r.min = &v
	b.ranges[field] = r
	return b
}

// SetMax sets the upper bound of a field's range.
func (b *Builder) SetMax(field string, v float64) *Builder {
	r := b.ranges[field]
	if r.min != nil && *r.min > v {
		r.min = nil
	}
	r.max = &v
	b.ranges[field] = r
	return b
}

// SetRange replaces both bounds of a field's range.
func (b *Builder) SetRange(field string, r Range) *Builder {
	b.ranges[field] = Range{min: clonePtr(r.min), max: clonePtr(r.max)}
	return b
}

// SetMatch sets the exact/contains token for a field.
func (b *Builder) SetMatch(field, token string) *Builder {
	if token != "" {
		b.exact[field] = token
	}
	return b
}

// AddKeyword appends a free keyword. Duplicates, empty tokens, and keywords
// past MaxKeywords are ignored; the return value reports whether it was kept.
func (b *Builder) AddKeyword(kw string) bool {
	if kw == "" || len(b.keywords) >= MaxKeywords {
		return false
	}
	if _, dup := b.seen[kw]; dup {
		return false
	}
	b.seen[kw] = struct{}{}
	b.keywords = append(b.keywords, kw)
	return true
}

// Build returns an immutable Filter. The Builder may keep being used.
func (b *Builder) Build() Filter {
	f := Filter{}
	if len(b.ranges) > 0 {
		f.ranges = make(map[string]Range, len(b.ranges))
		for k, r := range b.ranges {
			f.ranges[k] = Range{min: clonePtr(r.min), max: clonePtr(r.max)}
		}
	}
	if len(b.exact) > 0 {
		f.exact = make(map[string]string, len(b.exact))
		for k, m := range b.exact {
			f.exact[k] = m
		}
	}
	if len(b.keywords) > 0 {
		f.keywords = append([]string(nil), b.keywords...)
	}
	return f
}
