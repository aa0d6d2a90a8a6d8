package pegstack

import "fmt"

// Range is a half-open span `[Start, End)` of byte offsets into the
// source text.  Values and failures use it to point back at the input.
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String renders empty spans as a single offset
func (r Range) String() string {
	if r.Len() == 0 {
		return fmt.Sprint(r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r Range) Len() int { return r.End - r.Start }

// Str slices the text covered by the span out of `source`
func (r Range) Str(source string) string {
	return source[r.Start:r.End]
}

// Contains is true when `other` lies entirely within the span
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}
