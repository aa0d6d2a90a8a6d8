package pegstack

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Location is a byte offset within the input along with the 1-based
// line and column it translates to.  Columns count runes, not bytes.
type Location struct {
	Line   int
	Column int
	Cursor int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// posIndex translates byte offsets into Locations.  Line starts are
// computed upfront, the rune index used for columns is only built the
// first time a column is requested.
type posIndex struct {
	input string

	// lineStart holds byte 0-based offsets of each line start
	lineStart []int

	runes *runeIndex
}

func newPosIndex(input string) *posIndex {
	// Always include line 1 starting at offset 0.
	lineStart := make([]int, 1, 64)
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &posIndex{input: input, lineStart: lineStart}
}

// LocationAt returns the location of `cursor`.  Offsets out of the
// input boundaries are clamped.
func (pi *posIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(pi.input) {
		cursor = len(pi.input)
	}

	// Find first lineStart > cursor, then step back one.
	lineIdx := sort.Search(len(pi.lineStart), func(i int) bool {
		return pi.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	if pi.runes == nil {
		pi.runes = newRuneIndex(pi.input)
	}
	lineStart := pi.lineStart[lineIdx]
	col := pi.runes.RunesAt(cursor) - pi.runes.RunesAt(lineStart) + 1

	return Location{Line: lineIdx + 1, Column: col, Cursor: cursor}
}

// runeIndex maps UTF-8 byte offsets to rune offsets.  It keeps sparse
// checkpoints so memory stays small and each lookup scans at most
// `strideBytes` bytes.
type runeIndex struct {
	input       string
	byteOffsets []int
	runeOffsets []int
}

func newRuneIndex(input string) *runeIndex {
	const strideBytes = 64

	var (
		runeCount            = 0
		bytesSinceCheckpoint = 0
		index                = &runeIndex{
			input:       input,
			byteOffsets: make([]int, 1, 128),
			runeOffsets: make([]int, 1, 128),
		}
	)

	for i := 0; i < len(input); {
		_, size := utf8.DecodeRuneInString(input[i:])
		if size <= 0 {
			size = 1
		}
		i += size
		runeCount++
		bytesSinceCheckpoint += size

		if bytesSinceCheckpoint >= strideBytes {
			index.byteOffsets = append(index.byteOffsets, i)
			index.runeOffsets = append(index.runeOffsets, runeCount)
			bytesSinceCheckpoint = 0
		}
	}
	return index
}

func (ix *runeIndex) RunesAt(cursor int) int {
	// Find last checkpoint byteOffset <= cursor.
	i := sort.Search(len(ix.byteOffsets), func(i int) bool {
		return ix.byteOffsets[i] > cursor
	}) - 1
	if i < 0 {
		i = 0
	}

	bytePos := ix.byteOffsets[i]
	runePos := ix.runeOffsets[i]

	for bytePos < cursor {
		_, size := utf8.DecodeRuneInString(ix.input[bytePos:])
		if size <= 0 {
			size = 1
		}
		if bytePos+size > cursor {
			break
		}
		runePos++
		bytePos += size
	}
	return runePos
}
