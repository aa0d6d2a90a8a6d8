package pegstack

import (
	"regexp"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var reNL = regexp.MustCompile(`(?m)^`)

// diff renders the differences between two multiline strings, tab
// indented so it stands out in test output
func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}
