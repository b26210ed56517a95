// Package diff renders line-based diffs between MML documents, for
// showing what an edit session changed before persisting it.
package diff

import (
	"strings"

	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/encode"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Documents diffs the serialized forms of two documents.
func Documents(from, to *dom.Document) string {
	return Text(encode.MustString(from), encode.MustString(to))
}

// Text diffs two strings line by line, rendering "+ ", "- " and "  "
// prefixed lines.
func Text(a, b string) string {
	dmp := diffpatch.New()
	ca, cb, lineIndex := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lineIndex)

	sb := &strings.Builder{}
	for _, df := range diffs {
		mark := "  "
		switch df.Type {
		case diffpatch.DiffInsert:
			mark = "+ "
		case diffpatch.DiffDelete:
			mark = "- "
		}
		text := strings.TrimSuffix(df.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString(mark)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
