package format

import (
	"strings"

	"github.com/GhostWriters/dotenv/internal/dotenv"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a document comparison.
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// DiffLines compares the canonical renderings of a and b line by line.
func DiffLines(a, b dotenv.Document) []DiffLine {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a.String(), b.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: d.Type, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Diff renders DiffLines with "-", "+" and " " prefixes. It returns an empty
// string when the documents are equal.
func Diff(a, b dotenv.Document) string {
	lines := DiffLines(a, b)
	changed := false
	var sb strings.Builder
	for _, l := range lines {
		prefix := " "
		switch l.Op {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			changed = true
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			changed = true
		}
		sb.WriteString(prefix + l.Text + "\n")
	}
	if !changed {
		return ""
	}
	return sb.String()
}
