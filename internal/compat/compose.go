// Package compat compares this parser with the dotenv parser used by
// Docker Compose.
package compat

import (
	"sort"

	"github.com/GhostWriters/dotenv/internal/dotenv"

	composedotenv "github.com/compose-spec/compose-go/v2/dotenv"
)

// Difference is a name the two parsers disagree on. A missing side has its
// Set flag false.
type Difference struct {
	Name       string
	Value      string
	Set        bool
	Compose    string
	ComposeSet bool
}

// Report is the result of Compare.
type Report struct {
	Differences []Difference

	// ComposeErr is the error returned by the Compose parser, if any.
	// Differences is empty when it is set.
	ComposeErr error
}

// Compatible reports whether both parsers accepted the text and agreed on
// every value.
func (r Report) Compatible() bool {
	return r.ComposeErr == nil && len(r.Differences) == 0
}

// Compare parses text with p and with compose-go, without any lookup of
// the process environment, and lists the names whose effective values
// differ. An error from p is returned as is.
func Compare(p *dotenv.Parser, text string) (Report, error) {
	if p == nil {
		p = &dotenv.Parser{}
	}
	doc, err := p.Parse(text)
	if err != nil {
		return Report{}, err
	}

	theirs, err := composedotenv.UnmarshalWithLookup(text, nil)
	if err != nil {
		return Report{ComposeErr: err}, nil
	}

	ours := doc.Map()
	names := make(map[string]bool, len(ours)+len(theirs))
	for k := range ours {
		names[k] = true
	}
	for k := range theirs {
		names[k] = true
	}

	var report Report
	for name := range names {
		v, ok := ours[name]
		cv, cok := theirs[name]
		if ok == cok && v == cv {
			continue
		}
		report.Differences = append(report.Differences, Difference{
			Name:       name,
			Value:      v,
			Set:        ok,
			Compose:    cv,
			ComposeSet: cok,
		})
	}
	sort.Slice(report.Differences, func(i, j int) bool {
		return report.Differences[i].Name < report.Differences[j].Name
	})
	return report, nil
}
