package testutils

import (
	"strings"
	"testing"
	"text/tabwriter"
)

// TestCase is one row of an input / expected / actual comparison.
type TestCase struct {
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// Check builds a TestCase that passes when expected and actual are equal.
func Check(input, expected, actual string) TestCase {
	return TestCase{
		Input:    input,
		Expected: expected,
		Actual:   actual,
		Pass:     expected == actual,
	}
}

// PrintTestTable logs the cases as an aligned table, marking failed rows
// with > and <, and fails the test if any case did not pass.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', 0)
	w.Write([]byte("  Input\tExpected Value\tReturned Value\t\n"))

	failed := 0
	for _, tc := range cases {
		left, right := " ", " "
		if !tc.Pass {
			failed++
			left, right = ">", "<"
		}
		w.Write([]byte(left + " " + tc.Input + "\t" + tc.Expected + "\t" + tc.Actual + "\t" + right + "\n"))
	}
	w.Flush()

	t.Log("\n" + sb.String())
	if failed > 0 {
		t.Errorf("%d of %d cases failed", failed, len(cases))
	}
}
