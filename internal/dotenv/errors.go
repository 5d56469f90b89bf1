package dotenv

import (
	"errors"
	"fmt"
)

// ErrInvalidFile matches every error returned by Parse.
var ErrInvalidFile = errors.New("invalid dotenv file")

// Reason identifies why a parse failed.
type Reason int

const (
	// UnexpectedEquals is a declaration with nothing before the '='.
	UnexpectedEquals Reason = iota + 1
	// InvalidName is a name outside [A-Za-z_][A-Za-z0-9_.]* or a line with no '='.
	InvalidName
	// UnexpectedWhitespace is anything other than a comment after a value.
	UnexpectedWhitespace
	// UnexpectedEscapeSequence is a backslash escape not allowed in its quotes.
	UnexpectedEscapeSequence
	// MissingClosingQuote is a quoted value that never ends.
	MissingClosingQuote
)

var reasonText = map[Reason]string{
	UnexpectedEquals:         "an unexpected equals",
	InvalidName:              "an invalid name",
	UnexpectedWhitespace:     "unexpected whitespace",
	UnexpectedEscapeSequence: "an unexpected escape sequence",
	MissingClosingQuote:      "a missing closing quote",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// InvalidFileError describes the first malformed construct in the input.
// Snippet is an exact excerpt of the input, Line is 1-based.
type InvalidFileError struct {
	Reason  Reason
	Snippet string
	Line    int
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("Failed to parse dotenv file due to %s. Failed at [%s].", e.Reason, e.Snippet)
}

func (e *InvalidFileError) Is(target error) bool {
	return target == ErrInvalidFile
}
