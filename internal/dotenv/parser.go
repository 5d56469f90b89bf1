package dotenv

import "strings"

// SingleQuoteMode selects how escapes inside single quotes are treated.
type SingleQuoteMode int

const (
	// SingleQuoteVerbatim validates escapes but keeps them exactly as written,
	// so '\t' stays a backslash followed by t.
	SingleQuoteVerbatim SingleQuoteMode = iota
	// SingleQuoteDecode decodes valid escapes the way double quotes do.
	SingleQuoteDecode
)

// Parser holds parse options. The zero value is ready to use.
type Parser struct {
	SingleQuotes SingleQuoteMode
}

// Parse parses text with the default options.
func Parse(text string) (Document, error) {
	var p Parser
	return p.Parse(text)
}

// Parse parses text into a Document. On failure it returns a nil Document
// and an *InvalidFileError describing the first problem found.
func (p *Parser) Parse(text string) (Document, error) {
	decls, err := p.Declarations(text)
	if err != nil {
		return nil, err
	}
	var doc Document
	for _, d := range decls {
		doc = append(doc, d.Entry)
	}
	return doc, nil
}

// Declaration is an entry together with the source text it was parsed from.
type Declaration struct {
	Entry
	// Line is the 1-based line the declaration starts on.
	Line int
	// Raw runs from the first non-blank byte of the declaration to the end
	// of its last physical line, so a multi-line value is included whole.
	Raw string
	// Literal is the part of Raw after the first '='.
	Literal string
}

// Declarations parses text like Parse but keeps where each entry came from.
func (p *Parser) Declarations(text string) ([]Declaration, error) {
	s := &scanner{
		src:          text,
		line:         1,
		decodeSingle: p.SingleQuotes == SingleQuoteDecode,
	}

	var decls []Declaration
	for s.skipBlank() {
		start, line := s.pos, s.line
		e, err := s.entry()
		if err != nil {
			return nil, err
		}
		decls = append(decls, Declaration{
			Entry:   e,
			Line:    line,
			Raw:     text[start:s.pos],
			Literal: text[s.valueStart:s.pos],
		})
	}
	return decls, nil
}

type quoteContext int

const (
	unquoted quoteContext = iota
	singleQuoted
	doubleQuoted
)

func contextOf(c byte) quoteContext {
	switch c {
	case '"':
		return doubleQuoted
	case '\'':
		return singleQuoted
	}
	return unquoted
}

// scanner is the cursor for a single Parse call.
type scanner struct {
	src          string
	pos          int
	line         int
	valueStart   int
	decodeSingle bool
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == '\r'
}

func trimBlank(s string) string {
	return strings.TrimRight(s, " \t\v\f")
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

// lineEnd returns the offset of the line break (or end of input) that ends
// the physical line containing from.
func (s *scanner) lineEnd(from int) int {
	if i := strings.IndexAny(s.src[from:], "\r\n"); i >= 0 {
		return from + i
	}
	return len(s.src)
}

// skipLineBreak consumes one of \n, \r\n or \r.
func (s *scanner) skipLineBreak() {
	if s.src[s.pos] == '\r' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '\n' {
		s.pos++
	}
	s.pos++
	s.line++
}

// skipBlank moves past whitespace, empty lines and full-line comments and
// reports whether a declaration follows.
func (s *scanner) skipBlank() bool {
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case isBlank(c):
			s.pos++
		case isLineBreak(c):
			s.skipLineBreak()
		case c == '#':
			s.pos = s.lineEnd(s.pos)
		default:
			return true
		}
	}
	return false
}

func (s *scanner) fail(line int, r Reason, snippet string) error {
	return &InvalidFileError{Reason: r, Snippet: snippet, Line: line}
}

// entry parses one logical line. The cursor is on its first non-blank byte
// and is left on the line break that ends it.
func (s *scanner) entry() (Entry, error) {
	line := s.src[s.pos:s.lineEnd(s.pos)]
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return Entry{}, s.fail(s.line, InvalidName, trimBlank(line))
	}

	name, err := s.name(line, line[:eq])
	if err != nil {
		return Entry{}, err
	}

	s.pos += eq + 1
	s.valueStart = s.pos
	value, err := s.value()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Value: value}, nil
}

func (s *scanner) name(line, raw string) (string, error) {
	name := raw
	if rest, ok := strings.CutPrefix(name, "export "); ok {
		name = strings.TrimLeft(rest, " ")
	}
	if name == "" {
		return "", s.fail(s.line, UnexpectedEquals, trimBlank(line))
	}
	if !validName(name) {
		return "", s.fail(s.line, InvalidName, raw)
	}
	return name, nil
}

// validName reports whether name matches [A-Za-z_][A-Za-z0-9_.]*.
func validName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && (c == '.' || '0' <= c && c <= '9'):
		default:
			return false
		}
	}
	return name != ""
}

func (s *scanner) value() (string, error) {
	for !s.eof() && isBlank(s.src[s.pos]) {
		s.pos++
	}
	if s.eof() {
		return "", nil
	}

	c := s.src[s.pos]
	switch {
	case isLineBreak(c):
		return "", nil
	case c == '#':
		s.pos = s.lineEnd(s.pos)
		return "", nil
	}

	if ctx := contextOf(c); ctx != unquoted {
		return s.quoted(ctx)
	}
	return s.unquoted()
}

// unquoted reads a bare value. Backslashes are literal and the value ends at
// the first whitespace; only a comment may follow it.
func (s *scanner) unquoted() (string, error) {
	start := s.pos
	end := s.lineEnd(start)
	i := start
	for i < end && !isBlank(s.src[i]) {
		i++
	}
	value := s.src[start:i]
	if err := s.trailing(i, end, trimBlank(s.src[start:end])); err != nil {
		return "", err
	}
	return value, nil
}

// quoted reads a single or double quoted value. The cursor is on the
// opening quote.
func (s *scanner) quoted(ctx quoteContext) (string, error) {
	q := s.src[s.pos]
	open, openLine := s.pos, s.line
	snippet := func() string {
		return trimBlank(s.src[open:s.lineEnd(open)])
	}

	var sb strings.Builder
	s.pos++
	for {
		if s.eof() {
			return "", s.fail(openLine, MissingClosingQuote, snippet())
		}

		c := s.src[s.pos]
		switch {
		case c == q:
			s.pos++
			if err := s.trailing(s.pos, s.lineEnd(s.pos), ""); err != nil {
				return "", err
			}
			return sb.String(), nil

		case c == '\\':
			if s.pos+1 >= len(s.src) {
				return "", s.fail(openLine, MissingClosingQuote, snippet())
			}
			b, ok := unescape(q, s.src[s.pos+1])
			if !ok {
				return "", s.fail(openLine, UnexpectedEscapeSequence, snippet())
			}
			if ctx == doubleQuoted || s.decodeSingle {
				sb.WriteByte(b)
			} else {
				sb.WriteString(s.src[s.pos : s.pos+2])
			}
			s.pos += 2

		case isLineBreak(c):
			if ctx == singleQuoted {
				return "", s.fail(openLine, MissingClosingQuote, snippet())
			}
			s.skipLineBreak()
			sb.WriteByte('\n')

		default:
			sb.WriteByte(c)
			s.pos++
		}
	}
}

// trailing checks that nothing but whitespace and an optional comment sits
// between from and end, then moves the cursor to end. An empty snippet
// reports the offending text itself.
func (s *scanner) trailing(from, end int, snippet string) error {
	rest := strings.TrimLeft(s.src[from:end], " \t\v\f")
	s.pos = end
	if rest == "" || rest[0] == '#' {
		return nil
	}
	if snippet == "" {
		snippet = trimBlank(rest)
	}
	return s.fail(s.line, UnexpectedWhitespace, snippet)
}
