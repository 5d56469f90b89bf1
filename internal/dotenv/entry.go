package dotenv

import "strings"

// Entry is a single decoded NAME=VALUE declaration.
type Entry struct {
	Name  string
	Value string
}

// Document is the ordered list of entries produced by one parse.
// Duplicate names are kept in order of appearance.
type Document []Entry

// Len returns the number of entries.
func (d Document) Len() int {
	return len(d)
}

// Names returns the entry names in order, duplicates included.
func (d Document) Names() []string {
	names := make([]string, 0, len(d))
	for _, e := range d {
		names = append(names, e.Name)
	}
	return names
}

// Lookup returns the value of the last entry named name.
func (d Document) Lookup(name string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Name == name {
			return d[i].Value, true
		}
	}
	return "", false
}

// Map collapses the document into a map. Later entries win.
func (d Document) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, e := range d {
		m[e.Name] = e.Value
	}
	return m
}

// String renders the document as canonical .env text, one double-quoted
// declaration per line. Parsing the result yields an equal document.
func (d Document) String() string {
	var sb strings.Builder
	for _, e := range d {
		sb.WriteString(e.Name)
		sb.WriteByte('=')
		sb.WriteString(Quote(e.Value))
		sb.WriteByte('\n')
	}
	return sb.String()
}
