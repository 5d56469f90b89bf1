package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GhostWriters/dotenv/internal/dotenv"
)

// Read parses each file in order with p and returns the concatenated
// entries. A nil p uses the default options. Errors are wrapped with the
// offending path.
func Read(p *dotenv.Parser, paths ...string) (dotenv.Document, error) {
	return read(p, false, paths)
}

// ReadSafe is like Read but skips files that do not exist.
func ReadSafe(p *dotenv.Parser, paths ...string) (dotenv.Document, error) {
	return read(p, true, paths)
}

func read(p *dotenv.Parser, skipMissing bool, paths []string) (dotenv.Document, error) {
	if p == nil {
		p = &dotenv.Parser{}
	}
	var doc dotenv.Document
	for _, path := range paths {
		d, err := parseFile(p, path)
		if skipMissing && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc = append(doc, d...)
	}
	return doc, nil
}

func parseFile(p *dotenv.Parser, path string) (dotenv.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// declarations parses file keeping the source text of each entry. The single
// quote mode changes values, not spans, so the default parser is used.
func declarations(file string) ([]dotenv.Declaration, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	decls, err := (&dotenv.Parser{}).Declarations(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return decls, nil
}

// ReadLines returns the declarations of a file as written, one per entry.
// Comments and blank lines are skipped; a multi-line value stays in one
// element.
func ReadLines(filename string) ([]string, error) {
	decls, err := declarations(filename)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(decls))
	for _, d := range decls {
		lines = append(lines, d.Raw)
	}
	return lines, nil
}
