package envfile

import (
	"errors"
	"io/fs"

	"github.com/GhostWriters/dotenv/internal/dotenv"
)

// Get returns the value of name in file parsed with p. The last definition
// wins. A missing file or variable returns an empty string.
func Get(p *dotenv.Parser, name, file string) (string, error) {
	doc, err := Read(p, file)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	value, _ := doc.Lookup(name)
	return value, nil
}

// GetLine returns the last declaration of name as written in file. A value
// spanning several lines is returned whole.
func GetLine(name, file string) (string, error) {
	d, err := lastDeclaration(name, file)
	return d.Raw, err
}

// GetLiteral returns the right-hand side of the last declaration of name as
// written, everything after the first '='.
func GetLiteral(name, file string) (string, error) {
	d, err := lastDeclaration(name, file)
	return d.Literal, err
}

func lastDeclaration(name, file string) (dotenv.Declaration, error) {
	decls, err := declarations(file)
	if errors.Is(err, fs.ErrNotExist) {
		return dotenv.Declaration{}, nil
	}
	if err != nil {
		return dotenv.Declaration{}, err
	}
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].Name == name {
			return decls[i], nil
		}
	}
	return dotenv.Declaration{}, nil
}
