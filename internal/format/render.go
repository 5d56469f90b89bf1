package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GhostWriters/dotenv/internal/constants"
	"github.com/GhostWriters/dotenv/internal/dotenv"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	Env   Format = constants.FormatEnv
	Shell Format = constants.FormatShell
	JSON  Format = constants.FormatJSON
	YAML  Format = constants.FormatYAML
	TOML  Format = constants.FormatTOML
)

// Formats lists the formats Render accepts.
var Formats = []Format{Env, Shell, JSON, YAML, TOML}

// Render writes doc in format f.
//
// Env and Shell keep every entry, duplicates included, so the output
// evaluates to the same environment. JSON, YAML and TOML hold one key per
// name in order of first appearance with the last value.
func Render(doc dotenv.Document, f Format) (string, error) {
	switch f {
	case Env:
		return doc.String(), nil
	case Shell:
		return renderShell(doc), nil
	case JSON:
		return renderJSON(doc)
	case YAML:
		return renderYAML(doc)
	case TOML:
		return renderTOML(doc)
	}
	return "", fmt.Errorf("unknown format %q", f)
}

// entry is a name with its effective value.
type entry struct {
	name, value string
}

// collapse returns one entry per name in order of first appearance,
// holding the last value.
func collapse(doc dotenv.Document) []entry {
	index := make(map[string]int)
	var out []entry
	for _, e := range doc {
		if i, ok := index[e.Name]; ok {
			out[i].value = e.Value
			continue
		}
		index[e.Name] = len(out)
		out = append(out, entry{e.Name, e.Value})
	}
	return out
}

// ShellQuote wraps s in single quotes for POSIX shells.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func renderShell(doc dotenv.Document) string {
	var sb strings.Builder
	for _, e := range doc {
		sb.WriteString("export " + e.Name + "=" + ShellQuote(e.Value) + "\n")
	}
	return sb.String()
}

func renderJSON(doc dotenv.Document) (string, error) {
	entries := collapse(doc)
	if len(entries) == 0 {
		return "{}\n", nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		k, err := json.Marshal(e.name)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return "", err
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func renderYAML(doc dotenv.Document) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range collapse(doc) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderTOML marshals one single-key table per entry so the document order
// survives; go-toml sorts map keys.
func renderTOML(doc dotenv.Document) (string, error) {
	var sb strings.Builder
	for _, e := range collapse(doc) {
		b, err := toml.Marshal(map[string]string{e.name: e.value})
		if err != nil {
			return "", err
		}
		sb.Write(b)
	}
	return sb.String(), nil
}
