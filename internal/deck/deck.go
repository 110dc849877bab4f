// Package deck loads word lists and situation sets from files.
//
// Supported formats:
//   - .txt: words split on commas and whitespace, or one situation per line
//   - .json: a bare array of strings, or a deck document
//   - .yaml/.yml: a deck document (a bare list is accepted too)
//
// A deck document looks like:
//
//	name: Army set 1
//	kind: srt
//	items:
//	  - Your captain falls ill before the mission...
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"ssbprep/internal/session"
)

// Deck is a named list of test items.
type Deck struct {
	Name  string       `yaml:"name" json:"name"`
	Kind  session.Kind `yaml:"kind" json:"kind"`
	Items []string     `yaml:"items" json:"items"`
}

// ErrKindMismatch is returned when a deck declares a kind other than the one requested.
var ErrKindMismatch = errors.New("deck kind mismatch")

// ErrEmptyDeck is returned when a file yields no non-blank items.
var ErrEmptyDeck = errors.New("deck has no items")

// SchemaError reports a document that does not match the deck schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

const schemaJSON = `{
  "oneOf": [
    {"type": "array", "items": {"type": "string"}},
    {
      "type": "object",
      "required": ["items"],
      "properties": {
        "name":  {"type": "string"},
        "kind":  {"type": "string", "enum": ["wat", "srt"]},
        "items": {"type": "array", "items": {"type": "string"}}
      },
      "additionalProperties": false
    }
  ]
}`

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Load reads the deck at path for the given kind. Blank items are dropped.
func Load(path string, kind session.Kind) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}

	var d *Deck
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		d = parseText(string(data), kind)
	case ".json":
		d, err = parseDocument(data, json.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", path, err)
		}
	case ".yaml", ".yml":
		d, err = parseDocument(data, yaml.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("deck %s: unsupported file extension %q", path, filepath.Ext(path))
	}

	if d.Kind == "" {
		d.Kind = kind
	}
	if d.Kind != kind {
		return nil, fmt.Errorf("deck %s: %w: declared %s, want %s", path, ErrKindMismatch, d.Kind, kind)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	d.Items = nonBlank(d.Items)
	if len(d.Items) == 0 {
		return nil, fmt.Errorf("deck %s: %w", path, ErrEmptyDeck)
	}
	return d, nil
}

func parseText(text string, kind session.Kind) *Deck {
	if kind == session.KindWAT {
		return &Deck{Items: session.ParseWords(text)}
	}
	return &Deck{Items: strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")}
}

type decodeFunc func(data []byte, v any) error

// parseDocument decodes a JSON or YAML document, validates it against the
// deck schema and maps it onto a Deck.
func parseDocument(data []byte, decode decodeFunc) (*Deck, error) {
	var doc any
	if err := decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc == nil {
		return nil, ErrEmptyDeck
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &SchemaError{Problems: problems}
	}

	if list, ok := doc.([]any); ok {
		items := make([]string, 0, len(list))
		for _, v := range list {
			items = append(items, v.(string))
		}
		return &Deck{Items: items}, nil
	}

	var d Deck
	if err := decode(data, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	return &d, nil
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
