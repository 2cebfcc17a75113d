package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// FormatVersion is written into every JSON set. Any v1.x.y file is readable.
const FormatVersion = "v1.0.0"

const supportedMajor = "v1"

const setSchemaURL = "schema://flashquiz/set.json"

var setSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"format", "entries"},
	"additionalProperties": false,
	"properties": map[string]any{
		"format": map[string]any{"type": "string", "minLength": 1},
		"entries": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"prompt", "answer"},
				"additionalProperties": false,
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
					"answer": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var compiledSetSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, not Go literals.
	defBytes, err := json.Marshal(setSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(setSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(setSchemaURL)
})

type jsonSet struct {
	Format  string  `json:"format"`
	Entries []Entry `json:"entries"`
}

// DecodeJSON reads a JSON set and validates it against the set schema and
// the supported format version.
func DecodeJSON(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compiledSetSchema()
	if err != nil {
		return nil, fmt.Errorf("compile set schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var set jsonSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, &ParseError{Err: err}
	}
	if !semver.IsValid(set.Format) {
		return nil, &ParseError{Err: fmt.Errorf("format %q is not a semantic version", set.Format)}
	}
	if semver.Major(set.Format) != supportedMajor {
		return nil, &ParseError{Err: fmt.Errorf("unsupported format %s (want %s.x.y)", set.Format, supportedMajor)}
	}

	if set.Entries == nil {
		set.Entries = []Entry{}
	}
	return set.Entries, nil
}

// EncodeJSON writes entries as an indented JSON set.
func EncodeJSON(w io.Writer, entries []Entry) error {
	set := jsonSet{Format: FormatVersion, Entries: entries}
	if set.Entries == nil {
		set.Entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
