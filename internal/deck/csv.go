package deck

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const fieldsPerRecord = 2

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmbeddedCRLF is returned by EncodeCSV for a field holding "\r\n". The
// CSV reader folds it to "\n", so the entry would not load back unchanged.
var ErrEmbeddedCRLF = errors.New("field contains a CRLF line break")

// DecodeCSV reads prompt,answer records. Every record must have exactly two
// fields; a single malformed record fails the whole decode. Blank lines are
// skipped and both LF and CRLF line endings are accepted.
func DecodeCSV(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = fieldsPerRecord

	entries := []Entry{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &ParseError{Err: err}
		}

		line, _ := cr.FieldPos(0)
		for _, f := range rec {
			if !utf8.ValidString(f) {
				return nil, &ParseError{Line: line, Err: errors.New("invalid UTF-8")}
			}
		}
		entries = append(entries, Entry{Prompt: rec[0], Answer: rec[1]})
	}
	return entries, nil
}

// EncodeCSV writes one prompt,answer record per entry, LF terminated.
// Fields are quoted only when needed so that DecodeCSV returns them unchanged.
// Nothing is written when a field holds a CRLF.
func EncodeCSV(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if strings.Contains(e.Prompt, "\r\n") || strings.Contains(e.Answer, "\r\n") {
			return &ParseError{Line: i + 1, Err: ErrEmbeddedCRLF}
		}
	}

	cw := csv.NewWriter(w)
	for _, e := range entries {
		if err := cw.Write([]string{e.Prompt, e.Answer}); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
