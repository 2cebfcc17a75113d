package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type codec struct {
	decode func(io.Reader) ([]Entry, error)
	encode func(io.Writer, []Entry) error
}

var codecs = map[string]codec{
	".txt":  {decode: DecodeCSV, encode: EncodeCSV},
	".csv":  {decode: DecodeCSV, encode: EncodeCSV},
	".json": {decode: DecodeJSON, encode: EncodeJSON},
}

// Dir is a Source backed by one file per set in a directory. The file
// extension selects the format: .txt and .csv are comma delimited, .json is
// a versioned JSON document.
type Dir struct {
	root string
}

var _ Source = (*Dir)(nil)

// NewDir returns a Source rooted at root. The directory is created on first save.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory holding the sets.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the file path for a set name after validating it.
func (d *Dir) Path(name string) (string, error) {
	if _, err := codecFor(name); err != nil {
		return "", err
	}
	return filepath.Join(d.root, name), nil
}

func codecFor(name string) (codec, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return codec{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	c, ok := codecs[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return codec{}, fmt.Errorf("%w: %q has no supported extension (.txt, .csv, .json)", ErrInvalidName, name)
	}
	return c, nil
}

// Load reads and decodes the named set.
func (d *Dir) Load(ctx context.Context, name string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := codecFor(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	entries, err := c.decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return entries, nil
}

// Save encodes entries into a temporary file next to the destination and
// renames it into place, so a failed write never truncates an existing set.
func (d *Dir) Save(ctx context.Context, name string, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := codecFor(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	tmp, err := os.CreateTemp(d.root, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := c.encode(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Rename(tmpName, filepath.Join(d.root, name)); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// List returns every set file in the directory. Sets that fail to decode are
// still listed, with Entries set to -1.
func (d *Dir) List(ctx context.Context) ([]SetInfo, error) {
	dirEntries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SetInfo{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	sets := []SetInfo{}
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, err := codecFor(name); err != nil {
			continue
		}
		info := SetInfo{Name: name, Entries: -1}
		if entries, err := d.Load(ctx, name); err == nil {
			info.Entries = len(entries)
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		sets = append(sets, info)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}
