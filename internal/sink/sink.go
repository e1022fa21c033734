// Package sink writes fetched tables to stdout, files or a SQLite database.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"publicdatareader/internal/table"
)

// Sink receives one table per fetcher key.
// Write is called from a single goroutine.
type Sink interface {
	Write(ctx context.Context, key string, t *table.Table) error
	Close() error
}

// Open creates the sink for format. For stream formats an empty path means
// stdout and any other path is a directory receiving one file per key.
// For sqlite, path is the database file.
func Open(format, path string) (Sink, error) {
	switch format {
	case "sqlite":
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "table", "csv", "json", "yaml":
		enc := encoders[format]
		if path == "" {
			return NewStream(os.Stdout, enc), nil
		}
		dir, err := NewDir(path, format, enc)
		if err != nil {
			return nil, err
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Encoder renders one keyed table
type Encoder func(w io.Writer, key string, t *table.Table) error

var encoders = map[string]Encoder{
	"table": EncodeText,
	"csv":   EncodeCSV,
	"json":  EncodeJSON,
	"yaml":  EncodeYAML,
}

// Stream writes every table to one writer, one after another
type Stream struct {
	w   io.Writer
	enc Encoder
}

// NewStream creates a sink writing to w with enc
func NewStream(w io.Writer, enc Encoder) *Stream {
	return &Stream{w: w, enc: enc}
}

// Write implements Sink
func (s *Stream) Write(_ context.Context, key string, t *table.Table) error {
	return s.enc(s.w, key, t)
}

// Close implements Sink
func (s *Stream) Close() error {
	return nil
}

// Dir writes each table to its own file named after the key
type Dir struct {
	dir string
	ext string
	enc Encoder
}

// NewDir creates dir if needed and returns a sink writing into it
func NewDir(dir, format string, enc Encoder) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	ext := format
	if format == "table" {
		ext = "txt"
	}
	return &Dir{dir: dir, ext: ext, enc: enc}, nil
}

// Path returns the file a key is written to
func (d *Dir) Path(key string) string {
	return filepath.Join(d.dir, FileName(key)+"."+d.ext)
}

// Write implements Sink, replacing any earlier file for the key
func (d *Dir) Write(_ context.Context, key string, t *table.Table) error {
	f, err := os.Create(d.Path(key))
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := d.enc(f, key, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close implements Sink
func (d *Dir) Close() error {
	return nil
}

// FileName turns a key such as fetcher:rtms:apt_trade:11110:202301 into a
// portable file name
func FileName(key string) string {
	key = strings.TrimPrefix(key, "fetcher:")
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\', ' ':
			return '_'
		}
		return r
	}, key)
}

// FormatCell renders a cell as text; the missing value renders empty
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
