package conf

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/readahead"

	"github.com/ardnew/tabry/pkg"
)

// Load decodes a JSON-encoded Conf from r.
func Load(r io.Reader) (*Conf, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrIO.Wrap(err)
	}

	return Decode(data)
}

// LoadFile decodes the JSON-encoded Conf stored at path.
func LoadFile(path string) (*Conf, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, WrapPath(err, path)
	}

	return c, nil
}

// Decode decodes a JSON-encoded Conf.
func Decode(data []byte) (*Conf, error) {
	c := New()

	if err := json.Unmarshal(data, c); err != nil {
		return nil, ErrJSON.Wrap(err)
	}

	if c.ArgIncludes == nil {
		c.ArgIncludes = make(map[string]*ArgInclude)
	}

	if c.OptionIncludes == nil {
		c.OptionIncludes = make(map[string][]Opt)
	}

	return c, nil
}

// WrapPath annotates a config error with the file it came from.
func WrapPath(err error, path string) error {
	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(slog.String("path", path))
	}

	return err
}
