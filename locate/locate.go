package locate

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/lang"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/pkg"
)

// DefaultImportPath is searched when TABRY_IMPORT_PATH is unset or empty.
const DefaultImportPath = "./"

// Config file extensions, in order of preference.
const (
	ExtTabry = ".tabry"
	ExtJSON  = ".json"
)

const cacheDirMode os.FileMode = 0o700

// ImportPath returns the search path: extra, followed by the directories
// listed in TABRY_IMPORT_PATH.
func ImportPath(extra ...string) []string {
	env := os.Getenv(pkg.EnvImportPath)
	if env == "" {
		env = DefaultImportPath
	}

	delim := string(os.PathListSeparator)

	joined := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(delim),
		mung.WithPrefixItems(extra...),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(joined, delim) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// Locator finds and loads configs.
type Locator struct {
	extra    []string
	path     []string
	cacheDir string
	logger   log.Logger
}

// New returns a Locator over the current import path, caching compiled
// configs in the user cache directory.
func New(opts ...Option) *Locator {
	l := &Locator{cacheDir: pkg.CacheDir()}
	for _, opt := range opts {
		opt(l)
	}

	l.path = ImportPath(l.extra...)

	return l
}

// Path returns the directories searched, in order.
func (l *Locator) Path() []string { return slices.Clone(l.path) }

// Find returns the config file of cmd.
func (l *Locator) Find(cmd string) (string, error) {
	if cmd != "" {
		for _, dir := range l.path {
			for _, ext := range []string{ExtTabry, ExtJSON} {
				path := filepath.Join(dir, cmd+ext)
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					return path, nil
				}
			}
		}
	}

	return "", ErrNotFound.With(
		slog.String("command", cmd),
		slog.String("import_path", strings.Join(l.path, string(os.PathListSeparator))))
}

// Commands returns the names of every command with a config on the path,
// sorted. Directories that cannot be read are skipped.
func (l *Locator) Commands() []string {
	var cmds []string

	for _, dir := range l.path {
		matches, err := doublestar.Glob(os.DirFS(dir), "*.{tabry,json}",
			doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			l.logger.Debug("skip import dir",
				slog.String("dir", dir),
				slog.Any("error", err))

			continue
		}

		for _, m := range matches {
			cmd := strings.TrimSuffix(m, filepath.Ext(m))
			if cmd != "" {
				cmds = append(cmds, cmd)
			}
		}
	}

	slices.Sort(cmds)

	return slices.Compact(cmds)
}

// Load reads the config at path. JSON configs are decoded directly; tabry
// sources are compiled, going through the cache when there is one.
func (l *Locator) Load(ctx context.Context, path string) (*conf.Conf, error) {
	if filepath.Ext(path) != ExtTabry {
		return conf.LoadFile(path)
	}

	src, err := readFile(path)
	if err != nil {
		return nil, conf.ErrIO.Wrap(err).With(slog.String("path", path))
	}

	if l.cacheDir == "" {
		return l.compile(ctx, path, src)
	}

	cached := l.CachePath(src)

	data, err := os.ReadFile(cached)
	if err == nil {
		c, err := conf.Decode(data)
		if err == nil {
			l.logger.TraceContext(ctx, "cache hit",
				slog.String("path", path),
				slog.String("cache", cached))

			return c, nil
		}

		l.logger.WarnContext(ctx, "recompiling corrupt cache entry",
			slog.String("cache", cached),
			slog.Any("error", err))
	}

	c, err := l.compile(ctx, path, src)
	if err != nil {
		return nil, err
	}

	if err := l.store(cached, c); err != nil {
		l.logger.WarnContext(ctx, "compiled config not cached", slog.Any("error", err))
	}

	return c, nil
}

// CachePath returns the cache entry of the tabry source src. The key covers
// the compiler version, so upgrades never read older entries.
func (l *Locator) CachePath(src []byte) string {
	h := xxh3.New()
	h.WriteString(pkg.Version())
	h.WriteString("\x00")
	h.Write(src)

	return filepath.Join(l.cacheDir, strconv.FormatUint(h.Sum64(), 16)+ExtJSON)
}

func (l *Locator) compile(ctx context.Context, path string, src []byte) (*conf.Conf, error) {
	c, err := lang.CompileString(ctx, string(src), lang.WithLogger(l.logger))
	if err != nil {
		return nil, conf.WrapPath(err, path)
	}

	return c, nil
}

// store writes c to the cache entry at path. The entry is written to a
// temporary file first, so readers never see a partial entry.
func (l *Locator) store(path string, c *conf.Conf) error {
	fail := func(err error) error {
		return ErrCache.Wrap(err).With(slog.String("cache", path))
	}

	data, err := c.Encode(0)
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(l.cacheDir, cacheDirMode); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(l.cacheDir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		return fail(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}

	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}

	ra := readahead.NewReader(f)
	defer ra.Close()

	return io.ReadAll(ra)
}
