package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Sources reads several tabry sources as one. Consecutive sources are
// separated by a newline so that the last token of one never runs into the
// first token of the next.
type Sources interface {
	io.ReadCloser
	// Names lists the sources in the order they are read.
	Names() []string
}

type sourceFiles struct {
	io.Reader

	names []string
	files []*os.File
}

func (s *sourceFiles) Names() []string { return s.names }

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the given source paths for reading.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader placed
// last so it reads after all regular files. Files that cannot be opened are
// skipped; nil is returned when nothing is left to read.
func openSources(sources []string) Sources {
	if len(sources) == 0 {
		return nil
	}

	var (
		srcs    sourceFiles
		readers []io.Reader
	)

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		if len(readers) > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}

		readers = append(readers, file)
		srcs.files = append(srcs.files, file)
		srcs.names = append(srcs.names, src)
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		if len(readers) > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}

		readers = append(readers, os.Stdin)
		srcs.names = append(srcs.names, stdinSource)
	}

	if len(readers) == 0 {
		return nil
	}

	srcs.Reader = io.MultiReader(readers...)

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
