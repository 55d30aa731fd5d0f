// Package tokenize splits a shell command line the way the shell passes it to
// a completion function.
//
// The shell reports the whole line and the cursor position. The cursor is
// marked with a sentinel rune before splitting, so the word under the cursor
// can be found even when quoting moves word boundaries.
package tokenize

import (
	"log/slog"
	"strings"

	"github.com/google/shlex"

	"github.com/ardnew/tabry/pkg"
)

// ErrTokenize is returned when the command line cannot be split, usually
// because of an unterminated quote.
var ErrTokenize = pkg.NewError("cannot tokenize command line")

// sentinel marks the cursor. U+FFFF is a noncharacter and never typed.
const sentinel = "\uffff"

// Tokens is a command line split at the cursor.
type Tokens struct {
	// Command is the basename of the first word, or empty when the cursor is
	// in the first word.
	Command string
	// Arguments are the words between the command and the cursor word.
	Arguments []string
	// Last is the word under the cursor, the one being completed.
	Last string
}

// Split splits compline with the cursor at rune offset comppoint. Offsets
// outside the line are clamped to it.
func Split(compline string, comppoint int) (Tokens, error) {
	runes := []rune(compline)
	comppoint = min(max(comppoint, 0), len(runes))

	marked := string(runes[:comppoint]) + sentinel + string(runes[comppoint:])

	words, err := shlex.Split(marked)
	if err != nil {
		return Tokens{}, ErrTokenize.Wrap(err).With(
			slog.String("compline", compline),
			slog.Int("comppoint", comppoint))
	}

	last := len(words)

	for i, w := range words {
		if strings.Contains(w, sentinel) {
			last = i

			break
		}
	}

	// The sentinel can be swallowed by a comment; complete an empty word
	// after everything else.
	cursor := ""
	if last < len(words) {
		cursor = strings.ReplaceAll(words[last], sentinel, "")
	}

	if last == 0 {
		return Tokens{Arguments: []string{}, Last: cursor}, nil
	}

	return Tokens{
		Command:   basename(words[0]),
		Arguments: words[1:last:last],
		Last:      cursor,
	}, nil
}

// basename returns the text after the last slash, which is empty for a
// trailing slash.
func basename(s string) string {
	return s[strings.LastIndexByte(s, '/')+1:]
}
