package repl

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/engine"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/pkg"
	"github.com/ardnew/tabry/tokenize"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "tree", "clear", "quit"}

// isWordBoundary returns true if the rune separates command-line words.
func isWordBoundary(r rune) bool {
	return r == ' ' || r == '\t'
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a space, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// byteOffset converts a rune position within s into a byte offset.
func byteOffset(s string, pos int) int {
	for i := range s {
		if pos == 0 {
			return i
		}

		pos--
	}

	return len(s)
}

// split tokenizes a line typed after the command name. The words before the
// cursor word are returned as args.
func split(line string) (args []string, last string, err error) {
	compline := pkg.Name + " " + line

	toks, err := tokenize.Split(compline, utf8.RuneCountInString(compline))
	if err != nil {
		return nil, "", err
	}

	return toks.Arguments, toks.Last, nil
}

// completions returns the candidates that follow the words of line. A word
// prefix starting with a dash also asks for flags.
func completions(
	ctx context.Context,
	c *conf.Conf,
	line, word string,
	logger log.Logger,
) (options, special []string, err error) {
	args, _, err := split(line)
	if err != nil {
		return nil, nil, err
	}

	res, err := engine.Run(ctx, c, args, engine.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	prefix := ""
	if strings.HasPrefix(word, "-") && res.State.Mode != engine.ModeFlagArg {
		prefix = "-"
	}

	opts, err := engine.NewFinder(res, engine.WithLogger(logger)).Options(ctx, prefix)
	if err != nil {
		return nil, nil, err
	}

	return opts.Options.Sorted(), opts.Special.Sorted(), nil
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the special options
// that apply, and the word boundaries. An empty word lists every candidate,
// except on an empty line where the hint is shown instead.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	special []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := byteOffset(input, m.input.Position())

	word, wordStart, wordEnd := wordBounds(input, cursor)

	var candidates []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		if strings.TrimSpace(input) == "" {
			return nil, nil, wordStart, wordEnd
		}

		var err error

		candidates, special, err = completions(
			m.ctxFunc(), m.conf, input[:wordStart], word, m.logger)
		if err != nil {
			return nil, nil, wordStart, wordEnd
		}
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, special, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), special, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}

// renderTree lists the subcommands of c as an indented tree.
func renderTree(c *conf.Conf) (string, error) {
	var b strings.Builder

	name := c.Cmd
	if name == "" {
		name = "(main)"
	}

	b.WriteString(name)
	b.WriteString(describe(c.Main.Description))
	b.WriteString("\n")

	if err := writeTree(&b, c, &c.Main, 1); err != nil {
		return "", err
	}

	return b.String(), nil
}

// maxTreeDepth bounds the tree when includes nest a sub within itself.
const maxTreeDepth = 16

func writeTree(b *strings.Builder, c *conf.Conf, sub *conf.ConcreteSub, depth int) error {
	if depth > maxTreeDepth {
		return nil
	}

	subs, err := c.FlattenSubs(sub.Subs, sub.Includes)
	if err != nil {
		return err
	}

	for _, s := range subs {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(s.Name)

		if len(s.Aliases) > 0 {
			b.WriteString(hintStyle.Render(" (" + strings.Join(s.Aliases, ", ") + ")"))
		}

		b.WriteString(describe(s.Description))
		b.WriteString("\n")

		if err := writeTree(b, c, s, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func describe(desc string) string {
	if desc == "" {
		return ""
	}

	return hintStyle.Render("  # " + strings.SplitN(desc, "\n", 2)[0])
}
