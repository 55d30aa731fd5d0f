package lang

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Lex splits src into tokens, skipping whitespace and comments.
func Lex(src string) ([]Token, error) {
	l := &lexer{input: []byte(src), line: 1, col: 1}

	tokens := make([]Token, 0, len(src)/4)

	for {
		l.skipWhitespaceAndComments()

		if l.eof() {
			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// lexer holds the lexer state.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func (l *lexer) next() (Token, error) {
	pos := l.position()

	switch ch := l.peek(); {
	case ch == '"':
		text, err := l.lexString()
		if err != nil {
			return Token{}, err
		}

		return Token{Kind: TokenString, Text: text, Pos: pos}, nil

	case ch == '(':
		l.advance()

		return Token{Kind: TokenOpenParen, Pos: pos}, nil

	case ch == ')':
		l.advance()

		return Token{Kind: TokenCloseParen, Pos: pos}, nil

	case ch == '{':
		l.advance()

		return Token{Kind: TokenOpenBrace, Pos: pos}, nil

	case ch == '}':
		l.advance()

		return Token{Kind: TokenCloseBrace, Pos: pos}, nil

	case ch == '@':
		l.advance()

		start := l.pos
		for !l.eof() && isAtIdentifierChar(l.peek()) {
			l.advance()
		}

		if l.pos == start {
			return Token{}, at(ErrLex, l.position()).
				With(slog.String("expected", "name after @"))
		}

		return Token{
			Kind: TokenAtIdentifier,
			Text: string(l.input[start:l.pos]),
			Pos:  pos,
		}, nil

	case isIdentifierStart(ch):
		return l.lexIdentifiers(pos)

	default:
		return Token{}, at(ErrLex, pos).
			With(slog.String("unexpected", string(ch)))
	}
}

// lexIdentifiers lexes one or more comma-separated identifiers.
func (l *lexer) lexIdentifiers(pos Position) (Token, error) {
	names := []string{l.lexIdentifier()}

	for !l.eof() && l.peek() == ',' {
		l.advance()

		if l.eof() || !isIdentifierStart(l.peek()) {
			return Token{}, at(ErrLex, l.position()).
				With(slog.String("expected", "alias after ,"))
		}

		names = append(names, l.lexIdentifier())
	}

	if len(names) == 1 {
		return Token{Kind: TokenIdentifier, Text: names[0], Pos: pos}, nil
	}

	return Token{Kind: TokenIdentifierWithAliases, Names: names, Pos: pos}, nil
}

func (l *lexer) lexIdentifier() string {
	start := l.pos

	l.advance()

	for !l.eof() && isIdentifierContinue(l.peek()) {
		l.advance()
	}

	return string(l.input[start:l.pos])
}

// lexString lexes a double-quoted string literal. Only \" and \\ are escape
// sequences; any other backslash is kept as is.
func (l *lexer) lexString() (string, error) {
	start := l.position()

	l.advance() // opening quote

	var sb strings.Builder

	for {
		if l.eof() {
			return "", at(ErrLex, start).
				With(slog.String("reason", "unterminated string"))
		}

		ch := l.peek()
		l.advance()

		switch {
		case ch == '"':
			return unindent(sb.String()), nil

		case ch == '\\' && !l.eof() && (l.peek() == '"' || l.peek() == '\\'):
			sb.WriteRune(l.peek())
			l.advance()

		default:
			sb.WriteRune(ch)
		}
	}
}

// unindent strips the common leading whitespace from every line of a string
// that starts or ends with a newline followed by a space or tab.
func unindent(s string) string {
	if !hasIndentedEdge(s) {
		return s
	}

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent <= 0 {
		return s
	}

	for i, line := range lines {
		n := min(indent, len(line)-len(strings.TrimLeft(line, " \t")))
		lines[i] = line[n:]
	}

	return strings.Join(lines, "\n")
}

func hasIndentedEdge(s string) bool {
	for _, edge := range []string{"\n ", "\n\t"} {
		if strings.HasPrefix(s, edge) {
			return true
		}
	}

	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return false
	}

	tail := s[i+1:]

	return tail != "" && strings.Trim(tail, " \t") == ""
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			l.advance()

		case '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

func isIdentifierStart(ch rune) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentifierContinue(ch rune) bool {
	return isIdentifierStart(ch) || ch == '-' || ch >= '0' && ch <= '9'
}

func isAtIdentifierChar(ch rune) bool {
	return isIdentifierContinue(ch)
}
