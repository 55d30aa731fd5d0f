package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Position identifies a location in source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number (in runes), starting at 1
}

// String returns the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// TokenKind classifies a [Token].
type TokenKind int

const (
	TokenEOF TokenKind = iota // zero Token; returned past the end of input
	TokenOpenParen
	TokenCloseParen
	TokenOpenBrace
	TokenCloseBrace
	TokenIdentifier
	TokenIdentifierWithAliases
	TokenAtIdentifier
	TokenString
)

// String returns a human-readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenOpenBrace:
		return "{"
	case TokenCloseBrace:
		return "}"
	case TokenIdentifier:
		return "identifier"
	case TokenIdentifierWithAliases:
		return "identifier with aliases"
	case TokenAtIdentifier:
		return "@identifier"
	case TokenString:
		return "string"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexical token.
//
// Text holds the identifier, the @identifier name (without '@'), or the
// decoded string literal. Names holds every name of an
// [TokenIdentifierWithAliases] token, primary name first.
type Token struct {
	Kind  TokenKind
	Text  string
	Names []string
	Pos   Position
}

// Is reports whether t is the identifier (keyword) s.
func (t Token) Is(s string) bool {
	return t.Kind == TokenIdentifier && t.Text == s
}

// String returns a source-like rendering of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return t.Text
	case TokenIdentifierWithAliases:
		return strings.Join(t.Names, ",")
	case TokenAtIdentifier:
		return "@" + t.Text
	case TokenString:
		return strconv.Quote(t.Text)
	default:
		return t.Kind.String()
	}
}

// GoString is used by %#v.
func (t Token) GoString() string {
	return fmt.Sprintf("%s@%s", t.String(), t.Pos)
}
