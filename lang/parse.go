package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ParseReader lexes and parses a tabry source read from r.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString lexes and parses a tabry source.
func ParseString(ctx context.Context, src string, opts ...Option) (*AST, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, tokens, opts...)
}

// Parse parses a token stream produced by [Lex].
func Parse(ctx context.Context, tokens []Token, opts ...Option) (*AST, error) {
	o := makeOptions(opts...)

	p := &parser{tokens: tokens}

	stmts, err := p.parseStatements(scopeTop)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tokens)),
		slog.Int("statement_count", len(stmts)))

	return &AST{Statements: stmts}, nil
}

// scope determines which statements are valid in a block.
type scope int

const (
	scopeTop scope = iota
	scopeSub       // sub and defargs bodies
	scopeArg       // arg and defopts bodies
	scopeFlag
)

// keywords lists the statements valid in each scope, in the order they are
// reported in errors.
var keywords = map[scope][]string{
	scopeTop:  {"cmd", "desc", "include", "sub", "arg", "flag", "defargs", "defopts"},
	scopeSub:  {"desc", "include", "sub", "arg", "flag"},
	scopeArg:  {"desc", "include", "opts", "title"},
	scopeFlag: {"desc", "include", "opts"},
}

// allows reports whether the statement introduced by kw is valid in s.
// Prefixed forms ("opt arg", "reqd flagarg", ...) are allowed where their
// base statement is.
func (s scope) allows(kw string) bool {
	switch kw {
	case "varargs", "opt":
		kw = "arg"
	case "flagarg", "reqd":
		kw = "flag"
	}

	for _, k := range keywords[s] {
		if k == kw {
			return true
		}
	}

	return false
}

func (s scope) expected() string {
	return strings.Join(keywords[s], ", ") + " statement"
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	pos    int
}

// parseStatements parses statements until the end of input (top level) or
// a closing brace (blocks). The closing brace is not consumed.
func (p *parser) parseStatements(s scope) ([]Statement, error) {
	stmts := make([]Statement, 0)

	for !p.eof() {
		if s != scopeTop && p.peek().Kind == TokenCloseBrace {
			break
		}

		stmt, err := p.parseStatement(s)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *parser) parseStatement(s scope) (Statement, error) {
	tok := p.peek()

	if tok.Kind != TokenIdentifier || !s.allows(tok.Text) {
		return nil, p.errorf(tok, s.expected())
	}

	switch tok.Text {
	case "cmd":
		p.advance()

		name, err := p.expect(TokenIdentifier, "command name")
		if err != nil {
			return nil, err
		}

		return &Cmd{Name: name.Text, At: tok.Pos}, nil

	case "desc":
		p.advance()

		text, err := p.expect(TokenString, "description string")
		if err != nil {
			return nil, err
		}

		return &Desc{Text: text.Text, At: tok.Pos}, nil

	case "title":
		p.advance()

		text, err := p.expect(TokenString, "title string")
		if err != nil {
			return nil, err
		}

		return &Title{Text: text.Text, At: tok.Pos}, nil

	case "include":
		p.advance()

		names := p.parseAtIdentifiers()
		if len(names) == 0 {
			return nil, p.errorf(p.peek(), "@include name")
		}

		return &Include{Names: names, At: tok.Pos}, nil

	case "opts":
		return p.parseOpts()

	case "sub":
		return p.parseSub()

	case "arg", "varargs", "opt":
		return p.parseArg()

	case "flag", "flagarg", "reqd":
		return p.parseFlag()

	case "defargs":
		p.advance()

		name, body, err := p.parseDefinition(scopeSub)
		if err != nil {
			return nil, err
		}

		return &DefArgs{Name: name, Body: body, At: tok.Pos}, nil

	case "defopts":
		p.advance()

		name, body, err := p.parseDefinition(scopeArg)
		if err != nil {
			return nil, err
		}

		return &DefOpts{Name: name, Body: body, At: tok.Pos}, nil
	}

	return nil, p.errorf(tok, s.expected())
}

// parseOpts parses: 'opts' ('file' | 'dir' | 'const' Values | 'shell' String
// | 'delegate' String).
func (p *parser) parseOpts() (Statement, error) {
	start := p.advance()

	kind := p.peek()

	const expected = "opts type (file, dir, const, shell, delegate)"

	if kind.Kind != TokenIdentifier {
		return nil, p.errorf(kind, expected)
	}

	stmt := &Opts{At: start.Pos}

	switch kind.Text {
	case "file":
		p.advance()

		stmt.Kind = OptsFile

	case "dir":
		p.advance()

		stmt.Kind = OptsDir

	case "const":
		p.advance()

		values, err := p.parseConstValues()
		if err != nil {
			return nil, err
		}

		stmt.Kind = OptsConst
		stmt.Values = values

	case "shell", "delegate":
		p.advance()

		cmd, err := p.expect(TokenString, kind.Text+" command string")
		if err != nil {
			return nil, err
		}

		stmt.Kind = OptsShell
		if kind.Text == "delegate" {
			stmt.Kind = OptsDelegate
		}

		stmt.Command = cmd.Text

	default:
		return nil, p.errorf(kind, expected)
	}

	return stmt, nil
}

// parseConstValues parses: Ident | String | '(' (Ident | String)+ ')'.
func (p *parser) parseConstValues() ([]string, error) {
	const expected = `identifier, string, or (a "b" c) list of values`

	tok := p.peek()

	switch {
	case !p.eof() && (tok.Kind == TokenIdentifier || tok.Kind == TokenString):
		p.advance()

		return []string{tok.Text}, nil

	case !p.eof() && tok.Kind == TokenOpenParen:
		p.advance()

		values := make([]string, 0)

		for !p.eof() && p.peek().Kind != TokenCloseParen {
			v := p.peek()
			if v.Kind != TokenIdentifier && v.Kind != TokenString {
				return nil, p.errorf(v, "identifier or string")
			}

			p.advance()

			values = append(values, v.Text)
		}

		if len(values) == 0 {
			return nil, p.errorf(p.peek(), "identifier or string")
		}

		if _, err := p.expect(TokenCloseParen, ")"); err != nil {
			return nil, err
		}

		return values, nil
	}

	return nil, p.errorf(tok, expected)
}

// parseSub parses: 'sub' Names String? At* Block?.
func (p *parser) parseSub() (Statement, error) {
	start := p.advance()

	names, err := p.parseNameGroups("sub name")
	if err != nil {
		return nil, err
	}

	stmt := &Sub{Names: names, At: start.Pos}

	stmt.Description, stmt.Includes, stmt.Body, err = p.parseTail(scopeSub)
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseArg parses: 'opt'? ('arg' | 'varargs') ArgNames? String? At* Block?.
func (p *parser) parseArg() (Statement, error) {
	start := p.peek()
	stmt := &Arg{At: start.Pos}

	if start.Is("opt") {
		p.advance()

		stmt.Optional = true
	}

	switch kw := p.peek(); {
	case kw.Is("arg"):
		p.advance()
	case kw.Is("varargs"):
		p.advance()

		stmt.Varargs = true
	default:
		return nil, p.errorf(kw, "arg or varargs")
	}

	names, err := p.parseArgNames()
	if err != nil {
		return nil, err
	}

	stmt.Names = names

	stmt.Description, stmt.Includes, stmt.Body, err = p.parseTail(scopeArg)
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseFlag parses: 'reqd'? ('flag' | 'flagarg') Names String? At* Block?.
func (p *parser) parseFlag() (Statement, error) {
	start := p.peek()
	stmt := &Flag{At: start.Pos}

	if start.Is("reqd") {
		p.advance()

		stmt.Required = true
	}

	switch kw := p.peek(); {
	case kw.Is("flag"):
		p.advance()
	case kw.Is("flagarg"):
		p.advance()

		stmt.HasValue = true
	default:
		return nil, p.errorf(kw, "flag or flagarg")
	}

	names, err := p.parseNameGroups("flag name")
	if err != nil {
		return nil, err
	}

	stmt.Names = names

	stmt.Description, stmt.Includes, stmt.Body, err = p.parseTail(scopeFlag)
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseDefinition parses the remainder of defargs and defopts: At Block.
func (p *parser) parseDefinition(s scope) (string, []Statement, error) {
	name, err := p.expect(TokenAtIdentifier, "@name")
	if err != nil {
		return "", nil, err
	}

	if p.eof() || p.peek().Kind != TokenOpenBrace {
		return "", nil, p.errorf(p.peek(), "{")
	}

	body, err := p.parseBlock(s)
	if err != nil {
		return "", nil, err
	}

	return name.Text, body, nil
}

// parseTail parses what follows the names of sub, arg and flag statements:
// an optional description, zero or more @includes, and an optional block.
func (p *parser) parseTail(
	s scope,
) (desc *string, includes []string, body []Statement, err error) {
	if !p.eof() && p.peek().Kind == TokenString {
		text := p.advance().Text
		desc = &text
	}

	includes = p.parseAtIdentifiers()

	if !p.eof() && p.peek().Kind == TokenOpenBrace {
		body, err = p.parseBlock(s)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return desc, includes, body, nil
}

// parseBlock parses: '{' Statement* '}'.
func (p *parser) parseBlock(s scope) ([]Statement, error) {
	p.advance() // {

	body, err := p.parseStatements(s)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseBrace, "}"); err != nil {
		return nil, err
	}

	return body, nil
}

// parseNameGroups parses: Name | '(' Name+ ')'.
func (p *parser) parseNameGroups(what string) ([]NameGroup, error) {
	if group, ok := p.parseNameGroup(); ok {
		return []NameGroup{group}, nil
	}

	if p.eof() || p.peek().Kind != TokenOpenParen {
		return nil, p.errorf(p.peek(),
			what+" (identifier, string, or name,alias list) or (...) list")
	}

	p.advance()

	groups := make([]NameGroup, 0)

	for {
		group, ok := p.parseNameGroup()
		if !ok {
			break
		}

		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, p.errorf(p.peek(), what)
	}

	if _, err := p.expect(TokenCloseParen, ")"); err != nil {
		return nil, err
	}

	return groups, nil
}

// parseNameGroup parses: Ident | Ident (',' Ident)+ | String.
func (p *parser) parseNameGroup() (NameGroup, bool) {
	if p.eof() {
		return NameGroup{}, false
	}

	switch tok := p.peek(); tok.Kind {
	case TokenIdentifier, TokenString:
		p.advance()

		return NameGroup{Name: tok.Text}, true

	case TokenIdentifierWithAliases:
		p.advance()

		return NameGroup{
			Name:    tok.Names[0],
			Aliases: append([]string(nil), tok.Names[1:]...),
		}, true
	}

	return NameGroup{}, false
}

// parseArgNames parses an optional Ident | '(' Ident+ ')'.
//
// A single identifier is always taken as the name, even if it is a keyword.
func (p *parser) parseArgNames() ([]string, error) {
	if p.eof() {
		return nil, nil
	}

	switch tok := p.peek(); tok.Kind {
	case TokenIdentifier:
		p.advance()

		return []string{tok.Text}, nil

	case TokenOpenParen:
		p.advance()

		names := make([]string, 0)

		for !p.eof() && p.peek().Kind == TokenIdentifier {
			names = append(names, p.advance().Text)
		}

		if len(names) == 0 {
			return nil, p.errorf(p.peek(), "arg name")
		}

		if _, err := p.expect(TokenCloseParen, ")"); err != nil {
			return nil, err
		}

		return names, nil
	}

	return nil, nil
}

func (p *parser) parseAtIdentifiers() []string {
	var names []string

	for !p.eof() && p.peek().Kind == TokenAtIdentifier {
		names = append(names, p.advance().Text)
	}

	return names
}

// Helper methods

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the current token, or the zero Token at end of input.
func (p *parser) peek() Token {
	if p.eof() {
		return Token{}
	}

	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.peek()

	if !p.eof() {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	if p.eof() || p.peek().Kind != kind {
		return Token{}, p.errorf(p.peek(), what)
	}

	return p.advance(), nil
}

// errorf builds a parse error reporting what was expected at tok.
func (p *parser) errorf(tok Token, expected string) error {
	if p.eof() {
		pos := Position{Line: 1, Column: 1}
		if n := len(p.tokens); n > 0 {
			pos = p.tokens[n-1].Pos
		}

		return at(ErrParse, pos).With(
			slog.String("expected", expected),
			slog.String("got", "end of input"),
		)
	}

	return at(ErrParse, tok.Pos).With(
		slog.String("expected", expected),
		slog.String("got", tok.String()),
	)
}
