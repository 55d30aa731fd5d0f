package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "  # only a comment\n",
			want:  []Token{},
		},
		{
			name:  "punctuation",
			input: "( ) { }",
			want: []Token{
				{Kind: TokenOpenParen},
				{Kind: TokenCloseParen},
				{Kind: TokenOpenBrace},
				{Kind: TokenCloseBrace},
			},
		},
		{
			name:  "identifiers",
			input: "sub move_it dry-run",
			want: []Token{
				{Kind: TokenIdentifier, Text: "sub"},
				{Kind: TokenIdentifier, Text: "move_it"},
				{Kind: TokenIdentifier, Text: "dry-run"},
			},
		},
		{
			name:  "aliases",
			input: "verbose,v,V2",
			want: []Token{
				{Kind: TokenIdentifierWithAliases, Names: []string{"verbose", "v", "V2"}},
			},
		},
		{
			name:  "at identifier",
			input: "@vehicle-types @1st",
			want: []Token{
				{Kind: TokenAtIdentifier, Text: "vehicle-types"},
				{Kind: TokenAtIdentifier, Text: "1st"},
			},
		},
		{
			name:  "strings",
			input: `"" "a \"quoted\" word" "back\\slash" "keep \n as is"`,
			want: []Token{
				{Kind: TokenString, Text: ""},
				{Kind: TokenString, Text: `a "quoted" word`},
				{Kind: TokenString, Text: `back\slash`},
				{Kind: TokenString, Text: `keep \n as is`},
			},
		},
		{
			name:  "comment between tokens",
			input: "flag # trailing\n  verbose",
			want: []Token{
				{Kind: TokenIdentifier, Text: "flag"},
				{Kind: TokenIdentifier, Text: "verbose"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got,
				cmpopts.EquateEmpty(),
				cmpopts.IgnoreFields(Token{}, "Pos"),
			); diff != "" {
				t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLex_Positions(t *testing.T) {
	got, err := Lex("cmd foo\n  sub \"x\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 10, Line: 2, Column: 3},
		{Offset: 14, Line: 2, Column: 7},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}

	for i, tok := range got {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%s): expected %v, got %v", i, tok, want[i], tok.Pos)
		}
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int64
	}{
		{"unterminated string", "desc \"oops", 1},
		{"bad character", "sub foo\n  $bar", 2},
		{"digit start", "sub 9lives", 1},
		{"empty at", "include @ foo", 1},
		{"dangling comma", "flag verbose,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if !errors.Is(err, ErrLex) {
				t.Fatalf("expected ErrLex, got %v", err)
			}

			if line := attr(t, err, "line").Int64(); line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, line)
			}
		})
	}
}

func TestUnindent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "untouched",
			input: "  leading spaces kept",
			want:  "  leading spaces kept",
		},
		{
			name:  "leading newline and spaces",
			input: "\n    one\n      two\n",
			want:  "\none\n  two\n",
		},
		{
			name:  "trailing newline and tab",
			input: "\tone\n\t\ttwo\n\t",
			want:  "one\n\ttwo\n",
		},
		{
			name:  "blank lines ignored",
			input: "\n    one\n\n    two",
			want:  "\none\n\ntwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unindent(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
