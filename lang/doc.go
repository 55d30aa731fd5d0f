// Package lang implements the tabry language: a small declarative DSL that
// describes the subcommands, flags and positional arguments of a command,
// and the sources of completion candidates for each of them.
//
// Source text goes through three stages, each usable on its own:
//
//	tokens, err := lang.Lex(src)           // []Token
//	ast, err := lang.Parse(ctx, tokens)    // *AST
//	c, err := lang.Compile(ctx, ast)       // *conf.Conf
//
// [CompileString] and [CompileReader] run all three.
//
// # Grammar
//
// Informal EBNF, where keywords are ordinary identifiers:
//
//	File      → TopStmt*
//	TopStmt   → Cmd | Desc | Include | Sub | Arg | Flag | DefArgs | DefOpts
//	SubStmt   → Desc | Include | Sub | Arg | Flag
//	ArgStmt   → Desc | Include | Opts | Title
//	FlagStmt  → Desc | Include | Opts
//	Cmd       → 'cmd' Ident
//	Desc      → 'desc' String
//	Title     → 'title' String
//	Include   → 'include' At+
//	Opts      → 'opts' ('file' | 'dir' | 'const' Values | 'shell' String
//	                    | 'delegate' String)
//	Sub       → 'sub' Names String? At* ('{' SubStmt* '}')?
//	Arg       → 'opt'? ('arg' | 'varargs') ArgNames? String? At*
//	                  ('{' ArgStmt* '}')?
//	Flag      → 'reqd'? ('flag' | 'flagarg') Names String? At*
//	                  ('{' FlagStmt* '}')?
//	DefArgs   → 'defargs' At '{' SubStmt* '}'
//	DefOpts   → 'defopts' At '{' ArgStmt* '}'
//	Names     → Name | '(' Name+ ')'
//	Name      → Ident | Ident (',' Ident)+ | String
//	ArgNames  → Ident | '(' Ident+ ')'
//	Values    → Ident | String | '(' (Ident | String)+ ')'
//
// Comments run from '#' to the end of the line.
//
// # Example
//
//	cmd vehicles
//	flag verbose,v "Print more"
//
//	defopts @vehicle-types {
//	  opts const (car bike)
//	}
//
//	sub (go,g stop,s) {
//	  arg vehicle @vehicle-types
//	  flagarg speed { opts shell "echo fast && echo slow" }
//	}
package lang
