// Package engine turns command-line tokens into completion candidates.
//
// A [Machine] consumes the tokens typed so far, one at a time, and tracks
// which subcommand they select, which flags are set, and which positional
// arguments were given. The final [State] together with the resolved
// subcommand chain forms a [Result]. A [Finder] then produces the candidates
// for the token being completed:
//
//	res, err := engine.Run(ctx, c, []string{"move", "crash"})
//	opts, err := engine.NewFinder(res).Options(ctx, "--")
//	opts.Write(os.Stdout)
//
// Candidates come from the options attached to subcommands, flags and
// arguments. Options of type shell are produced by running a command through
// "sh -c" with the parse state exported in the TABRY_AUTOCOMPLETE_STATE
// environment variable.
package engine
