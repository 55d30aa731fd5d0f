// Package conf defines the canonical command configuration compiled from the
// tabry language, along with the resolver that navigates it.
//
// A [Conf] is a tree of subcommands rooted at [Conf.Main]. Subcommands,
// flags and arguments may be given inline or as references to named
// argument includes ([Conf.ArgIncludes]); option lists may reference named
// option includes ([Conf.OptionIncludes]). The resolver methods flatten
// those references on demand:
//
//	subs, err := c.DigSubs([]string{"move", "go"})
//	flags, err := c.ExpandFlags(sub.Flags, sub.Includes)
//
// A Conf is never modified after it is built or decoded, so it can be shared
// by any number of concurrent readers.
package conf
