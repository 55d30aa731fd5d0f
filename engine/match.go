package engine

import "github.com/ardnew/tabry/conf"

// MatchFlag reports whether token spells f or one of its aliases.
// Single-character names match only "-x" and longer names only "--name";
// prefixes never match.
func MatchFlag(f *conf.ConcreteFlag, token string) bool {
	if matchFlagName(f.Name, token) {
		return true
	}

	for _, alias := range f.Aliases {
		if matchFlagName(alias, token) {
			return true
		}
	}

	return false
}

func matchFlagName(name, token string) bool {
	return name != "" && token == conf.FlagToken(name)
}

// IsHelp reports whether token requests help.
func IsHelp(token string) bool {
	switch token {
	case "help", "--help", "-?":
		return true
	}

	return false
}
