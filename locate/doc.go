// Package locate finds the tabry config of a command and loads it.
//
// Configs are searched in the directories of the import path, taken from
// the TABRY_IMPORT_PATH environment variable. A command "foo" is configured
// by the first "foo.tabry" or "foo.json" found. Sources in the tabry language
// are compiled once and the result is cached under a hash of the source, so
// an edited source is never served from a stale cache entry.
package locate
