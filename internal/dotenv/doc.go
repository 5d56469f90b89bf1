// Package dotenv parses ".env" style text into an ordered list of entries.
//
// The grammar follows POSIX shell quoting closely enough for configuration
// files, without any of the shell's expansions:
//
//	NAME=value              unquoted, no whitespace, backslashes are literal
//	NAME="a\tb"             double quoted, escapes decoded, may span lines
//	NAME='a b'              single quoted, escapes validated but kept as written
//	export NAME=value       the export keyword is ignored
//	# comment               full line and trailing comments
//
// Parsing is fail-fast: the first malformed construct aborts the call with an
// *InvalidFileError and no partial document is returned.
package dotenv
