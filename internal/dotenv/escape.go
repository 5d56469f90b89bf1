package dotenv

import "strings"

// controlEscapes are valid in both quote styles.
var controlEscapes = map[byte]byte{
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
	'f': '\f',
}

// unescape returns the byte that \c stands for inside a value quoted with q.
// Only the quote character itself, the backslash and the control escapes are
// accepted.
func unescape(q, c byte) (byte, bool) {
	if c == q || c == '\\' {
		return c, true
	}
	b, ok := controlEscapes[c]
	return b, ok
}

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\v", `\v`,
	"\f", `\f`,
)

// Quote returns value as a double-quoted literal that parses back to value.
func Quote(value string) string {
	return `"` + quoter.Replace(value) + `"`
}
