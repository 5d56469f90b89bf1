package cmd

import (
	"github.com/spf13/pflag"
)

// newFlagSet defines the flags used for argument validation. Values are
// never read from it; Parse only uses it to recognise options.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dotenv", pflag.ContinueOnError)

	// Modifiers
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.BoolP("debug", "x", false, "Debug output")
	fs.BoolP("decode-single", "d", false, "Decode escapes inside single quotes")
	fs.Bool("table", false, "Print documents as a table")
	fs.Bool("env", false, "Print documents as .env text")
	fs.Bool("shell", false, "Print documents as shell exports")
	fs.Bool("json", false, "Print documents as JSON")
	fs.Bool("yaml", false, "Print documents as YAML")
	fs.Bool("toml", false, "Print documents as TOML")
	fs.Bool("raw", false, "Print declarations as written")

	// Commands
	fs.BoolP("help", "h", false, "Show help")
	fs.BoolP("version", "V", false, "Show version")
	fs.StringP("parse", "p", "", "Parse and print files")
	fs.StringP("check", "c", "", "Check files for errors")
	fs.String("get", "", "Get variable value")
	fs.String("get-line", "", "Get variable line")
	fs.String("get-literal", "", "Get variable literal value")
	fs.StringP("require", "r", "", "Require variables to be set")
	fs.String("compare", "", "Compare with the Docker Compose parser")
	fs.String("diff", "", "Compare two files")
	fs.StringP("watch", "w", "", "Watch a file for changes")
	fs.Bool("config-show", false, "Show configuration")
	fs.Bool("show-config", false, "Show configuration (alias)")

	return fs
}
