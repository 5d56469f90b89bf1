package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/GhostWriters/dotenv/internal/console"
	"github.com/GhostWriters/dotenv/internal/constants"
	"github.com/GhostWriters/dotenv/internal/version"
)

// PrintHelp writes usage information to w.
// If target is empty, prints global usage.
func PrintHelp(w io.Writer, target string) {
	fmt.Fprint(w, GetUsage(target))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}
	c := console.Command
	file := console.File
	name := console.Name

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: %s [%s] [%s] ...", c(appCmd), c("<Flags>"), c("<Command>")))
		printStr("")
		printStr(fmt.Sprintf("%s [%s]", appName, version.Version))
		printStr("Parses, checks and prints dotenv files.")
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command, and get reset before the next command.")
		printStr("")
		printStr(fmt.Sprintf("Commands that take files default to the files listed in '%s'", file(constants.AppConfigFileName)))
		printStr(fmt.Sprintf("('%s' unless changed). A variable given as '%s' is read from '%s'.", file(constants.EnvFileName), name("<file>:<var>"), file("<file>")))
		printStr("Running without a command parses the default files.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""
	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target || o+"=" == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-v", "--verbose") {
		printStr(c("-v --verbose"))
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr(c("-x --debug"))
		printStr("	Debug")
	}
	if match("-d", "--decode-single") {
		printStr(c("-d --decode-single"))
		printStr(`	Decode escape sequences such as \t inside single quotes instead of keeping them as written`)
	}
	if match("--table", "--env", "--shell", "--json", "--yaml", "--toml") {
		printStr(c("--table") + " " + c("--env") + " " + c("--shell") + " " + c("--json") + " " + c("--yaml") + " " + c("--toml"))
		printStr("	Output format for the following command")
	}
	if match("--raw") {
		printStr(c("--raw"))
		printStr("	Print each declaration as written in the file, without comments or blank lines")
	}

	if showAll {
		printStr("")
		printStr("CLI Commands:")
		printStr("")
	}

	if match("-p", "--parse") {
		printStr(fmt.Sprintf("%s [%s ...]", c("-p --parse"), file("<file>")))
		printStr("	Parse the files and print the variables")
	}
	if match("-c", "--check") {
		printStr(fmt.Sprintf("%s [%s ...]", c("-c --check"), file("<file>")))
		printStr("	Check the files and report the first error in each")
	}
	if match("--get") {
		printStr(fmt.Sprintf("%s %s [%s ...]", c("--get"), name("<var>"), name("<var>")))
		printStr(c("--get=") + name("<var>"))
		printStr("	Get the value of a variable")
	}
	if match("--get-line") {
		printStr(fmt.Sprintf("%s %s [%s ...]", c("--get-line"), name("<var>"), name("<var>")))
		printStr(c("--get-line=") + name("<var>"))
		printStr("	Get the declaration of a variable as written, all lines of a multi-line value included")
	}
	if match("--get-literal") {
		printStr(fmt.Sprintf("%s %s [%s ...]", c("--get-literal"), name("<var>"), name("<var>")))
		printStr(c("--get-literal=") + name("<var>"))
		printStr("	Get the literal value (including quotes) of a variable")
	}
	if match("-r", "--require") {
		printStr(fmt.Sprintf("%s %s [%s ...]", c("-r --require"), name("<var>"), name("<var>")))
		printStr(c("--require=") + name("<var>"))
		printStr("	Load the default files over the environment and check the variables are set and not empty.")
		printStr(fmt.Sprintf("	Value checks listed under [load.assert] in '%s' run as well", file(constants.AppConfigFileName)))
	}
	if match("--compare") {
		printStr(fmt.Sprintf("%s [%s ...]", c("--compare"), file("<file>")))
		printStr("	Compare the parsed values with the Docker Compose dotenv parser")
	}
	if match("--diff") {
		printStr(fmt.Sprintf("%s %s %s", c("--diff"), file("<file>"), file("<file>")))
		printStr("	Show the differences between the parsed values of two files")
	}
	if match("-w", "--watch") {
		printStr(fmt.Sprintf("%s [%s]", c("-w --watch"), file("<file>")))
		printStr("	Parse a file every time it changes, until interrupted")
	}
	if match("--config-show", "--show-config") {
		printStr(c("--config-show"))
		printStr(c("--show-config"))
		printStr("	Shows the current configuration options")
	}
	if match("-h", "--help") {
		printStr(fmt.Sprintf("%s [%s]", c("-h --help"), c("<option>")))
		printStr("	Show this usage information, or the usage of a single option")
	}
	if match("-V", "--version") {
		printStr(c("-V --version"))
		printStr("	Show the version")
	}

	return sb.String()
}
