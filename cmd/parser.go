package cmd

import (
	"fmt"
	"strings"

	"github.com/GhostWriters/dotenv/internal/console"
	"github.com/GhostWriters/dotenv/internal/version"
)

// ParseError wraps argument parsing errors to show the command line with
// the failing option marked.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--get")
}

func (e *ParseError) Error() string {
	indent := "   "

	var cmdLineParts []string
	cmdLineParts = append(cmdLineParts, console.Command(version.CommandName))
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		if i == e.Index {
			cmdLineParts = append(cmdLineParts, console.Error(e.Args[i]))
		} else {
			cmdLineParts = append(cmdLineParts, console.Command(e.Args[i]))
		}
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// indent + "'" + command name + " "
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + console.Error("^")

	// Message may contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", "'"+console.Command(e.FailingCommand)+"'",
		"%o", "'"+console.Command(failingOpt)+"'",
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(strings.TrimRight(GetUsage(e.FailingCommand), "\n"), "\n") {
			out += indent + line + "\n"
		}
	} else {
		out += fmt.Sprintf("\n%sRun '%s' for usage.\n", indent, console.Command(version.CommandName+" --help"))
	}

	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// CommandSlice returns the command and its arguments as a slice
func (cg CommandGroup) CommandSlice() []string {
	var s []string
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// BaseCommand returns the command without an inline "=value" part.
func (cg CommandGroup) BaseCommand() string {
	base, _, _ := strings.Cut(cg.Command, "=")
	return base
}

// CommandArgs returns the arguments of the command. The inline form
// --get=VAR yields VAR alone.
func (cg CommandGroup) CommandArgs() []string {
	if _, inline, ok := strings.Cut(cg.Command, "="); ok {
		return []string{inline}
	}
	return cg.Args
}

var modifiers = map[string]bool{
	"-v": true, "--verbose": true,
	"-x": true, "--debug": true,
	"-d": true, "--decode-single": true,
	"--table": true, "--env": true, "--shell": true,
	"--json": true, "--yaml": true, "--toml": true,
	"--raw": true,
}

// Parse splits the command line into groups. Each group holds the modifiers
// that precede a command, the command and its arguments. Modifiers apply to
// the following command only.
func Parse(args []string) ([]CommandGroup, error) {
	fs := newFlagSet()

	// Expand combined short flags (e.g. -vx -> -v -x)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	isFlag := func(i int) bool {
		return i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-")
	}
	hasValue := func(i int) bool {
		return i < len(expandedArgs) && !strings.HasPrefix(expandedArgs[i], "-")
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o", FailingCommand: lastCommand}
		}

		if modifiers[arg] {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			i++
			continue
		}

		cmdToCheck, inline, hasInline := strings.Cut(arg, "=")
		cmdName := strings.TrimLeft(cmdToCheck, "-")
		var known bool
		if strings.HasPrefix(cmdToCheck, "--") {
			known = fs.Lookup(cmdName) != nil
		} else if len(cmdName) == 1 {
			known = fs.ShorthandLookup(cmdName) != nil
		}
		if !known {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = arg
		lastCommand = cmdToCheck
		cmd := cmdToCheck
		i++

		if hasInline {
			if inline == "" || !inlineCommands[cmd] {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: "Invalid option %o"}
			}
			groups = append(groups, currentGroup)
			currentGroup = CommandGroup{}
			continue
		}

		consumesUntilDash := false

		switch cmd {
		// Commands that take any number of arguments
		case "-p", "--parse",
			"-c", "--check",
			"--compare":
			consumesUntilDash = true

		// Commands that require at least one argument
		case "--get", "--get-line", "--get-literal",
			"-r", "--require":
			if !hasValue(i) {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			consumesUntilDash = true

		// Commands that require exactly two arguments
		case "--diff":
			for n := 0; n < 2; n++ {
				if !hasValue(i) {
					return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires two files.", cmd)}
				}
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// Commands that accept an optional argument
		case "-w", "--watch":
			if hasValue(i) {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// Help takes the option to describe
		case "-h", "--help":
			if isFlag(i) {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// Commands that take no arguments
		case "-V", "--version",
			"--config-show", "--show-config":
		}

		if consumesUntilDash {
			for hasValue(i) {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	// Trailing modifiers form a group without a command
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}

// inlineCommands accept the --cmd=VALUE form.
var inlineCommands = map[string]bool{
	"--get":         true,
	"--get-line":    true,
	"--get-literal": true,
	"--require":     true,
}
