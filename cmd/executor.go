package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/GhostWriters/dotenv/internal/compat"
	"github.com/GhostWriters/dotenv/internal/config"
	"github.com/GhostWriters/dotenv/internal/console"
	"github.com/GhostWriters/dotenv/internal/constants"
	"github.com/GhostWriters/dotenv/internal/dotenv"
	"github.com/GhostWriters/dotenv/internal/envfile"
	"github.com/GhostWriters/dotenv/internal/format"
	"github.com/GhostWriters/dotenv/internal/loader"
	"github.com/GhostWriters/dotenv/internal/logger"
	"github.com/GhostWriters/dotenv/internal/paths"
	"github.com/GhostWriters/dotenv/internal/version"
)

// stdout receives command output. Logging goes to stderr.
var stdout io.Writer = os.Stdout

// CmdState holds the state of flags for a single command group.
type CmdState struct {
	Format string
	Parser *dotenv.Parser
}

// Execute runs the logic for a sequence of command groups.
// It handles flag application, command switching, and state resetting.
// It stops at the first failing command and returns the exit code.
func Execute(ctx context.Context, conf config.AppConfig, groups []CommandGroup) int {
	if len(groups) == 0 {
		groups = []CommandGroup{{}}
	}

	for _, group := range groups {
		state := CmdState{
			Format: conf.Output.Format,
			Parser: conf.ParserOptions(),
		}

		for _, flag := range group.Flags {
			switch flag {
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelInfo)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelDebug)
			case "-d", "--decode-single":
				state.Parser.SingleQuotes = dotenv.SingleQuoteDecode
			default:
				state.Format = strings.TrimPrefix(flag, "--")
			}
		}

		cmdStr := version.CommandName
		for _, part := range group.FullSlice() {
			cmdStr += " " + part
		}
		logger.Info(ctx, "%s command: '%s'", version.ApplicationName, console.Command(cmdStr))
		logger.Debug(ctx, "Execution Args -> Format: %s, SingleQuotes: %v, Command: %v", state.Format, state.Parser.SingleQuotes, group.CommandSlice())

		err := runCommand(ctx, &conf, &group, &state)

		logger.SetLevel(logger.LevelNotice)

		if err != nil {
			logError(ctx, err)
			return 1
		}
	}

	return 0
}

func runCommand(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	switch group.BaseCommand() {
	case "-h", "--help":
		return handleHelp(group)
	case "-V", "--version":
		return handleVersion(ctx)
	case "", "-p", "--parse":
		return handleParse(conf, group, state)
	case "-c", "--check":
		return handleCheck(ctx, conf, group, state)
	case "--get", "--get-line", "--get-literal":
		return handleGet(ctx, conf, group, state)
	case "-r", "--require":
		return handleRequire(ctx, conf, group, state)
	case "--compare":
		return handleCompare(ctx, conf, group, state)
	case "--diff":
		return handleDiff(ctx, group, state)
	case "-w", "--watch":
		return handleWatch(ctx, conf, group, state)
	case "--config-show", "--show-config":
		return handleConfigShow(ctx, conf)
	}
	return fmt.Errorf("unknown command %s", group.Command)
}

// logError logs err, showing the location of parse errors.
func logError(ctx context.Context, err error) {
	var perr *dotenv.InvalidFileError
	if errors.As(err, &perr) {
		logger.Error(ctx, "%v", err)
		logger.Error(ctx, "Line %d: [%s]", perr.Line, console.Error(perr.Snippet))
		return
	}
	logger.Error(ctx, "%v", err)
}

// reader returns ReadSafe when args is empty and missing default files are
// to be skipped, Read otherwise.
func reader(conf *config.AppConfig, args []string) func(*dotenv.Parser, ...string) (dotenv.Document, error) {
	if len(args) == 0 && conf.Load.SkipMissing {
		return envfile.ReadSafe
	}
	return envfile.Read
}

// files returns args, or the configured default files when args is empty.
func files(conf *config.AppConfig, args []string) []string {
	if len(args) > 0 {
		return args
	}
	out := make([]string, 0, len(conf.Load.Files))
	for _, f := range conf.Load.Files {
		out = append(out, config.ExpandVariables(f))
	}
	return out
}

// resolveVar splits "<file>:<var>" into its parts. A plain variable name is
// looked for in the first default file.
func resolveVar(conf *config.AppConfig, arg string) (name, file string) {
	if i := strings.LastIndex(arg, ":"); i > 0 {
		return arg[i+1:], arg[:i]
	}
	file = constants.EnvFileName
	if defaults := files(conf, nil); len(defaults) > 0 {
		file = defaults[0]
	}
	return arg, file
}

func handleHelp(group *CommandGroup) error {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(stdout, target)
	return nil
}

func handleVersion(ctx context.Context) error {
	fmt.Fprintf(stdout, "%s [%s]\n", version.ApplicationName, version.Version)
	logger.Info(ctx, "Commit %s, built %s", version.Commit, version.BuildDate)
	return nil
}

func printDocument(conf *config.AppConfig, doc dotenv.Document, f string) error {
	if f == "" || f == constants.FormatTable {
		headers := []string{console.Command("Name"), console.Command("Value")}
		var data []string
		for _, e := range doc {
			data = append(data, console.Name(e.Name), console.Value(dotenv.Quote(e.Value)))
		}
		fmt.Fprint(stdout, console.FormatTable(headers, data, conf.Output.LineCharacters))
		return nil
	}

	out, err := format.Render(doc, format.Format(f))
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

// printRaw prints the declarations of each file as written.
func printRaw(files []string, skipMissing bool) error {
	for _, file := range files {
		lines, err := envfile.ReadLines(file)
		if skipMissing && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(stdout, line)
		}
	}
	return nil
}

func handleParse(conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	if state.Format == constants.FormatRaw {
		return printRaw(files(conf, group.Args), len(group.Args) == 0 && conf.Load.SkipMissing)
	}
	read := reader(conf, group.Args)
	doc, err := read(state.Parser, files(conf, group.Args)...)
	if err != nil {
		return err
	}
	return printDocument(conf, doc, state.Format)
}

func handleCheck(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	read := reader(conf, group.Args)
	failed := 0
	for _, file := range files(conf, group.Args) {
		doc, err := read(state.Parser, file)
		if err != nil {
			logError(ctx, err)
			failed++
			continue
		}
		logger.Notice(ctx, "'%s' is valid: %d variables.", console.File(file), doc.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed the check", failed)
	}
	return nil
}

func handleGet(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	p := state.Parser
	for _, arg := range group.CommandArgs() {
		name, file := resolveVar(conf, arg)

		var val string
		var err error
		switch group.BaseCommand() {
		case "--get-line":
			val, err = envfile.GetLine(name, file)
		case "--get-literal":
			val, err = envfile.GetLiteral(name, file)
		default:
			val, err = envfile.Get(p, name, file)
		}
		if err != nil {
			return fmt.Errorf("getting %s: %w", arg, err)
		}

		logger.Debug(ctx, "%s in '%s' -> '%s'", name, file, val)
		if val != "" {
			fmt.Fprintln(stdout, val)
		}
	}
	return nil
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

func handleRequire(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	read := reader(conf, nil)
	doc, err := read(state.Parser, files(conf, nil)...)
	if err != nil {
		return err
	}

	repo := loader.NewMapRepository(environ())
	l := &loader.Loader{Repo: repo, Immutable: conf.Load.Immutable}
	applied, err := l.Load(doc)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Loaded %d variables.", len(applied))

	names := slices.Concat(group.CommandArgs(), conf.Load.Required)
	if err := checkRequired(repo, names, conf.Load.Assert); err != nil {
		return err
	}
	logger.Notice(ctx, "All %d required variables are set.", len(names))
	return nil
}

// checkRequired checks that names are set and not empty, then runs the
// configured value assertions.
func checkRequired(repo loader.Repository, names []string, a config.AssertConfig) error {
	errs := []error{loader.Required(repo, names...).NotEmpty().Err()}
	if len(a.Integer) > 0 {
		errs = append(errs, loader.Required(repo, a.Integer...).IsInteger().Err())
	}
	if len(a.Boolean) > 0 {
		errs = append(errs, loader.Required(repo, a.Boolean...).IsBoolean().Err())
	}
	for _, name := range slices.Sorted(maps.Keys(a.Allowed)) {
		errs = append(errs, loader.Required(repo, name).AllowedValues(a.Allowed[name]...).Err())
	}
	for _, name := range slices.Sorted(maps.Keys(a.Pattern)) {
		errs = append(errs, loader.Required(repo, name).AllowedRegexValues(a.Pattern[name]).Err())
	}
	return errors.Join(errs...)
}

func handleCompare(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	p := state.Parser
	for _, file := range files(conf, group.Args) {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		report, err := compat.Compare(p, string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		switch {
		case report.ComposeErr != nil:
			logger.Warn(ctx, "'%s' is rejected by the Docker Compose parser: %v", console.File(file), report.ComposeErr)
		case report.Compatible():
			logger.Notice(ctx, "'%s' parses the same with Docker Compose.", console.File(file))
		default:
			logger.Warn(ctx, "'%s' has %d variables that Docker Compose reads differently:", console.File(file), len(report.Differences))
			headers := []string{console.Command("Name"), console.Command(version.ApplicationName), console.Command("Compose")}
			var data []string
			for _, d := range report.Differences {
				data = append(data, console.Name(d.Name), shown(d.Value, d.Set), shown(d.Compose, d.ComposeSet))
			}
			fmt.Fprint(stdout, console.FormatTable(headers, data, conf.Output.LineCharacters))
		}
	}
	return nil
}

func shown(value string, set bool) string {
	if !set {
		return console.Error("(unset)")
	}
	return console.Value(dotenv.Quote(value))
}

func handleDiff(ctx context.Context, group *CommandGroup, state *CmdState) error {
	p := state.Parser
	a, err := envfile.Read(p, group.Args[0])
	if err != nil {
		return err
	}
	b, err := envfile.Read(p, group.Args[1])
	if err != nil {
		return err
	}

	diff := format.Diff(a, b)
	if diff == "" {
		logger.Notice(ctx, "'%s' and '%s' hold the same variables.", console.File(group.Args[0]), console.File(group.Args[1]))
		return nil
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch line[0] {
		case '-':
			line = console.Error(line)
		case '+':
			line = console.Value(line)
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func handleWatch(ctx context.Context, conf *config.AppConfig, group *CommandGroup, state *CmdState) error {
	watched := files(conf, group.Args)
	if len(watched) == 0 {
		return errors.New("no file to watch")
	}
	file := watched[0]

	logger.Notice(ctx, "Watching '%s'. Press Ctrl-C to stop.", console.File(file))
	return envfile.Watch(ctx, state.Parser, file, func(doc dotenv.Document, err error) {
		if err != nil {
			logError(ctx, err)
			return
		}
		logger.Notice(ctx, "'%s' parsed: %d variables.", console.File(file), doc.Len())
		if state.Format == constants.FormatRaw {
			err = printRaw([]string{file}, false)
		} else {
			err = printDocument(conf, doc, state.Format)
		}
		if err != nil {
			logger.Error(ctx, "%v", err)
		}
	})
}

func handleConfigShow(ctx context.Context, conf *config.AppConfig) error {
	headers := []string{
		console.Command("Option"),
		console.Command("Value"),
		console.Command("Expanded Value"),
	}

	boolToYesNo := func(val bool) string {
		if val {
			return "yes"
		}
		return "no"
	}

	var expandedFiles []string
	for _, f := range conf.Load.Files {
		expandedFiles = append(expandedFiles, config.ExpandVariables(f))
	}

	data := []string{
		"Decode Single Quoted", console.Value(boolToYesNo(conf.Parser.DecodeSingleQuoted)), "",
		"Files", console.File(strings.Join(conf.Load.Files, ", ")), console.File(strings.Join(expandedFiles, ", ")),
		"Skip Missing", console.Value(boolToYesNo(conf.Load.SkipMissing)), "",
		"Immutable", console.Value(boolToYesNo(conf.Load.Immutable)), "",
		"Required", console.Name(strings.Join(conf.Load.Required, ", ")), "",
		"Integer", console.Name(strings.Join(conf.Load.Assert.Integer, ", ")), "",
		"Boolean", console.Name(strings.Join(conf.Load.Assert.Boolean, ", ")), "",
		"Format", console.Value(conf.Output.Format), "",
		"Line Characters", console.Value(boolToYesNo(conf.Output.LineCharacters)), "",
		"Log File", console.File(conf.Log.File), console.File(conf.LogFile()),
	}

	logger.Notice(ctx, "Configuration options stored in '%s':", console.File(paths.GetConfigFilePath()))
	fmt.Fprint(stdout, console.FormatTable(headers, data, conf.Output.LineCharacters))
	return nil
}
