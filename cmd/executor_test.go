package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GhostWriters/dotenv/internal/config"
	"github.com/GhostWriters/dotenv/internal/loader"
)

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute parses args, runs them against conf and returns the exit code and
// everything written to stdout.
func execute(t *testing.T, conf config.AppConfig, args ...string) (int, string) {
	t.Helper()
	groups, err := Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	defer func() { stdout = prev }()

	code := Execute(context.Background(), conf, groups)
	return code, buf.String()
}

func testConfig(files ...string) config.AppConfig {
	conf := config.Default()
	conf.Load.Files = files
	conf.Output.Format = "env"
	return conf
}

func TestExecuteParseFormats(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "FOO=bar\nexport BAZ='q x'\n")
	conf := testConfig(env)

	tests := []struct {
		args []string
		want string
	}{
		{nil, "FOO=\"bar\"\nBAZ=\"q x\"\n"},
		{[]string{"--parse"}, "FOO=\"bar\"\nBAZ=\"q x\"\n"},
		{[]string{"--shell", "-p", env}, "export FOO='bar'\nexport BAZ='q x'\n"},
		{[]string{"--json"}, "{\n  \"FOO\": \"bar\",\n  \"BAZ\": \"q x\"\n}\n"},
	}

	for _, tt := range tests {
		code, out := execute(t, conf, tt.args...)
		if code != 0 {
			t.Errorf("%q exited %d", tt.args, code)
		}
		if out != tt.want {
			t.Errorf("%q printed %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestExecuteParseTable(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "FOO=bar\n")
	conf := testConfig(env)
	conf.Output.Format = "table"
	conf.Output.LineCharacters = false

	code, out := execute(t, conf)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Name", "Value", "FOO", `"bar"`} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteDecodeSingle(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", `FOO='a\tb'`+"\n")
	conf := testConfig(env)

	_, out := execute(t, conf, "--get", "FOO")
	if out != "a\\tb\n" {
		t.Errorf("verbatim get printed %q", out)
	}
	_, out = execute(t, conf, "-d", "--get", "FOO")
	if out != "a\tb\n" {
		t.Errorf("decoded get printed %q", out)
	}
}

func TestExecuteCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeEnv(t, dir, "good.env", "FOO=bar\n")
	bad := writeEnv(t, dir, "bad.env", "FOO=bar baz\n")
	conf := testConfig(good)

	if code, _ := execute(t, conf, "--check"); code != 0 {
		t.Errorf("check of a valid file exited %d", code)
	}
	if code, _ := execute(t, conf, "--check", good, bad); code != 1 {
		t.Errorf("check with an invalid file exited %d", code)
	}
}

func TestExecuteStopsOnError(t *testing.T) {
	dir := t.TempDir()
	bad := writeEnv(t, dir, "bad.env", "FOO='open\n")
	conf := testConfig(bad)

	code, out := execute(t, conf, "-p", "-V")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if out != "" {
		t.Errorf("commands after the failure ran: %q", out)
	}
}

func TestExecuteGet(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "FOO=\"a b\" # note\n")
	other := writeEnv(t, dir, "other.env", "BAR=1\n")
	conf := testConfig(env)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--get", "FOO"}, "a b\n"},
		{[]string{"--get=FOO"}, "a b\n"},
		{[]string{"--get-line", "FOO"}, "FOO=\"a b\" # note\n"},
		{[]string{"--get-literal", "FOO"}, "\"a b\" # note\n"},
		{[]string{"--get", other + ":BAR", "MISSING"}, "1\n"},
	}
	for _, tt := range tests {
		code, out := execute(t, conf, tt.args...)
		if code != 0 || out != tt.want {
			t.Errorf("%q = %d, %q; want 0, %q", tt.args, code, out, tt.want)
		}
	}
}

func TestExecuteGetMultiline(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "A=\"first\nFOO=inside\n\"\nB=\"x\ny\"\n")
	conf := testConfig(env)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--get", "FOO"}, ""},
		{[]string{"--get-line", "FOO"}, ""},
		{[]string{"--get-literal", "FOO"}, ""},
		{[]string{"--get-line", "A"}, "A=\"first\nFOO=inside\n\"\n"},
		{[]string{"--get-literal", "B"}, "\"x\ny\"\n"},
	}
	for _, tt := range tests {
		code, out := execute(t, conf, tt.args...)
		if code != 0 || out != tt.want {
			t.Errorf("%q = %d, %q; want 0, %q", tt.args, code, out, tt.want)
		}
	}
}

func TestExecuteRaw(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "# header\nFOO=bar # note\n\nexport B='x\\ty'\n")
	conf := testConfig(env)
	want := "FOO=bar # note\nexport B='x\\ty'\n"

	for _, args := range [][]string{{"--raw"}, {"--raw", "-p", env}} {
		code, out := execute(t, conf, args...)
		if code != 0 || out != want {
			t.Errorf("%q = %d, %q; want 0, %q", args, code, out, want)
		}
	}

	conf.Output.Format = "raw"
	if _, out := execute(t, conf); out != want {
		t.Errorf("configured raw format printed %q", out)
	}
}

func TestExecuteSkipMissing(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "FOO=bar\n")
	missing := filepath.Join(dir, "missing.env")
	conf := testConfig(env, missing)

	if code, _ := execute(t, conf, "-p"); code != 1 {
		t.Errorf("missing default file exited %d, want 1", code)
	}

	conf.Load.SkipMissing = true
	if code, out := execute(t, conf, "-p"); code != 0 || out != "FOO=\"bar\"\n" {
		t.Errorf("skipped missing default file = %d, %q", code, out)
	}
	if code, _ := execute(t, conf, "--check"); code != 0 {
		t.Errorf("check with a skipped missing default file exited %d", code)
	}
	if code, _ := execute(t, conf, "-p", missing); code != 1 {
		t.Errorf("missing file named on the command line exited %d, want 1", code)
	}
}

func TestCheckRequiredAssertions(t *testing.T) {
	repo := loader.NewMapRepository(map[string]string{
		"PORT": "80",
		"FLAG": "maybe",
		"MODE": "dev",
		"TAG":  "v12",
	})
	a := config.AssertConfig{
		Integer: []string{"PORT"},
		Boolean: []string{"FLAG"},
		Allowed: map[string][]string{"MODE": {"dev", "prod"}},
		Pattern: map[string]string{"TAG": "v[0-9]+"},
	}

	err := checkRequired(repo, []string{"PORT"}, a)
	want := "One or more environment variables failed assertions: FLAG is not a boolean."
	if err == nil || err.Error() != want {
		t.Fatalf("got %v, want %q", err, want)
	}

	if err := repo.Set("FLAG", "yes"); err != nil {
		t.Fatal(err)
	}
	if err := checkRequired(repo, []string{"PORT"}, a); err != nil {
		t.Errorf("all assertions hold, got %v", err)
	}

	if err := repo.Set("MODE", "test"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("TAG", "latest"); err != nil {
		t.Fatal(err)
	}
	err = checkRequired(repo, nil, a)
	if err == nil || !strings.Contains(err.Error(), "MODE is not one of [dev, prod]") || !strings.Contains(err.Error(), "TAG does not match v[0-9]+") {
		t.Errorf("got %v", err)
	}
}

func TestExecuteRequireAssertions(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "DOTENV_CMD_TEST_PORT=eighty\n")
	conf := testConfig(env)
	conf.Load.Assert.Integer = []string{"DOTENV_CMD_TEST_PORT"}

	if code, _ := execute(t, conf, "--require", "DOTENV_CMD_TEST_PORT"); code != 1 {
		t.Errorf("failed integer assertion exited %d, want 1", code)
	}
}

func TestExecuteRequire(t *testing.T) {
	dir := t.TempDir()
	env := writeEnv(t, dir, ".env", "DOTENV_CMD_TEST_A=1\nDOTENV_CMD_TEST_EMPTY=\n")
	conf := testConfig(env)

	if code, _ := execute(t, conf, "--require", "DOTENV_CMD_TEST_A"); code != 0 {
		t.Errorf("require of a set variable exited %d", code)
	}
	if code, _ := execute(t, conf, "--require", "DOTENV_CMD_TEST_EMPTY"); code != 1 {
		t.Errorf("require of an empty variable exited %d", code)
	}
	if code, _ := execute(t, conf, "-r", "DOTENV_CMD_TEST_MISSING"); code != 1 {
		t.Errorf("require of a missing variable exited %d", code)
	}

	conf.Load.Required = []string{"DOTENV_CMD_TEST_MISSING"}
	if code, _ := execute(t, conf, "--require", "DOTENV_CMD_TEST_A"); code != 1 {
		t.Errorf("configured required variable was not checked")
	}
}

func TestExecuteDiff(t *testing.T) {
	dir := t.TempDir()
	a := writeEnv(t, dir, "a.env", "A=1\nB=2\n")
	b := writeEnv(t, dir, "b.env", "A=1\nB=3\n")

	code, out := execute(t, testConfig(), "--diff", a, b)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	want := " A=\"1\"\n-B=\"2\"\n+B=\"3\"\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	if _, out := execute(t, testConfig(), "--diff", a, a); out != "" {
		t.Errorf("identical files printed %q", out)
	}
}

func TestExecuteCompare(t *testing.T) {
	dir := t.TempDir()
	same := writeEnv(t, dir, "same.env", "A=1\n")
	differs := writeEnv(t, dir, "differs.env", "A=1\nB=${A}\n")
	conf := testConfig()
	conf.Output.LineCharacters = false

	if code, out := execute(t, conf, "--compare", same); code != 0 || out != "" {
		t.Errorf("compatible file = %d, %q", code, out)
	}
	code, out := execute(t, conf, "--compare", differs)
	if code != 0 {
		t.Errorf("exit %d", code)
	}
	if !strings.Contains(out, "B") || !strings.Contains(out, `"${A}"`) || !strings.Contains(out, `"1"`) {
		t.Errorf("difference table:\n%s", out)
	}
}

func TestExecuteVersionAndHelp(t *testing.T) {
	_, out := execute(t, testConfig(), "--version")
	if !strings.HasPrefix(out, "dotenv [") {
		t.Errorf("version printed %q", out)
	}

	_, out = execute(t, testConfig(), "--help", "--check")
	if !strings.Contains(out, "--check") || strings.Contains(out, "CLI Commands:") {
		t.Errorf("help for --check printed:\n%s", out)
	}
}
