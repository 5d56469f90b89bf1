package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GhostWriters/dotenv/internal/dotenv"
	"github.com/GhostWriters/dotenv/internal/paths"

	"github.com/google/go-cmp/cmp"
)

func withTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paths.ConfigHomeOverride = dir
	t.Cleanup(func() { paths.ConfigHomeOverride = "" })
	return dir
}

func TestLoadWritesDefaults(t *testing.T) {
	dir := withTempConfigHome(t)

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error: %v", err)
	}
	if len(conf.Load.Files) != 1 || conf.Load.Files[0] != ".env" {
		t.Errorf("Load.Files = %v, want [.env]", conf.Load.Files)
	}
	if !conf.Load.Immutable {
		t.Error("Load.Immutable should default to true")
	}

	if _, err := os.Stat(filepath.Join(dir, "dotenv", "dotenv.toml")); err != nil {
		t.Errorf("defaults were not written: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	withTempConfigHome(t)

	conf := Default()
	conf.Parser.DecodeSingleQuoted = true
	conf.Load.Files = []string{"a.env", "b.env"}
	conf.Load.Required = []string{"DB_HOST"}
	conf.Load.SkipMissing = true
	conf.Load.Assert.Integer = []string{"DB_PORT"}
	conf.Load.Assert.Allowed = map[string][]string{"MODE": {"dev", "prod"}}
	conf.Load.Assert.Pattern = map[string]string{"TAG": "v[0-9]+"}
	conf.Output.Format = "json"
	conf.Log.File = "-"

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig() error: %v", err)
	}
	if !loaded.Parser.DecodeSingleQuoted {
		t.Error("Parser.DecodeSingleQuoted was not kept")
	}
	if len(loaded.Load.Files) != 2 || loaded.Load.Files[1] != "b.env" {
		t.Errorf("Load.Files = %v", loaded.Load.Files)
	}
	if !loaded.Load.SkipMissing {
		t.Error("Load.SkipMissing was not kept")
	}
	if diff := cmp.Diff(conf.Load.Assert, loaded.Load.Assert); diff != "" {
		t.Errorf("Load.Assert mismatch (-want +got):\n%s", diff)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", loaded.Output.Format)
	}
	if loaded.LogFile() != "" {
		t.Errorf("LogFile() = %q, want file logging off", loaded.LogFile())
	}
	if loaded.ParserOptions().SingleQuotes != dotenv.SingleQuoteDecode {
		t.Error("ParserOptions() did not select SingleQuoteDecode")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := withTempConfigHome(t)
	path := filepath.Join(dir, "dotenv", "dotenv.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[parser\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadAppConfig()
	if err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
	if conf.Output.Format != "table" {
		t.Errorf("defaults not returned on error, Output.Format = %q", conf.Output.Format)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("DOTENV_TEST_DIR", "/tmp/somewhere")
	if got := ExpandVariables("${DOTENV_TEST_DIR}/x.log"); got != "/tmp/somewhere/x.log" {
		t.Errorf("ExpandVariables() = %q", got)
	}
	if got := ExpandVariables("plain"); got != "plain" {
		t.Errorf("ExpandVariables(plain) = %q", got)
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	dir := withTempConfigHome(t)
	path := filepath.Join(dir, "dotenv", "dotenv.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[output]\nformat = 'xml'\n[load]\nfiles = ['a.env']\n"), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadAppConfig()
	if err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
	if conf.Output.Format != "table" {
		t.Errorf("Output.Format = %q, want table", conf.Output.Format)
	}
	if len(conf.Load.Files) != 1 || conf.Load.Files[0] != "a.env" {
		t.Errorf("other settings were dropped, Load.Files = %v", conf.Load.Files)
	}
}

func TestValidFormat(t *testing.T) {
	for _, name := range []string{"table", "raw", "env", "shell", "json", "yaml", "toml"} {
		if !ValidFormat(name) {
			t.Errorf("ValidFormat(%q) = false", name)
		}
	}
	for _, name := range []string{"", "xml", "JSON"} {
		if ValidFormat(name) {
			t.Errorf("ValidFormat(%q) = true", name)
		}
	}
}

func TestLoadNotSaved(t *testing.T) {
	dir := withTempConfigHome(t)
	path := filepath.Join(dir, "dotenv", "dotenv.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	// The file does not exist and cannot be created through the link.
	if err := os.Symlink(filepath.Join(dir, "missing", "dotenv.toml"), path); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	conf, err := LoadAppConfig()
	if !errors.Is(err, ErrNotSaved) {
		t.Fatalf("got %v, want ErrNotSaved", err)
	}
	if conf.Output.Format != "table" {
		t.Errorf("defaults not returned, Output.Format = %q", conf.Output.Format)
	}
}
