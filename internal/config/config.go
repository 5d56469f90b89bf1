package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"slices"

	"github.com/GhostWriters/dotenv/internal/constants"
	"github.com/GhostWriters/dotenv/internal/dotenv"
	"github.com/GhostWriters/dotenv/internal/format"
	"github.com/GhostWriters/dotenv/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Parser ParserConfig `toml:"parser"`
	Load   LoadConfig   `toml:"load"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// Path is the file the configuration was read from. Not saved to TOML.
	Path string `toml:"-"`
}

// ParserConfig holds settings passed to the dotenv parser.
type ParserConfig struct {
	// DecodeSingleQuoted decodes \t, \n and friends inside single quotes
	// instead of keeping them as written.
	DecodeSingleQuoted bool `toml:"decode_single_quoted"`
}

// LoadConfig holds the files read when no file is given on the command line.
type LoadConfig struct {
	Files       []string     `toml:"files"`
	SkipMissing bool         `toml:"skip_missing"`
	Immutable   bool         `toml:"immutable"`
	Required    []string     `toml:"required"`
	Assert      AssertConfig `toml:"assert"`
}

// AssertConfig holds value checks run by --require. Names listed here must
// also be set.
type AssertConfig struct {
	Integer []string            `toml:"integer,omitempty"`
	Boolean []string            `toml:"boolean,omitempty"`
	Allowed map[string][]string `toml:"allowed,omitempty"` // name -> accepted values
	Pattern map[string]string   `toml:"pattern,omitempty"` // name -> regular expression
}

// OutputConfig holds settings for printed documents.
type OutputConfig struct {
	Format         string `toml:"format"` // table, raw, env, shell, json, yaml or toml
	LineCharacters bool   `toml:"line_characters"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	// File is the log file path. Empty means the state directory,
	// "-" turns file logging off.
	File string `toml:"file"`
}

// ErrNotSaved is returned by LoadAppConfig when the default configuration
// could not be written.
var ErrNotSaved = errors.New("config file not saved")

// Default returns the configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		Load: LoadConfig{
			Files:     []string{constants.EnvFileName},
			Immutable: true,
		},
		Output: OutputConfig{
			Format:         constants.FormatTable,
			LineCharacters: true,
		},
	}
}

// ParserOptions returns the dotenv.Parser described by the configuration.
func (c AppConfig) ParserOptions() *dotenv.Parser {
	p := &dotenv.Parser{}
	if c.Parser.DecodeSingleQuoted {
		p.SingleQuotes = dotenv.SingleQuoteDecode
	}
	return p
}

// LogFile returns the expanded log file path, or "" when file logging is off.
func (c AppConfig) LogFile() string {
	switch c.Log.File {
	case "":
		return paths.GetLogFilePath()
	case "-":
		return ""
	}
	return ExpandVariables(c.Log.File)
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Any other name expands to the process environment value.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file. When it does not exist the
// defaults are written to it and returned.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()
	path := paths.GetConfigFilePath()
	conf.Path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := SaveAppConfig(conf); err != nil {
			return conf, fmt.Errorf("%w: %w", ErrNotSaved, err)
		}
		return conf, nil
	}
	if err != nil {
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return Default(), fmt.Errorf("invalid config file %s, using defaults: %w", path, err)
	}
	conf.Path = path

	if !ValidFormat(conf.Output.Format) {
		bad := conf.Output.Format
		conf.Output.Format = Default().Output.Format
		return conf, fmt.Errorf("invalid output format %q in %s, using %q", bad, path, conf.Output.Format)
	}
	return conf, nil
}

// ValidFormat reports whether name is an output format: the table and raw
// views or one of the rendered formats.
func ValidFormat(name string) bool {
	switch name {
	case constants.FormatTable, constants.FormatRaw:
		return true
	}
	return slices.Contains(format.Formats, format.Format(name))
}

// SaveAppConfig writes the configuration to dotenv.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
