package constants

// File Names
const (
	EnvFileName        = ".env"
	EnvExampleFileName = ".env.example"
	AppConfigFileName  = "dotenv.toml"
	LogFileName        = "dotenv.log"
)

// Output Formats
const (
	FormatTable = "table"
	FormatRaw   = "raw"
	FormatEnv   = "env"
	FormatShell = "shell"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)
