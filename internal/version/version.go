package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "dotenv"

// CommandName is the name of the executable command.
// It is initialized dynamically from the executable filename.
var CommandName = "dotenv"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X github.com/GhostWriters/dotenv/internal/version.Version=v1.YYYYMMDD.N"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	name := filepath.Base(os.Args[0])
	name = strings.TrimSuffix(name, ".exe")

	// go run and go test binaries get throwaway names
	if name == "" || strings.EqualFold(name, "main") || strings.HasSuffix(name, ".test") {
		return
	}
	CommandName = name
}
