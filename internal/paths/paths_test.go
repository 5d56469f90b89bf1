package paths

import (
	"path/filepath"
	"testing"
)

func TestOverrides(t *testing.T) {
	dir := t.TempDir()
	ConfigHomeOverride = dir
	StateHomeOverride = filepath.Join(dir, "state")
	defer func() {
		ConfigHomeOverride = ""
		StateHomeOverride = ""
	}()

	if got, want := GetConfigFilePath(), filepath.Join(dir, "dotenv", "dotenv.toml"); got != want {
		t.Errorf("GetConfigFilePath() = %q, want %q", got, want)
	}
	if got, want := GetLogFilePath(), filepath.Join(dir, "state", "dotenv.log"); got != want {
		t.Errorf("GetLogFilePath() = %q, want %q", got, want)
	}
}
