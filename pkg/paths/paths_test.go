package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvCacheDir, filepath.Join(tmp, "cache"))
	t.Setenv(EnvStateHome, filepath.Join(tmp, "state"))
	t.Setenv(EnvMavenUserDir, filepath.Join(tmp, "m2"))

	p := New()

	assert.Equal(t, filepath.Join(tmp, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "cache"), p.CacheDir())
	assert.Equal(t, filepath.Join(tmp, "config", "config.toml"), p.ConfigFile(".toml"))
	assert.Equal(t, filepath.Join(tmp, "state", "xgappup", "xgappup.log"), p.LogFilePath())
	assert.Equal(t, filepath.Join(tmp, "m2", "settings.xml"), p.MavenSettingsPath())
	assert.Equal(t, filepath.Join(tmp, "m2", "repository"), p.MavenLocalRepository())
}

func TestNew_MavenDefaultsUnderHome(t *testing.T) {
	t.Setenv(EnvMavenUserDir, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	p := New()
	assert.Equal(t, filepath.Join(home, ".m2", "repository"), p.MavenLocalRepository())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde_only", "~", home},
		{"tilde_prefix", "~/.m2/settings.xml", filepath.Join(home, ".m2", "settings.xml")},
		{"absolute", "/etc/maven", "/etc/maven"},
		{"tilde_user_untouched", "~bob/x", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
