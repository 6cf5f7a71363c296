package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrides(t *testing.T) {
	overrides, err := ParseOverrides([]byte(`
[[plugin]]
old = "$relpath$plugins/MyPlugin"
group = "com.example"
artifact = "my-plugin"
version = "1.2"
strategy = "plugin-only"

[[plugin]]
old = "$gatehome$plugins/ANNIE/"
strategy = "skip"
`))
	require.NoError(t, err)
	require.Len(t, overrides.Plugins, 2)

	first := overrides.Plugins[0]
	assert.Equal(t, "$relpath$plugins/MyPlugin/", first.Old, "old path gets a trailing slash")
	assert.True(t, first.HasCoordinates())
	assert.Equal(t, "1.2", first.Version)
	assert.Equal(t, "plugin-only", first.Strategy)

	assert.False(t, overrides.Plugins[1].HasCoordinates())

	assert.Same(t, &overrides.Plugins[1], overrides.Find("$gatehome$plugins/ANNIE"))
	assert.Nil(t, overrides.Find("$gatehome$plugins/Tools/"))
}

func TestParseOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"bad_toml", "[[plugin]\nold=", errors.ErrConfigParse},
		{"missing_old", "[[plugin]]\nstrategy = \"skip\"\n", errors.ErrConfigValid},
		{"group_without_artifact", "[[plugin]]\nold = \"x/\"\ngroup = \"g\"\n", errors.ErrConfigValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[plugin]]\nold = \"a/\"\nstrategy = \"upgrade\"\n"), 0644))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Len(t, overrides.Plugins, 1)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestFind_NilOverrides(t *testing.T) {
	var o *Overrides
	assert.Nil(t, o.Find("anything/"))
}
