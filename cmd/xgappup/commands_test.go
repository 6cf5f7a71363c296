package xgappup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv isolates config, state and Maven dirs and returns a config file
// pointing at a fake repository
func setupEnv(t *testing.T) (string, *testutil.MavenServer) {
	t.Helper()
	root := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(paths.EnvStateHome, filepath.Join(root, "state"))
	t.Setenv(paths.EnvMavenUserDir, filepath.Join(root, "m2"))
	t.Setenv("NO_COLOR", "1")

	s := testutil.NewMavenServer(t)
	s.AddPlugin(t, "uk.ac.gate.plugins", "tools", "1.0", "2.0")

	configFile := filepath.Join(root, "xgappup.toml")
	content := fmt.Sprintf(`
[repository]
local_path = %q

[[repository.remotes]]
id = "test"
url = %q
`, filepath.Join(root, "repo"), s.URL)
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	return configFile, s
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func toolsApp(t *testing.T) string {
	t.Helper()
	return testutil.NewXGapp().
		Builtin("Tools").
		Resource("configURL", "$gatehome$plugins/Tools/resources/config.xml").
		WriteFile(t, t.TempDir(), "app.xgapp")
}

func TestRootCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
	assert.Contains(t, out, "COMMANDS:")
	assert.Contains(t, out, "upgrade")
	assert.Contains(t, out, "MISC:")
}

func TestVersionCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xgappup version dev")
}

func TestPlanCmd_JSON(t *testing.T) {
	configFile, _ := setupEnv(t)
	file := toolsApp(t)

	out, err := execute(t, "--config", configFile, "--format", "json", "plan", file)
	require.NoError(t, err)

	var view display.PlanView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Plugins, 1)
	assert.Equal(t, "Pre-8.5 Tools (built-in)", view.Plugins[0].OldPlugin)
	assert.Equal(t, "2.0", view.Plugins[0].Target)
	assert.Equal(t, []string{"1.0", "2.0"}, view.Plugins[0].Versions)
}

func TestUpgradeCmd(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		configFile, _ := setupEnv(t)
		file := toolsApp(t)

		out, err := execute(t, "--config", configFile, "--format", "text", "upgrade", "--dry-run", file)
		require.NoError(t, err)
		assert.Contains(t, out, fmt.Sprintf(display.MsgWouldUpgrade, 1, 1, file))
		assert.NoFileExists(t, file+".bak")
	})

	t.Run("write", func(t *testing.T) {
		configFile, _ := setupEnv(t)
		file := toolsApp(t)

		out, err := execute(t, "--config", configFile, "--format", "text", "upgrade", file)
		require.NoError(t, err)
		assert.Contains(t, out, fmt.Sprintf(display.MsgUpgradedFormat, 1, 1, file))
		assert.FileExists(t, file+".bak")

		out, err = execute(t, "--config", configFile, "--format", "text", "upgrade", file)
		require.NoError(t, err)
		assert.Contains(t, out, display.MsgNothingToDo, "a second run finds nothing left")
	})

	t.Run("offline without a local copy", func(t *testing.T) {
		configFile, s := setupEnv(t)
		file := toolsApp(t)

		out, err := execute(t, "--config", configFile, "--offline", "--format", "text", "upgrade", file)
		require.NoError(t, err)
		assert.Contains(t, out, display.MsgNothingToDo)
		assert.Zero(t, s.RequestCount(""))
	})
}

func TestVersionsCmd(t *testing.T) {
	configFile, _ := setupEnv(t)

	out, err := execute(t, "--config", configFile, "--format", "text", "versions", "uk.ac.gate.plugins", "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "2.0 "+display.MsgHighestMarker)
}

func TestGenConfigCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "--format", "text", "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[repository]")
	assert.Contains(t, out, "# offline = false")
}

func TestInvalidFormat(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "--format", "xml", "genconfig")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestHelpTopics(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "strategies")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "help", "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Neither the application nor its backup is written")

	out, err = execute(t, "help", "upgrade")
	require.NoError(t, err)
	assert.Contains(t, out, "--interactive")
}

func TestCompletionCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "xgappup")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
