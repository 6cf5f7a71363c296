package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/arthur-debert/xgappup/pkg/upgrade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *testutil.MavenServer) {
	t.Helper()
	t.Setenv(paths.EnvMavenUserDir, t.TempDir())

	s := testutil.NewMavenServer(t)
	s.AddPlugin(t, upgrade.DefaultGroup, "tools", "1.0", "2.0")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Repository.Remotes = []config.RemoteConfig{{ID: "test", URL: s.URL}}
	cfg.Repository.LocalPath = t.TempDir()

	session, err := NewSession(SessionOptions{Config: cfg, Paths: paths.New()})
	require.NoError(t, err)
	return session, s
}

func TestBuildPlan(t *testing.T) {
	session, s := newTestSession(t)
	file := testutil.NewXGapp().
		Builtin("Tools").
		Directory("$relpath$plugins/Mine/").
		WriteFile(t, t.TempDir(), "app.xgapp")

	assert.Zero(t, s.RequestCount(""), "the repository is contacted on first use only")

	plan, err := session.BuildPlan(context.Background(), file, "")
	require.NoError(t, err)
	require.Len(t, plan.Paths, 2)
	assert.Equal(t, "creole://uk.ac.gate.plugins;tools;2.0/", plan.Paths[0].NewPath())
	assert.Equal(t, upgrade.Skip, plan.Paths[1].Strategy(), "unresolved directory plugins are kept as skipped")
	assert.Empty(t, plan.UnusedOverrides)
}

func TestBuildPlan_Overrides(t *testing.T) {
	session, _ := newTestSession(t)
	dir := t.TempDir()
	file := testutil.NewXGapp().Builtin("Tools").WriteFile(t, dir, "app.xgapp")

	overrides := filepath.Join(dir, "plan.toml")
	require.NoError(t, os.WriteFile(overrides, []byte(`
[[plugin]]
old = "$gatehome$plugins/Tools/"
version = "1.0"

[[plugin]]
old = "$relpath$plugins/Gone/"
strategy = "skip"
`), 0644))

	plan, err := session.BuildPlan(context.Background(), file, overrides)
	require.NoError(t, err)
	v, _ := plan.Paths[0].SelectedVersion()
	assert.Equal(t, "1.0", v.String())
	assert.Equal(t, []string{"$relpath$plugins/Gone/"}, plan.UnusedOverrides)
}

func TestBuildPlan_Errors(t *testing.T) {
	session, _ := newTestSession(t)
	dir := t.TempDir()

	_, err := session.BuildPlan(context.Background(), filepath.Join(dir, "missing.xgapp"), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	file := testutil.NewXGapp().Builtin("Tools").WriteFile(t, dir, "app.xgapp")
	_, err = session.BuildPlan(context.Background(), file, filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	broken := filepath.Join(dir, "broken.xgapp")
	require.NoError(t, os.WriteFile(broken, []byte("<gate.util.persistence.GateApplication>"), 0644))
	_, err = session.BuildPlan(context.Background(), broken, "")
	assert.Error(t, err)
}

func TestNewSession_LoadsConfig(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, t.TempDir())
	t.Setenv("XGAPPUP_UPGRADE__DEFAULT_GROUP", "com.example")

	session, err := NewSession(SessionOptions{Paths: paths.New()})
	require.NoError(t, err)
	assert.Equal(t, "com.example", session.Config.Upgrade.DefaultGroup)
	assert.NotNil(t, session.Resolver)
}
