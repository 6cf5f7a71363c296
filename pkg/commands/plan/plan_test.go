package plan

import (
	"context"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	t.Setenv(paths.EnvMavenUserDir, t.TempDir())
	s := testutil.NewMavenServer(t)
	s.AddPlugin(t, "uk.ac.gate.plugins", "annie", "8.5", "8.6")
	s.AddPlugin(t, "com.example", "tagger", "1.0")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Repository.Remotes = []config.RemoteConfig{{ID: "test", URL: s.URL}}
	cfg.Repository.LocalPath = t.TempDir()

	file := testutil.NewXGapp().
		Builtin("ANNIE").
		Maven("com.example", "tagger", "1.0").
		WriteFile(t, t.TempDir(), "app.xgapp")

	view, err := Plan(context.Background(), PlanOptions{
		SessionOptions: internal.SessionOptions{Config: cfg, Paths: paths.New()},
		File:           file,
	})
	require.NoError(t, err)

	assert.Equal(t, file, view.File)
	require.Len(t, view.Plugins, 2)

	annie := view.Plugins[0]
	assert.Equal(t, "Pre-8.5 ANNIE (built-in)", annie.OldPlugin)
	assert.Equal(t, "annie", annie.NewPlugin)
	assert.Equal(t, "upgrade", annie.Strategy)
	assert.Equal(t, "8.6", annie.Target)
	assert.Equal(t, []string{"8.5", "8.6"}, annie.Versions)
	assert.False(t, annie.NoOp)

	tagger := view.Plugins[1]
	assert.Equal(t, "com.example:tagger", tagger.OldPlugin)
	assert.Equal(t, "1.0", tagger.Current)
	assert.True(t, tagger.NoOp, "already at the highest version")
	assert.True(t, view.HasWork())
}
