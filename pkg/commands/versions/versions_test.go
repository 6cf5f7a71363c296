package versions

import (
	"context"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionOptions(t *testing.T) (internal.SessionOptions, *testutil.MavenServer) {
	t.Helper()
	t.Setenv(paths.EnvMavenUserDir, t.TempDir())
	s := testutil.NewMavenServer(t)

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Repository.Remotes = []config.RemoteConfig{{ID: "test", URL: s.URL}}
	cfg.Repository.LocalPath = t.TempDir()
	return internal.SessionOptions{Config: cfg, Paths: paths.New()}, s
}

func TestVersions(t *testing.T) {
	opts, s := sessionOptions(t)
	s.AddPlugin(t, "uk.ac.gate.plugins", "tools", "1.0", "1.10", "1.9")
	s.AddVersion("uk.ac.gate.plugins", "tools", "2.0", testutil.PlainJar(t))

	view, err := Versions(context.Background(), VersionsOptions{
		SessionOptions: opts,
		Group:          "uk.ac.gate.plugins",
		Artifact:       "tools",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.9", "1.10"}, view.Versions, "ordered, jars without the marker dropped")
	assert.Equal(t, "1.10", view.Highest)
}

func TestVersions_Unknown(t *testing.T) {
	opts, _ := sessionOptions(t)

	view, err := Versions(context.Background(), VersionsOptions{
		SessionOptions: opts,
		Group:          "com.example",
		Artifact:       "nothing",
	})
	require.NoError(t, err)
	assert.Empty(t, view.Versions)
	assert.Empty(t, view.Highest)
}

func TestVersions_MissingArguments(t *testing.T) {
	_, err := Versions(context.Background(), VersionsOptions{Group: "com.example", Artifact: " "})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}
