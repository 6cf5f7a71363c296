package upgrade

import (
	"context"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/arthur-debert/xgappup/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func samplePaths(t *testing.T) ([]*Path, *fakeResolver) {
	t.Helper()
	xml := testutil.NewXGapp().
		Builtin("Tools").
		Maven("uk.ac.gate.plugins", "annie", "8.5").
		Directory("$relpath$plugins/Mine/").
		Directory("$relpath$plugins/Unknown/").
		String()
	r := newFakeResolver().
		with("uk.ac.gate.plugins", "tools", "1.0", "1.1", "2.0").
		with("uk.ac.gate.plugins", "annie", "8.5", "9.0").
		with("uk.ac.gate.plugins", "mine", "0.1", "0.2").
		with("com.example", "unknown", "3.0", "3.1").
		with("com.example", "tools-ng", "1.1", "5.0")
	paths := suggest(t, parseDoc(t, xml), r)
	require.Len(t, paths, 4)
	return paths, r
}

func TestSetSelectedVersion(t *testing.T) {
	paths, _ := samplePaths(t)
	tools := paths[0]

	require.NoError(t, tools.SetSelectedVersion(version.MustParse("1.1")))
	selected, _ := tools.SelectedVersion()
	assert.Equal(t, "1.1", selected.String())

	require.NoError(t, tools.SetSelectedVersion(version.MustParse("2")), "equivalent spelling is accepted")
	selected, _ = tools.SelectedVersion()
	assert.Equal(t, "2.0", selected.String(), "the set's spelling is kept")

	err := tools.SetSelectedVersion(version.MustParse("3.0"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
	selected, _ = tools.SelectedVersion()
	assert.Equal(t, "2.0", selected.String(), "rejected selection leaves state unchanged")

	unresolved := paths[3]
	err = unresolved.SetSelectedVersion(version.MustParse("1.0"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestSetStrategy(t *testing.T) {
	paths, _ := samplePaths(t)
	builtin, coordinate, directory, unresolved := paths[0], paths[1], paths[2], paths[3]

	err := builtin.SetStrategy(PluginOnly)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStrategyNotAllowed))
	assert.Equal(t, Upgrade, builtin.Strategy())

	err = coordinate.SetStrategy(PluginOnly)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStrategyNotAllowed))

	require.NoError(t, directory.SetStrategy(PluginOnly))
	assert.Equal(t, PluginOnly, directory.Strategy())

	require.NoError(t, builtin.SetStrategy(Skip))
	assert.False(t, builtin.VersionEditable())
	selected, _ := builtin.SelectedVersion()
	assert.Equal(t, "2.0", selected.String(), "strategy changes keep the version")
	require.NoError(t, builtin.SetStrategy(Upgrade))
	assert.True(t, builtin.VersionEditable())

	err = unresolved.SetStrategy(Upgrade)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStrategyNotAllowed), "needs coordinates")
	assert.Equal(t, Skip, unresolved.Strategy())
}

func TestSetCoordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves_unresolved_directory", func(t *testing.T) {
		paths, r := samplePaths(t)
		p := paths[3]

		require.NoError(t, p.SetCoordinates(ctx, r, "com.example", "unknown"))
		assert.Equal(t, "com.example", p.GroupID())
		assert.Equal(t, Upgrade, p.Strategy())
		selected, _ := p.SelectedVersion()
		assert.Equal(t, "3.1", selected.String())
	})

	t.Run("keeps_selection_present_in_new_set", func(t *testing.T) {
		paths, r := samplePaths(t)
		p := paths[0]
		require.NoError(t, p.SetSelectedVersion(version.MustParse("1.1")))
		require.NoError(t, p.SetStrategy(Skip))

		require.NoError(t, p.SetCoordinates(ctx, r, "com.example", "tools-ng"))
		selected, _ := p.SelectedVersion()
		assert.Equal(t, "1.1", selected.String())
		assert.Equal(t, Upgrade, p.Strategy())
	})

	t.Run("resets_selection_missing_from_new_set", func(t *testing.T) {
		paths, r := samplePaths(t)
		p := paths[0]

		require.NoError(t, p.SetCoordinates(ctx, r, "uk.ac.gate.plugins", "mine"))
		selected, _ := p.SelectedVersion()
		assert.Equal(t, "0.2", selected.String())
	})

	t.Run("failure_leaves_plan_untouched", func(t *testing.T) {
		paths, r := samplePaths(t)
		p := paths[0]
		require.NoError(t, p.SetStrategy(Skip))

		err := p.SetCoordinates(ctx, r, "bogus.group", "bogus-artifact")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoVersions))
		assert.Contains(t, err.Error(), "bogus.group:bogus-artifact is not a valid GATE plugin")
		assert.Equal(t, "tools", p.ArtifactID())
		assert.Equal(t, Skip, p.Strategy())
		assert.Equal(t, 3, p.Versions().Len())
	})

	t.Run("requires_both_parts", func(t *testing.T) {
		paths, r := samplePaths(t)
		err := paths[0].SetCoordinates(ctx, r, "", "tools")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
	})
}

// selectedIsMember checks the plan invariant
func selectedIsMember(t assert.TestingT, p *Path) {
	selected, ok := p.SelectedVersion()
	if p.Versions() == nil {
		assert.False(t, ok)
		return
	}
	assert.True(t, ok)
	assert.True(t, p.Versions().Contains(selected), "%s not in %v", selected, p.Versions().Strings())
}

func TestPathInvariant_RandomMutations(t *testing.T) {
	ctx := context.Background()
	coordinates := [][2]string{
		{"uk.ac.gate.plugins", "tools"},
		{"uk.ac.gate.plugins", "mine"},
		{"com.example", "unknown"},
		{"com.example", "tools-ng"},
		{"bogus.group", "bogus-artifact"},
	}
	versions := []string{"0.1", "0.2", "1.0", "1.1", "2.0", "3.0", "3.1", "5.0", "9.9"}

	rapid.Check(t, func(rt *rapid.T) {
		paths, r := samplePaths(t)
		p := paths[rapid.IntRange(0, len(paths)-1).Draw(rt, "path")]

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				c := rapid.SampledFrom(coordinates).Draw(rt, "coordinates")
				_ = p.SetCoordinates(ctx, r, c[0], c[1])
			case 1:
				_ = p.SetStrategy(rapid.SampledFrom(Strategies()).Draw(rt, "strategy"))
			case 2:
				before, _ := p.SelectedVersion()
				v := version.MustParse(rapid.SampledFrom(versions).Draw(rt, "version"))
				if err := p.SetSelectedVersion(v); err != nil {
					after, _ := p.SelectedVersion()
					assert.Equal(rt, before, after)
				}
			}
			selectedIsMember(rt, p)
			if p.Strategy().UpgradesPlugin() {
				assert.True(rt, p.HasCoordinates())
			}
			assert.Contains(rt, p.AllowedStrategies(), p.Strategy())
		}
	})
}

func TestFilterNoOps(t *testing.T) {
	xml := testutil.NewXGapp().
		Maven("uk.ac.gate.plugins", "annie", "9.0").
		Maven("uk.ac.gate.plugins", "tools", "1.0").
		Builtin("Tools").
		String()
	r := newFakeResolver().
		with("uk.ac.gate.plugins", "annie", "8.5", "9.0").
		with("uk.ac.gate.plugins", "tools", "1.0", "2.0")
	paths := suggest(t, parseDoc(t, xml), r)
	require.Len(t, paths, 3)

	assert.True(t, paths[0].IsNoOp(), "already at the highest version")
	assert.False(t, paths[1].IsNoOp())
	require.NoError(t, paths[2].SetStrategy(Skip))

	kept := FilterNoOps(paths)
	require.Len(t, kept, 1)
	assert.Equal(t, "creole://uk.ac.gate.plugins;tools;1.0/", kept[0].OldPath())

	require.NoError(t, paths[1].SetSelectedVersion(version.MustParse("1.0")))
	assert.Empty(t, FilterNoOps(paths))
}

func TestLabels(t *testing.T) {
	xml := testutil.NewXGapp().
		Builtin("ANNIE").
		Maven("uk.ac.gate.plugins", "annie", "8.5").
		Maven("com.example", "thing", "1.0").
		Directory("$relpath$plugins/My Plugin/").
		String()
	r := newFakeResolver().
		with("uk.ac.gate.plugins", "annie", "8.5", "9.0").
		with("com.example", "thing", "1.0", "2.0")
	paths := suggest(t, parseDoc(t, xml), r)
	require.Len(t, paths, 4)

	assert.Equal(t, "Pre-8.5 ANNIE (built-in)", OldPluginLabel(paths[0], DefaultGroup))
	assert.Equal(t, "annie", OldPluginLabel(paths[1], DefaultGroup))
	assert.Equal(t, "com.example:thing", OldPluginLabel(paths[2], DefaultGroup))
	assert.Equal(t, `Directory plugin "My Plugin"`, OldPluginLabel(paths[3], DefaultGroup))

	assert.Equal(t, "annie", NewPluginLabel(paths[0], DefaultGroup))
	assert.Equal(t, "com.example:thing", NewPluginLabel(paths[2], DefaultGroup))
	assert.Equal(t, UnknownPlugin, NewPluginLabel(paths[3], DefaultGroup))
}
