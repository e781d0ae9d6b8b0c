//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories"
	"github.com/rios0rios0/fetchbump/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/fetchbump/test/infrastructure/repositorydoubles"
)

const zlibContent = `include(FetchContent)
FetchContent_Declare(zlib URL https://github.com/madler/zlib/archive/refs/tags/v1.2.11.tar.gz)
FetchContent_MakeAvailable(zlib)
`

func registryWith(stub *doubles.StubReleaseRepository) *infraRepos.ReleaseRegistry {
	reg := infraRepos.NewReleaseRegistry()
	reg.Register("stub", func(_ *entities.Settings) repositories.ReleaseRepository {
		return stub
	})
	return reg
}

func zlibFile(path string) entities.ConfigFile {
	return entities.ConfigFile{
		Path:    path,
		Content: zlibContent,
		Declarations: []entities.Declaration{
			entitybuilders.NewDeclarationBuilder().WithFilePath(path).WithLine(2).BuildDeclaration(),
		},
	}
}

func TestBumpCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should rewrite only the bumped URL", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "CMakeLists.txt")
		spy := &doubles.SpyDeclarationRepository{Files: map[string]entities.ConfigFile{path: zlibFile(path)}}
		stub := &doubles.StubReleaseRepository{Latest: map[string]string{zlibURL: "1.3.1"}}
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		bumps, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: root})

		// then
		require.NoError(t, err)
		require.Len(t, bumps, 1)
		assert.Equal(t, "v1.3.1", bumps[0].NewVersion)
		assert.Equal(t, `include(FetchContent)
FetchContent_Declare(zlib URL https://github.com/madler/zlib/archive/refs/tags/v1.3.1.tar.gz)
FetchContent_MakeAvailable(zlib)
`, spy.Saved[path])
	})

	t.Run("should not write files in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "CMakeLists.txt")
		spy := &doubles.SpyDeclarationRepository{Files: map[string]entities.ConfigFile{path: zlibFile(path)}}
		stub := &doubles.StubReleaseRepository{Latest: map[string]string{zlibURL: "1.3.1"}}
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		bumps, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: root, DryRun: true})

		// then
		require.NoError(t, err)
		assert.Len(t, bumps, 1)
		assert.Empty(t, spy.Saved)
	})

	t.Run("should return nothing when everything is current", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "CMakeLists.txt")
		spy := &doubles.SpyDeclarationRepository{Files: map[string]entities.ConfigFile{path: zlibFile(path)}}
		stub := &doubles.StubReleaseRepository{Latest: map[string]string{zlibURL: "v1.2.11"}}
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		bumps, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: root})

		// then
		require.NoError(t, err)
		assert.Empty(t, bumps)
		assert.Empty(t, spy.Saved)
	})

	t.Run("should keep declaration order while resolving in parallel", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "deps.cmake")
		urls := []string{
			"https://github.com/a/one/archive/v1.0.0.tar.gz",
			"https://github.com/a/two/archive/v1.0.0.tar.gz",
			"https://github.com/a/three/archive/v1.0.0.tar.gz",
			"https://github.com/a/four/archive/v1.0.0.tar.gz",
		}
		file := entities.ConfigFile{Path: path}
		latest := make(map[string]string)
		for i, url := range urls {
			file.Content += "FetchContent_Declare(d URL " + url + ")\n"
			file.Declarations = append(file.Declarations, entitybuilders.NewDeclarationBuilder().
				WithName(fmt.Sprintf("dep%d", i)).
				WithURL(url, "v1.0.0").
				WithFilePath(path).
				WithLine(i+1).
				BuildDeclaration())
			latest[url] = "v2.0.0"
		}
		spy := &doubles.SpyDeclarationRepository{Files: map[string]entities.ConfigFile{path: file}}
		stub := &doubles.StubReleaseRepository{Latest: latest, Delay: 10 * time.Millisecond}
		settings := entitybuilders.NewSettingsBuilder().WithConcurrency(4).BuildSettings()
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		bumps, err := cmd.Execute(context.Background(), settings, commands.BumpOptions{Root: root})

		// then
		require.NoError(t, err)
		require.Len(t, bumps, 4)
		for i, bump := range bumps {
			assert.Equal(t, urls[i], bump.OldURL)
			assert.Equal(t, i+1, bump.Line)
		}
		assert.NotContains(t, spy.Saved[path], "v1.0.0")
	})

	t.Run("should fail when the tree cannot be walked", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyDeclarationRepository{WalkErr: errors.New("permission denied")}
		cmd := commands.NewBumpCommand(spy, registryWith(&doubles.StubReleaseRepository{}))

		// when
		_, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: t.TempDir()})

		// then
		require.Error(t, err)
	})

	t.Run("should fail on a root that is not a directory", func(t *testing.T) {
		t.Parallel()

		// given
		file := filepath.Join(t.TempDir(), "CMakeLists.txt")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		cmd := commands.NewBumpCommand(&doubles.SpyDeclarationRepository{}, registryWith(&doubles.StubReleaseRepository{}))

		// when
		_, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: file})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("should surface a failed write", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "CMakeLists.txt")
		spy := &doubles.SpyDeclarationRepository{
			Files:   map[string]entities.ConfigFile{path: zlibFile(path)},
			SaveErr: errors.New("read-only file system"),
		}
		stub := &doubles.StubReleaseRepository{Latest: map[string]string{zlibURL: "1.3.1"}}
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		bumps, err := cmd.Execute(context.Background(), entitybuilders.NewSettingsBuilder().BuildSettings(),
			commands.BumpOptions{Root: root})

		// then
		require.Error(t, err)
		assert.Len(t, bumps, 1)
	})

	t.Run("should write the lookup metrics when configured", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		path := filepath.Join(root, "CMakeLists.txt")
		metricsFile := filepath.Join(t.TempDir(), "fetchbump.prom")
		spy := &doubles.SpyDeclarationRepository{Files: map[string]entities.ConfigFile{path: zlibFile(path)}}
		stub := &doubles.StubReleaseRepository{ProviderName: "stub", Latest: map[string]string{zlibURL: "1.3.1"}}
		settings := entitybuilders.NewSettingsBuilder().WithMetricsFile(metricsFile).BuildSettings()
		cmd := commands.NewBumpCommand(spy, registryWith(stub))

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.BumpOptions{Root: root, DryRun: true})

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(metricsFile)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `fetchbump_release_lookups_total{outcome="found",provider="stub"} 1`)
	})
}

func TestPlanAll(t *testing.T) {
	t.Parallel()

	t.Run("should report a cancelled context", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stub := &doubles.StubReleaseRepository{Latest: map[string]string{zlibURL: "1.3.1"}}
		planner := commands.NewPlanner(stub, entitybuilders.NewSettingsBuilder().BuildSettings())
		decls := []entities.Declaration{entitybuilders.NewDeclarationBuilder().BuildDeclaration()}

		// when
		_, err := commands.PlanAll(ctx, planner, decls, 1)

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}
