package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sceneforge/depsgraph/pkg/buildinfo"
	"github.com/sceneforge/depsgraph/pkg/cache"
	"github.com/sceneforge/depsgraph/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "degtool"

// Execute runs the degtool CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext. Verbose mode also registers logging hooks for
// graph build and render events.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "degtool builds and inspects scene dependency graphs",
		Long:         `degtool builds dependency graphs from scene manifests, collapses cyclic datablocks into atomic groups, and renders or serves the result for inspection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			if verbose {
				registerLogHooks(logger)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newArchiveCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// newCache creates the render cache. Preference order: disabled, Redis
// when a URL is given, file cache under the XDG cache directory.
func newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/degtool/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// registerLogHooks routes observability events to the debug logger.
func registerLogHooks(logger *charmlog.Logger) {
	observability.SetGraphHooks(&logGraphHooks{logger: logger})
	observability.SetRenderHooks(&logRenderHooks{logger: logger})
	observability.SetCacheHooks(&logCacheHooks{logger: logger})
}
