// Package cli implements the rpgmap command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/buildinfo"
	"github.com/matzehuels/rpgmap/pkg/cache"
	"github.com/matzehuels/rpgmap/pkg/config"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rpgmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rpgmap maps tabletop RPG systems by shared design elements",
		Long: `rpgmap reads a catalog of tabletop role-playing systems, links every system
to the design elements it uses, and renders the result as an interactive
graph. Selecting a system or element highlights its direct connections.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ttl, err := c.Config.CacheTTL()
	if err != nil {
		return nil, err
	}

	var (
		store cache.Cache
		keyer cache.Keyer
	)
	switch backend := c.Config.Cache.Backend; {
	case noCache || backend == config.BackendNone:
		store = cache.NewNullCache()
	case backend == config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			return nil, err
		}
		store = rc
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	default:
		store, err = newFileCache()
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
			store = cache.NewNullCache()
		}
	}

	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = ttl
	return r, nil
}

func newFileCache() (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// datasetSource returns the dataset named on the command line, falling back
// to the configured source.
func (c *CLI) datasetSource(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.Config.Dataset.Source != "" {
		return c.Config.Dataset.Source, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput,
		"no dataset given: pass a file or URL, or set [dataset] source in %s", config.Path())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rpgmap/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the flags shared by build and render.
type renderFlags struct {
	formats  string
	selected string
	engine   string
	detailed bool
	title    string
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): html, svg, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&f.selected, "select", "s", "", "node ID to highlight (system name or category:value)")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "graphviz layout engine for svg: neato, fdp, sfdp, dot, circo")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "prefix tag labels with their category (dot, svg)")
	cmd.Flags().StringVar(&f.title, "title", "", "page title (html)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
	registerRenderCompletions(cmd)
}

// options builds pipeline options, filling unset flags from the config.
func (c *CLI) options(cmd *cobra.Command, f *renderFlags) pipeline.Options {
	opts := pipeline.Options{
		Select:   f.selected,
		Engine:   f.engine,
		Detailed: f.detailed,
		Title:    f.title,
		Refresh:  f.refresh,
	}
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	} else if len(c.Config.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Config.Render.Formats...)
	}
	if opts.Engine == "" {
		opts.Engine = c.Config.Render.Engine
	}
	if !cmd.Flags().Changed("detailed") {
		opts.Detailed = c.Config.Render.Detailed
	}
	return opts
}
