package cli

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/highweigh/pkg/buildinfo"
	"github.com/matzehuels/highweigh/pkg/cache"
	"github.com/matzehuels/highweigh/pkg/observability"
	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "highweigh"

	// defaultBaseName names the output when the input has no usable file name.
	defaultBaseName = "roadmap"
)

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
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Highweigh renders roadmaps as month-grid Gantt charts",
		Long:         `Highweigh turns a roadmap document (projects, epics, bars and milestones in JSON, YAML or TOML) into a Gantt chart with one column per month, as SVG, PNG, PDF or a JSON scene.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/highweigh/config.yaml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.projectsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.Config.Cache
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache ready", "backend", backendName(cfg.Backend, cache.BackendFile))
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// openStore opens the configured roadmap store.
func (c *CLI) openStore(ctx context.Context) (source.Store, error) {
	store, err := source.OpenStore(ctx, c.Config.Store)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("store ready", "backend", backendName(c.Config.Store.Backend, source.BackendDir))
	return store, nil
}

func backendName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice. An empty
// string falls back to the configured formats.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		if len(fallback) == 0 {
			return []string{pipeline.FormatSVG}
		}
		return fallback
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// baseName derives an output name from a path or URL, without extension.
func baseName(input string) string {
	name := input
	if source.IsURL(input) {
		u, err := url.Parse(input)
		if err != nil {
			return defaultBaseName
		}
		name = path.Base(u.Path)
	} else {
		name = filepath.Base(input)
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return defaultBaseName
	}
	return name
}

// outputPaths maps each format to the file it is written to.
//
// With a single format an explicit output is used as is. With several
// formats the output (minus a known format extension) is a base path and
// every file gets its format as extension. Without an output the files are
// named after the input, in the working directory.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = baseName(input)
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
