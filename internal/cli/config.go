package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/highweigh/pkg/cache"
	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/source"
)

// Config is the contents of the config file.
//
//	render:
//	  formats: [svg, png]
//	  stylesheet: ./roadmap.css
//	  scale: 2
//	cache:
//	  backend: redis          # file (default), redis or none
//	  redis:
//	    addr: localhost:6379
//	store:
//	  backend: mongo          # dir (default) or mongo
//	  mongo:
//	    uri: mongodb://localhost:27017
//	    database: highweigh
//	    collection: roadmaps
//	server:
//	  addr: :8080
type Config struct {
	Render RenderConfig       `yaml:"render"`
	Cache  cache.Config       `yaml:"cache"`
	Store  source.StoreConfig `yaml:"store"`
	Server ServerConfig       `yaml:"server"`
}

// RenderConfig holds defaults for the render command and the server.
type RenderConfig struct {
	Formats []string `yaml:"formats"`
	// Stylesheet is the path of a CSS file replacing the embedded one.
	Stylesheet string  `yaml:"stylesheet"`
	Scale      float64 `yaml:"scale"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Cache: cache.Config{
			Backend: cache.BackendFile,
			Redis:   cache.RedisOptions{Addr: "localhost:6379", Prefix: appName + ":"},
		},
		Store: source.StoreConfig{
			Backend: source.BackendDir,
			Dir:     ".",
			Mongo: source.MongoOptions{
				URI:        "mongodb://localhost:27017",
				Database:   appName,
				Collection: "roadmaps",
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// loadConfig reads the config file at path over the defaults. With an empty
// path the default location is used, and a missing file there is not an
// error. A path given explicitly must exist.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
