package source

import (
	"context"
	"fmt"
)

// Store backend names.
const (
	BackendDir   = "dir"
	BackendMongo = "mongo"
)

// StoreConfig selects and configures a Store.
type StoreConfig struct {
	Backend string       `yaml:"backend"`
	Dir     string       `yaml:"dir"`
	Mongo   MongoOptions `yaml:"mongo"`
}

// OpenStore returns the configured store. An empty backend means dir, and an
// empty dir means the working directory.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", BackendDir:
		dir := cfg.Dir
		if dir == "" {
			dir = "."
		}
		s, err := NewDirStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := NewMongoStore(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
