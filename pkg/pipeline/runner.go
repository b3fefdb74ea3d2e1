package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highweigh/pkg/cache"
	"github.com/matzehuels/highweigh/pkg/observability"
	"github.com/matzehuels/highweigh/pkg/roadmap"
	"github.com/matzehuels/highweigh/pkg/source"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means cache.DefaultKeyer and a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads, decodes and renders one document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	loadStart := time.Now()
	raw, docHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	doc, err := raw.Decode()
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.DocHash = cache.Hash(raw.Data)
	result.Stats.Bytes = len(raw.Data)
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.DocumentHit = docHit

	projects, epics, bars, milestones := doc.Counts()
	r.Logger.Info("loaded roadmap",
		"ref", opts.name(),
		"projects", projects,
		"epics", epics,
		"bars", bars,
		"milestones", milestones,
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	if err := r.render(ctx, doc, result, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered roadmap",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// LoadWithCacheInfo fetches the raw document and reports whether it came
// from the cache. Only URL documents are cached; files and stores are read
// directly.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*source.Raw, bool, error) {
	if len(opts.Data) > 0 {
		return &source.Raw{Ref: opts.name(), Format: opts.DataFormat, Data: opts.Data}, false, nil
	}

	hooks := observability.Pipeline()
	cacheable := opts.Source == nil && source.IsURL(opts.Ref)
	key := r.Keyer.DocumentKey(opts.Ref)

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var raw source.Raw
			if json.Unmarshal(data, &raw) == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return &raw, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	hooks.OnLoadStart(ctx, opts.Ref)
	start := time.Now()
	raw, err := r.fetch(ctx, opts)
	size := 0
	if raw != nil {
		size = len(raw.Data)
	}
	hooks.OnLoadComplete(ctx, opts.Ref, size, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		data, _ := json.Marshal(raw)
		if err := r.Cache.Set(ctx, key, data, TTLDocument); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "document", len(data))
		}
	}
	return raw, false, nil
}

// Load is LoadWithCacheInfo without the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*source.Raw, error) {
	raw, _, err := r.LoadWithCacheInfo(ctx, opts)
	return raw, err
}

func (r *Runner) fetch(ctx context.Context, opts Options) (*source.Raw, error) {
	if opts.Source != nil {
		return opts.Source.Fetch(ctx, opts.Ref)
	}
	return source.Fetch(ctx, opts.Ref)
}

// render fills the scene and artifacts of result, serving from the cache
// when every requested format is there.
func (r *Runner) render(ctx context.Context, doc *roadmap.Document, result *Result, opts Options) error {
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(result.DocHash, opts.ArtifactKeyOpts(format))
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, keys); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			return nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.name(), opts.Formats)
	start := time.Now()

	s, err := RenderScene(doc, opts)
	var artifacts map[string][]byte
	if err == nil {
		artifacts, err = Serialize(ctx, s, opts)
	}
	hooks.OnRenderComplete(ctx, opts.name(), opts.Formats, time.Since(start), err)
	if err != nil {
		return err
	}

	if s.Stats.BarsSkipped > 0 || s.Stats.MilestonesSkipped > 0 {
		r.Logger.Info("skipped elements outside the chart window",
			"bars", s.Stats.BarsSkipped,
			"milestones", s.Stats.MilestonesSkipped)
	}

	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	result.Scene = s
	result.Stats.Scene = s.Stats
	result.Artifacts = artifacts
	return nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
