package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level, errors at warn.
// It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("events")}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLoadStart(_ context.Context, ref string) {
	h.logger.Debug("load start", "ref", ref)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, ref string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "ref", ref, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load done", "ref", ref, "bytes", size, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, ref string, formats []string) {
	h.logger.Debug("render start", "ref", ref, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, ref string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "ref", ref, "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "ref", ref, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
