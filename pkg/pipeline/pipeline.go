// Package pipeline runs the load -> render -> serialize pipeline shared by
// the CLI and the HTTP service.
//
// The pipeline has two stages:
//
//  1. Load: fetch the document from a file, URL or store, or take it inline
//     from the request, then decode and validate it
//  2. Render: lay out the scene and serialize it in every requested format
//     (SVG, JSON, PNG, PDF)
//
// A [Runner] adds caching around both stages. Documents fetched from a URL are
// cached for [TTLDocument]; artifacts are cached by a hash of the document
// bytes and every option that changes the output, including the today
// marker's date.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Ref:     "roadmap.yaml",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highweigh/pkg/cache"
	"github.com/matzehuels/highweigh/pkg/core/scene"
	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
	"github.com/matzehuels/highweigh/pkg/source"
)

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// TTLDocument is how long a document fetched from a URL is reused.
	TTLDocument = 5 * time.Minute

	// TTLArtifact is how long a rendered artifact is kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to their media types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures one pipeline run.
type Options struct {
	// Ref is a path, URL or store name. It is ignored when Data is set.
	Ref string `json:"ref,omitempty"`
	// Data is an inline document, e.g. a request body, encoded as DataFormat.
	Data       []byte         `json:"-"`
	DataFormat roadmap.Format `json:"-"`

	Formats []string `json:"formats,omitempty"`
	// Today places the today marker. Defaults to the current local date.
	Today *roadmap.CalendarDate `json:"today,omitempty"`
	// Stylesheet replaces the embedded CSS in SVG output.
	Stylesheet string  `json:"stylesheet,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Source source.Source `json:"-"` // defaults to source.Fetch

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *roadmap.Document
	// DocHash is the SHA-256 of the document bytes.
	DocHash string
	// Scene is nil when every artifact came from the cache.
	Scene     *scene.Scene
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Bytes      int
	LoadTime   time.Duration
	RenderTime time.Duration
	Scene      scene.Stats
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	DocumentHit bool
	RenderHit   bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Today == nil {
		today := roadmap.FromTime(time.Now())
		o.Today = &today
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without changing them.
func (o *Options) Validate() error {
	if o.Ref == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "a document reference or inline document is required")
	}
	if len(o.Data) > 0 && o.DataFormat == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "inline document needs a format")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Today != nil {
		if err := o.Today.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDate, err, "today")
		}
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults then validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if o.Today != nil {
		k.Today = o.Today.String()
	}
	if o.Stylesheet != "" {
		k.Stylesheet = cache.Hash([]byte(o.Stylesheet))
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// name identifies the document in logs and hooks.
func (o *Options) name() string {
	if len(o.Data) > 0 {
		return fmt.Sprintf("inline (%d bytes)", len(o.Data))
	}
	return o.Ref
}
