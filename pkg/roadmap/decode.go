package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/highweigh/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension.
// It returns "" for unknown extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return ""
}

// FormatFromContentType picks the encoding from an HTTP Content-Type.
// It returns "" for unknown media types.
func FormatFromContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "application/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	case "application/toml", "text/toml":
		return FormatTOML
	}
	return ""
}

// DetectFormat picks the encoding from name (a path or URL) and falls back to
// sniffing data: an object literal is JSON, anything else is YAML.
func DetectFormat(name string, data []byte) Format {
	if f := FormatFromPath(strings.SplitN(name, "?", 2)[0]); f != "" {
		return f
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// ReadFile reads and decodes the document at path. The encoding is chosen by
// extension, with content sniffing for unknown extensions.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(data, DetectFormat(path, data))
}

// Read decodes a document from r. It does not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	return Decode(data, format)
}

// Decode decodes and validates a document.
func Decode(data []byte, format Format) (*Document, error) {
	var w WireDocument
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &w)
	case FormatYAML:
		err = yaml.Unmarshal(data, &w)
	case FormatTOML:
		err = toml.Unmarshal(data, &w)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", format)
	}
	return w.document()
}

// FromWire converts a wire document decoded elsewhere, such as a MongoDB
// record, into a validated Document.
func FromWire(w WireDocument) (*Document, error) { return w.document() }

// ToWire converts doc into its wire shape.
func ToWire(doc *Document) WireDocument { return toWire(doc) }

// Encode writes doc in the JSON wire shape. Decode(Encode(doc)) yields an
// equal document.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(toWire(doc), "", "  ")
}

// WireDocument is the on-disk shape shared by every encoding.
type WireDocument struct {
	Title       string        `json:"title" yaml:"title" toml:"title" bson:"title"`
	LastUpdated string        `json:"lastUpdated" yaml:"lastUpdated" toml:"lastUpdated" bson:"lastUpdated"`
	StartMonth  string        `json:"startMonth" yaml:"startMonth" toml:"startMonth" bson:"startMonth"`
	Months      int           `json:"months" yaml:"months" toml:"months" bson:"months"`
	Projects    []wireProject `json:"projects" yaml:"projects" toml:"projects" bson:"projects"`
}

type wireProject struct {
	Name        string            `json:"name" yaml:"name" toml:"name" bson:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" bson:"description,omitempty"`
	RAG         string            `json:"rag,omitempty" yaml:"rag,omitempty" toml:"rag,omitempty" bson:"rag,omitempty"`
	Bars        []wireBar         `json:"bars,omitempty" yaml:"bars,omitempty" toml:"bars,omitempty" bson:"bars,omitempty"`
	Milestones  map[string]string `json:"milestones,omitempty" yaml:"milestones,omitempty" toml:"milestones,omitempty" bson:"milestones,omitempty"`
	Epics       []wireEpic        `json:"epics,omitempty" yaml:"epics,omitempty" toml:"epics,omitempty" bson:"epics,omitempty"`
}

type wireEpic struct {
	Name        string            `json:"name" yaml:"name" toml:"name" bson:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" bson:"description,omitempty"`
	Bars        []wireBar         `json:"bars,omitempty" yaml:"bars,omitempty" toml:"bars,omitempty" bson:"bars,omitempty"`
	Milestones  map[string]string `json:"milestones,omitempty" yaml:"milestones,omitempty" toml:"milestones,omitempty" bson:"milestones,omitempty"`
}

type wireBar struct {
	Type  string `json:"type" yaml:"type" toml:"type" bson:"type"`
	Start string `json:"start" yaml:"start" toml:"start" bson:"start"`
	Stop  string `json:"stop" yaml:"stop" toml:"stop" bson:"stop"`
}

func (w WireDocument) document() (*Document, error) {
	start, err := ParseMonth(w.StartMonth)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "startMonth")
	}
	doc := &Document{
		Title:       w.Title,
		LastUpdated: w.LastUpdated,
		Start:       start,
		Months:      w.Months,
		Projects:    make([]Project, 0, len(w.Projects)),
	}
	for _, wp := range w.Projects {
		row, err := buildRow(wp.Name, wp.Description, wp.Bars, wp.Milestones)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "project %q", wp.Name)
		}
		p := Project{Row: row, RAG: wp.RAG}
		for _, we := range wp.Epics {
			erow, err := buildRow(we.Name, we.Description, we.Bars, we.Milestones)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "project %q epic %q", wp.Name, we.Name)
			}
			p.Epics = append(p.Epics, Epic{Row: erow})
		}
		doc.Projects = append(doc.Projects, p)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func buildRow(name, description string, bars []wireBar, milestones map[string]string) (Row, error) {
	row := Row{Name: name, Description: description}
	for i, wb := range bars {
		start, err := ParseDate(wb.Start)
		if err != nil {
			return Row{}, fmt.Errorf("bar %d start: %w", i, err)
		}
		stop, err := ParseDate(wb.Stop)
		if err != nil {
			return Row{}, fmt.Errorf("bar %d stop: %w", i, err)
		}
		row.Bars = append(row.Bars, Bar{Type: wb.Type, Start: start, Stop: stop})
	}
	for key, typ := range milestones {
		date, err := ParseDate(key)
		if err != nil {
			return Row{}, fmt.Errorf("milestone: %w", err)
		}
		row.Milestones = append(row.Milestones, Milestone{Date: date, Type: typ})
	}
	slices.SortFunc(row.Milestones, func(a, b Milestone) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Type, b.Type)
	})
	return row, nil
}

func toWire(doc *Document) WireDocument {
	w := WireDocument{
		Title:       doc.Title,
		LastUpdated: doc.LastUpdated,
		StartMonth:  doc.Start.String(),
		Months:      doc.Months,
		Projects:    make([]wireProject, 0, len(doc.Projects)),
	}
	for _, p := range doc.Projects {
		wp := wireProject{
			Name:        p.Name,
			Description: p.Description,
			RAG:         p.RAG,
			Bars:        wireBars(p.Bars),
			Milestones:  wireMilestones(p.Milestones),
		}
		for _, e := range p.Epics {
			wp.Epics = append(wp.Epics, wireEpic{
				Name:        e.Name,
				Description: e.Description,
				Bars:        wireBars(e.Bars),
				Milestones:  wireMilestones(e.Milestones),
			})
		}
		w.Projects = append(w.Projects, wp)
	}
	return w
}

func wireBars(bars []Bar) []wireBar {
	if len(bars) == 0 {
		return nil
	}
	out := make([]wireBar, len(bars))
	for i, b := range bars {
		out[i] = wireBar{Type: b.Type, Start: b.Start.String(), Stop: b.Stop.String()}
	}
	return out
}

func wireMilestones(ms []Milestone) map[string]string {
	if len(ms) == 0 {
		return nil
	}
	out := make(map[string]string, len(ms))
	for _, m := range ms {
		out[m.Date.String()] = m.Type
	}
	return out
}
