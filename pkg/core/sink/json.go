package sink

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/highweigh/pkg/core/scene"
)

type sceneJSON struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	ChartHeight float64     `json:"chart_height"`
	Stats       scene.Stats `json:"stats"`
	Root        *scene.Node `json:"root"`
}

// WriteJSON encodes s as indented JSON and writes it to w.
func WriteJSON(s *scene.Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sceneJSON{
		Width:       s.Width,
		Height:      s.Height,
		ChartHeight: s.ChartHeight,
		Stats:       s.Stats,
		Root:        s.Root,
	})
}

// RenderJSON returns the JSON export of s.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
