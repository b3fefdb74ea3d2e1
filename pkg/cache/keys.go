package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey identifies a fetched source document (a path, URL or store
	// name).
	DocumentKey(source string) string
	// ArtifactKey identifies one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes
// besides the document itself.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Today      string  `json:"today"`
	Stylesheet string  `json:"stylesheet,omitempty"` // hash of a custom stylesheet
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "doc:<source>".
func (DefaultKeyer) DocumentKey(source string) string {
	return fmt.Sprintf("doc:%s", source)
}

// ArtifactKey returns "artifact:<hash>" over the document hash and options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(struct {
		Doc string `json:"doc"`
		ArtifactKeyOpts
	}{docHash, opts})
	return "artifact:" + Hash(data)
}

// Hash is the hex SHA-256 of data. Document hashes and file cache names use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var _ Keyer = DefaultKeyer{}
