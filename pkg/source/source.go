// Package source acquires roadmap documents.
//
// A reference passed on the command line is either a local path or an
// http(s) URL; [Fetch] dispatches to [FileSource] or [HTTPSource]. Named
// documents served by the HTTP service come from a [Store]: a directory of
// files ([DirStore]) or a MongoDB collection ([MongoStore]).
//
// Sources return the raw bytes and their encoding rather than a decoded
// document, so callers can hash the input for caching before decoding it.
package source

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// ErrNotFound is wrapped by every error reporting a missing document.
var ErrNotFound = stderrors.New("document not found")

// Raw is an undecoded document.
type Raw struct {
	Ref    string         // path, URL or store name it was loaded from
	Format roadmap.Format // encoding of Data
	Data   []byte
}

// Decode decodes and validates the document.
func (r *Raw) Decode() (*roadmap.Document, error) {
	return roadmap.Decode(r.Data, r.Format)
}

// Source loads a document by reference.
type Source interface {
	Fetch(ctx context.Context, ref string) (*Raw, error)
}

// Store serves named documents.
type Store interface {
	Source
	// List returns the names of all stored documents, sorted.
	List(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

// Writer stores documents by name.
type Writer interface {
	Put(ctx context.Context, name string, doc *roadmap.Document) error
}

// IsURL reports whether ref is an http or https URL.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch loads ref from the web when it is a URL and from disk otherwise.
func Fetch(ctx context.Context, ref string) (*Raw, error) {
	if IsURL(ref) {
		return NewHTTPSource(nil).Fetch(ctx, ref)
	}
	return FileSource{}.Fetch(ctx, ref)
}
