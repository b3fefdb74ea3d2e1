package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// FileSource reads documents from the local filesystem. The encoding comes
// from the extension, with content sniffing as a fallback.
type FileSource struct{}

// Fetch implements Source.
func (FileSource) Fetch(ctx context.Context, path string) (*Raw, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, fmt.Errorf("%w: %v", ErrNotFound, err), "read %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return &Raw{Ref: path, Format: roadmap.DetectFormat(path, data), Data: data}, nil
}
