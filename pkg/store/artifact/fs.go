package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// FS persists artifacts as plain files under root/<report id>/<name>.
// Keying by report id means concurrent report generations never overwrite
// each other's files, and the rendering collaborator can resolve any
// artifact from its report id and name alone.
type FS struct {
	root string
}

func NewFS(root string) *FS {
	return &FS{root: root}
}

func (f *FS) Root() string { return f.root }

// Put stores one artifact and returns its reference. Failures come back
// wrapped in an ArtifactError so callers can tell storage trouble apart
// from analysis errors.
func (f *FS) Put(_ context.Context, reportID, name string, data []byte) (domain.ArtifactRef, error) {
	dir := filepath.Join(f.root, reportID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.ArtifactRef{}, &domain.ArtifactError{Kind: name, Err: fmt.Errorf("create artifact dir: %w", err)}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.ArtifactRef{}, &domain.ArtifactError{Kind: name, Err: fmt.Errorf("write artifact: %w", err)}
	}

	return domain.ArtifactRef{
		ID:   reportID + "/" + name,
		Kind: strings.TrimSuffix(name, filepath.Ext(name)),
		URI:  path,
	}, nil
}

// Open streams a previously stored artifact.
func (f *FS) Open(reportID, name string) (io.ReadCloser, error) {
	// Resolve strictly inside the report directory.
	path := filepath.Join(f.root, filepath.Base(reportID), filepath.Base(name))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s/%s: %w", reportID, name, err)
	}
	return file, nil
}
