package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/delivery-flow/internal/config"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// Repository defines persistence operations for compiled documents.
type Repository interface {
	Save(ctx context.Context, category flow.Category, doc *flow.Document) error
	Load(ctx context.Context, category flow.Category) (*flow.Document, error)
}

// FileRepository stores documents as <dir>/<Category>.json.
type FileRepository struct {
	// dir is the output directory.
	dir string
	// mu serializes writes from concurrent category compilations.
	mu sync.Mutex
}

// ErrNotFound is returned when no document was written for the category.
var ErrNotFound = errors.New("document not found")

// NewFileRepository creates a repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		dir: filepath.Clean(dir),
	}
}

// Path returns the file path of the category document.
func (r *FileRepository) Path(category flow.Category) string {
	return filepath.Join(r.dir, string(category)+".json")
}

// Save writes the document, creating the directory when needed.
func (r *FileRepository) Save(_ context.Context, category flow.Category, doc *flow.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(r.dir, config.DefaultDirPermissions); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err = os.WriteFile(r.Path(category), data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write %s document: %w", category, err)
	}

	return nil
}

// Load reads a previously written document.
func (r *FileRepository) Load(_ context.Context, category flow.Category) (*flow.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.Path(category))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read %s document: %w", category, err)
	}

	var doc flow.Document
	if err = json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", category, err)
	}

	return &doc, nil
}
