package compile

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// streamPublisher writes documents to a writer, one JSON document per category.
type streamPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

func newStreamPublisher(w io.Writer) *streamPublisher {
	return &streamPublisher{w: w}
}

// Save writes the indented document to the underlying writer.
func (p *streamPublisher) Save(_ context.Context, category flow.Category, doc *flow.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err = p.w.Write(data); err != nil {
		return fmt.Errorf("write %s document: %w", category, err)
	}

	return nil
}
