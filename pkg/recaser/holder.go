package recaser

import (
	"fmt"
	"log/slog"
	"sync"
)

// Holder serves a loaded model and allows hot reload from its model file.
// A trained model is read-only at inference time, so concurrent Restore
// calls through the holder are safe; the lock only guards the swap.
type Holder struct {
	mu     sync.RWMutex
	model  *Model
	path   string
	logger *slog.Logger
}

// NewHolder loads the model at path.
func NewHolder(path string, logger *slog.Logger) (*Holder, error) {
	m, err := Read(path, logger)
	if err != nil {
		return nil, err
	}
	return &Holder{model: m, path: path, logger: logger}, nil
}

// Model returns the currently served model.
func (h *Holder) Model() *Model {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.model
}

// Reload re-reads the model file and swaps it in. On failure the previous
// model keeps serving.
func (h *Holder) Reload() error {
	m, err := Read(h.path, h.logger)
	if err != nil {
		return fmt.Errorf("reload model: %w", err)
	}
	h.mu.Lock()
	h.model = m
	h.mu.Unlock()
	return nil
}
