package ml

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrModelNotReady reports that no trained model is available. It is a
// normal negative result for callers, not a failure.
var ErrModelNotReady = errors.New("model not ready")

// Cache holds the process-lifetime trained model behind a compute-once
// barrier. The first caller triggers training; concurrent callers block
// until it finishes and then share the same state. The model is written
// exactly once and only read afterwards.
type Cache struct {
	once  sync.Once
	train func() (*Model, error)
	model *Model
	err   error
}

// NewCache wraps a training function for lazy, single-flight execution.
func NewCache(train func() (*Model, error)) *Cache {
	return &Cache{train: train}
}

// Get returns the cached model, training on first use. A failed run is
// cached too: every subsequent caller sees the same ErrModelNotReady.
func (c *Cache) Get() (*Model, error) {
	c.once.Do(func() {
		model, err := c.train()
		if err != nil {
			log.Printf("model training failed: %v", err)
			c.err = fmt.Errorf("%w: %v", ErrModelNotReady, err)
			return
		}
		c.model = model
	})
	if c.err != nil {
		return nil, c.err
	}
	return c.model, nil
}
