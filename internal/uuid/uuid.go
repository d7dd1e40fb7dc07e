// Package uuid hides identifier generation behind an interface so callers
// can swap in deterministic IDs for testing.
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating unique identifier strings
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator issues prefix-1, prefix-2, ... so tests see stable IDs.
type SequentialGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequentialGenerator creates a SequentialGenerator with the given prefix
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New generates the next identifier in the sequence
func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
