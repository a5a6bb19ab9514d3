package mocks

import (
	"fmt"

	"github.com/mathduel/mathduel/internal/dependencies/ident"
)

// MockIdent is a mock implementation of Ident for testing
type MockIdent struct {
	// IDs is a queue of identifiers to return from NewID
	IDs []string
	idx int

	// counter backs the fallback sequence when the queue is exhausted
	counter int
}

// Ensure MockIdent implements Ident
var _ ident.Ident = (*MockIdent)(nil)

// NewMockIdent creates a new MockIdent
func NewMockIdent() *MockIdent {
	return &MockIdent{}
}

// NewID returns the next queued identifier, or a deterministic
// "id-<n>" sequence once the queue is exhausted
func (i *MockIdent) NewID() string {
	if i.idx < len(i.IDs) {
		id := i.IDs[i.idx]
		i.idx++
		return id
	}
	i.counter++
	return fmt.Sprintf("id-%d", i.counter)
}

// QueueID adds identifiers to the queue
func (i *MockIdent) QueueID(ids ...string) {
	i.IDs = append(i.IDs, ids...)
}
