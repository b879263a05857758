// Package processor is the boundary layer in front of the docai core: it
// normalizes caller input, selects a processor implementation by name, and
// partitions the raw entity array into a Document.
package processor

import (
	"encoding/json"
	"fmt"
	"sort"

	"parsify/internal/docai"
)

// Processor turns one raw extraction output into a Document.
type Processor interface {
	Process(raw json.RawMessage) (*docai.Document, error)
}

// Factory creates a Processor.
type Factory func() Processor

// registry of processor factories, populated by init() in each processor file
// or explicitly via Register.
var processors = map[string]Factory{}

// Register registers a processor factory by name.
func Register(name string, factory Factory) {
	processors[name] = factory
}

// New creates the named processor. Unknown names yield ErrUnknownProcessor.
func New(name string) (Processor, error) {
	factory, ok := processors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcessor, name)
	}
	return factory(), nil
}

// Names returns the registered processor names, sorted.
func Names() []string {
	names := make([]string, 0, len(processors))
	for name := range processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
