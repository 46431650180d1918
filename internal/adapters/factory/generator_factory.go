package factory

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hailam/randfiles/internal/ports"
)

var (
	registryMu        sync.RWMutex
	generatorRegistry = make(map[ports.FileType]ports.FileGenerator)
)

// RegisterGenerator makes g available for t. Adapters call it from init.
// A later registration for the same type replaces the earlier one.
func RegisterGenerator(t ports.FileType, g ports.FileGenerator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := generatorRegistry[t]; dup {
		zap.L().Warn("duplicate generator registration", zap.String("type", string(t)))
	}
	generatorRegistry[t] = g
}

// RegisteredTypes returns every registered type in no particular order.
func RegisteredTypes() []ports.FileType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]ports.FileType, 0, len(generatorRegistry))
	for t := range generatorRegistry {
		types = append(types, t)
	}
	return types
}

// DynamicGeneratorFactory resolves generators from the package registry at
// lookup time, so registrations made after construction are visible.
type DynamicGeneratorFactory struct{}

// NewGeneratorFactory returns a factory backed by the registry.
func NewGeneratorFactory() ports.GeneratorFactory {
	return &DynamicGeneratorFactory{}
}

// For returns the FileGenerator registered for t.
func (f *DynamicGeneratorFactory) For(t ports.FileType) (ports.FileGenerator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	gen, ok := generatorRegistry[t]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: '%s'", t)
	}
	return gen, nil
}

// Supported returns the registered types sorted by name.
func (f *DynamicGeneratorFactory) Supported() []ports.FileType {
	types := RegisteredTypes()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
