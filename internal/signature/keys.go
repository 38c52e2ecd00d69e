package signature

import (
	"fmt"
	"os"
	"sync"
)

// KeyProvider resolves a public key reference to PEM key bytes. Injecting it
// keeps the verifier testable with fixed in-memory keys.
type KeyProvider interface {
	Resolve(keyRef string) ([]byte, error)
}

// FileKeys resolves key references as filesystem paths and caches the bytes;
// key material does not change while the process runs.
type FileKeys struct {
	mu    sync.RWMutex
	cache map[string][]byte
}

// NewFileKeys returns a FileKeys provider with an empty cache.
func NewFileKeys() *FileKeys {
	return &FileKeys{cache: make(map[string][]byte)}
}

// Resolve reads the PEM file at keyRef, caching the result.
func (f *FileKeys) Resolve(keyRef string) ([]byte, error) {
	f.mu.RLock()
	pem, ok := f.cache[keyRef]
	f.mu.RUnlock()
	if ok {
		return pem, nil
	}

	pem, err := os.ReadFile(keyRef)
	if err != nil {
		return nil, fmt.Errorf("read public key %q: %w", keyRef, err)
	}
	f.mu.Lock()
	f.cache[keyRef] = pem
	f.mu.Unlock()
	return pem, nil
}

// StaticKeys is an in-memory KeyProvider for tests and embedded keys.
type StaticKeys map[string][]byte

// Resolve returns the PEM bytes registered under keyRef.
func (s StaticKeys) Resolve(keyRef string) ([]byte, error) {
	pem, ok := s[keyRef]
	if !ok {
		return nil, fmt.Errorf("unknown public key %q", keyRef)
	}
	return pem, nil
}
