// Package registry holds the two stores that outlive a pipeline run:
// the identity registry (name -> durable UUID) and the location
// registry (curated table of known provider locations).
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// IdentityRegistry maps a cleaned provider name to a durable opaque
// identifier. Entries are created lazily and never mutated; the file is
// rewritten whole at the end of a run, and only when new entries were
// added.
type IdentityRegistry struct {
	path  string
	ids   map[string]string
	dirty bool
}

// OpenIdentityRegistry loads the persisted name->id mapping. A missing
// or corrupt file is fatal for the run: fabricating identifiers on a
// bad read would break identity stability across runs.
func OpenIdentityRegistry(path string) (*IdentityRegistry, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity registry: %w", err)
	}
	ids := map[string]string{}
	if err := json.Unmarshal(blob, &ids); err != nil {
		return nil, fmt.Errorf("parse identity registry %s: %w", path, err)
	}
	return &IdentityRegistry{path: path, ids: ids}, nil
}

// Resolve returns the identifier for a name, minting a random UUID for
// names seen for the first time. Minting marks the registry dirty.
func (r *IdentityRegistry) Resolve(name string) string {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := uuid.NewString()
	r.ids[name] = id
	r.dirty = true
	return id
}

// Dirty reports whether Resolve minted any identifier since load.
func (r *IdentityRegistry) Dirty() bool {
	return r.dirty
}

// Len returns the number of known identities.
func (r *IdentityRegistry) Len() int {
	return len(r.ids)
}

// Flush persists the full mapping with a whole-file overwrite, but only
// when the registry is dirty. A run that minted nothing leaves the file
// untouched.
func (r *IdentityRegistry) Flush() error {
	if !r.dirty {
		return nil
	}
	blob, err := json.MarshalIndent(r.ids, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, blob, 0o644); err != nil {
		return fmt.Errorf("write identity registry: %w", err)
	}
	r.dirty = false
	return nil
}
