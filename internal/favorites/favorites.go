package favorites

import (
	"context"
	"fmt"
)

// StorageKey is the slot holding the serialized favorites.
const StorageKey = "favorisPrenoms"

// KV is the key-value collaborator favorites are persisted in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Favorites is the session's favorite set backed by a KV slot.
type Favorites struct {
	kv      KV
	set     Set
	corrupt error
}

// Load reads the slot once. A missing slot yields an empty set; malformed
// content also yields an empty set and is reported by Corrupt, never as an
// error. Only a failing KV read is returned.
func Load(ctx context.Context, kv KV) (*Favorites, error) {
	f := &Favorites{kv: kv}
	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		return f, fmt.Errorf("failed to read favorites: %w", err)
	}
	if !ok {
		return f, nil
	}
	set, err := Decode(raw)
	if err != nil {
		f.corrupt = err
		return f, nil
	}
	f.set = set
	return f, nil
}

// Corrupt returns the decode error of the persisted slot, if it was ignored.
func (f *Favorites) Corrupt() error {
	return f.corrupt
}

// Toggle flips name and rewrites the whole slot. The in-memory set changes
// even when the write fails.
func (f *Favorites) Toggle(ctx context.Context, name string) error {
	f.set = f.set.Toggle(name)
	raw, err := Encode(f.set)
	if err != nil {
		return err
	}
	if err := f.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	f.corrupt = nil
	return nil
}

// IsFavorite reports whether name is a favorite.
func (f *Favorites) IsFavorite(name string) bool {
	return f.set.Contains(name)
}

// Names returns favorites in insertion order.
func (f *Favorites) Names() []string {
	return f.set.Names()
}

// Current returns the current set.
func (f *Favorites) Current() Set {
	return f.set
}
