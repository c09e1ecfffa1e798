package store

import "context"

// Persister is the external key-value collaborator that keeps named state
// keys alive across sessions. Load reports whether the key existed.
type Persister interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
