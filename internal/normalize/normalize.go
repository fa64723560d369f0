// Package normalize shapes persistence documents for the public API:
// legacy key renames, secret-field stripping, and RFC 3339 timestamps,
// applied recursively with an LRU cache over normalized documents.
package normalize

import (
	"encoding/json"
	"fmt"
	"time"
)

// defaultSecretFields are stripped from every normalized document.
var defaultSecretFields = []string{
	"password_hash",
	"api_secret",
	"media_api_key",
	"media_api_secret",
	"unsubscribe_token",
}

// defaultRenames maps legacy document keys (from the Mongo-era import
// path) to their API names.
var defaultRenames = map[string]string{
	"_id": "id",
}

// Normalizer applies the normalization pass.
type Normalizer struct {
	secrets map[string]struct{}
	renames map[string]string
	cache   *Cache
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSecretFields replaces the stripped field set.
func WithSecretFields(fields ...string) Option {
	return func(n *Normalizer) {
		n.secrets = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			n.secrets[f] = struct{}{}
		}
	}
}

// WithRename adds a key rename.
func WithRename(from, to string) Option {
	return func(n *Normalizer) {
		n.renames[from] = to
	}
}

// WithCache attaches an LRU cache for normalized documents.
func WithCache(capacity int) Option {
	return func(n *Normalizer) {
		n.cache = NewCache(capacity)
	}
}

// New creates a Normalizer with the default secret and rename sets.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		secrets: make(map[string]struct{}, len(defaultSecretFields)),
		renames: make(map[string]string, len(defaultRenames)),
	}
	for _, f := range defaultSecretFields {
		n.secrets[f] = struct{}{}
	}
	for from, to := range defaultRenames {
		n.renames[from] = to
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Document normalizes a document map. The input is not mutated.
func (n *Normalizer) Document(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		if _, secret := n.secrets[key]; secret {
			continue
		}
		if renamed, ok := n.renames[key]; ok {
			key = renamed
		}
		out[key] = n.Value(value)
	}
	return out
}

// Value normalizes a single value, recursing through nested maps and
// slices.
func (n *Normalizer) Value(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return n.Document(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = n.Value(item)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = n.Document(item)
		}
		return out
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return value
	}
}

// Record converts a model struct through its JSON form and normalizes
// the result, caching it under kind:id:updatedAt when a cache is
// attached.
func (n *Normalizer) Record(kind, id string, updatedAt time.Time, model interface{}) (map[string]interface{}, error) {
	key := CacheKey(kind, id, updatedAt)
	if n.cache != nil {
		if doc, ok := n.cache.Get(key); ok {
			return doc, nil
		}
	}

	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", kind, err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", kind, err)
	}

	normalized := n.Document(doc)
	if n.cache != nil {
		n.cache.Put(key, normalized)
	}
	return normalized, nil
}

// Model normalizes a struct without touching the cache, for records
// whose JSON form changes more often than their updated_at.
func (n *Normalizer) Model(model interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return n.Document(doc), nil
}

// Invalidate drops all cached versions of a record.
func (n *Normalizer) Invalidate(kind, id string) {
	if n.cache != nil {
		n.cache.InvalidatePrefix(kind + ":" + id + ":")
	}
}

// CacheKey builds the cache key for a record version.
func CacheKey(kind, id string, updatedAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", kind, id, updatedAt.UnixNano())
}
