package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for capability-response caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key for a capability query.
// kind separates the capability families ("websearch", "retrieval",
// "article") so identical queries never collide across backends.
func Key(kind, query string) string {
	hash := sha256.Sum256([]byte(query))
	return "veridict:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
