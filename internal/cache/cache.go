// Package cache stores audit outcomes keyed by excerpt content, so
// re-auditing an unchanged filing skips the paid reasoning-service call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for outcome caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from excerpt text. Two filings with identical
// relevant sections share an audit result.
func Key(excerptText string) string {
	hash := sha256.Sum256([]byte(excerptText))
	return "sentinel:v1:" + hex.EncodeToString(hash[:])
}
