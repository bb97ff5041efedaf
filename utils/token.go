package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenTTL bounds how long a refresh token can sit unused.
const RefreshTokenTTL = 7 * 24 * time.Hour

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
	cleanupOnce       sync.Once
)

// BlacklistToken invalidates an access token until it would have expired
// on its own anyway.
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(AccessTokenTTL)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	expiry, exists := blacklistedTokens[token]
	blacklistMutex.RUnlock()

	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}

	blacklistMutex.Lock()
	delete(blacklistedTokens, token)
	blacklistMutex.Unlock()
	return false
}

// StartBlacklistCleanup sweeps expired entries periodically.
func StartBlacklistCleanup() {
	cleanupOnce.Do(func() {
		go func() {
			for {
				time.Sleep(1 * time.Hour)
				blacklistMutex.Lock()
				now := time.Now()
				for token, expiry := range blacklistedTokens {
					if now.After(expiry) {
						delete(blacklistedTokens, token)
					}
				}
				blacklistMutex.Unlock()
			}
		}()
	})
}

// NewRefreshToken returns a fresh opaque token value and its storage hash.
func NewRefreshToken() (raw string, hash string) {
	raw = uuid.NewString()
	return raw, HashRefreshToken(raw)
}

// HashRefreshToken is what gets persisted; the raw value never touches the DB.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
