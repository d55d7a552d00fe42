package session

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/mmcdole/soap4/internal/domain"
)

// Persisted keys
const (
	keyToken   = "token"
	keyExpires = "token-expires"
)

// expiries at or above this are already in milliseconds
const millisThreshold = 1_000_000_000_000

// Store persists the session token and expires it lazily on read
type Store struct {
	kv     domain.KeyValue
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a session store over kv
func NewStore(kv domain.KeyValue, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger, now: time.Now}
}

// Get returns the persisted session if it has not expired.
// An expired or unreadable session is deleted before returning absent.
func (s *Store) Get() (domain.Session, bool) {
	token, ok := s.kv.Get(keyToken)
	if !ok || token == "" {
		// drop whatever half of the pair is left behind
		if _, orphan := s.kv.Get(keyExpires); orphan || ok {
			s.logger.Warn("discarding session without token")
			s.Clear()
		}
		return domain.Session{}, false
	}

	raw, ok := s.kv.Get(keyExpires)
	if !ok {
		s.Clear()
		return domain.Session{}, false
	}
	expires, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("discarding session with malformed expiry", "error", err)
		s.Clear()
		return domain.Session{}, false
	}

	sess := domain.Session{Token: token, ExpiresAtMillis: expires}
	if !sess.Valid(s.now()) {
		s.logger.Info("session expired", "expiresAt", expires)
		s.Clear()
		return domain.Session{}, false
	}
	return sess, true
}

// Set persists a session. expiresAt is in epoch seconds.
// Write failures are logged and dropped.
func (s *Store) Set(token string, expiresAt int64) {
	millis := expiresAt
	if millis < millisThreshold {
		millis = expiresAt * 1000
	}
	if err := s.kv.Set(keyToken, token); err != nil {
		s.logger.Warn("failed to persist session token", "error", err)
		return
	}
	if err := s.kv.Set(keyExpires, strconv.FormatInt(millis, 10)); err != nil {
		s.logger.Warn("failed to persist session expiry", "error", err)
	}
}

// Clear deletes the persisted session. Safe to call repeatedly.
func (s *Store) Clear() {
	if err := s.kv.Delete(keyToken); err != nil {
		s.logger.Warn("failed to delete session token", "error", err)
	}
	if err := s.kv.Delete(keyExpires); err != nil {
		s.logger.Warn("failed to delete session expiry", "error", err)
	}
}

// Token returns the current token, or "" when there is no valid session
func (s *Store) Token() string {
	sess, ok := s.Get()
	if !ok {
		return ""
	}
	return sess.Token
}
