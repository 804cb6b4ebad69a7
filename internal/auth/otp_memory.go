package auth

import (
	"context"
	"sync"
	"time"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

type otpRecord struct {
	code      string
	flow      Flow
	expiresAt time.Time
}

// MemoryOTPStore keeps pending codes in process memory. State is lost on
// restart and not shared between instances; production wiring prefers the
// Redis store when a Redis URL is configured.
type MemoryOTPStore struct {
	mu      sync.Mutex
	records map[string]otpRecord
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryOTPStore(ttl time.Duration) *MemoryOTPStore {
	return &MemoryOTPStore{
		records: make(map[string]otpRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a fresh code and overwrites any pending record for the
// email. The previously issued code becomes invalid immediately, even if it
// had not expired: concurrent issues race and last write wins.
func (s *MemoryOTPStore) Issue(_ context.Context, email string, flow Flow) (string, error) {
	code, err := GenerateOTP()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = otpRecord{
		code:      code,
		flow:      flow,
		expiresAt: s.now().Add(s.ttl),
	}
	return code, nil
}

func (s *MemoryOTPStore) Verify(_ context.Context, email, code string, flow Flow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[email]
	if !ok {
		return false, nil
	}
	if record.expiresAt.Before(s.now()) {
		// lazy eviction
		delete(s.records, email)
		return false, nil
	}
	if record.code != code || record.flow != flow {
		return false, nil
	}

	// single use
	delete(s.records, email)
	return true, nil
}

type resetTokenRecord struct {
	email     string
	expiresAt time.Time
}

// MemoryResetTokenStore is the in-process counterpart of the Redis
// reset-token store, with the same single-use redeem semantics.
type MemoryResetTokenStore struct {
	mu      sync.Mutex
	records map[string]resetTokenRecord
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryResetTokenStore(ttl time.Duration) *MemoryResetTokenStore {
	return &MemoryResetTokenStore{
		records: make(map[string]resetTokenRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryResetTokenStore) Create(_ context.Context, email string) (string, error) {
	token, err := GenerateRandomToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[token] = resetTokenRecord{
		email:     email,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryResetTokenStore) Redeem(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[token]
	if !ok {
		return "", internal.ErrInvalidResetToken
	}
	delete(s.records, token)
	if record.expiresAt.Before(s.now()) {
		return "", internal.ErrInvalidResetToken
	}
	return record.email, nil
}
