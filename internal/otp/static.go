package otp

import (
	"context"
	"sync"
	"time"
)

// StaticVerifier accepts one fixed code, but only for a subject with a
// pending challenge from Issue. It backs the demo login where no code is
// actually delivered. A challenge expires after ttl and is consumed once
// accepted.
type StaticVerifier struct {
	code string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	pending map[string]time.Time
}

func NewStaticVerifier(code string, ttl time.Duration) *StaticVerifier {
	return &StaticVerifier{
		code:    code,
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

func (v *StaticVerifier) Issue(_ context.Context, subject string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending[subject] = v.now().Add(v.ttl)
	return v.code, nil
}

func (v *StaticVerifier) Verify(_ context.Context, subject, code string) (Verdict, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	expires, ok := v.pending[subject]
	if !ok {
		return Rejected, nil
	}
	if !v.now().Before(expires) {
		delete(v.pending, subject)
		return Rejected, nil
	}
	if !equal(code, v.code) {
		return Rejected, nil
	}
	delete(v.pending, subject)
	return Accepted, nil
}
