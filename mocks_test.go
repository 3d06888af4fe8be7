package auth_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-tenant-auth"
)

// testConfig implements auth.Config
type testConfig struct{}

func (testConfig) GetSigningKey() string   { return "test-signing-key" }
func (testConfig) GetTokenExpiration() int { return 24 }
func (testConfig) GetIssuer() string       { return "test-issuer" }
func (testConfig) GetAudience() []string   { return []string{"test-audience"} }
func (testConfig) GetContextKey() string   { return "user" }
func (testConfig) GetTokenLookup() string  { return "header:Authorization" }
func (testConfig) GetAuthScheme() string   { return "" }

// fakeHasher implements auth.PasswordAuthenticator without bcrypt cost,
// keeping lifecycle tests fast.
type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", auth.ErrNoEmptyString
	}
	return "hashed:" + password, nil
}

func (fakeHasher) ComparePasswordAndHash(password, hash string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return auth.ErrMismatchedHashAndPassword
}

// eventRecorder captures activity events emitted by the lifecycle operations.
type eventRecorder struct {
	mu     sync.Mutex
	events []auth.ActivityEvent
}

func (r *eventRecorder) Record(_ context.Context, event auth.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []auth.ActivityEventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]auth.ActivityEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}
