package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
)

type recordingStore struct {
	creds []string
	fail  error
}

func (r *recordingStore) Set(ctx context.Context, credential string) error {
	if r.fail != nil {
		return r.fail
	}
	r.creds = append(r.creds, credential)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.TokenTTL = time.Hour
	cfg.Demo.DemoEmail = "user@example.com"
	cfg.Demo.DemoPassword = "password123"
	cfg.Demo.ExistingEmail = "exists@example.com"
	return cfg
}

func TestLogin_DemoPairSucceeds(t *testing.T) {
	store := &recordingStore{}
	s := NewService(testConfig(), store)

	res, err := s.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "user@example.com", res.Email)
	require.Len(t, store.creds, 1)
	assert.Equal(t, res.Token, store.creds[0])

	claims, err := token.Decode(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	// 1-hour TTL
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 10*time.Second)
}

func TestLogin_AnyOtherPairFails(t *testing.T) {
	store := &recordingStore{}
	s := NewService(testConfig(), store)

	for _, tc := range [][2]string{
		{"user@example.com", "wrong"},
		{"other@example.com", "password123"},
		{"", ""},
	} {
		res, err := s.Login(context.Background(), tc[0], tc[1])
		require.NoError(t, err)
		assert.False(t, res.OK)
		assert.Equal(t, "Invalid credentials", res.Error)
	}
	assert.Empty(t, store.creds)
}

func TestRegister_ExistingAddressFails(t *testing.T) {
	store := &recordingStore{}
	s := NewService(testConfig(), store)

	res, err := s.Register(context.Background(), "exists@example.com", "whatever1")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "User already exists", res.Error)
	assert.Empty(t, store.creds)
}

func TestRegister_NovelAddressAlwaysSucceeds(t *testing.T) {
	store := &recordingStore{}
	s := NewService(testConfig(), store)

	res, err := s.Register(context.Background(), "fresh@example.com", "secret99")
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "fresh@example.com", res.Email)
	require.Len(t, store.creds, 1)

	// no persistence: registering again still succeeds
	res, err = s.Register(context.Background(), "fresh@example.com", "secret99")
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestSocialLogin_AlwaysSucceeds(t *testing.T) {
	store := &recordingStore{}
	s := NewService(testConfig(), store)

	res, err := s.SocialLogin(context.Background(), "github")
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "github-user@example.com", res.Email)
	require.Len(t, store.creds, 1)
}

func TestIssue_StoreFaultPropagates(t *testing.T) {
	boom := errors.New("disk full")
	s := NewService(testConfig(), &recordingStore{fail: boom})

	_, err := s.Login(context.Background(), "user@example.com", "password123")
	require.ErrorIs(t, err, boom)
}

func TestRoundTrip_SimulatedDelay(t *testing.T) {
	cfg := testConfig()
	cfg.Latency.Auth = 30 * time.Millisecond
	s := NewService(cfg, &recordingStore{})

	start := time.Now()
	_, err := s.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
