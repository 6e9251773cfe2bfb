package auth

import (
	"context"
	"time"

	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
	"github.com/clauselens/clauselens/backend/go-services/pkg/logger"
	"github.com/clauselens/clauselens/backend/go-services/pkg/metrics"
)

// CredentialStore is the minimal slot interface the auth service needs:
// it only ever writes a freshly minted credential.
type CredentialStore interface {
	Set(ctx context.Context, credential string) error
}

// Result is the structured outcome of an auth operation. Domain failures
// (wrong password, duplicate address) are carried here, never as Go errors;
// a non-nil error from the service means an infrastructure fault.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Email string `json:"-"`
	Token string `json:"-"`
}

// Service simulates the auth backend: fixed validation rules, a fixed
// network delay, and a freshly minted credential written to the store on
// every success. No accounts are persisted anywhere.
type Service struct {
	cfg   *config.Config
	store CredentialStore
	delay time.Duration
}

func NewService(cfg *config.Config, store CredentialStore) *Service {
	return &Service{cfg: cfg, store: store, delay: cfg.Latency.Auth}
}

// Login succeeds only for the configured demo credential pair.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	s.roundTrip("/api/auth/login")
	if email != s.cfg.Demo.DemoEmail || password != s.cfg.Demo.DemoPassword {
		return Result{OK: false, Error: "Invalid credentials"}, nil
	}
	return s.issue(ctx, email)
}

// Register fails only for the configured "already exists" address; every
// other address succeeds unconditionally since nothing is persisted.
func (s *Service) Register(ctx context.Context, email, password string) (Result, error) {
	s.roundTrip("/api/auth/register")
	if email == s.cfg.Demo.ExistingEmail {
		return Result{OK: false, Error: "User already exists"}, nil
	}
	return s.issue(ctx, email)
}

// SocialLogin always succeeds, deriving a synthetic address from the
// provider name.
func (s *Service) SocialLogin(ctx context.Context, provider string) (Result, error) {
	s.roundTrip("/api/auth/social/" + provider)
	return s.issue(ctx, provider+"-user@example.com")
}

// issue mints a 1-hour credential and writes it to the store before
// returning. A store failure is an infrastructure fault, not a domain one.
func (s *Service) issue(ctx context.Context, email string) (Result, error) {
	cred, err := token.Mint(s.cfg.JWT.Secret, email, s.cfg.JWT.TokenTTL)
	if err != nil {
		return Result{}, err
	}
	if err := s.store.Set(ctx, cred); err != nil {
		return Result{}, err
	}
	return Result{OK: true, Email: email, Token: cred}, nil
}

// roundTrip models the mock network delay. It is not cancellable: an
// in-flight call always runs to completion.
func (s *Service) roundTrip(endpoint string) {
	logger.Debugf("[MOCK API] calling %s", endpoint)
	metrics.MockCalls.WithLabelValues("auth").Inc()
	if s.delay > 0 {
		start := time.Now()
		time.Sleep(s.delay)
		metrics.MockLatency.WithLabelValues("auth").Observe(time.Since(start).Seconds())
	}
}
