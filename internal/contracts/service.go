package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/clauselens/clauselens/backend/go-services/internal/token"
	"github.com/clauselens/clauselens/backend/go-services/pkg/logger"
	"github.com/clauselens/clauselens/backend/go-services/pkg/metrics"
)

var (
	// ErrNoAuthToken is the authorization fault: no valid credential exists.
	// Distinct from any domain-level failure so callers can map it to a
	// "please sign in again" message.
	ErrNoAuthToken = errors.New("authentication token not found")
	// ErrNoEndpoint is the fault for requests the mock has no mapping for.
	ErrNoEndpoint = errors.New("no mock endpoint configured")
)

// Summary is the three-part analysis result. Immutable once returned.
type Summary struct {
	KeyTerms       []string `json:"keyTerms"`
	PotentialRisks []string `json:"potentialRisks"`
	Obligations    []string `json:"obligations"`
}

// Input is either raw contract text or an opaque file reference. When a file
// reference is given the service never reads the file: the returned summary
// is the fixed placeholder, not derived from content.
type Input struct {
	Text     string
	FileName string
}

// IsFile reports whether the input is a file reference.
func (in Input) IsFile() bool { return in.FileName != "" }

// TokenSource yields the current credential; any failure means no usable
// credential exists. session.Store satisfies this.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// Service simulates the contract-analysis backend. Every operation requires
// a valid credential and suspends for a fixed delay before resolving with a
// hard-coded payload.
type Service struct {
	tokens TokenSource
	delay  time.Duration
}

func NewService(tokens TokenSource, delay time.Duration) *Service {
	return &Service{tokens: tokens, delay: delay}
}

// Summarize returns the fixed mock ContractSummary for either text or a
// file reference.
func (s *Service) Summarize(ctx context.Context, in Input) (*Summary, error) {
	if err := s.roundTrip(ctx, "/api/contracts/summarize"); err != nil {
		return nil, err
	}
	return &Summary{
		KeyTerms:       []string{"Mock: Termination Clause", "Mock: Confidentiality Agreement"},
		PotentialRisks: []string{"Mock: Unlimited Liability", "Mock: Automatic Renewal"},
		Obligations:    []string{"Mock: Monthly Reporting", "Mock: Non-compete for 2 years"},
	}, nil
}

// Ask answers a free-form question against the given contract context with
// the fixed mock answer.
func (s *Service) Ask(ctx context.Context, contextText, question string) (string, error) {
	if err := s.roundTrip(ctx, "/api/contracts/ask"); err != nil {
		return "", err
	}
	return "Mock Answer: Based on the document, the governing law is specified in Section 8.2 as the State of California.", nil
}

// roundTrip models the mock fetch wrapper: simulate latency, then require a
// live credential. The delay is not cancellable.
func (s *Service) roundTrip(ctx context.Context, endpoint string) error {
	logger.Debugf("[MOCK API] fetching %s", endpoint)
	metrics.MockCalls.WithLabelValues("contracts").Inc()
	if s.delay > 0 {
		start := time.Now()
		time.Sleep(s.delay)
		metrics.MockLatency.WithLabelValues("contracts").Observe(time.Since(start).Seconds())
	}
	cred, err := s.tokens.Get(ctx)
	if err != nil {
		return ErrNoAuthToken
	}
	claims, err := token.Decode(cred)
	if err != nil || !claims.Valid(time.Now()) {
		return ErrNoAuthToken
	}
	return nil
}
