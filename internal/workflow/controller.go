package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/clauselens/clauselens/backend/go-services/internal/contracts"
)

// ErrBusy is returned when a submission or question arrives while a prior
// call is still outstanding. The mock calls cannot be cancelled, so the
// only discipline is refusing overlap up front.
var ErrBusy = errors.New("operation already in progress")

// Phase is the analysis workflow state. Exactly one phase holds at a time;
// the old scattered loading/error booleans are unrepresentable here.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// QAPhase is the question sub-state, only meaningful once a summary is ready.
type QAPhase int

const (
	QAIdle QAPhase = iota
	QAAnswering
	QAAnswered
	QAFailed
)

// State is an immutable snapshot of the workflow.
type State struct {
	Phase   Phase
	Summary *contracts.Summary
	Err     string

	QA       QAPhase
	Question string
	Answer   string
	QAErr    string

	// contextText is what questions are asked against: the submitted text,
	// or a descriptor for file submissions (the file itself is never read).
	contextText string
}

// HasContext reports whether a document context has been established.
func (s State) HasContext() bool { return s.contextText != "" }

// Analyzer is the slice of the document service the controller drives.
type Analyzer interface {
	Summarize(ctx context.Context, in contracts.Input) (*contracts.Summary, error)
	Ask(ctx context.Context, contextText, question string) (string, error)
}

// Controller drives the linear workflow:
//
//	Idle -> Loading -> Ready | Failed
//	Ready: QAIdle -> QAAnswering -> QAAnswered | QAFailed
//
// Reset and logout return to Idle from any state, discarding everything.
type Controller struct {
	svc Analyzer

	mu    sync.Mutex
	state State
}

func NewController(svc Analyzer) *Controller {
	return &Controller{svc: svc}
}

// State returns a snapshot of the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit analyzes raw contract text. Empty or whitespace-only text is
// rejected locally, before any service call or simulated delay.
func (c *Controller) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		c.mu.Lock()
		c.state = State{Phase: PhaseFailed, Err: "Please enter or upload a contract."}
		c.mu.Unlock()
		return nil
	}
	return c.summarize(ctx, contracts.Input{Text: text}, text)
}

// SubmitFile analyzes an uploaded file by opaque reference. The context for
// later questions is a descriptor, not the file content.
func (c *Controller) SubmitFile(ctx context.Context, name string) error {
	return c.summarize(ctx, contracts.Input{FileName: name}, "File content of: "+name)
}

func (c *Controller) summarize(ctx context.Context, in contracts.Input, contextText string) error {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading || c.state.QA == QAAnswering {
		c.mu.Unlock()
		return ErrBusy
	}
	// Entering Loading discards any previous summary, answer and errors.
	c.state = State{Phase: PhaseLoading, contextText: contextText}
	c.mu.Unlock()

	summary, err := c.svc.Summarize(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = State{Phase: PhaseFailed, Err: failureText(err)}
		return nil
	}
	c.state = State{Phase: PhaseReady, Summary: summary, contextText: contextText}
	return nil
}

// AskQuestion runs one QA exchange against the established context. Each new
// question supersedes the previous exchange.
func (c *Controller) AskQuestion(ctx context.Context, question string) error {
	c.mu.Lock()
	if c.state.contextText == "" {
		c.state.QA = QAFailed
		c.state.QAErr = "Contract context is missing. Please analyze a document first."
		c.mu.Unlock()
		return nil
	}
	if c.state.Phase == PhaseLoading || c.state.QA == QAAnswering {
		c.mu.Unlock()
		return ErrBusy
	}
	contextText := c.state.contextText
	c.state.QA = QAAnswering
	c.state.Question = question
	c.state.Answer = ""
	c.state.QAErr = ""
	c.mu.Unlock()

	answer, err := c.svc.Ask(ctx, contextText, question)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.QA = QAFailed
		c.state.QAErr = failureText(err)
		return nil
	}
	c.state.QA = QAAnswered
	c.state.Answer = answer
	return nil
}

// Reset discards the summary, answer, errors and context from any state.
// Also wired as the session controller's logout hook.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{}
}

// failureText maps service faults to user-visible error text.
func failureText(err error) string {
	if errors.Is(err, contracts.ErrNoAuthToken) {
		return "Your session has expired. Please sign in again."
	}
	return err.Error()
}
