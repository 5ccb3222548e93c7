package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/madhavasok/chatai/pkg/models"
)

// State is the orchestrator's externally visible submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result reports a successful submission. CreatedSession tells the caller a
// fresh session was minted; navigating to it is the caller's job.
type Result struct {
	SessionID      string
	Message        models.Message
	CreatedSession bool
}

// Orchestrator sequences one prompt submission across the session
// directory, the answering service and the message timeline. Only one
// submission may be in flight per instance; concurrent Submit calls are
// rejected, which keeps persisted exchanges in FIFO submission order and
// prevents duplicate session creation.
type Orchestrator struct {
	directory *Directory
	timeline  *Timeline
	asker     Asker
	observer  func(State)

	mu    sync.Mutex
	state State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStateObserver registers a callback invoked on every state transition.
// The callback runs synchronously under the state lock; keep it cheap.
func WithStateObserver(fn func(State)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// NewOrchestrator wires the orchestrator to its collaborators.
func NewOrchestrator(directory *Directory, timeline *Timeline, asker Asker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		directory: directory,
		timeline:  timeline,
		asker:     asker,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current submission state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit turns a raw prompt into a persisted, displayed exchange. An empty
// sessionID means "no active session": a session is created first, and its
// creation is acknowledged by the store strictly before the answering
// service is invoked, preserving the message-to-session reference.
//
// On AskFailed a newly created session is left behind as an empty session;
// there is no compensating delete. On PersistFailed the answer is lost and
// retry is the user's resubmission. Returns ErrBusy while another
// submission is in flight.
func (o *Orchestrator) Submit(ctx context.Context, prompt, sessionID string) (Result, error) {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return Result{}, ErrBusy
	}
	o.setStateLocked(StateSubmitting)
	o.mu.Unlock()

	createdSession := false
	if sessionID == "" {
		session, err := o.directory.Create(ctx, DefaultSessionTitle)
		if err != nil {
			o.setState(StateFailed)
			return Result{}, err
		}
		sessionID = session.ID
		createdSession = true
	}

	answer, err := o.asker.Ask(ctx, prompt)
	if err != nil {
		o.setState(StateFailed)
		return Result{}, fmt.Errorf("%w: %v", ErrAskFailed, err)
	}

	message, err := o.timeline.RecordExchange(ctx, sessionID, prompt, answer.Answer, answer.Sources)
	if err != nil {
		o.setState(StateFailed)
		return Result{}, err
	}

	o.setState(StateIdle)
	return Result{
		SessionID:      sessionID,
		Message:        message,
		CreatedSession: createdSession,
	}, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.setStateLocked(s)
	o.mu.Unlock()
}

func (o *Orchestrator) setStateLocked(s State) {
	o.state = s
	if o.observer != nil {
		o.observer(s)
	}
}
