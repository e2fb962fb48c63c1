// Package session runs single-flight company analyses and holds the result of
// the latest successful run.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/types"
)

// State is the orchestrator state.
type State string

// Session states
const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// TransitionFunc observes state changes. It is called without the session lock held.
type TransitionFunc func(from, to State)

// Result is the outcome of a successful run.
type Result struct {
	RunID       string         `json:"run_id"`
	Company     string         `json:"company"`
	Profile     *types.Profile `json:"profile"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Status is a point-in-time view of the session.
type Status struct {
	ID        string `json:"id"`
	State     State  `json:"state"`
	Company   string `json:"company,omitempty"`
	RunID     string `json:"run_id,omitempty"`
	LastError string `json:"last_error,omitempty"`
	HasResult bool   `json:"has_result"`
}

// Option configures a Session.
type Option func(*Session)

// WithProgressTick sets the interval between progress steps.
func WithProgressTick(d time.Duration) Option {
	return func(s *Session) { s.tick = d }
}

// Session owns one engine and at most one current result.
type Session struct {
	id       string
	engine   engine.Engine
	exporter *export.Exporter
	tick     time.Duration

	mu           sync.Mutex
	state        State
	company      string
	runID        string
	lastErr      string
	current      *Result
	onTransition TransitionFunc
}

// New creates an idle session around eng.
func New(eng engine.Engine, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		engine:   eng,
		exporter: export.New(eng),
		tick:     DefaultProgressTick,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// OnTransition installs the state-change hook.
func (s *Session) OnTransition(fn TransitionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTransition = fn
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:        s.id,
		State:     s.state,
		Company:   s.company,
		RunID:     s.runID,
		LastError: s.lastErr,
		HasResult: s.current != nil,
	}
}

// Current returns the latest successful result, or nil.
func (s *Session) Current() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Run analyzes one company. Invalid input leaves the session untouched.
func (s *Session) Run(ctx context.Context, req RunRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.normalize()

	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	runID := uuid.NewString()
	s.company = req.Company
	s.runID = runID
	s.lastErr = ""
	notify := s.setState(StateRunning)
	s.mu.Unlock()
	notify()

	startedAt := time.Now()
	log.Info().Str("company", req.Company).Str("run_id", runID).Int("max_retries", req.MaxRetries).
		Str("delay", req.DelayRange().String()).Msg("analysis started")

	s.engine.SetMaxRetries(req.MaxRetries)
	s.engine.SetDelayRange(req.DelayRange())

	profile, err := s.execute(ctx, runID, req)

	s.mu.Lock()
	if err != nil {
		s.current = nil
		s.lastErr = err.Error()
		toFailed := s.setState(StateFailed)
		toIdle := s.setState(StateIdle)
		s.mu.Unlock()
		toFailed()
		toIdle()

		log.Warn().Str("company", req.Company).Str("run_id", runID).Err(err).Msg("analysis failed")
		return nil, &ExtractionError{Company: req.Company, Cause: err}
	}

	result := &Result{
		RunID:       runID,
		Company:     req.Company,
		Profile:     profile,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
	s.current = result
	notify = s.setState(StateSucceeded)
	s.mu.Unlock()
	notify()

	log.Info().Str("company", req.Company).Str("run_id", runID).
		Dur("elapsed", result.CompletedAt.Sub(startedAt)).Msg("analysis completed")
	return result, nil
}

// execute runs the engine call and the progress sequence side by side.
func (s *Session) execute(ctx context.Context, runID string, req RunRequest) (*types.Profile, error) {
	var profile *types.Profile
	done := make(chan struct{})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		p, err := s.engine.ExtractCompanyProfile(gCtx, req.Company)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.New("engine returned no profile")
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		runProgress(gCtx, runID, s.tick, done, req.OnProgress)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Export renders the current result. It fails with ErrNoResult before a successful run.
func (s *Session) Export(ctx context.Context, format export.Format) (*export.Artifact, error) {
	current := s.Current()
	if current == nil {
		return nil, ErrNoResult
	}
	return s.exporter.Export(ctx, current.Profile, current.Company, format)
}

// setState must be called with mu held. The returned func runs the hook.
func (s *Session) setState(to State) func() {
	from := s.state
	s.state = to
	hook := s.onTransition
	return func() {
		if hook != nil {
			hook(from, to)
		}
	}
}
