package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrSimulatorClosed is returned for requests made after Close.
var ErrSimulatorClosed = errors.New("device simulator closed")

// ErrRejected is reported when the user declines on the device.
var ErrRejected = errors.New("rejected on device")

// ErrUnknownOutcome is returned by ParseOutcome for unsupported names.
var ErrUnknownOutcome = errors.New("unknown device outcome")

// Outcome is how a simulated confirmation ends.
type Outcome int

const (
	// OutcomeConfirmed means the user pressed confirm and the operation succeeded.
	OutcomeConfirmed Outcome = iota

	// OutcomeRejected means the user pressed cancel on the device.
	OutcomeRejected

	// OutcomeFailed means the operation failed after it was confirmed.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcome converts an outcome name back into an Outcome.
func ParseOutcome(name string) (Outcome, error) {
	for _, o := range []Outcome{OutcomeConfirmed, OutcomeRejected, OutcomeFailed} {
		if o.String() == name {
			return o, nil
		}
	}
	return OutcomeFailed, fmt.Errorf("%w: %q", ErrUnknownOutcome, name)
}

// Result reports the end of a confirmation request.
type Result struct {
	Operation string
	Outcome   Outcome
	Err       error
}

// Callbacks receive progress of a confirmation request. They run on a
// device goroutine, never on the UI loop.
type Callbacks struct {
	// Pressed is called once the user has pressed confirm. It is not
	// called for rejected requests.
	Pressed func(op string)

	// Done is called exactly once when the request ends.
	Done func(Result)
}

// Confirmer asks the device user to confirm an operation.
type Confirmer interface {
	RequestConfirmation(ctx context.Context, op string, cb Callbacks) error
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithDelay sets how long each simulated step takes.
func WithDelay(d time.Duration) SimulatorOption {
	return func(s *Simulator) {
		s.delay = d
	}
}

// WithOutcome sets the outcome of every request.
func WithOutcome(o Outcome) SimulatorOption {
	return func(s *Simulator) {
		s.outcome = o
	}
}

// WithSimulatorLogger sets the logger.
func WithSimulatorLogger(log zerolog.Logger) SimulatorOption {
	return func(s *Simulator) {
		s.log = log
	}
}

// Simulator answers confirmation requests as a hardware wallet would, after
// a delay and on its own goroutine.
type Simulator struct {
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	outcome Outcome
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSimulator creates a simulator that confirms after 500ms by default.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		delay: 500 * time.Millisecond,
		log:   zerolog.Nop(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "device_simulator").Logger()
	return s
}

// SetOutcome changes the outcome of later requests.
func (s *Simulator) SetOutcome(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcome = o
}

// RequestConfirmation implements Confirmer.
func (s *Simulator) RequestConfirmation(ctx context.Context, op string, cb Callbacks) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSimulatorClosed
	}
	outcome := s.outcome

	s.wg.Add(1)
	go s.run(ctx, op, outcome, cb)

	s.log.Debug().Str("op", op).Stringer("outcome", outcome).Msg("confirmation requested")
	return nil
}

func (s *Simulator) run(ctx context.Context, op string, outcome Outcome, cb Callbacks) {
	defer s.wg.Done()

	finish := func(res Result) {
		s.log.Debug().Str("op", op).Stringer("outcome", res.Outcome).Err(res.Err).Msg("confirmation finished")
		if cb.Done != nil {
			cb.Done(res)
		}
	}

	if err := s.wait(ctx); err != nil {
		finish(Result{Operation: op, Outcome: OutcomeFailed, Err: err})
		return
	}

	if outcome == OutcomeRejected {
		finish(Result{Operation: op, Outcome: OutcomeRejected, Err: ErrRejected})
		return
	}

	if cb.Pressed != nil {
		cb.Pressed(op)
	}

	if err := s.wait(ctx); err != nil {
		finish(Result{Operation: op, Outcome: OutcomeFailed, Err: err})
		return
	}

	res := Result{Operation: op, Outcome: outcome}
	if outcome == OutcomeFailed {
		res.Err = errors.New(op + " failed on device")
	}
	finish(res)
}

func (s *Simulator) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSimulatorClosed
	}
}

// Close aborts pending requests and waits for their callbacks to finish.
// Close is idempotent.
func (s *Simulator) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
