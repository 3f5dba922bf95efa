package event

import (
	"context"
	"runtime/debug"
	"time"
)

// result is the outcome of a single handler execution.
type result struct {
	err        error
	panicked   bool
	panicValue any
	stack      []byte
	duration   time.Duration

	// interest is set when the panic came from the subscriber's interest
	// predicate rather than a handler.
	interest bool
}

func (r result) ok() bool {
	return r.err == nil && !r.panicked
}

// execute runs h with evt, recovering from panics and timing the call.
func execute(ctx context.Context, evt Event, h Handler) (res result) {
	start := time.Now()

	defer func() {
		res.duration = time.Since(start)
		if r := recover(); r != nil {
			res.panicked = true
			res.panicValue = r
			res.stack = debug.Stack()
		}
	}()

	res.err = h.Handle(ctx, evt)
	return res
}

// interested evaluates sub's interest in evt. A panicking predicate counts
// as no interest and is returned as a failed result.
func interested(sub *Subscriber, evt Event) (ok bool, res result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			ok = false
			res = result{
				panicked:   true,
				panicValue: r,
				stack:      debug.Stack(),
				duration:   time.Since(start),
				interest:   true,
			}
		}
	}()

	return sub.Interested(evt), res
}
