package event

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressEvent struct {
	Message string
	Percent int
}

func (progressEvent) Kind() Kind { return "test.progress" }

type buttonEvent struct {
	Panel   string
	Enabled bool
}

func (buttonEvent) Kind() Kind { return "test.button" }

func (e buttonEvent) PanelName() string { return e.Panel }

// recorder collects handler invocations in call order.
type recorder struct {
	calls []string
	seen  []progressEvent
}

func (r *recorder) subscriber(id string, opts ...SubscriberOption) *Subscriber {
	opts = append(opts, On(func(_ context.Context, e progressEvent) error {
		r.calls = append(r.calls, id)
		r.seen = append(r.seen, e)
		return nil
	}))
	return NewSubscriber(id, opts...)
}

type loopMarker struct{}

type fakeConfinement struct{}

func (fakeConfinement) OnLoop(ctx context.Context) bool {
	return ctx.Value(loopMarker{}) != nil
}

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	rec := &recorder{}

	ids := []string{"s1", "s2", "s3", "s4", "s5"}
	for _, id := range ids {
		require.NoError(t, bus.Register(ctx, rec.subscriber(id)))
	}

	bus.Post(ctx, progressEvent{Message: "x", Percent: 1})

	assert.Equal(t, ids, rec.calls)
}

func TestBus_ProgressScenario(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	rec := &recorder{}

	a := rec.subscriber("A")
	b := rec.subscriber("B")
	c := rec.subscriber("C")
	for _, s := range []*Subscriber{a, b, c} {
		require.NoError(t, bus.Register(ctx, s))
	}

	loading := progressEvent{Message: "Loading", Percent: 42}
	bus.Post(ctx, loading)

	assert.Equal(t, []string{"A", "B", "C"}, rec.calls)
	assert.Equal(t, []progressEvent{loading, loading, loading}, rec.seen)

	rec.calls, rec.seen = nil, nil
	bus.Unregister(ctx, b)

	done := progressEvent{Message: "Done", Percent: 100}
	bus.Post(ctx, done)

	assert.Equal(t, []string{"A", "C"}, rec.calls)
	assert.Equal(t, []progressEvent{done, done}, rec.seen)
}

func TestBus_FailureIsolation(t *testing.T) {
	tests := []struct {
		name    string
		handler func(context.Context, progressEvent) error
		target  error
	}{
		{
			name:    "error",
			handler: func(context.Context, progressEvent) error { return errors.New("boom") },
		},
		{
			name:    "panic",
			handler: func(context.Context, progressEvent) error { panic("boom") },
			target:  ErrHandlerPanic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			var failures []error
			bus := NewBus(WithFailureHandler(func(_ context.Context, err error) {
				failures = append(failures, err)
			}))
			rec := &recorder{}

			require.NoError(t, bus.Register(ctx, rec.subscriber("before")))
			require.NoError(t, bus.Register(ctx, NewSubscriber("failing", On(tt.handler))))
			require.NoError(t, bus.Register(ctx, rec.subscriber("after1")))
			require.NoError(t, bus.Register(ctx, rec.subscriber("after2")))

			require.NotPanics(t, func() {
				bus.Post(ctx, progressEvent{Message: "m", Percent: 5})
			})

			assert.Equal(t, []string{"before", "after1", "after2"}, rec.calls)
			require.Len(t, failures, 1)
			if tt.target != nil {
				assert.ErrorIs(t, failures[0], tt.target)
				var pe *PanicError
				require.ErrorAs(t, failures[0], &pe)
				assert.Equal(t, "failing", pe.SubscriberID)
				assert.Equal(t, "boom", pe.Value)
				assert.NotEmpty(t, pe.Stack)
			} else {
				var he *HandlerError
				require.ErrorAs(t, failures[0], &he)
				assert.Equal(t, "failing", he.SubscriberID)
				assert.Equal(t, Kind("test.progress"), he.Kind)
			}
		})
	}
}

func TestBus_FailureCountsInStats(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()

	require.NoError(t, bus.Register(ctx, NewSubscriber("err", On(func(context.Context, progressEvent) error {
		return errors.New("nope")
	}))))
	require.NoError(t, bus.Register(ctx, NewSubscriber("panic", On(func(context.Context, progressEvent) error {
		panic("nope")
	}))))
	require.NoError(t, bus.Register(ctx, NewSubscriber("ok", On(func(context.Context, progressEvent) error {
		return nil
	}))))

	bus.Post(ctx, progressEvent{})

	stats := bus.Stats()
	assert.Equal(t, uint64(1), stats.EventsPosted)
	assert.Equal(t, uint64(1), stats.EventsDelivered)
	assert.Equal(t, uint64(1), stats.HandlerErrors)
	assert.Equal(t, uint64(1), stats.HandlerPanics)
	assert.Equal(t, 3, stats.ActiveSubscribers)
}

func TestBus_PanickingInterestSkipsOnlyThatSubscriber(t *testing.T) {
	ctx := context.Background()
	var failures []error
	bus := NewBus(WithFailureHandler(func(_ context.Context, err error) {
		failures = append(failures, err)
	}))
	rec := &recorder{}

	require.NoError(t, bus.Register(ctx, rec.subscriber("a")))
	require.NoError(t, bus.Register(ctx, rec.subscriber("b",
		WithInterest(func(Event) bool { panic("boom") }))))
	require.NoError(t, bus.Register(ctx, rec.subscriber("c")))

	require.NotPanics(t, func() {
		bus.Post(ctx, progressEvent{Message: "Loading", Percent: 10})
	})

	assert.Equal(t, []string{"a", "c"}, rec.calls)

	stats := bus.Stats()
	assert.Equal(t, uint64(1), stats.HandlerPanics)
	assert.Equal(t, uint64(2), stats.EventsDelivered)

	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrHandlerPanic)
	var pe *PanicError
	require.ErrorAs(t, failures[0], &pe)
	assert.Equal(t, "b", pe.SubscriberID)
	assert.Equal(t, Kind("test.progress"), pe.Kind)
	assert.Equal(t, "boom", pe.Value)

	assert.True(t, bus.IsRegistered("b"), "a failing predicate does not unregister")
}

func TestBus_UnregisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	rec := &recorder{}

	s := rec.subscriber("s")
	other := rec.subscriber("other")
	require.NoError(t, bus.Register(ctx, s))
	require.NoError(t, bus.Register(ctx, other))

	bus.Unregister(ctx, s)
	require.NotPanics(t, func() { bus.Unregister(ctx, s) })
	bus.UnregisterID(ctx, "never-registered")
	bus.Unregister(ctx, nil)

	bus.Post(ctx, progressEvent{})
	bus.Post(ctx, progressEvent{})

	assert.Equal(t, []string{"other", "other"}, rec.calls)
	assert.Equal(t, 1, bus.Stats().ActiveSubscribers)
}

func TestBus_NoDeliveryAfterUnregister(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	rec := &recorder{}

	s := rec.subscriber("s")
	require.NoError(t, bus.Register(ctx, s))
	bus.Post(ctx, progressEvent{Percent: 1})
	bus.Unregister(ctx, s)
	bus.Post(ctx, progressEvent{Percent: 2})

	require.Len(t, rec.seen, 1)
	assert.Equal(t, 1, rec.seen[0].Percent)
	assert.False(t, bus.IsRegistered("s"))
}

func TestBus_DuplicateRegisterReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	var calls []string

	mk := func(id, label string) *Subscriber {
		return NewSubscriber(id, On(func(context.Context, progressEvent) error {
			calls = append(calls, label)
			return nil
		}))
	}

	require.NoError(t, bus.Register(ctx, mk("A", "A1")))
	require.NoError(t, bus.Register(ctx, mk("B", "B")))
	require.NoError(t, bus.Register(ctx, mk("A", "A2")))

	bus.Post(ctx, progressEvent{})

	assert.Equal(t, []string{"A2", "B"}, calls)
	assert.Equal(t, 2, bus.Stats().ActiveSubscribers)
}

func TestBus_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()

	assert.ErrorIs(t, bus.Register(ctx, nil), ErrNilSubscriber)
	assert.ErrorIs(t, bus.Register(ctx, NewSubscriber("empty")), ErrNoBindings)

	bus.Close()
	bus.Close()
	assert.True(t, bus.IsClosed())

	rec := &recorder{}
	assert.ErrorIs(t, bus.Register(ctx, rec.subscriber("late")), ErrBusClosed)

	bus.Post(ctx, progressEvent{})
	assert.Empty(t, rec.calls)
	assert.Equal(t, uint64(1), bus.Stats().EventsDropped)
}

func TestBus_InterestAndScoping(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	var got []string

	for _, panel := range []string{"left", "right"} {
		panel := panel
		sub := NewSubscriber(panel,
			WithInterest(ScopedTo(panel)),
			On(func(_ context.Context, e buttonEvent) error {
				got = append(got, panel+":"+e.Panel)
				return nil
			}),
			On(func(_ context.Context, e progressEvent) error {
				got = append(got, panel+":progress")
				return nil
			}),
		)
		require.NoError(t, bus.Register(ctx, sub))
	}

	bus.Post(ctx, buttonEvent{Panel: "right", Enabled: true})
	bus.Post(ctx, progressEvent{})

	assert.Equal(t, []string{"right:right", "left:progress", "right:progress"}, got)
}

func TestBus_RecipientsFixedAtPostTime(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	rec := &recorder{}

	late := rec.subscriber("late")
	victim := rec.subscriber("victim")

	first := NewSubscriber("first", On(func(ctx context.Context, _ progressEvent) error {
		rec.calls = append(rec.calls, "first")
		bus.Unregister(ctx, victim)
		return bus.Register(ctx, late)
	}))

	require.NoError(t, bus.Register(ctx, first))
	require.NoError(t, bus.Register(ctx, victim))

	bus.Post(ctx, progressEvent{})
	assert.Equal(t, []string{"first", "victim"}, rec.calls)

	rec.calls = nil
	bus.Post(ctx, progressEvent{})
	assert.Equal(t, []string{"first", "late"}, rec.calls)
}

func TestBus_ReentrantPostDepth(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	var depths []int

	sub := NewSubscriber("nested",
		On(func(ctx context.Context, _ progressEvent) error {
			d, ok := DeliveryFrom(ctx)
			require.True(t, ok)
			depths = append(depths, d.Depth)
			bus.Post(ctx, buttonEvent{Panel: "p"})
			return nil
		}),
		On(func(ctx context.Context, _ buttonEvent) error {
			d, _ := DeliveryFrom(ctx)
			depths = append(depths, d.Depth)
			assert.Equal(t, Kind("test.button"), d.Kind)
			return nil
		}),
	)
	require.NoError(t, bus.Register(ctx, sub))

	bus.Post(ctx, progressEvent{})

	assert.Equal(t, []int{1, 2}, depths)
}

func TestBus_StrictConfinementPanicsOffLoop(t *testing.T) {
	bus := NewBus(WithConfinement(fakeConfinement{}, true))
	onLoop := context.WithValue(context.Background(), loopMarker{}, true)
	rec := &recorder{}

	require.NoError(t, bus.Register(onLoop, rec.subscriber("s")))
	bus.Post(onLoop, progressEvent{})

	assert.PanicsWithError(t, "post: "+ErrNotOnLoop.Error(), func() {
		bus.Post(context.Background(), progressEvent{})
	})
	assert.Equal(t, []string{"s"}, rec.calls)
	assert.Equal(t, uint64(1), bus.Stats().ConfinementViolations)
}

func TestBus_LenientConfinementLogsAndDelivers(t *testing.T) {
	bus := NewBus(WithConfinement(fakeConfinement{}, false))
	rec := &recorder{}

	require.NoError(t, bus.Register(context.Background(), rec.subscriber("s")))
	bus.Post(context.Background(), progressEvent{})

	assert.Equal(t, []string{"s"}, rec.calls)
	assert.Equal(t, uint64(2), bus.Stats().ConfinementViolations)
}

func TestBus_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	bus := NewBus(WithMetrics(NewMetrics(reg)))

	require.NoError(t, bus.Register(ctx, NewSubscriber("ok", On(func(context.Context, progressEvent) error {
		return nil
	}))))
	require.NoError(t, bus.Register(ctx, NewSubscriber("bad", On(func(context.Context, progressEvent) error {
		panic("bad")
	}))))

	bus.Post(ctx, progressEvent{})
	bus.Post(ctx, progressEvent{})

	m := bus.config.metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.posted.WithLabelValues("test.progress")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.delivered.WithLabelValues("test.progress")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.failures.WithLabelValues("test.progress", "panic")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.subscribers))
}
