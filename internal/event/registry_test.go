package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopSub(id string) *Subscriber {
	return NewSubscriber(id, On(func(context.Context, progressEvent) error { return nil }))
}

func TestRegistry_AddRemoveKeepsOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.False(t, r.Add(noopSub(id)))
	}

	require.True(t, r.Remove("b"))
	assert.False(t, r.Remove("b"))
	assert.Equal(t, []string{"a", "c", "d"}, r.IDs())

	// Index must be rebuilt for the shifted entries.
	require.True(t, r.Remove("d"))
	assert.Equal(t, []string{"a", "c"}, r.IDs())

	got, ok := r.Get("c")
	require.True(t, ok)
	assert.Equal(t, "c", got.ID())
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Add(noopSub("a"))
	r.Add(noopSub("b"))

	replacement := noopSub("a")
	assert.True(t, r.Add(replacement))
	assert.Equal(t, []string{"a", "b"}, r.IDs())

	got, _ := r.Get("a")
	assert.Same(t, replacement, got)
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_MatchFiltersByKindAndInterest(t *testing.T) {
	r := NewRegistry()
	r.Add(noopSub("progress"))
	r.Add(NewSubscriber("buttons", On(func(context.Context, buttonEvent) error { return nil })))
	r.Add(NewSubscriber("scoped",
		WithInterest(ScopedTo("p1")),
		On(func(context.Context, buttonEvent) error { return nil }),
	))

	ids := func(subs []*Subscriber) []string {
		var out []string
		for _, s := range subs {
			out = append(out, s.ID())
		}
		return out
	}

	assert.Equal(t, []string{"progress"}, ids(r.Match(progressEvent{})))
	assert.Equal(t, []string{"buttons", "scoped"}, ids(r.Match(buttonEvent{Panel: "p1"})))
	assert.Equal(t, []string{"buttons"}, ids(r.Match(buttonEvent{Panel: "p2"})))

	r.Clear()
	assert.Zero(t, r.Count())
	assert.Empty(t, r.Match(progressEvent{}))
}

func TestRegistry_MatchSkipsPanickingInterest(t *testing.T) {
	r := NewRegistry()
	r.Add(noopSub("a"))
	r.Add(NewSubscriber("b",
		WithInterest(func(Event) bool { panic("boom") }),
		On(func(context.Context, progressEvent) error { return nil }),
	))
	r.Add(noopSub("c"))

	var subs []*Subscriber
	require.NotPanics(t, func() { subs = r.Match(progressEvent{}) })
	require.Len(t, subs, 2)
	assert.Equal(t, "a", subs[0].ID())
	assert.Equal(t, "c", subs[1].ID())

	matched, faults := r.match(progressEvent{})
	assert.Len(t, matched, 2)
	require.Len(t, faults, 1)
	assert.Equal(t, "b", faults[0].sub.ID())
	assert.True(t, faults[0].res.panicked)
	assert.True(t, faults[0].res.interest)
	assert.Equal(t, "boom", faults[0].res.panicValue)

	// The predicate is never consulted for kinds the subscriber has no handler for.
	_, faults = r.match(buttonEvent{})
	assert.Empty(t, faults)
}

func TestSubscriber_GeneratedIDAndKinds(t *testing.T) {
	s := NewSubscriber("", On(func(context.Context, progressEvent) error { return nil }), nil)
	assert.Len(t, s.ID(), 36)
	assert.Equal(t, []Kind{"test.progress"}, s.Kinds())

	assert.True(t, s.Interested(progressEvent{}))
	assert.False(t, s.Interested(buttonEvent{}))
}

func TestOn_SkipsMismatchedType(t *testing.T) {
	type other struct{ progressEvent }

	called := false
	b := On(func(context.Context, progressEvent) error {
		called = true
		return nil
	})
	// other reports the same kind through the embedded method but is a different type.
	require.NoError(t, b.Handler.Handle(context.Background(), other{}))
	assert.False(t, called)
}
