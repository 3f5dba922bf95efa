package event

// Registry keeps subscribers in registration order.
//
// It performs no locking. All access happens on the UI loop, the same
// goroutine that posts events.
type Registry struct {
	subs []*Subscriber
	byID map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]int),
	}
}

// Add appends sub to the delivery order. If a subscriber with the same ID
// is already present it is replaced in place, keeping its position.
// Returns true when sub replaced an existing registration.
func (r *Registry) Add(sub *Subscriber) bool {
	if i, ok := r.byID[sub.ID()]; ok {
		r.subs[i] = sub
		return true
	}
	r.byID[sub.ID()] = len(r.subs)
	r.subs = append(r.subs, sub)
	return false
}

// Remove removes the subscriber with the given ID.
// Returns false if no such subscriber was registered.
func (r *Registry) Remove(id string) bool {
	i, ok := r.byID[id]
	if !ok {
		return false
	}

	copy(r.subs[i:], r.subs[i+1:])
	r.subs[len(r.subs)-1] = nil
	r.subs = r.subs[:len(r.subs)-1]
	delete(r.byID, id)

	for j := i; j < len(r.subs); j++ {
		r.byID[r.subs[j].ID()] = j
	}
	return true
}

// Get returns the subscriber registered under id.
func (r *Registry) Get(id string) (*Subscriber, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.subs[i], true
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Match returns, in registration order, the subscribers interested in evt.
// The result is a fresh slice so callers may keep iterating while the
// registry changes underneath them. A subscriber whose interest predicate
// panics is left out.
func (r *Registry) Match(evt Event) []*Subscriber {
	subs, _ := r.match(evt)
	return subs
}

// interestFault records a subscriber whose interest predicate panicked.
type interestFault struct {
	sub *Subscriber
	res result
}

func (r *Registry) match(evt Event) ([]*Subscriber, []interestFault) {
	var (
		matched []*Subscriber
		faults  []interestFault
	)
	for _, sub := range r.subs {
		ok, res := interested(sub, evt)
		if res.panicked {
			faults = append(faults, interestFault{sub: sub, res: res})
			continue
		}
		if ok {
			matched = append(matched, sub)
		}
	}
	return matched, faults
}

// Count returns the number of registered subscribers.
func (r *Registry) Count() int {
	return len(r.subs)
}

// IDs returns the registered IDs in delivery order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.subs))
	for i, sub := range r.subs {
		ids[i] = sub.ID()
	}
	return ids
}

// Clear removes all subscribers.
func (r *Registry) Clear() {
	r.subs = nil
	r.byID = make(map[string]int)
}
