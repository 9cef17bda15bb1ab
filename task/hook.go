package task

// Handle identifies one subscription on a Hook
type Handle uint64

type hookEntry struct {
	id Handle
	fn func()
}

// Hook is an ordered subscriber list invoked synchronously by its owner
// Used for animation notifications (hit frame, clip end) that tasks wait on
type Hook struct {
	subs   []hookEntry
	nextID Handle
}

// Add subscribes fn and returns a handle for Remove
func (h *Hook) Add(fn func()) Handle {
	h.nextID++
	h.subs = append(h.subs, hookEntry{id: h.nextID, fn: fn})
	return h.nextID
}

// Remove unsubscribes the handle, returns false if it was not subscribed
func (h *Hook) Remove(id Handle) bool {
	for i, e := range h.subs {
		if e.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Fire invokes every subscriber in subscription order
// Subscribers may add or remove subscriptions while being invoked
func (h *Hook) Fire() {
	if len(h.subs) == 0 {
		return
	}
	snapshot := make([]hookEntry, len(h.subs))
	copy(snapshot, h.subs)
	for _, e := range snapshot {
		e.fn()
	}
}

// Len returns the number of subscribers
func (h *Hook) Len() int {
	return len(h.subs)
}

// WaitFor suspends on sig until h fires once
// The subscription is always removed, including on Dispose
func WaitFor(h *Hook, sig Signal) *Coroutine {
	return Func(func(yield func(Signal) bool) {
		fired := false
		id := h.Add(func() { fired = true })
		defer h.Remove(id)

		for !fired {
			if !yield(sig) {
				return
			}
		}
	})
}
