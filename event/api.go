package event

// Acquire returns a zeroed instance of T from its pool
// Allocates only when the pool is empty
func Acquire[T any](b *Bus) *T {
	k := kindOf[T](b)
	return k.pool.(*pool[T]).get()
}

// Push enqueues msg for delivery on the next Dispatch, or later in the
// current one when called from a handler
// Ownership passes to the bus: the caller must not touch msg afterwards
func Push[T any](b *Bus, msg *T) {
	if msg == nil {
		return
	}
	b.enqueue(kindOf[T](b), msg)
}

// Send acquires a T, fills it and pushes it in one call
func Send[T any](b *Bus, fill func(*T)) {
	msg := Acquire[T](b)
	if fill != nil {
		fill(msg)
	}
	Push(b, msg)
}

// AddHandler registers the single handler for T
// A second registration is rejected with ErrDuplicateHandler; the first handler is kept
func AddHandler[T any](b *Bus, fn func(*T)) error {
	k := kindOf[T](b)
	if k.handler != nil {
		b.log.Warn("handler already registered", "message", k.name, "id", k.id)
		return ErrDuplicateHandler
	}
	k.handler = func(msg any) { fn(msg.(*T)) }
	return nil
}

// RemoveHandler unregisters the handler for T
// Messages of T pushed afterwards are dropped and recycled
func RemoveHandler[T any](b *Bus) error {
	k := kindOf[T](b)
	if k.handler == nil {
		b.log.Warn("no handler to remove", "message", k.name, "id", k.id)
		return ErrNoHandler
	}
	k.handler = nil
	return nil
}

// HasHandler reports whether T has a registered handler
func HasHandler[T any](b *Bus) bool {
	return kindOf[T](b).handler != nil
}
