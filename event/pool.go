package event

// recycler returns a dispatched message to the free-list of its kind
type recycler interface {
	recycle(msg any)
	free() int
}

// pool is a LIFO free-list for one message type
// The most recently recycled instance is handed out first
type pool[T any] struct {
	k     *kind
	items []*T
}

func newPool[T any](k *kind, prime int) *pool[T] {
	p := &pool[T]{k: k, items: make([]*T, 0, prime)}
	for i := 0; i < prime; i++ {
		p.items = append(p.items, new(T))
	}
	k.stats.Primed = prime
	return p
}

// get pops a free instance, allocating only when the pool is empty
func (p *pool[T]) get() *T {
	n := len(p.items)
	if n == 0 {
		p.k.stats.Allocated++
		p.k.metrics.allocated.Inc()
		return new(T)
	}
	msg := p.items[n-1]
	p.items[n-1] = nil
	p.items = p.items[:n-1]
	return msg
}

// recycle zeroes the message so no reference from its previous use survives
func (p *pool[T]) recycle(msg any) {
	m := msg.(*T)
	var zero T
	*m = zero
	p.items = append(p.items, m)
}

func (p *pool[T]) free() int {
	return len(p.items)
}
