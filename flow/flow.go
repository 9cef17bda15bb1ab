// Package flow composes tasks into new tasks
//
// Every combinator is a plain state machine over task.Task values and touches
// no global state. Composed tasks still take exactly one step per Next call,
// so a site advancing a composition costs O(1) steps per phase.
package flow

import (
	"time"

	"github.com/lixenwraith/skirmish/task"
)

// Factory creates a fresh, unstarted task instance
type Factory func() task.Task

// Clock supplies the elapsed time since the previous tick
type Clock interface {
	DeltaTime() time.Duration
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Duration

func (f ClockFunc) DeltaTime() time.Duration { return f() }

// Predicate is re-evaluated at every step of the combinator owning it
type Predicate func() bool

// --- Wait ---

type waitTask struct {
	clock    Clock
	duration time.Duration
	signal   task.Signal
	elapsed  time.Duration
	started  bool
	done     bool
}

// Wait yields sig while accumulated clock time is strictly below d
// Time is accumulated after each resumption, so with a constant step s the task
// yields ceil(d/s) times: d=1s, s=250ms yields four times
func Wait(clock Clock, d time.Duration, sig task.Signal) task.Task {
	return &waitTask{clock: clock, duration: d, signal: sig}
}

func (w *waitTask) Next() (task.Signal, bool) {
	if w.done {
		return task.None, false
	}
	if w.started {
		w.elapsed += w.clock.DeltaTime()
	}
	w.started = true
	if w.elapsed < w.duration {
		return w.signal, true
	}
	w.done = true
	return task.None, false
}

func (w *waitTask) Dispose() { w.done = true }

// --- WaitUntil ---

type waitUntilTask struct {
	pred   Predicate
	signal task.Signal
	done   bool
}

// WaitUntil yields sig until pred holds; zero yields when it already holds
func WaitUntil(pred Predicate, sig task.Signal) task.Task {
	return &waitUntilTask{pred: pred, signal: sig}
}

func (w *waitUntilTask) Next() (task.Signal, bool) {
	if w.done || w.pred() {
		w.done = true
		return task.None, false
	}
	return w.signal, true
}

func (w *waitUntilTask) Dispose() { w.done = true }

// --- ExecuteWhile ---

type whileTask struct {
	inner task.Task
	pred  Predicate
	done  bool
}

// ExecuteWhile checks pred before each step of inner and stops as soon as it
// is false, disposing inner so its cleanup still runs. The early stop is a
// normal completion, not a fault
func ExecuteWhile(inner task.Task, pred Predicate) task.Task {
	return &whileTask{inner: inner, pred: pred}
}

func (w *whileTask) Next() (task.Signal, bool) {
	if w.done {
		return task.None, false
	}
	if !w.pred() {
		w.finish()
		return task.None, false
	}
	sig, ok := w.inner.Next()
	if !ok {
		w.finish()
		return task.None, false
	}
	return sig, true
}

func (w *whileTask) Dispose() {
	if !w.done {
		w.finish()
	}
}

func (w *whileTask) finish() {
	w.done = true
	w.inner.Dispose()
}

// --- RepeatWhile ---

type repeatTask struct {
	factory Factory
	pred    Predicate
	current task.Task
	done    bool
}

// RepeatWhile runs fresh instances of factory to completion while pred holds
// pred is checked before every instance; false at the first check means the
// factory is never called. The caller must eventually make pred false, and an
// instance that completes without yielding loops again within the same step
func RepeatWhile(factory Factory, pred Predicate) task.Task {
	return &repeatTask{factory: factory, pred: pred}
}

func (r *repeatTask) Next() (task.Signal, bool) {
	if r.done {
		return task.None, false
	}
	for {
		if r.current == nil {
			if !r.pred() {
				r.done = true
				return task.None, false
			}
			r.current = r.factory()
		}
		sig, ok := r.current.Next()
		if ok {
			return sig, true
		}
		r.current.Dispose()
		r.current = nil
	}
}

func (r *repeatTask) Dispose() {
	r.done = true
	if r.current != nil {
		r.current.Dispose()
		r.current = nil
	}
}

// --- ExecuteOrSkip ---

type skipTask struct {
	inner   task.Task
	skip    task.Signal
	started bool
	skipped bool
	done    bool
}

// ExecuteOrSkip runs inner; when inner finishes without ever yielding it emits
// one step on skip instead, so the composition always costs at least one advance
func ExecuteOrSkip(inner task.Task, skip task.Signal) task.Task {
	return &skipTask{inner: inner, skip: skip}
}

func (s *skipTask) Next() (task.Signal, bool) {
	if s.done {
		return task.None, false
	}
	if s.skipped {
		s.done = true
		return task.None, false
	}

	sig, ok := s.inner.Next()
	first := !s.started
	s.started = true
	if ok {
		return sig, true
	}

	s.inner.Dispose()
	if first {
		s.skipped = true
		return s.skip, true
	}
	s.done = true
	return task.None, false
}

func (s *skipTask) Dispose() {
	s.done = true
	s.inner.Dispose()
}

// --- Concurrent ---

type concurrentTask struct {
	primary       task.Task
	secondary     task.Task
	secondaryDone bool
	done          bool
}

// Concurrent steps primary and re-yields its signal; while secondary is
// unfinished it is stepped once per primary step as well
//
// The signal yielded by secondary is discarded: it runs in
// lock-step with the cadence of primary and never decides the phase. When
// primary completes, an unfinished secondary is disposed
func Concurrent(primary, secondary task.Task) task.Task {
	return &concurrentTask{primary: primary, secondary: secondary}
}

func (c *concurrentTask) Next() (task.Signal, bool) {
	if c.done {
		return task.None, false
	}
	sig, ok := c.primary.Next()
	if !ok {
		c.Dispose()
		return task.None, false
	}
	if !c.secondaryDone {
		if _, more := c.secondary.Next(); !more {
			c.secondaryDone = true
			c.secondary.Dispose()
		}
	}
	return sig, true
}

func (c *concurrentTask) Dispose() {
	c.done = true
	c.primary.Dispose()
	c.secondary.Dispose()
}

// --- Sequence ---

type sequenceTask struct {
	factories []Factory
	index     int
	current   task.Task
	done      bool
}

// Sequence runs fresh instances of each factory one after another
// A member that completes without yielding does not cost a step
func Sequence(factories ...Factory) task.Task {
	return &sequenceTask{factories: factories}
}

func (q *sequenceTask) Next() (task.Signal, bool) {
	for !q.done {
		if q.current == nil {
			if q.index >= len(q.factories) {
				q.done = true
				break
			}
			q.current = q.factories[q.index]()
			q.index++
		}
		sig, ok := q.current.Next()
		if ok {
			return sig, true
		}
		q.current.Dispose()
		q.current = nil
	}
	return task.None, false
}

func (q *sequenceTask) Dispose() {
	q.done = true
	if q.current != nil {
		q.current.Dispose()
		q.current = nil
	}
}

// --- Do / Yield ---

type doTask struct {
	fn   func()
	done bool
}

// Do runs fn once on the first step and completes without yielding
func Do(fn func()) task.Task {
	return &doTask{fn: fn}
}

func (d *doTask) Next() (task.Signal, bool) {
	if !d.done {
		d.done = true
		d.fn()
	}
	return task.None, false
}

func (d *doTask) Dispose() { d.done = true }

type yieldTask struct {
	signal task.Signal
	steps  int
}

// Yield suspends exactly once on sig
func Yield(sig task.Signal) task.Task {
	return &yieldTask{signal: sig}
}

func (y *yieldTask) Next() (task.Signal, bool) {
	y.steps++
	if y.steps == 1 {
		return y.signal, true
	}
	return task.None, false
}

func (y *yieldTask) Dispose() { y.steps = 2 }
