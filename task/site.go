package task

import "runtime/debug"

// Site binds at most one task to an owner and advances it on matching phases
//
// Invariants:
//   - Binding a new task always disposes the previous one first
//   - Advance takes at most one step of the bound task per call
//   - A task that completes or faults is unbound
//
// A Site is not safe for concurrent use; the host loop owns it
type Site struct {
	current Task
	last    Signal

	// Rebinding requested by the running task itself is applied after its step
	stepping   bool
	hasPending bool
	pending    Task

	steps uint64
}

// NewSite returns an idle site
func NewSite() *Site {
	return &Site{}
}

// SetTask cancels the bound task, then binds t without running it
// Passing nil is equivalent to Cancel
func (s *Site) SetTask(t Task) {
	if s.stepping {
		s.deferBinding(t)
		return
	}
	s.Cancel()
	s.current = t
	s.last = None
}

// Cancel disposes the bound task, running its pending cleanup, and unbinds it
// Idempotent when nothing is bound
func (s *Site) Cancel() {
	if s.stepping {
		s.deferBinding(nil)
		return
	}
	t := s.current
	if t == nil {
		return
	}
	s.current = nil
	s.last = None
	t.Dispose()
}

// Advance resumes the bound task for one step if its last signal matches phase
// Returns a *FaultError when the body panicked; the task is then already unbound
func (s *Site) Advance(phase Signal) (err error) {
	t := s.current
	if t == nil || s.stepping || !s.last.Matches(phase) {
		return nil
	}

	s.stepping = true
	defer func() {
		s.stepping = false
		if r := recover(); r != nil {
			err = &FaultError{Phase: phase, Value: r, Stack: debug.Stack()}
			if s.current == t {
				s.current = nil
				s.last = None
			}
			t.Dispose()
		}
		s.applyPending()
	}()

	sig, ok := t.Next()
	s.steps++
	if !ok {
		s.current = nil
		s.last = None
		t.Dispose()
		return nil
	}
	s.last = sig
	return nil
}

// Busy reports whether a task is bound
func (s *Site) Busy() bool {
	return s.current != nil
}

// Last returns the signal the bound task is suspended on
func (s *Site) Last() Signal {
	return s.last
}

// Steps returns the number of steps taken since creation
func (s *Site) Steps() uint64 {
	return s.steps
}

func (s *Site) deferBinding(t Task) {
	if s.hasPending && s.pending != nil {
		s.pending.Dispose()
	}
	s.hasPending = true
	s.pending = t
}

func (s *Site) applyPending() {
	if !s.hasPending {
		return
	}
	t := s.pending
	s.hasPending = false
	s.pending = nil
	s.SetTask(t)
}
