// Package task provides resumable units of work and the per-actor site that drives them.
//
// A Task suspends by returning the Signal it wants to resume on. Nothing runs
// on its own: the host loop calls Site.Advance once per phase per tick and the
// site resumes the bound task for exactly one step when the phase matches.
//
// Bodies are usually written as range-over-func sequences and wrapped with Func:
//
//	t := task.Func(func(yield func(task.Signal) bool) {
//		defer release()
//		for !arrived() {
//			if !yield(task.Update) {
//				return
//			}
//		}
//	})
//
// Deferred calls in a body are its scoped cleanup. They run when the body
// finishes or, if the body already started, when the task is disposed.
package task

import "iter"

// Task is a resumable unit of work
//
// Next resumes the task for exactly one step and returns the signal it suspended
// on. ok is false once the task has completed; the step that completes it
// yields nothing. Dispose runs any pending cleanup and must be idempotent and
// safe to call after completion.
type Task interface {
	Next() (sig Signal, ok bool)
	Dispose()
}

// Coroutine adapts a range-over-func body into a Task
// The body is not started until the first Next call
type Coroutine struct {
	body    iter.Seq[Signal]
	next    func() (Signal, bool)
	stop    func()
	finally []func()
	ended   bool
}

// Func wraps body as a lazily started task
func Func(body iter.Seq[Signal]) *Coroutine {
	return &Coroutine{body: body}
}

// Finally attaches cleanup owned by the task itself
// It runs exactly once when the task ends, whether by completion or by Dispose,
// and also when the body never started. Hooks run in reverse attachment order
func (c *Coroutine) Finally(fn func()) *Coroutine {
	c.finally = append(c.finally, fn)
	return c
}

// Next implements Task
func (c *Coroutine) Next() (Signal, bool) {
	if c.ended {
		return None, false
	}
	if c.next == nil {
		c.next, c.stop = iter.Pull(c.body)
	}

	sig, ok := c.next()
	if !ok {
		c.end()
		return None, false
	}
	return sig, true
}

// Dispose implements Task
func (c *Coroutine) Dispose() {
	if !c.ended {
		c.end()
	}
}

func (c *Coroutine) end() {
	c.ended = true
	hooks := c.finally
	c.finally = nil

	defer func() {
		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i]()
		}
	}()

	// stop unwinds a suspended body; deferred calls inside it run here
	if c.stop != nil {
		c.stop()
	}
}

// Run drives sub to completion from inside a body, re-yielding every signal
// sub is always disposed. Returns false when the enclosing body was stopped
// and must return immediately
func Run(yield func(Signal) bool, sub Task) bool {
	defer sub.Dispose()
	for {
		sig, ok := sub.Next()
		if !ok {
			return true
		}
		if !yield(sig) {
			return false
		}
	}
}

