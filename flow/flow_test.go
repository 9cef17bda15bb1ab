package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/task"
)

// script is a scripted task that records steps and cleanup runs
type script struct {
	steps    int
	cleanups int
}

func (p *script) make(sigs ...task.Signal) *task.Coroutine {
	return task.Func(func(yield func(task.Signal) bool) {
		defer func() { p.cleanups++ }()
		for _, s := range sigs {
			p.steps++
			if !yield(s) {
				return
			}
		}
	})
}

// drain steps t until completion and returns the yielded signals
func drain(t *testing.T, tk task.Task, limit int) []task.Signal {
	t.Helper()
	var out []task.Signal
	for i := 0; i < limit; i++ {
		sig, ok := tk.Next()
		if !ok {
			return out
		}
		out = append(out, sig)
	}
	t.Fatalf("task did not complete within %d steps", limit)
	return nil
}

func fixedClock(step time.Duration) Clock {
	return ClockFunc(func() time.Duration { return step })
}

func TestWaitYieldCount(t *testing.T) {
	w := Wait(fixedClock(250*time.Millisecond), time.Second, task.LateUpdate)
	sigs := drain(t, w, 16)
	assert.Len(t, sigs, 4)
	for _, s := range sigs {
		assert.Equal(t, task.LateUpdate, s)
	}

	_, ok := w.Next()
	assert.False(t, ok, "completed wait stays completed")
}

func TestWaitZeroDuration(t *testing.T) {
	w := Wait(fixedClock(time.Millisecond), 0, task.Update)
	assert.Empty(t, drain(t, w, 4))
}

func TestWaitReadsClockPerResume(t *testing.T) {
	deltas := []time.Duration{100 * time.Millisecond, 600 * time.Millisecond, 500 * time.Millisecond}
	i := 0
	clock := ClockFunc(func() time.Duration {
		d := deltas[i]
		i++
		return d
	})
	sigs := drain(t, Wait(clock, time.Second, task.Update), 8)
	// 0 -> yield, 100ms -> yield, 700ms -> yield, 1200ms -> stop
	assert.Len(t, sigs, 3)
}

func TestExecuteWhileStopsAndDisposes(t *testing.T) {
	var p script
	allowed := 2
	w := ExecuteWhile(p.make(task.Update, task.Update, task.Update, task.Update), func() bool {
		allowed--
		return allowed >= 0
	})

	sigs := drain(t, w, 10)
	assert.Len(t, sigs, 2)
	assert.Equal(t, 2, p.steps, "no inner step once the predicate is false")
	assert.Equal(t, 1, p.cleanups, "inner cleanup runs exactly once")

	w.Dispose()
	assert.Equal(t, 1, p.cleanups)
}

func TestExecuteWhileFalseImmediately(t *testing.T) {
	var p script
	w := ExecuteWhile(p.make(task.Update), func() bool { return false })
	assert.Empty(t, drain(t, w, 2))
	assert.Equal(t, 0, p.steps)
	assert.Equal(t, 0, p.cleanups, "a body that never started has no open scope")
}

func TestExecuteWhileInnerCompletes(t *testing.T) {
	var p script
	w := ExecuteWhile(p.make(task.AnimatorMove, task.LateUpdate), func() bool { return true })
	assert.Equal(t, []task.Signal{task.AnimatorMove, task.LateUpdate}, drain(t, w, 10))
	assert.Equal(t, 1, p.cleanups)
}

func TestRepeatWhileNeverStarts(t *testing.T) {
	created := 0
	r := RepeatWhile(func() task.Task {
		created++
		return new(script).make()
	}, func() bool { return false })

	assert.Empty(t, drain(t, r, 2))
	assert.Equal(t, 0, created)
}

func TestRepeatWhileFreshInstances(t *testing.T) {
	var scripts []*script
	runs := 0
	r := RepeatWhile(func() task.Task {
		p := &script{}
		scripts = append(scripts, p)
		return p.make(task.Update, task.LateUpdate)
	}, func() bool {
		runs++
		return runs <= 3
	})

	sigs := drain(t, r, 20)
	assert.Len(t, sigs, 6)
	require.Len(t, scripts, 3)
	for _, p := range scripts {
		assert.Equal(t, 2, p.steps)
		assert.Equal(t, 1, p.cleanups)
	}
}

func TestRepeatWhileDisposeMidInstance(t *testing.T) {
	var p script
	r := RepeatWhile(func() task.Task { return p.make(task.Update, task.Update) }, func() bool { return true })
	_, ok := r.Next()
	require.True(t, ok)
	r.Dispose()
	assert.Equal(t, 1, p.cleanups)
}

func TestExecuteOrSkipEmptyInner(t *testing.T) {
	s := ExecuteOrSkip(new(script).make(), task.LateUpdate)
	assert.Equal(t, []task.Signal{task.LateUpdate}, drain(t, s, 4))
}

func TestExecuteOrSkipPassThrough(t *testing.T) {
	var p script
	s := ExecuteOrSkip(p.make(task.Update, task.AnimatorMove), task.LateUpdate)
	assert.Equal(t, []task.Signal{task.Update, task.AnimatorMove}, drain(t, s, 4))
	assert.Equal(t, 1, p.cleanups)
}

func TestConcurrentFollowsPrimaryCadence(t *testing.T) {
	var primary, secondary script
	c := Concurrent(
		primary.make(task.Update, task.LateUpdate, task.Update),
		secondary.make(task.AnimatorMove),
	)

	sigs := drain(t, c, 10)
	assert.Equal(t, []task.Signal{task.Update, task.LateUpdate, task.Update}, sigs,
		"only primary signals are observed")
	assert.Equal(t, 1, secondary.steps)
	assert.Equal(t, 1, secondary.cleanups)
	assert.Equal(t, 1, primary.cleanups)
}

func TestConcurrentDisposesUnfinishedSecondary(t *testing.T) {
	var primary, secondary script
	c := Concurrent(
		primary.make(task.Update),
		secondary.make(task.Update, task.Update, task.Update),
	)

	assert.Len(t, drain(t, c, 10), 1)
	assert.Equal(t, 1, secondary.steps)
	assert.Equal(t, 1, secondary.cleanups)
}

func TestSequence(t *testing.T) {
	var order []string
	s := Sequence(
		func() task.Task { return Do(func() { order = append(order, "a") }) },
		func() task.Task { return Yield(task.LateUpdate) },
		func() task.Task { return Do(func() { order = append(order, "b") }) },
		func() task.Task { return Yield(task.Update) },
	)

	sig, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, task.LateUpdate, sig)
	assert.Equal(t, []string{"a"}, order)

	sig, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, task.Update, sig)
	assert.Equal(t, []string{"a", "b"}, order)

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestWaitUntil(t *testing.T) {
	n := 0
	w := WaitUntil(func() bool { return n >= 3 }, task.AnimatorMove)
	for {
		_, ok := w.Next()
		if !ok {
			break
		}
		n++
	}
	assert.Equal(t, 3, n)
}

func TestCompositionUnderSite(t *testing.T) {
	var inner script
	keepGoing := true
	site := task.NewSite()
	site.SetTask(ExecuteOrSkip(ExecuteWhile(inner.make(task.Update, task.Update, task.Update), func() bool {
		return keepGoing
	}), task.Update))

	require.NoError(t, site.Advance(task.Update))
	require.NoError(t, site.Advance(task.Update))
	keepGoing = false
	require.NoError(t, site.Advance(task.Update))

	assert.Equal(t, 2, inner.steps)
	assert.Equal(t, 1, inner.cleanups)
	assert.False(t, site.Busy())
}

func TestNestedFaultReachesSite(t *testing.T) {
	cleanups, finals := 0, 0
	failing := task.Func(func(yield func(task.Signal) bool) {
		defer func() { cleanups++ }()
		if !yield(task.Update) {
			return
		}
		panic("boom")
	}).Finally(func() { finals++ })

	var secondary script
	site := task.NewSite()
	site.SetTask(Concurrent(
		ExecuteWhile(failing, func() bool { return true }),
		secondary.make(task.Update, task.Update, task.Update),
	))

	require.NoError(t, site.Advance(task.Update))
	err := site.Advance(task.Update)

	var fault *task.FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "boom", fault.Value)
	assert.False(t, site.Busy())
	assert.Equal(t, 1, cleanups)
	assert.Equal(t, 1, finals)
	assert.Equal(t, 1, secondary.cleanups, "sibling disposed with the faulted task")

	// Unbound site ignores further phases
	require.NoError(t, site.Advance(task.Update))
	assert.Equal(t, 1, cleanups)
	assert.Equal(t, 1, finals)
}
