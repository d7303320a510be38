// Package debounce provides cancellable delayed tasks.
//
// A Debouncer holds at most one pending task. Every Trigger supersedes the previous
// one, and a superseded task never runs, even when its timer has already fired and is
// waiting to acquire the debouncer lock. Only the task of the last Trigger in a burst
// executes, once the quiet interval has elapsed.
//
// Timers come from a Scheduler. RealTime wraps time.AfterFunc; Manual is a virtual
// clock advanced explicitly, which makes debounce behaviour deterministic in tests:
//
//	clock := debounce.NewManual()
//	d := debounce.New(clock, 300*time.Millisecond)
//	d.Trigger(validate)
//	d.Trigger(validate)
//	clock.Advance(300 * time.Millisecond) // validate runs once
package debounce
