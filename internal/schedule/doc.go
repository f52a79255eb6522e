// Package schedule runs deferred work on the host's UI goroutine.
//
// The input dispatcher is single-threaded. Timers fire on their own
// goroutines, so a Scheduler never calls a task directly: it posts the
// task to a Poster, usually a Loop drained by the host's event loop, and
// the task runs there between key events.
//
//	loop := schedule.NewLoop(64)
//	sched := schedule.New(loop)
//	task := sched.After(500*time.Millisecond, func() {
//	    dispatcher.SetMode(mode.Normal)
//	})
//	...
//	task.Cancel()
//
// A cancelled task never runs, even when its timer already fired and the
// task is waiting in the loop queue.
package schedule
