package schedule

import (
	"sync"
	"time"
)

// Scheduler creates deferred tasks that run through a Poster.
//
// Scheduler is safe for concurrent use.
type Scheduler struct {
	poster Poster

	mu    sync.Mutex
	seq   uint64
	tasks map[uint64]*Task
}

// New creates a scheduler that posts fired tasks to p.
func New(p Poster) *Scheduler {
	return &Scheduler{
		poster: p,
		tasks:  make(map[uint64]*Task),
	}
}

// After schedules fn to run on the poster's goroutine after d.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.mu.Lock()
	s.seq++
	t := &Task{id: s.seq, sched: s, fn: fn}
	s.tasks[t.id] = t
	s.mu.Unlock()

	t.mu.Lock()
	t.timer = time.AfterFunc(d, t.fire)
	t.mu.Unlock()
	return t
}

// Pending returns the number of tasks that have neither run nor been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
	}
}

func (s *Scheduler) forget(id uint64) {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
}

// TaskState is the lifecycle state of a Task.
type TaskState uint8

const (
	// TaskPending means the task is waiting for its timer or for the loop.
	TaskPending TaskState = iota
	// TaskDone means the task ran.
	TaskDone
	// TaskCancelled means the task was cancelled before it ran.
	TaskCancelled
)

// String returns a human-readable state name.
func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskDone:
		return "done"
	case TaskCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is a handle to deferred work.
type Task struct {
	id    uint64
	sched *Scheduler
	fn    func()
	timer *time.Timer

	mu    sync.Mutex
	state TaskState
}

// Cancel prevents the task from running. It returns false if the task
// already ran or was cancelled.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	if t.state != TaskPending {
		t.mu.Unlock()
		return false
	}
	t.state = TaskCancelled
	timer := t.timer
	t.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	t.sched.forget(t.id)
	return true
}

// State returns the task state.
func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// fire runs on the timer goroutine and hands the task to the poster.
func (t *Task) fire() {
	if t.State() != TaskPending {
		return
	}
	if !t.sched.poster.Post(t.run) {
		t.Cancel()
	}
}

// run executes on the poster's goroutine.
func (t *Task) run() {
	t.mu.Lock()
	if t.state != TaskPending {
		t.mu.Unlock()
		return
	}
	t.state = TaskDone
	t.mu.Unlock()

	t.sched.forget(t.id)
	if t.fn != nil {
		t.fn()
	}
}
