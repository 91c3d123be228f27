package sapling

import "slices"

// TaskFunc is a scheduled callback. dt is the frame delta for tasks without
// a delay, and the time since the previous run for delayed tasks.
type TaskFunc func(dt float64)

// Task is a named callback owned by a TaskManager.
type Task struct {
	name      string
	fn        TaskFunc
	delay     float64
	remaining float64
	paused    bool
}

// Name returns the name the task was registered under.
func (t *Task) Name() string { return t.name }

// Delay returns the interval between runs in seconds. Zero means every frame.
func (t *Task) Delay() float64 { return t.delay }

// SetDelay changes the interval and restarts the countdown.
func (t *Task) SetDelay(d float64) {
	if d < 0 {
		d = 0
	}
	t.delay = d
	t.remaining = d
}

// Pause stops the task from running until Resume is called. A paused
// delayed task does not count down.
func (t *Task) Pause() { t.paused = true }

// Resume undoes Pause.
func (t *Task) Resume() { t.paused = false }

// Paused reports whether the task is paused.
func (t *Task) Paused() bool { return t.paused }

// TaskManager runs named callbacks once per Execute, in the order they were
// added. Not safe for concurrent use.
type TaskManager struct {
	tasks map[string]*Task
	order []string
}

// NewTaskManager creates an empty TaskManager.
func NewTaskManager() *TaskManager {
	return &TaskManager{tasks: make(map[string]*Task)}
}

// Add registers fn under name, replacing any task of the same name. A
// positive delay runs fn at most once per delay seconds.
func (m *TaskManager) Add(name string, delay float64, fn TaskFunc) *Task {
	if fn == nil {
		panic("sapling: nil task func")
	}
	m.Remove(name)
	t := &Task{name: name, fn: fn}
	t.SetDelay(delay)
	m.tasks[name] = t
	m.order = append(m.order, name)
	return t
}

// Remove unregisters the named task and reports whether it existed.
func (m *TaskManager) Remove(name string) bool {
	if _, ok := m.tasks[name]; !ok {
		return false
	}
	delete(m.tasks, name)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == name })
	return true
}

// Get returns the named task.
func (m *TaskManager) Get(name string) (*Task, bool) {
	t, ok := m.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (m *TaskManager) Len() int { return len(m.tasks) }

// Execute advances every task by dt seconds and runs the ones that are due.
// Tasks added during Execute first run on the next call; tasks removed
// during Execute do not run.
func (m *TaskManager) Execute(dt float64) {
	for _, name := range slices.Clone(m.order) {
		t, ok := m.tasks[name]
		if !ok || t.paused {
			continue
		}
		if t.delay <= 0 {
			t.fn(dt)
			continue
		}
		t.remaining -= dt
		if t.remaining <= 0 {
			elapsed := t.delay - t.remaining
			t.remaining += t.delay
			t.fn(elapsed)
		}
	}
}
