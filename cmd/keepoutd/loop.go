// cmd/keepoutd/loop.go
package main

import (
	"context"
	"time"
)

// eventLoop is a single-goroutine cooperative executor implementing
// hal.Scheduler. Every task (poller ticks, console commands, reload
// notifications) runs to completion on the loop goroutine, matching the
// firmware's run-to-completion handler model. Nothing here may block.
type eventLoop struct {
	tasks chan func()
}

func newEventLoop() *eventLoop {
	return &eventLoop{tasks: make(chan func(), 64)}
}

// Schedule arms a delayed task. The timer goroutine only enqueues; the task
// body executes on the loop.
func (l *eventLoop) Schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, func() {
		l.tasks <- task
	})
}

// Submit enqueues a task for immediate execution on the loop.
func (l *eventLoop) Submit(task func()) {
	l.tasks <- task
}

// Run drains tasks until the context is cancelled.
func (l *eventLoop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-l.tasks:
			task()
		}
	}
}
