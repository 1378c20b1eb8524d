/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import "sync"

// serialQueue runs submitted tasks one at a time, in submission order, on a
// single goroutine started with the first task.
type serialQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []func()
	started bool
	closed  bool
	done    chan struct{}
}

func newSerialQueue() *serialQueue {
	q := &serialQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// submit enqueues task. It reports false once the queue is closed.
func (q *serialQueue) submit(task func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.tasks = append(q.tasks, task)
	if !q.started {
		q.started = true
		go q.run()
	}
	q.cond.Signal()
	return true
}

func (q *serialQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
	}
}

// close stops accepting tasks and waits for the queued ones to finish.
func (q *serialQueue) close() {
	q.mu.Lock()
	q.closed = true
	started := q.started
	q.cond.Broadcast()
	q.mu.Unlock()

	if started {
		<-q.done
	}
}
