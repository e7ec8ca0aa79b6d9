package cycle

// Immediate runs deferred functions right away.
type Immediate struct{}

// Defer calls fn immediately.
func (Immediate) Defer(fn func()) {
	fn()
}

// Manual queues deferred functions until Flush.
type Manual struct {
	queue []func()
}

// Defer queues fn for the next Flush.
func (m *Manual) Defer(fn func()) {
	m.queue = append(m.queue, fn)
}

// Flush ends the current unit of work. Functions deferred while flushing run
// in the same flush.
func (m *Manual) Flush() {
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue = m.queue[1:]
		fn()
	}
}

// Pending reports how many deferred functions are queued.
func (m *Manual) Pending() int {
	return len(m.queue)
}
