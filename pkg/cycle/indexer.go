package cycle

// Scheduler runs fn once the current unit of work has finished.
type Scheduler interface {
	Defer(fn func())
}

// Indexer assigns an integer to the current unit of work.
type Indexer struct {
	scheduler Scheduler
	index     int
	indexed   bool
}

// NewIndexer creates an indexer whose first unit of work is 0.
// A nil scheduler means Immediate.
func NewIndexer(s Scheduler) *Indexer {
	if s == nil {
		s = Immediate{}
	}
	return &Indexer{scheduler: s, index: -1}
}

// Current returns the index of the running unit of work.
// The first call of a unit increments the counter and schedules the reset.
func (i *Indexer) Current() int {
	if !i.indexed {
		i.indexed = true
		i.index++
		i.scheduler.Defer(i.reset)
	}
	return i.index
}

func (i *Indexer) reset() {
	i.indexed = false
}
