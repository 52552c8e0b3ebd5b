/*
	Fan-out/join for wave scheduling.

	A Collector runs independent units of work concurrently and joins
	them at a barrier.  Every spawned unit runs to completion even when
	a sibling fails; failures are gathered and the first one repanics
	out of Join after the barrier.  This is deliberately not a free
	running worker pool: the join *is* the synchronization point the
	orchestration waves are built on.
*/
package parallel

import (
	"sync"

	"github.com/spacemonkeygo/errors/try"
)

type Collector struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	failures []error
}

// Spawn starts one unit.  Panics inside the unit are captured, not
// propagated to the spawning goroutine.
func (c *Collector) Spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		try.Do(fn).CatchAll(func(err error) {
			c.mu.Lock()
			c.failures = append(c.failures, err)
			c.mu.Unlock()
		}).Done()
	}()
}

/*
	Join blocks until every spawned unit has finished, then repanics
	the first captured failure, if any.  Sibling failures beyond the
	first are not lost -- they were already reported at capture time by
	whatever the unit wrapped itself in -- but only one failure can win
	the unwind.
*/
func (c *Collector) Join() {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.failures) > 0 {
		panic(c.failures[0])
	}
}

// Failed reports whether any unit has failed so far.  Only meaningful
// after Join would have returned, or between waves.
func (c *Collector) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures) > 0
}
