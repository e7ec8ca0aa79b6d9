/*
Package cycle groups mutations into units of work.

An Indexer hands out one integer per unit of work: every call to Current
between two boundaries returns the same value. Where a unit of work ends is
decided by a Scheduler, which runs a deferred reset once the host has finished
the synchronous work triggered by one external event.

Three schedulers are provided:

  - Immediate: every call is its own unit of work. The safe default.
  - Manual: the host calls Flush to mark the boundary explicitly.
  - Loop: a cooperative task loop. Each task, and everything it triggers
    synchronously, is one unit of work.

None of the types in this package are safe for concurrent use except the
Post, Call and Run entry points of Loop, which exist to serialize work coming
from other goroutines.
*/
package cycle
