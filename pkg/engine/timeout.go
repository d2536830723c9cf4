package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// EvalTimeout is the default limit for one evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a board runs longer than the engine's limit.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned to a caller whose evaluation finished after a
	// newer one had started.
	ErrSuperseded = errors.New("evaluation superseded by a newer board")
)

// outcome carries one sandbox run back to Evaluate.
type outcome struct {
	result *Result
	errors []EvalError
	err    error
}

// runs numbers evaluations so only the newest may report, and holds the
// time limit each one gets.
type runs struct {
	mu     sync.Mutex
	latest uint64
	limit  time.Duration
}

func (r *runs) setLimit(d time.Duration) {
	r.mu.Lock()
	r.limit = d
	r.mu.Unlock()
}

// start hands out a ticket for a new run along with its limit.
func (r *runs) start() (uint64, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest++
	return r.latest, r.limit
}

func (r *runs) isLatest(ticket uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ticket == r.latest
}

// await blocks until the run holding ticket reports on ch or limit passes.
// A run that outlives its limit is not stopped; ch must be buffered so its
// late send does not block, and nobody reads it.
func (r *runs) await(ch <-chan outcome, ticket uint64, limit time.Duration) (*Result, []EvalError, error) {
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case o := <-ch:
		if !r.isLatest(ticket) {
			return nil, nil, ErrSuperseded
		}
		return o.result, o.errors, o.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
	}
}
