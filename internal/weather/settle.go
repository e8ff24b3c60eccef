package weather

import (
	"fmt"
	"sync"
)

// Outcome is the tagged result of one branch of a settle-all join.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the branch succeeded.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// settle runs fn in its own goroutine and records its outcome. A failing or
// panicking branch never affects the others; callers wait on wg for all of them.
func settle[T any](wg *sync.WaitGroup, out *Outcome[T], fn func() (T, error)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				var zero T
				out.Value = zero
				out.Err = fmt.Errorf("provider panic: %v", r)
			}
		}()
		out.Value, out.Err = fn()
	}()
}
