package client

import "sync/atomic"

// Sequence hands out monotonic tokens for supersedable fetches. A view
// that re-issues a request on every dependency change takes a token
// per request and discards any response whose token has gone stale, so
// a slow earlier response can never overwrite newer state.
type Sequence struct {
	current atomic.Uint64
}

// Next marks a new in-flight request and returns its token.
func (s *Sequence) Next() uint64 {
	return s.current.Add(1)
}

// Stale reports whether the given token has been superseded.
func (s *Sequence) Stale(token uint64) bool {
	return token != s.current.Load()
}
