package state

import "math"

// ContractState is the counter threaded through one request/response pair.
// It is owned by a single invocation and never persisted.
type ContractState struct {
	Counter uint64 `json:"counter"`
}

// Default returns the state used when the caller supplies none.
func Default() ContractState {
	return ContractState{Counter: 0}
}

// Reset zeroes the counter.
func (s *ContractState) Reset() {
	s.Counter = 0
}

// Increment adds one to the counter, saturating at math.MaxUint64.
// It reports whether the counter actually changed.
func (s *ContractState) Increment() bool {
	if s.Counter == math.MaxUint64 {
		return false
	}
	s.Counter++
	return true
}
