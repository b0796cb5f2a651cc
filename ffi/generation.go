package ffi

import "sync/atomic"

var generation atomic.Uint64

// Generation returns the generation stamped on the most recently loaded table.
// Zero means no table has been loaded in this process.
func Generation() uint64 {
	return generation.Load()
}

// NextGeneration advances the counter and returns the new value.
func NextGeneration() uint64 {
	return generation.Add(1)
}
