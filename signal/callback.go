package signal

import "sync/atomic"

var nextCallbackID uint64

// NextCallbackID mints a process-unique CallbackID. Package slicelower
// and package sensitivity use this to identify the closures/blocks they
// register, so the per-signal callback set (and the CycleEngine's
// event-queue membership set) can deduplicate by identity rather than by
// value equality.
func NextCallbackID() CallbackID {
	return CallbackID(atomic.AddUint64(&nextCallbackID, 1))
}
