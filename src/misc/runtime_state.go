package misc

import "sync"

var (
	runtimeVerbosity     = 0
	runtimeVerbosityLock sync.RWMutex
)

// SetRuntimeVerbosity updates the global logging verbosity.
func SetRuntimeVerbosity(verbosity int) {
	runtimeVerbosityLock.Lock()
	defer runtimeVerbosityLock.Unlock()

	runtimeVerbosity = verbosity
}

// RuntimeVerbosity returns the currently configured logging verbosity.
func RuntimeVerbosity() int {
	runtimeVerbosityLock.RLock()
	defer runtimeVerbosityLock.RUnlock()

	return runtimeVerbosity
}
