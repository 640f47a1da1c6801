package registry

import "sync"

// The session is the process-wide registry most hosts use. It has an
// explicit lifecycle instead of hidden singleton initialization so tests and
// embedding hosts can start from a clean slate.
var (
	sessionMu sync.Mutex
	session   *Registry
)

// Session returns the process-wide registry, initializing it on first use.
func Session() *Registry {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if session == nil {
		session = New()
	}
	return session
}

// ResetSession discards the process-wide registry. The next Session call
// starts empty.
func ResetSession() {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	session = nil
}
