package status

import (
	"sort"
	"sync"
)

// The extension table holds user-registered severity statuses keyed by rank.
// Built-ins are a closed set; extensions must declare a unique rank so the
// total order stays unambiguous.
var (
	extMu  sync.RWMutex
	extSet = map[int]Status{}
)

func builtins() []Status {
	return []Status{Default, Success, Warning, Error, Exception, Skipped, Aborted}
}

// Register adds a user-defined severity status with the given rank and color.
// It fails with a *RegistrationError when the rank or name collides with a
// built-in or previously registered status.
func Register(name string, rank int, color Color) (Status, error) {
	extMu.Lock()
	defer extMu.Unlock()

	for _, b := range builtins() {
		if b.name == name {
			return Status{}, &RegistrationError{Name: name, Rank: rank, Conflict: b.name}
		}
		if b.severity && b.rank == rank {
			return Status{}, &RegistrationError{Name: name, Rank: rank, Conflict: b.name}
		}
	}
	if existing, ok := extSet[rank]; ok {
		return Status{}, &RegistrationError{Name: name, Rank: rank, Conflict: existing.name}
	}
	for _, existing := range extSet {
		if existing.name == name {
			return Status{}, &RegistrationError{Name: name, Rank: rank, Conflict: existing.name}
		}
	}

	s := Status{name: name, rank: rank, severity: true, color: color}
	extSet[rank] = s
	return s, nil
}

// ResetExtensions clears the extension table. Intended for tests and for
// hosts that re-initialize the session.
func ResetExtensions() {
	extMu.Lock()
	defer extMu.Unlock()
	extSet = map[int]Status{}
}

// All returns every known status: built-ins first, then extensions ordered by
// rank.
func All() []Status {
	extMu.RLock()
	defer extMu.RUnlock()

	out := builtins()
	ranks := make([]int, 0, len(extSet))
	for rank := range extSet {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)
	for _, rank := range ranks {
		out = append(out, extSet[rank])
	}
	return out
}
