package command

import (
	"sort"
	"sync"
)

// LockRegistry hands out one mutex per account number so that any two
// operations that read-then-write the same balance are serialised. A single
// registry is shared by every command service in the process. Locks are
// created on first use and never released; the set of account numbers in a
// single process stays small enough that this is not a concern.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*sync.Mutex)}
}

func (l *LockRegistry) get(accountNumber string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[accountNumber]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountNumber] = m
	}
	return m
}

// Acquire locks every given account in lexical account-number order, so two
// transfers moving money in opposite directions between the same pair can
// never deadlock. Empty numbers and duplicates are skipped. The returned
// function releases the locks in reverse order.
func (l *LockRegistry) Acquire(accountNumbers ...string) (release func()) {
	unique := make([]string, 0, len(accountNumbers))
	seen := make(map[string]bool, len(accountNumbers))
	for _, n := range accountNumbers {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, n := range unique {
		m := l.get(n)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
