package service

import "sync"

// userLocks hands out one mutex per user email. The CSV tables have no
// transactions, so a read-modify-write sequence on a user's row must hold
// that user's mutex for its whole duration. Engines that mutate the same
// account share a single userLocks instance.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// forEmail returns the mutex guarding the given account, creating it on
// first use. Entries are never evicted; the population is bounded by the
// users table.
func (u *userLocks) forEmail(email string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	lock, ok := u.locks[email]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[email] = lock
	}

	return lock
}
