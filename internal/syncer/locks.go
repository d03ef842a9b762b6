package syncer

import (
	"context"
	"sync"
)

// supplierLocks serializes synchronizations of the same supplier within the process.
type supplierLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch      chan struct{}
	waiters int
}

func newSupplierLocks() *supplierLocks {
	return &supplierLocks{
		locks: make(map[string]*keyLock),
	}
}

// lock blocks until supplier is free or ctx is done. Returned func releases the lock.
func (l *supplierLocks) lock(ctx context.Context, supplierID string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[supplierID]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[supplierID] = kl
	}
	kl.waiters++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(supplierID, kl, false)
		return nil, ctx.Err()
	}

	return func() { l.release(supplierID, kl, true) }, nil
}

func (l *supplierLocks) release(supplierID string, kl *keyLock, held bool) {
	if held {
		<-kl.ch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	kl.waiters--
	if kl.waiters == 0 {
		delete(l.locks, supplierID)
	}
}
