package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSupplierLocksSerialize(t *testing.T) {
	locks := newSupplierLocks()

	var (
		active    int32
		maxActive int32
		wg        sync.WaitGroup
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locks.lock(context.Background(), "supplier")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			current := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if current <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, current) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive, "only one holder should be active at once")
	assert.Empty(t, locks.locks, "released locks should be removed")
}

func TestUnitSupplierLocksIndependent(t *testing.T) {
	locks := newSupplierLocks()

	unlockA, err := locks.lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlockB, err := locks.lock(ctx, "b")
	require.NoError(t, err, "other supplier shouldn't be blocked")
	unlockB()
}

func TestUnitSupplierLocksCanceled(t *testing.T) {
	locks := newSupplierLocks()

	unlock, err := locks.lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = locks.lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded, "should stop waiting when context is done")

	unlock()
	assert.Empty(t, locks.locks, "released locks should be removed")
}
