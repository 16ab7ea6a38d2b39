package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPushAndTryPopRoundtrip(t *testing.T) {
	q := New[int](2)

	_, result := q.TryPop()
	assert.Equal(t, TryPopEmpty, result)

	assert.Equal(t, TryPushOK, q.TryPush(10))
	assert.Equal(t, TryPushOK, q.TryPush(20))

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, TryPushFull, q.TryPush(30))

	v, result := q.TryPop()
	require.Equal(t, TryPopOK, result)
	assert.Equal(t, 10, v)

	v, result = q.TryPop()
	require.Equal(t, TryPopOK, result)
	assert.Equal(t, 20, v)

	_, result = q.TryPop()
	assert.Equal(t, TryPopEmpty, result)
}

func TestClosePreventsFuturePushes(t *testing.T) {
	q := New[int](1)

	q.Close()

	assert.True(t, q.IsClosed())
	assert.Equal(t, TryPushClosed, q.TryPush(1))

	ok := q.Push(2)
	assert.False(t, ok)

	_, result := q.TryPop()
	assert.Equal(t, TryPopClosed, result)
}

func TestFIFOOrderUpToCapacity(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, TryPushOK, q.TryPush(i))
	}
	assert.Equal(t, TryPushFull, q.TryPush(99))

	for i := 0; i < 4; i++ {
		v, result := q.TryPop()
		require.Equal(t, TryPopOK, result)
		assert.Equal(t, i, v)
	}
}

func TestItemsBufferedBeforeCloseRemainDrainable(t *testing.T) {
	q := New[int](2)
	assert.True(t, q.Push(1))
	assert.True(t, q.Push(2))

	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestBlockingPushWakesOnPop(t *testing.T) {
	q := New[int](1)
	require.True(t, q.Push(1))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.True(t, q.Push(2))
	}()

	time.Sleep(20 * time.Millisecond)
	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	wg.Wait()
	assert.Equal(t, 1, q.Len())
}

func TestCloseWakesBlockedPush(t *testing.T) {
	q := New[int](1)
	require.True(t, q.Push(1))

	done := make(chan bool, 1)
	go func() {
		done <- q.Push(2)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("push did not wake up after close")
	}
}
