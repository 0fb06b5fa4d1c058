package ws

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	failWith error
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc, <-chan struct{}) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	return hub, cancel, done
}

func TestHub_BroadcastsToClients(t *testing.T) {
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)

	hub.Publish([]byte(`{"type":"stock_update"}`))

	assert.Eventually(t, func() bool { return a.received() == 1 && b.received() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHub_DropsFailingClient(t *testing.T) {
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	bad := &fakeConn{failWith: errors.New("broken pipe")}
	good := &fakeConn{}
	hub.Register(bad)
	hub.Register(good)

	hub.Publish([]byte("x"))

	assert.Eventually(t, func() bool { return bad.isClosed() && hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return good.received() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHub_UnregisterAndShutdown(t *testing.T) {
	hub, cancel, done := startHub(t)

	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)
	hub.Unregister(a)

	assert.Eventually(t, func() bool { return a.isClosed() && hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.True(t, b.isClosed())
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishDoesNotBlockWithoutRunner(t *testing.T) {
	hub := NewHub(zap.NewNop())
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish([]byte("x"))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
}

func TestHub_RegisterAndUnregisterAfterShutdownReturn(t *testing.T) {
	hub, cancel, done := startHub(t)

	live := &fakeConn{}
	hub.Register(live)
	cancel()
	<-done

	late := &fakeConn{}
	returned := make(chan struct{})
	go func() {
		hub.Unregister(live)
		hub.Register(late)
		hub.Unregister(late)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked after hub shutdown")
	}
	assert.True(t, live.isClosed())
	assert.True(t, late.isClosed())
	assert.Equal(t, 0, hub.ClientCount())
}
