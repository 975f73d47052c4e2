package notifications

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register("u1", nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline("u1"))

	second, err := hub.Register("u1", nil)
	require.NoError(t, err)

	hub.UnregisterClient(client)
	assert.True(t, hub.IsOnline("u1"))

	hub.UnregisterClient(second)
	assert.False(t, hub.IsOnline("u1"))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register("u1", nil)
		require.NoError(t, err)
	}

	_, err := hub.Register("u1", nil)
	assert.Error(t, err)

	// other users are unaffected
	_, err = hub.Register("u2", nil)
	assert.NoError(t, err)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register("u1", nil)
	require.NoError(t, err)
	other, err := hub.Register("u2", nil)
	require.NoError(t, err)

	hub.Broadcast("u1", "hello")

	select {
	case msg := <-client.Send:
		assert.Equal(t, "hello", string(msg))
	default:
		t.Fatal("expected a message for u1")
	}
	select {
	case <-other.Send:
		t.Fatal("u2 must not receive u1's message")
	default:
	}

	hub.BroadcastAll("all")
	assert.Equal(t, "all", string(<-client.Send))
	assert.Equal(t, "all", string(<-other.Send))
}

func TestHub_ShutdownClosesSendChannels(t *testing.T) {
	hub := NewHub()

	first, err := hub.Register("u1", nil)
	require.NoError(t, err)
	second, err := hub.Register("u2", nil)
	require.NoError(t, err)

	// senders racing the shutdown must not panic; TrySend absorbs the
	// closed channel and drops the message
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			first.TrySend([]byte("tick"))
		}
	}()

	require.NoError(t, hub.Shutdown(context.Background()))
	wg.Wait()

	assert.False(t, hub.IsOnline("u1"))
	assert.False(t, hub.IsOnline("u2"))

	drained := func(c *Client) bool {
		for {
			_, ok := <-c.Send
			if !ok {
				return true
			}
		}
	}
	assert.True(t, drained(first))
	assert.True(t, drained(second))
}

func TestHub_StartWiring(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	client, err := hub.Register("u1", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier(rdb)
	require.NoError(t, hub.StartWiring(ctx, n))

	// give the subscriber a moment to attach
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, n.PublishUser(ctx, "u1", `{"type":"post_created"}`))

	assert.Eventually(t, func() bool {
		select {
		case msg := <-client.Send:
			return string(msg) == `{"type":"post_created"}`
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishUser(context.Background(), "u1", "payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), nil))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "feed:user:kp_123", UserChannel("kp_123"))
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	var received int32
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, _ string) {
		atomic.AddInt32(&received, 1)
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, n.PublishBroadcast(context.Background(), "one"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) == 1
	}, testEventuallyTimeout, testPollInterval)

	cancel()
	time.Sleep(50 * time.Millisecond)
	_ = n.PublishBroadcast(context.Background(), "two")
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) > 1
	}, 20*testPollInterval, testPollInterval)
}
