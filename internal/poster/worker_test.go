package poster

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/broker"
)

func startWorker(t *testing.T, registry Registry, opts ...DelivererOption) (*Queue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	b := broker.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = b.Close() })

	q := NewQueue(b)
	w := NewWorker(q, NewDispatcher(q, registry.Platforms()), NewDeliverer(registry, q, q, opts...), 2)
	w.pollTimeout = time.Second
	w.promoteEvery = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return q, mr
}

func results(t *testing.T, mr *miniredis.Miniredis) []Result {
	t.Helper()
	members, err := mr.Members(ResultsSet)
	if err != nil {
		return nil
	}
	out := make([]Result, 0, len(members))
	for _, m := range members {
		var r Result
		if err := json.Unmarshal([]byte(m), &r); err == nil {
			out = append(out, r)
		}
	}
	return out
}

func TestWorker_FansOutToEveryPlatform(t *testing.T) {
	ok := PublisherFunc(func(ctx context.Context, look *LookSnapshot) error { return nil })
	q, mr := startWorker(t, Registry{PlatformTelegram: ok, PlatformInstagram: ok})

	look := &LookSnapshot{ID: 11, Name: "Look", Gender: "женский", ImageURLs: []string{"http://h/images/a.png"}, TaskID: "task-11"}
	require.NoError(t, q.SubmitLook(context.Background(), look))

	require.Eventually(t, func() bool { return len(results(t, mr)) == 2 }, 5*time.Second, 20*time.Millisecond)

	services := map[Platform]bool{}
	for _, r := range results(t, mr) {
		assert.Equal(t, StatusSuccess, r.Status)
		assert.Equal(t, "task-11", r.TaskID)
		services[r.Service] = true
	}
	assert.True(t, services[PlatformTelegram])
	assert.True(t, services[PlatformInstagram])
}

func TestWorker_RetriesThroughDelayedSet(t *testing.T) {
	var calls atomic.Int32
	flaky := PublisherFunc(func(ctx context.Context, look *LookSnapshot) error {
		if calls.Add(1) == 1 {
			return errors.New("timeout")
		}
		return nil
	})
	q, mr := startWorker(t, Registry{PlatformTelegram: flaky}, WithRetryDelay(50*time.Millisecond))

	look := &LookSnapshot{ID: 12, Name: "Look", Gender: "женский", ImageURLs: []string{"http://h/images/a.png"}, TaskID: "task-12"}
	require.NoError(t, q.SubmitLook(context.Background(), look))

	require.Eventually(t, func() bool { return len(results(t, mr)) == 1 }, 5*time.Second, 20*time.Millisecond)

	res := results(t, mr)[0]
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, int32(2), calls.Load())
}
