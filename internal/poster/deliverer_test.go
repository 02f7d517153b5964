package poster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	results []Result
}

func (s *recordingSink) PublishResult(ctx context.Context, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *recordingSink) byStatus(status string) []Result {
	var out []Result
	for _, r := range s.results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

type recordingRetries struct {
	jobs   []DeliveryJob
	delays []time.Duration
}

func (r *recordingRetries) ScheduleRetry(ctx context.Context, job DeliveryJob, delay time.Duration) error {
	r.jobs = append(r.jobs, job)
	r.delays = append(r.delays, delay)
	return nil
}

type recordingNotifier struct {
	results []Result
}

func (n *recordingNotifier) NotifyFailure(ctx context.Context, r Result) {
	n.results = append(n.results, r)
}

// flakyPublisher fails the first failures calls.
type flakyPublisher struct {
	failures int
	calls    int
}

func (p *flakyPublisher) Publish(ctx context.Context, look *LookSnapshot) error {
	p.calls++
	if p.calls <= p.failures {
		return fmt.Errorf("network down (call %d)", p.calls)
	}
	return nil
}

func snapshotJSON(t *testing.T, images int) json.RawMessage {
	t.Helper()
	look := LookSnapshot{ID: 7, Name: "Look", Gender: "унисекс", TaskID: "task-1"}
	for i := 0; i < images; i++ {
		look.ImageURLs = append(look.ImageURLs, fmt.Sprintf("http://host/images/%d.png", i))
	}
	raw, err := json.Marshal(look)
	require.NoError(t, err)
	return raw
}

// drive runs job and every retry it schedules until the queue is empty.
func drive(t *testing.T, d *Deliverer, retries *recordingRetries, job DeliveryJob) {
	t.Helper()
	require.NoError(t, d.Handle(context.Background(), job))
	for len(retries.jobs) > 0 {
		next := retries.jobs[0]
		retries.jobs = retries.jobs[1:]
		require.NoError(t, d.Handle(context.Background(), next))
	}
}

func TestDeliverer_SuccessAfterTwoFailures(t *testing.T) {
	pub := &flakyPublisher{failures: 2}
	sink := &recordingSink{}
	retries := &recordingRetries{}
	d := NewDeliverer(Registry{PlatformTelegram: pub}, retries, sink)

	drive(t, d, retries, DeliveryJob{TaskID: "task-1", Service: PlatformTelegram, Look: snapshotJSON(t, 1)})

	assert.Equal(t, 3, pub.calls)
	require.Len(t, sink.byStatus(StatusSuccess), 1)
	assert.Empty(t, sink.byStatus(StatusError))

	res := sink.results[0]
	assert.Equal(t, "task-1", res.TaskID)
	assert.Equal(t, PlatformTelegram, res.Service)
	require.NotNil(t, res.LookID)
	assert.Equal(t, 7, *res.LookID)
}

func TestDeliverer_ExhaustsAfterThreeAttempts(t *testing.T) {
	pub := &flakyPublisher{failures: 100}
	sink := &recordingSink{}
	retries := &recordingRetries{}
	notifier := &recordingNotifier{}
	d := NewDeliverer(Registry{PlatformInstagram: pub}, retries, sink, WithFailureNotifier(notifier))

	drive(t, d, retries, DeliveryJob{TaskID: "task-1", Service: PlatformInstagram, Look: snapshotJSON(t, 2)})

	assert.Equal(t, 3, pub.calls, "no fourth attempt")
	assert.Empty(t, sink.byStatus(StatusSuccess))
	errs := sink.byStatus(StatusError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error, "network down (call 3)")
	assert.Len(t, notifier.results, 1)
}

func TestDeliverer_RetryCarriesAttemptAndDelay(t *testing.T) {
	pub := &flakyPublisher{failures: 1}
	retries := &recordingRetries{}
	d := NewDeliverer(Registry{PlatformTelegram: pub}, retries, &recordingSink{})

	require.NoError(t, d.Handle(context.Background(), DeliveryJob{TaskID: "t", Service: PlatformTelegram, Look: snapshotJSON(t, 1)}))

	require.Len(t, retries.jobs, 1)
	assert.Equal(t, 2, retries.jobs[0].Attempt)
	assert.Equal(t, 5*time.Second, retries.delays[0])
}

func TestDeliverer_PreconditionIsTerminal(t *testing.T) {
	calls := 0
	pub := PublisherFunc(func(ctx context.Context, look *LookSnapshot) error {
		calls++
		return fmt.Errorf("%w: no images", ErrPrecondition)
	})
	sink := &recordingSink{}
	retries := &recordingRetries{}
	d := NewDeliverer(Registry{PlatformTelegram: pub}, retries, sink)

	drive(t, d, retries, DeliveryJob{TaskID: "t", Service: PlatformTelegram, Look: snapshotJSON(t, 0)})

	assert.Equal(t, 1, calls)
	assert.Len(t, sink.byStatus(StatusError), 1)
}

func TestDeliverer_InvalidSnapshotIsTerminal(t *testing.T) {
	pub := &flakyPublisher{}
	sink := &recordingSink{}
	retries := &recordingRetries{}
	d := NewDeliverer(Registry{PlatformTelegram: pub}, retries, sink)

	drive(t, d, retries, DeliveryJob{
		TaskID:  "t",
		Service: PlatformTelegram,
		Look:    json.RawMessage(`{"id": 9, "name": "", "gender": "other"}`),
	})

	assert.Zero(t, pub.calls)
	errs := sink.byStatus(StatusError)
	require.Len(t, errs, 1)
	require.NotNil(t, errs[0].LookID)
	assert.Equal(t, 9, *errs[0].LookID)
	assert.Contains(t, errs[0].Error, ErrValidation.Error())
}

func TestDeliverer_UnknownPlatform(t *testing.T) {
	sink := &recordingSink{}
	d := NewDeliverer(Registry{}, &recordingRetries{}, sink)

	require.NoError(t, d.Handle(context.Background(), DeliveryJob{TaskID: "t", Service: "myspace", Look: snapshotJSON(t, 1)}))
	assert.Len(t, sink.byStatus(StatusError), 1)
}

type failingRetries struct{}

func (failingRetries) ScheduleRetry(ctx context.Context, job DeliveryJob, delay time.Duration) error {
	return errors.New("redis down")
}

func TestDeliverer_RetryNotScheduledBecomesTerminal(t *testing.T) {
	sink := &recordingSink{}
	d := NewDeliverer(Registry{PlatformTelegram: &flakyPublisher{failures: 1}}, failingRetries{}, sink)

	require.NoError(t, d.Handle(context.Background(), DeliveryJob{TaskID: "t", Service: PlatformTelegram, Look: snapshotJSON(t, 1)}))

	errs := sink.byStatus(StatusError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error, "retry not scheduled")
}
