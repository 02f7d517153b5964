package poster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	jobs []DeliveryJob
	fail Platform
}

func (s *recordingSubmitter) SubmitDelivery(ctx context.Context, job DeliveryJob, delay time.Duration) error {
	if job.Service == s.fail {
		return errors.New("push failed")
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func TestDispatcher_OneJobPerPlatform(t *testing.T) {
	sub := &recordingSubmitter{}
	d := NewDispatcher(sub, AllPlatforms)

	look := &LookSnapshot{ID: 3, Name: "L", Gender: "мужской"}
	require.NoError(t, d.Dispatch(context.Background(), FanoutJob{TaskID: "abc", Look: look}))

	require.Len(t, sub.jobs, 2)
	for i, p := range AllPlatforms {
		job := sub.jobs[i]
		assert.Equal(t, p, job.Service)
		assert.Equal(t, "abc", job.TaskID)
		assert.Equal(t, 1, job.Attempt)

		decoded, err := DecodeSnapshot(job.Look)
		require.NoError(t, err)
		assert.Equal(t, 3, decoded.ID)
		assert.Equal(t, "abc", decoded.TaskID)
	}
}

func TestDispatcher_ContinuesAfterSubmitError(t *testing.T) {
	sub := &recordingSubmitter{fail: PlatformTelegram}
	d := NewDispatcher(sub, AllPlatforms)

	err := d.Dispatch(context.Background(), FanoutJob{TaskID: "abc", Look: &LookSnapshot{ID: 1, Name: "L", Gender: "мужской"}})
	assert.Error(t, err)
	require.Len(t, sub.jobs, 1)
	assert.Equal(t, PlatformInstagram, sub.jobs[0].Service)
}

func TestDispatcher_RejectsGarbage(t *testing.T) {
	d := NewDispatcher(&recordingSubmitter{}, AllPlatforms)

	assert.ErrorIs(t, d.DispatchRaw(context.Background(), []byte("{")), ErrValidation)
	assert.ErrorIs(t, d.DispatchRaw(context.Background(), []byte(`{"task_id":"x"}`)), ErrValidation)
}

func TestParsePlatforms(t *testing.T) {
	got, err := ParsePlatforms([]string{" Telegram", "instagram", "telegram", ""})
	require.NoError(t, err)
	assert.Equal(t, []Platform{PlatformTelegram, PlatformInstagram}, got)

	_, err = ParsePlatforms([]string{"vk"})
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}
