package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/app"
	"lookhub/internal/poster"
	"lookhub/internal/services/dto"
	"lookhub/test/helpers"
)

// flakyPlatform fails the first failures calls, then succeeds.
type flakyPlatform struct {
	mu       sync.Mutex
	failures int
	err      error
	calls    []*poster.LookSnapshot
}

func (p *flakyPlatform) Publish(ctx context.Context, look *poster.LookSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, look)
	if len(p.calls) <= p.failures {
		return p.err
	}
	return nil
}

func (p *flakyPlatform) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// TestPublishPipeline проходит весь путь: API -> fan-out -> доставка с ретраем -> коллектор.
func TestPublishPipeline(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token := ts.APIToken(t)

	// 1. Образ через API
	res, body := ts.SendRequest(t, http.MethodPost, "/api/looks/", token, map[string]any{
		"name":   "Выходные",
		"gender": "унисекс",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var look dto.LookResponse
	require.NoError(t, json.Unmarshal([]byte(body), &look))
	base := fmt.Sprintf("/api/looks/%d", look.ID)

	res, body = ts.UploadFiles(t, base+"/add_images", token, "image_files", map[string][]byte{
		"street.png": helpers.PNG(t, 30, 40),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	res, body = ts.SendRequest(t, http.MethodPatch, base, token, map[string]any{"checked": true})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, base+"/publish", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// 2. Постер: телеграм падает один раз, инстаграм отказывает окончательно
	telegram := &flakyPlatform{failures: 1, err: errors.New("telegram: 502 bad gateway")}
	instagram := &flakyPlatform{failures: 1, err: fmt.Errorf("%w: caption too long", poster.ErrPrecondition)}
	registry := poster.Registry{
		poster.PlatformTelegram:  telegram,
		poster.PlatformInstagram: instagram,
	}

	queue := poster.NewQueue(ts.Broker)
	deliverer := poster.NewDeliverer(registry, queue, queue,
		poster.WithMaxAttempts(3),
		poster.WithRetryDelay(10*time.Millisecond),
	)
	worker := poster.NewWorker(queue, poster.NewDispatcher(queue, poster.AllPlatforms), deliverer, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		members, err := ts.Redis.Members(poster.ResultsSet)
		return err == nil && len(members) == 2
	}, 15*time.Second, 50*time.Millisecond, "ожидались два результата доставки")
	cancel()
	<-done

	assert.Equal(t, 2, telegram.callCount(), "одна ошибка и один успешный повтор")
	assert.Equal(t, 1, instagram.callCount(), "ошибка предусловия не повторяется")

	// 3. Коллектор отмечает образ, продюсер больше его не отправляет
	scheduler, err := app.NewScheduler(ts.Config, ts.DB, ts.Broker)
	require.NoError(t, err)
	scheduler.RunOnce(context.Background())

	assert.True(t, helpers.ReloadLook(t, ts.DB, look.ID).Pushed)
	pending, _ := ts.Redis.List(poster.FanoutQueue)
	assert.Empty(t, pending, "повторной отправки быть не должно")
	left, _ := ts.Redis.Members(poster.ResultsSet)
	assert.Empty(t, left)
}

// TestScheduler_PicksUpCheckedLooks: образ, проверенный в админке без publish, уходит по расписанию.
func TestScheduler_PicksUpCheckedLooks(t *testing.T) {
	ts := helpers.NewTestServer(t)
	look := helpers.CreateLook(t, ts.DB, "Тихий понедельник", helpers.Checked(), helpers.WithImages("5-x.png"))
	helpers.CreateLook(t, ts.DB, "Черновик", helpers.WithImages("6-x.png"))

	scheduler, err := app.NewScheduler(ts.Config, ts.DB, ts.Broker)
	require.NoError(t, err)
	scheduler.RunOnce(context.Background())

	raw, err := ts.Redis.List(poster.FanoutQueue)
	require.NoError(t, err)
	require.Len(t, raw, 1)

	var job poster.FanoutJob
	require.NoError(t, json.Unmarshal([]byte(raw[0]), &job))
	assert.Equal(t, look.ID, job.Look.ID)
	assert.Equal(t, []string{ts.Config.Server.APIHost + "/images/5-x.png"}, job.Look.ImageURLs)
	assert.False(t, helpers.ReloadLook(t, ts.DB, look.ID).Pushed)
}
