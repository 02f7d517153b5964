package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lookhub/internal/imageprocessor"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
	"lookhub/internal/services"
	"lookhub/internal/services/dto"
	"lookhub/internal/storage"
	"lookhub/pkg/apperrors"
	"lookhub/test/helpers"
)

const apiHost = "http://lookhub.test"

type fakeSubmitter struct {
	mu    sync.Mutex
	looks []*poster.LookSnapshot
	err   error
}

func (f *fakeSubmitter) SubmitLook(ctx context.Context, look *poster.LookSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.looks = append(f.looks, look)
	return nil
}

func (f *fakeSubmitter) submitted() []*poster.LookSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*poster.LookSnapshot{}, f.looks...)
}

type lookFixture struct {
	db      *gorm.DB
	store   storage.Storage
	queue   *fakeSubmitter
	service services.LookService
}

func newLookFixture(t *testing.T) *lookFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	queue := &fakeSubmitter{}
	svc := services.NewLookService(
		repositories.NewLookRepository(),
		repositories.NewClothesRepository(),
		store,
		imageprocessor.NewProcessor(64),
		queue,
		apiHost,
	)
	return &lookFixture{db: db, store: store, queue: queue, service: svc}
}

func requireAppError(t *testing.T, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "ожидалась AppError, получено %v", err)
	assert.Equal(t, status, appErr.HTTPCode)
	return appErr
}

func TestPublish_RejectsUncheckedLook(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "unchecked", helpers.WithImages("a.png"))

	_, err := f.service.Publish(context.Background(), f.db, look.ID)

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Look must be checked before publishing", appErr.Message)
	assert.Empty(t, f.queue.submitted())
}

func TestPublish_RejectsLookWithoutImages(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "bare", helpers.Checked())

	_, err := f.service.Publish(context.Background(), f.db, look.ID)

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "Look must have images before publishing", appErr.Message)
	assert.Empty(t, f.queue.submitted())
}

func TestPublish_SubmitsSnapshot(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "ready", helpers.Checked(), helpers.WithImages("1-a.png"))

	resp, err := f.service.Publish(context.Background(), f.db, look.ID)
	require.NoError(t, err)

	assert.Equal(t, look.ID, resp.LookID)
	assert.NotEmpty(t, resp.TaskID)

	sent := f.queue.submitted()
	require.Len(t, sent, 1)
	assert.Equal(t, resp.TaskID, sent[0].TaskID)
	assert.Equal(t, look.ID, sent[0].ID)
	assert.False(t, helpers.ReloadLook(t, f.db, look.ID).Pushed, "pushed выставляет только коллектор")
}

func TestPublish_QueueFailureIsServiceUnavailable(t *testing.T) {
	f := newLookFixture(t)
	f.queue.err = errors.New("connection refused")
	look := helpers.CreateLook(t, f.db, "ready", helpers.Checked(), helpers.WithImages("1-a.png"))

	_, err := f.service.Publish(context.Background(), f.db, look.ID)
	requireAppError(t, err, http.StatusServiceUnavailable)
}

func TestPublish_UnknownLook(t *testing.T) {
	f := newLookFixture(t)

	_, err := f.service.Publish(context.Background(), f.db, 404)
	requireAppError(t, err, http.StatusNotFound)
}

func TestAddImages_StoresNormalisedFiles(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "gallery")

	resp, err := f.service.AddImages(context.Background(), f.db, look.ID, []dto.ImageFile{
		{Filename: "one.png", Content: helpers.PNG(t, 200, 100)},
		{Filename: "two.png", Content: helpers.PNG(t, 10, 10)},
	})
	require.NoError(t, err)
	require.Len(t, resp.ImageURLs, 2)

	stored := helpers.ReloadLook(t, f.db, look.ID).ImageURLs
	for i, path := range stored {
		assert.Regexp(t, fmt.Sprintf(`^%d-[0-9a-f-]+\.png$`, look.ID), path)
		assert.Equal(t, apiHost+"/images/"+path, resp.ImageURLs[i])

		ok, err := f.store.Exists(context.Background(), path)
		require.NoError(t, err)
		assert.True(t, ok, "файл %s должен существовать", path)
	}
}

func TestAddImages_InvalidFileLeavesLookUntouched(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "gallery", helpers.WithImages("old.png"))

	_, err := f.service.AddImages(context.Background(), f.db, look.ID, []dto.ImageFile{
		{Filename: "good.png", Content: helpers.PNG(t, 8, 8)},
		{Filename: "notes.txt", Content: []byte("plain text")},
	})

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, apperrors.CodeInvalidFile, appErr.Code)
	assert.Equal(t, []string{"old.png"}, []string(helpers.ReloadLook(t, f.db, look.ID).ImageURLs))
}

func TestAddImages_ConcurrentUploadsKeepEveryImage(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "busy")

	const uploads = 5
	img := helpers.PNG(t, 4, 4)
	var wg sync.WaitGroup
	errs := make(chan error, uploads)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.AddImages(context.Background(), f.db, look.ID, []dto.ImageFile{
				{Filename: "a.png", Content: img},
				{Filename: "b.png", Content: img},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, helpers.ReloadLook(t, f.db, look.ID).ImageURLs, uploads*2)
}

func TestAddImages_EmptyInput(t *testing.T) {
	f := newLookFixture(t)
	look := helpers.CreateLook(t, f.db, "empty")

	_, err := f.service.AddImages(context.Background(), f.db, look.ID, nil)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestUpdateLook_RemovedImagesAreDeleted(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	look := helpers.CreateLook(t, f.db, "trim")

	resp, err := f.service.AddImages(ctx, f.db, look.ID, []dto.ImageFile{
		{Filename: "keep.png", Content: helpers.PNG(t, 4, 4)},
		{Filename: "drop.png", Content: helpers.PNG(t, 4, 4)},
	})
	require.NoError(t, err)
	paths := helpers.ReloadLook(t, f.db, look.ID).ImageURLs

	checked := true
	updated, err := f.service.UpdateLook(ctx, f.db, look.ID, &dto.UpdateLookRequest{
		ImageURLs: resp.ImageURLs[:1],
		Checked:   &checked,
	})
	require.NoError(t, err)
	assert.True(t, updated.Checked)
	assert.Equal(t, resp.ImageURLs[:1], updated.ImageURLs)

	kept, err := f.store.Exists(ctx, paths[0])
	require.NoError(t, err)
	assert.True(t, kept)
	dropped, err := f.store.Exists(ctx, paths[1])
	require.NoError(t, err)
	assert.False(t, dropped)
}

func TestDeleteLook_RemovesFilesAndCategories(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	look := helpers.CreateLook(t, f.db, "gone")
	shirt := helpers.CreateClothes(t, f.db, "shirt")

	_, err := f.service.AddCategories(ctx, f.db, look.ID, []dto.CategoryInput{{Name: "Верх", Clothes: []int{shirt.ID}}})
	require.NoError(t, err)
	_, err = f.service.AddImages(ctx, f.db, look.ID, []dto.ImageFile{{Filename: "x.png", Content: helpers.PNG(t, 4, 4)}})
	require.NoError(t, err)
	paths := helpers.ReloadLook(t, f.db, look.ID).ImageURLs

	require.NoError(t, f.service.DeleteLook(ctx, f.db, look.ID))

	_, err = f.service.GetLook(ctx, f.db, look.ID)
	requireAppError(t, err, http.StatusNotFound)

	exists, err := f.store.Exists(ctx, paths[0])
	require.NoError(t, err)
	assert.False(t, exists)

	var categories int64
	require.NoError(t, f.db.Table("clothes_categories").Where("look_id = ?", look.ID).Count(&categories).Error)
	assert.Zero(t, categories)

	// сама вещь остается в каталоге
	var clothes int64
	require.NoError(t, f.db.Table("clothes").Where("id = ?", shirt.ID).Count(&clothes).Error)
	assert.EqualValues(t, 1, clothes)
}

func TestCategories_Lifecycle(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	look := helpers.CreateLook(t, f.db, "layers")
	shirt := helpers.CreateClothes(t, f.db, "shirt")
	coat := helpers.CreateClothes(t, f.db, "coat")

	resp, err := f.service.AddCategories(ctx, f.db, look.ID, []dto.CategoryInput{
		{Name: "Верх", Clothes: []int{shirt.ID}},
		{Name: "Аксессуары"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)
	top := resp.Categories[0]
	require.Len(t, top.Clothes, 1)

	resp, err = f.service.AddClothesToCategory(ctx, f.db, look.ID, top.ID, coat.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Categories[0].Clothes, 2)

	// повторное добавление ничего не меняет
	resp, err = f.service.AddClothesToCategory(ctx, f.db, look.ID, top.ID, coat.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Categories[0].Clothes, 2)

	resp, err = f.service.RemoveClothesFromCategory(ctx, f.db, look.ID, top.ID, shirt.ID)
	require.NoError(t, err)
	require.Len(t, resp.Categories[0].Clothes, 1)
	assert.Equal(t, coat.ID, resp.Categories[0].Clothes[0].ID)

	resp, err = f.service.DeleteCategory(ctx, f.db, look.ID, top.ID)
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Аксессуары", resp.Categories[0].Name)
}

func TestAddClothesToCategory_AlreadyPresentReleasesTransaction(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	look := helpers.CreateLook(t, f.db, "repeat")
	shirt := helpers.CreateClothes(t, f.db, "shirt")

	resp, err := f.service.AddCategories(ctx, f.db, look.ID, []dto.CategoryInput{{Name: "Верх", Clothes: []int{shirt.ID}}})
	require.NoError(t, err)
	categoryID := resp.Categories[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := f.service.AddClothesToCategory(ctx, f.db, look.ID, categoryID, shirt.ID)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("AddClothesToCategory blocked on its own transaction")
	}

	// соединение свободно, следующая запись проходит
	_, err = f.service.RemoveClothesFromCategory(ctx, f.db, look.ID, categoryID, shirt.ID)
	require.NoError(t, err)
}

func TestCategories_BelongToTheirLook(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	owner := helpers.CreateLook(t, f.db, "owner")
	other := helpers.CreateLook(t, f.db, "other")
	shirt := helpers.CreateClothes(t, f.db, "shirt")

	resp, err := f.service.AddCategories(ctx, f.db, owner.ID, []dto.CategoryInput{{Name: "Верх", Clothes: []int{shirt.ID}}})
	require.NoError(t, err)
	categoryID := resp.Categories[0].ID

	_, err = f.service.AddClothesToCategory(ctx, f.db, other.ID, categoryID, shirt.ID)
	requireAppError(t, err, http.StatusNotFound)
	_, err = f.service.RemoveClothesFromCategory(ctx, f.db, other.ID, categoryID, shirt.ID)
	requireAppError(t, err, http.StatusNotFound)
	_, err = f.service.DeleteCategory(ctx, f.db, other.ID, categoryID)
	requireAppError(t, err, http.StatusNotFound)

	got, err := f.service.GetLook(ctx, f.db, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Len(t, got.Categories[0].Clothes, 1)
}

func TestAddCategories_UnknownClothesRollsBack(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	look := helpers.CreateLook(t, f.db, "strict")
	shirt := helpers.CreateClothes(t, f.db, "shirt")

	_, err := f.service.AddCategories(ctx, f.db, look.ID, []dto.CategoryInput{
		{Name: "Верх", Clothes: []int{shirt.ID}},
		{Name: "Низ", Clothes: []int{shirt.ID + 100}},
	})
	requireAppError(t, err, http.StatusNotFound)

	got, err := f.service.GetLook(ctx, f.db, look.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestListLooks_FiltersAndPaginates(t *testing.T) {
	f := newLookFixture(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		helpers.CreateLook(t, f.db, fmt.Sprintf("checked-%d", i), helpers.Checked())
	}
	helpers.CreateLook(t, f.db, "draft")

	checked := true
	desc := false
	page, err := f.service.ListLooks(ctx, f.db, &dto.LookListQuery{
		ListQuery: dto.ListQuery{Page: 2, PageSize: 2, DescOrder: &desc},
		Checked:   &checked,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "checked-2", page.Results[0].Name)
	assert.Equal(t, "checked-3", page.Results[1].Name)
}

func TestListLooks_UnknownSortField(t *testing.T) {
	f := newLookFixture(t)

	_, err := f.service.ListLooks(context.Background(), f.db, &dto.LookListQuery{
		ListQuery: dto.ListQuery{OrderBy: "password"},
	})
	requireAppError(t, err, http.StatusBadRequest)
}
