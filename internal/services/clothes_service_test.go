package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookhub/internal/importer"
	"lookhub/internal/repositories"
	"lookhub/internal/services"
	"lookhub/internal/services/dto"
	"lookhub/test/helpers"
)

type stubProducts struct {
	product *importer.Product
	err     error
	links   []string
}

func (s *stubProducts) Fetch(ctx context.Context, link string) (*importer.Product, error) {
	s.links = append(s.links, link)
	return s.product, s.err
}

func TestClothesService_CRUD(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := services.NewClothesService(repositories.NewClothesRepository(), nil, apiHost)
	ctx := context.Background()

	created, err := svc.CreateClothes(ctx, db, &dto.CreateClothesRequest{
		Name:     "Пальто",
		Colours:  []string{"черный", "серый"},
		Gender:   "женский",
		Link:     "https://shop.example.com/coat",
		ImageURL: apiHost + "/images/coat.png",
	})
	require.NoError(t, err)
	assert.Equal(t, apiHost+"/images/coat.png", created.ImageURL)
	assert.Equal(t, []string{"черный", "серый"}, created.Colours)

	// в базе хранится относительный путь
	var stored []string
	require.NoError(t, db.Table("clothes").Where("id = ?", created.ID).Pluck("image_url", &stored).Error)
	assert.Equal(t, []string{"coat.png"}, stored)

	name := "Тренч"
	updated, err := svc.UpdateClothes(ctx, db, created.ID, &dto.UpdateClothesRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Тренч", updated.Name)
	assert.Equal(t, created.Link, updated.Link)

	require.NoError(t, svc.DeleteClothes(ctx, db, created.ID))

	_, err = svc.GetClothes(ctx, db, created.ID)
	requireAppError(t, err, http.StatusNotFound)
	err = svc.DeleteClothes(ctx, db, created.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestClothesService_ListFiltersByGender(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := services.NewClothesService(repositories.NewClothesRepository(), nil, apiHost)

	helpers.CreateClothes(t, db, "scarf")
	helpers.CreateClothes(t, db, "belt")
	male := helpers.CreateClothes(t, db, "tie")
	require.NoError(t, db.Model(male).Update("gender", "мужской").Error)

	gender := "унисекс"
	page, err := svc.ListClothes(context.Background(), db, &dto.ClothesListQuery{Gender: &gender})
	require.NoError(t, err)

	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	// по умолчанию сортировка по id по убыванию
	assert.Equal(t, "belt", page.Results[0].Name)
	assert.Equal(t, "scarf", page.Results[1].Name)
}

func TestClothesService_Import(t *testing.T) {
	db := helpers.NewTestDB(t)
	products := &stubProducts{product: &importer.Product{
		Name:        "Кардиган",
		Description: "Шерсть",
		ImageURL:    "https://cdn.example.com/cardigan.jpg",
	}}
	svc := services.NewClothesService(repositories.NewClothesRepository(), products, apiHost)

	resp, err := svc.ImportClothes(context.Background(), db, &dto.ImportClothesRequest{
		Link:    "https://shop.example.com/cardigan",
		Colours: []string{"бежевый"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://shop.example.com/cardigan"}, products.links)
	assert.Equal(t, "Кардиган", resp.Name)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "Шерсть", *resp.Description)
	assert.Equal(t, "унисекс", resp.Gender)
	assert.Equal(t, "https://cdn.example.com/cardigan.jpg", resp.ImageURL)
}

func TestClothesService_ImportErrors(t *testing.T) {
	db := helpers.NewTestDB(t)
	req := &dto.ImportClothesRequest{Link: "https://shop.example.com/x"}

	tests := []struct {
		name     string
		products services.ProductFetcher
		status   int
	}{
		{"disabled", nil, http.StatusServiceUnavailable},
		{"no metadata", &stubProducts{err: importer.ErrNoProductData}, http.StatusUnprocessableEntity},
		{"shop down", &stubProducts{err: errors.New("status code error: 502")}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewClothesService(repositories.NewClothesRepository(), tt.products, apiHost)
			_, err := svc.ImportClothes(context.Background(), db, req)
			requireAppError(t, err, tt.status)
		})
	}

	var count int64
	require.NoError(t, db.Table("clothes").Count(&count).Error)
	assert.Zero(t, count)
}
