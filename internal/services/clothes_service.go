package services

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"lookhub/internal/importer"
	"lookhub/internal/logger"
	"lookhub/internal/models"
	"lookhub/internal/repositories"
	"lookhub/internal/services/dto"
	"lookhub/pkg/apperrors"
)

type ClothesService interface {
	CreateClothes(ctx context.Context, db *gorm.DB, req *dto.CreateClothesRequest) (*dto.ClothesResponse, error)
	ImportClothes(ctx context.Context, db *gorm.DB, req *dto.ImportClothesRequest) (*dto.ClothesResponse, error)
	GetClothes(ctx context.Context, db *gorm.DB, id int) (*dto.ClothesResponse, error)
	ListClothes(ctx context.Context, db *gorm.DB, query *dto.ClothesListQuery) (*dto.Paginated[dto.ClothesResponse], error)
	UpdateClothes(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateClothesRequest) (*dto.ClothesResponse, error)
	DeleteClothes(ctx context.Context, db *gorm.DB, id int) error
}

// ProductFetcher reads product data from a shop page.
type ProductFetcher interface {
	Fetch(ctx context.Context, link string) (*importer.Product, error)
}

type clothesService struct {
	clothesRepo repositories.ClothesRepository
	products    ProductFetcher
	apiHost     string
}

func NewClothesService(clothesRepo repositories.ClothesRepository, products ProductFetcher, apiHost string) ClothesService {
	return &clothesService{
		clothesRepo: clothesRepo,
		products:    products,
		apiHost:     apiHost,
	}
}

func (s *clothesService) CreateClothes(ctx context.Context, db *gorm.DB, req *dto.CreateClothesRequest) (*dto.ClothesResponse, error) {
	clothes := &models.Clothes{
		Name:        req.Name,
		Description: req.Description,
		Colours:     toColours(req.Colours),
		Gender:      models.Gender(req.Gender),
		Link:        req.Link,
		ImageURL:    dto.StoragePath(s.apiHost, req.ImageURL),
	}
	if err := s.clothesRepo.Create(db, clothes); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Clothes created", "clothes_id", clothes.ID)
	resp := toClothesResponse(s.apiHost, clothes)
	return &resp, nil
}

// ImportClothes fills name, description and image from the product page at req.Link.
func (s *clothesService) ImportClothes(ctx context.Context, db *gorm.DB, req *dto.ImportClothesRequest) (*dto.ClothesResponse, error) {
	if s.products == nil {
		return nil, apperrors.New(apperrors.CodeExternalServiceError, "clothes", "Product import is disabled", http.StatusServiceUnavailable)
	}

	product, err := s.products.Fetch(ctx, req.Link)
	if err != nil {
		if errors.Is(err, importer.ErrNoProductData) {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationFailed, "clothes",
				"Product page has no name or image", http.StatusUnprocessableEntity)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "clothes",
			"Could not read product page", http.StatusBadGateway)
	}

	gender := req.Gender
	if gender == "" {
		gender = string(models.GenderUnisex)
	}
	var description *string
	if product.Description != "" {
		description = &product.Description
	}

	return s.CreateClothes(ctx, db, &dto.CreateClothesRequest{
		Name:        product.Name,
		Description: description,
		Colours:     req.Colours,
		Gender:      gender,
		Link:        req.Link,
		ImageURL:    product.ImageURL,
	})
}

func (s *clothesService) GetClothes(ctx context.Context, db *gorm.DB, id int) (*dto.ClothesResponse, error) {
	clothes, err := s.clothesRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := toClothesResponse(s.apiHost, clothes)
	return &resp, nil
}

func (s *clothesService) ListClothes(ctx context.Context, db *gorm.DB, query *dto.ClothesListQuery) (*dto.Paginated[dto.ClothesResponse], error) {
	query.Normalize()

	params := repositories.ListParams{
		Offset:  query.Offset(),
		Limit:   query.PageSize,
		OrderBy: query.OrderBy,
		Desc:    *query.DescOrder,
		Random:  query.RandomOrder,
		Filters: map[string]any{},
	}
	if query.Gender != nil {
		params.Filters["gender"] = *query.Gender
	}

	items, total, err := s.clothesRepo.List(db, params)
	if err != nil {
		return nil, mapRepoError(err)
	}

	results := make([]dto.ClothesResponse, 0, len(items))
	for i := range items {
		results = append(results, toClothesResponse(s.apiHost, &items[i]))
	}
	return &dto.Paginated[dto.ClothesResponse]{Results: results, Count: total}, nil
}

func (s *clothesService) UpdateClothes(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateClothesRequest) (*dto.ClothesResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	clothes, err := s.clothesRepo.FindByID(tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil {
		clothes.Name = *req.Name
	}
	if req.Description != nil {
		clothes.Description = req.Description
	}
	if req.Colours != nil {
		clothes.Colours = toColours(req.Colours)
	}
	if req.Gender != nil {
		clothes.Gender = models.Gender(*req.Gender)
	}
	if req.Link != nil {
		clothes.Link = *req.Link
	}
	if req.ImageURL != nil {
		clothes.ImageURL = dto.StoragePath(s.apiHost, *req.ImageURL)
	}

	if err := s.clothesRepo.Update(tx, clothes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toClothesResponse(s.apiHost, clothes)
	return &resp, nil
}

func (s *clothesService) DeleteClothes(ctx context.Context, db *gorm.DB, id int) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.clothesRepo.Delete(tx, id); err != nil {
		return mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Clothes deleted", "clothes_id", id)
	return nil
}
