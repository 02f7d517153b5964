package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lookhub/internal/imageprocessor"
	"lookhub/internal/logger"
	"lookhub/internal/models"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
	"lookhub/internal/services/dto"
	"lookhub/internal/storage"
	"lookhub/pkg/apperrors"
)

type LookService interface {
	CreateLook(ctx context.Context, db *gorm.DB, req *dto.CreateLookRequest) (*dto.LookResponse, error)
	GetLook(ctx context.Context, db *gorm.DB, id int) (*dto.LookResponse, error)
	ListLooks(ctx context.Context, db *gorm.DB, query *dto.LookListQuery) (*dto.Paginated[dto.LookResponse], error)
	UpdateLook(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateLookRequest) (*dto.LookResponse, error)
	DeleteLook(ctx context.Context, db *gorm.DB, id int) error

	// Categories
	AddCategories(ctx context.Context, db *gorm.DB, lookID int, categories []dto.CategoryInput) (*dto.LookResponse, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, lookID, categoryID int) (*dto.LookResponse, error)
	AddClothesToCategory(ctx context.Context, db *gorm.DB, lookID, categoryID, clothesID int) (*dto.LookResponse, error)
	RemoveClothesFromCategory(ctx context.Context, db *gorm.DB, lookID, categoryID, clothesID int) (*dto.LookResponse, error)

	// Images & publishing
	AddImages(ctx context.Context, db *gorm.DB, lookID int, files []dto.ImageFile) (*dto.LookResponse, error)
	Publish(ctx context.Context, db *gorm.DB, lookID int) (*dto.PublishResponse, error)
}

// ImageNormalizer turns an upload into the stored PNG bytes.
type ImageNormalizer interface {
	Normalize(r io.Reader) ([]byte, error)
}

// LookSubmitter hands a look snapshot to the poster queue.
type LookSubmitter interface {
	SubmitLook(ctx context.Context, look *poster.LookSnapshot) error
}

type lookService struct {
	lookRepo    repositories.LookRepository
	clothesRepo repositories.ClothesRepository
	storage     storage.Storage
	images      ImageNormalizer
	queue       LookSubmitter
	apiHost     string

	// per-look locks serialising image list updates inside this process
	locks sync.Map
}

func NewLookService(
	lookRepo repositories.LookRepository,
	clothesRepo repositories.ClothesRepository,
	store storage.Storage,
	images ImageNormalizer,
	queue LookSubmitter,
	apiHost string,
) LookService {
	return &lookService{
		lookRepo:    lookRepo,
		clothesRepo: clothesRepo,
		storage:     store,
		images:      images,
		queue:       queue,
		apiHost:     apiHost,
	}
}

func (s *lookService) CreateLook(ctx context.Context, db *gorm.DB, req *dto.CreateLookRequest) (*dto.LookResponse, error) {
	look := &models.Look{
		Name:         req.Name,
		Gender:       models.Gender(req.Gender),
		Description:  req.Description,
		ImagePrompts: nonNil(req.ImagePrompts),
		ImageURLs:    dto.StoragePaths(s.apiHost, req.ImageURLs),
		Checked:      req.Checked,
	}
	if len(req.ContentJSON) > 0 && string(req.ContentJSON) != "null" {
		look.ContentJSON = datatypes.JSON(req.ContentJSON)
	}

	if err := s.lookRepo.Create(db, look); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Look created", "look_id", look.ID)
	return s.GetLook(ctx, db, look.ID)
}

func (s *lookService) GetLook(ctx context.Context, db *gorm.DB, id int) (*dto.LookResponse, error) {
	look, err := s.lookRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toLookResponse(s.apiHost, look), nil
}

func (s *lookService) ListLooks(ctx context.Context, db *gorm.DB, query *dto.LookListQuery) (*dto.Paginated[dto.LookResponse], error) {
	query.Normalize()

	params := repositories.ListParams{
		Offset:  query.Offset(),
		Limit:   query.PageSize,
		OrderBy: query.OrderBy,
		Desc:    *query.DescOrder,
		Random:  query.RandomOrder,
		Filters: map[string]any{},
	}
	if query.Checked != nil {
		params.Filters["checked"] = *query.Checked
	}
	if query.Pushed != nil {
		params.Filters["pushed"] = *query.Pushed
	}
	if query.Gender != nil {
		params.Filters["gender"] = *query.Gender
	}

	items, total, err := s.lookRepo.List(db, params)
	if err != nil {
		return nil, mapRepoError(err)
	}

	results := make([]dto.LookResponse, 0, len(items))
	for i := range items {
		results = append(results, *toLookResponse(s.apiHost, &items[i]))
	}
	return &dto.Paginated[dto.LookResponse]{Results: results, Count: total}, nil
}

func (s *lookService) UpdateLook(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateLookRequest) (*dto.LookResponse, error) {
	var removed []string

	if req.ImageURLs != nil {
		unlock := s.lockLook(id)
		defer unlock()
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	look, err := s.lookRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil {
		look.Name = *req.Name
	}
	if req.Gender != nil {
		look.Gender = models.Gender(*req.Gender)
	}
	if req.Description != nil {
		look.Description = *req.Description
	}
	if req.ImagePrompts != nil {
		look.ImagePrompts = req.ImagePrompts
	}
	if req.ImageURLs != nil {
		next := dto.StoragePaths(s.apiHost, req.ImageURLs)
		removed = missingFrom(look.ImageURLs, next)
		look.ImageURLs = next
	}
	if len(req.ContentJSON) > 0 {
		if string(req.ContentJSON) == "null" {
			look.ContentJSON = nil
		} else {
			look.ContentJSON = datatypes.JSON(req.ContentJSON)
		}
	}
	if req.Checked != nil {
		look.Checked = *req.Checked
	}
	if req.Pushed != nil {
		look.Pushed = *req.Pushed
	}

	if err := s.lookRepo.Update(tx, look); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.deleteImages(ctx, removed)
	return s.GetLook(ctx, db, id)
}

func (s *lookService) DeleteLook(ctx context.Context, db *gorm.DB, id int) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	look, err := s.lookRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		return mapRepoError(err)
	}
	if err := s.lookRepo.Delete(tx, id); err != nil {
		return mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.deleteImages(ctx, look.ImageURLs)
	logger.CtxInfo(ctx, "Look deleted", "look_id", id)
	return nil
}

// ---------------- Categories ----------------

func (s *lookService) AddCategories(ctx context.Context, db *gorm.DB, lookID int, categories []dto.CategoryInput) (*dto.LookResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.lookRepo.FindByIDForUpdate(tx, lookID); err != nil {
		return nil, mapRepoError(err)
	}

	for _, input := range categories {
		clothes, err := s.clothesRepo.FindByIDs(tx, input.Clothes)
		if err != nil {
			return nil, mapRepoError(err)
		}
		category := &models.ClothesCategory{Name: input.Name, LookID: lookID, Clothes: clothes}
		if err := s.lookRepo.CreateCategory(tx, category); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetLook(ctx, db, lookID)
}

func (s *lookService) DeleteCategory(ctx context.Context, db *gorm.DB, lookID, categoryID int) (*dto.LookResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.lookRepo.FindByIDForUpdate(tx, lookID); err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.lookRepo.DeleteCategory(tx, lookID, categoryID); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetLook(ctx, db, lookID)
}

func (s *lookService) AddClothesToCategory(ctx context.Context, db *gorm.DB, lookID, categoryID, clothesID int) (*dto.LookResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	category, err := s.lookRepo.FindCategory(tx, lookID, categoryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	clothes, err := s.clothesRepo.FindByID(tx, clothesID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	present := false
	for _, c := range category.Clothes {
		if c.ID == clothesID {
			present = true
			break
		}
	}

	if !present {
		if err := s.lookRepo.AddClothesToCategory(tx, category, []models.Clothes{*clothes}); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetLook(ctx, db, lookID)
}

func (s *lookService) RemoveClothesFromCategory(ctx context.Context, db *gorm.DB, lookID, categoryID, clothesID int) (*dto.LookResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.lookRepo.FindCategory(tx, lookID, categoryID); err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.lookRepo.RemoveClothesFromCategory(tx, categoryID, clothesID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetLook(ctx, db, lookID)
}

// ---------------- Images & publishing ----------------

// AddImages normalises and stores files in parallel, then appends them to the look in upload order.
func (s *lookService) AddImages(ctx context.Context, db *gorm.DB, lookID int, files []dto.ImageFile) (*dto.LookResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No image files provided")
	}
	if _, err := s.lookRepo.FindByID(db, lookID); err != nil {
		return nil, mapRepoError(err)
	}

	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			data, err := s.images.Normalize(bytes.NewReader(file.Content))
			if err != nil {
				if errors.Is(err, imageprocessor.ErrInvalidImage) {
					return apperrors.ErrInvalidFile(err, file.Filename)
				}
				return apperrors.ErrUnknown(err)
			}

			name := fmt.Sprintf("%d-%s.png", lookID, uuid.NewString())
			if err := s.storage.Save(gctx, name, bytes.NewReader(data), "image/png"); err != nil {
				return apperrors.ErrUnknown(err)
			}
			paths[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.deleteImages(ctx, paths)
		return nil, err
	}

	if err := s.appendImages(db, lookID, paths); err != nil {
		s.deleteImages(ctx, paths)
		return nil, err
	}

	logger.CtxInfo(ctx, "Images added to look", "look_id", lookID, "count", len(paths))
	return s.GetLook(ctx, db, lookID)
}

func (s *lookService) appendImages(db *gorm.DB, lookID int, paths []string) error {
	unlock := s.lockLook(lookID)
	defer unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	look, err := s.lookRepo.FindByIDForUpdate(tx, lookID)
	if err != nil {
		return mapRepoError(err)
	}

	urls := append(append([]string{}, look.ImageURLs...), paths...)
	if err := s.lookRepo.UpdateImageURLs(tx, lookID, urls); err != nil {
		return mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Publish queues a checked look with images for posting to every platform.
func (s *lookService) Publish(ctx context.Context, db *gorm.DB, lookID int) (*dto.PublishResponse, error) {
	look, err := s.lookRepo.FindByID(db, lookID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !look.Checked {
		return nil, apperrors.ErrPrecondition("look", "Look must be checked before publishing")
	}
	if !look.HasImages() {
		return nil, apperrors.ErrPrecondition("look", "Look must have images before publishing")
	}
	if s.queue == nil {
		return nil, apperrors.ErrBroker(errors.New("poster queue is not configured"))
	}

	taskID := uuid.NewString()
	if err := s.queue.SubmitLook(ctx, poster.NewLookSnapshot(look, s.apiHost, taskID)); err != nil {
		return nil, apperrors.ErrBroker(err)
	}

	logger.CtxInfo(ctx, "Look sent to social media queue", "look_id", lookID, "task_id", taskID)
	return &dto.PublishResponse{
		Message: "Look sent to social media queue",
		TaskID:  taskID,
		LookID:  lookID,
	}, nil
}

func (s *lookService) lockLook(id int) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// deleteImages removes stored files; failures are only logged.
func (s *lookService) deleteImages(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" || strings.HasPrefix(p, "http") {
			continue
		}
		if err := s.storage.Delete(ctx, p); err != nil {
			logger.CtxWarn(ctx, "Failed to delete image", "path", p, "error", err)
		}
	}
}

// missingFrom returns the entries of current that are not in next.
func missingFrom(current, next []string) []string {
	keep := make(map[string]struct{}, len(next))
	for _, p := range next {
		keep[p] = struct{}{}
	}
	var out []string
	for _, p := range current {
		if _, ok := keep[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
