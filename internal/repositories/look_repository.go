package repositories

import (
	"errors"

	"lookhub/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLookNotFound     = errors.New("look not found")
	ErrCategoryNotFound = errors.New("clothes category not found")
)

// LookSchema is the explicit set of sortable and filterable look fields.
var LookSchema = EntitySchema{
	Sortable: map[string]string{
		"id":         "id",
		"name":       "name",
		"gender":     "gender",
		"checked":    "checked",
		"pushed":     "pushed",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	Filterable: map[string]string{
		"checked": "checked",
		"pushed":  "pushed",
		"gender":  "gender",
	},
	Preload: []string{"Categories", "Categories.Clothes"},
}

type LookRepository interface {
	Repository[models.Look]

	// FindByIDForUpdate loads the look and locks its row until the transaction ends.
	FindByIDForUpdate(db *gorm.DB, id int) (*models.Look, error)
	// FindPublishable returns checked, not yet pushed looks with at least one image, ordered by id.
	FindPublishable(db *gorm.DB, limit int) ([]models.Look, error)
	// MarkPushed flips pushed to true. It reports whether this call made the transition.
	MarkPushed(db *gorm.DB, id int) (bool, error)
	UpdateImageURLs(db *gorm.DB, id int, urls []string) error

	CreateCategory(db *gorm.DB, category *models.ClothesCategory) error
	FindCategory(db *gorm.DB, lookID, categoryID int) (*models.ClothesCategory, error)
	DeleteCategory(db *gorm.DB, lookID, categoryID int) error
	AddClothesToCategory(db *gorm.DB, category *models.ClothesCategory, clothes []models.Clothes) error
	RemoveClothesFromCategory(db *gorm.DB, categoryID, clothesID int) error
}

type LookRepositoryImpl struct {
	*gormRepository[models.Look]
}

func NewLookRepository() LookRepository {
	return &LookRepositoryImpl{
		gormRepository: newGormRepository[models.Look](LookSchema, ErrLookNotFound),
	}
}

func (r *LookRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id int) (*models.Look, error) {
	var look models.Look
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&look, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookNotFound
		}
		return nil, err
	}
	return &look, nil
}

// publishablePage is the scan size when the caller sets no limit.
const publishablePage = 100

// FindPublishable walks checked, unpushed looks by id and keeps the ones with images until
// limit is reached, so image-less looks never occupy the batch. Пустой список картинок
// хранится как "[]" или null в зависимости от драйвера, поэтому фильтр выполняется здесь.
func (r *LookRepositoryImpl) FindPublishable(db *gorm.DB, limit int) ([]models.Look, error) {
	page := limit
	if page <= 0 {
		page = publishablePage
	}

	var result []models.Look
	lastID := 0
	for {
		var looks []models.Look
		err := r.preload(db).
			Where("checked = ? AND pushed = ? AND id > ?", true, false, lastID).
			Order("id").
			Limit(page).
			Find(&looks).Error
		if err != nil {
			return nil, err
		}

		for _, look := range looks {
			lastID = look.ID
			if !look.HasImages() {
				continue
			}
			result = append(result, look)
			if limit > 0 && len(result) == limit {
				return result, nil
			}
		}
		if len(looks) < page {
			return result, nil
		}
	}
}

func (r *LookRepositoryImpl) MarkPushed(db *gorm.DB, id int) (bool, error) {
	result := db.Model(&models.Look{}).
		Where("id = ? AND pushed = ?", id, false).
		Update("pushed", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *LookRepositoryImpl) UpdateImageURLs(db *gorm.DB, id int, urls []string) error {
	result := db.Model(&models.Look{BaseModel: models.BaseModel{ID: id}}).
		Update("image_urls", datatypes.JSONSlice[string](urls))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLookNotFound
	}
	return nil
}

// Delete removes the look with its categories and their clothes links.
func (r *LookRepositoryImpl) Delete(db *gorm.DB, id int) error {
	var categoryIDs []int
	if err := db.Model(&models.ClothesCategory{}).Where("look_id = ?", id).Pluck("id", &categoryIDs).Error; err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		if err := db.Exec("DELETE FROM "+models.ClothesCategoryJoinTable+" WHERE clothescategory_id IN ?", categoryIDs).Error; err != nil {
			return err
		}
		if err := db.Where("look_id = ?", id).Delete(&models.ClothesCategory{}).Error; err != nil {
			return err
		}
	}
	return r.gormRepository.Delete(db, id)
}

func (r *LookRepositoryImpl) CreateCategory(db *gorm.DB, category *models.ClothesCategory) error {
	clothes := category.Clothes
	category.Clothes = nil
	if err := db.Omit(clause.Associations).Create(category).Error; err != nil {
		return err
	}
	if len(clothes) == 0 {
		return nil
	}
	return r.AddClothesToCategory(db, category, clothes)
}

func (r *LookRepositoryImpl) FindCategory(db *gorm.DB, lookID, categoryID int) (*models.ClothesCategory, error) {
	var category models.ClothesCategory
	err := db.Preload("Clothes").
		Where("id = ? AND look_id = ?", categoryID, lookID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *LookRepositoryImpl) DeleteCategory(db *gorm.DB, lookID, categoryID int) error {
	result := db.Where("id = ? AND look_id = ?", categoryID, lookID).Delete(&models.ClothesCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return db.Exec("DELETE FROM "+models.ClothesCategoryJoinTable+" WHERE clothescategory_id = ?", categoryID).Error
}

func (r *LookRepositoryImpl) AddClothesToCategory(db *gorm.DB, category *models.ClothesCategory, clothes []models.Clothes) error {
	return db.Model(category).Omit("Clothes.*").Association("Clothes").Append(clothes)
}

func (r *LookRepositoryImpl) RemoveClothesFromCategory(db *gorm.DB, categoryID, clothesID int) error {
	return db.Exec("DELETE FROM "+models.ClothesCategoryJoinTable+" WHERE clothescategory_id = ? AND clothes_id = ?", categoryID, clothesID).Error
}
