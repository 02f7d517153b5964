package repositories

import (
	"errors"

	"lookhub/internal/models"

	"gorm.io/gorm"
)

var ErrClothesNotFound = errors.New("clothes not found")

// ClothesSchema is the explicit set of sortable and filterable clothes fields.
var ClothesSchema = EntitySchema{
	Sortable: map[string]string{
		"id":         "id",
		"name":       "name",
		"gender":     "gender",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	Filterable: map[string]string{
		"gender": "gender",
	},
}

type ClothesRepository interface {
	Repository[models.Clothes]
	FindByIDs(db *gorm.DB, ids []int) ([]models.Clothes, error)
}

type ClothesRepositoryImpl struct {
	*gormRepository[models.Clothes]
}

func NewClothesRepository() ClothesRepository {
	return &ClothesRepositoryImpl{
		gormRepository: newGormRepository[models.Clothes](ClothesSchema, ErrClothesNotFound),
	}
}

// FindByIDs returns the requested clothes in the order of ids. Any missing id is an error.
func (r *ClothesRepositoryImpl) FindByIDs(db *gorm.DB, ids []int) ([]models.Clothes, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Clothes
	if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]models.Clothes, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]models.Clothes, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, ErrClothesNotFound
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes the clothes item and its category links.
func (r *ClothesRepositoryImpl) Delete(db *gorm.DB, id int) error {
	if err := db.Exec("DELETE FROM "+models.ClothesCategoryJoinTable+" WHERE clothes_id = ?", id).Error; err != nil {
		return err
	}
	return r.gormRepository.Delete(db, id)
}
