package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidSortField = errors.New("invalid sort field")

// ListParams describes one page of a list query.
type ListParams struct {
	Offset  int
	Limit   int
	OrderBy string
	Desc    bool
	Random  bool
	// Filters maps a filter name to its value. Nil values are skipped.
	Filters map[string]any
}

// EntitySchema declares, per entity, which API fields may be used for sorting and filtering
// and which column each one maps to.
type EntitySchema struct {
	Sortable   map[string]string
	Filterable map[string]string
	Preload    []string
}

// Repository is the shared CRUD contract over one entity type.
type Repository[T any] interface {
	Create(db *gorm.DB, entity *T) error
	FindByID(db *gorm.DB, id int) (*T, error)
	List(db *gorm.DB, params ListParams) ([]T, int64, error)
	Update(db *gorm.DB, entity *T) error
	Delete(db *gorm.DB, id int) error
}

type gormRepository[T any] struct {
	schema   EntitySchema
	notFound error
}

func newGormRepository[T any](schema EntitySchema, notFound error) *gormRepository[T] {
	return &gormRepository[T]{schema: schema, notFound: notFound}
}

func (r *gormRepository[T]) preload(db *gorm.DB) *gorm.DB {
	for _, rel := range r.schema.Preload {
		db = db.Preload(rel)
	}
	return db
}

func (r *gormRepository[T]) Create(db *gorm.DB, entity *T) error {
	return db.Omit(clause.Associations).Create(entity).Error
}

func (r *gormRepository[T]) FindByID(db *gorm.DB, id int) (*T, error) {
	var entity T
	err := r.preload(db).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormRepository[T]) List(db *gorm.DB, params ListParams) ([]T, int64, error) {
	query := db.Model(new(T))

	for name, value := range params.Filters {
		if value == nil {
			continue
		}
		column, ok := r.schema.Filterable[name]
		if !ok {
			return nil, 0, fmt.Errorf("unknown filter %q", name)
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := params.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	column, ok := r.schema.Sortable[orderBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidSortField, orderBy)
	}

	if params.Random {
		query = query.Order(randomOrder(db))
	} else {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: params.Desc})
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var items []T
	if err := r.preload(query).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *gormRepository[T]) Update(db *gorm.DB, entity *T) error {
	return db.Omit(clause.Associations).Save(entity).Error
}

func (r *gormRepository[T]) Delete(db *gorm.DB, id int) error {
	result := db.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

func randomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}
