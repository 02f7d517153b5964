package helpers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lookhub/internal/models"
)

// NewTestDB opens a fresh in-memory SQLite database with every table migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "AutoMigrate для тестовой БД")
	return db
}

// CreateClothes сохраняет вещь с разумными значениями по умолчанию.
func CreateClothes(t *testing.T, db *gorm.DB, name string) *models.Clothes {
	t.Helper()
	clothes := &models.Clothes{
		Name:     name,
		Colours:  datatypes.JSONSlice[models.Colour]{models.ColourBlack},
		Gender:   models.GenderUnisex,
		Link:     "https://shop.example.com/" + name,
		ImageURL: "https://shop.example.com/" + name + ".jpg",
	}
	require.NoError(t, db.Create(clothes).Error)
	return clothes
}

// LookOption tweaks a look before CreateLook saves it.
type LookOption func(*models.Look)

func Checked() LookOption {
	return func(l *models.Look) { l.Checked = true }
}

func Pushed() LookOption {
	return func(l *models.Look) { l.Pushed = true }
}

func WithImages(paths ...string) LookOption {
	return func(l *models.Look) { l.ImageURLs = paths }
}

// CreateLook сохраняет образ без категорий.
func CreateLook(t *testing.T, db *gorm.DB, name string, opts ...LookOption) *models.Look {
	t.Helper()
	look := &models.Look{
		Name:         name,
		Gender:       models.GenderFemale,
		Description:  "<p>" + name + "</p>",
		ImagePrompts: datatypes.JSONSlice[string]{},
		ImageURLs:    datatypes.JSONSlice[string]{},
	}
	for _, opt := range opts {
		opt(look)
	}
	require.NoError(t, db.Omit("Categories").Create(look).Error)
	return look
}

// ReloadLook reads the look back from the database.
func ReloadLook(t *testing.T, db *gorm.DB, id int) *models.Look {
	t.Helper()
	var look models.Look
	require.NoError(t, db.First(&look, id).Error)
	return &look
}
