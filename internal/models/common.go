package models

import (
	"time"
)

type BaseModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&Clothes{},
		&Look{},
		&ClothesCategory{},
	}
}
