package models

import (
	"gorm.io/datatypes"
)

type Clothes struct {
	BaseModel
	Name        string                      `gorm:"not null"`
	Description *string                     `gorm:"type:text"`
	Colours     datatypes.JSONSlice[Colour] `gorm:"not null"`
	Gender      Gender                      `gorm:"type:varchar(16);not null;index"`
	Link        string                      `gorm:"not null"`
	ImageURL    string                      `gorm:"column:image_url;not null"`
}

func (Clothes) TableName() string {
	return "clothes"
}
