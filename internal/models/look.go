package models

import (
	"gorm.io/datatypes"
)

type Look struct {
	BaseModel
	Name         string                      `gorm:"not null"`
	Gender       Gender                      `gorm:"type:varchar(16);not null"`
	Description  string                      `gorm:"type:text"`
	Categories   []ClothesCategory           `gorm:"foreignKey:LookID;constraint:OnDelete:CASCADE"`
	ImagePrompts datatypes.JSONSlice[string] `gorm:"not null"`
	ImageURLs    datatypes.JSONSlice[string] `gorm:"column:image_urls;not null"`
	ContentJSON  datatypes.JSON              `gorm:"column:content_json"`
	Checked      bool                        `gorm:"not null;default:false;index"`
	Pushed       bool                        `gorm:"not null;default:false;index"`
}

func (Look) TableName() string {
	return "looks"
}

// HasImages reports whether the look can be posted to platforms that need pictures.
func (l *Look) HasImages() bool {
	return len(l.ImageURLs) > 0
}

type ClothesCategory struct {
	BaseModel
	Name    string    `gorm:"not null"`
	LookID  int       `gorm:"not null;index"`
	Clothes []Clothes `gorm:"many2many:clothescategory_clothes;joinForeignKey:ClothescategoryID;joinReferences:ClothesID;constraint:OnDelete:CASCADE"`
}

func (ClothesCategory) TableName() string {
	return "clothes_categories"
}

// ClothesCategoryJoinTable is the many-to-many link table between categories and clothes.
const ClothesCategoryJoinTable = "clothescategory_clothes"
