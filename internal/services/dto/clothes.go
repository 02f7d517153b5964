package dto

import (
	"time"
)

type CreateClothesRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description *string  `json:"description"`
	Colours     []string `json:"colours" validate:"dive,is-colour"`
	Gender      string   `json:"gender" validate:"required,is-gender"`
	Link        string   `json:"link" validate:"required,url"`
	ImageURL    string   `json:"image_url" validate:"required"`
}

type UpdateClothesRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Colours     []string `json:"colours,omitempty" validate:"omitempty,dive,is-colour"`
	Gender      *string  `json:"gender,omitempty" validate:"omitempty,is-gender"`
	Link        *string  `json:"link,omitempty" validate:"omitempty,url"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// ImportClothesRequest creates clothes from a product page.
type ImportClothesRequest struct {
	Link    string   `json:"link" validate:"required,url"`
	Gender  string   `json:"gender" validate:"omitempty,is-gender"`
	Colours []string `json:"colours" validate:"dive,is-colour"`
}

type ClothesListQuery struct {
	ListQuery
	Gender *string `form:"gender" json:"gender" validate:"omitempty,is-gender"`
}

type ClothesResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Colours     []string  `json:"colours"`
	Gender      string    `json:"gender"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
