package dto

import (
	"encoding/json"
	"time"
)

type CreateLookRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Gender       string          `json:"gender" validate:"required,is-gender"`
	Description  string          `json:"description"`
	ImagePrompts []string        `json:"image_prompts"`
	ImageURLs    []string        `json:"image_urls"`
	ContentJSON  json.RawMessage `json:"content_json" swaggertype:"object"`
	Checked      bool            `json:"checked"`
}

type UpdateLookRequest struct {
	Name         *string         `json:"name,omitempty" validate:"omitempty,max=255"`
	Gender       *string         `json:"gender,omitempty" validate:"omitempty,is-gender"`
	Description  *string         `json:"description,omitempty"`
	ImagePrompts []string        `json:"image_prompts,omitempty"`
	ImageURLs    []string        `json:"image_urls,omitempty"`
	ContentJSON  json.RawMessage `json:"content_json,omitempty" swaggertype:"object"`
	Checked      *bool           `json:"checked,omitempty"`
	Pushed       *bool           `json:"pushed,omitempty"`
}

type LookListQuery struct {
	ListQuery
	Checked *bool   `form:"checked" json:"checked"`
	Pushed  *bool   `form:"pushed" json:"pushed"`
	Gender  *string `form:"gender" json:"gender" validate:"omitempty,is-gender"`
}

// CategoryInput is one element of the add_clothes_categories body.
type CategoryInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Clothes []int  `json:"clothes"`
}

type AddClothesToCategoryRequest struct {
	ClothesID int `json:"clothes_id" validate:"required,min=1"`
}

// ImageFile is one uploaded image already read into memory.
type ImageFile struct {
	Filename string
	Content  []byte
}

type CategoryResponse struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Clothes []ClothesResponse `json:"clothes"`
}

type LookResponse struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Gender       string             `json:"gender"`
	Description  string             `json:"description"`
	Categories   []CategoryResponse `json:"categories"`
	ImagePrompts []string           `json:"image_prompts"`
	ImageURLs    []string           `json:"image_urls"`
	ContentJSON  json.RawMessage    `json:"content_json,omitempty" swaggertype:"object"`
	Checked      bool               `json:"checked"`
	Pushed       bool               `json:"pushed"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type PublishResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	LookID  int    `json:"look_id"`
}
