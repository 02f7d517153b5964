package poster

import (
	"encoding/json"
	"fmt"

	"lookhub/internal/models"
	"lookhub/internal/services/dto"
	"lookhub/internal/validator"
)

type ClothesSnapshot struct {
	ID          int      `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Colours     []string `json:"colours"`
	Gender      string   `json:"gender"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
}

type CategorySnapshot struct {
	ID      int               `json:"id"`
	Name    string            `json:"name" validate:"required"`
	Clothes []ClothesSnapshot `json:"clothes" validate:"dive"`
}

// LookSnapshot is the look as it travels through the queues. Image URLs are external.
type LookSnapshot struct {
	ID           int                `json:"id" validate:"required,min=1"`
	Name         string             `json:"name" validate:"required"`
	Gender       string             `json:"gender" validate:"required,is-gender"`
	Description  string             `json:"description"`
	Categories   []CategorySnapshot `json:"clothes_categories" validate:"dive"`
	ImagePrompts []string           `json:"image_prompts"`
	ImageURLs    []string           `json:"image_urls"`
	ContentJSON  *string            `json:"content_json"`
	Checked      bool               `json:"checked"`
	Pushed       bool               `json:"pushed"`
	TaskID       string             `json:"task_id"`
}

// NewLookSnapshot builds the queue representation of look; apiHost expands stored image paths.
func NewLookSnapshot(look *models.Look, apiHost, taskID string) *LookSnapshot {
	s := &LookSnapshot{
		ID:           look.ID,
		Name:         look.Name,
		Gender:       string(look.Gender),
		Description:  look.Description,
		Categories:   make([]CategorySnapshot, 0, len(look.Categories)),
		ImagePrompts: append([]string{}, look.ImagePrompts...),
		ImageURLs:    dto.ExternalImageURLs(apiHost, look.ImageURLs),
		Checked:      look.Checked,
		Pushed:       look.Pushed,
		TaskID:       taskID,
	}
	if len(look.ContentJSON) > 0 {
		content := string(look.ContentJSON)
		s.ContentJSON = &content
	}

	for _, c := range look.Categories {
		cat := CategorySnapshot{ID: c.ID, Name: c.Name, Clothes: make([]ClothesSnapshot, 0, len(c.Clothes))}
		for _, cl := range c.Clothes {
			colours := make([]string, 0, len(cl.Colours))
			for _, colour := range cl.Colours {
				colours = append(colours, string(colour))
			}
			cat.Clothes = append(cat.Clothes, ClothesSnapshot{
				ID:          cl.ID,
				Name:        cl.Name,
				Description: cl.Description,
				Colours:     colours,
				Gender:      string(cl.Gender),
				Link:        cl.Link,
				ImageURL:    dto.ExternalImageURL(apiHost, cl.ImageURL),
			})
		}
		s.Categories = append(s.Categories, cat)
	}
	return s
}

var snapshotValidator = validator.New()

// DecodeSnapshot parses and validates a look snapshot. Any failure wraps ErrValidation.
func DecodeSnapshot(raw json.RawMessage) (*LookSnapshot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: empty look", ErrValidation)
	}
	var s LookSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := snapshotValidator.Validate(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return &s, nil
}
