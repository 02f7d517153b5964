package services

import (
	"encoding/json"

	"lookhub/internal/models"
	"lookhub/internal/services/dto"
)

func colourStrings(colours []models.Colour) []string {
	out := make([]string, 0, len(colours))
	for _, c := range colours {
		out = append(out, string(c))
	}
	return out
}

func toColours(values []string) []models.Colour {
	out := make([]models.Colour, 0, len(values))
	for _, v := range values {
		out = append(out, models.Colour(v))
	}
	return out
}

func toClothesResponse(host string, c *models.Clothes) dto.ClothesResponse {
	return dto.ClothesResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Colours:     colourStrings(c.Colours),
		Gender:      string(c.Gender),
		Link:        c.Link,
		ImageURL:    dto.ExternalImageURL(host, c.ImageURL),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toLookResponse(host string, l *models.Look) *dto.LookResponse {
	resp := &dto.LookResponse{
		ID:           l.ID,
		Name:         l.Name,
		Gender:       string(l.Gender),
		Description:  l.Description,
		Categories:   make([]dto.CategoryResponse, 0, len(l.Categories)),
		ImagePrompts: append([]string{}, l.ImagePrompts...),
		ImageURLs:    dto.ExternalImageURLs(host, l.ImageURLs),
		Checked:      l.Checked,
		Pushed:       l.Pushed,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if len(l.ContentJSON) > 0 {
		resp.ContentJSON = json.RawMessage(l.ContentJSON)
	}
	for _, c := range l.Categories {
		cat := dto.CategoryResponse{ID: c.ID, Name: c.Name, Clothes: make([]dto.ClothesResponse, 0, len(c.Clothes))}
		for i := range c.Clothes {
			cat.Clothes = append(cat.Clothes, toClothesResponse(host, &c.Clothes[i]))
		}
		resp.Categories = append(resp.Categories, cat)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
