package services

import (
	"lookhub/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ClothesService ClothesService
	LookService    LookService
	AuthService    AuthService
	Storage        storage.Storage
}
