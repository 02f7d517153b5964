package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	ClothesHandler  *ClothesHandler
	LookHandler     *LookHandler
	ImageHandler    *ImageHandler
	AdminHandler    *AdminHandler
	FrontendHandler *FrontendHandler
	HealthHandler   *HealthHandler
}
