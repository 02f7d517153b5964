package handlers

import (
	"io"
	"net/http"

	"lookhub/internal/logger"
	"lookhub/internal/services"
	"lookhub/internal/services/dto"
	"lookhub/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ImageFilesField is the multipart field carrying look images.
const ImageFilesField = "image_files"

type LookHandler struct {
	*BaseHandler
	lookService   services.LookService
	maxUploadSize int64
}

func NewLookHandler(base *BaseHandler, lookService services.LookService, maxUploadSize int64) *LookHandler {
	return &LookHandler{
		BaseHandler:   base,
		lookService:   lookService,
		maxUploadSize: maxUploadSize,
	}
}

func (h *LookHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	public := r.Group("/looks")
	{
		public.GET("/", h.ListLooks)
		public.GET("/:id", h.GetLook)
	}

	looks := r.Group("/looks")
	looks.Use(requireAuth)
	{
		looks.POST("/", h.CreateLook)
		looks.PATCH("/:id", h.UpdateLook)
		looks.DELETE("/:id", h.DeleteLook)

		looks.POST("/:id/add_clothes_categories", h.AddCategories)
		looks.DELETE("/:id/categories/:category_id", h.DeleteCategory)
		looks.POST("/:id/categories/:category_id/clothes", h.AddClothesToCategory)
		looks.DELETE("/:id/categories/:category_id/clothes/:clothes_id", h.RemoveClothesFromCategory)

		looks.POST("/:id/add_images", h.AddImages)
		looks.POST("/:id/publish", h.Publish)
	}
}

// CreateLook godoc
// @Summary Создать образ
// @Tags looks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param look body dto.CreateLookRequest true "Данные образа"
// @Success 201 {object} dto.LookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/looks/ [post]
func (h *LookHandler) CreateLook(c *gin.Context) {
	var req dto.CreateLookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	look, err := h.lookService.CreateLook(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, look)
}

// ListLooks godoc
// @Summary Список образов
// @Tags looks
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(25)
// @Param order_by query string false "Поле сортировки" default(id)
// @Param desc_order query bool false "По убыванию" default(true)
// @Param random_order query bool false "Случайный порядок" default(false)
// @Param checked query bool false "Проверен"
// @Param pushed query bool false "Опубликован"
// @Success 200 {object} dto.Paginated[dto.LookResponse]
// @Router /api/looks/ [get]
func (h *LookHandler) ListLooks(c *gin.Context) {
	var query dto.LookListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.lookService.ListLooks(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetLook godoc
// @Summary Получить образ
// @Tags looks
// @Produce json
// @Param id path int true "ID образа"
// @Success 200 {object} dto.LookResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/looks/{id} [get]
func (h *LookHandler) GetLook(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	look, err := h.lookService.GetLook(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// UpdateLook godoc
// @Summary Обновить образ
// @Description Картинки, убранные из image_urls, удаляются из хранилища.
// @Tags looks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param look body dto.UpdateLookRequest true "Изменяемые поля"
// @Success 200 {object} dto.LookResponse
// @Router /api/looks/{id} [patch]
func (h *LookHandler) UpdateLook(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	look, err := h.lookService.UpdateLook(c.Request.Context(), h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// DeleteLook godoc
// @Summary Удалить образ
// @Tags looks
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Success 204
// @Router /api/looks/{id} [delete]
func (h *LookHandler) DeleteLook(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.lookService.DeleteLook(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCategories godoc
// @Summary Добавить категории вещей к образу
// @Tags looks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param categories body []dto.CategoryInput true "Категории"
// @Success 200 {object} dto.LookResponse
// @Router /api/looks/{id}/add_clothes_categories [post]
func (h *LookHandler) AddCategories(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var categories []dto.CategoryInput
	if err := c.ShouldBindJSON(&categories); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	for i := range categories {
		if !h.Validate(c, &categories[i]) {
			return
		}
	}

	look, err := h.lookService.AddCategories(c.Request.Context(), h.GetDB(c), id, categories)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// DeleteCategory godoc
// @Summary Удалить категорию образа
// @Tags looks
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param category_id path int true "ID категории"
// @Success 200 {object} dto.LookResponse
// @Router /api/looks/{id}/categories/{category_id} [delete]
func (h *LookHandler) DeleteCategory(c *gin.Context) {
	lookID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.ParseIDParam(c, "category_id")
	if !ok {
		return
	}

	look, err := h.lookService.DeleteCategory(c.Request.Context(), h.GetDB(c), lookID, categoryID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// AddClothesToCategory godoc
// @Summary Добавить вещь в категорию
// @Tags looks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param category_id path int true "ID категории"
// @Param request body dto.AddClothesToCategoryRequest true "ID вещи"
// @Success 200 {object} dto.LookResponse
// @Router /api/looks/{id}/categories/{category_id}/clothes [post]
func (h *LookHandler) AddClothesToCategory(c *gin.Context) {
	lookID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.ParseIDParam(c, "category_id")
	if !ok {
		return
	}
	var req dto.AddClothesToCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	look, err := h.lookService.AddClothesToCategory(c.Request.Context(), h.GetDB(c), lookID, categoryID, req.ClothesID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// RemoveClothesFromCategory godoc
// @Summary Убрать вещь из категории
// @Tags looks
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param category_id path int true "ID категории"
// @Param clothes_id path int true "ID вещи"
// @Success 200 {object} dto.LookResponse
// @Router /api/looks/{id}/categories/{category_id}/clothes/{clothes_id} [delete]
func (h *LookHandler) RemoveClothesFromCategory(c *gin.Context) {
	lookID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.ParseIDParam(c, "category_id")
	if !ok {
		return
	}
	clothesID, ok := h.ParseIDParam(c, "clothes_id")
	if !ok {
		return
	}

	look, err := h.lookService.RemoveClothesFromCategory(c.Request.Context(), h.GetDB(c), lookID, categoryID, clothesID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// AddImages godoc
// @Summary Загрузить картинки образа
// @Description Картинки приводятся к PNG и дописываются в конец списка image_urls.
// @Tags looks
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Param image_files formData file true "Картинки"
// @Success 200 {object} dto.LookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /api/looks/{id}/add_images [post]
func (h *LookHandler) AddImages(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}
	form, err := c.MultipartForm()
	if err != nil {
		logger.CtxWithError(ctx, "Failed to parse multipart form", err, "look_id", id)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}
	headers := form.File[ImageFilesField]
	if len(headers) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No files in field "+ImageFilesField))
		return
	}

	files := make([]dto.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidFile(err, fh.Filename))
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidFile(err, fh.Filename))
			return
		}
		files = append(files, dto.ImageFile{Filename: fh.Filename, Content: content})
	}

	look, err := h.lookService.AddImages(ctx, h.GetDB(c), id, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, look)
}

// Publish godoc
// @Summary Отправить образ в соцсети
// @Description Образ должен быть проверен (checked) и иметь хотя бы одну картинку.
// @Tags looks
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID образа"
// @Success 200 {object} dto.PublishResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Router /api/looks/{id}/publish [post]
func (h *LookHandler) Publish(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.lookService.Publish(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
