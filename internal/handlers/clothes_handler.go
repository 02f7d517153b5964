package handlers

import (
	"net/http"

	"lookhub/internal/services"
	"lookhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ClothesHandler struct {
	*BaseHandler
	clothesService services.ClothesService
}

func NewClothesHandler(base *BaseHandler, clothesService services.ClothesService) *ClothesHandler {
	return &ClothesHandler{
		BaseHandler:    base,
		clothesService: clothesService,
	}
}

func (h *ClothesHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	public := r.Group("/clothes")
	{
		public.GET("/", h.ListClothes)
		public.GET("/:id", h.GetClothes)
	}

	protected := r.Group("/clothes")
	protected.Use(requireAuth)
	{
		protected.POST("/", h.CreateClothes)
		protected.POST("/ai", h.ImportClothes)
		protected.PATCH("/:id", h.UpdateClothes)
		protected.DELETE("/:id", h.DeleteClothes)
	}
}

// CreateClothes godoc
// @Summary Создать вещь
// @Tags clothes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clothes body dto.CreateClothesRequest true "Данные вещи"
// @Success 201 {object} dto.ClothesResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/clothes/ [post]
func (h *ClothesHandler) CreateClothes(c *gin.Context) {
	var req dto.CreateClothesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	clothes, err := h.clothesService.CreateClothes(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clothes)
}

// ImportClothes godoc
// @Summary Создать вещь по ссылке на товар
// @Description Название, описание и картинка берутся из og-метаданных страницы товара.
// @Tags clothes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportClothesRequest true "Ссылка на товар"
// @Success 201 {object} dto.ClothesResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /api/clothes/ai [post]
func (h *ClothesHandler) ImportClothes(c *gin.Context) {
	var req dto.ImportClothesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	clothes, err := h.clothesService.ImportClothes(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clothes)
}

// ListClothes godoc
// @Summary Список вещей
// @Tags clothes
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Размер страницы" default(25)
// @Param order_by query string false "Поле сортировки" default(id)
// @Param desc_order query bool false "По убыванию" default(true)
// @Param random_order query bool false "Случайный порядок" default(false)
// @Param gender query string false "Пол"
// @Success 200 {object} dto.Paginated[dto.ClothesResponse]
// @Router /api/clothes/ [get]
func (h *ClothesHandler) ListClothes(c *gin.Context) {
	var query dto.ClothesListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.clothesService.ListClothes(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetClothes godoc
// @Summary Получить вещь
// @Tags clothes
// @Produce json
// @Param id path int true "ID вещи"
// @Success 200 {object} dto.ClothesResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/clothes/{id} [get]
func (h *ClothesHandler) GetClothes(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	clothes, err := h.clothesService.GetClothes(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clothes)
}

// UpdateClothes godoc
// @Summary Обновить вещь
// @Tags clothes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вещи"
// @Param clothes body dto.UpdateClothesRequest true "Изменяемые поля"
// @Success 200 {object} dto.ClothesResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/clothes/{id} [patch]
func (h *ClothesHandler) UpdateClothes(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateClothesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	clothes, err := h.clothesService.UpdateClothes(c.Request.Context(), h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clothes)
}

// DeleteClothes godoc
// @Summary Удалить вещь
// @Tags clothes
// @Security BearerAuth
// @Param id path int true "ID вещи"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/clothes/{id} [delete]
func (h *ClothesHandler) DeleteClothes(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clothesService.DeleteClothes(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
