package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"lookhub/internal/logger"
	"lookhub/internal/storage"
	"lookhub/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const signedURLExpiry = 15 * time.Minute

// ImageHandler отдаёт сохранённые картинки образов.
type ImageHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewImageHandler(base *BaseHandler, storage storage.Storage) *ImageHandler {
	return &ImageHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *ImageHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/images/*path", h.ServeImage)
	r.HEAD("/images/*path", h.ServeImage)
}

// ServeImage godoc
// @Summary Получить картинку
// @Description Для облачных хранилищ отвечает редиректом на подписанную ссылку.
// @Tags images
// @Produce image/png
// @Param path path string true "Путь картинки"
// @Success 200 {file} file
// @Success 307
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /images/{path} [get]
func (h *ImageHandler) ServeImage(c *gin.Context) {
	ctx := c.Request.Context()
	name := strings.TrimPrefix(c.Param("path"), "/")
	if name == "" {
		apperrors.HandleError(c, apperrors.ErrNotFound(storage.ErrNotFound, "image", "Image not found"))
		return
	}

	signed, err := h.storage.GetSignedURL(ctx, name, signedURLExpiry)
	if err != nil {
		h.storageError(c, name, err)
		return
	}
	if signed != "" {
		c.Redirect(http.StatusTemporaryRedirect, signed)
		return
	}

	reader, err := h.storage.Get(ctx, name)
	if err != nil {
		h.storageError(c, name, err)
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Status(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(ctx, "Failed to stream image", err, "path", name)
	}
}

func (h *ImageHandler) storageError(c *gin.Context, name string, err error) {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
		apperrors.HandleError(c, apperrors.ErrNotFound(err, "image", "Image not found"))
		return
	}
	logger.CtxWithError(c.Request.Context(), "Storage error", err, "path", name)
	apperrors.HandleError(c, apperrors.InternalError(err))
}
