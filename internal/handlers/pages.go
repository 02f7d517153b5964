package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"lookhub/internal/logger"
	"lookhub/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded admin and frontend pages.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/*.html")
}

// pager is the pagination state passed to list pages.
type pager struct {
	Page     int
	PageSize int
	Count    int64
}

func (p pager) HasPrev() bool { return p.Page > 1 }
func (p pager) HasNext() bool { return int64(p.Page*p.PageSize) < p.Count }

// renderError shows the error page with the status of the service error.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		status = appErr.HTTPCode
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "Page rendering failed", err, "path", c.Request.URL.Path)
	}
	c.HTML(status, "error.html", gin.H{"Status": status, "Message": message})
}
