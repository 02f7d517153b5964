package handlers

import (
	"net/http"

	"lookhub/internal/services"
	"lookhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// FrontendHandler renders the public pages with checked looks.
type FrontendHandler struct {
	*BaseHandler
	lookService services.LookService
}

func NewFrontendHandler(base *BaseHandler, lookService services.LookService) *FrontendHandler {
	return &FrontendHandler{
		BaseHandler: base,
		lookService: lookService,
	}
}

func (h *FrontendHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/looks/:id", h.Look)
}

func (h *FrontendHandler) Index(c *gin.Context) {
	checked := true
	query := dto.LookListQuery{Checked: &checked}
	query.Page = ParseQueryInt(c, "page", 1)
	query.PageSize = dto.DefaultPageSize

	page, err := h.lookService.ListLooks(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Looks": page.Results,
		"Pager": pager{Page: query.Page, PageSize: query.PageSize, Count: page.Count},
	})
}

func (h *FrontendHandler) Look(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	look, err := h.lookService.GetLook(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	if !look.Checked {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Status": http.StatusNotFound, "Message": "Look not found"})
		return
	}
	c.HTML(http.StatusOK, "look.html", gin.H{"Look": look})
}
