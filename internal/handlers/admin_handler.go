package handlers

import (
	"net/http"

	"lookhub/internal/middleware"
	"lookhub/internal/services"
	"lookhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const adminLoginPath = "/admin/login"

type AdminHandler struct {
	*BaseHandler
	authService    services.AuthService
	clothesService services.ClothesService
	lookService    services.LookService
	cookieSecure   bool
}

func NewAdminHandler(
	base *BaseHandler,
	authService services.AuthService,
	clothesService services.ClothesService,
	lookService services.LookService,
	cookieSecure bool,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    base,
		authService:    authService,
		clothesService: clothesService,
		lookService:    lookService,
		cookieSecure:   cookieSecure,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	r.GET(adminLoginPath, h.LoginPage)
	r.POST(adminLoginPath, h.Login)
	r.GET("/admin/logout", h.Logout)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(h.authService, adminLoginPath))
	{
		admin.GET("", h.Dashboard)
		admin.GET("/clothes", h.ClothesList)
		admin.GET("/clothes/:id", h.ClothesDetail)
		admin.GET("/looks", h.LooksList)
		admin.GET("/looks/:id", h.LookDetail)
	}
}

func (h *AdminHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// Login ставит httpOnly куку admin_token и отдаёт страницу, которая сохраняет API-токен для UI.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		c.HTML(http.StatusBadRequest, "admin_login.html", gin.H{"Error": "Введите логин и пароль"})
		return
	}

	session, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"Error":    "Неверный логин или пароль",
			"Username": req.Username,
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, session.AdminToken, session.MaxAge, "/", "", h.cookieSecure, true)
	c.HTML(http.StatusOK, "admin_token.html", gin.H{"APIToken": session.APIToken})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, adminLoginPath)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	one := dto.ListQuery{PageSize: 1}
	clothes, err := h.clothesService.ListClothes(ctx, db, &dto.ClothesListQuery{ListQuery: one})
	if err != nil {
		renderError(c, err)
		return
	}
	looks, err := h.lookService.ListLooks(ctx, db, &dto.LookListQuery{ListQuery: one})
	if err != nil {
		renderError(c, err)
		return
	}
	unchecked := false
	pending, err := h.lookService.ListLooks(ctx, db, &dto.LookListQuery{ListQuery: one, Checked: &unchecked})
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin_index.html", gin.H{
		"Admin":        middleware.GetAdmin(c),
		"ClothesCount": clothes.Count,
		"LooksCount":   looks.Count,
		"PendingCount": pending.Count,
	})
}

func (h *AdminHandler) ClothesList(c *gin.Context) {
	var query dto.ClothesListQuery
	query.Page = ParseQueryInt(c, "page", 1)
	query.PageSize = dto.DefaultPageSize
	if gender := c.Query("gender"); gender != "" {
		query.Gender = &gender
	}

	page, err := h.clothesService.ListClothes(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_clothes.html", gin.H{
		"Admin":   middleware.GetAdmin(c),
		"Clothes": page.Results,
		"Pager":   pager{Page: query.Page, PageSize: query.PageSize, Count: page.Count},
	})
}

func (h *AdminHandler) ClothesDetail(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	clothes, err := h.clothesService.GetClothes(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_clothes_detail.html", gin.H{
		"Admin":   middleware.GetAdmin(c),
		"Clothes": clothes,
	})
}

func (h *AdminHandler) LooksList(c *gin.Context) {
	var query dto.LookListQuery
	query.Page = ParseQueryInt(c, "page", 1)
	query.PageSize = dto.DefaultPageSize
	switch c.Query("checked") {
	case "true":
		v := true
		query.Checked = &v
	case "false":
		v := false
		query.Checked = &v
	}

	page, err := h.lookService.ListLooks(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_looks.html", gin.H{
		"Admin": middleware.GetAdmin(c),
		"Looks": page.Results,
		"Pager": pager{Page: query.Page, PageSize: query.PageSize, Count: page.Count},
	})
}

func (h *AdminHandler) LookDetail(c *gin.Context) {
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
	c.HTML(http.StatusOK, "admin_look_detail.html", gin.H{
		"Admin": middleware.GetAdmin(c),
		"Look":  look,
	})
}
