package dto

type TokenRequest struct {
	APIKey string `form:"api_key" json:"api_key" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AdminLoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// AdminSession is returned by a successful admin login.
type AdminSession struct {
	AdminToken string
	APIToken   string
	MaxAge     int // seconds
}
