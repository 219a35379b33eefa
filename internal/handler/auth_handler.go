package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/application"
	"ViviCity-App/internal/domain/model"
)

// AuthHandler は利用者登録・ログインのハンドラー
type AuthHandler struct {
	authService application.AuthService
}

func NewAuthHandler(authService application.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "利用者登録に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ログインに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Me GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), c.GetString(ctxUserIDKey))
	if err != nil {
		respondError(c, "利用者の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
