package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/usecase"
)

// AuditHandler はレビュー監査のハンドラー
type AuditHandler struct {
	auditUseCase usecase.AuditUseCase
}

func NewAuditHandler(auditUseCase usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase}
}

// GetAnomalies GET /admin/anomalies
func (h *AuditHandler) GetAnomalies(c *gin.Context) {
	response, err := h.auditUseCase.Run(c.Request.Context())
	if err != nil {
		respondError(c, "レビュー監査に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}
