package controller

import (
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionController struct {
	config *config.Config
}

func NewSessionController(cfg *config.Config) *SessionController {
	return &SessionController{config: cfg}
}

// Create cấp session token ẩn danh
// @Summary Tạo phiên làm việc ẩn danh
// @Description Không cần tài khoản; token chỉ dùng để gom lịch sử và khoá yêu cầu đang chạy của từng client
// @Tags Session
// @Produce json
// @Success 201 {object} util.Response
// @Router /session [post]
func (c *SessionController) Create(ctx *gin.Context) {
	sessionID := uuid.New().String()

	token, err := util.GenerateSessionJWT(sessionID, c.config.JWT.Secret, c.config.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"token":     token,
		"sessionId": sessionID,
		"expiresIn": int64(c.config.JWT.ExpireTime.Seconds()),
	})
}
