package controller

import (
	"errors"
	"medblueprint_backend/internal/model"
	"medblueprint_backend/internal/service"
	"medblueprint_backend/internal/util"
	"medblueprint_backend/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Thông báo duy nhất cho mọi lỗi sinh: nguyên nhân cụ thể chỉ ghi log.
const generationFailureMessage = "Đã xảy ra lỗi khi kết nối với AI. Vui lòng kiểm tra kết nối mạng và API Key."

type BlueprintController struct {
	blueprintService *service.BlueprintService
}

func NewBlueprintController(blueprintService *service.BlueprintService) *BlueprintController {
	return &BlueprintController{blueprintService: blueprintService}
}

type GenerateBlueprintRequest struct {
	ExamType     model.ExamType                 `json:"examType" binding:"required,oneof=subject graduation"`
	Mode         model.GenerationMode           `json:"mode" binding:"required,oneof=auto manual"`
	Topic        string                         `json:"topic" binding:"required"`
	Audience     string                         `json:"audience" binding:"required"`
	NumQuestions int                            `json:"numQuestions" binding:"required,min=5,max=200"`
	Constraints  *model.DistributionConstraints `json:"constraints,omitempty"`
}

// Generate sinh ma trận đề thi
// @Summary Sinh ma trận đề thi
// @Description Kiểm tra tỉ trọng (chế độ thủ công), gọi AI sinh ma trận, kiểm tra và tổng hợp kết quả
// @Tags Blueprint
// @Accept json
// @Produce json
// @Param request body GenerateBlueprintRequest true "Tham số thiết kế đề thi"
// @Success 200 {object} util.Response{data=service.GenerateResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 502 {object} util.Response
// @Security ApiKeyAuth
// @Router /blueprints/generate [post]
func (c *BlueprintController) Generate(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateBlueprintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.blueprintService.Generate(ctx.Request.Context(), session.SessionID, service.GenerateInput{
		ExamType:       req.ExamType,
		Mode:           req.Mode,
		Topic:          req.Topic,
		Audience:       req.Audience,
		TotalQuestions: req.NumQuestions,
		Constraints:    req.Constraints,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			ctx.JSON(http.StatusBadRequest, util.Response{
				Code:    http.StatusBadRequest,
				Message: verr.Error(),
				Data:    gin.H{"axes": verr.Axes},
			})
		case errors.Is(err, util.ErrEmptyTopic),
			errors.Is(err, util.ErrUnknownAudience),
			errors.Is(err, util.ErrMissingConstraints):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrGenerationInFlight):
			util.Conflict(ctx, err.Error())
		default:
			logger.Log.Error("blueprint generation failed",
				zap.String("session", session.SessionID),
				zap.String("topic", req.Topic),
				zap.Error(err))
			util.Error(ctx, http.StatusBadGateway, generationFailureMessage)
		}
		return
	}

	util.Success(ctx, result)
}

// Current trả về ma trận đang hiển thị
// @Summary Ma trận hiện tại của phiên
// @Tags Blueprint
// @Produce json
// @Success 200 {object} util.Response{data=service.GenerateResult}
// @Failure 404 {object} util.Response
// @Security ApiKeyAuth
// @Router /blueprints/current [get]
func (c *BlueprintController) Current(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.blueprintService.Current(ctx.Request.Context(), session.SessionID)
	if err != nil {
		if errors.Is(err, util.ErrNoCurrentBlueprint) {
			util.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// List liệt kê lịch sử sinh của phiên
// @Summary Lịch sử sinh ma trận
// @Tags Blueprint
// @Produce json
// @Param page query int false "Trang" default(1)
// @Param limit query int false "Số bản ghi mỗi trang" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security ApiKeyAuth
// @Router /blueprints [get]
func (c *BlueprintController) List(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	blueprints, total, err := c.blueprintService.List(session.SessionID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  blueprints,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get trả về một bản ghi lịch sử
// @Summary Chi tiết một ma trận đã sinh
// @Tags Blueprint
// @Produce json
// @Param id path string true "ID bản ghi"
// @Success 200 {object} util.Response{data=model.Blueprint}
// @Failure 404 {object} util.Response
// @Security ApiKeyAuth
// @Router /blueprints/{id} [get]
func (c *BlueprintController) Get(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	blueprint, err := c.blueprintService.GetByID(session.SessionID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, blueprint)
}

// Meta trả về danh mục cố định cho form
// @Summary Danh mục mức độ nhận thức, lĩnh vực năng lực và đối tượng
// @Tags Blueprint
// @Produce json
// @Success 200 {object} util.Response
// @Router /blueprints/meta [get]
func (c *BlueprintController) Meta(ctx *gin.Context) {
	levels := make([]gin.H, 0, len(model.CognitiveLevels))
	for _, level := range model.CognitiveLevels {
		levels = append(levels, gin.H{
			"tag":   level,
			"label": model.CognitiveLabels[level],
			"color": model.CognitiveColors[level],
		})
	}

	domains := make([]gin.H, 0, len(model.CompetencyDomains))
	for _, domain := range model.CompetencyDomains {
		domains = append(domains, gin.H{
			"tag":   domain,
			"label": model.CompetencyLabels[domain],
		})
	}

	util.Success(ctx, gin.H{
		"cognitiveLevels":   levels,
		"competencyDomains": domains,
		"audiences":         model.Audiences,
		"examTypes":         []model.ExamType{model.ExamSubject, model.ExamGraduation},
		"questionBounds":    gin.H{"min": 5, "max": 200},
	})
}
