package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"medblueprint_backend/internal/model"
	"medblueprint_backend/internal/repository"
	"medblueprint_backend/internal/util"
	"medblueprint_backend/pkg/logger"
	"medblueprint_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	generationLockTTL = 3 * time.Minute
	lockKeyPrefix     = "blueprint:lock:"
	currentKeyPrefix  = "blueprint:current:"
	currentSlotTTL    = 24 * time.Hour

	// Độ lệch phần trăm cho phép giữa phân bố trả về và tỉ trọng yêu cầu
	// trước khi cảnh báo (kiểm tra mang tính tư vấn, không chặn hiển thị).
	constraintTolerance = 5
)

// AxisError mô tả một trục tỉ trọng không hợp lệ.
type AxisError struct {
	Axis    string `json:"axis"` // "bloom" hoặc "competency"
	Sum     int    `json:"sum"`
	Message string `json:"message"`
}

// ValidationError gom toàn bộ lỗi tỉ trọng của cả hai trục.
type ValidationError struct {
	Axes []AxisError `json:"axes"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Axes))
	for i, a := range e.Axes {
		msgs[i] = a.Message
	}
	return strings.Join(msgs, " ")
}

// ValidateConstraints kiểm tra tỉ trọng thủ công: từng giá trị trong [0,100],
// không có khoá lạ, và mỗi trục có tổng đúng 100 (số nguyên, không dung sai).
// Giá trị 0 hợp lệ: một mức độ hoặc lĩnh vực có thể bị loại khỏi đề.
func ValidateConstraints(c *model.DistributionConstraints) error {
	if c == nil {
		return util.ErrMissingConstraints
	}

	var axes []AxisError

	bloomSum := 0
	for level, pct := range c.Bloom {
		if _, ok := model.CognitiveLabels[level]; !ok {
			axes = append(axes, AxisError{
				Axis:    "bloom",
				Message: fmt.Sprintf("Mức độ nhận thức không hợp lệ: %q.", string(level)),
			})
			continue
		}
		if pct < 0 || pct > 100 {
			axes = append(axes, AxisError{
				Axis:    "bloom",
				Message: fmt.Sprintf("Tỉ lệ của mức độ %q phải nằm trong khoảng 0-100.", model.CognitiveLabels[level]),
			})
		}
		bloomSum += pct
	}
	if bloomSum != 100 {
		axes = append(axes, AxisError{
			Axis:    "bloom",
			Sum:     bloomSum,
			Message: fmt.Sprintf("Tổng tỉ lệ Bloom hiện tại là %d%%. Vui lòng điều chỉnh về 100%%.", bloomSum),
		})
	}

	competencySum := 0
	for domain, pct := range c.Competency {
		if _, ok := model.CompetencyLabels[domain]; !ok {
			axes = append(axes, AxisError{
				Axis:    "competency",
				Message: fmt.Sprintf("Lĩnh vực năng lực không hợp lệ: %q.", string(domain)),
			})
			continue
		}
		if pct < 0 || pct > 100 {
			axes = append(axes, AxisError{
				Axis:    "competency",
				Message: fmt.Sprintf("Tỉ lệ của lĩnh vực %q phải nằm trong khoảng 0-100.", model.CompetencyLabels[domain]),
			})
		}
		competencySum += pct
	}
	if competencySum != 100 {
		axes = append(axes, AxisError{
			Axis:    "competency",
			Sum:     competencySum,
			Message: fmt.Sprintf("Tổng tỉ lệ Năng lực hiện tại là %d%%. Vui lòng điều chỉnh về 100%%.", competencySum),
		})
	}

	if len(axes) > 0 {
		return &ValidationError{Axes: axes}
	}
	return nil
}

// BuildRequest dựng yêu cầu sinh từ dữ liệu đã qua kiểm tra. Thuần tuý
// construction: không làm tròn, không chia phần — tỉ trọng chỉ được chuyển
// tiếp cho bên sinh dưới dạng gợi ý trong prompt.
func BuildRequest(examType model.ExamType, topic, audience string, totalQuestions int, constraints *model.DistributionConstraints) (*model.BlueprintRequest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.ErrEmptyTopic
	}

	known := false
	for _, a := range model.Audiences {
		if a == audience {
			known = true
			break
		}
	}
	if !known {
		return nil, util.ErrUnknownAudience
	}

	if examType != model.ExamSubject && examType != model.ExamGraduation {
		return nil, fmt.Errorf("loại kỳ thi không hợp lệ: %q", string(examType))
	}

	return &model.BlueprintRequest{
		ExamType:       examType,
		Topic:          topic,
		Audience:       audience,
		TotalQuestions: totalQuestions,
		Constraints:    constraints,
	}, nil
}

// VerificationWarning là một bất nhất được phát hiện trong kết quả trả về.
// Cảnh báo không chặn hiển thị và không bao giờ "sửa" lại con số.
type VerificationWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BlueprintSummary là các tổng chéo hàng, luôn được tính bất kể kết quả
// kiểm tra, dùng cho hàng tổng cộng của bảng và cho biểu đồ.
type BlueprintSummary struct {
	PerLevel   map[model.CognitiveLevel]int   `json:"perLevel"`
	PerDomain  map[model.CompetencyDomain]int `json:"perDomain"`
	GrandTotal int                            `json:"grandTotal"`
}

// VerifiedBlueprint là kết quả đã qua kiểm tra và tổng hợp.
type VerifiedBlueprint struct {
	Allocation *model.BlueprintAllocation `json:"allocation"`
	Summary    BlueprintSummary           `json:"summary"`
	Warnings   []VerificationWarning      `json:"warnings"`
}

// VerifyAllocation kiểm tra tính nhất quán nội tại của kết quả và tính các
// tổng hợp hiển thị. Các kiểm tra độc lập với nhau:
//
//	a. tổng từng hàng khớp với tổng 4 mức độ của hàng đó
//	b. totalQuestions khai báo khớp với tổng các hàng
//	c. totalQuestions khai báo khớp với số câu đã yêu cầu
//	d. (chỉ khi có tỉ trọng) phân bố Bloom bám sát tỉ trọng yêu cầu
func VerifyAllocation(allocation *model.BlueprintAllocation, req *model.BlueprintRequest) *VerifiedBlueprint {
	summary := BlueprintSummary{
		PerLevel:  make(map[model.CognitiveLevel]int, len(model.CognitiveLevels)),
		PerDomain: make(map[model.CompetencyDomain]int, len(model.CompetencyDomains)),
	}
	for _, level := range model.CognitiveLevels {
		summary.PerLevel[level] = 0
	}
	for _, domain := range model.CompetencyDomains {
		summary.PerDomain[domain] = 0
	}

	var warnings []VerificationWarning

	rowSum := 0
	for i, row := range allocation.Rows {
		cellSum := 0
		for _, level := range model.CognitiveLevels {
			count := row.CognitiveDistribution[level]
			cellSum += count
			summary.PerLevel[level] += count
		}
		summary.PerDomain[row.Competency] += row.TotalQuestions
		rowSum += row.TotalQuestions

		if cellSum != row.TotalQuestions {
			warnings = append(warnings, VerificationWarning{
				Code: "row_total_mismatch",
				Message: fmt.Sprintf("Hàng %d (%s): tổng khai báo %d khác tổng các mức độ %d.",
					i+1, row.TopicName, row.TotalQuestions, cellSum),
			})
		}
	}
	summary.GrandTotal = rowSum

	if allocation.TotalQuestions != rowSum {
		warnings = append(warnings, VerificationWarning{
			Code: "grand_total_mismatch",
			Message: fmt.Sprintf("Tổng khai báo %d khác tổng cộng các hàng %d.",
				allocation.TotalQuestions, rowSum),
		})
	}

	if req != nil && allocation.TotalQuestions != req.TotalQuestions {
		warnings = append(warnings, VerificationWarning{
			Code: "requested_total_mismatch",
			Message: fmt.Sprintf("Đã yêu cầu %d câu nhưng ma trận khai báo %d câu.",
				req.TotalQuestions, allocation.TotalQuestions),
		})
	}

	if req != nil && req.Constraints != nil && allocation.TotalQuestions > 0 {
		for _, level := range model.CognitiveLevels {
			actual := summary.PerLevel[level] * 100 / allocation.TotalQuestions
			want := req.Constraints.Bloom[level]
			diff := actual - want
			if diff < 0 {
				diff = -diff
			}
			if diff > constraintTolerance {
				warnings = append(warnings, VerificationWarning{
					Code: "constraint_deviation",
					Message: fmt.Sprintf("Mức độ %q chiếm khoảng %d%% thay vì %d%% như yêu cầu.",
						model.CognitiveLabels[level], actual, want),
				})
			}
		}
	}

	return &VerifiedBlueprint{
		Allocation: allocation,
		Summary:    summary,
		Warnings:   warnings,
	}
}

// GenerateInput là dữ liệu form đã qua binding ở tầng HTTP.
type GenerateInput struct {
	ExamType       model.ExamType
	Mode           model.GenerationMode
	Topic          string
	Audience       string
	TotalQuestions int
	Constraints    *model.DistributionConstraints
}

// GenerateResult là toàn bộ dữ liệu hiển thị của một lần sinh thành công.
type GenerateResult struct {
	RecordID  string                     `json:"recordId,omitempty"`
	ExamType  model.ExamType             `json:"examType"`
	Mode      model.GenerationMode       `json:"mode"`
	Blueprint *model.BlueprintAllocation `json:"blueprint"`
	Summary   BlueprintSummary           `json:"summary"`
	Warnings  []VerificationWarning      `json:"warnings"`
	Charts    *ChartSeries               `json:"charts"`
	Table     *TableView                 `json:"table"`
}

type BlueprintService struct {
	generator Generator
	repo      *repository.BlueprintRepository
	rdb       *redis.Client
}

func NewBlueprintService(generator Generator, repo *repository.BlueprintRepository, rdb *redis.Client) *BlueprintService {
	return &BlueprintService{
		generator: generator,
		repo:      repo,
		rdb:       rdb,
	}
}

// Generate chạy trọn một lượt: kiểm tra tỉ trọng, dựng yêu cầu, gọi bên sinh,
// kiểm tra + tổng hợp kết quả, lưu lịch sử và thay thế slot hiện tại.
// Mỗi phiên chỉ có một yêu cầu đang chạy; yêu cầu thứ hai bị từ chối.
func (s *BlueprintService) Generate(ctx context.Context, sessionID string, in GenerateInput) (*GenerateResult, error) {
	var constraints *model.DistributionConstraints
	if in.Mode == model.ModeManual {
		if err := ValidateConstraints(in.Constraints); err != nil {
			monitoring.GenerationCounter.WithLabelValues(string(in.Mode), "validation_error").Inc()
			return nil, err
		}
		constraints = in.Constraints
	}

	req, err := BuildRequest(in.ExamType, in.Topic, in.Audience, in.TotalQuestions, constraints)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues(string(in.Mode), "validation_error").Inc()
		return nil, err
	}

	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, lockKeyPrefix+sessionID, "1", generationLockTTL).Result()
		if err != nil {
			logger.Log.Error("generation lock error", zap.Error(err))
		} else if !acquired {
			return nil, util.ErrGenerationInFlight
		} else {
			defer s.rdb.Del(context.Background(), lockKeyPrefix+sessionID)
		}
	}

	allocation, err := s.generator.GenerateBlueprint(ctx, req)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues(string(in.Mode), "generation_failure").Inc()
		return nil, err
	}

	verified := VerifyAllocation(allocation, req)
	monitoring.GenerationCounter.WithLabelValues(string(in.Mode), "success").Inc()
	if n := len(verified.Warnings); n > 0 {
		monitoring.GenerationWarnings.Add(float64(n))
		logger.Log.Warn("blueprint verification warnings",
			zap.String("session", sessionID),
			zap.Int("count", n))
	}

	result := &GenerateResult{
		ExamType:  in.ExamType,
		Mode:      in.Mode,
		Blueprint: allocation,
		Summary:   verified.Summary,
		Warnings:  verified.Warnings,
		Charts:    ToChartSeries(verified),
		Table:     ToTableView(verified, in.ExamType),
	}

	if s.repo != nil {
		record, err := s.buildRecord(sessionID, in, verified)
		if err == nil {
			err = s.repo.Create(record)
		}
		if err != nil {
			// lưu lịch sử thất bại không làm hỏng lượt sinh
			logger.Log.Error("failed to persist blueprint", zap.Error(err))
		} else {
			result.RecordID = record.ID
		}
	}

	if s.rdb != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			err = s.rdb.Set(ctx, currentKeyPrefix+sessionID, payload, currentSlotTTL).Err()
		}
		if err != nil {
			logger.Log.Error("failed to store current blueprint", zap.Error(err))
		}
	}

	return result, nil
}

func (s *BlueprintService) buildRecord(sessionID string, in GenerateInput, verified *VerifiedBlueprint) (*model.Blueprint, error) {
	rows, err := json.Marshal(verified.Allocation.Rows)
	if err != nil {
		return nil, err
	}
	var warnings json.RawMessage
	if len(verified.Warnings) > 0 {
		warnings, err = json.Marshal(verified.Warnings)
		if err != nil {
			return nil, err
		}
	}
	return &model.Blueprint{
		SessionID:      sessionID,
		ExamType:       in.ExamType,
		Mode:           in.Mode,
		Topic:          strings.TrimSpace(in.Topic),
		Audience:       in.Audience,
		Title:          verified.Allocation.Title,
		TargetAudience: verified.Allocation.TargetAudience,
		TotalQuestions: verified.Allocation.TotalQuestions,
		Rows:           rows,
		Warnings:       warnings,
	}, nil
}

// Current trả về ma trận đang hiển thị của phiên, nếu có.
func (s *BlueprintService) Current(ctx context.Context, sessionID string) (*GenerateResult, error) {
	if s.rdb == nil {
		return nil, util.ErrNoCurrentBlueprint
	}
	payload, err := s.rdb.Get(ctx, currentKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrNoCurrentBlueprint
	}
	if err != nil {
		return nil, err
	}
	var result GenerateResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List trả về lịch sử sinh của phiên, mới nhất trước.
func (s *BlueprintService) List(sessionID string, page, limit int) ([]model.Blueprint, int64, error) {
	return s.repo.ListBySession(sessionID, page, limit)
}

// GetByID trả về một bản ghi lịch sử thuộc phiên.
func (s *BlueprintService) GetByID(sessionID, id string) (*model.Blueprint, error) {
	b, err := s.repo.FindByID(sessionID, id)
	if err != nil {
		return nil, util.ErrBlueprintNotFound
	}
	return b, nil
}
