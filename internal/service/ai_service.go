package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/model"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Generator là giao diện của bên sinh ma trận. Service nghiệp vụ chỉ phụ
// thuộc giao diện này nên test có thể thay bằng một bộ sinh giả lập.
type Generator interface {
	GenerateBlueprint(ctx context.Context, req *model.BlueprintRequest) (*model.BlueprintAllocation, error)
}

// AIService gọi API chat completions tương thích OpenAI để sinh ma trận đề thi.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// UpdateConfig áp dụng cấu hình AI mới khi file cấu hình được nạp lại.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = `Bạn là một chuyên gia giáo dục y khoa (Medical Education Expert).
Nhiệm vụ của bạn là tạo ra một "Test Blueprint" (Ma trận đề thi) chi tiết cho một bài kiểm tra y khoa.
Hãy chia chủ đề lớn thành các chủ đề nhỏ (sub-topics).
Phân bổ số lượng câu hỏi dựa trên mức độ nhận thức của Bloom (Nhớ, Hiểu, Vận dụng, Phân tích) và các Lĩnh vực năng lực (Competency Domains).
Tổng số câu hỏi của các hàng phải bằng đúng tổng số câu hỏi được yêu cầu.`

func buildUserPrompt(req *model.BlueprintRequest) string {
	var b strings.Builder

	examLabel := "Thi Kết thúc học phần (Module/Subject Exam)"
	if req.ExamType == model.ExamGraduation {
		examLabel = "Thi Tốt nghiệp / Tổng hợp (Graduation Exam)"
	}

	fmt.Fprintf(&b, "Loại kỳ thi: %s\n", examLabel)
	fmt.Fprintf(&b, "Chủ đề / Chuyên ngành: %s\n", req.Topic)
	fmt.Fprintf(&b, "Đối tượng sinh viên: %s\n", req.Audience)
	fmt.Fprintf(&b, "Tổng số câu hỏi: %d\n", req.TotalQuestions)

	if req.Constraints != nil {
		b.WriteString("\n--- YÊU CẦU CẤU TRÚC ĐẶC BIỆT (TUÂN THỦ NGHIÊM NGẶT) ---\n")
		b.WriteString("Bạn PHẢI phân bổ số lượng câu hỏi sao cho tỉ lệ phần trăm xấp xỉ như sau:\n")
		b.WriteString("\n1. Phân bố Bloom (Tổng 100%):\n")
		for _, level := range model.CognitiveLevels {
			fmt.Fprintf(&b, "   - %s: %d%%\n", model.CognitiveLabels[level], req.Constraints.Bloom[level])
		}
		b.WriteString("\n2. Phân bố Năng lực (Competency) (Tổng 100%):\n")
		for _, domain := range model.CompetencyDomains {
			fmt.Fprintf(&b, "   - %s: %d%%\n", model.CompetencyWireLabels[domain], req.Constraints.Competency[domain])
		}
		fmt.Fprintf(&b, "\nHãy tính toán số lượng câu hỏi cụ thể cho từng mục dựa trên tổng số câu là %d trước khi tạo các hàng.\n", req.TotalQuestions)
		b.WriteString("Ví dụ: Nếu tổng 50 câu và Nhớ là 20%, thì tổng số câu ở cột Nhớ phải là 10 câu.\n")
	}

	if req.ExamType == model.ExamGraduation {
		b.WriteString("\nLƯU Ý QUAN TRỌNG: Đây là kỳ thi tốt nghiệp tổng hợp. Hãy chia nhỏ nội dung thành các phân môn hoặc lĩnh vực chính của chuyên ngành này.\n")
	} else {
		fmt.Fprintf(&b, "\nHãy chia chủ đề \"%s\" thành các bài học hoặc chủ đề con cụ thể.\n", req.Topic)
	}

	fmt.Fprintf(&b, "\nHãy tạo một bảng ma trận. Với mỗi hàng, xác định số lượng câu hỏi cho từng mức độ Bloom và năng lực chính cần đánh giá.\nĐảm bảo tổng số câu hỏi cộng lại chính xác bằng %d.\n", req.TotalQuestions)

	// Hợp đồng schema: bắt buộc vì dùng response_format json_object
	// thay vì responseSchema có cấu trúc.
	b.WriteString(`
Chỉ trả về một đối tượng JSON hợp lệ, không kèm văn bản nào khác, theo đúng cấu trúc:
{
  "title": "Tiêu đề của ma trận",
  "targetAudience": "` + req.Audience + `",
  "totalQuestions": ` + fmt.Sprintf("%d", req.TotalQuestions) + `,
  "rows": [
    {
      "topicName": "Tên chủ đề con hoặc phân môn",
      "competency": "một trong: Chăm sóc người bệnh | Kiến thức y khoa | Học tập dựa trên thực hành | Kỹ năng giao tiếp | Chuyên nghiệp",
      "cognitiveDistribution": {"Nhớ": 0, "Hiểu": 0, "Vận dụng": 0, "Phân tích": 0},
      "totalQuestions": 0
    }
  ]
}`)

	return b.String()
}

// GenerateBlueprint gửi yêu cầu sinh tới AI và parse kết quả theo schema chặt.
func (s *AIService) GenerateBlueprint(ctx context.Context, req *model.BlueprintRequest) (*model.BlueprintAllocation, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	chatReq := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	}
	chatReq.ResponseFormat.Type = "json_object"

	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("AI returned no content")
	}

	return decodeAllocation(result.Choices[0].Message.Content)
}

type wireRow struct {
	TopicName             string         `json:"topicName"`
	Competency            string         `json:"competency"`
	CognitiveDistribution map[string]int `json:"cognitiveDistribution"`
	TotalQuestions        int            `json:"totalQuestions"`
}

type wireAllocation struct {
	Title          string    `json:"title"`
	TargetAudience string    `json:"targetAudience"`
	TotalQuestions int       `json:"totalQuestions"`
	Rows           []wireRow `json:"rows"`
}

// decodeAllocation parse nội dung trả về thành BlueprintAllocation.
// Nhãn không nằm trong enum hoặc thiếu khoá mức độ đều bị coi là lỗi sinh.
func decodeAllocation(content string) (*model.BlueprintAllocation, error) {
	content = strings.TrimSpace(content)
	// một số model bọc JSON trong code fence dù đã yêu cầu json_object
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var wire wireAllocation
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("malformed blueprint payload: %w", err)
	}
	if len(wire.Rows) == 0 {
		return nil, fmt.Errorf("blueprint payload contains no rows")
	}

	allocation := &model.BlueprintAllocation{
		Title:          wire.Title,
		TargetAudience: wire.TargetAudience,
		TotalQuestions: wire.TotalQuestions,
		Rows:           make([]model.BlueprintRow, 0, len(wire.Rows)),
	}

	for i, row := range wire.Rows {
		domain, ok := model.ParseCompetencyLabel(row.Competency)
		if !ok {
			return nil, fmt.Errorf("row %d: unknown competency label %q", i, row.Competency)
		}

		distribution := make(map[model.CognitiveLevel]int, len(model.CognitiveLevels))
		for _, level := range model.CognitiveLevels {
			count, ok := row.CognitiveDistribution[model.CognitiveLabels[level]]
			if !ok {
				return nil, fmt.Errorf("row %d: missing cognitive level %q", i, model.CognitiveLabels[level])
			}
			if count < 0 {
				return nil, fmt.Errorf("row %d: negative count for level %q", i, model.CognitiveLabels[level])
			}
			distribution[level] = count
		}

		allocation.Rows = append(allocation.Rows, model.BlueprintRow{
			TopicName:             row.TopicName,
			Competency:            domain,
			CompetencyLabel:       model.CompetencyLabels[domain],
			CognitiveDistribution: distribution,
			TotalQuestions:        row.TotalQuestions,
		})
	}

	return allocation, nil
}
