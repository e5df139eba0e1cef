package service

import (
	"context"
	"encoding/json"
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildUserPrompt(t *testing.T) {
	req := &model.BlueprintRequest{
		ExamType:       model.ExamSubject,
		Topic:          "Nội khoa - Tim mạch",
		Audience:       "Sinh viên Y3",
		TotalQuestions: 50,
		Constraints: &model.DistributionConstraints{
			Bloom: map[model.CognitiveLevel]int{
				model.LevelRecall:        20,
				model.LevelComprehension: 30,
				model.LevelApplication:   30,
				model.LevelAnalysis:      20,
			},
			Competency: map[model.CompetencyDomain]int{
				model.DomainMedicalKnowledge: 100,
			},
		},
	}

	prompt := buildUserPrompt(req)

	wantFragments := []string{
		"Thi Kết thúc học phần (Module/Subject Exam)",
		"Chủ đề / Chuyên ngành: Nội khoa - Tim mạch",
		"Đối tượng sinh viên: Sinh viên Y3",
		"Tổng số câu hỏi: 50",
		"YÊU CẦU CẤU TRÚC ĐẶC BIỆT",
		"- Nhớ: 20%",
		"- Kiến thức y khoa: 100%",
		"Nếu tổng 50 câu và Nhớ là 20%, thì tổng số câu ở cột Nhớ phải là 10 câu.",
		`Hãy chia chủ đề "Nội khoa - Tim mạch" thành các bài học hoặc chủ đề con cụ thể.`,
		`"targetAudience": "Sinh viên Y3"`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(prompt, frag) {
			t.Errorf("prompt missing %q", frag)
		}
	}
}

func TestBuildUserPromptGraduation(t *testing.T) {
	req := &model.BlueprintRequest{
		ExamType:       model.ExamGraduation,
		Topic:          "Y đa khoa",
		Audience:       "Sinh viên Y6",
		TotalQuestions: 100,
	}

	prompt := buildUserPrompt(req)

	if !strings.Contains(prompt, "Thi Tốt nghiệp / Tổng hợp (Graduation Exam)") {
		t.Error("prompt missing graduation exam label")
	}
	if !strings.Contains(prompt, "Hãy chia nhỏ nội dung thành các phân môn") {
		t.Error("prompt missing graduation split instruction")
	}
	if strings.Contains(prompt, "YÊU CẦU CẤU TRÚC ĐẶC BIỆT") {
		t.Error("auto mode without constraints must not include the constraint block")
	}
}

const sampleWirePayload = `{
  "title": "Ma trận đề thi Nội khoa",
  "targetAudience": "Sinh viên Y3",
  "totalQuestions": 10,
  "rows": [
    {
      "topicName": "Suy tim",
      "competency": "Kiến thức y khoa",
      "cognitiveDistribution": {"Nhớ": 2, "Hiểu": 2, "Vận dụng": 1, "Phân tích": 1},
      "totalQuestions": 6
    },
    {
      "topicName": "Tăng huyết áp",
      "competency": "Chăm sóc người bệnh",
      "cognitiveDistribution": {"Nhớ": 1, "Hiểu": 1, "Vận dụng": 2, "Phân tích": 0},
      "totalQuestions": 4
    }
  ]
}`

func TestDecodeAllocation(t *testing.T) {
	allocation, err := decodeAllocation(sampleWirePayload)
	if err != nil {
		t.Fatalf("decodeAllocation() error = %v", err)
	}

	if allocation.Title != "Ma trận đề thi Nội khoa" {
		t.Errorf("Title = %q", allocation.Title)
	}
	if len(allocation.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(allocation.Rows))
	}

	row := allocation.Rows[0]
	if row.Competency != model.DomainMedicalKnowledge {
		t.Errorf("Competency = %s, want medical_knowledge", row.Competency)
	}
	if row.CompetencyLabel != "Kiến thức y khoa" {
		t.Errorf("CompetencyLabel = %q", row.CompetencyLabel)
	}
	if row.CognitiveDistribution[model.LevelRecall] != 2 {
		t.Errorf("recall count = %d, want 2", row.CognitiveDistribution[model.LevelRecall])
	}
	if row.CognitiveDistribution[model.LevelAnalysis] != 1 {
		t.Errorf("analysis count = %d, want 1", row.CognitiveDistribution[model.LevelAnalysis])
	}
}

func TestDecodeAllocationFenced(t *testing.T) {
	fenced := "```json\n" + sampleWirePayload + "\n```"
	if _, err := decodeAllocation(fenced); err != nil {
		t.Errorf("decodeAllocation() with code fence error = %v", err)
	}
}

func TestDecodeAllocationRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "xin lỗi, tôi không thể tạo ma trận"},
		{"no rows", `{"title": "x", "targetAudience": "y", "totalQuestions": 0, "rows": []}`},
		{
			"unknown competency label",
			`{"totalQuestions": 1, "rows": [{"topicName": "a", "competency": "Kỹ năng mềm",
			  "cognitiveDistribution": {"Nhớ": 1, "Hiểu": 0, "Vận dụng": 0, "Phân tích": 0}, "totalQuestions": 1}]}`,
		},
		{
			"missing cognitive level key",
			`{"totalQuestions": 1, "rows": [{"topicName": "a", "competency": "Kiến thức y khoa",
			  "cognitiveDistribution": {"Nhớ": 1, "Hiểu": 0, "Vận dụng": 0}, "totalQuestions": 1}]}`,
		},
		{
			"negative count",
			`{"totalQuestions": 1, "rows": [{"topicName": "a", "competency": "Kiến thức y khoa",
			  "cognitiveDistribution": {"Nhớ": -1, "Hiểu": 1, "Vận dụng": 0, "Phân tích": 0}, "totalQuestions": 1}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeAllocation(tt.content); err == nil {
				t.Error("decodeAllocation() should fail")
			}
		})
	}
}

func completionBody(content string) string {
	resp := ChatCompletionResponse{}
	resp.Choices = []struct {
		Message AIChatMessage `json:"message"`
	}{
		{Message: AIChatMessage{Role: "assistant", Content: content}},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestAIServiceGenerateBlueprint(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(sampleWirePayload)))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL:        server.URL,
		APIKey:         "sk-test",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 10,
	})

	allocation, err := svc.GenerateBlueprint(context.Background(), &model.BlueprintRequest{
		ExamType:       model.ExamSubject,
		Topic:          "Nội khoa",
		Audience:       "Sinh viên Y3",
		TotalQuestions: 10,
	})
	if err != nil {
		t.Fatalf("GenerateBlueprint() error = %v", err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format.type = %q, want json_object", gotReq.ResponseFormat.Type)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system + user", gotReq.Messages)
	}
	if allocation.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", allocation.TotalQuestions)
	}
}

func TestAIServiceGenerateBlueprintErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{"upstream 500", http.StatusInternalServerError, "boom", "status 500"},
		{"api error field", http.StatusOK, `{"error": {"message": "invalid api key"}}`, "invalid api key"},
		{"empty choices", http.StatusOK, `{"choices": []}`, "no content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewAIService(config.AIConfig{BaseURL: server.URL, TimeoutSeconds: 10})
			_, err := svc.GenerateBlueprint(context.Background(), &model.BlueprintRequest{
				Topic: "Nội khoa", Audience: "Sinh viên Y3", TotalQuestions: 10,
			})
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %v, want containing %q", err, tt.wantSub)
			}
		})
	}
}
