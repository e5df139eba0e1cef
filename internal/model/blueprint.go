package model

import (
	"encoding/json"
)

// CognitiveLevel là mức độ nhận thức theo thang Bloom rút gọn.
// Giá trị là mã định danh ổn định, dùng cho so sánh và tổng hợp;
// nhãn hiển thị tiếng Việt tra theo bảng bên dưới.
type CognitiveLevel string

const (
	LevelRecall        CognitiveLevel = "recall"
	LevelComprehension CognitiveLevel = "comprehension"
	LevelApplication   CognitiveLevel = "application"
	LevelAnalysis      CognitiveLevel = "analysis"
)

// CognitiveLevels theo thứ tự hiển thị: Nhớ -> Hiểu -> Vận dụng -> Phân tích.
var CognitiveLevels = []CognitiveLevel{
	LevelRecall,
	LevelComprehension,
	LevelApplication,
	LevelAnalysis,
}

// CognitiveLabels là nhãn dùng trong prompt và schema trả về của AI.
var CognitiveLabels = map[CognitiveLevel]string{
	LevelRecall:        "Nhớ",
	LevelComprehension: "Hiểu",
	LevelApplication:   "Vận dụng",
	LevelAnalysis:      "Phân tích",
}

// CognitiveColors là màu cố định cho biểu đồ, tra theo mã mức độ.
var CognitiveColors = map[CognitiveLevel]string{
	LevelRecall:        "#94a3b8", // Slate 400
	LevelComprehension: "#60a5fa", // Blue 400
	LevelApplication:   "#34d399", // Emerald 400
	LevelAnalysis:      "#f472b6", // Pink 400
}

// ParseCognitiveLabel tra mã mức độ từ nhãn tiếng Việt trong phản hồi AI.
func ParseCognitiveLabel(label string) (CognitiveLevel, bool) {
	for level, l := range CognitiveLabels {
		if l == label {
			return level, true
		}
	}
	return "", false
}

// CompetencyDomain là lĩnh vực năng lực cốt lõi của bác sĩ.
type CompetencyDomain string

const (
	DomainPatientCare           CompetencyDomain = "patient_care"
	DomainMedicalKnowledge      CompetencyDomain = "medical_knowledge"
	DomainPracticeBasedLearning CompetencyDomain = "practice_based_learning"
	DomainCommunication         CompetencyDomain = "communication"
	DomainProfessionalism       CompetencyDomain = "professionalism"
)

var CompetencyDomains = []CompetencyDomain{
	DomainPatientCare,
	DomainMedicalKnowledge,
	DomainPracticeBasedLearning,
	DomainCommunication,
	DomainProfessionalism,
}

// CompetencyWireLabels là giá trị enum trong schema trả về của AI
// (giữ nguyên từ bản thiết kế gốc, khác với nhãn hiển thị).
var CompetencyWireLabels = map[CompetencyDomain]string{
	DomainPatientCare:           "Chăm sóc người bệnh",
	DomainMedicalKnowledge:      "Kiến thức y khoa",
	DomainPracticeBasedLearning: "Học tập dựa trên thực hành",
	DomainCommunication:         "Kỹ năng giao tiếp",
	DomainProfessionalism:       "Chuyên nghiệp",
}

// CompetencyLabels là nhãn hiển thị trên bảng ma trận.
var CompetencyLabels = map[CompetencyDomain]string{
	DomainPatientCare:           "Chăm sóc người bệnh",
	DomainMedicalKnowledge:      "Kiến thức y khoa",
	DomainPracticeBasedLearning: "Học tập & Cải tiến",
	DomainCommunication:         "Giao tiếp & Ứng xử",
	DomainProfessionalism:       "Tính chuyên nghiệp",
}

// ParseCompetencyLabel tra mã lĩnh vực từ nhãn trong phản hồi AI.
func ParseCompetencyLabel(label string) (CompetencyDomain, bool) {
	for domain, l := range CompetencyWireLabels {
		if l == label {
			return domain, true
		}
	}
	return "", false
}

type ExamType string

const (
	ExamSubject    ExamType = "subject"
	ExamGraduation ExamType = "graduation"
)

type GenerationMode string

const (
	ModeAuto   GenerationMode = "auto"
	ModeManual GenerationMode = "manual"
)

// Audiences là danh sách đối tượng sinh viên cố định của form.
var Audiences = []string{
	"Sinh viên Y3",
	"Sinh viên Y4",
	"Sinh viên Y6",
	"Bác sĩ nội trú",
	"CK1/CK2",
}

// DistributionConstraints là tỉ trọng phần trăm do người dùng tự cấu hình
// ở chế độ thủ công. Mỗi trục phải có tổng đúng 100 trước khi gửi sinh.
type DistributionConstraints struct {
	Bloom      map[CognitiveLevel]int   `json:"bloom"`
	Competency map[CompetencyDomain]int `json:"competency"`
}

// BlueprintRequest là yêu cầu sinh ma trận, bất biến sau khi dựng xong.
type BlueprintRequest struct {
	ExamType       ExamType                 `json:"examType"`
	Topic          string                   `json:"topic"`
	Audience       string                   `json:"audience"`
	TotalQuestions int                      `json:"totalQuestions"`
	Constraints    *DistributionConstraints `json:"constraints,omitempty"`
}

// BlueprintRow là một hàng của ma trận: một chủ đề con, một lĩnh vực năng lực
// và phân bố câu hỏi theo 4 mức độ nhận thức.
type BlueprintRow struct {
	TopicName             string                 `json:"topicName"`
	Competency            CompetencyDomain       `json:"competency"`
	CompetencyLabel       string                 `json:"competencyLabel"`
	CognitiveDistribution map[CognitiveLevel]int `json:"cognitiveDistribution"`
	TotalQuestions        int                    `json:"totalQuestions"`
}

// BlueprintAllocation là kết quả có cấu trúc do AI trả về.
// Thứ tự rows quyết định thứ tự hàng trên bảng.
type BlueprintAllocation struct {
	Title          string         `json:"title"`
	TargetAudience string         `json:"targetAudience"`
	TotalQuestions int            `json:"totalQuestions"`
	Rows           []BlueprintRow `json:"rows"`
}

// Blueprint là một bản ghi lịch sử sinh, lưu theo phiên.
type Blueprint struct {
	UUIDBase
	SessionID      string          `gorm:"index;type:varchar(36)" json:"sessionId"`
	ExamType       ExamType        `gorm:"size:20;not null" json:"examType"`
	Mode           GenerationMode  `gorm:"size:20;not null" json:"mode"`
	Topic          string          `gorm:"size:255;not null" json:"topic"`
	Audience       string          `gorm:"size:100;not null" json:"audience"`
	Title          string          `gorm:"size:255" json:"title"`
	TargetAudience string          `gorm:"size:100" json:"targetAudience"`
	TotalQuestions int             `gorm:"default:0" json:"totalQuestions"`
	Rows           json.RawMessage `gorm:"type:json" json:"rows"`
	Warnings       json.RawMessage `gorm:"type:json" json:"warnings,omitempty"`
}

func (Blueprint) TableName() string {
	return "blueprints"
}
