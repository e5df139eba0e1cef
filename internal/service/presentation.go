package service

import (
	"medblueprint_backend/internal/model"
	"strconv"
)

const topicDisplayLimit = 15

// PieBucket là một múi của biểu đồ tròn phân bố Bloom.
type PieBucket struct {
	Level model.CognitiveLevel `json:"level"`
	Label string               `json:"label"`
	Value int                  `json:"value"`
	Color string               `json:"color"`
}

// BarEntry là một thanh của biểu đồ nội dung: một hàng ma trận với
// 4 đoạn xếp chồng theo thứ tự mức độ.
type BarEntry struct {
	Name      string                       `json:"name"`      // tên rút gọn hiển thị trên trục
	FullTopic string                       `json:"fullTopic"` // tên đầy đủ cho tooltip
	Counts    map[model.CognitiveLevel]int `json:"counts"`
	Total     int                          `json:"total"`
}

type ChartSeries struct {
	Pie []PieBucket `json:"pieSeries"`
	Bar []BarEntry  `json:"barSeries"`
}

// ToChartSeries ánh xạ kết quả đã kiểm tra thành dữ liệu vẽ biểu đồ.
// Thuần trình bày: không kiểm tra lại gì, giả định đầu vào đã qua VerifyAllocation.
func ToChartSeries(v *VerifiedBlueprint) *ChartSeries {
	pie := make([]PieBucket, 0, len(model.CognitiveLevels))
	for _, level := range model.CognitiveLevels {
		pie = append(pie, PieBucket{
			Level: level,
			Label: model.CognitiveLabels[level],
			Value: v.Summary.PerLevel[level],
			Color: model.CognitiveColors[level],
		})
	}

	bar := make([]BarEntry, 0, len(v.Allocation.Rows))
	for _, row := range v.Allocation.Rows {
		counts := make(map[model.CognitiveLevel]int, len(model.CognitiveLevels))
		for _, level := range model.CognitiveLevels {
			counts[level] = row.CognitiveDistribution[level]
		}
		bar = append(bar, BarEntry{
			Name:      truncateTopic(row.TopicName),
			FullTopic: row.TopicName,
			Counts:    counts,
			Total:     row.TotalQuestions,
		})
	}

	return &ChartSeries{Pie: pie, Bar: bar}
}

// truncateTopic rút gọn tên chủ đề cho trục biểu đồ. Đếm theo rune vì
// tên chủ đề tiếng Việt có dấu.
func truncateTopic(name string) string {
	runes := []rune(name)
	if len(runes) <= topicDisplayLimit {
		return name
	}
	return string(runes[:topicDisplayLimit]) + "..."
}

// TableRow là một hàng thân bảng: ô đếm bằng 0 hiển thị dấu gạch,
// riêng ô tổng của hàng luôn là chữ số.
type TableRow struct {
	TopicName       string   `json:"topicName"`
	CompetencyLabel string   `json:"competencyLabel"`
	Cells           []string `json:"cells"` // theo thứ tự CognitiveLevels
	Total           string   `json:"total"`
}

type TableView struct {
	Header  []string   `json:"header"`
	Rows    []TableRow `json:"rows"`
	Summary []string   `json:"summary"` // "Tổng cộng" + chữ số từng mức độ + tổng
}

// ToTableView dựng bảng ma trận hiển thị từ kết quả đã kiểm tra.
func ToTableView(v *VerifiedBlueprint, examType model.ExamType) *TableView {
	topicHeader := "Nội dung / Chủ đề"
	if examType == model.ExamGraduation {
		topicHeader = "Phân môn / Lĩnh vực"
	}

	header := []string{topicHeader, "Năng lực cốt lõi"}
	for _, level := range model.CognitiveLevels {
		header = append(header, model.CognitiveLabels[level])
	}
	header = append(header, "Tổng")

	rows := make([]TableRow, 0, len(v.Allocation.Rows))
	for _, row := range v.Allocation.Rows {
		cells := make([]string, 0, len(model.CognitiveLevels))
		for _, level := range model.CognitiveLevels {
			cells = append(cells, formatCell(row.CognitiveDistribution[level]))
		}
		rows = append(rows, TableRow{
			TopicName:       row.TopicName,
			CompetencyLabel: row.CompetencyLabel,
			Cells:           cells,
			Total:           strconv.Itoa(row.TotalQuestions),
		})
	}

	summary := []string{"Tổng cộng"}
	for _, level := range model.CognitiveLevels {
		summary = append(summary, strconv.Itoa(v.Summary.PerLevel[level]))
	}
	summary = append(summary, strconv.Itoa(v.Summary.GrandTotal))

	return &TableView{
		Header:  header,
		Rows:    rows,
		Summary: summary,
	}
}

func formatCell(count int) string {
	if count == 0 {
		return "-"
	}
	return strconv.Itoa(count)
}
