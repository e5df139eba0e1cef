package service

import (
	"medblueprint_backend/internal/model"
	"reflect"
	"testing"
)

func TestToTableViewZeroAsDash(t *testing.T) {
	allocation := &model.BlueprintAllocation{
		TotalQuestions: 5,
		Rows: []model.BlueprintRow{
			makeRow("Hen phế quản", model.DomainMedicalKnowledge, [4]int{0, 5, 0, 0}, 5),
		},
	}
	verified := VerifyAllocation(allocation, nil)

	table := ToTableView(verified, model.ExamSubject)

	got := table.Rows[0].Cells
	want := []string{"-", "5", "-", "-"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cells = %v, want %v", got, want)
	}
	if table.Rows[0].Total != "5" {
		t.Errorf("Total = %q, want \"5\"", table.Rows[0].Total)
	}
	// hàng tổng cộng luôn dùng chữ số, kể cả 0
	wantSummary := []string{"Tổng cộng", "0", "5", "0", "0", "5"}
	if !reflect.DeepEqual(table.Summary, wantSummary) {
		t.Errorf("Summary = %v, want %v", table.Summary, wantSummary)
	}
}

func TestToTableViewHeader(t *testing.T) {
	verified := VerifyAllocation(wellformedAllocation(), nil)

	tests := []struct {
		examType model.ExamType
		want     string
	}{
		{model.ExamSubject, "Nội dung / Chủ đề"},
		{model.ExamGraduation, "Phân môn / Lĩnh vực"},
	}
	for _, tt := range tests {
		table := ToTableView(verified, tt.examType)
		if table.Header[0] != tt.want {
			t.Errorf("Header[0] for %s = %q, want %q", tt.examType, table.Header[0], tt.want)
		}
		if table.Header[len(table.Header)-1] != "Tổng" {
			t.Errorf("last header = %q, want Tổng", table.Header[len(table.Header)-1])
		}
	}
}

func TestToChartSeries(t *testing.T) {
	verified := VerifyAllocation(wellformedAllocation(), nil)

	charts := ToChartSeries(verified)

	if len(charts.Pie) != len(model.CognitiveLevels) {
		t.Fatalf("Pie has %d buckets, want %d", len(charts.Pie), len(model.CognitiveLevels))
	}
	for i, level := range model.CognitiveLevels {
		bucket := charts.Pie[i]
		if bucket.Level != level {
			t.Errorf("Pie[%d].Level = %s, want %s", i, bucket.Level, level)
		}
		if bucket.Label != model.CognitiveLabels[level] {
			t.Errorf("Pie[%d].Label = %q, want %q", i, bucket.Label, model.CognitiveLabels[level])
		}
		if bucket.Color != model.CognitiveColors[level] {
			t.Errorf("Pie[%d].Color = %q, want %q", i, bucket.Color, model.CognitiveColors[level])
		}
		if bucket.Value != verified.Summary.PerLevel[level] {
			t.Errorf("Pie[%d].Value = %d, want %d", i, bucket.Value, verified.Summary.PerLevel[level])
		}
	}

	if len(charts.Bar) != 3 {
		t.Fatalf("Bar has %d entries, want 3", len(charts.Bar))
	}
	if charts.Bar[0].FullTopic != "Suy tim" || charts.Bar[0].Name != "Suy tim" {
		t.Errorf("Bar[0] = %+v, short name should be kept as is", charts.Bar[0])
	}
	if charts.Bar[0].Total != 8 {
		t.Errorf("Bar[0].Total = %d, want 8", charts.Bar[0].Total)
	}
}

func TestTruncateTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"short kept", "Suy tim", "Suy tim"},
		{"exact limit kept", "Nhồi máu cơ tim", "Nhồi máu cơ tim"},
		{"long truncated by rune", "Bệnh phổi tắc nghẽn mạn tính", "Bệnh phổi tắc n..."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateTopic(tt.topic); got != tt.want {
				t.Errorf("truncateTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
