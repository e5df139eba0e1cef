package util

import "errors"

var (
	ErrEmptyTopic         = errors.New("chủ đề không được để trống")
	ErrUnknownAudience    = errors.New("đối tượng sinh viên không hợp lệ")
	ErrMissingConstraints = errors.New("chế độ thủ công yêu cầu cấu hình tỉ trọng")
	ErrGenerationInFlight = errors.New("đang có một yêu cầu sinh ma trận chưa hoàn tất")
	ErrBlueprintNotFound  = errors.New("không tìm thấy ma trận")
	ErrNoCurrentBlueprint = errors.New("chưa có ma trận nào được tạo trong phiên này")
)
