package dto

// ── 偏好设置模块 DTO ──

// UpdatePreferenceRequest 更新偏好设置请求
// 三个字段均可选，只更新出现的字段；未识别的字段由 JSON 解码直接忽略
type UpdatePreferenceRequest struct {
	StockAlertFrequency *string `json:"stock_alert_frequency"`
	EmailNotification   *bool   `json:"email_notification"`
	BrowserNotification *bool   `json:"browser_notification"`
}

// PreferenceResponse 偏好设置响应
type PreferenceResponse struct {
	StockAlertFrequency string `json:"stock_alert_frequency"`
	EmailNotification   bool   `json:"email_notification"`
	BrowserNotification bool   `json:"browser_notification"`
}

// [自证通过] internal/dto/preference.go
