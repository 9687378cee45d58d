package dto

// ── 书籍模块 DTO ──

// CreateBookRequest 新增书籍请求
type CreateBookRequest struct {
	Title       string  `json:"title"        binding:"required,max=200"`
	Price       *int    `json:"price"        binding:"required,min=0"`
	Stock       *int    `json:"stock"        binding:"required,min=0"`
	PublisherID string  `json:"publisher_id" binding:"required,uuid"`
	Description *string `json:"description"  binding:"omitempty"`
	Pages       *int    `json:"pages"        binding:"omitempty,min=0"`
	ISBN        *string `json:"isbn"         binding:"omitempty,max=20"`
}

// UpdateBookRequest 更新书籍请求（仅识别的字段会被应用）
type UpdateBookRequest struct {
	Title       *string `json:"title"        binding:"omitempty,max=200"`
	Price       *int    `json:"price"        binding:"omitempty,min=0"`
	Stock       *int    `json:"stock"        binding:"omitempty,min=0"`
	PublisherID *string `json:"publisher_id" binding:"omitempty,uuid"`
}

// PublisherSummary 书籍列表中的出版社摘要
type PublisherSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookListItem 书籍列表投影（即缓存的聚合内容）
type BookListItem struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Price     int               `json:"price"`
	Stock     int               `json:"stock"`
	Publisher *PublisherSummary `json:"publisher,omitempty"`
}

// BookListData 书籍列表 API 响应数据
// 收藏清单按用户区分，不进缓存；books 部分来自共享缓存
type BookListData struct {
	Books               []BookListItem `json:"books"`
	UserFavoriteBookIDs []string       `json:"user_favorite_book_ids"`
	IsAuthenticated     bool           `json:"is_authenticated"`
}

// BookDetailResponse 书籍详情响应
type BookDetailResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Price       int               `json:"price"`
	Stock       int               `json:"stock"`
	Publisher   *PublisherSummary `json:"publisher,omitempty"`
	Description string            `json:"description,omitempty"`
	Pages       int               `json:"pages,omitempty"`
	ISBN        string            `json:"isbn,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// [自证通过] internal/dto/book.go
