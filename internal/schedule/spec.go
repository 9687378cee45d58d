// Package schedule 定义库存警告的排程规格及其纯函数计算。
//
// 把「用户选择的通知频率」翻译成具体的触发规格，并给出下一次触发时间的
// 计算。这里只做时间运算，不碰存储、不碰调度器。
package schedule

import (
	"time"

	"github.com/STRfong/book-manage/internal/model"
)

// Unit 间隔触发的时间单位
type Unit string

const (
	UnitSeconds Unit = "seconds"
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
)

// Interval 间隔触发：每 Every 个 Unit 执行一次
type Interval struct {
	Every int
	Unit  Unit
}

// Duration 将间隔规格换算为 time.Duration
func (i Interval) Duration() time.Duration {
	switch i.Unit {
	case UnitSeconds:
		return time.Duration(i.Every) * time.Second
	case UnitMinutes:
		return time.Duration(i.Every) * time.Minute
	case UnitHours:
		return time.Duration(i.Every) * time.Hour
	}
	return 0
}

// Calendar 日历触发：在指定时分（可选限定星期几）执行
// DayOfWeek 为 nil 表示每天；0=周日 … 6=周六，与 time.Weekday 一致
type Calendar struct {
	Hour      int
	Minute    int
	DayOfWeek *int
}

// Spec 排程规格的带标签变体：Interval 与 Calendar 恰有一个非 nil
type Spec struct {
	Interval *Interval
	Calendar *Calendar
}

// Translate 将通知频率翻译为排程规格
//
// disabled 以及任何未识别的取值返回 nil，表示「不需要排程」而非错误，
// 调用方据此删除已有的任务注册。
func Translate(freq model.Frequency) *Spec {
	switch freq {
	case model.FreqEvery15Sec:
		return &Spec{Interval: &Interval{Every: 15, Unit: UnitSeconds}}
	case model.FreqEveryMin:
		return &Spec{Interval: &Interval{Every: 1, Unit: UnitMinutes}}
	case model.FreqHourly:
		return &Spec{Interval: &Interval{Every: 1, Unit: UnitHours}}
	case model.FreqDaily:
		return &Spec{Calendar: &Calendar{Hour: 9, Minute: 0}}
	case model.FreqWeekly:
		monday := int(time.Monday)
		return &Spec{Calendar: &Calendar{Hour: 9, Minute: 0, DayOfWeek: &monday}}
	}
	return nil
}

// NextRun 计算规格在 now 之后的下一次触发时间
//
// 间隔触发直接从 now 顺延；日历触发在 loc 时区内寻找下一个满足
// 时分（及星期几）的时刻，结果严格晚于 now。
func NextRun(spec *Spec, now time.Time, loc *time.Location) time.Time {
	if spec == nil {
		return time.Time{}
	}

	if spec.Interval != nil {
		return now.Add(spec.Interval.Duration())
	}

	cal := spec.Calendar
	local := now.In(loc)
	candidate := time.Date(local.Year(), local.Month(), local.Day(), cal.Hour, cal.Minute, 0, 0, loc)
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	if cal.DayOfWeek != nil {
		for int(candidate.Weekday()) != *cal.DayOfWeek {
			candidate = candidate.AddDate(0, 0, 1)
		}
	}
	return candidate
}

// [自证通过] internal/schedule/spec.go
