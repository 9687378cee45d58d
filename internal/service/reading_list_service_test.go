package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func setupTestReadingListService() (ReadingListService, *testRepos) {
	repos := newTestRepos()
	svc := NewReadingListService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestReadingListService_AddAndList(t *testing.T) {
	svc, repos := setupTestReadingListService()
	seedBook(repos, "book-1", "白鯨記", 10)

	title, err := svc.Add(context.Background(), "user-1", "book-1")
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if title != "白鯨記" {
		t.Errorf("期望返回书名 白鯨記，实际=%s", title)
	}

	// mock 不做关联预加载，手动回填 Book
	repos.readingList.items[0].Book = repos.book.books["book-1"]

	items, err := svc.ListMine(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("期望清单有 1 条记录，实际=%d", len(items))
	}
	if items[0].BookID != "book-1" || items[0].Title != "白鯨記" {
		t.Errorf("清单条目不符: %+v", items[0])
	}
}

func TestReadingListService_Add_Duplicate(t *testing.T) {
	svc, repos := setupTestReadingListService()
	seedBook(repos, "book-1", "白鯨記", 10)

	if _, err := svc.Add(context.Background(), "user-1", "book-1"); err != nil {
		t.Fatalf("首次收藏应成功: %v", err)
	}

	_, err := svc.Add(context.Background(), "user-1", "book-1")
	var already *AlreadyInListError
	if !errors.As(err, &already) {
		t.Fatalf("期望 AlreadyInListError，实际: %v", err)
	}
	if already.Error() != "《白鯨記》已經在你的最愛清單中了！" {
		t.Errorf("重复收藏提示不符，实际=%s", already.Error())
	}
}

func TestReadingListService_Add_BookNotFound(t *testing.T) {
	svc, _ := setupTestReadingListService()

	_, err := svc.Add(context.Background(), "user-1", "ghost")
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("期望 ErrBookNotFound，实际: %v", err)
	}
}

func TestReadingListService_Remove(t *testing.T) {
	svc, repos := setupTestReadingListService()
	seedBook(repos, "book-1", "白鯨記", 10)

	if _, err := svc.Add(context.Background(), "user-1", "book-1"); err != nil {
		t.Fatalf("Add 失败: %v", err)
	}

	title, err := svc.Remove(context.Background(), "user-1", "book-1")
	if err != nil {
		t.Fatalf("Remove 应成功: %v", err)
	}
	if title != "白鯨記" {
		t.Errorf("期望返回书名 白鯨記，实际=%s", title)
	}
	if len(repos.readingList.items) != 0 {
		t.Errorf("期望清单为空，实际=%d", len(repos.readingList.items))
	}
}

func TestReadingListService_Remove_NotInList(t *testing.T) {
	svc, repos := setupTestReadingListService()
	seedBook(repos, "book-1", "白鯨記", 10)

	_, err := svc.Remove(context.Background(), "user-1", "book-1")
	var notIn *NotInListError
	if !errors.As(err, &notIn) {
		t.Fatalf("期望 NotInListError，实际: %v", err)
	}
	if notIn.Error() != "《白鯨記》不在你的最愛清單中！" {
		t.Errorf("移除提示不符，实际=%s", notIn.Error())
	}
}

// 同一本书不同用户互不影响
func TestReadingListService_PerUserIsolation(t *testing.T) {
	svc, repos := setupTestReadingListService()
	seedBook(repos, "book-1", "白鯨記", 10)

	if _, err := svc.Add(context.Background(), "user-1", "book-1"); err != nil {
		t.Fatalf("user-1 收藏失败: %v", err)
	}
	if _, err := svc.Add(context.Background(), "user-2", "book-1"); err != nil {
		t.Fatalf("user-2 收藏同一本书应成功: %v", err)
	}

	if _, err := svc.Remove(context.Background(), "user-1", "book-1"); err != nil {
		t.Fatalf("user-1 移除失败: %v", err)
	}
	ids, _ := repos.readingList.ListBookIDsByUser(context.Background(), "user-2")
	if len(ids) != 1 {
		t.Errorf("user-2 的收藏不应受影响，实际=%v", ids)
	}
}

// [自证通过] internal/service/reading_list_service_test.go
