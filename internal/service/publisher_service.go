package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/STRfong/book-manage/internal/dto"
	"github.com/STRfong/book-manage/internal/model"
	"github.com/STRfong/book-manage/internal/repository"
)

// ── 出版社模块业务错误 ──

var (
	ErrPublisherNameTaken = errors.New("此出版社名稱已存在")
)

// PublisherHasBooksError 出版社仍有书籍关联，拒绝删除
type PublisherHasBooksError struct {
	Count int64
}

func (e *PublisherHasBooksError) Error() string {
	return fmt.Sprintf("無法刪除！此出版社還有 %d 本書籍關聯，請先刪除或轉移這些書籍。", e.Count)
}

// PublisherService 出版社业务接口
type PublisherService interface {
	ListPublishers(ctx context.Context) ([]dto.PublisherResponse, error)
	CreatePublisher(ctx context.Context, req *dto.CreatePublisherRequest) (*dto.PublisherResponse, error)
	UpdatePublisher(ctx context.Context, publisherID string, req *dto.UpdatePublisherRequest) (*dto.PublisherResponse, error)
	DeletePublisher(ctx context.Context, publisherID string) error
}

type publisherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPublisherService 创建 PublisherService 实例
func NewPublisherService(repo *repository.Repository, logger *zap.Logger) PublisherService {
	return &publisherService{repo: repo, logger: logger}
}

func (s *publisherService) ListPublishers(ctx context.Context) ([]dto.PublisherResponse, error) {
	publishers, err := s.repo.Publisher.List(ctx)
	if err != nil {
		s.logger.Error("查询出版社列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PublisherResponse, 0, len(publishers))
	for _, p := range publishers {
		count, err := s.repo.Book.CountByPublisher(ctx, p.PublisherID)
		if err != nil {
			s.logger.Error("统计出版社书籍数量失败", zap.Error(err))
			return nil, err
		}
		result = append(result, dto.PublisherResponse{
			ID:        p.PublisherID,
			Name:      p.Name,
			City:      p.City,
			BookCount: count,
		})
	}
	return result, nil
}

func (s *publisherService) CreatePublisher(ctx context.Context, req *dto.CreatePublisherRequest) (*dto.PublisherResponse, error) {
	// 名称查重
	if _, err := s.repo.Publisher.GetByName(ctx, req.Name); err == nil {
		return nil, ErrPublisherNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询出版社失败", zap.Error(err))
		return nil, err
	}

	publisher := &model.Publisher{Name: req.Name, City: req.City}
	if err := s.repo.Publisher.Create(ctx, publisher); err != nil {
		s.logger.Error("创建出版社失败", zap.Error(err))
		return nil, err
	}

	return &dto.PublisherResponse{
		ID:   publisher.PublisherID,
		Name: publisher.Name,
		City: publisher.City,
	}, nil
}

func (s *publisherService) UpdatePublisher(ctx context.Context, publisherID string, req *dto.UpdatePublisherRequest) (*dto.PublisherResponse, error) {
	publisher, err := s.repo.Publisher.GetByID(ctx, publisherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublisherNotFound
		}
		s.logger.Error("查询出版社失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil && *req.Name != publisher.Name {
		// 名称查重（排除自身）
		if existing, err := s.repo.Publisher.GetByName(ctx, *req.Name); err == nil && existing.PublisherID != publisherID {
			return nil, ErrPublisherNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询出版社失败", zap.Error(err))
			return nil, err
		}
		publisher.Name = *req.Name
	}
	if req.City != nil {
		publisher.City = *req.City
	}

	if err := s.repo.Publisher.Update(ctx, publisher); err != nil {
		s.logger.Error("更新出版社失败", zap.Error(err))
		return nil, err
	}

	count, err := s.repo.Book.CountByPublisher(ctx, publisherID)
	if err != nil {
		s.logger.Error("统计出版社书籍数量失败", zap.Error(err))
		return nil, err
	}

	return &dto.PublisherResponse{
		ID:        publisher.PublisherID,
		Name:      publisher.Name,
		City:      publisher.City,
		BookCount: count,
	}, nil
}

func (s *publisherService) DeletePublisher(ctx context.Context, publisherID string) error {
	if _, err := s.repo.Publisher.GetByID(ctx, publisherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublisherNotFound
		}
		s.logger.Error("查询出版社失败", zap.Error(err))
		return err
	}

	// 仍有书籍关联时拒绝删除
	count, err := s.repo.Book.CountByPublisher(ctx, publisherID)
	if err != nil {
		s.logger.Error("统计出版社书籍数量失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return &PublisherHasBooksError{Count: count}
	}

	if err := s.repo.Publisher.Delete(ctx, publisherID); err != nil {
		s.logger.Error("删除出版社失败", zap.Error(err))
		return err
	}
	return nil
}

// [自证通过] internal/service/publisher_service.go
