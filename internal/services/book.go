package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openshelf/openshelf/internal/storage"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/types"
)

// ErrNoCover is returned when a book has no uploaded cover image.
var ErrNoCover = errors.New("book has no cover")

// BookRepository defines persistence operations for books.
type BookRepository interface {
	List(ctx context.Context, filter store.BookFilter) ([]types.Book, error)
	Get(ctx context.Context, id int) (types.Book, error)
	Create(ctx context.Context, book types.Book) (types.Book, error)
	Update(ctx context.Context, book types.Book) (types.Book, error)
	SetCoverKey(ctx context.Context, id int, key string) error
	Delete(ctx context.Context, id int) error
}

// BookService encapsulates book use-cases. Covers live in object
// storage; the service is usable without one, cover operations then
// fail cleanly.
type BookService struct {
	repo    BookRepository
	storage *storage.Storage
}

func NewBookService(repo BookRepository, storage *storage.Storage) *BookService {
	return &BookService{repo: repo, storage: storage}
}

func (s *BookService) List(ctx context.Context, filter store.BookFilter) ([]types.Book, error) {
	return s.repo.List(ctx, filter)
}

func (s *BookService) Get(ctx context.Context, id int) (types.Book, error) {
	return s.repo.Get(ctx, id)
}

func (s *BookService) Create(ctx context.Context, book types.Book) (types.Book, error) {
	return s.repo.Create(ctx, book)
}

func (s *BookService) Update(ctx context.Context, book types.Book) (types.Book, error) {
	return s.repo.Update(ctx, book)
}

// Delete removes the book and, best effort, its stored cover image.
func (s *BookService) Delete(ctx context.Context, id int) error {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage != nil && book.CoverKey != "" {
		_ = s.storage.Delete(ctx, book.CoverKey)
	}
	return nil
}

// UploadCover stores the cover image and records its key on the book.
func (s *BookService) UploadCover(ctx context.Context, id int, r io.Reader, size int64, contentType string) error {
	if s.storage == nil {
		return errors.New("cover storage is not configured")
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	key := fmt.Sprintf("covers/%d", id)
	if err := s.storage.Put(ctx, key, r, size, contentType); err != nil {
		return err
	}
	return s.repo.SetCoverKey(ctx, id, key)
}

// Cover opens the book's cover image for reading.
func (s *BookService) Cover(ctx context.Context, id int) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, errors.New("cover storage is not configured")
	}
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.CoverKey == "" {
		return nil, ErrNoCover
	}
	return s.storage.Get(ctx, book.CoverKey)
}
