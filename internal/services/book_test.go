package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/openshelf/openshelf/internal/storage"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/types"
)

type fakeBookRepo struct {
	books   map[int]types.Book
	deleted []int
}

func newFakeBookRepo(books ...types.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: map[int]types.Book{}}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) List(context.Context, store.BookFilter) ([]types.Book, error) {
	var books []types.Book
	for _, b := range r.books {
		books = append(books, b)
	}
	return books, nil
}

func (r *fakeBookRepo) Get(_ context.Context, id int) (types.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return types.Book{}, store.ErrNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) Create(_ context.Context, book types.Book) (types.Book, error) {
	r.books[book.ID] = book
	return book, nil
}

func (r *fakeBookRepo) Update(_ context.Context, book types.Book) (types.Book, error) {
	r.books[book.ID] = book
	return book, nil
}

func (r *fakeBookRepo) SetCoverKey(_ context.Context, id int, key string) error {
	b, ok := r.books[id]
	if !ok {
		return store.ErrNotFound
	}
	b.CoverKey = key
	r.books[id] = b
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.books[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.books, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeObjectStorage records bucket and object operations.
type fakeObjectStorage struct {
	ensured bool
	objects map[string][]byte
	removed []string
	delErr  error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) EnsureBucket(context.Context) error {
	f.ensured = true
	return nil
}

func (f *fakeObjectStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStorage) Delete(_ context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeObjectStorage) Bucket() string { return "covers-test" }

func TestUploadCoverRecordsKey(t *testing.T) {
	repo := newFakeBookRepo(types.Book{ID: 3, Title: "Dune"})
	backend := newFakeObjectStorage()
	svc := NewBookService(repo, storage.NewStorage(backend))

	err := svc.UploadCover(context.Background(), 3, strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	if err != nil {
		t.Fatalf("UploadCover: %v", err)
	}

	if _, ok := backend.objects["covers/3"]; !ok {
		t.Fatalf("cover object not stored, have %v", backend.objects)
	}
	book, _ := repo.Get(context.Background(), 3)
	if book.CoverKey != "covers/3" {
		t.Fatalf("cover key = %q, want covers/3", book.CoverKey)
	}
}

func TestDeleteRemovesCoverObject(t *testing.T) {
	repo := newFakeBookRepo(types.Book{ID: 7, Title: "Dune", CoverKey: "covers/7"})
	backend := newFakeObjectStorage()
	backend.objects["covers/7"] = []byte("jpeg-bytes")
	svc := NewBookService(repo, storage.NewStorage(backend))

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(repo.deleted) != 1 || repo.deleted[0] != 7 {
		t.Fatalf("repo delete calls = %v, want [7]", repo.deleted)
	}
	if len(backend.removed) != 1 || backend.removed[0] != "covers/7" {
		t.Fatalf("storage delete calls = %v, want [covers/7]", backend.removed)
	}
}

func TestDeleteToleratesCoverRemovalFailure(t *testing.T) {
	repo := newFakeBookRepo(types.Book{ID: 7, CoverKey: "covers/7"})
	backend := newFakeObjectStorage()
	backend.delErr = errors.New("storage unavailable")
	svc := NewBookService(repo, storage.NewStorage(backend))

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("book not deleted from repo")
	}
}

func TestDeleteWithoutStorage(t *testing.T) {
	repo := newFakeBookRepo(types.Book{ID: 2, CoverKey: "covers/2"})
	svc := NewBookService(repo, nil)

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), 2); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("repeat delete err = %v, want ErrNotFound", err)
	}
}
