package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/openshelf/internal/services"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/types"
)

// maxCoverBytes caps cover image uploads.
const maxCoverBytes = 10 << 20

// BookHandler provides HTTP handlers for the book catalog.
type BookHandler struct {
	bookService *services.BookService
}

func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BookRouter registers book routes on the given router.
func BookRouter(r chi.Router, bookService *services.BookService, auth, admin func(http.Handler) http.Handler) {
	handler := NewBookHandler(bookService)

	r.With(auth).Get("/", handler.List)
	r.With(auth, admin).Post("/", handler.Create)
	r.Route("/{bookID}", func(r chi.Router) {
		r.With(auth).Get("/", handler.Get)
		r.With(auth, admin).Put("/", handler.Update)
		r.With(auth, admin).Delete("/", handler.Delete)
		r.With(auth).Get("/cover", handler.Cover)
		r.With(auth, admin).Put("/cover", handler.UploadCover)
	})
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.BookFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Status:   query.Get("status"),
	}

	books, err := h.bookService.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: books})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch book")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var book types.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if book.Title == "" || book.Author == "" {
		writeError(w, http.StatusBadRequest, "title and author are required")
		return
	}

	created, err := h.bookService.Create(r.Context(), book)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create book")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var book types.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	book.ID = id

	updated, err := h.bookService.Update(r.Context(), book)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update book")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// UploadCover stores the request body as the book's cover image.
func (h *BookHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxCoverBytes)
	contentType := r.Header.Get("Content-Type")
	if err := h.bookService.UploadCover(r.Context(), id, body, r.ContentLength, contentType); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store cover")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Cover streams the book's cover image.
func (h *BookHandler) Cover(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reader, err := h.bookService.Cover(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, services.ErrNoCover) {
			writeError(w, http.StatusNotFound, "cover not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch cover")
		return
	}
	defer reader.Close()

	_, _ = io.Copy(w, reader)
}
