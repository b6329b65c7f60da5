// Package web serves the HTML pages of the application. Pages render
// server-side shells; user-specific data is loaded from the JSON API
// by the pages themselves, so the guard only needs the session marker.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/openshelf/internal/guard"
	"github.com/openshelf/openshelf/internal/services"
	"github.com/openshelf/openshelf/internal/store"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and page scripts. It is
// mounted outside the guard so public pages can always load assets.
func StaticHandler() http.Handler {
	return http.FileServerFS(staticFS)
}

// Handler renders the application pages.
type Handler struct {
	templates       *template.Template
	bookService     *services.BookService
	categoryService *services.CategoryService
	logger          *zap.Logger
}

func NewHandler(bookService *services.BookService, categoryService *services.CategoryService, logger *zap.Logger) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		templates:       templates,
		bookService:     bookService,
		categoryService: categoryService,
		logger:          logger,
	}, nil
}

// Router registers the page routes behind the navigation guard.
func Router(r chi.Router, handler *Handler, isDevelopment bool) {
	r.Use(guard.Middleware(isDevelopment))

	r.Get("/", handler.Home)
	r.Get("/about", handler.About)
	r.Get("/login", handler.Login)
	r.Get("/register", handler.Register)
	r.Get("/dashboard", handler.Dashboard)
	r.Get("/dashboard/books", handler.Books)
	r.Get("/dashboard/loans", handler.Loans)
	r.Get("/admin/dashboard", handler.AdminDashboard)
	r.Get("/admin/books", handler.AdminBooks)
	r.Get("/admin/patrons", handler.AdminPatrons)
	r.Get("/admin/loans", handler.AdminLoans)
}

type pageData struct {
	Title      string
	Books      any
	Categories any
}

func (h *Handler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html", pageData{Title: "OpenShelf"})
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, "about.html", pageData{Title: "About"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", pageData{Title: "Sign In"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", pageData{Title: "Create Account"})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, "dashboard.html", pageData{Title: "Dashboard"})
}

// Books renders the catalog with server-side data since the listing
// is not user-specific.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context(), store.BookFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.logger.Warn("failed to list books for page", zap.Error(err))
	}
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.logger.Warn("failed to list categories for page", zap.Error(err))
	}
	h.render(w, "books.html", pageData{Title: "Books", Books: books, Categories: categories})
}

func (h *Handler) Loans(w http.ResponseWriter, r *http.Request) {
	h.render(w, "loans.html", pageData{Title: "My Loans"})
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_dashboard.html", pageData{Title: "Admin Dashboard"})
}

func (h *Handler) AdminBooks(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_books.html", pageData{Title: "Manage Books"})
}

func (h *Handler) AdminPatrons(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_patrons.html", pageData{Title: "Manage Patrons"})
}

func (h *Handler) AdminLoans(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_loans.html", pageData{Title: "Manage Loans"})
}
