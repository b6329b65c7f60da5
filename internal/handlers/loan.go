package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/openshelf/internal/services"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/types"
)

// defaultLoanDays is the loan period applied when no due date is given.
const defaultLoanDays = 14

// LoanHandler provides HTTP handlers for loans.
type LoanHandler struct {
	loanService *services.LoanService
	userService *services.UserService
}

func NewLoanHandler(loanService *services.LoanService, userService *services.UserService) *LoanHandler {
	return &LoanHandler{loanService: loanService, userService: userService}
}

// LoanRouter registers loan routes on the given router.
func LoanRouter(r chi.Router, loanService *services.LoanService, userService *services.UserService, auth, admin func(http.Handler) http.Handler) {
	handler := NewLoanHandler(loanService, userService)

	r.With(auth).Get("/", handler.List)
	r.With(auth, admin).Post("/", handler.Create)
	r.Route("/{loanID}", func(r chi.Router) {
		r.With(auth).Get("/", handler.Get)
		r.With(auth, admin).Put("/", handler.Update)
		r.With(auth, admin).Delete("/", handler.Delete)
		r.With(auth).Post("/return", handler.Return)
	})
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: loans})
}

// ListMine lists the authenticated patron's own loans. Mounted at
// /api/user/loans.
func (h *LoanHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeUnauthenticated(w)
		return
	}

	loans, err := h.loanService.ListByPatron(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: loans})
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "loanID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loan, err := h.loanService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "loan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch loan")
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var loan types.Loan
	if err := json.NewDecoder(r.Body).Decode(&loan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if loan.BookID == 0 || loan.PatronID == 0 {
		writeError(w, http.StatusBadRequest, "bookId and patronId are required")
		return
	}

	now := time.Now()
	if loan.CheckoutDate == "" {
		loan.CheckoutDate = now.Format(types.LoanDateFormat)
	}
	if loan.DueDate == "" {
		loan.DueDate = now.AddDate(0, 0, defaultLoanDays).Format(types.LoanDateFormat)
	}

	created, err := h.loanService.Create(r.Context(), loan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create loan")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "loanID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var loan types.Loan
	if err := json.NewDecoder(r.Body).Decode(&loan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	loan.ID = id

	updated, err := h.loanService.Update(r.Context(), loan)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "loan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update loan")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Return closes the loan. Admins can return any loan; patrons only
// their own.
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "loanID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeUnauthenticated(w)
		return
	}
	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeUnauthenticated(w)
		return
	}

	loan, err := h.loanService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "loan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch loan")
		return
	}
	if !user.IsAdmin() && loan.PatronID != user.ID {
		writeError(w, http.StatusForbidden, "not your loan")
		return
	}
	if loan.ReturnDate != nil {
		writeError(w, http.StatusConflict, "loan already returned")
		return
	}

	returned, err := h.loanService.Return(r.Context(), id, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to return loan")
		return
	}
	writeJSON(w, http.StatusOK, returned)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "loanID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.loanService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "loan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete loan")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
