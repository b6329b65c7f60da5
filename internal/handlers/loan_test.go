package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/openshelf/internal/services"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/types"
)

type fakeLoanRepo struct {
	nextID int
	loans  map[int]types.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{nextID: 1, loans: map[int]types.Loan{}}
}

func (r *fakeLoanRepo) List(context.Context) ([]types.Loan, error) {
	loans := make([]types.Loan, 0, len(r.loans))
	for _, loan := range r.loans {
		loans = append(loans, loan)
	}
	return loans, nil
}

func (r *fakeLoanRepo) ListByPatron(_ context.Context, patronID int) ([]types.Loan, error) {
	var loans []types.Loan
	for _, loan := range r.loans {
		if loan.PatronID == patronID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (r *fakeLoanRepo) Get(_ context.Context, id int) (types.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return types.Loan{}, store.ErrNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepo) Create(_ context.Context, loan types.Loan) (types.Loan, error) {
	loan.ID = r.nextID
	loan.Status = types.LoanStatusLoaned
	r.nextID++
	r.loans[loan.ID] = loan
	return loan, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, loan types.Loan) (types.Loan, error) {
	if _, ok := r.loans[loan.ID]; !ok {
		return types.Loan{}, store.ErrNotFound
	}
	r.loans[loan.ID] = loan
	return loan, nil
}

func (r *fakeLoanRepo) Return(_ context.Context, id int, returnedAt time.Time) (types.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return types.Loan{}, store.ErrNotFound
	}
	returned := returnedAt.Format(types.LoanDateFormat)
	loan.ReturnDate = &returned
	loan.Status = types.LoanStatusReturned
	r.loans[id] = loan
	return loan, nil
}

func (r *fakeLoanRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.loans[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.loans, id)
	return nil
}

// asUser injects the authenticated subject the way RequireAuth does.
func asUser(userID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextSubjectKey, strconv.Itoa(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func TestLoanCreateDefaultsDates(t *testing.T) {
	repo := newFakeLoanRepo()
	loanService := services.NewLoanService(repo, nil, nil)
	userService := services.NewUserService(newFakeUserRepo())

	router := chi.NewRouter()
	LoanRouter(router, loanService, userService, asUser(1), passthrough)

	rec := postJSON(t, router, "/", types.Loan{BookID: 2, PatronID: 3}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var loan types.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &loan); err != nil {
		t.Fatalf("decode loan: %v", err)
	}
	now := time.Now()
	if loan.CheckoutDate != now.Format(types.LoanDateFormat) {
		t.Fatalf("checkout date not defaulted: %q", loan.CheckoutDate)
	}
	if loan.DueDate != now.AddDate(0, 0, defaultLoanDays).Format(types.LoanDateFormat) {
		t.Fatalf("due date not defaulted: %q", loan.DueDate)
	}
	if loan.Status != types.LoanStatusLoaned {
		t.Fatalf("unexpected status: %q", loan.Status)
	}
}

func TestLoanReturnOwnership(t *testing.T) {
	userRepo := newFakeUserRepo()
	owner, _ := userRepo.Create(context.Background(), types.User{Name: "Owner", Email: "owner@library.test", Role: types.RoleUser})
	other, _ := userRepo.Create(context.Background(), types.User{Name: "Other", Email: "other@library.test", Role: types.RoleUser})
	admin, _ := userRepo.Create(context.Background(), types.User{Name: "Admin", Email: "admin@library.test", Role: types.RoleAdmin})

	loanRepo := newFakeLoanRepo()
	loanService := services.NewLoanService(loanRepo, nil, nil)
	userService := services.NewUserService(userRepo)

	newRouter := func(userID int) *chi.Mux {
		router := chi.NewRouter()
		LoanRouter(router, loanService, userService, asUser(userID), passthrough)
		return router
	}

	loan, _ := loanRepo.Create(context.Background(), types.Loan{BookID: 1, PatronID: owner.ID})
	path := "/" + strconv.Itoa(loan.ID) + "/return"

	if rec := postJSON(t, newRouter(other.ID), path, struct{}{}, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("another patron must be forbidden, got %d", rec.Code)
	}
	if rec := postJSON(t, newRouter(owner.ID), path, struct{}{}, nil); rec.Code != http.StatusOK {
		t.Fatalf("owner return failed: %d", rec.Code)
	}
	if rec := postJSON(t, newRouter(owner.ID), path, struct{}{}, nil); rec.Code != http.StatusConflict {
		t.Fatalf("second return must conflict, got %d", rec.Code)
	}

	adminLoan, _ := loanRepo.Create(context.Background(), types.Loan{BookID: 2, PatronID: owner.ID})
	adminPath := "/" + strconv.Itoa(adminLoan.ID) + "/return"
	if rec := postJSON(t, newRouter(admin.ID), adminPath, struct{}{}, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin return failed: %d", rec.Code)
	}
}

func TestListMineFiltersByPatron(t *testing.T) {
	loanRepo := newFakeLoanRepo()
	loanRepo.Create(context.Background(), types.Loan{BookID: 1, PatronID: 7})
	loanRepo.Create(context.Background(), types.Loan{BookID: 2, PatronID: 8})
	loanRepo.Create(context.Background(), types.Loan{BookID: 3, PatronID: 7})

	handler := NewLoanHandler(services.NewLoanService(loanRepo, nil, nil), services.NewUserService(newFakeUserRepo()))

	router := chi.NewRouter()
	router.With(asUser(7)).Get("/user/loans", handler.ListMine)

	req := httptest.NewRequest(http.MethodGet, "/user/loans", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list mine: %d", rec.Code)
	}

	var resp struct {
		Data []types.Loan `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 loans for patron 7, got %d", len(resp.Data))
	}
}
