package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/openshelf/internal/mq"
	"github.com/openshelf/openshelf/types"
	"go.uber.org/zap"
)

// LoanEventsChannel is where loan lifecycle events are published for
// downstream notification consumers.
const LoanEventsChannel = "loan-events"

// Loan event types.
const (
	LoanEventCreated  = "loan.created"
	LoanEventReturned = "loan.returned"
)

// LoanEvent is the payload published on loan transitions.
type LoanEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	LoanID    int    `json:"loanId"`
	BookTitle string `json:"bookTitle"`
	Patron    string `json:"patron"`
	DueDate   string `json:"dueDate"`
}

// LoanRepository defines persistence operations for loans.
type LoanRepository interface {
	List(ctx context.Context) ([]types.Loan, error)
	ListByPatron(ctx context.Context, patronID int) ([]types.Loan, error)
	Get(ctx context.Context, id int) (types.Loan, error)
	Create(ctx context.Context, loan types.Loan) (types.Loan, error)
	Update(ctx context.Context, loan types.Loan) (types.Loan, error)
	Return(ctx context.Context, id int, returnedAt time.Time) (types.Loan, error)
	Delete(ctx context.Context, id int) error
}

// LoanService encapsulates loan use-cases. Event publishing is best
// effort: a broker failure never fails the loan operation.
type LoanService struct {
	repo   LoanRepository
	events *mq.MQ
	logger *zap.Logger
}

// NewLoanService wires a loan service. events may be nil when no
// broker is configured.
func NewLoanService(repo LoanRepository, events *mq.MQ, logger *zap.Logger) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{repo: repo, events: events, logger: logger}
}

func (s *LoanService) List(ctx context.Context) ([]types.Loan, error) {
	return s.repo.List(ctx)
}

func (s *LoanService) ListByPatron(ctx context.Context, patronID int) ([]types.Loan, error) {
	return s.repo.ListByPatron(ctx, patronID)
}

func (s *LoanService) Get(ctx context.Context, id int) (types.Loan, error) {
	return s.repo.Get(ctx, id)
}

func (s *LoanService) Create(ctx context.Context, loan types.Loan) (types.Loan, error) {
	created, err := s.repo.Create(ctx, loan)
	if err != nil {
		return types.Loan{}, err
	}
	s.publish(ctx, LoanEventCreated, created)
	return created, nil
}

func (s *LoanService) Update(ctx context.Context, loan types.Loan) (types.Loan, error) {
	return s.repo.Update(ctx, loan)
}

func (s *LoanService) Return(ctx context.Context, id int, returnedAt time.Time) (types.Loan, error) {
	returned, err := s.repo.Return(ctx, id, returnedAt)
	if err != nil {
		return types.Loan{}, err
	}
	s.publish(ctx, LoanEventReturned, returned)
	return returned, nil
}

func (s *LoanService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *LoanService) publish(ctx context.Context, eventType string, loan types.Loan) {
	if s.events == nil {
		return
	}

	event := LoanEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		LoanID:    loan.ID,
		BookTitle: loan.BookTitle,
		Patron:    loan.Patron,
		DueDate:   loan.DueDate,
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to encode loan event", zap.Error(err))
		return
	}

	attrs := map[string]string{"type": eventType}
	if _, err := s.events.Publish(ctx, LoanEventsChannel, data, attrs); err != nil {
		s.logger.Warn("failed to publish loan event",
			zap.String("type", eventType),
			zap.Int("loan_id", loan.ID),
			zap.Error(err))
	}
}
