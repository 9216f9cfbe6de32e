package registry

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"xyzbank/internal/config"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/event"
	"xyzbank/internal/infrastructure/monitoring"
	"xyzbank/internal/pkg/apperrors"
)

const (
	opRegisterCustomer = "register_customer"
	opAddLoan          = "add_loan"
	opRemoveLoan       = "remove_loan"
	opUpdateIncome     = "update_income"

	statusSuccess          = "success"
	statusInvalid          = "invalid"
	statusNotFound         = "not_found"
	statusAlreadyExists    = "already_exists"
	statusCapacityExceeded = "capacity_exceeded"
	statusDuplicateRecord  = "duplicate_record"
	statusNotEligible      = "not_eligible"

	customerNotFound = "Customer not found in registry"
)

// RegistryService is the bank: it owns every customer, enforces the global
// record ceiling and the system-wide uniqueness of record IDs. Customer IDs
// are case-insensitive at every entry point.
type RegistryService interface {
	RegisterCustomer(ctx context.Context, customerID string, annualIncome loan.Money) (customer.View, error)
	AddLoan(ctx context.Context, customerID string, l loan.Loan) error
	RemoveLoan(ctx context.Context, customerID, recordID string) error
	UpdateIncome(ctx context.Context, customerID string, newIncome loan.Money) error
	GetCustomerReport(ctx context.Context, customerID string) (customer.View, error)
	GetAllCustomersReport(ctx context.Context) []customer.View
	HasCustomer(ctx context.Context, customerID string) bool
	RecordExists(ctx context.Context, recordID string) bool
	Summary(ctx context.Context) Summary
	RecordCount(ctx context.Context) int
	MaxRecords() int
	Audit(ctx context.Context) AuditResult
}

type Summary struct {
	MaxRecords  int
	RecordCount int
	Customers   int
}

var _ RegistryService = (*registryService)(nil)

type registryService struct {
	mu                 sync.RWMutex
	customers          map[string]*customer.Customer
	records            map[string]string // record ID -> owning customer ID
	maxRecords         int
	enforceEligibility bool

	pub    event.EventPublisher
	logger *slog.Logger
}

type pendingEvent func(ctx context.Context) error

// RecordNotFoundError is returned by RemoveLoan when the customer exists but
// holds no loan with the record ID. It matches apperrors.ErrNotFound.
type RecordNotFoundError struct {
	CustomerID string
	RecordID   string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s: record %s not found for customer %s", apperrors.ErrNotFound, e.RecordID, e.CustomerID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return apperrors.ErrNotFound
}

func NewRegistryService(cfg config.RegistryConfig, pub event.EventPublisher, logger *slog.Logger) (RegistryService, error) {
	if cfg.MaxRecords <= 0 {
		return nil, apperrors.NewValidationError("maxRecords", "must be a positive number")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewRegistryService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NewLogEventPublisher(logger)
	}

	s := &registryService{
		customers:          make(map[string]*customer.Customer),
		records:            make(map[string]string),
		maxRecords:         cfg.MaxRecords,
		enforceEligibility: cfg.EnforceEligibility,
		pub:                pub,
		logger:             logger.With(slog.String("component", "registryService")),
	}
	monitoring.SetRegistryState(0, s.maxRecords, 0)
	s.logger.Info("Registry initialised", slog.Int("maxRecords", s.maxRecords), slog.Bool("enforceEligibility", s.enforceEligibility))
	return s, nil
}

func (s *registryService) RegisterCustomer(ctx context.Context, customerID string, annualIncome loan.Money) (customer.View, error) {
	customerID = customer.NormalizeID(customerID)
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to register customer")

	cust, err := customer.NewCustomer(customerID, annualIncome)
	if err != nil {
		logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		monitoring.RecordOperation(opRegisterCustomer, statusInvalid)
		return customer.View{}, err
	}

	view, pending, err := s.registerLocked(ctx, logger, cust)
	if err != nil {
		return customer.View{}, err
	}

	monitoring.RecordOperation(opRegisterCustomer, statusSuccess)
	logger.InfoContext(ctx, "Customer registered successfully")
	s.publish(ctx, pending)
	return view, nil
}

func (s *registryService) registerLocked(ctx context.Context, logger *slog.Logger, cust *customer.Customer) (customer.View, []pendingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[cust.CustomerID]; exists {
		logger.WarnContext(ctx, "Customer already exists")
		monitoring.RecordOperation(opRegisterCustomer, statusAlreadyExists)
		return customer.View{}, nil, fmt.Errorf("%w: customer with ID %s already exists", apperrors.ErrAlreadyExists, cust.CustomerID)
	}
	s.customers[cust.CustomerID] = cust
	view := cust.View()
	pending := []pendingEvent{func(ctx context.Context) error {
		return s.pub.PublishCustomerRegistered(ctx, event.CustomerRegisteredEvent{
			EventID:   event.NewEventID(),
			Timestamp: view.UpdatedAt,
			Payload:   newCustomerEventPayload(view),
		})
	}}
	s.refreshGaugesLocked()
	return view, pending, nil
}

func (s *registryService) AddLoan(ctx context.Context, customerID string, l loan.Loan) error {
	customerID = customer.NormalizeID(customerID)
	logger := s.logger.With(slog.String("customerID", customerID), slog.String("recordID", l.RecordID))
	logger.InfoContext(ctx, "Attempting to add loan to customer")

	if err := l.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed for new loan", slog.Any("error", err))
		monitoring.RecordOperation(opAddLoan, statusInvalid)
		return err
	}

	recordCount, pending, err := s.addLoanLocked(ctx, logger, customerID, l)
	if err != nil {
		return err
	}

	monitoring.RecordOperation(opAddLoan, statusSuccess)
	logger.InfoContext(ctx, "Loan successfully added", slog.String("loan", l.Details()), slog.Int("recordCount", recordCount))
	s.publish(ctx, pending)
	return nil
}

// addLoanLocked applies the checks in order: capacity, customer, record ID,
// then eligibility when enforced.
func (s *registryService) addLoanLocked(ctx context.Context, logger *slog.Logger, customerID string, l loan.Loan) (int, []pendingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current := len(s.records); current >= s.maxRecords {
		logger.WarnContext(ctx, "Cannot add more loans, maximum records limit reached",
			slog.Int("recordCount", current), slog.Int("maxRecords", s.maxRecords))
		monitoring.RecordOperation(opAddLoan, statusCapacityExceeded)
		return current, nil, apperrors.NewCapacityError(current, s.maxRecords)
	}

	cust, ok := s.customers[customerID]
	if !ok {
		logger.WarnContext(ctx, customerNotFound)
		monitoring.RecordOperation(opAddLoan, statusNotFound)
		return len(s.records), nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrNotFound, customerID)
	}

	if owner, taken := s.records[l.RecordID]; taken {
		logger.WarnContext(ctx, "Record with the same record ID already exists", slog.String("ownerID", owner))
		monitoring.RecordOperation(opAddLoan, statusDuplicateRecord)
		return len(s.records), nil, fmt.Errorf("%w: record %s is already registered", apperrors.ErrDuplicateRecord, l.RecordID)
	}

	if s.enforceEligibility && !cust.WouldRemainEligible(l) {
		logger.WarnContext(ctx, "Loan addition failed due to eligibility criteria")
		monitoring.RecordOperation(opAddLoan, statusNotEligible)
		return len(s.records), nil, fmt.Errorf("%w: customer %s would exceed %d times annual income", apperrors.ErrNotEligible, customerID, customer.IncomeMultiplier)
	}

	wasEligible := cust.IsEligible()
	cust.AddLoan(l)
	s.records[l.RecordID] = cust.CustomerID
	recordCount := len(s.records)
	ts := cust.UpdatedAt
	pending := []pendingEvent{func(ctx context.Context) error {
		return s.pub.PublishLoanAdded(ctx, event.LoanAddedEvent{
			EventID:     event.NewEventID(),
			Timestamp:   ts,
			CustomerID:  customerID,
			RecordCount: recordCount,
			Loan:        newLoanEventPayload(l),
		})
	}}
	pending = s.appendEligibilityChange(pending, cust, wasEligible)
	s.refreshGaugesLocked()
	return recordCount, pending, nil
}

func (s *registryService) RemoveLoan(ctx context.Context, customerID, recordID string) error {
	customerID = customer.NormalizeID(customerID)
	logger := s.logger.With(slog.String("customerID", customerID), slog.String("recordID", recordID))
	logger.InfoContext(ctx, "Attempting to remove loan from customer")

	recordCount, pending, err := s.removeLoanLocked(ctx, logger, customerID, recordID)
	if err != nil {
		return err
	}

	monitoring.RecordOperation(opRemoveLoan, statusSuccess)
	logger.InfoContext(ctx, "Loan successfully removed", slog.Int("recordCount", recordCount))
	s.publish(ctx, pending)
	return nil
}

func (s *registryService) removeLoanLocked(ctx context.Context, logger *slog.Logger, customerID, recordID string) (int, []pendingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cust, ok := s.customers[customerID]
	if !ok {
		logger.WarnContext(ctx, customerNotFound)
		monitoring.RecordOperation(opRemoveLoan, statusNotFound)
		return len(s.records), nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrNotFound, customerID)
	}

	wasEligible := cust.IsEligible()
	if cust.RemoveLoan(recordID) == 0 {
		logger.WarnContext(ctx, "Customer holds no loan with this record ID")
		monitoring.RecordOperation(opRemoveLoan, statusNotFound)
		return len(s.records), nil, &RecordNotFoundError{CustomerID: customerID, RecordID: recordID}
	}
	delete(s.records, recordID)
	recordCount := len(s.records)
	ts := cust.UpdatedAt
	pending := []pendingEvent{func(ctx context.Context) error {
		return s.pub.PublishLoanRemoved(ctx, event.LoanRemovedEvent{
			EventID:     event.NewEventID(),
			Timestamp:   ts,
			CustomerID:  customerID,
			RecordID:    recordID,
			RecordCount: recordCount,
		})
	}}
	pending = s.appendEligibilityChange(pending, cust, wasEligible)
	s.refreshGaugesLocked()
	return recordCount, pending, nil
}

func (s *registryService) UpdateIncome(ctx context.Context, customerID string, newIncome loan.Money) error {
	customerID = customer.NormalizeID(customerID)
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer income")

	view, pending, err := s.updateIncomeLocked(ctx, logger, customerID, newIncome)
	if err != nil {
		return err
	}

	monitoring.RecordOperation(opUpdateIncome, statusSuccess)
	logger.InfoContext(ctx, "Customer income updated", slog.Bool("eligible", view.Eligible))
	s.publish(ctx, pending)
	return nil
}

func (s *registryService) updateIncomeLocked(ctx context.Context, logger *slog.Logger, customerID string, newIncome loan.Money) (customer.View, []pendingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cust, ok := s.customers[customerID]
	if !ok {
		logger.WarnContext(ctx, customerNotFound)
		monitoring.RecordOperation(opUpdateIncome, statusNotFound)
		return customer.View{}, nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrNotFound, customerID)
	}

	oldIncome := cust.AnnualIncome
	wasEligible := cust.IsEligible()
	if err := cust.UpdateIncome(newIncome); err != nil {
		logger.WarnContext(ctx, "Validation failed for new income", slog.Any("error", err))
		monitoring.RecordOperation(opUpdateIncome, statusInvalid)
		return customer.View{}, nil, err
	}
	view := cust.View()
	pending := []pendingEvent{func(ctx context.Context) error {
		return s.pub.PublishIncomeUpdated(ctx, event.IncomeUpdatedEvent{
			EventID:   event.NewEventID(),
			Timestamp: view.UpdatedAt,
			OldIncome: oldIncome,
			Payload:   newCustomerEventPayload(view),
		})
	}}
	pending = s.appendEligibilityChange(pending, cust, wasEligible)
	return view, pending, nil
}

func (s *registryService) GetCustomerReport(ctx context.Context, customerID string) (customer.View, error) {
	customerID = customer.NormalizeID(customerID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	cust, ok := s.customers[customerID]
	if !ok {
		s.logger.WarnContext(ctx, customerNotFound, slog.String("customerID", customerID))
		return customer.View{}, fmt.Errorf("%w: customer %s not found", apperrors.ErrNotFound, customerID)
	}
	return cust.View(), nil
}

// GetAllCustomersReport lists every customer ordered by customer ID.
func (s *registryService) GetAllCustomersReport(ctx context.Context) []customer.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]customer.View, 0, len(s.customers))
	for _, id := range slices.Sorted(maps.Keys(s.customers)) {
		views = append(views, s.customers[id].View())
	}
	s.logger.DebugContext(ctx, "Built all-customers report", slog.Int("count", len(views)))
	return views
}

func (s *registryService) HasCustomer(_ context.Context, customerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[customer.NormalizeID(customerID)]
	return ok
}

func (s *registryService) RecordExists(_ context.Context, recordID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[recordID]
	return ok
}

func (s *registryService) Summary(_ context.Context) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summary{
		MaxRecords:  s.maxRecords,
		RecordCount: len(s.records),
		Customers:   len(s.customers),
	}
}

func (s *registryService) RecordCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MaxRecords is fixed at construction and needs no lock.
func (s *registryService) MaxRecords() int {
	return s.maxRecords
}

func (s *registryService) appendEligibilityChange(pending []pendingEvent, cust *customer.Customer, wasEligible bool) []pendingEvent {
	isEligible := cust.IsEligible()
	if isEligible == wasEligible {
		return pending
	}
	customerID := cust.CustomerID
	ts := cust.UpdatedAt
	return append(pending, func(ctx context.Context) error {
		return s.pub.PublishEligibilityChanged(ctx, event.EligibilityChangedEvent{
			EventID:    event.NewEventID(),
			CustomerID: customerID,
			NewStatus:  isEligible,
			OldStatus:  wasEligible,
			Timestamp:  ts,
		})
	})
}

// publish runs outside the registry lock; failures are logged, never returned.
func (s *registryService) publish(ctx context.Context, pending []pendingEvent) {
	for _, fn := range pending {
		if err := fn(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish registry event", slog.Any("error", err))
		}
	}
}

func (s *registryService) refreshGaugesLocked() {
	monitoring.SetRegistryState(len(s.records), s.maxRecords, len(s.customers))
}

func newCustomerEventPayload(v customer.View) event.CustomerEventPayload {
	return event.CustomerEventPayload{
		CustomerID:      v.CustomerID,
		AnnualIncome:    v.AnnualIncome,
		Eligible:        v.Eligible,
		TotalAmountLeft: v.TotalAmountLeft,
		LoanCount:       len(v.Loans),
		CreateDate:      v.CreateDate,
		UpdatedAt:       v.UpdatedAt,
	}
}

func newLoanEventPayload(l loan.Loan) event.LoanEventPayload {
	return event.LoanEventPayload{
		RecordID:     l.RecordID,
		LoanType:     l.Type.String(),
		InterestRate: l.InterestRate,
		AmountLeft:   l.AmountLeft,
		TermLeft:     l.TermLeft,
		Overpayment:  l.Overpayment,
	}
}
