package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	routingKeyCustomerRegistered = "customer.registered"
	routingKeyIncomeUpdated      = "customer.income.updated"
	routingKeyEligibilityChanged = "customer.eligibility.changed"
	routingKeyLoanAdded          = "loan.added"
	routingKeyLoanRemoved        = "loan.removed"
)

type EventPublisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error
	PublishIncomeUpdated(ctx context.Context, event IncomeUpdatedEvent) error
	PublishEligibilityChanged(ctx context.Context, event EligibilityChangedEvent) error
	PublishLoanAdded(ctx context.Context, event LoanAddedEvent) error
	PublishLoanRemoved(ctx context.Context, event LoanRemovedEvent) error
}

type CustomerEventPayload struct {
	CustomerID      string    `json:"customerId"`
	AnnualIncome    float64   `json:"annualIncome"`
	Eligible        bool      `json:"eligible"`
	TotalAmountLeft float64   `json:"totalAmountLeft"`
	LoanCount       int       `json:"loanCount"`
	CreateDate      time.Time `json:"createDate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type LoanEventPayload struct {
	RecordID     string  `json:"recordId"`
	LoanType     string  `json:"loanType"`
	InterestRate float64 `json:"interestRate"`
	AmountLeft   float64 `json:"amountLeft"`
	TermLeft     int     `json:"loanTermLeft"`
	Overpayment  float64 `json:"overpayment,omitempty"`
}

type CustomerRegisteredEvent struct {
	EventID   string               `json:"eventId"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type IncomeUpdatedEvent struct {
	EventID   string               `json:"eventId"`
	Timestamp time.Time            `json:"timestamp"`
	OldIncome float64              `json:"oldIncome"`
	Payload   CustomerEventPayload `json:"payload"`
}

type EligibilityChangedEvent struct {
	EventID    string    `json:"eventId"`
	CustomerID string    `json:"customerId"`
	NewStatus  bool      `json:"newStatus"`
	OldStatus  bool      `json:"oldStatus"`
	Timestamp  time.Time `json:"timestamp"`
}

type LoanAddedEvent struct {
	EventID     string           `json:"eventId"`
	Timestamp   time.Time        `json:"timestamp"`
	CustomerID  string           `json:"customerId"`
	RecordCount int              `json:"recordCount"`
	Loan        LoanEventPayload `json:"loan"`
}

type LoanRemovedEvent struct {
	EventID     string    `json:"eventId"`
	Timestamp   time.Time `json:"timestamp"`
	CustomerID  string    `json:"customerId"`
	RecordID    string    `json:"recordId"`
	RecordCount int       `json:"recordCount"`
}

// NewEventID returns a random identifier for an outgoing event.
func NewEventID() string {
	return uuid.NewString()
}
