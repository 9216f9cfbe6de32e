package event

import (
	"context"
	"log/slog"
)

// LogEventPublisher writes events to the structured log. It is used when no
// message broker is configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*LogEventPublisher)(nil)

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LogEventPublisher{logger: logger.With("component", "LogEventPublisher")}
}

func (p *LogEventPublisher) PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error {
	p.logger.InfoContext(ctx, "Domain event", slog.String("routingKey", routingKeyCustomerRegistered),
		slog.String("eventId", event.EventID), slog.String("customerId", event.Payload.CustomerID))
	return nil
}

func (p *LogEventPublisher) PublishIncomeUpdated(ctx context.Context, event IncomeUpdatedEvent) error {
	p.logger.InfoContext(ctx, "Domain event", slog.String("routingKey", routingKeyIncomeUpdated),
		slog.String("eventId", event.EventID), slog.String("customerId", event.Payload.CustomerID),
		slog.Float64("oldIncome", event.OldIncome), slog.Float64("newIncome", event.Payload.AnnualIncome))
	return nil
}

func (p *LogEventPublisher) PublishEligibilityChanged(ctx context.Context, event EligibilityChangedEvent) error {
	p.logger.InfoContext(ctx, "Domain event", slog.String("routingKey", routingKeyEligibilityChanged),
		slog.String("eventId", event.EventID), slog.String("customerId", event.CustomerID),
		slog.Bool("oldStatus", event.OldStatus), slog.Bool("newStatus", event.NewStatus))
	return nil
}

func (p *LogEventPublisher) PublishLoanAdded(ctx context.Context, event LoanAddedEvent) error {
	p.logger.InfoContext(ctx, "Domain event", slog.String("routingKey", routingKeyLoanAdded),
		slog.String("eventId", event.EventID), slog.String("customerId", event.CustomerID),
		slog.String("recordId", event.Loan.RecordID), slog.Int("recordCount", event.RecordCount))
	return nil
}

func (p *LogEventPublisher) PublishLoanRemoved(ctx context.Context, event LoanRemovedEvent) error {
	p.logger.InfoContext(ctx, "Domain event", slog.String("routingKey", routingKeyLoanRemoved),
		slog.String("eventId", event.EventID), slog.String("customerId", event.CustomerID),
		slog.String("recordId", event.RecordID), slog.Int("recordCount", event.RecordCount))
	return nil
}
