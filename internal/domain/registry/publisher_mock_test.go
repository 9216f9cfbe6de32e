package registry_test

import (
	"context"
	"xyzbank/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

func (_m *MockEventPublisher) PublishCustomerRegistered(ctx context.Context, e event.CustomerRegisteredEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishIncomeUpdated(ctx context.Context, e event.IncomeUpdatedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishEligibilityChanged(ctx context.Context, e event.EligibilityChangedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishLoanAdded(ctx context.Context, e event.LoanAddedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishLoanRemoved(ctx context.Context, e event.LoanRemovedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

// expectAny accepts every event; tests that care about a specific event
// assert on the recorded calls afterwards.
func (_m *MockEventPublisher) expectAny() {
	for _, method := range []string{
		"PublishCustomerRegistered",
		"PublishIncomeUpdated",
		"PublishEligibilityChanged",
		"PublishLoanAdded",
		"PublishLoanRemoved",
	} {
		_m.On(method, mock.Anything, mock.Anything).Return(nil).Maybe()
	}
}
