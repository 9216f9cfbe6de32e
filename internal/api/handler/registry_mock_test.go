package handler_test

import (
	"context"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/domain/registry"

	"github.com/stretchr/testify/mock"
)

type MockRegistryService struct {
	mock.Mock
}

var _ registry.RegistryService = (*MockRegistryService)(nil)

func (_m *MockRegistryService) RegisterCustomer(ctx context.Context, customerID string, annualIncome loan.Money) (customer.View, error) {
	ret := _m.Called(ctx, customerID, annualIncome)
	return ret.Get(0).(customer.View), ret.Error(1)
}

func (_m *MockRegistryService) AddLoan(ctx context.Context, customerID string, l loan.Loan) error {
	ret := _m.Called(ctx, customerID, l)
	return ret.Error(0)
}

func (_m *MockRegistryService) RemoveLoan(ctx context.Context, customerID, recordID string) error {
	ret := _m.Called(ctx, customerID, recordID)
	return ret.Error(0)
}

func (_m *MockRegistryService) UpdateIncome(ctx context.Context, customerID string, newIncome loan.Money) error {
	ret := _m.Called(ctx, customerID, newIncome)
	return ret.Error(0)
}

func (_m *MockRegistryService) GetCustomerReport(ctx context.Context, customerID string) (customer.View, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Get(0).(customer.View), ret.Error(1)
}

func (_m *MockRegistryService) GetAllCustomersReport(ctx context.Context) []customer.View {
	ret := _m.Called(ctx)

	var r0 []customer.View
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.View)
	}
	return r0
}

func (_m *MockRegistryService) HasCustomer(ctx context.Context, customerID string) bool {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0)
}

func (_m *MockRegistryService) RecordExists(ctx context.Context, recordID string) bool {
	ret := _m.Called(ctx, recordID)
	return ret.Bool(0)
}

func (_m *MockRegistryService) Summary(ctx context.Context) registry.Summary {
	ret := _m.Called(ctx)
	return ret.Get(0).(registry.Summary)
}

func (_m *MockRegistryService) RecordCount(ctx context.Context) int {
	ret := _m.Called(ctx)
	return ret.Int(0)
}

func (_m *MockRegistryService) MaxRecords() int {
	ret := _m.Called()
	return ret.Int(0)
}

func (_m *MockRegistryService) Audit(ctx context.Context) registry.AuditResult {
	ret := _m.Called(ctx)
	return ret.Get(0).(registry.AuditResult)
}
