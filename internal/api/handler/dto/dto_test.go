package dto

import (
	"testing"
	"time"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/domain/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCustomerRequest
		wantErr string
	}{
		{"valid", CreateCustomerRequest{CustomerID: "abc123", AnnualIncome: "60000.50"}, ""},
		{"zero income", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "0"}, ""},
		{"bad id", CreateCustomerRequest{CustomerID: "AB123", AnnualIncome: "1"}, "customerId must be 3 letters followed by 3 digits"},
		{"missing income", CreateCustomerRequest{CustomerID: "ABC123"}, "annualIncome is required"},
		{"negative income", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "-1"}, "annualIncome cannot be negative"},
		{"not a number", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "ten"}, "invalid numeric format for annualIncome"},
		{"NaN income", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "NaN"}, "invalid numeric format for annualIncome"},
		{"Inf income", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "Inf"}, "invalid numeric format for annualIncome"},
		{"income beyond float range", CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "1e400"}, "annualIncome is out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateCustomerRequest_Income(t *testing.T) {
	req := CreateCustomerRequest{CustomerID: "ABC123", AnnualIncome: "12500.25"}
	assert.Equal(t, 12500.25, req.Income())

	upd := UpdateIncomeRequest{AnnualIncome: "99"}
	require.NoError(t, upd.Validate())
	assert.Equal(t, 99.0, upd.Income())
}

func TestAddLoanRequest_Validate(t *testing.T) {
	valid := AddLoanRequest{RecordID: "000111", LoanType: "auto", InterestRate: "3.5", AmountLeft: "20000", LoanTermLeft: 5}

	tests := []struct {
		name    string
		mutate  func(r *AddLoanRequest)
		wantErr string
	}{
		{"valid", func(r *AddLoanRequest) {}, ""},
		{"short record id", func(r *AddLoanRequest) { r.RecordID = "123" }, "recordId must be exactly 6 digits"},
		{"unknown type", func(r *AddLoanRequest) { r.LoanType = "boat" }, "loanType must be one of [Auto Builder Mortgage Personal Other]"},
		{"zero rate", func(r *AddLoanRequest) { r.InterestRate = "0" }, "interestRate must be greater than zero"},
		{"bad amount", func(r *AddLoanRequest) { r.AmountLeft = "" }, "invalid numeric format for amountLeft"},
		{"zero term", func(r *AddLoanRequest) { r.LoanTermLeft = 0 }, "loanTermLeft must be positive"},
		{"NaN rate", func(r *AddLoanRequest) { r.InterestRate = "NaN" }, "invalid numeric format for interestRate"},
		{"Inf amount", func(r *AddLoanRequest) { r.AmountLeft = "+Inf" }, "invalid numeric format for amountLeft"},
		{"amount beyond float range", func(r *AddLoanRequest) { r.AmountLeft = "1e400" }, "amountLeft is out of range"},
		{"rate beyond float range", func(r *AddLoanRequest) { r.InterestRate = "2e308" }, "interestRate is out of range"},
		{"overpayment beyond float range", func(r *AddLoanRequest) { r.LoanType = "Mortgage"; r.Overpayment = "1e400" }, "overpayment is out of range"},
		{"overpayment on auto", func(r *AddLoanRequest) { r.Overpayment = "10" }, "overpayment is only allowed for Builder and Mortgage loans"},
		{"negative overpayment", func(r *AddLoanRequest) { r.LoanType = "Builder"; r.Overpayment = "-1" }, "overpayment cannot be negative"},
		{"builder overpayment", func(r *AddLoanRequest) { r.LoanType = "Builder"; r.Overpayment = "250" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestAddLoanRequest_ToLoan(t *testing.T) {
	req := AddLoanRequest{RecordID: "000111", LoanType: "MORTGAGE", InterestRate: "2.25", AmountLeft: "150000", LoanTermLeft: 25, Overpayment: "100"}

	l, err := req.ToLoan()
	require.NoError(t, err)
	assert.Equal(t, loan.TypeMortgage, l.Type)
	assert.Equal(t, 2.25, l.InterestRate)
	assert.Equal(t, 150000.0, l.AmountLeft)
	assert.Equal(t, 25, l.TermLeft)
	assert.Equal(t, 100.0, l.Overpayment)
}

func TestAddLoanRequest_ToLoan_OutOfRange(t *testing.T) {
	for _, mutate := range []func(r *AddLoanRequest){
		func(r *AddLoanRequest) { r.AmountLeft = "1e400" },
		func(r *AddLoanRequest) { r.InterestRate = "-1e400" },
		func(r *AddLoanRequest) { r.Overpayment = "1e400" },
	} {
		req := AddLoanRequest{RecordID: "000111", LoanType: "Mortgage", InterestRate: "2.25", AmountLeft: "150000", LoanTermLeft: 25}
		mutate(&req)

		l, err := req.ToLoan()
		assert.Error(t, err)
		assert.Zero(t, l)
	}
}

func TestNewCustomerResponse(t *testing.T) {
	now := time.Now()
	v := customer.View{
		CustomerID:      "ABC123",
		AnnualIncome:    10000,
		Eligible:        false,
		TotalAmountLeft: 50000.5,
		CreateDate:      now,
		UpdatedAt:       now,
		Loans: []customer.LoanView{
			{RecordID: "000111", Type: loan.TypeAuto, InterestRate: 3.5, AmountLeft: 50000.5, TermLeft: 5},
			{RecordID: "000222", Type: loan.TypeBuilder, InterestRate: 4, AmountLeft: 1, TermLeft: 1, Overpayment: 0},
		},
	}

	resp := NewCustomerResponse(v)

	assert.Equal(t, "ABC123", resp.CustomerID)
	assert.Equal(t, "10000.00", resp.AnnualIncome)
	assert.Equal(t, "50000.50", resp.TotalAmountLeft)
	assert.False(t, resp.Eligible)
	assert.Equal(t, 2, resp.LoanCount)
	assert.Equal(t, "3.5", resp.Loans[0].InterestRate)
	assert.Nil(t, resp.Loans[0].Overpayment)
	require.NotNil(t, resp.Loans[1].Overpayment)
	assert.Equal(t, "0.00", *resp.Loans[1].Overpayment)
	assert.Equal(t, now, resp.CreateDate)
}

func TestNewCustomerResponse_EmptyLoansIsArray(t *testing.T) {
	resp := NewCustomerResponse(customer.View{CustomerID: "ABC123"})
	assert.NotNil(t, resp.Loans)
	assert.Empty(t, resp.Loans)
}

func TestNewRegistryResponse(t *testing.T) {
	resp := NewRegistryResponse(registry.Summary{MaxRecords: 5, RecordCount: 2, Customers: 1})
	assert.Equal(t, RegistryResponse{MaxRecords: 5, RecordCount: 2, AvailableRecords: 3, Customers: 1}, resp)
}
