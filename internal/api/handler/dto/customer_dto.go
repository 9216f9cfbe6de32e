package dto

import (
	"fmt"
	"strings"
	"time"
	"xyzbank/internal/domain/customer"

	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	CustomerID   string `json:"customerId"`
	AnnualIncome string `json:"annualIncome"`
}

func (r *CreateCustomerRequest) Validate() error {
	if !customer.ValidID(r.CustomerID) {
		return fmt.Errorf("customerId must be 3 letters followed by 3 digits")
	}
	if _, err := parseNonNegative("annualIncome", r.AnnualIncome); err != nil {
		return err
	}
	return nil
}

// Income returns the validated income as a float; call Validate first.
func (r *CreateCustomerRequest) Income() float64 {
	v, _ := parseNonNegative("annualIncome", r.AnnualIncome)
	return v
}

type UpdateIncomeRequest struct {
	AnnualIncome string `json:"annualIncome"`
}

func (r *UpdateIncomeRequest) Validate() error {
	_, err := parseNonNegative("annualIncome", r.AnnualIncome)
	return err
}

func (r *UpdateIncomeRequest) Income() float64 {
	v, _ := parseNonNegative("annualIncome", r.AnnualIncome)
	return v
}

type CustomerResponse struct {
	CustomerID      string         `json:"customerId"`
	AnnualIncome    string         `json:"annualIncome"`
	Eligible        bool           `json:"eligible"`
	TotalAmountLeft string         `json:"totalAmountLeft"`
	LoanCount       int            `json:"loanCount"`
	Loans           []LoanResponse `json:"loans"`
	CreateDate      time.Time      `json:"createDate"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func NewCustomerResponse(v customer.View) CustomerResponse {
	loans := make([]LoanResponse, len(v.Loans))
	for i, l := range v.Loans {
		loans[i] = NewLoanResponse(l)
	}
	return CustomerResponse{
		CustomerID:      v.CustomerID,
		AnnualIncome:    formatMoney(v.AnnualIncome),
		Eligible:        v.Eligible,
		TotalAmountLeft: formatMoney(v.TotalAmountLeft),
		LoanCount:       len(v.Loans),
		Loans:           loans,
		CreateDate:      v.CreateDate,
		UpdatedAt:       v.UpdatedAt,
	}
}

func parseNonNegative(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric format for %s", field)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%s cannot be negative", field)
	}
	return toFloat(field, d)
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
