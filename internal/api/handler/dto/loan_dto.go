package dto

import (
	"fmt"
	"math"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type AddLoanRequest struct {
	RecordID     string `json:"recordId"`
	LoanType     string `json:"loanType"`
	InterestRate string `json:"interestRate"`
	AmountLeft   string `json:"amountLeft"`
	LoanTermLeft int    `json:"loanTermLeft"`
	Overpayment  string `json:"overpayment,omitempty"`
}

func (r *AddLoanRequest) Validate() error {
	if !loan.ValidRecordID(r.RecordID) {
		return fmt.Errorf("recordId must be exactly 6 digits")
	}
	t, err := loan.ParseType(r.LoanType)
	if err != nil {
		return fmt.Errorf("loanType must be one of %v", loan.Types())
	}
	if _, err := positive("interestRate", r.InterestRate); err != nil {
		return err
	}
	if _, err := positive("amountLeft", r.AmountLeft); err != nil {
		return err
	}
	if r.LoanTermLeft <= 0 {
		return fmt.Errorf("loanTermLeft must be positive")
	}
	if r.Overpayment != "" {
		if !t.HasOverpayment() {
			return fmt.Errorf("overpayment is only allowed for Builder and Mortgage loans")
		}
		if _, err := parseNonNegative("overpayment", r.Overpayment); err != nil {
			return err
		}
	}
	return nil
}

// ToLoan builds the domain loan; the domain constructor re-checks every field.
func (r *AddLoanRequest) ToLoan() (loan.Loan, error) {
	t, err := loan.ParseType(r.LoanType)
	if err != nil {
		return loan.Loan{}, err
	}
	var overpayment float64
	if r.Overpayment != "" {
		if overpayment, err = parseNonNegative("overpayment", r.Overpayment); err != nil {
			return loan.Loan{}, err
		}
	}
	rate, err := positive("interestRate", r.InterestRate)
	if err != nil {
		return loan.Loan{}, err
	}
	amount, err := positive("amountLeft", r.AmountLeft)
	if err != nil {
		return loan.Loan{}, err
	}
	return loan.NewLoan(r.RecordID, t, rate, amount, r.LoanTermLeft, overpayment)
}

type LoanResponse struct {
	RecordID     string  `json:"recordId"`
	LoanType     string  `json:"loanType"`
	InterestRate string  `json:"interestRate"`
	AmountLeft   string  `json:"amountLeft"`
	LoanTermLeft int     `json:"loanTermLeft"`
	Overpayment  *string `json:"overpayment,omitempty"`
}

func NewLoanResponse(l customer.LoanView) LoanResponse {
	resp := LoanResponse{
		RecordID:     l.RecordID,
		LoanType:     l.Type.String(),
		InterestRate: decimal.NewFromFloat(l.InterestRate).String(),
		AmountLeft:   formatMoney(l.AmountLeft),
		LoanTermLeft: l.TermLeft,
	}
	if l.Type.HasOverpayment() {
		s := formatMoney(l.Overpayment)
		resp.Overpayment = &s
	}
	return resp
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func positive(field, s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || s == "" {
		return 0, fmt.Errorf("invalid numeric format for %s", field)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%s must be greater than zero", field)
	}
	return toFloat(field, d)
}

// toFloat converts d for the domain layer. Decimals outside float64 range
// would become an infinity.
func toFloat(field string, d decimal.Decimal) (float64, error) {
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%s is out of range", field)
	}
	return v, nil
}
