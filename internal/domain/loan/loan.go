package loan

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"xyzbank/internal/pkg/apperrors"
)

type Money = float64

// Type is the closed set of loan variants. Builder and Mortgage loans
// additionally carry an overpayment option.
type Type string

const (
	TypeAuto     Type = "Auto"
	TypeBuilder  Type = "Builder"
	TypeMortgage Type = "Mortgage"
	TypePersonal Type = "Personal"
	TypeOther    Type = "Other"
)

var recordIDPattern = regexp.MustCompile(`^\d{6}$`)

// Types returns every loan type in menu order.
func Types() []Type {
	return []Type{TypeAuto, TypeBuilder, TypeMortgage, TypePersonal, TypeOther}
}

// ParseType matches s against the known loan types ignoring case and
// surrounding whitespace.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", apperrors.NewValidationError("loanType", fmt.Sprintf("unknown loan type %q", s))
}

func (t Type) HasOverpayment() bool {
	return t == TypeBuilder || t == TypeMortgage
}

func (t Type) Valid() bool {
	switch t {
	case TypeAuto, TypeBuilder, TypeMortgage, TypePersonal, TypeOther:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Loan is one credit obligation. It is a value type: once built by NewLoan
// nothing in the system mutates it.
type Loan struct {
	RecordID     string
	Type         Type
	InterestRate Money
	AmountLeft   Money
	TermLeft     int
	Overpayment  Money
}

func ValidRecordID(recordID string) bool {
	return recordIDPattern.MatchString(recordID)
}

func NewLoan(recordID string, loanType Type, interestRate, amountLeft Money, termLeft int, overpayment Money) (Loan, error) {
	l := Loan{
		RecordID:     recordID,
		Type:         loanType,
		InterestRate: interestRate,
		AmountLeft:   amountLeft,
		TermLeft:     termLeft,
		Overpayment:  overpayment,
	}
	if err := l.Validate(); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// Finite reports whether m is a usable amount: neither NaN nor infinite.
func Finite(m Money) bool {
	return !math.IsNaN(m) && !math.IsInf(m, 0)
}

// Validate checks every field of l. The registry calls it again because a
// Loan can be built without NewLoan.
func (l Loan) Validate() error {
	if !ValidRecordID(l.RecordID) {
		return apperrors.NewValidationError("recordId", "must be exactly 6 digits")
	}
	if !l.Type.Valid() {
		return apperrors.NewValidationError("loanType", fmt.Sprintf("unknown loan type %q", string(l.Type)))
	}
	if !Finite(l.InterestRate) || l.InterestRate <= 0 {
		return apperrors.NewValidationError("interestRate", "must be a finite number greater than zero")
	}
	if !Finite(l.AmountLeft) || l.AmountLeft <= 0 {
		return apperrors.NewValidationError("amountLeft", "must be a finite number greater than zero")
	}
	if l.TermLeft <= 0 {
		return apperrors.NewValidationError("loanTermLeft", "must be a positive number of years")
	}
	if !Finite(l.Overpayment) || l.Overpayment < 0 {
		return apperrors.NewValidationError("overpayment", "must be a finite, non-negative amount")
	}
	if l.Overpayment != 0 && !l.Type.HasOverpayment() {
		return apperrors.NewValidationError("overpayment", fmt.Sprintf("not supported for %s loans", l.Type))
	}
	return nil
}

// Details renders a one-line summary. The overpayment option is part of the
// summary for Builder and Mortgage loans only.
func (l Loan) Details() string {
	base := fmt.Sprintf("%s Loan: RecordID=%s, InterestRate=%.2f, AmountLeftToPay=%.2f, LoanTermLeft=%d",
		l.Type, l.RecordID, l.InterestRate, l.AmountLeft, l.TermLeft)

	switch l.Type {
	case TypeBuilder, TypeMortgage:
		return fmt.Sprintf("%s, OverpaymentOption=%.2f", base, l.Overpayment)
	default:
		return base
	}
}
