package customer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/pkg/apperrors"
)

var idPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// Customer owns the loans of one person. The eligible flag is a cache of
// Eligible(AnnualIncome, TotalAmountLeft()) and every mutator refreshes it.
type Customer struct {
	CustomerID   string
	AnnualIncome loan.Money
	CreateDate   time.Time
	UpdatedAt    time.Time

	eligible bool
	loans    []loan.Loan
}

// NormalizeID upper-cases and trims a customer identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidID reports whether id is three letters followed by three digits,
// ignoring case.
func ValidID(id string) bool {
	return idPattern.MatchString(NormalizeID(id))
}

func NewCustomer(id string, annualIncome loan.Money) (*Customer, error) {
	id = NormalizeID(id)
	if !idPattern.MatchString(id) {
		return nil, apperrors.NewValidationError("customerId", "must be 3 letters followed by 3 digits")
	}
	if !loan.Finite(annualIncome) || annualIncome < 0 {
		return nil, apperrors.NewValidationError("annualIncome", "must be a finite, non-negative amount")
	}

	now := time.Now()
	c := &Customer{
		CustomerID:   id,
		AnnualIncome: annualIncome,
		CreateDate:   now,
		UpdatedAt:    now,
	}
	c.refreshEligibility()
	return c, nil
}

func (c *Customer) UpdateIncome(newIncome loan.Money) error {
	if !loan.Finite(newIncome) || newIncome < 0 {
		return apperrors.NewValidationError("annualIncome", "must be a finite, non-negative amount")
	}
	c.AnnualIncome = newIncome
	c.touch()
	return nil
}

// AddLoan appends unconditionally; eligibility is informational here.
func (c *Customer) AddLoan(l loan.Loan) {
	c.loans = append(c.loans, l)
	c.touch()
}

// RemoveLoan drops every loan carrying recordID and returns how many were
// removed. Removing an unknown record is a no-op.
func (c *Customer) RemoveLoan(recordID string) int {
	kept := c.loans[:0]
	removed := 0
	for _, l := range c.loans {
		if l.RecordID == recordID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		return 0
	}
	clear(c.loans[len(kept):])
	c.loans = kept
	c.touch()
	return removed
}

func (c *Customer) HasLoanWithRecordID(recordID string) bool {
	for _, l := range c.loans {
		if l.RecordID == recordID {
			return true
		}
	}
	return false
}

func (c *Customer) IsEligible() bool {
	return c.eligible
}

func (c *Customer) TotalAmountLeft() loan.Money {
	return TotalAmountLeft(c.loans)
}

// Loans returns a copy of the customer's loans in insertion order.
func (c *Customer) Loans() []loan.Loan {
	out := make([]loan.Loan, len(c.loans))
	copy(out, c.loans)
	return out
}

func (c *Customer) LoanCount() int {
	return len(c.loans)
}

// WouldRemainEligible reports the eligibility the customer would have after
// taking on l, without mutating anything.
func (c *Customer) WouldRemainEligible(l loan.Loan) bool {
	total := TotalAmountLeft(append(c.Loans(), l))
	return Eligible(c.AnnualIncome, total)
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer{ID: %s, Income: %.2f, Loans: %d, Eligible: %t}",
		c.CustomerID, c.AnnualIncome, len(c.loans), c.eligible)
}

func (c *Customer) touch() {
	c.refreshEligibility()
	c.UpdatedAt = time.Now()
}

func (c *Customer) refreshEligibility() {
	c.eligible = Eligible(c.AnnualIncome, c.TotalAmountLeft())
}
