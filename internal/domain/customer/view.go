package customer

import (
	"time"
	"xyzbank/internal/domain/loan"
)

// View is a read-only snapshot of a customer used for reporting.
type View struct {
	CustomerID      string
	AnnualIncome    loan.Money
	Eligible        bool
	TotalAmountLeft loan.Money
	Loans           []LoanView
	CreateDate      time.Time
	UpdatedAt       time.Time
}

type LoanView struct {
	RecordID     string
	Type         loan.Type
	InterestRate loan.Money
	AmountLeft   loan.Money
	TermLeft     int
	Overpayment  loan.Money
}

func (c *Customer) View() View {
	loans := make([]LoanView, 0, len(c.loans))
	for _, l := range c.loans {
		loans = append(loans, NewLoanView(l))
	}
	return View{
		CustomerID:      c.CustomerID,
		AnnualIncome:    c.AnnualIncome,
		Eligible:        c.eligible,
		TotalAmountLeft: c.TotalAmountLeft(),
		Loans:           loans,
		CreateDate:      c.CreateDate,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewLoanView(l loan.Loan) LoanView {
	return LoanView{
		RecordID:     l.RecordID,
		Type:         l.Type,
		InterestRate: l.InterestRate,
		AmountLeft:   l.AmountLeft,
		TermLeft:     l.TermLeft,
		Overpayment:  l.Overpayment,
	}
}

// HasLoan reports whether the snapshot lists recordID.
func (v View) HasLoan(recordID string) bool {
	for _, l := range v.Loans {
		if l.RecordID == recordID {
			return true
		}
	}
	return false
}
