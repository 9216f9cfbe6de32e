// Package report renders registry snapshots as fixed-width text tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/domain/registry"

	"github.com/shopspring/decimal"
)

const (
	headerRule   = "================================"
	customerRule = "--------------------------------"
	noLoans      = "No loans found for this customer."
)

// WriteAll prints the registry header followed by one block per customer.
func WriteAll(w io.Writer, summary registry.Summary, views []customer.View) error {
	var b strings.Builder
	writeHeader(&b, summary)

	for _, v := range views {
		fmt.Fprintf(&b, "CustomerID: %s\n", v.CustomerID)
		if len(v.Loans) == 0 {
			b.WriteString(noLoans + "\n")
		} else {
			fmt.Fprintf(&b, "%-10s %-15s %-10s %-10s %-8s\n", "RecordID", "LoanType", "IntRate", "AmountLeft", "TimeLeft")
			for _, l := range v.Loans {
				fmt.Fprintf(&b, "%-10s %-15s %-10s %-10s %-8d\n",
					l.RecordID, l.Type, money(l.InterestRate), money(l.AmountLeft), l.TermLeft)
			}
		}
		b.WriteString(customerRule + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCustomer prints one customer's eligibility, income and loans.
func WriteCustomer(w io.Writer, summary registry.Summary, v customer.View) error {
	var b strings.Builder
	writeHeader(&b, summary)

	fmt.Fprintf(&b, "Eligible to arrange new loans - %t\n", v.Eligible)
	fmt.Fprintf(&b, "CustomerID: %s\n", v.CustomerID)
	fmt.Fprintf(&b, "Annual income: %s\n", money(v.AnnualIncome))
	fmt.Fprintf(&b, "Total amount left: %s\n", money(v.TotalAmountLeft))
	fmt.Fprintf(&b, "%-12s %-15s %-13s %-16s %-18s\n", "Record ID", "Loan Type", "Interest Rate", "Amount Left", "Loan Term Left")
	for _, l := range v.Loans {
		fmt.Fprintf(&b, "%-12s %-15s %-13s £%-15s %-18d\n",
			l.RecordID, l.Type, money(l.InterestRate), money(l.AmountLeft), l.TermLeft)
		if l.Type.HasOverpayment() {
			fmt.Fprintf(&b, "%-12s overpayment option: %s\n", "", money(l.Overpayment))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeader(b *strings.Builder, summary registry.Summary) {
	fmt.Fprintf(b, "Maximum number of Records: %d\n", summary.MaxRecords)
	fmt.Fprintf(b, "Registered records: %d\n", summary.RecordCount)
	b.WriteString(headerRule + "\n")
}

func money(m loan.Money) string {
	return decimal.NewFromFloat(m).StringFixed(2)
}
