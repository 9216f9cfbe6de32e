// Package console implements the interactive XYZ Bank menu on top of the
// registry service.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"xyzbank/internal/domain/customer"
	"xyzbank/internal/domain/loan"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/pkg/apperrors"
	"xyzbank/internal/report"
)

const (
	invalidCustomerID = "Invalid Customer ID format. Customer ID should be 3 letters followed by 3 numbers."
	invalidRecordID   = "Invalid Record ID. Please enter a 6-digit numeric value."
	customerNotFound  = "Customer not found."
)

const menu = `
XYZ Bank System
1) Register New Customer
2) Add Loan to Customer
3) Print Customer Details
4) Print All Customers' Details
5) Update Customer Income
6) Remove Loan from Customer
7) Exit`

type Console struct {
	svc    registry.RegistryService
	p      *Prompter
	logger *slog.Logger
}

func New(svc registry.RegistryService, p *Prompter, logger *slog.Logger) *Console {
	if svc == nil {
		panic("registry service cannot be nil")
	}
	if p == nil {
		panic("prompter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Console{svc: svc, p: p, logger: logger.With("component", "Console")}
}

// Run shows the menu until the operator exits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Console session started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.p.Println(menu)
		answer, err := c.p.Line("Please select an option from the above choices: ")
		if err != nil {
			return c.finish(ctx, err)
		}

		choice, convErr := strconv.Atoi(answer)
		if convErr != nil || choice < 1 || choice > 7 {
			c.p.Println("Invalid choice. Please enter a number between 1 and 7.")
			continue
		}
		if choice == 7 {
			c.p.Println("Exiting...")
			c.logger.InfoContext(ctx, "Console session ended by operator")
			return nil
		}

		if err := c.dispatch(ctx, choice); err != nil {
			return c.finish(ctx, err)
		}
	}
}

func (c *Console) finish(ctx context.Context, err error) error {
	if errors.Is(err, ErrInputClosed) {
		c.logger.InfoContext(ctx, "Console input closed, ending session")
		return nil
	}
	c.logger.ErrorContext(ctx, "Console session aborted", slog.Any("error", err))
	return err
}

func (c *Console) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		return c.registerCustomer(ctx)
	case 2:
		return c.addLoan(ctx)
	case 3:
		return c.printCustomer(ctx)
	case 4:
		return c.printAll(ctx)
	case 5:
		return c.updateIncome(ctx)
	case 6:
		return c.removeLoan(ctx)
	}
	return nil
}

func (c *Console) askCustomerID(prompt string) (string, error) {
	return Ask(c.p, prompt, func(s string) (string, string) {
		if !customer.ValidID(s) {
			return "", invalidCustomerID
		}
		return customer.NormalizeID(s), ""
	})
}

func (c *Console) askRecordID(prompt string) (string, error) {
	return Ask(c.p, prompt, func(s string) (string, string) {
		if !loan.ValidRecordID(s) {
			return "", invalidRecordID
		}
		return s, ""
	})
}

func (c *Console) registerCustomer(ctx context.Context) error {
	id, err := c.askCustomerID("Enter Customer ID: ")
	if err != nil {
		return err
	}
	income, err := Ask(c.p, "Enter Annual Income: ", parseAmount)
	if err != nil {
		return err
	}

	if _, err := c.svc.RegisterCustomer(ctx, id, income); err != nil {
		return c.report(ctx, err, id)
	}
	c.p.Println("Customer registered successfully.")
	return nil
}

func (c *Console) addLoan(ctx context.Context) error {
	id, err := c.askCustomerID("Enter Customer ID for Loan: ")
	if err != nil {
		return err
	}
	if !c.svc.HasCustomer(ctx, id) {
		c.p.Println(customerNotFound)
		return nil
	}

	recordID, err := c.askRecordID("Enter Record ID (6 digits only): ")
	if err != nil {
		return err
	}
	if c.svc.RecordExists(ctx, recordID) {
		c.p.Println("Record with the same Record ID already exists for another customer.")
		return nil
	}

	loanType, err := Ask(c.p, "Enter Loan Type (Auto, Builder, Mortgage, Personal, Other): ", func(s string) (loan.Type, string) {
		t, err := loan.ParseType(s)
		if err != nil {
			return "", "Invalid loan type. Please enter Auto, Builder, Personal, Mortgage, or Other."
		}
		return t, ""
	})
	if err != nil {
		return err
	}
	rate, err := Ask(c.p, "Enter Interest Rate: ", parsePositiveFloat("Interest rate"))
	if err != nil {
		return err
	}
	amountLeft, err := Ask(c.p, "Enter Amount Left To Pay: ", parsePositiveFloat("Amount left"))
	if err != nil {
		return err
	}
	termLeft, err := Ask(c.p, "Enter Loan Term Left (in years): ", parsePositiveInt("Loan term"))
	if err != nil {
		return err
	}
	var overpayment loan.Money
	if loanType.HasOverpayment() {
		if overpayment, err = Ask(c.p, "What is your overpayment: ", parseOverpayment); err != nil {
			return err
		}
	}

	l, err := loan.NewLoan(recordID, loanType, rate, amountLeft, termLeft, overpayment)
	if err != nil {
		return c.report(ctx, err, id)
	}
	if err := c.svc.AddLoan(ctx, id, l); err != nil {
		return c.report(ctx, err, id)
	}

	c.p.Println("Loan successfully added.")
	return c.printAll(ctx)
}

func (c *Console) printCustomer(ctx context.Context) error {
	id, err := c.askCustomerID("Enter Customer ID to Print Details: ")
	if err != nil {
		return err
	}
	view, err := c.svc.GetCustomerReport(ctx, id)
	if err != nil {
		return c.report(ctx, err, id)
	}
	return report.WriteCustomer(c.p.out, c.svc.Summary(ctx), view)
}

func (c *Console) printAll(ctx context.Context) error {
	return report.WriteAll(c.p.out, c.svc.Summary(ctx), c.svc.GetAllCustomersReport(ctx))
}

func (c *Console) updateIncome(ctx context.Context) error {
	id, err := c.askCustomerID("Enter Customer ID to Update Income: ")
	if err != nil {
		return err
	}
	income, err := Ask(c.p, "Enter New Income: ", parseAmount)
	if err != nil {
		return err
	}
	if err := c.svc.UpdateIncome(ctx, id, income); err != nil {
		return c.report(ctx, err, id)
	}
	c.p.Println("Customer income updated successfully.")
	return nil
}

func (c *Console) removeLoan(ctx context.Context) error {
	id, err := Ask(c.p, "Enter Customer ID to Remove Loan From: ", func(s string) (string, string) {
		if !customer.ValidID(s) {
			return "", invalidCustomerID
		}
		id := customer.NormalizeID(s)
		if !c.svc.HasCustomer(ctx, id) {
			return "", fmt.Sprintf("Customer with ID %s does not exist.", id)
		}
		return id, ""
	})
	if err != nil {
		return err
	}

	view, err := c.svc.GetCustomerReport(ctx, id)
	if err != nil {
		return c.report(ctx, err, id)
	}
	if len(view.Loans) == 0 {
		c.p.Println(noLoansMessage)
		return nil
	}

	recordID, err := Ask(c.p, "Enter Record ID of Loan to Remove: ", func(s string) (string, string) {
		if !loan.ValidRecordID(s) {
			return "", invalidRecordID
		}
		if !view.HasLoan(s) {
			return "", fmt.Sprintf("Loan with Record ID %s does not exist.", s)
		}
		return s, ""
	})
	if err != nil {
		return err
	}

	if err := c.svc.RemoveLoan(ctx, id, recordID); err != nil {
		return c.report(ctx, err, id)
	}
	c.p.Println("Loan successfully removed.")
	return nil
}

const noLoansMessage = "No loans found for this customer."

// report turns a domain error into an operator message. Only errors the
// operator cannot fix are returned.
func (c *Console) report(ctx context.Context, err error, customerID string) error {
	var validationErr *apperrors.ValidationError
	var recordErr *registry.RecordNotFoundError
	switch {
	case errors.Is(err, apperrors.ErrAlreadyExists):
		c.p.Printf("Customer with ID %s already exists.\n", customerID)
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		c.p.Println("Cannot add more loans, maximum records limit reached.")
	case errors.Is(err, apperrors.ErrDuplicateRecord):
		c.p.Println("Record with the same Record ID already exists for another customer.")
	case errors.Is(err, apperrors.ErrNotEligible):
		c.p.Println("Loan addition failed due to eligibility criteria.")
	case errors.As(err, &recordErr):
		c.p.Printf("Loan with Record ID %s does not exist.\n", recordErr.RecordID)
	case errors.Is(err, apperrors.ErrNotFound):
		c.p.Println(customerNotFound)
	case errors.As(err, &validationErr):
		c.p.Printf("Invalid %s: %s\n", validationErr.Field, validationErr.Message)
	default:
		return err
	}
	c.logger.DebugContext(ctx, "Operation rejected", slog.String("customerID", customerID), slog.Any("error", err))
	return nil
}
