package console_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"xyzbank/internal/config"
	"xyzbank/internal/console"
	"xyzbank/internal/domain/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runConsole(t *testing.T, maxRecords int, in io.Reader) (string, registry.RegistryService) {
	t.Helper()
	svc, err := registry.NewRegistryService(config.RegistryConfig{MaxRecords: maxRecords}, nil, testLogger)
	require.NoError(t, err)

	var out bytes.Buffer
	c := console.New(svc, console.NewPrompter(in, &out), testLogger)
	require.NoError(t, c.Run(context.Background()))
	return out.String(), svc
}

func TestConsole_RegisterAndPrint(t *testing.T) {
	out, svc := runConsole(t, 5, script(
		"1", "ab12", "abc123", "lots", "60000",
		"1", "ABC123", "1000",
		"3", "abc123",
		"7",
	))

	assert.Contains(t, out, "Invalid Customer ID format.")
	assert.Contains(t, out, "Invalid input. Please enter a number.")
	assert.Contains(t, out, "Customer registered successfully.")
	assert.Contains(t, out, "Customer with ID ABC123 already exists.")
	assert.Contains(t, out, "Eligible to arrange new loans - true")
	assert.Contains(t, out, "Exiting...")

	view, err := svc.GetCustomerReport(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 60000.0, view.AnnualIncome)
}

func TestConsole_AddLoanPrintsAllCustomers(t *testing.T) {
	out, svc := runConsole(t, 5, script(
		"1", "ABC123", "60000",
		"2", "abc123", "12345", "000111", "car", "Auto", "-1", "3.5", "20000", "0", "5",
		"7",
	))

	assert.Contains(t, out, "Invalid Record ID.")
	assert.Contains(t, out, "Invalid loan type.")
	assert.Contains(t, out, "Interest rate must be positive.")
	assert.Contains(t, out, "Loan term must be positive.")
	assert.Contains(t, out, "Loan successfully added.")
	assert.Contains(t, out, "Registered records: 1")
	assert.NotContains(t, out, "What is your overpayment")
	assert.Equal(t, 1, svc.RecordCount(context.Background()))
}

func TestConsole_AddLoanAsksOverpaymentForMortgage(t *testing.T) {
	out, svc := runConsole(t, 5, script(
		"1", "ABC123", "60000",
		"2", "ABC123", "000111", "mortgage", "2.5", "150000", "25", "-3", "100",
		"7",
	))

	assert.Contains(t, out, "Overpayment cannot be negative.")
	view, err := svc.GetCustomerReport(context.Background(), "ABC123")
	require.NoError(t, err)
	require.Len(t, view.Loans, 1)
	assert.Equal(t, 100.0, view.Loans[0].Overpayment)
}

func TestConsole_AddLoanRejectsNonFiniteAmounts(t *testing.T) {
	out, svc := runConsole(t, 5, script(
		"1", "ABC123", "1000",
		"2", "ABC123", "000111", "Auto", "3.5", "NaN", "Inf", "1e400", "2000", "7",
		"3", "ABC123",
		"7",
	))

	assert.Equal(t, 3, strings.Count(out, "Invalid input. Please enter a numeric value."))
	assert.Contains(t, out, "Loan successfully added.")
	assert.Contains(t, out, "Exiting...")

	view, err := svc.GetCustomerReport(context.Background(), "ABC123")
	require.NoError(t, err)
	require.Len(t, view.Loans, 1)
	assert.Equal(t, 2000.0, view.Loans[0].AmountLeft)
}

func TestConsole_AddLoanRejections(t *testing.T) {
	out, svc := runConsole(t, 1, script(
		"2", "ZZZ999",
		"1", "ABC123", "60000",
		"2", "ABC123", "000111", "Personal", "4", "1000", "2",
		"2", "ABC123", "000111",
		"2", "ABC123", "000222", "Other", "4", "1000", "2",
		"7",
	))

	assert.Contains(t, out, "Customer not found.")
	assert.Contains(t, out, "Record with the same Record ID already exists for another customer.")
	assert.Contains(t, out, "Cannot add more loans, maximum records limit reached.")
	assert.Equal(t, 1, svc.RecordCount(context.Background()))
}

func TestConsole_UpdateIncomeAndRemoveLoan(t *testing.T) {
	out, svc := runConsole(t, 5, script(
		"1", "ABC123", "10000",
		"2", "ABC123", "000111", "Auto", "3", "50000", "5",
		"3", "ABC123",
		"5", "ABC123", "12500",
		"6", "XYZ789", "ABC123", "999999", "000111",
		"4",
		"7",
	))

	assert.Contains(t, out, "Eligible to arrange new loans - false")
	assert.Contains(t, out, "Customer income updated successfully.")
	assert.Contains(t, out, "Customer with ID XYZ789 does not exist.")
	assert.Contains(t, out, "Loan with Record ID 999999 does not exist.")
	assert.Contains(t, out, "Loan successfully removed.")
	assert.Contains(t, out, "No loans found for this customer.")
	assert.Zero(t, svc.RecordCount(context.Background()))
}

func TestConsole_InvalidChoiceAndEOF(t *testing.T) {
	out, _ := runConsole(t, 5, script("9", "menu"))

	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please enter a number between 1 and 7."))
	assert.NotContains(t, out, "Exiting...")
}

func TestConsole_CancelledContext(t *testing.T) {
	svc, err := registry.NewRegistryService(config.RegistryConfig{MaxRecords: 1}, nil, testLogger)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := console.New(svc, console.NewPrompter(script("7"), io.Discard), testLogger)
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestNew_PanicsOnNilDependencies(t *testing.T) {
	svc, err := registry.NewRegistryService(config.RegistryConfig{MaxRecords: 1}, nil, testLogger)
	require.NoError(t, err)
	p := console.NewPrompter(strings.NewReader(""), io.Discard)

	assert.Panics(t, func() { console.New(nil, p, testLogger) })
	assert.Panics(t, func() { console.New(svc, nil, testLogger) })
	assert.Panics(t, func() { console.New(svc, p, nil) })
}
