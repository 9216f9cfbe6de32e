package registry

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"xyzbank/internal/domain/customer"
)

// AuditResult reports how the registry's derived state compares with the
// loans the customers actually hold.
type AuditResult struct {
	RecordCount      int
	LoansHeld        int
	Customers        int
	MaxRecords       int
	OrphanRecords    []string // indexed record IDs no customer holds
	UnindexedRecords []string // held record IDs missing from the index
	StaleEligibility []string // customer IDs whose cached flag disagrees with the rule
}

func (a AuditResult) Consistent() bool {
	return a.RecordCount == a.LoansHeld &&
		a.RecordCount <= a.MaxRecords &&
		len(a.OrphanRecords) == 0 &&
		len(a.UnindexedRecords) == 0 &&
		len(a.StaleEligibility) == 0
}

// Audit walks every customer under a read lock and cross-checks the record
// index, the record ceiling and each cached eligibility flag.
func (s *registryService) Audit(ctx context.Context) AuditResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := AuditResult{
		RecordCount: len(s.records),
		Customers:   len(s.customers),
		MaxRecords:  s.maxRecords,
	}

	for _, id := range slices.Sorted(maps.Keys(s.customers)) {
		cust := s.customers[id]
		loans := cust.Loans()
		result.LoansHeld += len(loans)

		for _, l := range loans {
			if owner, ok := s.records[l.RecordID]; !ok || owner != id {
				result.UnindexedRecords = append(result.UnindexedRecords, l.RecordID)
			}
		}
		if cust.IsEligible() != customer.Eligible(cust.AnnualIncome, customer.TotalAmountLeft(loans)) {
			result.StaleEligibility = append(result.StaleEligibility, id)
		}
	}

	for _, recordID := range slices.Sorted(maps.Keys(s.records)) {
		owner, ok := s.customers[s.records[recordID]]
		if !ok || !owner.HasLoanWithRecordID(recordID) {
			result.OrphanRecords = append(result.OrphanRecords, recordID)
		}
	}

	level := slog.LevelInfo
	if !result.Consistent() {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "Registry audit completed",
		slog.Int("recordCount", result.RecordCount),
		slog.Int("loansHeld", result.LoansHeld),
		slog.Int("customers", result.Customers),
		slog.Bool("consistent", result.Consistent()))
	return result
}
