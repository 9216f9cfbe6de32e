package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/infrastructure/monitoring"
)

// Auditor is the slice of the registry the audit job needs.
type Auditor interface {
	Audit(ctx context.Context) registry.AuditResult
}

type RegistryAuditJob struct {
	registry Auditor
	logger   *slog.Logger
}

func NewRegistryAuditJob(reg Auditor, logger *slog.Logger) *RegistryAuditJob {
	if reg == nil || logger == nil {
		panic("RegistryAuditJob dependencies cannot be nil")
	}
	return &RegistryAuditJob{
		registry: reg,
		logger:   logger.With("job", "RegistryAudit"),
	}
}

// Run recounts the registry, refreshes the capacity gauges and fails when
// the derived state has drifted from the loans customers hold.
func (j *RegistryAuditJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting registry audit job.")

	if err := ctx.Err(); err != nil {
		j.logger.WarnContext(ctx, "Registry audit job cancelled before it started.", slog.Any("error", err))
		monitoring.RecordAuditRun(monitoring.AuditStatusCancelled)
		return err
	}

	result := j.registry.Audit(ctx)
	monitoring.SetRegistryState(result.RecordCount, result.MaxRecords, result.Customers)

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("records", result.RecordCount),
		slog.Int("loans_held", result.LoansHeld),
		slog.Int("customers", result.Customers),
		slog.Int("max_records", result.MaxRecords),
		slog.Int("orphan_records", len(result.OrphanRecords)),
		slog.Int("unindexed_records", len(result.UnindexedRecords)),
		slog.Int("stale_eligibility", len(result.StaleEligibility)),
	)

	if !result.Consistent() {
		summaryLog.WarnContext(ctx, "Registry audit job found drift.")
		monitoring.RecordAuditRun(monitoring.AuditStatusDrift)
		return fmt.Errorf("registry audit found drift: %d records indexed, %d held, %d stale eligibility flags",
			result.RecordCount, result.LoansHeld, len(result.StaleEligibility))
	}

	summaryLog.InfoContext(ctx, "Registry audit job finished successfully.")
	monitoring.RecordAuditRun(monitoring.AuditStatusOK)
	return nil
}
