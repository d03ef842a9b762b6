package syncer

import (
	"context"
	"fmt"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunBatch synchronizes all accounts listed by CredentialStore.
// Failure of one account doesn't affect others; it returns error only when accounts can't be listed.
func (s *Syncer) RunBatch(ctx context.Context) (*models.Report, error) {
	report := &models.Report{
		ID:        uuid.NewString(),
		StartedAt: *s.clock.Now(),
	}

	accountIDs, err := s.credentials.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list accounts: %w", err)
	}

	s.logger.Info().
		Str("batchId", report.ID).
		Int("accounts", len(accountIDs)).
		Msg("synchronization batch started")

	outcomes := make([]models.Outcome, len(accountIDs))

	var eg errgroup.Group
	eg.SetLimit(s.concurrency)

	for ix, accountID := range accountIDs {
		// accounts not started before cancellation are reported as canceled.
		if err := ctx.Err(); err != nil {
			outcomes[ix] = canceledOutcome(accountID, err)
			continue
		}

		eg.Go(func() error {
			outcomes[ix] = s.SyncAccount(ctx, accountID)
			return nil
		})
	}

	_ = eg.Wait()

	report.Outcomes = outcomes
	report.FinishedAt = *s.clock.Now()
	for ix := range outcomes {
		if outcomes[ix].Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	s.logger.Info().
		Str("batchId", report.ID).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Interface("failuresByKind", report.FailuresByKind()).
		Msg("synchronization batch finished")

	return report, nil
}

func canceledOutcome(accountID string, err error) models.Outcome {
	return models.Outcome{
		AccountID: accountID,
		State:     models.StateFailed,
		FailedAt:  models.StateLoadCredentials,
		Kind:      models.KindCanceled,
		Error:     fmt.Sprintf("synchronization not started: %s", err),
	}
}
