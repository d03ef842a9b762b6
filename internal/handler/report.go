package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/pkg/v1/commander"
)

// ReportPublisher publishes reports of synchronization batches.
type ReportPublisher struct {
	sender commander.Sender
}

// NewReportPublisher returns new ReportPublisher.
func NewReportPublisher(sender commander.Sender) ReportPublisher {
	return ReportPublisher{sender: sender}
}

// Publish sends report as JSON message.
func (p ReportPublisher) Publish(ctx context.Context, report *models.Report) error {
	msg, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("can't marshal report: %w", err)
	}

	if err = p.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("can't send report %s: %w", report.ID, err)
	}

	return nil
}
